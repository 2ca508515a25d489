package collection

import (
	"errors"

	"mana-vault/core/logger"
	"mana-vault/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdjustRequest is the body of an adjustment.
type AdjustRequest struct {
	Delta     int `json:"delta"`
	FoilDelta int `json:"foilDelta"`
}

// Handler handles HTTP requests for the collection ledger.
type Handler struct {
	ledger *Ledger
}

// NewHandler creates a new HTTP handler.
func NewHandler(ledger *Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// RegisterRoutes registers the collection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/collection")
	group.Get("/", h.HandleList)
	group.Get("/owned", h.HandleOwned)
	group.Post("/:printingId", h.HandleAdjust)
}

// HandleList returns holdings.
// @Summary List Collection
// @Description Returns held quantities, newest first, optionally restricted to the given printing ids.
// @Tags collection
// @Produce json
// @Param ids query string false "Comma separated printing ids"
// @Success 200 {object} map[string][]models.Holding
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	holdings, err := h.ledger.Quantities(c.Context(), utils.StringList(c.Query("ids")))
	if err != nil {
		logger.WithRayID(h.ledger.logger, c).Error("Failed to list collection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"collection": holdings})
}

// HandleOwned returns ownership grouped by canonical card.
// @Summary Owned Cards
// @Description Returns every owned canonical card with totals summed across its printings.
// @Tags collection
// @Produce json
// @Success 200 {object} map[string][]models.OwnedCard
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/owned [get]
func (h *Handler) HandleOwned(c *fiber.Ctx) error {
	owned, err := h.ledger.Owned(c.Context())
	if err != nil {
		logger.WithRayID(h.ledger.logger, c).Error("Failed to summarize collection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"results": owned})
}

// HandleAdjust changes the held quantity of a printing.
// @Summary Adjust Collection
// @Description Adds delta and foilDelta to a printing's holding. Quantities never drop below zero.
// @Tags collection
// @Accept json
// @Produce json
// @Param printingId path string true "Printing id"
// @Param body body AdjustRequest true "Quantity changes"
// @Success 200 {object} map[string]models.Holding
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/{printingId} [post]
func (h *Handler) HandleAdjust(c *fiber.Ctx) error {
	l := logger.WithRayID(h.ledger.logger, c)

	var req AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	holding, err := h.ledger.Adjust(c.Context(), c.Params("printingId"), req.Delta, req.FoilDelta)
	if errors.Is(err, ErrMissingPrinting) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to adjust collection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Collection adjusted", zap.String("printing_id", holding.PrintingID), zap.Int("qty", holding.Qty))
	return c.JSON(fiber.Map{"card": holding})
}
