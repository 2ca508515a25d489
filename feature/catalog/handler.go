package catalog

import (
	"errors"

	"mana-vault/core/logger"
	"mana-vault/feature/canonical"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for upstream lookups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/sets", h.HandleSets)

	group := app.Group("/printings")
	group.Get("/:id", h.HandlePrinting)
	group.Get("/:id/canonical", h.HandleCanonical)
	group.Get("/:id/rulings", h.HandleRulings)
	group.Get("/:id/legalities", h.HandleLegalities)
}

// HandleSets lists sets.
// @Summary List Sets
// @Description Lists every set of the upstream snapshot, newest first.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string][]Set
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sets [get]
func (h *Handler) HandleSets(c *fiber.Ctx) error {
	sets, err := h.service.Sets(c.Context())
	if err != nil {
		return h.fail(c, "Failed to list sets", err)
	}
	return c.JSON(fiber.Map{"sets": sets})
}

// HandlePrinting returns one printing.
// @Summary Get Printing
// @Description Returns one upstream printing with its canonical key.
// @Tags catalog
// @Produce json
// @Param id path string true "Printing id"
// @Success 200 {object} PrintingView
// @Failure 404 {object} map[string]string "Printing not found"
// @Router /printings/{id} [get]
func (h *Handler) HandlePrinting(c *fiber.Ctx) error {
	view, err := h.service.Printing(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Printing lookup failed", err)
	}
	return c.JSON(view)
}

// HandleCanonical resolves a printing to its canonical key.
// @Summary Canonical Key
// @Description Resolves a printing id to the canonical key of its card, from the index when possible.
// @Tags catalog
// @Produce json
// @Param id path string true "Printing id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Printing not found"
// @Router /printings/{id}/canonical [get]
func (h *Handler) HandleCanonical(c *fiber.Ctx) error {
	id := c.Params("id")
	key, err := h.service.CanonicalKey(c.Context(), id)
	if err != nil {
		return h.fail(c, "Canonical key lookup failed", err)
	}
	return c.JSON(fiber.Map{"printingId": id, "canonicalKey": key})
}

// HandleRulings lists rulings of a printing.
// @Summary Printing Rulings
// @Tags catalog
// @Produce json
// @Param id path string true "Printing id"
// @Success 200 {object} map[string][]Ruling
// @Router /printings/{id}/rulings [get]
func (h *Handler) HandleRulings(c *fiber.Ctx) error {
	rulings, err := h.service.Rulings(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to list rulings", err)
	}
	return c.JSON(fiber.Map{"rulings": rulings})
}

// HandleLegalities lists format legalities of a printing.
// @Summary Printing Legalities
// @Tags catalog
// @Produce json
// @Param id path string true "Printing id"
// @Success 200 {object} map[string][]Legality
// @Router /printings/{id}/legalities [get]
func (h *Handler) HandleLegalities(c *fiber.Ctx) error {
	legalities, err := h.service.Legalities(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to list legalities", err)
	}
	return c.JSON(fiber.Map{"legalities": legalities})
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, canonical.ErrPrintingNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrSourceUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
