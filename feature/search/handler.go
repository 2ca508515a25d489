package search

import (
	"errors"

	"mana-vault/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for card search.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the search routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/search", h.HandleSearch)
	app.Get("/cards/:canonicalKey", h.HandleCard)
}

// HandleSearch runs a card search.
// @Summary Search Cards
// @Description Searches canonical cards. The compact query in q is parsed first and structured parameters are applied over it.
// @Tags search
// @Produce json
// @Param q query string false "Compact query, e.g. t:instant c:u mv<=2"
// @Param name query string false "Name term"
// @Param oracle query string false "Oracle text term"
// @Param type query string false "Type line term"
// @Param colors query string false "Color letters WUBRGCM"
// @Param identity query string false "Color identity letters WUBRGCM"
// @Param rarity query string false "Comma separated rarities"
// @Param set query string false "Comma separated set codes"
// @Param types query string false "Comma separated card types, any may match"
// @Param manaCost query string false "Mana cost substring"
// @Param mvMin query number false "Minimum mana value"
// @Param mvMax query number false "Maximum mana value"
// @Param powerMin query number false "Minimum power"
// @Param powerMax query number false "Maximum power"
// @Param toughnessMin query number false "Minimum toughness"
// @Param toughnessMax query number false "Maximum toughness"
// @Param artist query string false "Artist substring"
// @Param flavor query string false "Flavor text substring"
// @Param sortKey query string false "name, releaseDate, setNumber, rarity, color, manaValue, power, toughness or artist"
// @Param sortDir query string false "asc or desc"
// @Param sort query string false "Legacy sort: newest, oldest, mana or name"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} Page
// @Failure 503 {object} map[string]string "Index unavailable"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	req := FromParams(func(name string) string { return c.Query(name) })

	page, err := h.service.Search(c.Context(), req)
	if err != nil {
		return h.fail(c, "Search failed", err)
	}
	return c.JSON(page)
}

// HandleCard returns one canonical card.
// @Summary Get Card
// @Description Returns a canonical card with all of its printings.
// @Tags search
// @Produce json
// @Param canonicalKey path string true "Canonical key"
// @Success 200 {object} Detail
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 503 {object} map[string]string "Index unavailable"
// @Router /cards/{canonicalKey} [get]
func (h *Handler) HandleCard(c *fiber.Ctx) error {
	detail, err := h.service.Card(c.Context(), c.Params("canonicalKey"))
	if err != nil {
		return h.fail(c, "Card lookup failed", err)
	}
	return c.JSON(detail)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, ErrIndexUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": ErrIndexUnavailable.Error()})
	case errors.Is(err, ErrCardNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
