package index

import (
	"context"
	"errors"

	"mana-vault/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the rebuild trigger and status.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the index routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/index")
	group.Post("/rebuild", h.HandleRebuild)
	group.Get("/status", h.HandleStatus)
}

// HandleRebuild starts a background rebuild.
// @Summary Rebuild Search Index
// @Description Starts a full rebuild of the search index from the upstream snapshot. Progress and outcome are reported by /index/status.
// @Tags index
// @Produce json
// @Success 202 {object} map[string]string "Rebuild started"
// @Failure 409 {object} map[string]string "Rebuild already running"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /index/rebuild [post]
func (h *Handler) HandleRebuild(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	// The rebuild outlives the request.
	runID, err := h.service.Trigger(context.Background())
	if errors.Is(err, ErrRebuildInProgress) {
		l.Warn("Rebuild rejected, another rebuild is running")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to start rebuild", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Rebuild started", zap.String("run_id", runID))
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": StateRunning,
		"runId":  runID,
	})
}

// HandleStatus returns the rebuild status.
// @Summary Index Status
// @Description Returns the persisted outcome of the latest rebuild and the live progress of a running one.
// @Tags index
// @Produce json
// @Success 200 {object} StatusView
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /index/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	view, err := h.service.Status(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to read index status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(view)
}
