package integrity

import (
	"errors"

	"mana-vault/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/index", h.HandleIndexCheck)
	group.Get("/app", h.HandleAppCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck runs every integrity check.
// @Summary Run All Integrity Checks
// @Description Runs the schema, index, app and storage checks. Unconfigured targets are reported as skipped.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Info("Triggering all integrity checks")
	return c.JSON(h.service.CheckAll(c.Context()))
}

// HandleSchemaCheck reports upstream schema drift.
// @Summary Check Upstream Schema
// @Description Resolves every logical printing field against the upstream snapshot and lists the ones with no column.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport
// @Failure 503 {object} map[string]string "Not configured"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckSchema(c.Context())
	if err != nil {
		return h.fail(c, "Schema check failed", err)
	}
	if len(report.Missing) > 0 {
		logger.WithRayID(h.service.logger, c).Warn("Upstream schema drift detected", zap.Strings("missing", report.Missing))
	}
	return c.JSON(report)
}

// HandleIndexCheck verifies the index store.
// @Summary Check Index Store
// @Description Verifies that every card has printings, that representatives are among them and that each card has a search document.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.IndexReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/index [get]
func (h *Handler) HandleIndexCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckIndex(c.Context())
	if err != nil {
		return h.fail(c, "Index check failed", err)
	}
	return c.JSON(report)
}

// HandleAppCheck verifies the application store.
// @Summary Check App Store
// @Description Checks that the collection and status tables match their models.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.ModelReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/app [get]
func (h *Handler) HandleAppCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckApp(c.Context())
	if err != nil {
		return h.fail(c, "App store check failed", err)
	}
	return c.JSON(report)
}

// HandleStorageCheck verifies the publication bucket.
// @Summary Check Storage
// @Description Checks that the publication bucket exists and reads the metadata of the published index.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.StorageReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckStorage(c.Context())
	if err != nil {
		return h.fail(c, "Storage check failed", err)
	}
	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	if errors.Is(err, ErrNotConfigured) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

