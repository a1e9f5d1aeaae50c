package integrity

import (
	"release-sync/core/logger"

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
	group.Get("/records", h.HandleRecordsCheck)
	group.Get("/feeds", h.HandleFeedsCheck)
	group.Get("/journal", h.HandleJournalCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := h.service.CheckAll(c.UserContext())
	return c.JSON(fiber.Map{"healthy": report.Healthy(), "report": report})
}

// HandleRecordsCheck parses every product record.
func (h *Handler) HandleRecordsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckRecords()
	if err != nil {
		l.Error("Record check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleFeedsCheck compares product records with feeds.
func (h *Handler) HandleFeedsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckFeeds(c.UserContext())
	if err != nil {
		l.Error("Feed check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleJournalCheck verifies the journal schema.
func (h *Handler) HandleJournalCheck(c *fiber.Ctx) error {
	return c.JSON(h.service.CheckJournal())
}
