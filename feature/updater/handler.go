package updater

import (
	"context"
	"errors"

	"release-sync/core/logger"
	"release-sync/core/reconcile"
	"release-sync/feature/journal"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// History reads journaled cycle changes.
type History interface {
	Changes(ctx context.Context, product string, limit int) ([]journal.CycleChange, error)
}

// Handler handles HTTP requests for product updates.
type Handler struct {
	updater *Updater
	history History
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler. history may be nil.
func NewHandler(updater *Updater, history History, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{updater: updater, history: history, logger: logger}
}

// RegisterRoutes registers the product routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/products")
	group.Get("/", h.HandleList)
	group.Post("/update", h.HandleUpdateAll)
	group.Get("/:name/plan", h.HandlePlan)
	group.Post("/:name/update", h.HandleUpdate)
	group.Get("/:name/history", h.HandleHistory)
}

// HandleList returns the names of all product records.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	names, err := h.updater.Products()
	if err != nil {
		l.Error("Listing products failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"products": names})
}

// HandlePlan reconciles a product without writing anything.
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	name := c.Params("name")
	if !ValidName(name) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product name"})
	}
	l := logger.WithRayID(h.logger, c)

	report, err := h.updater.Plan(c.UserContext(), name)
	if err != nil {
		return h.failure(c, l, report, err)
	}
	return c.JSON(report)
}

// HandleUpdate reconciles a product and writes its record.
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	name := c.Params("name")
	if !ValidName(name) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product name"})
	}
	l := logger.WithRayID(h.logger, c)
	l.Info("Triggering product update", zap.String("product", name))

	report, err := h.updater.UpdateProduct(c.UserContext(), name)
	if err != nil {
		return h.failure(c, l, report, err)
	}
	return c.JSON(report)
}

// HandleUpdateAll reconciles every product.
func (h *Handler) HandleUpdateAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Triggering update of all products")

	run, err := h.updater.UpdateAll(c.UserContext(), nil)
	if err != nil {
		l.Error("Update run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(run)
}

// HandleHistory returns the journaled changes of a product.
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	if h.history == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "journal disabled"})
	}
	name := c.Params("name")
	l := logger.WithRayID(h.logger, c)

	changes, err := h.history.Changes(c.UserContext(), name, c.QueryInt("limit", 50))
	if err != nil {
		l.Error("Reading journal failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"product": name, "changes": changes})
}

func (h *Handler) failure(c *fiber.Ctx, l *zap.Logger, report *ProductReport, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, reconcile.ErrInvalidInput) {
		status = fiber.StatusUnprocessableEntity
	}
	l.Error("Product update failed", zap.Error(err))
	return c.Status(status).JSON(report)
}
