package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/cineslime/internal/controllers"
)

// SummaryProvider computes the archive snapshot; *controllers.AdminController implements it
type SummaryProvider interface {
	Summary(ctx context.Context) (*controllers.Summary, error)
}

// StatusHandler handles status requests
type StatusHandler struct {
	summaries SummaryProvider
	logger    *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(summaries SummaryProvider, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		summaries: summaries,
		logger:    logger,
	}
}

// Handle serves archive totals, users, pending requests and the maintenance flag
func (h *StatusHandler) Handle(c *fiber.Ctx) error {
	summary, err := h.summaries.Summary(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("Failed to collect status")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.JSON(summary)
}
