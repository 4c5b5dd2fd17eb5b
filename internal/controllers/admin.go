package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amaumene/cineslime/internal/config"
	"github.com/amaumene/cineslime/internal/models"
)

// Summary is a snapshot of the archive and its users
type Summary struct {
	Medias          int64                      `json:"medias"`
	MediasByType    map[models.MediaType]int64 `json:"medias_by_type"`
	Users           int64                      `json:"users"`
	PendingRequests int64                      `json:"pending_requests"`
	Maintenance     bool                       `json:"maintenance"`
}

// BroadcastResult counts deliveries of one broadcast
type BroadcastResult struct {
	Sent   int
	Failed int
}

// AdminController implements the administrator's moderation and broadcast tools
type AdminController struct {
	users  UserStore
	stats  StatsStore
	delay  time.Duration
	logger *logrus.Logger
}

// NewAdminController creates a new admin controller
func NewAdminController(cfg *config.Config, users UserStore, stats StatsStore, logger *logrus.Logger) *AdminController {
	return &AdminController{
		users:  users,
		stats:  stats,
		delay:  cfg.BroadcastDelay,
		logger: logger,
	}
}

// Summary collects archive, user and request totals
func (c *AdminController) Summary(ctx context.Context) (*Summary, error) {
	medias, err := c.stats.CountMedias()
	if err != nil {
		return nil, fmt.Errorf("failed to count medias: %w", err)
	}
	byType, err := c.stats.CountMediasByType()
	if err != nil {
		return nil, fmt.Errorf("failed to count medias by type: %w", err)
	}
	users, err := c.stats.CountUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	pending, err := c.stats.CountPendingRequests()
	if err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}
	maintenance, err := c.stats.IsMaintenance()
	if err != nil {
		return nil, fmt.Errorf("failed to read maintenance flag: %w", err)
	}

	return &Summary{
		Medias:          medias,
		MediasByType:    byType,
		Users:           users,
		PendingRequests: pending,
		Maintenance:     maintenance,
	}, nil
}

// User returns what the bot knows about a user; models.ErrNotFound if nothing
func (c *AdminController) User(ctx context.Context, telegramID int64) (*models.User, error) {
	return c.users.GetUserByTelegramID(telegramID)
}

// Ban blocks a user from the bot
func (c *AdminController) Ban(ctx context.Context, telegramID int64) error {
	if err := c.users.SetBanned(telegramID, true); err != nil {
		return fmt.Errorf("failed to ban user %d: %w", telegramID, err)
	}
	c.logger.WithField("user_id", telegramID).Info("User banned")
	return nil
}

// Unban lifts a ban
func (c *AdminController) Unban(ctx context.Context, telegramID int64) error {
	if err := c.users.SetBanned(telegramID, false); err != nil {
		return fmt.Errorf("failed to unban user %d: %w", telegramID, err)
	}
	c.logger.WithField("user_id", telegramID).Info("User unbanned")
	return nil
}

// Allow whitelists a user, registering them if they never talked to the bot
func (c *AdminController) Allow(ctx context.Context, telegramID int64) error {
	if err := c.users.AllowUser(telegramID); err != nil {
		return fmt.Errorf("failed to allow user %d: %w", telegramID, err)
	}
	c.logger.WithField("user_id", telegramID).Info("User whitelisted")
	return nil
}

// ToggleMaintenance flips maintenance mode and returns the new state
func (c *AdminController) ToggleMaintenance(ctx context.Context) (bool, error) {
	enabled, err := c.users.ToggleMaintenance()
	if err != nil {
		return false, fmt.Errorf("failed to toggle maintenance: %w", err)
	}
	c.logger.WithField("enabled", enabled).Info("Maintenance mode toggled")
	return enabled, nil
}

// Broadcast sends text to every known user, pausing between sends.
// Failed deliveries are counted and skipped. Cancelling ctx stops early.
func (c *AdminController) Broadcast(ctx context.Context, text string, messenger Messenger) (BroadcastResult, error) {
	var result BroadcastResult

	ids, err := c.users.ListUserTelegramIDs()
	if err != nil {
		return result, fmt.Errorf("failed to list users: %w", err)
	}

	c.logger.WithField("recipients", len(ids)).Info("Starting broadcast")

	for i, id := range ids {
		if i > 0 && c.delay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(c.delay):
			}
		}

		if err := messenger.Notify(ctx, id, text); err != nil {
			result.Failed++
			c.logger.WithError(err).WithField("user_id", id).Debug("Broadcast delivery failed")
			continue
		}
		result.Sent++
	}

	c.logger.WithFields(logrus.Fields{
		"sent":   result.Sent,
		"failed": result.Failed,
	}).Info("Broadcast finished")

	return result, nil
}

// PendingRequests returns the oldest pending upload requests
func (c *AdminController) PendingRequests(ctx context.Context, limit int) ([]*models.Request, error) {
	return c.users.ListPendingRequests(limit)
}

// CompleteRequest marks a request as uploaded and returns it so the requester can be told
func (c *AdminController) CompleteRequest(ctx context.Context, id uint) (*models.Request, error) {
	req, err := c.users.GetRequestByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get request %d: %w", id, err)
	}
	if err := c.users.UpdateRequestStatus(id, models.RequestStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to complete request %d: %w", id, err)
	}
	req.Status = models.RequestStatusCompleted

	c.logger.WithFields(logrus.Fields{
		"request_id": id,
		"user_id":    req.UserID,
	}).Info("Request completed")

	return req, nil
}
