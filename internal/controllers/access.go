package controllers

import (
	"github.com/sirupsen/logrus"

	"github.com/amaumene/cineslime/internal/config"
	"github.com/amaumene/cineslime/internal/metrics"
	"github.com/amaumene/cineslime/internal/utils"
)

// Decision is the verdict of the access check for one update
type Decision string

const (
	DecisionAllowed        Decision = "allowed"
	DecisionRateLimited    Decision = "rate_limited" // dropped without a reply
	DecisionBanned         Decision = "banned"
	DecisionMaintenance    Decision = "maintenance"
	DecisionNotWhitelisted Decision = "not_whitelisted"
	DecisionError          Decision = "error"
)

// AccessController gates every user update
type AccessController struct {
	cfg     *config.Config
	users   UserStore
	limiter *utils.RateLimiter
	logger  *logrus.Logger
}

// NewAccessController creates a new access controller
func NewAccessController(cfg *config.Config, users UserStore, limiter *utils.RateLimiter, logger *logrus.Logger) *AccessController {
	return &AccessController{
		cfg:     cfg,
		users:   users,
		limiter: limiter,
		logger:  logger,
	}
}

// Check registers the user and decides whether the update may proceed.
// Order: rate limit, registration, ban, maintenance, whitelist. The admin passes
// everything but the rate limit.
func (c *AccessController) Check(userID int64, username, firstName string) Decision {
	if c.limiter.IsLimited(userID) {
		metrics.RateLimited.Inc()
		c.logger.WithField("user_id", userID).Debug("Update dropped by rate limiter")
		return DecisionRateLimited
	}

	user, err := c.users.UpsertUser(userID, username, firstName)
	if err != nil {
		c.logger.WithError(err).WithField("user_id", userID).Error("Failed to register user")
		return DecisionError
	}

	if c.cfg.IsAdmin(userID) {
		return DecisionAllowed
	}

	if user.IsBanned {
		return DecisionBanned
	}

	maintenance, err := c.users.IsMaintenance()
	if err != nil {
		c.logger.WithError(err).Error("Failed to read maintenance flag")
		return DecisionError
	}
	if maintenance {
		return DecisionMaintenance
	}

	if c.cfg.WhitelistEnabled && !user.IsWhitelisted {
		return DecisionNotWhitelisted
	}

	return DecisionAllowed
}

// IsAdmin reports whether userID is the administrator
func (c *AccessController) IsAdmin(userID int64) bool {
	return c.cfg.IsAdmin(userID)
}
