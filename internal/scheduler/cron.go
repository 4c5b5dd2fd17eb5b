package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/cineslime/internal/config"
	"github.com/amaumene/cineslime/internal/controllers"
	"github.com/amaumene/cineslime/internal/metrics"
	"github.com/amaumene/cineslime/internal/models"
)

const (
	gaugesSchedule = "*/5 * * * *"
	digestSize     = 20
)

// Admin is the slice of the admin controller the jobs need
type Admin interface {
	Summary(ctx context.Context) (*controllers.Summary, error)
	PendingRequests(ctx context.Context, limit int) ([]*models.Request, error)
}

// DigestSender delivers the pending requests digest to the administrator
type DigestSender interface {
	SendRequestDigest(ctx context.Context, reqs []*models.Request) error
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron           *cron.Cron
	admin          Admin
	digest         DigestSender
	digestSchedule string
	logger         *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg *config.Config, admin Admin, digest DigestSender, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		admin:          admin,
		digest:         digest,
		digestSchedule: cfg.RequestDigestCron,
		logger:         logger,
	}
}

// Start registers the jobs and starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("Starting scheduler")

	if _, err := s.cron.AddFunc(gaugesSchedule, func() { s.RefreshGauges(ctx) }); err != nil {
		return fmt.Errorf("failed to add gauges job: %w", err)
	}

	// An empty schedule disables the digest
	if s.digestSchedule != "" {
		if _, err := s.cron.AddFunc(s.digestSchedule, func() { s.SendDigest(ctx) }); err != nil {
			return fmt.Errorf("failed to add digest job: %w", err)
		}
	}

	s.cron.Start()
	s.logger.WithField("digest_schedule", s.digestSchedule).Info("Scheduler started")

	go s.RefreshGauges(ctx)

	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

// RefreshGauges publishes archive and user totals
func (s *Scheduler) RefreshGauges(ctx context.Context) {
	summary, err := s.admin.Summary(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Gauges refresh failed")
		return
	}

	metrics.ArchiveRecords.Reset()
	for kind, count := range summary.MediasByType {
		metrics.ArchiveRecords.WithLabelValues(string(kind)).Set(float64(count))
	}
	metrics.Users.Set(float64(summary.Users))

	s.logger.WithFields(logrus.Fields{
		"medias": summary.Medias,
		"users":  summary.Users,
	}).Debug("Gauges refreshed")
}

// SendDigest sends the administrator the oldest pending requests
func (s *Scheduler) SendDigest(ctx context.Context) {
	reqs, err := s.admin.PendingRequests(ctx, digestSize)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list pending requests")
		return
	}
	if len(reqs) == 0 {
		s.logger.Debug("No pending requests for digest")
		return
	}

	if err := s.digest.SendRequestDigest(ctx, reqs); err != nil {
		s.logger.WithError(err).Error("Request digest failed")
		return
	}

	s.logger.WithField("count", len(reqs)).Info("Request digest sent")
}
