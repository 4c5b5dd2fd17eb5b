package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/amaumene/cineslime/internal/api"
	"github.com/amaumene/cineslime/internal/config"
	"github.com/amaumene/cineslime/internal/controllers"
	"github.com/amaumene/cineslime/internal/models"
	"github.com/amaumene/cineslime/internal/scheduler"
	"github.com/amaumene/cineslime/internal/telegram"
)

// Application is the assembled serve graph
type Application struct {
	cfg       *config.Config
	bot       *telegram.Bot
	server    *api.Server
	scheduler *scheduler.Scheduler
	tracer    *sdktrace.TracerProvider
	logger    *logrus.Logger
}

func newApplication(
	cfg *config.Config,
	bot *telegram.Bot,
	server *api.Server,
	sched *scheduler.Scheduler,
	tracer *sdktrace.TracerProvider,
	logger *logrus.Logger,
) *Application {
	return &Application{
		cfg:       cfg,
		bot:       bot,
		server:    server,
		scheduler: sched,
		tracer:    tracer,
		logger:    logger,
	}
}

// Run starts every component and blocks until a shutdown signal or a component failure
func (a *Application) Run(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.WithField("config_dir", filepath.Dir(a.cfg.DatabaseFile)).Info("Starting Cineslime")

	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer a.scheduler.Stop()

	// The first component to fail cancels the others
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(a.bot.Run)
	p.Go(a.server.Start)

	a.logger.Info("Cineslime is running")
	err := p.Wait()
	if flushErr := a.tracer.ForceFlush(context.Background()); flushErr != nil {
		a.logger.WithError(flushErr).Warn("Failed to flush spans")
	}
	a.logger.Info("Cineslime stopped")

	return err
}

func printSummary(w io.Writer, summary *controllers.Summary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	kinds := make([]string, 0, len(summary.MediasByType))
	for kind := range summary.MediasByType {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	fmt.Fprintf(w, "Archived files:   %d\n", summary.Medias)
	for _, kind := range kinds {
		fmt.Fprintf(w, "  %-14s  %d\n", kind, summary.MediasByType[models.MediaType(kind)])
	}
	fmt.Fprintf(w, "Users:            %d\n", summary.Users)
	fmt.Fprintf(w, "Pending requests: %d\n", summary.PendingRequests)
	fmt.Fprintf(w, "Maintenance:      %t\n", summary.Maintenance)

	return nil
}
