//go:build wireinject
// +build wireinject

package main

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/wire"

	"github.com/amaumene/cineslime/internal/api"
	"github.com/amaumene/cineslime/internal/api/handlers"
	"github.com/amaumene/cineslime/internal/config"
	"github.com/amaumene/cineslime/internal/controllers"
	"github.com/amaumene/cineslime/internal/models"
	"github.com/amaumene/cineslime/internal/scheduler"
	"github.com/amaumene/cineslime/internal/services/tmdb"
	"github.com/amaumene/cineslime/internal/services/yts"
	"github.com/amaumene/cineslime/internal/telegram"
)

var storeSet = wire.NewSet(
	config.Load,
	provideLogger,
	provideDatabase,
	wire.Bind(new(controllers.Archive), new(*models.Database)),
	wire.Bind(new(controllers.UserStore), new(*models.Database)),
	wire.Bind(new(controllers.StatsStore), new(*models.Database)),
	controllers.NewAdminController,
)

var applicationSet = wire.NewSet(
	storeSet,
	provideTracerProvider,
	tmdb.NewClient,
	wire.Bind(new(controllers.Catalog), new(*tmdb.Client)),
	provideTorrentClient,
	wire.Bind(new(controllers.TorrentFinder), new(*yts.Client)),
	provideRateLimiter,
	controllers.NewSearchController,
	controllers.NewIngestController,
	controllers.NewAccessController,
	controllers.NewLibraryController,
	telegram.NewBotAPI,
	wire.Bind(new(telegram.Sender), new(*tgbotapi.BotAPI)),
	telegram.NewBot,
	api.NewServer,
	wire.Bind(new(handlers.SummaryProvider), new(*controllers.AdminController)),
	scheduler.NewScheduler,
	wire.Bind(new(scheduler.Admin), new(*controllers.AdminController)),
	wire.Bind(new(scheduler.DigestSender), new(*telegram.Bot)),
	newApplication,
)

// InitializeApplication assembles the serve graph
func InitializeApplication() (*Application, func(), error) {
	wire.Build(applicationSet)
	return nil, nil, nil
}

// InitializeAdmin assembles just enough to read archive totals
func InitializeAdmin() (*controllers.AdminController, func(), error) {
	wire.Build(storeSet)
	return nil, nil, nil
}
