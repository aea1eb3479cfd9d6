package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"

	guildservice "github.com/pocket-friend-club/companion-bot/app/modules/guild/application"
	memoryservice "github.com/pocket-friend-club/companion-bot/app/modules/memory/application"
	progressionservice "github.com/pocket-friend-club/companion-bot/app/modules/progression/application"
	userservice "github.com/pocket-friend-club/companion-bot/app/modules/user/application"
	"github.com/pocket-friend-club/companion-bot/app/shared/logging"
	"github.com/pocket-friend-club/companion-bot/app/shared/metrics"
	"github.com/pocket-friend-club/companion-bot/config"
	"github.com/pocket-friend-club/companion-bot/db/bundb"
)

// App wires configuration, storage, and the module services together.
type App struct {
	Cfg    *config.Config
	Logger *slog.Logger

	GuildService       *guildservice.GuildService
	ProfileService     *userservice.ProfileService
	ProgressionService *progressionservice.ProgressionService
	MemoryService      *memoryservice.MemoryService

	db *bundb.DBService
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewLogger(cfg.Observability.LogLevel, "companion-bot")

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	meter := otel.GetMeterProvider().Meter("companion-bot")
	tracer := otel.GetTracerProvider().Tracer("companion-bot")

	opMetrics, err := metrics.NewOTelMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	guildSvc := guildservice.NewGuildService(dbService.GuildDB, logger, opMetrics, tracer)
	profileSvc := userservice.NewProfileService(dbService.UserDB, dbService.ProgressionDB, logger, opMetrics, tracer)
	progressionSvc := progressionservice.NewProgressionService(dbService.ProgressionDB, dbService.GuildDB, logger, opMetrics, tracer)
	memorySvc := memoryservice.NewMemoryService(dbService.MemoryDB, logger)

	return &App{
		Cfg:                cfg,
		Logger:             logger,
		GuildService:       guildSvc,
		ProfileService:     profileSvc,
		ProgressionService: progressionSvc,
		MemoryService:      memorySvc,
		db:                 dbService,
	}, nil
}

// DB returns the database service.
func (app *App) DB() *bundb.DBService {
	return app.db
}

// Close releases the application's resources.
func (app *App) Close() error {
	return app.db.Close()
}
