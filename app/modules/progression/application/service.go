// Package progressionservice orchestrates XP awards, level computation, and
// reward resolution. The relational store is the single source of truth:
// nothing is cached across calls, and every operation re-reads.
package progressionservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	guilddb "github.com/pocket-friend-club/companion-bot/app/modules/guild/infrastructure/repositories"
	progressiondb "github.com/pocket-friend-club/companion-bot/app/modules/progression/infrastructure/repositories"
	"github.com/pocket-friend-club/companion-bot/app/shared/attr"
	"github.com/pocket-friend-club/companion-bot/app/shared/metrics"
	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

const component = "ProgressionService"

// CooldownWindow is the minimum gap between two awards to the same
// (user, guild) pair. A single timestamp comparison, best-effort under race.
const CooldownWindow = 5 * time.Second

// ErrUnknownGuild is returned when a guild reference cannot be resolved.
var ErrUnknownGuild = errors.New("unknown guild")

// GuildDirectory is the slice of the guild repository the engine needs to
// resolve references and find rows sharing a Discord guild id.
type GuildDirectory interface {
	GetByID(ctx context.Context, guildID int64) (*guilddb.Guild, error)
	ListByDiscordGuildID(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID) ([]guilddb.Guild, error)
}

// GuildRef refers to a guild either by its loaded row or by internal id.
// Every operation resolves it exactly once at entry.
type GuildRef struct {
	row *guilddb.Guild
	id  int64
}

// RefFromGuild wraps an already-loaded guild row.
func RefFromGuild(guild *guilddb.Guild) GuildRef { return GuildRef{row: guild} }

// RefFromID refers to a guild by internal id; the row is looked up on use.
func RefFromID(guildID int64) GuildRef { return GuildRef{id: guildID} }

// ProgressionService implements the progression engine.
type ProgressionService struct {
	repo    progressiondb.Repository
	guilds  GuildDirectory
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer

	now func() time.Time
}

// NewProgressionService creates a new ProgressionService.
func NewProgressionService(
	repo progressiondb.Repository,
	guilds GuildDirectory,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
) *ProgressionService {
	return &ProgressionService{
		repo:    repo,
		guilds:  guilds,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		now:     time.Now,
	}
}

// resolveGuild turns a GuildRef into a guild row. An unresolvable reference
// is a configuration error, never silently defaulted.
func (s *ProgressionService) resolveGuild(ctx context.Context, ref GuildRef) (*guilddb.Guild, error) {
	if ref.row != nil {
		return ref.row, nil
	}
	guild, err := s.guilds.GetByID(ctx, ref.id)
	if err != nil {
		if errors.Is(err, guilddb.ErrGuildNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownGuild, ref.id)
		}
		return nil, err
	}
	return guild, nil
}

// aggregationScope returns the internal ids of every guild row sharing the
// guild's Discord id. Normally one id; more means reconciliation has not
// caught up, and reads must still aggregate correctly.
func (s *ProgressionService) aggregationScope(ctx context.Context, guild *guilddb.Guild) ([]int64, error) {
	if guild.DiscordGuildID == "" {
		return []int64{guild.ID}, nil
	}
	rows, err := s.guilds.ListByDiscordGuildID(ctx, guild.DiscordGuildID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []int64{guild.ID}, nil
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (s *ProgressionService) withTelemetry(ctx context.Context, operationName string, op func(ctx context.Context) error) (err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, component)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, component, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, component)
			span.RecordError(err)
		}
	}()

	if err = op(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, component)
		span.RecordError(err)
		return fmt.Errorf("%s: %w", operationName, err)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, component)
	return nil
}
