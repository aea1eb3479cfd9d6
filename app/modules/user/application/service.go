// Package profileservice exposes user profile operations: the free-form
// fields the prompt layer reads, plus birthday announcement gating.
package profileservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	userdb "github.com/pocket-friend-club/companion-bot/app/modules/user/infrastructure/repositories"
	"github.com/pocket-friend-club/companion-bot/app/shared/attr"
	"github.com/pocket-friend-club/companion-bot/app/shared/metrics"
)

const component = "ProfileService"

// BirthdayGate tracks the last year a birthday announcement went out for a
// (user, guild) pair. Implemented by the progression stats repository, which
// owns that column.
type BirthdayGate interface {
	LastBirthdayAnnouncementYear(ctx context.Context, userID, guildID int64) (int, error)
	SetBirthdayAnnouncementYear(ctx context.Context, userID, guildID int64, year int) error
}

// ProfileService implements user profile operations.
type ProfileService struct {
	repo    userdb.Repository
	gate    BirthdayGate
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
}

// NewProfileService creates a new ProfileService.
func NewProfileService(
	repo userdb.Repository,
	gate BirthdayGate,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
) *ProfileService {
	return &ProfileService{
		repo:    repo,
		gate:    gate,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

func (s *ProfileService) withTelemetry(ctx context.Context, operationName string, op func(ctx context.Context) error) (err error) {
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
