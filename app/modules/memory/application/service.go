// Package memoryservice stores and recalls per-user memories.
package memoryservice

import (
	"context"
	"log/slog"

	memorydb "github.com/pocket-friend-club/companion-bot/app/modules/memory/infrastructure/repositories"
	"github.com/pocket-friend-club/companion-bot/app/shared/attr"
)

// MemoryService implements memory operations. The repository does all the
// work; there is no failure mode worth wrapping beyond logging.
type MemoryService struct {
	repo   memorydb.Repository
	logger *slog.Logger
}

// NewMemoryService creates a new MemoryService.
func NewMemoryService(repo memorydb.Repository, logger *slog.Logger) *MemoryService {
	return &MemoryService{repo: repo, logger: logger}
}

// Remember stores one memory for a (guild, user) pair.
func (s *MemoryService) Remember(ctx context.Context, guildID, userID int64, content string) error {
	if err := s.repo.Add(ctx, guildID, userID, content); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store memory",
			attr.Int64("guild_id", guildID),
			attr.Int64("user_id", userID),
			attr.Error(err),
		)
		return err
	}
	return nil
}

// Recall returns the newest memories for a (guild, user) pair.
func (s *MemoryService) Recall(ctx context.Context, guildID, userID int64) ([]string, error) {
	return s.repo.Recent(ctx, guildID, userID)
}
