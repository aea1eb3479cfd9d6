package memorydb

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// MaxMemoryItems caps how many memories feed a prompt.
const MaxMemoryItems = 15

// MemoryDBImpl is the bun-backed memory repository.
type MemoryDBImpl struct {
	DB *bun.DB
}

// Add stores one memory for a (guild, user) pair. Blank content is ignored.
func (db *MemoryDBImpl) Add(ctx context.Context, guildID, userID int64, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	_, err := db.DB.NewInsert().
		Model(&MemoryEntry{GuildID: guildID, UserID: userID, Content: content}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add memory: %w", err)
	}
	return nil
}

// Recent returns the newest memories for a (guild, user) pair, capped at
// MaxMemoryItems.
func (db *MemoryDBImpl) Recent(ctx context.Context, guildID, userID int64) ([]string, error) {
	var entries []MemoryEntry
	err := db.DB.NewSelect().
		Model(&entries).
		Column("content").
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Order("created_at DESC").
		Limit(MaxMemoryItems).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list memories: %w", err)
	}

	contents := make([]string, 0, len(entries))
	for _, entry := range entries {
		contents = append(contents, entry.Content)
	}
	return contents, nil
}

// Repository defines memory data operations.
type Repository interface {
	Add(ctx context.Context, guildID, userID int64, content string) error
	Recent(ctx context.Context, guildID, userID int64) ([]string, error)
}

var _ Repository = (*MemoryDBImpl)(nil)
