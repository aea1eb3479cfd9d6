package progressiondb

import (
	"context"
	"fmt"

	"github.com/pocket-friend-club/companion-bot/app/modules/progression/leveling"
)

// ListThresholds returns the guild's configured curve checkpoints, level
// ascending.
func (db *ProgressionDBImpl) ListThresholds(ctx context.Context, guildID int64) ([]leveling.Checkpoint, error) {
	var rows []XPLevel
	err := db.DB.NewSelect().
		Model(&rows).
		Where("guild_id = ?", guildID).
		Order("level ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list xp levels: %w", err)
	}

	checkpoints := make([]leveling.Checkpoint, 0, len(rows))
	for _, row := range rows {
		checkpoints = append(checkpoints, leveling.Checkpoint{Level: row.Level, Threshold: row.Threshold})
	}
	return checkpoints, nil
}

// SetThreshold upserts one curve checkpoint.
func (db *ProgressionDBImpl) SetThreshold(ctx context.Context, guildID int64, level int, threshold int64) error {
	_, err := db.DB.NewInsert().
		Model(&XPLevel{GuildID: guildID, Level: level, Threshold: threshold}).
		On("CONFLICT (guild_id, level) DO UPDATE").
		Set("threshold = EXCLUDED.threshold").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set xp level: %w", err)
	}
	return nil
}

// RemoveThreshold deletes one curve checkpoint.
func (db *ProgressionDBImpl) RemoveThreshold(ctx context.Context, guildID int64, level int) error {
	_, err := db.DB.NewDelete().
		Model((*XPLevel)(nil)).
		Where("guild_id = ? AND level = ?", guildID, level).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove xp level: %w", err)
	}
	return nil
}
