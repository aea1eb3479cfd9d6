package progressiondb

import (
	"context"
	"fmt"

	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// ListLevelRoles returns the guild's role rewards, level ascending.
func (db *ProgressionDBImpl) ListLevelRoles(ctx context.Context, guildID int64) ([]LevelRole, error) {
	var roles []LevelRole
	err := db.DB.NewSelect().
		Model(&roles).
		Where("guild_id = ?", guildID).
		Order("level ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list level roles: %w", err)
	}
	return roles, nil
}

// SetLevelRole upserts the role reward for a level.
func (db *ProgressionDBImpl) SetLevelRole(ctx context.Context, guildID int64, level int, roleID sharedtypes.RoleID) error {
	_, err := db.DB.NewInsert().
		Model(&LevelRole{GuildID: guildID, Level: level, RoleID: roleID}).
		On("CONFLICT (guild_id, level) DO UPDATE").
		Set("role_id = EXCLUDED.role_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set level role: %w", err)
	}
	return nil
}

// RemoveLevelRole deletes the role reward for a level.
func (db *ProgressionDBImpl) RemoveLevelRole(ctx context.Context, guildID int64, level int) error {
	_, err := db.DB.NewDelete().
		Model((*LevelRole)(nil)).
		Where("guild_id = ? AND level = ?", guildID, level).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove level role: %w", err)
	}
	return nil
}
