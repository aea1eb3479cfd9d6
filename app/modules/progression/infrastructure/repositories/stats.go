package progressiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

var ErrStatsNotFound = errors.New("stats row not found")

// ProgressionDBImpl is the bun-backed progression repository.
type ProgressionDBImpl struct {
	DB *bun.DB
}

// GetOrCreateStats returns the stats row for a (user, guild) pair, creating
// it lazily at XP 0, level 1. Insert-then-reread: ON CONFLICT DO NOTHING
// absorbs the duplicate-insert race and the re-select resolves to whichever
// row won.
func (db *ProgressionDBImpl) GetOrCreateStats(ctx context.Context, userID, guildID int64) (*UserGuildStats, error) {
	stats, err := db.getStats(ctx, userID, guildID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, ErrStatsNotFound) {
		return nil, err
	}

	_, err = db.DB.NewInsert().
		Model(&UserGuildStats{UserID: userID, GuildID: guildID, XP: 0, Level: 1}).
		On("CONFLICT (user_id, guild_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats row: %w", err)
	}

	return db.getStats(ctx, userID, guildID)
}

func (db *ProgressionDBImpl) getStats(ctx context.Context, userID, guildID int64) (*UserGuildStats, error) {
	stats := new(UserGuildStats)
	err := db.DB.NewSelect().
		Model(stats).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to get stats row: %w", err)
	}
	return stats, nil
}

// SetXP writes xp and level and refreshes last_xp_at, returning the updated
// row. Clamping and level derivation are the service's concern.
func (db *ProgressionDBImpl) SetXP(ctx context.Context, userID, guildID int64, xp int64, level int, at time.Time) (*UserGuildStats, error) {
	if _, err := db.GetOrCreateStats(ctx, userID, guildID); err != nil {
		return nil, err
	}
	_, err := db.DB.NewUpdate().
		Model((*UserGuildStats)(nil)).
		Set("xp = ?", xp).
		Set("level = ?", level).
		Set("last_xp_at = ?", at).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to set xp: %w", err)
	}
	return db.getStats(ctx, userID, guildID)
}

// AddXP increments the local row's XP by delta and caches the given level.
// Only the local row is written; cross-row aggregation is recomputed on read.
func (db *ProgressionDBImpl) AddXP(ctx context.Context, userID, guildID int64, delta int64, level int, at time.Time) error {
	res, err := db.DB.NewUpdate().
		Model((*UserGuildStats)(nil)).
		Set("xp = xp + ?", delta).
		Set("level = ?", level).
		Set("last_xp_at = ?", at).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add xp: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrStatsNotFound
	}
	return nil
}

// ResetStats zeroes the local row: XP 0, level 1. Does not touch other rows
// sharing the guild's Discord id.
func (db *ProgressionDBImpl) ResetStats(ctx context.Context, userID, guildID int64) (*UserGuildStats, error) {
	if _, err := db.GetOrCreateStats(ctx, userID, guildID); err != nil {
		return nil, err
	}
	_, err := db.DB.NewUpdate().
		Model((*UserGuildStats)(nil)).
		Set("xp = 0").
		Set("level = 1").
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reset stats: %w", err)
	}
	return db.getStats(ctx, userID, guildID)
}

// AggregateStats sums XP and takes the max level for one user across the
// given guild rows. Zero rows aggregate to (0, 1).
func (db *ProgressionDBImpl) AggregateStats(ctx context.Context, userID int64, guildIDs []int64) (int64, int, error) {
	if len(guildIDs) == 0 {
		return 0, 1, nil
	}

	var agg struct {
		XP    int64 `bun:"xp"`
		Level int   `bun:"level"`
	}
	err := db.DB.NewSelect().
		Model((*UserGuildStats)(nil)).
		ColumnExpr("COALESCE(SUM(s.xp), 0) AS xp").
		ColumnExpr("COALESCE(MAX(s.level), 1) AS level").
		Where("user_id = ?", userID).
		Where("guild_id IN (?)", bun.In(guildIDs)).
		Scan(ctx, &agg)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	if agg.Level < 1 {
		agg.Level = 1
	}
	return agg.XP, agg.Level, nil
}

// Leaderboard aggregates XP per user across the given guild rows: SUM(xp)
// descending, MAX(level), ties broken by user id ascending.
func (db *ProgressionDBImpl) Leaderboard(ctx context.Context, guildIDs []int64, limit int) ([]LeaderboardEntry, error) {
	if len(guildIDs) == 0 || limit < 1 {
		return []LeaderboardEntry{}, nil
	}

	var entries []LeaderboardEntry
	err := db.DB.NewSelect().
		TableExpr("user_guild_stats AS s").
		ColumnExpr("s.user_id AS user_id").
		ColumnExpr("u.discord_user_id AS discord_user_id").
		ColumnExpr("u.display_name AS display_name").
		ColumnExpr("SUM(s.xp) AS xp").
		ColumnExpr("MAX(s.level) AS level").
		Join("JOIN users AS u ON u.id = s.user_id").
		Where("s.guild_id IN (?)", bun.In(guildIDs)).
		GroupExpr("s.user_id, u.discord_user_id, u.display_name").
		OrderExpr("xp DESC, s.user_id ASC").
		Limit(limit).
		Scan(ctx, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	if entries == nil {
		entries = []LeaderboardEntry{}
	}
	return entries, nil
}

// LastBirthdayAnnouncementYear returns the last year a birthday announcement
// went out for the pair, 0 when never.
func (db *ProgressionDBImpl) LastBirthdayAnnouncementYear(ctx context.Context, userID, guildID int64) (int, error) {
	stats, err := db.GetOrCreateStats(ctx, userID, guildID)
	if err != nil {
		return 0, err
	}
	return stats.LastBirthdayAnnouncementYear, nil
}

// SetBirthdayAnnouncementYear records the year of the latest announcement.
func (db *ProgressionDBImpl) SetBirthdayAnnouncementYear(ctx context.Context, userID, guildID int64, year int) error {
	if _, err := db.GetOrCreateStats(ctx, userID, guildID); err != nil {
		return err
	}
	_, err := db.DB.NewUpdate().
		Model((*UserGuildStats)(nil)).
		Set("last_birthday_announcement_year = ?", year).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set birthday announcement year: %w", err)
	}
	return nil
}
