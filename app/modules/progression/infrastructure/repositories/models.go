package progressiondb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// UserGuildStats is one user's progression in one guild. The level column is
// a cache; the curve over the row's XP is authoritative and recomputed on
// every read.
type UserGuildStats struct {
	bun.BaseModel `bun:"table:user_guild_stats,alias:s"`

	ID      int64 `bun:"id,pk,autoincrement" json:"id"`
	UserID  int64 `bun:"user_id,notnull" json:"user_id"`
	GuildID int64 `bun:"guild_id,notnull" json:"guild_id"`

	XP    int64 `bun:"xp,notnull,default:0" json:"xp"`
	Level int   `bun:"level,notnull,default:1" json:"level"`

	LastXPAt                     *time.Time `bun:"last_xp_at,nullzero" json:"last_xp_at,omitempty"`
	LastBirthdayAnnouncementYear int        `bun:"last_birthday_announcement_year,notnull,default:0" json:"last_birthday_announcement_year"`
}

// XPLevel is one admin-configured checkpoint of the guild's level curve.
type XPLevel struct {
	bun.BaseModel `bun:"table:xp_levels,alias:xl"`

	ID        int64 `bun:"id,pk,autoincrement" json:"id"`
	GuildID   int64 `bun:"guild_id,notnull" json:"guild_id"`
	Level     int   `bun:"level,notnull" json:"level"`
	Threshold int64 `bun:"threshold,notnull" json:"threshold"`
}

// LevelRole maps a level to the Discord role granted on reaching it.
type LevelRole struct {
	bun.BaseModel `bun:"table:level_roles,alias:lr"`

	ID      int64              `bun:"id,pk,autoincrement" json:"id"`
	GuildID int64              `bun:"guild_id,notnull" json:"guild_id"`
	Level   int                `bun:"level,notnull" json:"level"`
	RoleID  sharedtypes.RoleID `bun:"role_id,notnull" json:"role_id"`
}

// LeaderboardEntry is one aggregated leaderboard row.
type LeaderboardEntry struct {
	UserID        int64                     `bun:"user_id" json:"user_id"`
	DiscordUserID sharedtypes.DiscordUserID `bun:"discord_user_id" json:"discord_user_id"`
	DisplayName   *string                   `bun:"display_name" json:"display_name,omitempty"`
	XP            int64                     `bun:"xp" json:"xp"`
	Level         int                       `bun:"level" json:"level"`
}
