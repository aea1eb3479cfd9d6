package progressiondb

import (
	"context"
	"time"

	"github.com/pocket-friend-club/companion-bot/app/modules/progression/leveling"
	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// Repository defines progression data operations.
type Repository interface {
	GetOrCreateStats(ctx context.Context, userID, guildID int64) (*UserGuildStats, error)
	SetXP(ctx context.Context, userID, guildID int64, xp int64, level int, at time.Time) (*UserGuildStats, error)
	AddXP(ctx context.Context, userID, guildID int64, delta int64, level int, at time.Time) error
	ResetStats(ctx context.Context, userID, guildID int64) (*UserGuildStats, error)
	AggregateStats(ctx context.Context, userID int64, guildIDs []int64) (int64, int, error)
	Leaderboard(ctx context.Context, guildIDs []int64, limit int) ([]LeaderboardEntry, error)

	ListThresholds(ctx context.Context, guildID int64) ([]leveling.Checkpoint, error)
	SetThreshold(ctx context.Context, guildID int64, level int, threshold int64) error
	RemoveThreshold(ctx context.Context, guildID int64, level int) error

	ListLevelRoles(ctx context.Context, guildID int64) ([]LevelRole, error)
	SetLevelRole(ctx context.Context, guildID int64, level int, roleID sharedtypes.RoleID) error
	RemoveLevelRole(ctx context.Context, guildID int64, level int) error

	LastBirthdayAnnouncementYear(ctx context.Context, userID, guildID int64) (int, error)
	SetBirthdayAnnouncementYear(ctx context.Context, userID, guildID int64, year int) error
}

var _ Repository = (*ProgressionDBImpl)(nil)
