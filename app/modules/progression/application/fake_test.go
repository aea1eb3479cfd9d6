package progressionservice

import (
	"context"
	"time"

	guilddb "github.com/pocket-friend-club/companion-bot/app/modules/guild/infrastructure/repositories"
	"github.com/pocket-friend-club/companion-bot/app/modules/progression/leveling"
	progressiondb "github.com/pocket-friend-club/companion-bot/app/modules/progression/infrastructure/repositories"
	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// ------------------------
// Fake Progression Repo
// ------------------------

// FakeProgressionRepository provides a programmable stub for the
// progressiondb.Repository interface.
type FakeProgressionRepository struct {
	trace []string

	GetOrCreateStatsFunc             func(ctx context.Context, userID, guildID int64) (*progressiondb.UserGuildStats, error)
	SetXPFunc                        func(ctx context.Context, userID, guildID int64, xp int64, level int, at time.Time) (*progressiondb.UserGuildStats, error)
	AddXPFunc                        func(ctx context.Context, userID, guildID int64, delta int64, level int, at time.Time) error
	ResetStatsFunc                   func(ctx context.Context, userID, guildID int64) (*progressiondb.UserGuildStats, error)
	AggregateStatsFunc               func(ctx context.Context, userID int64, guildIDs []int64) (int64, int, error)
	LeaderboardFunc                  func(ctx context.Context, guildIDs []int64, limit int) ([]progressiondb.LeaderboardEntry, error)
	ListThresholdsFunc               func(ctx context.Context, guildID int64) ([]leveling.Checkpoint, error)
	SetThresholdFunc                 func(ctx context.Context, guildID int64, level int, threshold int64) error
	RemoveThresholdFunc              func(ctx context.Context, guildID int64, level int) error
	ListLevelRolesFunc               func(ctx context.Context, guildID int64) ([]progressiondb.LevelRole, error)
	SetLevelRoleFunc                 func(ctx context.Context, guildID int64, level int, roleID sharedtypes.RoleID) error
	RemoveLevelRoleFunc              func(ctx context.Context, guildID int64, level int) error
	LastBirthdayAnnouncementYearFunc func(ctx context.Context, userID, guildID int64) (int, error)
	SetBirthdayAnnouncementYearFunc  func(ctx context.Context, userID, guildID int64, year int) error
}

// NewFakeProgressionRepository initializes a fake with an empty trace.
func NewFakeProgressionRepository() *FakeProgressionRepository {
	return &FakeProgressionRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeProgressionRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeProgressionRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeProgressionRepository) GetOrCreateStats(ctx context.Context, userID, guildID int64) (*progressiondb.UserGuildStats, error) {
	f.record("GetOrCreateStats")
	if f.GetOrCreateStatsFunc != nil {
		return f.GetOrCreateStatsFunc(ctx, userID, guildID)
	}
	return &progressiondb.UserGuildStats{UserID: userID, GuildID: guildID, XP: 0, Level: 1}, nil
}

func (f *FakeProgressionRepository) SetXP(ctx context.Context, userID, guildID int64, xp int64, level int, at time.Time) (*progressiondb.UserGuildStats, error) {
	f.record("SetXP")
	if f.SetXPFunc != nil {
		return f.SetXPFunc(ctx, userID, guildID, xp, level, at)
	}
	return &progressiondb.UserGuildStats{UserID: userID, GuildID: guildID, XP: xp, Level: level, LastXPAt: &at}, nil
}

func (f *FakeProgressionRepository) AddXP(ctx context.Context, userID, guildID int64, delta int64, level int, at time.Time) error {
	f.record("AddXP")
	if f.AddXPFunc != nil {
		return f.AddXPFunc(ctx, userID, guildID, delta, level, at)
	}
	return nil
}

func (f *FakeProgressionRepository) ResetStats(ctx context.Context, userID, guildID int64) (*progressiondb.UserGuildStats, error) {
	f.record("ResetStats")
	if f.ResetStatsFunc != nil {
		return f.ResetStatsFunc(ctx, userID, guildID)
	}
	return &progressiondb.UserGuildStats{UserID: userID, GuildID: guildID, XP: 0, Level: 1}, nil
}

func (f *FakeProgressionRepository) AggregateStats(ctx context.Context, userID int64, guildIDs []int64) (int64, int, error) {
	f.record("AggregateStats")
	if f.AggregateStatsFunc != nil {
		return f.AggregateStatsFunc(ctx, userID, guildIDs)
	}
	return 0, 1, nil
}

func (f *FakeProgressionRepository) Leaderboard(ctx context.Context, guildIDs []int64, limit int) ([]progressiondb.LeaderboardEntry, error) {
	f.record("Leaderboard")
	if f.LeaderboardFunc != nil {
		return f.LeaderboardFunc(ctx, guildIDs, limit)
	}
	return []progressiondb.LeaderboardEntry{}, nil
}

func (f *FakeProgressionRepository) ListThresholds(ctx context.Context, guildID int64) ([]leveling.Checkpoint, error) {
	f.record("ListThresholds")
	if f.ListThresholdsFunc != nil {
		return f.ListThresholdsFunc(ctx, guildID)
	}
	return nil, nil
}

func (f *FakeProgressionRepository) SetThreshold(ctx context.Context, guildID int64, level int, threshold int64) error {
	f.record("SetThreshold")
	if f.SetThresholdFunc != nil {
		return f.SetThresholdFunc(ctx, guildID, level, threshold)
	}
	return nil
}

func (f *FakeProgressionRepository) RemoveThreshold(ctx context.Context, guildID int64, level int) error {
	f.record("RemoveThreshold")
	if f.RemoveThresholdFunc != nil {
		return f.RemoveThresholdFunc(ctx, guildID, level)
	}
	return nil
}

func (f *FakeProgressionRepository) ListLevelRoles(ctx context.Context, guildID int64) ([]progressiondb.LevelRole, error) {
	f.record("ListLevelRoles")
	if f.ListLevelRolesFunc != nil {
		return f.ListLevelRolesFunc(ctx, guildID)
	}
	return nil, nil
}

func (f *FakeProgressionRepository) SetLevelRole(ctx context.Context, guildID int64, level int, roleID sharedtypes.RoleID) error {
	f.record("SetLevelRole")
	if f.SetLevelRoleFunc != nil {
		return f.SetLevelRoleFunc(ctx, guildID, level, roleID)
	}
	return nil
}

func (f *FakeProgressionRepository) RemoveLevelRole(ctx context.Context, guildID int64, level int) error {
	f.record("RemoveLevelRole")
	if f.RemoveLevelRoleFunc != nil {
		return f.RemoveLevelRoleFunc(ctx, guildID, level)
	}
	return nil
}

func (f *FakeProgressionRepository) LastBirthdayAnnouncementYear(ctx context.Context, userID, guildID int64) (int, error) {
	f.record("LastBirthdayAnnouncementYear")
	if f.LastBirthdayAnnouncementYearFunc != nil {
		return f.LastBirthdayAnnouncementYearFunc(ctx, userID, guildID)
	}
	return 0, nil
}

func (f *FakeProgressionRepository) SetBirthdayAnnouncementYear(ctx context.Context, userID, guildID int64, year int) error {
	f.record("SetBirthdayAnnouncementYear")
	if f.SetBirthdayAnnouncementYearFunc != nil {
		return f.SetBirthdayAnnouncementYearFunc(ctx, userID, guildID, year)
	}
	return nil
}

var _ progressiondb.Repository = (*FakeProgressionRepository)(nil)

// ------------------------
// Fake Guild Directory
// ------------------------

// FakeGuildDirectory stubs the GuildDirectory interface.
type FakeGuildDirectory struct {
	GetByIDFunc              func(ctx context.Context, guildID int64) (*guilddb.Guild, error)
	ListByDiscordGuildIDFunc func(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID) ([]guilddb.Guild, error)
}

func (f *FakeGuildDirectory) GetByID(ctx context.Context, guildID int64) (*guilddb.Guild, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, guildID)
	}
	return nil, guilddb.ErrGuildNotFound
}

func (f *FakeGuildDirectory) ListByDiscordGuildID(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID) ([]guilddb.Guild, error) {
	if f.ListByDiscordGuildIDFunc != nil {
		return f.ListByDiscordGuildIDFunc(ctx, discordGuildID)
	}
	return nil, nil
}

var _ GuildDirectory = (*FakeGuildDirectory)(nil)
