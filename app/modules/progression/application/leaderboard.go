package progressionservice

import (
	"context"

	progressiondb "github.com/pocket-friend-club/companion-bot/app/modules/progression/infrastructure/repositories"
)

// DefaultLeaderboardLimit caps the leaderboard when the caller passes no
// positive limit.
const DefaultLeaderboardLimit = 10

// GetLeaderboard returns the top users by XP. For guilds with a Discord id,
// XP is summed and level maxed per user across every row sharing that id.
func (s *ProgressionService) GetLeaderboard(ctx context.Context, ref GuildRef, limit int) ([]progressiondb.LeaderboardEntry, error) {
	if limit < 1 {
		limit = DefaultLeaderboardLimit
	}

	var entries []progressiondb.LeaderboardEntry
	err := s.withTelemetry(ctx, "GetLeaderboard", func(ctx context.Context) error {
		guild, opErr := s.resolveGuild(ctx, ref)
		if opErr != nil {
			return opErr
		}
		scope, opErr := s.aggregationScope(ctx, guild)
		if opErr != nil {
			return opErr
		}
		entries, opErr = s.repo.Leaderboard(ctx, scope, limit)
		return opErr
	})
	return entries, err
}

// GetNextRoleReward returns the reward with the smallest level strictly
// greater than currentLevel, or nil when none is configured above it.
func (s *ProgressionService) GetNextRoleReward(ctx context.Context, ref GuildRef, currentLevel int) (*progressiondb.LevelRole, error) {
	var next *progressiondb.LevelRole
	err := s.withTelemetry(ctx, "GetNextRoleReward", func(ctx context.Context) error {
		guild, opErr := s.resolveGuild(ctx, ref)
		if opErr != nil {
			return opErr
		}
		roles, opErr := s.repo.ListLevelRoles(ctx, guild.ID)
		if opErr != nil {
			return opErr
		}
		for i := range roles {
			if roles[i].Level > currentLevel && (next == nil || roles[i].Level < next.Level) {
				next = &roles[i]
			}
		}
		return nil
	})
	return next, err
}
