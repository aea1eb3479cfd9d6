package progressionservice

import (
	"context"

	"github.com/pocket-friend-club/companion-bot/app/modules/progression/leveling"
	progressiondb "github.com/pocket-friend-club/companion-bot/app/modules/progression/infrastructure/repositories"
	"github.com/pocket-friend-club/companion-bot/app/shared/attr"
	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// SetUserXP is the admin override: writes the user's local XP directly,
// recomputing the cached level from the curve and bypassing the cooldown.
// Negative input is clamped to zero rather than rejected.
func (s *ProgressionService) SetUserXP(ctx context.Context, ref GuildRef, userID int64, xp int64) (*progressiondb.UserGuildStats, error) {
	var stats *progressiondb.UserGuildStats
	err := s.withTelemetry(ctx, "SetUserXP", func(ctx context.Context) error {
		guild, opErr := s.resolveGuild(ctx, ref)
		if opErr != nil {
			return opErr
		}

		if xp < 0 {
			s.logger.WarnContext(ctx, "Clamping negative xp to zero",
				attr.Int64("guild_id", guild.ID),
				attr.Int64("user_id", userID),
				attr.Int64("requested_xp", xp),
			)
			xp = 0
		}

		checkpoints, opErr := s.repo.ListThresholds(ctx, guild.ID)
		if opErr != nil {
			return opErr
		}
		curve := leveling.BuildCurve(checkpoints, leveling.MaxLevel)

		stats, opErr = s.repo.SetXP(ctx, userID, guild.ID, xp, curve.LevelForXP(xp), s.now())
		return opErr
	})
	return stats, err
}

// ResetUserStats zeroes the user's stats in this guild: XP 0, level 1.
// Operates on the local row only; if unmerged rows for the same Discord
// guild still exist, their XP remains visible in aggregates. Known gap,
// kept as observed.
func (s *ProgressionService) ResetUserStats(ctx context.Context, ref GuildRef, userID int64) (*progressiondb.UserGuildStats, error) {
	var stats *progressiondb.UserGuildStats
	err := s.withTelemetry(ctx, "ResetUserStats", func(ctx context.Context) error {
		guild, opErr := s.resolveGuild(ctx, ref)
		if opErr != nil {
			return opErr
		}
		stats, opErr = s.repo.ResetStats(ctx, userID, guild.ID)
		return opErr
	})
	return stats, err
}

// SetLevelThreshold upserts one curve checkpoint for the guild.
func (s *ProgressionService) SetLevelThreshold(ctx context.Context, ref GuildRef, level int, threshold int64) error {
	return s.withTelemetry(ctx, "SetLevelThreshold", func(ctx context.Context) error {
		guild, opErr := s.resolveGuild(ctx, ref)
		if opErr != nil {
			return opErr
		}
		return s.repo.SetThreshold(ctx, guild.ID, level, threshold)
	})
}

// RemoveLevelThreshold deletes one curve checkpoint for the guild.
func (s *ProgressionService) RemoveLevelThreshold(ctx context.Context, ref GuildRef, level int) error {
	return s.withTelemetry(ctx, "RemoveLevelThreshold", func(ctx context.Context) error {
		guild, opErr := s.resolveGuild(ctx, ref)
		if opErr != nil {
			return opErr
		}
		return s.repo.RemoveThreshold(ctx, guild.ID, level)
	})
}

// SetLevelRole upserts the role reward for a level.
func (s *ProgressionService) SetLevelRole(ctx context.Context, ref GuildRef, level int, roleID sharedtypes.RoleID) error {
	return s.withTelemetry(ctx, "SetLevelRole", func(ctx context.Context) error {
		guild, opErr := s.resolveGuild(ctx, ref)
		if opErr != nil {
			return opErr
		}
		return s.repo.SetLevelRole(ctx, guild.ID, level, roleID)
	})
}

// RemoveLevelRole deletes the role reward for a level.
func (s *ProgressionService) RemoveLevelRole(ctx context.Context, ref GuildRef, level int) error {
	return s.withTelemetry(ctx, "RemoveLevelRole", func(ctx context.Context) error {
		guild, opErr := s.resolveGuild(ctx, ref)
		if opErr != nil {
			return opErr
		}
		return s.repo.RemoveLevelRole(ctx, guild.ID, level)
	})
}
