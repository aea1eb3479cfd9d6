package progressionservice

import (
	"context"

	"github.com/pocket-friend-club/companion-bot/app/modules/progression/leveling"
	"github.com/pocket-friend-club/companion-bot/app/shared/attr"
	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// AwardInteractionXP applies one cooldown-gated XP award for an interaction.
// Disabled XP, a zero per-interaction amount, and an unexpired cooldown all
// return a zero-award result with a nil error; only storage failures error.
func (s *ProgressionService) AwardInteractionXP(ctx context.Context, ref GuildRef, userID int64) (AwardResult, error) {
	var result AwardResult
	err := s.withTelemetry(ctx, "AwardInteractionXP", func(ctx context.Context) error {
		guild, opErr := s.resolveGuild(ctx, ref)
		if opErr != nil {
			return opErr
		}

		amount := guild.XPPerInteraction
		if !guild.XPEnabled || amount <= 0 {
			return nil
		}

		stats, opErr := s.repo.GetOrCreateStats(ctx, userID, guild.ID)
		if opErr != nil {
			return opErr
		}

		now := s.now()
		if stats.LastXPAt != nil && now.Sub(*stats.LastXPAt) < CooldownWindow {
			result.RateLimited = true
			return nil
		}

		checkpoints, opErr := s.repo.ListThresholds(ctx, guild.ID)
		if opErr != nil {
			return opErr
		}
		curve := leveling.BuildCurve(checkpoints, leveling.MaxLevel)

		// Level transitions are computed over the aggregate so leveling
		// stays correct while unmerged multi-instance rows linger.
		scope, opErr := s.aggregationScope(ctx, guild)
		if opErr != nil {
			return opErr
		}
		aggregatedXP, _, opErr := s.repo.AggregateStats(ctx, userID, scope)
		if opErr != nil {
			return opErr
		}

		previousLevel := curve.LevelForXP(aggregatedXP)
		newXP := aggregatedXP + amount
		newLevel := curve.LevelForXP(newXP)

		// Only the local row is written; display aggregation is recomputed
		// on every read.
		if opErr = s.repo.AddXP(ctx, userID, guild.ID, amount, newLevel, now); opErr != nil {
			return opErr
		}

		result.Awarded = amount
		result.NewXP = newXP
		result.NewLevel = newLevel
		result.LeveledUp = newLevel > previousLevel

		if result.LeveledUp {
			role, roleLevel, opErr := s.highestCrossedReward(ctx, guild.ID, previousLevel, newLevel)
			if opErr != nil {
				return opErr
			}
			result.UnlockedRole = role
			result.UnlockedRoleLevel = roleLevel

			s.logger.InfoContext(ctx, "User leveled up",
				attr.Int64("guild_id", guild.ID),
				attr.Int64("user_id", userID),
				attr.Int("previous_level", previousLevel),
				attr.Int("new_level", newLevel),
			)
		}
		return nil
	})
	return result, err
}

// highestCrossedReward picks the highest reward level in the half-open range
// (previousLevel, newLevel]. Lower crossed thresholds are implied and not
// surfaced.
func (s *ProgressionService) highestCrossedReward(ctx context.Context, guildID int64, previousLevel, newLevel int) (role sharedtypes.RoleID, roleLevel int, err error) {
	roles, err := s.repo.ListLevelRoles(ctx, guildID)
	if err != nil {
		return "", 0, err
	}
	for _, r := range roles {
		if r.Level > previousLevel && r.Level <= newLevel && r.Level > roleLevel {
			role = r.RoleID
			roleLevel = r.Level
		}
	}
	return role, roleLevel, nil
}
