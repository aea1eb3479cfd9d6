package progressionservice

import (
	"context"

	"github.com/pocket-friend-club/companion-bot/app/modules/progression/leveling"
)

// GetProgress returns the user's aggregated progress through the guild's
// curve. The curve is rebuilt from the guild's checkpoints on every call so
// admin edits take effect immediately.
func (s *ProgressionService) GetProgress(ctx context.Context, ref GuildRef, userID int64) (*Progress, error) {
	var progress *Progress
	err := s.withTelemetry(ctx, "GetProgress", func(ctx context.Context) error {
		guild, opErr := s.resolveGuild(ctx, ref)
		if opErr != nil {
			return opErr
		}

		checkpoints, opErr := s.repo.ListThresholds(ctx, guild.ID)
		if opErr != nil {
			return opErr
		}
		curve := leveling.BuildCurve(checkpoints, leveling.MaxLevel)

		if _, opErr = s.repo.GetOrCreateStats(ctx, userID, guild.ID); opErr != nil {
			return opErr
		}

		scope, opErr := s.aggregationScope(ctx, guild)
		if opErr != nil {
			return opErr
		}
		xp, _, opErr := s.repo.AggregateStats(ctx, userID, scope)
		if opErr != nil {
			return opErr
		}

		progress = buildProgress(curve, xp)
		return nil
	})
	return progress, err
}

func buildProgress(curve leveling.Curve, xp int64) *Progress {
	level := curve.LevelForXP(xp)
	p := &Progress{
		XP:                    xp,
		Level:                 level,
		CurrentLevelThreshold: curve.Threshold(level),
		Progress:              curve.ProgressThrough(level, xp),
	}

	if curve.HasNext(level) {
		next := level + 1
		p.NextLevel = &next
		p.NextThreshold = curve.Threshold(next)
		if toNext := p.NextThreshold - xp; toNext > 0 {
			p.XPToNext = toNext
		}
	} else {
		// Top of the curve: no next entry, threshold mirrors the current one.
		p.NextThreshold = p.CurrentLevelThreshold
	}
	return p
}
