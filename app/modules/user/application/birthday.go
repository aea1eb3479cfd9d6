package profileservice

import (
	"context"
	"time"

	"github.com/pocket-friend-club/companion-bot/app/shared/attr"
)

// UpcomingWindowDays is how far ahead a birthday is announced.
const UpcomingWindowDays = 7

// UpcomingBirthday is a birthday falling inside the announcement window.
type UpcomingBirthday struct {
	TargetDate time.Time
	DaysUntil  int
}

// NextBirthdayOccurrence returns the next occurrence of a birthday relative
// to now, both taken in UTC. The year component of the stored birthday is
// ignored; an occurrence earlier today still counts as this year's.
func NextBirthdayOccurrence(birthday, now time.Time) UpcomingBirthday {
	now = now.UTC()
	candidate := time.Date(now.Year(), birthday.UTC().Month(), birthday.UTC().Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(now.Truncate(24 * time.Hour)) {
		candidate = time.Date(now.Year()+1, birthday.UTC().Month(), birthday.UTC().Day(), 0, 0, 0, 0, time.UTC)
	}
	days := int(candidate.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
	return UpcomingBirthday{TargetDate: candidate, DaysUntil: days}
}

// CheckUpcomingBirthday reports whether the user's birthday should be
// announced in the guild: it must fall within the next UpcomingWindowDays
// and not have been announced for the target year already. Returns nil when
// there is nothing to announce.
func (s *ProfileService) CheckUpcomingBirthday(ctx context.Context, guildID int64, userID int64, birthday *time.Time, now time.Time) (*UpcomingBirthday, error) {
	if birthday == nil {
		return nil, nil
	}

	var result *UpcomingBirthday
	err := s.withTelemetry(ctx, "CheckUpcomingBirthday", func(ctx context.Context) error {
		upcoming := NextBirthdayOccurrence(*birthday, now)
		if upcoming.DaysUntil < 0 || upcoming.DaysUntil > UpcomingWindowDays {
			return nil
		}

		lastYear, opErr := s.gate.LastBirthdayAnnouncementYear(ctx, userID, guildID)
		if opErr != nil {
			return opErr
		}
		if lastYear == upcoming.TargetDate.Year() {
			return nil
		}

		result = &upcoming
		return nil
	})
	return result, err
}

// MarkBirthdayAnnounced records that the announcement for the target year
// went out, so it is sent at most once per year per (user, guild).
func (s *ProfileService) MarkBirthdayAnnounced(ctx context.Context, guildID int64, userID int64, targetYear int) error {
	return s.withTelemetry(ctx, "MarkBirthdayAnnounced", func(ctx context.Context) error {
		s.logger.DebugContext(ctx, "Recording birthday announcement",
			attr.Int64("guild_id", guildID),
			attr.Int64("user_id", userID),
			attr.Int("target_year", targetYear),
		)
		return s.gate.SetBirthdayAnnouncementYear(ctx, userID, guildID, targetYear)
	})
}
