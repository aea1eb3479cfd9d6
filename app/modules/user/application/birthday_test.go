package profileservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/pocket-friend-club/companion-bot/app/shared/logging"
	"github.com/pocket-friend-club/companion-bot/app/shared/metrics"
)

func newTestService(repo *FakeUserRepository, gate *FakeBirthdayGate) *ProfileService {
	return NewProfileService(
		repo,
		gate,
		logging.NoOpLogger,
		metrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextBirthdayOccurrence(t *testing.T) {
	tests := []struct {
		name     string
		birthday time.Time
		now      time.Time
		wantDate time.Time
		wantDays int
	}{
		{
			name:     "later this year",
			birthday: date(1995, time.June, 15),
			now:      time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC),
			wantDate: date(2026, time.June, 15),
			wantDays: 5,
		},
		{
			name:     "today counts as this year",
			birthday: date(1995, time.June, 15),
			now:      time.Date(2026, time.June, 15, 18, 30, 0, 0, time.UTC),
			wantDate: date(2026, time.June, 15),
			wantDays: 0,
		},
		{
			name:     "already passed rolls to next year",
			birthday: date(1995, time.June, 15),
			now:      time.Date(2026, time.June, 16, 0, 0, 0, 0, time.UTC),
			wantDate: date(2027, time.June, 15),
			wantDays: 364,
		},
		{
			name:     "stored year is ignored",
			birthday: date(2030, time.January, 2),
			now:      time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantDate: date(2026, time.January, 2),
			wantDays: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextBirthdayOccurrence(tt.birthday, tt.now)
			assert.Equal(t, tt.wantDate, got.TargetDate)
			assert.Equal(t, tt.wantDays, got.DaysUntil)
		})
	}
}

func TestCheckUpcomingBirthdayNilBirthday(t *testing.T) {
	gate := &FakeBirthdayGate{}
	svc := newTestService(&FakeUserRepository{}, gate)

	got, err := svc.CheckUpcomingBirthday(context.Background(), 1, 1, nil, time.Now())

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, gate.Trace())
}

func TestCheckUpcomingBirthdayWithinWindow(t *testing.T) {
	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)
	birthday := date(1995, time.June, 15)
	gate := &FakeBirthdayGate{}
	svc := newTestService(&FakeUserRepository{}, gate)

	got, err := svc.CheckUpcomingBirthday(context.Background(), 3, 7, &birthday, now)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, date(2026, time.June, 15), got.TargetDate)
	assert.Equal(t, 5, got.DaysUntil)
	assert.Equal(t, []string{"LastBirthdayAnnouncementYear"}, gate.Trace())
}

func TestCheckUpcomingBirthdayOutsideWindow(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	birthday := date(1995, time.June, 15)
	gate := &FakeBirthdayGate{}
	svc := newTestService(&FakeUserRepository{}, gate)

	got, err := svc.CheckUpcomingBirthday(context.Background(), 3, 7, &birthday, now)

	require.NoError(t, err)
	assert.Nil(t, got)
	// The gate is only consulted once the date qualifies.
	assert.Empty(t, gate.Trace())
}

func TestCheckUpcomingBirthdayAlreadyAnnounced(t *testing.T) {
	now := time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)
	birthday := date(1995, time.June, 15)
	gate := &FakeBirthdayGate{
		LastBirthdayAnnouncementYearFunc: func(context.Context, int64, int64) (int, error) {
			return 2026, nil
		},
	}
	svc := newTestService(&FakeUserRepository{}, gate)

	got, err := svc.CheckUpcomingBirthday(context.Background(), 3, 7, &birthday, now)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCheckUpcomingBirthdayGateError(t *testing.T) {
	now := time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)
	birthday := date(1995, time.June, 15)
	wantErr := errors.New("connection refused")
	gate := &FakeBirthdayGate{
		LastBirthdayAnnouncementYearFunc: func(context.Context, int64, int64) (int, error) {
			return 0, wantErr
		},
	}
	svc := newTestService(&FakeUserRepository{}, gate)

	_, err := svc.CheckUpcomingBirthday(context.Background(), 3, 7, &birthday, now)

	assert.ErrorIs(t, err, wantErr)
}

func TestMarkBirthdayAnnounced(t *testing.T) {
	var gotUser, gotGuild int64
	var gotYear int
	gate := &FakeBirthdayGate{
		SetBirthdayAnnouncementYearFunc: func(_ context.Context, userID, guildID int64, year int) error {
			gotUser, gotGuild, gotYear = userID, guildID, year
			return nil
		},
	}
	svc := newTestService(&FakeUserRepository{}, gate)

	require.NoError(t, svc.MarkBirthdayAnnounced(context.Background(), 3, 7, 2026))
	assert.Equal(t, int64(7), gotUser)
	assert.Equal(t, int64(3), gotGuild)
	assert.Equal(t, 2026, gotYear)
}
