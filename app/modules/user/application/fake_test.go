package profileservice

import (
	"context"
	"encoding/json"

	"github.com/uptrace/bun"

	userdb "github.com/pocket-friend-club/companion-bot/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// FakeUserRepository implements userdb.Repository for tests. Each method
// records its name and delegates to the matching Func field when set.
type FakeUserRepository struct {
	EnsureUserFunc            func(ctx context.Context, discordUserID sharedtypes.DiscordUserID) (*userdb.User, error)
	GetByDiscordIDFunc        func(ctx context.Context, discordUserID sharedtypes.DiscordUserID) (*userdb.User, error)
	GetByIDFunc               func(ctx context.Context, userID int64) (*userdb.User, error)
	UpdatePreferencesFunc     func(ctx context.Context, discordUserID sharedtypes.DiscordUserID, preferences json.RawMessage) error
	UpdateCodewordsFunc       func(ctx context.Context, discordUserID sharedtypes.DiscordUserID, codewords json.RawMessage) error
	UpdatePersonaSettingsFunc func(ctx context.Context, discordUserID sharedtypes.DiscordUserID, settings json.RawMessage) error
	SetDisplayNameFunc        func(ctx context.Context, discordUserID sharedtypes.DiscordUserID, name string) error
	SetAboutFunc              func(ctx context.Context, discordUserID sharedtypes.DiscordUserID, about string) error
	SetBirthdayFunc           func(ctx context.Context, discordUserID sharedtypes.DiscordUserID, birthday bun.NullTime) error

	trace []string
}

var _ userdb.Repository = (*FakeUserRepository)(nil)

func (f *FakeUserRepository) record(name string) {
	f.trace = append(f.trace, name)
}

// Trace returns the ordered list of repository calls made so far.
func (f *FakeUserRepository) Trace() []string {
	return f.trace
}

func (f *FakeUserRepository) EnsureUser(ctx context.Context, discordUserID sharedtypes.DiscordUserID) (*userdb.User, error) {
	f.record("EnsureUser")
	if f.EnsureUserFunc != nil {
		return f.EnsureUserFunc(ctx, discordUserID)
	}
	return &userdb.User{ID: 1, DiscordUserID: discordUserID}, nil
}

func (f *FakeUserRepository) GetByDiscordID(ctx context.Context, discordUserID sharedtypes.DiscordUserID) (*userdb.User, error) {
	f.record("GetByDiscordID")
	if f.GetByDiscordIDFunc != nil {
		return f.GetByDiscordIDFunc(ctx, discordUserID)
	}
	return nil, userdb.ErrUserNotFound
}

func (f *FakeUserRepository) GetByID(ctx context.Context, userID int64) (*userdb.User, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, userID)
	}
	return nil, userdb.ErrUserNotFound
}

func (f *FakeUserRepository) UpdatePreferences(ctx context.Context, discordUserID sharedtypes.DiscordUserID, preferences json.RawMessage) error {
	f.record("UpdatePreferences")
	if f.UpdatePreferencesFunc != nil {
		return f.UpdatePreferencesFunc(ctx, discordUserID, preferences)
	}
	return nil
}

func (f *FakeUserRepository) UpdateCodewords(ctx context.Context, discordUserID sharedtypes.DiscordUserID, codewords json.RawMessage) error {
	f.record("UpdateCodewords")
	if f.UpdateCodewordsFunc != nil {
		return f.UpdateCodewordsFunc(ctx, discordUserID, codewords)
	}
	return nil
}

func (f *FakeUserRepository) UpdatePersonaSettings(ctx context.Context, discordUserID sharedtypes.DiscordUserID, settings json.RawMessage) error {
	f.record("UpdatePersonaSettings")
	if f.UpdatePersonaSettingsFunc != nil {
		return f.UpdatePersonaSettingsFunc(ctx, discordUserID, settings)
	}
	return nil
}

func (f *FakeUserRepository) SetDisplayName(ctx context.Context, discordUserID sharedtypes.DiscordUserID, name string) error {
	f.record("SetDisplayName")
	if f.SetDisplayNameFunc != nil {
		return f.SetDisplayNameFunc(ctx, discordUserID, name)
	}
	return nil
}

func (f *FakeUserRepository) SetAbout(ctx context.Context, discordUserID sharedtypes.DiscordUserID, about string) error {
	f.record("SetAbout")
	if f.SetAboutFunc != nil {
		return f.SetAboutFunc(ctx, discordUserID, about)
	}
	return nil
}

func (f *FakeUserRepository) SetBirthday(ctx context.Context, discordUserID sharedtypes.DiscordUserID, birthday bun.NullTime) error {
	f.record("SetBirthday")
	if f.SetBirthdayFunc != nil {
		return f.SetBirthdayFunc(ctx, discordUserID, birthday)
	}
	return nil
}

// FakeBirthdayGate implements BirthdayGate for tests.
type FakeBirthdayGate struct {
	LastBirthdayAnnouncementYearFunc func(ctx context.Context, userID, guildID int64) (int, error)
	SetBirthdayAnnouncementYearFunc  func(ctx context.Context, userID, guildID int64, year int) error

	trace []string
}

var _ BirthdayGate = (*FakeBirthdayGate)(nil)

// Trace returns the ordered list of gate calls made so far.
func (f *FakeBirthdayGate) Trace() []string {
	return f.trace
}

func (f *FakeBirthdayGate) LastBirthdayAnnouncementYear(ctx context.Context, userID, guildID int64) (int, error) {
	f.trace = append(f.trace, "LastBirthdayAnnouncementYear")
	if f.LastBirthdayAnnouncementYearFunc != nil {
		return f.LastBirthdayAnnouncementYearFunc(ctx, userID, guildID)
	}
	return 0, nil
}

func (f *FakeBirthdayGate) SetBirthdayAnnouncementYear(ctx context.Context, userID, guildID int64, year int) error {
	f.trace = append(f.trace, "SetBirthdayAnnouncementYear")
	if f.SetBirthdayAnnouncementYearFunc != nil {
		return f.SetBirthdayAnnouncementYearFunc(ctx, userID, guildID, year)
	}
	return nil
}
