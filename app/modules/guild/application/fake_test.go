package guildservice

import (
	"context"

	guilddb "github.com/pocket-friend-club/companion-bot/app/modules/guild/infrastructure/repositories"
	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// FakeGuildRepository implements guilddb.Repository for tests. Each method
// records its name and delegates to the matching Func field when set.
type FakeGuildRepository struct {
	EnsureGuildFunc              func(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID, botInstance int) (*guilddb.Guild, error)
	GetByIDFunc                  func(ctx context.Context, guildID int64) (*guilddb.Guild, error)
	ListByDiscordGuildIDFunc     func(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID) ([]guilddb.Guild, error)
	UpdateSelectedUserFunc       func(ctx context.Context, guildID int64, userID *int64) error
	SetXPEnabledFunc             func(ctx context.Context, guildID int64, enabled bool) error
	SetXPPerInteractionFunc      func(ctx context.Context, guildID int64, amount int64) error
	SetXPAnnouncementChannelFunc func(ctx context.Context, guildID int64, channelID sharedtypes.ChannelID) error
	SetBirthdayChannelFunc       func(ctx context.Context, guildID int64, channelID sharedtypes.ChannelID) error
	UpdateLanguagesFunc          func(ctx context.Context, guildID int64, langs guilddb.LanguageSettings) error
	ListRulesetsFunc             func(ctx context.Context, guildID int64) ([]guilddb.Ruleset, error)

	trace []string
}

var _ guilddb.Repository = (*FakeGuildRepository)(nil)

func (f *FakeGuildRepository) record(name string) {
	f.trace = append(f.trace, name)
}

// Trace returns the ordered list of repository calls made so far.
func (f *FakeGuildRepository) Trace() []string {
	return f.trace
}

func (f *FakeGuildRepository) EnsureGuild(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID, botInstance int) (*guilddb.Guild, error) {
	f.record("EnsureGuild")
	if f.EnsureGuildFunc != nil {
		return f.EnsureGuildFunc(ctx, discordGuildID, botInstance)
	}
	return &guilddb.Guild{ID: 1, DiscordGuildID: discordGuildID, BotInstance: botInstance}, nil
}

func (f *FakeGuildRepository) GetByID(ctx context.Context, guildID int64) (*guilddb.Guild, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, guildID)
	}
	return nil, guilddb.ErrGuildNotFound
}

func (f *FakeGuildRepository) ListByDiscordGuildID(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID) ([]guilddb.Guild, error) {
	f.record("ListByDiscordGuildID")
	if f.ListByDiscordGuildIDFunc != nil {
		return f.ListByDiscordGuildIDFunc(ctx, discordGuildID)
	}
	return nil, nil
}

func (f *FakeGuildRepository) UpdateSelectedUser(ctx context.Context, guildID int64, userID *int64) error {
	f.record("UpdateSelectedUser")
	if f.UpdateSelectedUserFunc != nil {
		return f.UpdateSelectedUserFunc(ctx, guildID, userID)
	}
	return nil
}

func (f *FakeGuildRepository) SetXPEnabled(ctx context.Context, guildID int64, enabled bool) error {
	f.record("SetXPEnabled")
	if f.SetXPEnabledFunc != nil {
		return f.SetXPEnabledFunc(ctx, guildID, enabled)
	}
	return nil
}

func (f *FakeGuildRepository) SetXPPerInteraction(ctx context.Context, guildID int64, amount int64) error {
	f.record("SetXPPerInteraction")
	if f.SetXPPerInteractionFunc != nil {
		return f.SetXPPerInteractionFunc(ctx, guildID, amount)
	}
	return nil
}

func (f *FakeGuildRepository) SetXPAnnouncementChannel(ctx context.Context, guildID int64, channelID sharedtypes.ChannelID) error {
	f.record("SetXPAnnouncementChannel")
	if f.SetXPAnnouncementChannelFunc != nil {
		return f.SetXPAnnouncementChannelFunc(ctx, guildID, channelID)
	}
	return nil
}

func (f *FakeGuildRepository) SetBirthdayChannel(ctx context.Context, guildID int64, channelID sharedtypes.ChannelID) error {
	f.record("SetBirthdayChannel")
	if f.SetBirthdayChannelFunc != nil {
		return f.SetBirthdayChannelFunc(ctx, guildID, channelID)
	}
	return nil
}

func (f *FakeGuildRepository) UpdateLanguages(ctx context.Context, guildID int64, langs guilddb.LanguageSettings) error {
	f.record("UpdateLanguages")
	if f.UpdateLanguagesFunc != nil {
		return f.UpdateLanguagesFunc(ctx, guildID, langs)
	}
	return nil
}

func (f *FakeGuildRepository) ListRulesets(ctx context.Context, guildID int64) ([]guilddb.Ruleset, error) {
	f.record("ListRulesets")
	if f.ListRulesetsFunc != nil {
		return f.ListRulesetsFunc(ctx, guildID)
	}
	return nil, nil
}
