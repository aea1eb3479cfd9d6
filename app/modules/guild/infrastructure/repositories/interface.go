package guilddb

import (
	"context"

	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// Repository defines guild data operations.
type Repository interface {
	EnsureGuild(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID, botInstance int) (*Guild, error)
	GetByID(ctx context.Context, guildID int64) (*Guild, error)
	ListByDiscordGuildID(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID) ([]Guild, error)
	UpdateSelectedUser(ctx context.Context, guildID int64, userID *int64) error
	SetXPEnabled(ctx context.Context, guildID int64, enabled bool) error
	SetXPPerInteraction(ctx context.Context, guildID int64, amount int64) error
	SetXPAnnouncementChannel(ctx context.Context, guildID int64, channelID sharedtypes.ChannelID) error
	SetBirthdayChannel(ctx context.Context, guildID int64, channelID sharedtypes.ChannelID) error
	UpdateLanguages(ctx context.Context, guildID int64, langs LanguageSettings) error
	ListRulesets(ctx context.Context, guildID int64) ([]Ruleset, error)
}

var _ Repository = (*GuildDBImpl)(nil)
