package guilddb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// Guild represents one Discord server. After reconciliation exactly one row
// exists per discord_guild_id; bot_instance survives only as a legacy column
// from the multi-instance era.
type Guild struct {
	bun.BaseModel `bun:"table:guilds,alias:g"`

	ID             int64                      `bun:"id,pk,autoincrement" json:"id"`
	DiscordGuildID sharedtypes.DiscordGuildID `bun:"discord_guild_id,notnull" json:"discord_guild_id"`
	BotInstance    int                        `bun:"bot_instance,notnull,default:1" json:"bot_instance"`

	SelectedUserID *int64 `bun:"selected_user_id,nullzero" json:"selected_user_id,omitempty"`

	XPEnabled               bool                   `bun:"xp_enabled,notnull,default:false" json:"xp_enabled"`
	XPPerInteraction        int64                  `bun:"xp_per_interaction,notnull,default:0" json:"xp_per_interaction"`
	XPAnnouncementChannelID *sharedtypes.ChannelID `bun:"xp_announcement_channel_id,nullzero" json:"xp_announcement_channel_id,omitempty"`
	BirthdayChannelID       *sharedtypes.ChannelID `bun:"birthday_channel_id,nullzero" json:"birthday_channel_id,omitempty"`

	PrimaryLanguage          *string `bun:"primary_language,nullzero" json:"primary_language,omitempty"`
	SecondaryLanguage        *string `bun:"secondary_language,nullzero" json:"secondary_language,omitempty"`
	SecondaryLanguageEnabled bool    `bun:"secondary_language_enabled,notnull,default:false" json:"secondary_language_enabled"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Ruleset is a guild-scoped rule document surfaced to the prompt layer.
type Ruleset struct {
	bun.BaseModel `bun:"table:rulesets,alias:rs"`

	ID      int64  `bun:"id,pk,autoincrement" json:"id"`
	GuildID int64  `bun:"guild_id,notnull" json:"guild_id"`
	Name    string `bun:"name,notnull" json:"name"`
	Type    string `bun:"type,notnull" json:"type"`
	Summary string `bun:"summary" json:"summary"`
	Content string `bun:"content" json:"content"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
