package guildservice

import (
	"context"

	guilddb "github.com/pocket-friend-club/companion-bot/app/modules/guild/infrastructure/repositories"
	"github.com/pocket-friend-club/companion-bot/app/shared/attr"
	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// EnsureGuild returns the canonical guild row for a Discord guild, creating
// it on first contact.
func (s *GuildService) EnsureGuild(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID, botInstance int) (*guilddb.Guild, error) {
	var guild *guilddb.Guild
	err := s.withTelemetry(ctx, "EnsureGuild", func(ctx context.Context) error {
		var opErr error
		guild, opErr = s.repo.EnsureGuild(ctx, discordGuildID, botInstance)
		if opErr == nil {
			s.logger.DebugContext(ctx, "Resolved guild record",
				attr.String("discord_guild_id", discordGuildID.String()),
				attr.Int64("guild_id", guild.ID),
			)
		}
		return opErr
	})
	return guild, err
}

// UpdateSelectedUser points the guild at its selected human, or clears the
// selection when userID is nil.
func (s *GuildService) UpdateSelectedUser(ctx context.Context, guildID int64, userID *int64) error {
	return s.withTelemetry(ctx, "UpdateSelectedUser", func(ctx context.Context) error {
		return s.repo.UpdateSelectedUser(ctx, guildID, userID)
	})
}

// ToggleXP enables or disables XP awards for the guild.
func (s *GuildService) ToggleXP(ctx context.Context, guildID int64, enabled bool) error {
	return s.withTelemetry(ctx, "ToggleXP", func(ctx context.Context) error {
		return s.repo.SetXPEnabled(ctx, guildID, enabled)
	})
}

// SetXPPerInteraction sets the amount awarded per interaction. Negative
// input is clamped to zero rather than rejected.
func (s *GuildService) SetXPPerInteraction(ctx context.Context, guildID int64, amount int64) error {
	if amount < 0 {
		amount = 0
	}
	return s.withTelemetry(ctx, "SetXPPerInteraction", func(ctx context.Context) error {
		return s.repo.SetXPPerInteraction(ctx, guildID, amount)
	})
}

// SetXPAnnouncementChannel sets where level-up announcements go.
func (s *GuildService) SetXPAnnouncementChannel(ctx context.Context, guildID int64, channelID sharedtypes.ChannelID) error {
	return s.withTelemetry(ctx, "SetXPAnnouncementChannel", func(ctx context.Context) error {
		return s.repo.SetXPAnnouncementChannel(ctx, guildID, channelID)
	})
}

// SetBirthdayChannel sets where birthday announcements go.
func (s *GuildService) SetBirthdayChannel(ctx context.Context, guildID int64, channelID sharedtypes.ChannelID) error {
	return s.withTelemetry(ctx, "SetBirthdayChannel", func(ctx context.Context) error {
		return s.repo.SetBirthdayChannel(ctx, guildID, channelID)
	})
}

// UpdateLanguages writes the guild's language settings.
func (s *GuildService) UpdateLanguages(ctx context.Context, guildID int64, langs guilddb.LanguageSettings) error {
	return s.withTelemetry(ctx, "UpdateLanguages", func(ctx context.Context) error {
		return s.repo.UpdateLanguages(ctx, guildID, langs)
	})
}

// GetRulesets returns the guild's rule documents, newest first.
func (s *GuildService) GetRulesets(ctx context.Context, guildID int64) ([]guilddb.Ruleset, error) {
	var rulesets []guilddb.Ruleset
	err := s.withTelemetry(ctx, "GetRulesets", func(ctx context.Context) error {
		var opErr error
		rulesets, opErr = s.repo.ListRulesets(ctx, guildID)
		return opErr
	})
	return rulesets, err
}
