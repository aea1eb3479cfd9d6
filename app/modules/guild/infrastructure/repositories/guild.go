package guilddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

var ErrGuildNotFound = errors.New("guild not found")

// GuildDBImpl is the bun-backed guild repository.
type GuildDBImpl struct {
	DB *bun.DB
}

// EnsureGuild returns the canonical guild row for a Discord guild, creating
// it lazily on first contact. Settings are shared across bot instances, so
// the oldest row for the Discord guild always wins. Creation uses
// insert-then-reread: a concurrent insert by another caller is resolved by
// the re-select rather than by trusting our own insert.
func (db *GuildDBImpl) EnsureGuild(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID, botInstance int) (*Guild, error) {
	guild, err := db.firstByDiscordGuildID(ctx, discordGuildID)
	if err == nil {
		return guild, nil
	}
	if !errors.Is(err, ErrGuildNotFound) {
		return nil, err
	}

	_, err = db.DB.NewInsert().
		Model(&Guild{DiscordGuildID: discordGuildID, BotInstance: botInstance}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create guild: %w", err)
	}

	return db.firstByDiscordGuildID(ctx, discordGuildID)
}

func (db *GuildDBImpl) firstByDiscordGuildID(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID) (*Guild, error) {
	guild := new(Guild)
	err := db.DB.NewSelect().
		Model(guild).
		Where("discord_guild_id = ?", discordGuildID).
		Order("id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuildNotFound
		}
		return nil, fmt.Errorf("failed to get guild: %w", err)
	}
	return guild, nil
}

// GetByID fetches a guild by its internal id.
func (db *GuildDBImpl) GetByID(ctx context.Context, guildID int64) (*Guild, error) {
	guild := new(Guild)
	err := db.DB.NewSelect().Model(guild).Where("g.id = ?", guildID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuildNotFound
		}
		return nil, fmt.Errorf("failed to get guild by id: %w", err)
	}
	return guild, nil
}

// ListByDiscordGuildID returns every guild row sharing a Discord guild id,
// oldest first. More than one row means reconciliation has not caught up.
func (db *GuildDBImpl) ListByDiscordGuildID(ctx context.Context, discordGuildID sharedtypes.DiscordGuildID) ([]Guild, error) {
	var guilds []Guild
	err := db.DB.NewSelect().
		Model(&guilds).
		Where("discord_guild_id = ?", discordGuildID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guilds: %w", err)
	}
	return guilds, nil
}

func (db *GuildDBImpl) update(ctx context.Context, guildID int64, column string, value any) error {
	res, err := db.DB.NewUpdate().
		Model((*Guild)(nil)).
		Set(fmt.Sprintf("%s = ?", column), value).
		Set("updated_at = current_timestamp").
		Where("id = ?", guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update guild %s: %w", column, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrGuildNotFound
	}
	return nil
}

// UpdateSelectedUser points the guild at its selected human.
func (db *GuildDBImpl) UpdateSelectedUser(ctx context.Context, guildID int64, userID *int64) error {
	return db.update(ctx, guildID, "selected_user_id", userID)
}

// SetXPEnabled toggles XP awards for the guild.
func (db *GuildDBImpl) SetXPEnabled(ctx context.Context, guildID int64, enabled bool) error {
	return db.update(ctx, guildID, "xp_enabled", enabled)
}

// SetXPPerInteraction sets the amount awarded per interaction.
func (db *GuildDBImpl) SetXPPerInteraction(ctx context.Context, guildID int64, amount int64) error {
	return db.update(ctx, guildID, "xp_per_interaction", amount)
}

// SetXPAnnouncementChannel sets where level-up announcements go.
func (db *GuildDBImpl) SetXPAnnouncementChannel(ctx context.Context, guildID int64, channelID sharedtypes.ChannelID) error {
	return db.update(ctx, guildID, "xp_announcement_channel_id", channelID)
}

// SetBirthdayChannel sets where birthday announcements go.
func (db *GuildDBImpl) SetBirthdayChannel(ctx context.Context, guildID int64, channelID sharedtypes.ChannelID) error {
	return db.update(ctx, guildID, "birthday_channel_id", channelID)
}

// LanguageSettings is the guild's language configuration.
type LanguageSettings struct {
	Primary          string
	Secondary        string
	SecondaryEnabled bool
}

// UpdateLanguages writes the guild's language settings in one statement.
func (db *GuildDBImpl) UpdateLanguages(ctx context.Context, guildID int64, langs LanguageSettings) error {
	var secondary *string
	if langs.Secondary != "" {
		secondary = &langs.Secondary
	}
	res, err := db.DB.NewUpdate().
		Model((*Guild)(nil)).
		Set("primary_language = ?", langs.Primary).
		Set("secondary_language = ?", secondary).
		Set("secondary_language_enabled = ?", langs.SecondaryEnabled).
		Set("updated_at = current_timestamp").
		Where("id = ?", guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update guild languages: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrGuildNotFound
	}
	return nil
}

// ListRulesets returns the guild's rule documents, newest first.
func (db *GuildDBImpl) ListRulesets(ctx context.Context, guildID int64) ([]Ruleset, error) {
	var rulesets []Ruleset
	err := db.DB.NewSelect().
		Model(&rulesets).
		Where("guild_id = ?", guildID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rulesets: %w", err)
	}
	return rulesets, nil
}
