// Package reconcile collapses duplicate guild rows left behind by the
// multi-instance era into one canonical row per Discord guild. It runs on
// every startup and is idempotent: merges use max(), never sum(), so
// re-running after a partial failure cannot double-count XP.
package reconcile

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"

	guilddb "github.com/pocket-friend-club/companion-bot/app/modules/guild/infrastructure/repositories"
	"github.com/pocket-friend-club/companion-bot/app/shared/attr"
)

// Reconciler merges duplicate guild identities.
type Reconciler struct {
	DB     *bun.DB
	Logger *slog.Logger
}

// New creates a Reconciler.
func New(db *bun.DB, logger *slog.Logger) *Reconciler {
	return &Reconciler{DB: db, Logger: logger}
}

// mergeGroup is one Discord guild with its keeper and the duplicate rows to
// fold into it.
type mergeGroup struct {
	keeper guilddb.Guild
	losers []guilddb.Guild
}

// Run executes the full reconciliation inside one transaction. Any step
// failing rolls everything back; the next startup retries from scratch.
func (r *Reconciler) Run(ctx context.Context) error {
	return r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var guilds []guilddb.Guild
		err := tx.NewSelect().
			Model(&guilds).
			Where("discord_guild_id IS NOT NULL AND discord_guild_id != ''").
			Order("discord_guild_id ASC").
			OrderExpr("updated_at DESC").
			OrderExpr("id DESC").
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to load guilds: %w", err)
		}

		for _, group := range partition(guilds) {
			for _, loser := range group.losers {
				if err := r.mergeGuild(ctx, tx, group.keeper, loser); err != nil {
					return err
				}
			}
		}

		return r.swapUniqueIndex(ctx, tx)
	})
}

// partition groups pre-sorted guild rows by Discord guild id. The first row
// of each group (most recently updated, highest id on ties) is the keeper.
func partition(guilds []guilddb.Guild) []mergeGroup {
	var groups []mergeGroup
	for _, guild := range guilds {
		if n := len(groups); n > 0 && groups[n-1].keeper.DiscordGuildID == guild.DiscordGuildID {
			groups[n-1].losers = append(groups[n-1].losers, guild)
			continue
		}
		groups = append(groups, mergeGroup{keeper: guild})
	}
	return groups
}

// mergeGuild folds one duplicate row into the keeper: dependents are
// re-pointed, stats are merged field-wise by max, and the loser is deleted.
func (r *Reconciler) mergeGuild(ctx context.Context, tx bun.Tx, keeper, loser guilddb.Guild) error {
	r.Logger.InfoContext(ctx, "Merging duplicate guild row",
		attr.String("discord_guild_id", keeper.DiscordGuildID.String()),
		attr.Int64("keeper_id", keeper.ID),
		attr.Int64("loser_id", loser.ID),
	)

	repoint := []struct {
		table string
	}{
		{"rulesets"},
		{"user_memories"},
	}
	for _, step := range repoint {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("UPDATE %s SET guild_id = ? WHERE guild_id = ?", step.table),
			keeper.ID, loser.ID,
		); err != nil {
			return fmt.Errorf("failed to re-point %s: %w", step.table, err)
		}
	}

	// xp_levels and level_roles are unique on (guild_id, level): move rows
	// that do not collide with the keeper's and drop the rest.
	for _, table := range []string{"xp_levels", "level_roles"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(
			`UPDATE %[1]s SET guild_id = ?
			  WHERE guild_id = ?
			    AND NOT EXISTS (
			      SELECT 1 FROM %[1]s k WHERE k.guild_id = ? AND k.level = %[1]s.level
			    )`, table),
			keeper.ID, loser.ID, keeper.ID,
		); err != nil {
			return fmt.Errorf("failed to re-point %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE guild_id = ?", table),
			loser.ID,
		); err != nil {
			return fmt.Errorf("failed to drop conflicting %s rows: %w", table, err)
		}
	}

	// Stats merge by max, not sum: re-running after a partial failure must
	// never double-count XP, at the cost of losing genuine independent
	// accrual on the loser side.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_guild_stats (user_id, guild_id, xp, level, last_xp_at, last_birthday_announcement_year)
		SELECT user_id, ?, xp, level, last_xp_at, last_birthday_announcement_year
		  FROM user_guild_stats
		 WHERE guild_id = ?
		ON CONFLICT (user_id, guild_id) DO UPDATE SET
			xp = GREATEST(user_guild_stats.xp, EXCLUDED.xp),
			level = GREATEST(user_guild_stats.level, EXCLUDED.level),
			last_xp_at = GREATEST(user_guild_stats.last_xp_at, EXCLUDED.last_xp_at),
			last_birthday_announcement_year = GREATEST(user_guild_stats.last_birthday_announcement_year, EXCLUDED.last_birthday_announcement_year)
	`, keeper.ID, loser.ID); err != nil {
		return fmt.Errorf("failed to merge stats rows: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM user_guild_stats WHERE guild_id = ?", loser.ID,
	); err != nil {
		return fmt.Errorf("failed to delete loser stats rows: %w", err)
	}

	if _, err := tx.NewDelete().
		Model((*guilddb.Guild)(nil)).
		Where("id = ?", loser.ID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete loser guild row: %w", err)
	}

	return nil
}

// swapUniqueIndex retires the legacy (discord_guild_id, bot_instance)
// uniqueness of the multi-instance model and enforces one row per Discord
// guild.
func (r *Reconciler) swapUniqueIndex(ctx context.Context, tx bun.Tx) error {
	if _, err := tx.ExecContext(ctx, "DROP INDEX IF EXISTS uq_discord_bot"); err != nil {
		return fmt.Errorf("failed to drop legacy unique index: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_guilds_discord_guild_id ON guilds (discord_guild_id)",
	); err != nil {
		return fmt.Errorf("failed to create unique index on discord_guild_id: %w", err)
	}
	return nil
}
