package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	guilddb "github.com/pocket-friend-club/companion-bot/app/modules/guild/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating guilds table...")
			if _, err := db.NewCreateTable().Model((*guilddb.Guild)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			// The composite index mirrors the legacy multi-instance model;
			// the reconciler replaces it with a plain unique index on
			// discord_guild_id once duplicates are merged.
			if _, err := db.NewCreateIndex().
				Model((*guilddb.Guild)(nil)).
				Index("uq_discord_bot").
				Unique().
				IfNotExists().
				Column("discord_guild_id", "bot_instance").
				Exec(ctx); err != nil {
				return err
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping guilds table...")
			_, err := db.NewDropTable().Model((*guilddb.Guild)(nil)).IfExists().Cascade().Exec(ctx)
			return err
		},
	)
}
