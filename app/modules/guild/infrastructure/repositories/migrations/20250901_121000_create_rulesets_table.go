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
			fmt.Println("Creating rulesets table...")
			if _, err := db.NewCreateTable().Model((*guilddb.Ruleset)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			_, err := db.NewCreateIndex().
				Model((*guilddb.Ruleset)(nil)).
				Index("idx_rulesets_guild_id").
				IfNotExists().
				Column("guild_id").
				Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping rulesets table...")
			_, err := db.NewDropTable().Model((*guilddb.Ruleset)(nil)).IfExists().Cascade().Exec(ctx)
			return err
		},
	)
}
