package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	progressiondb "github.com/pocket-friend-club/companion-bot/app/modules/progression/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating progression tables...")
			if _, err := db.NewCreateTable().Model((*progressiondb.UserGuildStats)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateIndex().
				Model((*progressiondb.UserGuildStats)(nil)).
				Index("uq_user_guild_stats").
				Unique().
				IfNotExists().
				Column("user_id", "guild_id").
				Exec(ctx); err != nil {
				return err
			}

			if _, err := db.NewCreateTable().Model((*progressiondb.XPLevel)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateIndex().
				Model((*progressiondb.XPLevel)(nil)).
				Index("uq_xp_levels_guild_level").
				Unique().
				IfNotExists().
				Column("guild_id", "level").
				Exec(ctx); err != nil {
				return err
			}

			if _, err := db.NewCreateTable().Model((*progressiondb.LevelRole)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateIndex().
				Model((*progressiondb.LevelRole)(nil)).
				Index("uq_level_roles_guild_level").
				Unique().
				IfNotExists().
				Column("guild_id", "level").
				Exec(ctx); err != nil {
				return err
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping progression tables...")
			if _, err := db.NewDropTable().Model((*progressiondb.LevelRole)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*progressiondb.XPLevel)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			_, err := db.NewDropTable().Model((*progressiondb.UserGuildStats)(nil)).IfExists().Cascade().Exec(ctx)
			return err
		},
	)
}
