package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	userdb "github.com/pocket-friend-club/companion-bot/app/modules/user/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating users table...")
			_, err := db.NewCreateTable().Model((*userdb.User)(nil)).IfNotExists().Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping users table...")
			_, err := db.NewDropTable().Model((*userdb.User)(nil)).IfExists().Cascade().Exec(ctx)
			return err
		},
	)
}
