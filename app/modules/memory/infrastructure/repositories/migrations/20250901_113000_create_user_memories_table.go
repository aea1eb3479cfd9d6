package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	memorydb "github.com/pocket-friend-club/companion-bot/app/modules/memory/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating user_memories table...")
			if _, err := db.NewCreateTable().Model((*memorydb.MemoryEntry)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			_, err := db.NewCreateIndex().
				Model((*memorydb.MemoryEntry)(nil)).
				Index("idx_user_memories_guild_user").
				IfNotExists().
				Column("guild_id", "user_id").
				Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping user_memories table...")
			_, err := db.NewDropTable().Model((*memorydb.MemoryEntry)(nil)).IfExists().Cascade().Exec(ctx)
			return err
		},
	)
}
