package progressionintegrationtests

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	guildmigrations "github.com/pocket-friend-club/companion-bot/app/modules/guild/infrastructure/repositories/migrations"
	memorymigrations "github.com/pocket-friend-club/companion-bot/app/modules/memory/infrastructure/repositories/migrations"
	progressionmigrations "github.com/pocket-friend-club/companion-bot/app/modules/progression/infrastructure/repositories/migrations"
	usermigrations "github.com/pocket-friend-club/companion-bot/app/modules/user/infrastructure/repositories/migrations"
	"github.com/pocket-friend-club/companion-bot/integration_tests/containers"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	if os.Getenv("SKIP_INTEGRATION_TESTS") != "" {
		log.Println("SKIP_INTEGRATION_TESTS set, skipping progression integration tests")
		os.Exit(0)
	}

	ctx := context.Background()

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		log.Fatalf("failed to start postgres container: %v", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	testDB = bun.NewDB(sqldb, pgdialect.New())

	if err := runMigrations(ctx, testDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		_ = pgContainer.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	_ = testDB.Close()
	_ = pgContainer.Terminate(ctx)
	os.Exit(code)
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	// Guild first: the other modules' tables reference guild ids.
	for _, migrations := range []*migrate.Migrations{
		guildmigrations.Migrations,
		usermigrations.Migrations,
		progressionmigrations.Migrations,
		memorymigrations.Migrations,
	} {
		migrator := migrate.NewMigrator(db, migrations)
		if err := migrator.Init(ctx); err != nil {
			return err
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// resetTables clears domain tables between tests.
func resetTables(t *testing.T) {
	t.Helper()
	_, err := testDB.ExecContext(context.Background(),
		"TRUNCATE user_guild_stats, xp_levels, level_roles, user_memories, rulesets, users, guilds RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}
}
