// db/bundb/bundb.go
package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	guilddb "github.com/pocket-friend-club/companion-bot/app/modules/guild/infrastructure/repositories"
	memorydb "github.com/pocket-friend-club/companion-bot/app/modules/memory/infrastructure/repositories"
	progressiondb "github.com/pocket-friend-club/companion-bot/app/modules/progression/infrastructure/repositories"
	userdb "github.com/pocket-friend-club/companion-bot/app/modules/user/infrastructure/repositories"
	"github.com/pocket-friend-club/companion-bot/config"
)

// DBService bundles the repositories over one shared connection pool. The
// pool is constructed here and injected everywhere; nothing else opens
// connections.
type DBService struct {
	GuildDB       *guilddb.GuildDBImpl
	UserDB        *userdb.UserDBImpl
	ProgressionDB *progressiondb.ProgressionDBImpl
	MemoryDB      *memorydb.MemoryDBImpl
	db            *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// Close closes the underlying connection pool.
func (dbService *DBService) Close() error {
	return dbService.db.Close()
}

// NewBunDBService initializes a new DBService with the provided Postgres
// configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel((*guilddb.Guild)(nil))
	db.RegisterModel((*guilddb.Ruleset)(nil))
	db.RegisterModel((*userdb.User)(nil))
	db.RegisterModel((*progressiondb.UserGuildStats)(nil))
	db.RegisterModel((*progressiondb.XPLevel)(nil))
	db.RegisterModel((*progressiondb.LevelRole)(nil))
	db.RegisterModel((*memorydb.MemoryEntry)(nil))

	return &DBService{
		GuildDB:       &guilddb.GuildDBImpl{DB: db},
		UserDB:        &userdb.UserDBImpl{DB: db},
		ProgressionDB: &progressiondb.ProgressionDBImpl{DB: db},
		MemoryDB:      &memorydb.MemoryDBImpl{DB: db},
		db:            db,
	}, nil
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
