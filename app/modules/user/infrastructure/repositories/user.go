package userdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

var ErrUserNotFound = errors.New("user not found")

// UserDBImpl is the bun-backed user repository.
type UserDBImpl struct {
	DB *bun.DB
}

// EnsureUser returns the user row for a Discord account, creating it lazily
// on first reference. Insert-then-reread: the unique constraint on
// discord_user_id absorbs the duplicate-insert race and the re-select
// resolves to whichever row won.
func (db *UserDBImpl) EnsureUser(ctx context.Context, discordUserID sharedtypes.DiscordUserID) (*User, error) {
	user, err := db.GetByDiscordID(ctx, discordUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	_, err = db.DB.NewInsert().
		Model(&User{DiscordUserID: discordUserID}).
		On("CONFLICT (discord_user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return db.GetByDiscordID(ctx, discordUserID)
}

// GetByDiscordID fetches a user by their Discord account id.
func (db *UserDBImpl) GetByDiscordID(ctx context.Context, discordUserID sharedtypes.DiscordUserID) (*User, error) {
	user := new(User)
	err := db.DB.NewSelect().Model(user).Where("discord_user_id = ?", discordUserID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByID fetches a user by internal id.
func (db *UserDBImpl) GetByID(ctx context.Context, userID int64) (*User, error) {
	user := new(User)
	err := db.DB.NewSelect().Model(user).Where("u.id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (db *UserDBImpl) update(ctx context.Context, discordUserID sharedtypes.DiscordUserID, column string, value any) error {
	res, err := db.DB.NewUpdate().
		Model((*User)(nil)).
		Set(fmt.Sprintf("%s = ?", column), value).
		Set("updated_at = current_timestamp").
		Where("discord_user_id = ?", discordUserID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", column, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePreferences replaces the user's free-form preferences document.
func (db *UserDBImpl) UpdatePreferences(ctx context.Context, discordUserID sharedtypes.DiscordUserID, preferences json.RawMessage) error {
	return db.update(ctx, discordUserID, "preferences", preferences)
}

// UpdateCodewords replaces the user's codeword list.
func (db *UserDBImpl) UpdateCodewords(ctx context.Context, discordUserID sharedtypes.DiscordUserID, codewords json.RawMessage) error {
	return db.update(ctx, discordUserID, "codewords", codewords)
}

// UpdatePersonaSettings replaces the user's persona settings document.
func (db *UserDBImpl) UpdatePersonaSettings(ctx context.Context, discordUserID sharedtypes.DiscordUserID, settings json.RawMessage) error {
	return db.update(ctx, discordUserID, "persona_settings", settings)
}

// SetDisplayName sets the user's display name.
func (db *UserDBImpl) SetDisplayName(ctx context.Context, discordUserID sharedtypes.DiscordUserID, name string) error {
	return db.update(ctx, discordUserID, "display_name", name)
}

// SetAbout sets the user's about text.
func (db *UserDBImpl) SetAbout(ctx context.Context, discordUserID sharedtypes.DiscordUserID, about string) error {
	return db.update(ctx, discordUserID, "about", about)
}

// SetBirthday records the user's birthday; the year component is ignored by
// consumers.
func (db *UserDBImpl) SetBirthday(ctx context.Context, discordUserID sharedtypes.DiscordUserID, birthday bun.NullTime) error {
	return db.update(ctx, discordUserID, "birthday", birthday)
}
