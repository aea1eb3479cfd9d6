package userdb

import (
	"context"
	"encoding/json"

	"github.com/uptrace/bun"

	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// Repository defines user data operations.
type Repository interface {
	EnsureUser(ctx context.Context, discordUserID sharedtypes.DiscordUserID) (*User, error)
	GetByDiscordID(ctx context.Context, discordUserID sharedtypes.DiscordUserID) (*User, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
	UpdatePreferences(ctx context.Context, discordUserID sharedtypes.DiscordUserID, preferences json.RawMessage) error
	UpdateCodewords(ctx context.Context, discordUserID sharedtypes.DiscordUserID, codewords json.RawMessage) error
	UpdatePersonaSettings(ctx context.Context, discordUserID sharedtypes.DiscordUserID, settings json.RawMessage) error
	SetDisplayName(ctx context.Context, discordUserID sharedtypes.DiscordUserID, name string) error
	SetAbout(ctx context.Context, discordUserID sharedtypes.DiscordUserID, about string) error
	SetBirthday(ctx context.Context, discordUserID sharedtypes.DiscordUserID, birthday bun.NullTime) error
}

var _ Repository = (*UserDBImpl)(nil)
