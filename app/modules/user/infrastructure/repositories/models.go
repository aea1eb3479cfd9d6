package userdb

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// User represents a global Discord account (source of truth). Rows are
// created lazily on first reference; the free-form profile fields feed the
// prompt layer.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID            int64                     `bun:"id,pk,autoincrement" json:"id"`
	UUID          uuid.UUID                 `bun:"uuid,unique,notnull,default:gen_random_uuid()" json:"uuid"`
	DiscordUserID sharedtypes.DiscordUserID `bun:"discord_user_id,unique,notnull" json:"discord_user_id"`

	DisplayName *string    `bun:"display_name,nullzero" json:"display_name,omitempty"`
	About       *string    `bun:"about,nullzero" json:"about,omitempty"`
	Birthday    *time.Time `bun:"birthday,nullzero" json:"birthday,omitempty"`

	Preferences     json.RawMessage `bun:"preferences,type:jsonb,nullzero" json:"preferences,omitempty"`
	Codewords       json.RawMessage `bun:"codewords,type:jsonb,nullzero" json:"codewords,omitempty"`
	PersonaSettings json.RawMessage `bun:"persona_settings,type:jsonb,nullzero" json:"persona_settings,omitempty"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
