package memorydb

import (
	"time"

	"github.com/uptrace/bun"
)

// MemoryEntry is one remembered fact about a user in a guild, written when
// the model emits a memory directive.
type MemoryEntry struct {
	bun.BaseModel `bun:"table:user_memories,alias:um"`

	ID      int64  `bun:"id,pk,autoincrement" json:"id"`
	GuildID int64  `bun:"guild_id,notnull" json:"guild_id"`
	UserID  int64  `bun:"user_id,notnull" json:"user_id"`
	Content string `bun:"content,notnull" json:"content"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
