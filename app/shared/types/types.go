// Package sharedtypes holds the identifier types shared by every module.
package sharedtypes

// DiscordGuildID is Discord's own identifier (snowflake) for a guild,
// distinct from our internal surrogate key.
type DiscordGuildID string

// DiscordUserID is Discord's own identifier for a user account.
type DiscordUserID string

// GuildID is the internal surrogate key for a guild row.
type GuildID int64

// UserID is the internal surrogate key for a user row.
type UserID int64

// RoleID identifies a Discord role.
type RoleID string

// ChannelID identifies a Discord channel.
type ChannelID string

func (id DiscordGuildID) String() string { return string(id) }
func (id DiscordUserID) String() string  { return string(id) }
func (id RoleID) String() string         { return string(id) }
func (id ChannelID) String() string      { return string(id) }
