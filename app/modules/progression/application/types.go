package progressionservice

import (
	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// Progress describes how far a user is through the guild's level curve.
// XP and Level are aggregated across every guild row sharing the Discord
// guild id; Level is recomputed from XP, never read from the cache column.
type Progress struct {
	XP                    int64   `json:"xp"`
	Level                 int     `json:"level"`
	NextLevel             *int    `json:"next_level,omitempty"`
	NextThreshold         int64   `json:"next_threshold"`
	XPToNext              int64   `json:"xp_to_next"`
	CurrentLevelThreshold int64   `json:"current_level_threshold"`
	Progress              float64 `json:"progress"`
}

// AwardResult is the outcome of one interaction award, consumed by the chat
// layer to decide announcements and role grants. A zero Awarded with a nil
// error is a no-op (XP disabled, zero amount, or cooldown), not a failure.
type AwardResult struct {
	Awarded     int64 `json:"awarded"`
	LeveledUp   bool  `json:"leveled_up"`
	RateLimited bool  `json:"rate_limited,omitempty"`

	NewLevel int   `json:"new_level,omitempty"`
	NewXP    int64 `json:"new_xp,omitempty"`

	// UnlockedRoleLevel is zero when no reward threshold was crossed. When
	// several thresholds fall in one award, only the highest is surfaced.
	UnlockedRole      sharedtypes.RoleID `json:"unlocked_role,omitempty"`
	UnlockedRoleLevel int                `json:"unlocked_role_level,omitempty"`
}
