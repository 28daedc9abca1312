package domain

import (
	"math"
	"math/big"
	"time"
)

// Track names an experience progression line. The account track has an
// explicit curve; other tracks derive theirs from it unless registered.
type Track string

const (
	TrackAccount Track = "account"
	TrackCombat  Track = "combat"
	TrackDungeon Track = "dungeon"
)

// VocationTrack returns the per-vocation experience track.
func VocationTrack(key VocationKey) Track {
	return Track("vocation:" + string(key))
}

// ExperienceLedger is one (user, track) experience total with its cached
// level. Experience is arbitrary precision: late-game totals exceed the
// 53-bit-safe integer range.
type ExperienceLedger struct {
	UserID     string    `json:"user_id"`
	Track      Track     `json:"track"`
	Experience *big.Int  `json:"experience"`
	Level      int       `json:"level"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExperienceFloat64 converts the total for display, clamping at MaxFloat64
// rather than overflowing.
func (l *ExperienceLedger) ExperienceFloat64() float64 {
	if l.Experience == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(l.Experience).Float64()
	if math.IsInf(f, 1) {
		return math.MaxFloat64
	}
	return f
}

// LevelUp records a level transition on a track.
type LevelUp struct {
	Track    Track `json:"track"`
	OldLevel int   `json:"old_level"`
	NewLevel int   `json:"new_level"`
}

// XPAwardResult contains the outcome of awarding XP on a track.
type XPAwardResult struct {
	Track     Track  `json:"track"`
	XPGained  int    `json:"xp_gained"`
	NewXP     string `json:"new_xp"` // decimal string, arbitrary precision
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	LeveledUp bool   `json:"leveled_up"`
}
