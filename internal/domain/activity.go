package domain

import "time"

// ActivityKind discriminates the tagged union stored in the activities table.
// A user may run at most one activity per kind, and the two kinds are mutually
// exclusive: travel blocks vocational work and vice versa.
type ActivityKind string

const (
	KindVocation ActivityKind = "vocation"
	KindTravel   ActivityKind = "travel"
)

// Valid reports whether the kind is one of the known discriminants.
func (k ActivityKind) Valid() bool {
	switch k {
	case KindVocation, KindTravel:
		return true
	}
	return false
}

// VocationKey identifies a production vocation (woodcutting, mining, ...).
type VocationKey string

const (
	VocationWoodcutting VocationKey = "woodcutting"
	VocationMining      VocationKey = "mining"
	VocationFishing     VocationKey = "fishing"
	VocationHerbalism   VocationKey = "herbalism"
)

// Activity is one running timed action, vocational production or travel.
// Kind selects which of the kind-specific fields are meaningful; every
// consumption site switches exhaustively on Kind.
type Activity struct {
	UserID    string       `json:"user_id"`
	Kind      ActivityKind `json:"kind"`
	StartedAt time.Time    `json:"started_at"`
	EndsAt    time.Time    `json:"ends_at"`

	// Vocational fields. UnitSeconds is the tool-adjusted duration of one
	// production unit; UnitsClaimed counts units already granted.
	VocationKey  VocationKey `json:"vocation_key,omitempty"`
	ResourceKey  string      `json:"resource_key,omitempty"`
	LocationKey  string      `json:"location_key,omitempty"`
	UnitSeconds  int         `json:"unit_seconds,omitempty"`
	UnitsClaimed int         `json:"units_claimed,omitempty"`

	// Travel fields.
	DestinationKey string `json:"destination_key,omitempty"`
}

// ActivityProgress is the output of the pure activity clock.
type ActivityProgress struct {
	ElapsedSeconds   int
	RemainingSeconds int
	UnitsTotal       int
	UnitsClaimable   int
	UnitProgress     float64 // position within the current unit, [0,1]
	Progress         float64 // overall completion, [0,1]
	IsComplete       bool
}

// YieldSummary reports what a single claim granted.
type YieldSummary struct {
	UnitsClaimed int            `json:"units_claimed"`
	ItemsGranted map[string]int `json:"items_granted,omitempty"`
	ItemsUnfit   map[string]int `json:"items_unfit,omitempty"`
	XPAwarded    map[string]int `json:"xp_awarded,omitempty"`
	LevelUps     []LevelUp      `json:"level_ups,omitempty"`
}

// Empty reports whether the claim has nothing to tell the caller: nothing
// granted and nothing left unfit.
func (y *YieldSummary) Empty() bool {
	return y.UnitsClaimed == 0 && len(y.ItemsGranted) == 0 && len(y.ItemsUnfit) == 0 && len(y.XPAwarded) == 0
}

// ActivityStatus is the engine's answer to start/status/stop calls.
type ActivityStatus struct {
	Running          bool          `json:"running"`
	Kind             ActivityKind  `json:"kind,omitempty"`
	VocationKey      VocationKey   `json:"vocation_key,omitempty"`
	DestinationKey   string        `json:"destination_key,omitempty"`
	StartedAt        *time.Time    `json:"started_at,omitempty"`
	EndsAt           *time.Time    `json:"ends_at,omitempty"`
	RemainingSeconds int           `json:"remaining_seconds"`
	Progress         float64       `json:"progress"`
	UnitProgress     float64       `json:"unit_progress,omitempty"`
	UnitsClaimable   int           `json:"units_claimable"`
	Yield            *YieldSummary `json:"session_yield,omitempty"`
	ArrivedAt        string        `json:"arrived_at,omitempty"`
}
