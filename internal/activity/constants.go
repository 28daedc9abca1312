package activity

// Tool efficiency is the clamped sum of this stat across the equipped tool's
// stat rows.
const EfficiencyStat = "gather_speed"

const (
	// MinUnitSeconds floors tool-adjusted unit durations. 100% efficiency
	// would otherwise yield zero-duration units.
	MinUnitSeconds = 1

	// MaxEfficiencyPercent caps the summed tool stat.
	MaxEfficiencyPercent = 100
)

// XP sources recorded with each award.
const (
	SourceVocation = "vocation"
	SourceTravel   = "travel"
)
