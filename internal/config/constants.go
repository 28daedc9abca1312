package config

// Defaults applied when the environment leaves a knob unset.
const (
	DefaultPort            = 8080
	DefaultMaxSessionHours = 24
	DefaultBaseCapacity    = 20
)
