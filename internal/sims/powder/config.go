package powder

import "strconv"

// Config controls the powder world.
type Config struct {
	Width  int
	Height int

	Seed  int64
	Scene string

	// TimeStep is the dt fed to the velocity integration each tick.
	TimeStep float32

	// CheckInvariants validates the grid after every commit and panics on a
	// violation. Meant for tests and debugging sessions.
	CheckInvariants bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:    50,
		Height:   50,
		Seed:     42,
		Scene:    "empty",
		TimeStep: 0.5,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["scene"]; ok && v != "" {
		c.Scene = v
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.TimeStep = float32(parsed)
		}
	}
	if v, ok := cfg["check"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.CheckInvariants = parsed
		}
	}
	return c
}
