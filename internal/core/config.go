package core

// RuntimeConfig contains what an adapter needs to host one board.
type RuntimeConfig struct {
	ScreenW   int    // Screen width in characters
	ScreenH   int    // Screen height in characters
	Seed      int64  // RNG seed; 0 means seed from the clock
	SessionID string // Key under which the board is published
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}
