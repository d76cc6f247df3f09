package game

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible board
	// generation and combat rolls. A seed of 0 means a time-based seed
	// will be generated.
	Seed int64
}
