package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// RecoverFromPanic turns handler panics into error results.
	RecoverFromPanic bool
}

// DefaultConfig returns the default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		RecoverFromPanic: true,
	}
}
