package stockpile

import "go.uber.org/zap"

// defaultCapacityIncrement is how many slot/record pairs are added per
// growth step when no override is configured.
const defaultCapacityIncrement = 10

type config struct {
	increment   int
	maxCapacity int
	logger      *zap.Logger
}

type Option func(*config)

// WithCapacityIncrement sets the growth step for the parallel slot and
// record arrays. Values below one are ignored.
func WithCapacityIncrement(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.increment = n
		}
	}
}

// WithMaxCapacity caps total storage. Create returns CapacityError once the
// cap is reached. Zero means unbounded.
func WithMaxCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxCapacity = n
		}
	}
}

// WithLogger attaches a logger for growth and refresh diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func defaultConfig() config {
	return config{
		increment: defaultCapacityIncrement,
		logger:    zap.NewNop(),
	}
}
