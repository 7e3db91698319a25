package bin

import (
	"fmt"

	"github.com/kuoorczp/LightGBM/internal/options"
	"github.com/kuoorczp/LightGBM/internal/parallel"
)

// defaultCapacityFactor is the headroom multiplied into the caller's density
// hint when pre-allocating the flat array and shards.
const defaultCapacityFactor = 1.5

type config struct {
	numThreads     int
	prefetch       bool
	capacityFactor float64
}

// Option configures a store at construction time.
type Option = options.Option[*config]

func defaultConfig() config {
	return config{
		numThreads:     parallel.DefaultNumThreads(),
		prefetch:       true,
		capacityFactor: defaultCapacityFactor,
	}
}

// WithNumThreads sets the producer-thread count. The store keeps one staging
// shard per thread above the first; PushOneRow accepts tids in [0, n).
func WithNumThreads(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("bin: thread count must be positive, got %d", n)
		}
		c.numThreads = n

		return nil
	})
}

// WithPrefetch toggles the lookahead warming path of the indexed histogram
// variants. Disabling it never changes results.
func WithPrefetch(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.prefetch = enabled
	})
}

// WithCapacityFactor sets the headroom applied to the density hint when
// pre-allocating storage. Must be at least 1.
func WithCapacityFactor(f float64) Option {
	return options.New(func(c *config) error {
		if f < 1 {
			return fmt.Errorf("bin: capacity factor must be >= 1, got %g", f)
		}
		c.capacityFactor = f

		return nil
	})
}
