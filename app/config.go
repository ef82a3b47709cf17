package app

import (
	"time"

	"github.com/jonboulle/clockwork"

	"fortuna/home/dispatch"
)

// Config tunes the panel. The zero value is not useful; start from DefaultConfig.
type Config struct {
	// Debounce is the minimum spacing between encoder deltas handed to the menu.
	Debounce time.Duration
	Dispatch dispatch.Config
	// Clock drives every panel timer. Nil means the real clock.
	Clock clockwork.Clock
}

// DefaultConfig returns the stock panel configuration on the real clock.
func DefaultConfig() Config {
	return Config{
		Debounce: 500 * time.Microsecond,
		Dispatch: dispatch.DefaultConfig(),
	}
}
