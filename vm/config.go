package vm

// Config controls a single run.
type Config struct {
	// TapeCapacity preallocates tape cells. Zero selects the default.
	TapeCapacity int

	// MaxSteps bounds the number of program bytes dispatched, no-ops
	// included. Zero means unlimited.
	MaxSteps uint64

	// Strict validates bracket pairing over the whole program before
	// executing anything. Lazy detection during the run still applies.
	Strict bool

	// Trace logs every dispatched instruction at debug level.
	Trace bool
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.TapeCapacity <= 0 {
		c.TapeCapacity = defaultTapeCapacity
	}
}
