package sched

// Config tunes a Scheduler.
type Config struct {
	// ChefLookahead is how many minutes past a task's earliest start a chef
	// may still be busy and count as available.
	ChefLookahead float64 `yaml:"chef_lookahead_minutes"`
}

// DefaultConfig returns the values used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		ChefLookahead: 30,
	}
}

// sanitize clamps out-of-range values.
func (c Config) sanitize() Config {
	if c.ChefLookahead < 0 {
		c.ChefLookahead = 0
	}
	return c
}
