package schedule

import "fmt"

// Config defines optimizer and station settings.
type Config struct {
	// MaxPlatforms is the station platform capacity.
	MaxPlatforms int `json:"max_platforms"`
	// DwellMinutes is the idle buffer required after each departure before
	// the platform can be reused.
	DwellMinutes int `json:"dwell_minutes"`
	// MaxPriority is the highest accepted priority value; lower numbers
	// rank higher.
	MaxPriority int `json:"max_priority"`
	// PriorityBase is the constant K in the protection weight
	// max(1, K - priority).
	PriorityBase int `json:"priority_base"`
	// DelayWeight is the objective cost per minute of added delay.
	DelayWeight float64 `json:"delay_weight"`
	// ReassignmentWeight is the flat objective cost of moving a train off
	// its requested platform.
	ReassignmentWeight float64 `json:"reassignment_weight"`
	// TimeBudgetSeconds caps the wall-clock time of one solve.
	TimeBudgetSeconds int `json:"time_budget_seconds"`
	// HorizonBufferMinutes is added to the latest observed request time to
	// bound the search space.
	HorizonBufferMinutes int `json:"horizon_buffer_minutes"`
	// OnTimeMinutes and MinorDelayMinutes are the status bucket
	// thresholds: delay <= OnTimeMinutes is on_time, <= MinorDelayMinutes
	// is minor_delay, anything above is delayed.
	OnTimeMinutes     int `json:"on_time_minutes"`
	MinorDelayMinutes int `json:"minor_delay_minutes"`
}

// SetDefaults applies the station defaults.
func (c *Config) SetDefaults() {
	if c.MaxPlatforms == 0 {
		c.MaxPlatforms = 10
	}
	if c.DwellMinutes == 0 {
		c.DwellMinutes = 2
	}
	if c.MaxPriority == 0 {
		c.MaxPriority = 9
	}
	if c.PriorityBase == 0 {
		c.PriorityBase = 5
	}
	if c.DelayWeight == 0 {
		c.DelayWeight = 1
	}
	if c.ReassignmentWeight == 0 {
		c.ReassignmentWeight = 3
	}
	if c.TimeBudgetSeconds == 0 {
		c.TimeBudgetSeconds = 20
	}
	if c.HorizonBufferMinutes == 0 {
		c.HorizonBufferMinutes = 4 * 60
	}
	if c.OnTimeMinutes == 0 {
		c.OnTimeMinutes = 5
	}
	if c.MinorDelayMinutes == 0 {
		c.MinorDelayMinutes = 15
	}
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	if c.MaxPlatforms < 1 {
		return fmt.Errorf("max_platforms must be at least 1")
	}
	if c.DwellMinutes < 0 {
		return fmt.Errorf("dwell_minutes must not be negative")
	}
	if c.DelayWeight < 0 || c.ReassignmentWeight < 0 {
		return fmt.Errorf("objective weights must not be negative")
	}
	if c.TimeBudgetSeconds < 1 {
		return fmt.Errorf("time_budget_seconds must be at least 1")
	}
	if c.OnTimeMinutes > c.MinorDelayMinutes {
		return fmt.Errorf("on_time_minutes must not exceed minor_delay_minutes")
	}
	return nil
}

// weight computes the protection weight for a priority value. Lower numbered
// priorities get larger weights, never less than 1.
func (c Config) weight(priority int) float64 {
	w := c.PriorityBase - priority
	if w < 1 {
		w = 1
	}
	return float64(w)
}
