package model

// TrainRequest describes a single train asking for a platform slot.
// Arrival and departure are scheduled "HH:MM" times; the optional fields let
// an external delay predictor or the frontend attach advisory information
// without affecting the mandatory schema.
type TrainRequest struct {
	TrainID   string `json:"train_id"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
	// Priority ranks trains; lower value means higher precedence.
	Priority int `json:"priority"`
	// Platform is the requested platform, 1-based.
	Platform int `json:"platform"`

	// Optional advisory fields. Nil means "not provided"; defaults are
	// resolved once by the validator, never inferred downstream.
	Scheduled     *string `json:"scheduled,omitempty"`
	ActualArrival *string `json:"actual_arrival,omitempty"`
	Status        string  `json:"status,omitempty"`
	DelayMinutes  *int    `json:"delay_minutes,omitempty"`
}

// ScheduleRequest is a batch of train requests for one calendar date.
type ScheduleRequest struct {
	Date   string         `json:"date"`
	Trains []TrainRequest `json:"trains"`
}

// Window returns the requested occupation interval as minutes since midnight.
// The second return is false when either time fails to parse.
func (t TrainRequest) Window() (Clock, Clock, bool) {
	arr, err := ParseClock(t.Arrival)
	if err != nil {
		return 0, 0, false
	}
	dep, err := ParseClock(t.Departure)
	if err != nil {
		return 0, 0, false
	}
	return arr, dep, true
}
