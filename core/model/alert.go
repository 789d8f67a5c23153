package model

// Alert is an operational notification attached to the shared schedule state.
type Alert struct {
	ID        string `json:"id"`
	AlertType string `json:"alert_type"`
	Message   string `json:"message"`
	// Level is "info", "warning" or "critical".
	Level     string `json:"level"`
	Timestamp string `json:"timestamp"`
}
