package prediction

import "github.com/gowriprasath-v/train-traffic/core/model"

// MockEngine returns configured per-train delays; used in tests and local
// runs.
type MockEngine struct {
	// Delays maps train identifiers to predicted delay minutes.
	Delays map[string]int
	// Status is the label attached to annotated trains. Empty means
	// "delayed".
	Status string
}

// PredictDelay implements Engine using the configured map.
func (m MockEngine) PredictDelay(date string, train model.TrainRequest) (int, string) {
	d := m.Delays[train.TrainID]
	if d <= 0 {
		return 0, ""
	}
	status := m.Status
	if status == "" {
		status = "delayed"
	}
	return d, status
}
