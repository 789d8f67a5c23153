// Package prediction defines the external delay-predictor hook that may
// annotate trains before optimization. The core only depends on the
// interface; real predictors live outside this repository.
package prediction

import "github.com/gowriprasath-v/train-traffic/core/model"

// Engine forecasts the expected extra delay for a train on a given date.
type Engine interface {
	// PredictDelay returns the expected delay in minutes and a status
	// label for the train. A zero delay means no annotation.
	PredictDelay(date string, train model.TrainRequest) (int, string)
}
