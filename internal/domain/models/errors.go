package models

import "fmt"

// InvalidSignalError marks an observation whose sentiment or confidence lies
// outside its declared bound. Recoverable: the observation is dropped and the
// batch continues.
type InvalidSignalError struct {
	Asset  string
	Source string
	Field  string
	Value  float64
}

func (e *InvalidSignalError) Error() string {
	return fmt.Sprintf("invalid signal for %s from %s: %s=%g out of bounds", e.Asset, e.Source, e.Field, e.Value)
}

// SingularMatrixError means the posterior system stayed unsolvable even after
// ridge regularization. Fatal for the run, indicates corrupt prior data.
type SingularMatrixError struct {
	Op string
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("singular matrix in %s: system unsolvable after regularization", e.Op)
}

// ConfigurationError is a startup-time rejection of invalid bounds.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// EmptyUniverseError: cannot optimize over zero assets.
type EmptyUniverseError struct{}

func (e *EmptyUniverseError) Error() string {
	return "asset universe is empty"
}

// RunError attaches the failing pipeline stage to the underlying error so the
// caller sees where the run died.
type RunError struct {
	Stage string
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("pipeline failed at %s: %v", e.Stage, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
