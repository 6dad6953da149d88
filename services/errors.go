package services

import (
	"errors"
	"fmt"
)

// Load stages that can fail a whole ingestion pass.
const (
	StageFetch = "fetch"
	StageParse = "parse"
)

// EmptyDatasetMessage reports a pass that produced no courses, which almost
// always means the sheet's headers no longer match the alias tables.
const EmptyDatasetMessage = "Loaded 0 courses. Likely a lat/lng header mismatch in the sheet."

// ErrNotLoaded is returned when no ingestion pass has completed yet.
var ErrNotLoaded = errors.New("course data not loaded yet")

// LoadError is a pipeline-level failure: the CSV could not be fetched or
// could not be tokenized.
type LoadError struct {
	Stage  string
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error at %s stage: %v", e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NewLoadError creates a new LoadError.
func NewLoadError(stage, source string, err error) *LoadError {
	return &LoadError{Stage: stage, Source: source, Err: err}
}

// UserMessage renders a pipeline failure as the single line shown to users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNotLoaded) {
		return "Course data is still loading. Try again shortly."
	}
	var le *LoadError
	if errors.As(err, &le) {
		return "Could not load course data: " + le.Err.Error()
	}
	return "Could not load course data: " + err.Error()
}
