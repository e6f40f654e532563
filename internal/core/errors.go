package core

import "errors"

var (
	// ErrArtifactMissing is returned when an artifact path does not name an existing file
	ErrArtifactMissing = errors.New("artifact not found")
	// ErrArtifactLoad is returned when an artifact exists but cannot be decoded or validated
	ErrArtifactLoad = errors.New("artifact could not be loaded")
	// ErrArtifactsNotLoaded is returned when inference is requested without both artifacts
	ErrArtifactsNotLoaded = errors.New("model or scaler not loaded")
	// ErrInference wraps any failure during vector assembly, scaling or prediction
	ErrInference = errors.New("inference failed")
)

// InferenceError records which pipeline stage failed. It matches ErrInference.
type InferenceError struct {
	Stage string
	Err   error
}

func (e *InferenceError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInference) hold for every stage failure
func (e *InferenceError) Is(target error) bool {
	return target == ErrInference
}
