package core

import (
	"errors"
	"fmt"
)

// LoadState is the outcome of loading one artifact
type LoadState int

const (
	LoadLoaded LoadState = iota
	LoadMissing
	LoadCorrupt
)

func (s LoadState) String() string {
	switch s {
	case LoadLoaded:
		return "loaded"
	case LoadMissing:
		return "missing"
	case LoadCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// ArtifactStatus records where an artifact came from and how loading went
type ArtifactStatus struct {
	Name   string
	Path   string
	Format string
	State  LoadState
	Err    error
}

// NewArtifactStatus derives the load state from the error returned by a loader
func NewArtifactStatus(name, path, format string, err error) ArtifactStatus {
	status := ArtifactStatus{Name: name, Path: path, Format: format, State: LoadLoaded}
	switch {
	case err == nil:
	case errors.Is(err, ErrArtifactMissing):
		status.State = LoadMissing
		status.Err = err
	default:
		status.State = LoadCorrupt
		status.Err = err
	}
	return status
}

// Loaded reports whether the artifact is usable
func (s ArtifactStatus) Loaded() bool {
	return s.State == LoadLoaded
}

// Diagnostic returns a one-line human readable description of the status
func (s ArtifactStatus) Diagnostic() string {
	switch s.State {
	case LoadLoaded:
		return fmt.Sprintf("%s loaded from %s", s.Name, s.Path)
	case LoadMissing:
		return fmt.Sprintf("%s not found at: %s", s.Name, s.Path)
	default:
		return fmt.Sprintf("Error loading %s: %v", s.Name, s.Err)
	}
}

// Artifacts is the immutable set of loaded artifacts shared by all submissions.
// Objects whose status is not loaded are never exposed.
type Artifacts struct {
	scaler           Scaler
	classifier       Classifier
	scalerStatus     ArtifactStatus
	classifierStatus ArtifactStatus
}

// NewArtifacts builds the artifact set once at startup
func NewArtifacts(scaler Scaler, scalerStatus ArtifactStatus, classifier Classifier, classifierStatus ArtifactStatus) *Artifacts {
	a := &Artifacts{
		scalerStatus:     scalerStatus,
		classifierStatus: classifierStatus,
	}
	if scalerStatus.Loaded() && scaler != nil {
		a.scaler = scaler
	} else if scalerStatus.Loaded() {
		a.scalerStatus = NewArtifactStatus(scalerStatus.Name, scalerStatus.Path, scalerStatus.Format,
			fmt.Errorf("%w: loader returned no object", ErrArtifactLoad))
	}
	if classifierStatus.Loaded() && classifier != nil {
		a.classifier = classifier
	} else if classifierStatus.Loaded() {
		a.classifierStatus = NewArtifactStatus(classifierStatus.Name, classifierStatus.Path, classifierStatus.Format,
			fmt.Errorf("%w: loader returned no object", ErrArtifactLoad))
	}
	return a
}

// Ready reports whether both artifacts are loaded and inference can run
func (a *Artifacts) Ready() bool {
	return a != nil && a.scaler != nil && a.classifier != nil
}

// ScalerStatus returns the scaler load status
func (a *Artifacts) ScalerStatus() ArtifactStatus {
	return a.scalerStatus
}

// ClassifierStatus returns the classifier load status
func (a *Artifacts) ClassifierStatus() ArtifactStatus {
	return a.classifierStatus
}

// Statuses returns the classifier and scaler statuses, in that order
func (a *Artifacts) Statuses() []ArtifactStatus {
	if a == nil {
		return nil
	}
	return []ArtifactStatus{a.classifierStatus, a.scalerStatus}
}
