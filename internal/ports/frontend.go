package ports

import (
	"context"

	"github.com/mikey/pd-screen/internal/core"
)

// Frontend collects a feature vector, runs a screening and presents the result
type Frontend interface {
	// Screen runs one screening for an already parsed feature vector
	Screen(ctx context.Context, vector core.FeatureVector) core.Presentation

	// Start runs the frontend until it is stopped
	Start() error

	// Stop stops the frontend
	Stop() error
}
