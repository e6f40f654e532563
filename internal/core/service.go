package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ScreeningService is the core service that runs the scaler and classifier
// over one feature vector per submission
type ScreeningService struct {
	artifacts *Artifacts
	logger    *zap.Logger
}

// NewScreeningService creates a new screening service
func NewScreeningService(artifacts *Artifacts, logger *zap.Logger) *ScreeningService {
	return &ScreeningService{
		artifacts: artifacts,
		logger:    logger,
	}
}

// Ready reports whether predictions can run
func (s *ScreeningService) Ready() bool {
	return s.artifacts.Ready()
}

// Artifacts returns the artifact set the service was built with
func (s *ScreeningService) Artifacts() *Artifacts {
	return s.artifacts
}

// Infer screens one feature vector. It never panics: a missing artifact
// yields StatusUnavailable and any pipeline failure yields StatusError.
func (s *ScreeningService) Infer(ctx context.Context, vector FeatureVector) PredictionResult {
	start := time.Now()

	if !s.artifacts.Ready() {
		s.logger.Debug("Prediction skipped, artifacts not loaded")
		return PredictionResult{Status: StatusUnavailable, Err: ErrArtifactsNotLoaded}
	}
	if err := ctx.Err(); err != nil {
		return PredictionResult{Status: StatusError, Err: &InferenceError{Stage: "request", Err: err}}
	}

	label, err := s.run(vector)
	duration := time.Since(start)
	if err != nil {
		s.logger.Warn("Prediction failed", zap.Error(err), zap.Duration("duration", duration))
		return PredictionResult{Status: StatusError, Err: err, Duration: duration}
	}

	s.logger.Debug("Prediction completed", zap.Duration("duration", duration))
	return PredictionResult{Status: StatusOK, Label: label, Duration: duration}
}

func (s *ScreeningService) run(vector FeatureVector) (label int, err error) {
	stage := "assemble features"
	defer func() {
		if r := recover(); r != nil {
			err = &InferenceError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	row := vector.Values()
	if len(row) != FeatureCount {
		return 0, &InferenceError{Stage: stage, Err: fmt.Errorf("expected %d features, got %d", FeatureCount, len(row))}
	}

	stage = "scale features"
	scaled, err := s.artifacts.scaler.Transform(row)
	if err != nil {
		return 0, &InferenceError{Stage: stage, Err: err}
	}
	if len(scaled) != len(row) {
		return 0, &InferenceError{Stage: stage, Err: fmt.Errorf("scaler returned %d values for %d features", len(scaled), len(row))}
	}

	stage = "predict"
	label, err = s.artifacts.classifier.Predict(scaled)
	if err != nil {
		return 0, &InferenceError{Stage: stage, Err: err}
	}
	return label, nil
}
