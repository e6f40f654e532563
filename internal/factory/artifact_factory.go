package factory

import (
	"fmt"
	"io"

	"github.com/mikey/pd-screen/internal/adapters/artifact"
	"github.com/mikey/pd-screen/internal/adapters/onnx"
	"github.com/mikey/pd-screen/internal/config"
	"github.com/mikey/pd-screen/internal/core"
	"go.uber.org/zap"
)

// ArtifactFactory loads the scaler and classifier artifacts based on configuration
type ArtifactFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	closers []io.Closer
}

// NewArtifactFactory creates a new artifact factory
func NewArtifactFactory(cfg *config.Config, logger *zap.Logger) *ArtifactFactory {
	return &ArtifactFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateArtifacts loads both artifacts independently. It never fails: a
// missing or corrupt artifact is recorded in its status and disables
// inference without stopping the process.
func (f *ArtifactFactory) CreateArtifacts() *core.Artifacts {
	ac := f.cfg.GetArtifacts()

	scaler, err := artifact.LoadScaler(ac.ScalerPath)
	scalerStatus := core.NewArtifactStatus("Scaler", ac.ScalerPath, config.ModelFormatNative, err)
	f.logStatus(scalerStatus)

	classifier, err := f.loadClassifier(ac)
	classifierStatus := core.NewArtifactStatus("Model", ac.ModelPath, ac.ModelFormat, err)
	f.logStatus(classifierStatus)

	artifacts := core.NewArtifacts(scaler, scalerStatus, classifier, classifierStatus)
	if !artifacts.Ready() {
		f.logger.Warn("Inference disabled until both artifacts load; restart after fixing the artifact paths")
	}
	return artifacts
}

func (f *ArtifactFactory) loadClassifier(ac config.ArtifactsConfig) (core.Classifier, error) {
	switch ac.ModelFormat {
	case config.ModelFormatNative, "":
		return artifact.LoadClassifier(ac.ModelPath)
	case config.ModelFormatONNX:
		c, err := onnx.LoadClassifier(ac.ModelPath, onnx.Config{
			LibraryPath: ac.ONNX.LibraryPath,
			InputName:   ac.ONNX.InputName,
			OutputName:  ac.ONNX.OutputName,
		})
		if err != nil {
			return nil, err
		}
		f.closers = append(f.closers, c)
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unsupported model format: %s", core.ErrArtifactLoad, ac.ModelFormat)
	}
}

func (f *ArtifactFactory) logStatus(s core.ArtifactStatus) {
	fields := []zap.Field{
		zap.String("artifact", s.Name),
		zap.String("path", s.Path),
		zap.String("format", s.Format),
	}
	switch s.State {
	case core.LoadLoaded:
		f.logger.Info("Loaded artifact", fields...)
	case core.LoadMissing:
		f.logger.Warn("Artifact not found", fields...)
	default:
		f.logger.Error("Failed to load artifact", append(fields, zap.Error(s.Err))...)
	}
}

// Close releases any runtime resources held by loaded artifacts
func (f *ArtifactFactory) Close() error {
	var firstErr error
	for _, c := range f.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	return firstErr
}
