// Package onnx runs a binary classifier exported to ONNX through onnxruntime.
package onnx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mikey/pd-screen/internal/core"
	ort "github.com/yalue/onnxruntime_go"
)

// Config selects the model graph's tensor names and the runtime library
type Config struct {
	LibraryPath string
	InputName   string
	OutputName  string
}

// Classifier wraps an onnxruntime session with a [1, 7] float input and a
// single int64 label output.
type Classifier struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[int64]

	mu sync.Mutex
}

// LoadClassifier opens the model at path. A missing model file is reported
// before the runtime is touched.
func LoadClassifier(path string, cfg Config) (*Classifier, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrArtifactLoad, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", core.ErrArtifactMissing, path)
	}

	if cfg.InputName == "" || cfg.OutputName == "" {
		return nil, fmt.Errorf("%w: onnx input and output names are required", core.ErrArtifactLoad)
	}

	libPath := resolveSharedLibraryPath(cfg.LibraryPath, filepath.Dir(path))
	if libPath == "" {
		return nil, fmt.Errorf("%w: onnxruntime shared library not found; set artifacts.onnx.library_path or ONNXRUNTIME_SHARED_LIBRARY_PATH", core.ErrArtifactLoad)
	}
	if !ort.IsInitialized() {
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("%w: initialize onnxruntime: %v", core.ErrArtifactLoad, err)
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, core.FeatureCount))
	if err != nil {
		return nil, fmt.Errorf("%w: allocate input tensor: %v", core.ErrArtifactLoad, err)
	}
	output, err := ort.NewEmptyTensor[int64](ort.NewShape(1))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("%w: allocate output tensor: %v", core.ErrArtifactLoad, err)
	}

	session, err := ort.NewAdvancedSession(
		path,
		[]string{cfg.InputName},
		[]string{cfg.OutputName},
		[]ort.Value{input},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("%w: create onnx session: %v", core.ErrArtifactLoad, err)
	}

	return &Classifier{
		session: session,
		input:   input,
		output:  output,
	}, nil
}

// Predict implements core.Classifier
func (c *Classifier) Predict(row []float64) (int, error) {
	if c == nil || c.session == nil {
		return 0, errors.New("onnx classifier not initialized")
	}
	if len(row) != core.FeatureCount {
		return 0, fmt.Errorf("expected %d values, got %d", core.FeatureCount, len(row))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data := c.input.GetData()
	for i, x := range row {
		data[i] = float32(x)
	}
	if err := c.session.Run(); err != nil {
		return 0, fmt.Errorf("onnx run: %w", err)
	}
	return int(c.output.GetData()[0]), nil
}

// Close releases the session and its tensors
func (c *Classifier) Close() error {
	if c == nil || c.session == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.session.Destroy()
	c.input.Destroy()
	c.output.Destroy()
	c.session = nil
	return err
}

// resolveSharedLibraryPath picks the configured library, then
// ONNXRUNTIME_SHARED_LIBRARY_PATH, then probes common install locations.
func resolveSharedLibraryPath(configured, modelDir string) string {
	if configured = strings.TrimSpace(configured); configured != "" {
		return configured
	}
	if env := strings.TrimSpace(os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")); env != "" {
		return env
	}

	names := []string{
		"libonnxruntime.so",
		"onnxruntime.so",
		"libonnxruntime.dylib",
		"onnxruntime.dll",
	}
	dirs := []string{
		modelDir,
		filepath.Join(modelDir, "lib"),
		".",
		"/opt/homebrew/lib",
		"/usr/local/lib",
		"/usr/lib",
	}
	for _, dir := range dirs {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
