package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/pd-screen/internal/config"
	"github.com/mikey/pd-screen/internal/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	scalerDoc = `{"kind": "standard_scaler", "mean": [0, 0, 0, 0, 0, 0, 0], "scale": [1, 1, 1, 1, 1, 1, 1]}`
	modelDoc  = `{"kind": "linear", "coef": [1, 0, 0, 0, 0, 0, 0], "intercept": -0.4}`
)

func newTestConfig(t *testing.T, dir string, files map[string]string) *config.Config {
	t.Helper()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	v := config.NewEmptyViper()
	v.Set("artifacts.model_path", filepath.Join(dir, "model.json"))
	v.Set("artifacts.scaler_path", filepath.Join(dir, "scaler.json"))
	return config.NewFromViper(v)
}

func TestCreateArtifactsLoadsBoth(t *testing.T) {
	dir := t.TempDir()
	cfg := newTestConfig(t, dir, map[string]string{"model.json": modelDoc, "scaler.json": scalerDoc})

	f := NewArtifactFactory(cfg, zap.NewNop())
	a := f.CreateArtifacts()
	if !a.Ready() {
		t.Fatalf("expected artifacts to be ready, statuses: %+v", a.Statuses())
	}

	svc := core.NewScreeningService(a, zap.NewNop())
	res := svc.Infer(context.Background(), core.SampleFeatureVector())
	if res.Status != core.StatusOK || !res.Detected() {
		t.Fatalf("expected positive result for sample vector, got %+v", res)
	}
}

func TestCreateArtifactsIndependentFailures(t *testing.T) {
	cases := []struct {
		name        string
		files       map[string]string
		format      string
		scalerState core.LoadState
		modelState  core.LoadState
	}{
		{"both missing", nil, "native", core.LoadMissing, core.LoadMissing},
		{"model missing", map[string]string{"scaler.json": scalerDoc}, "native", core.LoadLoaded, core.LoadMissing},
		{"scaler corrupt", map[string]string{"scaler.json": "{{", "model.json": modelDoc}, "native", core.LoadCorrupt, core.LoadLoaded},
		{"unknown format", map[string]string{"scaler.json": scalerDoc, "model.json": modelDoc}, "pickle", core.LoadLoaded, core.LoadCorrupt},
		{"onnx missing", map[string]string{"scaler.json": scalerDoc}, "onnx", core.LoadLoaded, core.LoadMissing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := newTestConfig(t, dir, tc.files)
			cfg.GetViper().Set("artifacts.model_format", tc.format)
			if tc.format == "onnx" {
				cfg.GetViper().Set("artifacts.model_path", filepath.Join(dir, "model.onnx"))
			}

			obs, logs := observer.New(zap.InfoLevel)
			f := NewArtifactFactory(cfg, zap.New(obs))
			a := f.CreateArtifacts()

			if a.Ready() {
				t.Fatalf("expected inference to be disabled")
			}
			if got := a.ScalerStatus().State; got != tc.scalerState {
				t.Fatalf("scaler: expected %v, got %v", tc.scalerState, got)
			}
			if got := a.ClassifierStatus().State; got != tc.modelState {
				t.Fatalf("model: expected %v, got %v", tc.modelState, got)
			}
			if logs.FilterMessage("Inference disabled until both artifacts load; restart after fixing the artifact paths").Len() != 1 {
				t.Fatalf("expected a single inference-disabled warning")
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
		})
	}
}
