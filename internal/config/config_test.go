package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	want := ArtifactsConfig{
		ModelPath:   "./artifacts/model.json",
		ScalerPath:  "./artifacts/scaler.json",
		ModelFormat: ModelFormatNative,
		ONNX: ONNXConfig{
			InputName:  "float_input",
			OutputName: "label",
		},
	}
	if diff := cmp.Diff(want, cfg.GetArtifacts()); diff != "" {
		t.Fatalf("artifacts mismatch (-want +got):\n%s", diff)
	}

	srv, err := cfg.GetServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.ListenAddress != "127.0.0.1:8501" || srv.ReadTimeout != 15*time.Second || srv.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected server config: %+v", srv)
	}
	if cfg.GetInput().AllowNegative {
		t.Fatalf("expected negative inputs to be rejected by default")
	}
	if lc := cfg.GetLogging(); lc.Level != "info" || lc.Format != "console" || lc.File != "" {
		t.Fatalf("unexpected logging config: %+v", lc)
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pd.yaml")
	body := `
artifacts:
  model_path: /srv/models/svc.yaml
  scaler_path: /srv/models/scaler.yaml
  model_format: ONNX
input:
  allow_negative: true
server:
  listen_address: ":9000"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := cfg.GetArtifacts()
	if a.ModelPath != "/srv/models/svc.yaml" || a.ScalerPath != "/srv/models/scaler.yaml" {
		t.Fatalf("unexpected paths: %+v", a)
	}
	if a.ModelFormat != ModelFormatONNX {
		t.Fatalf("expected format to be normalised, got %q", a.ModelFormat)
	}
	if !cfg.GetInput().AllowNegative {
		t.Fatalf("expected allow_negative from file")
	}
	srv, err := cfg.GetServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.ListenAddress != ":9000" {
		t.Fatalf("unexpected listen address %q", srv.ListenAddress)
	}
}

func TestNewFromFileMissing(t *testing.T) {
	if _, err := NewFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for explicit missing config file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PD_SCREEN_ARTIFACTS_SCALER_PATH", "/tmp/env-scaler.json")

	cfg, err := NewFromFile(writeEmptyConfig(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.GetArtifacts().ScalerPath; got != "/tmp/env-scaler.json" {
		t.Fatalf("expected env override, got %q", got)
	}
}

func TestGetServerInvalidDuration(t *testing.T) {
	v := NewEmptyViper()
	v.Set("server.read_timeout", "soon")
	if _, err := NewFromViper(v).GetServer(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func writeEmptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
