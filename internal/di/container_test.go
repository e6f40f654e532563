package di

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/pd-screen/internal/adapters/frontend/cli"
	"github.com/mikey/pd-screen/internal/config"
	"github.com/mikey/pd-screen/internal/core"
	"github.com/mikey/pd-screen/internal/ports"
)

func TestBuildCLIContainerAppliesFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := "artifacts:\n  model_path: " + filepath.Join(dir, "from-file.json") + "\n  scaler_path: " + filepath.Join(dir, "scaler.json") + "\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	flags := &CLIFlags{
		ConfigFile:    cfgPath,
		ModelPath:     filepath.Join(dir, "from-flag.json"),
		AllowNegative: true,
		Out:           &out,
	}
	container, err := BuildCLIContainer(flags)
	if err != nil {
		t.Fatalf("BuildCLIContainer: %v", err)
	}

	err = container.Invoke(func(cfg *config.Config, artifacts *core.Artifacts, fe ports.Frontend) {
		ac := cfg.GetArtifacts()
		if ac.ModelPath != flags.ModelPath {
			t.Errorf("flag should override model path, got %q", ac.ModelPath)
		}
		if ac.ScalerPath != filepath.Join(dir, "scaler.json") {
			t.Errorf("scaler path should come from file, got %q", ac.ScalerPath)
		}
		if !cfg.GetInput().AllowNegative {
			t.Errorf("expected allow_negative to be set")
		}
		if artifacts.Ready() {
			t.Errorf("artifacts should not load from an empty directory")
		}
		if _, ok := fe.(*cli.Frontend); !ok {
			t.Errorf("expected CLI frontend, got %T", fe)
		}
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
}

func TestBuildCLIContainerMissingConfigFile(t *testing.T) {
	container, err := BuildCLIContainer(&CLIFlags{ConfigFile: filepath.Join(t.TempDir(), "absent.yaml")})
	if err != nil {
		t.Fatalf("BuildCLIContainer: %v", err)
	}
	if err := container.Invoke(func(*config.Config) {}); err == nil {
		t.Fatalf("expected an error for an explicit missing config file")
	}
}

func TestBuildContainer(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := "artifacts:\n  model_path: " + filepath.Join(dir, "model.json") + "\n  scaler_path: " + filepath.Join(dir, "scaler.json") + "\nlogging:\n  level: error\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	container, err := BuildContainer(cfgPath)
	if err != nil {
		t.Fatalf("BuildContainer: %v", err)
	}
	err = container.Invoke(func(service *core.ScreeningService, fe ports.Frontend) {
		if service.Ready() {
			t.Errorf("expected inference disabled without artifacts")
		}
		if fe == nil {
			t.Errorf("expected a frontend")
		}
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
}
