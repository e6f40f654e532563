package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewArtifactStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want LoadState
	}{
		{"ok", nil, LoadLoaded},
		{"missing", fmt.Errorf("open model: %w", ErrArtifactMissing), LoadMissing},
		{"corrupt", fmt.Errorf("%w: bad json", ErrArtifactLoad), LoadCorrupt},
		{"other", errors.New("permission denied"), LoadCorrupt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewArtifactStatus("model", "/m.json", "native", tc.err)
			if s.State != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, s.State)
			}
			if s.Loaded() != (tc.want == LoadLoaded) {
				t.Fatalf("Loaded() inconsistent with state")
			}
		})
	}
}

func TestArtifactStatusDiagnostic(t *testing.T) {
	missing := NewArtifactStatus("Model", "/srv/model.json", "native", ErrArtifactMissing)
	if got := missing.Diagnostic(); got != "Model not found at: /srv/model.json" {
		t.Fatalf("unexpected diagnostic %q", got)
	}
	corrupt := NewArtifactStatus("Scaler", "/srv/scaler.json", "native", fmt.Errorf("%w: unexpected EOF", ErrArtifactLoad))
	if got := corrupt.Diagnostic(); !strings.HasPrefix(got, "Error loading Scaler: ") || !strings.Contains(got, "unexpected EOF") {
		t.Fatalf("unexpected diagnostic %q", got)
	}
}

func TestNewArtifactsRejectsNilObjects(t *testing.T) {
	a := NewArtifacts(nil, loaded("scaler"), &linearClassifier{}, loaded("model"))
	if a.Ready() {
		t.Fatalf("expected not ready when scaler object is nil")
	}
	if a.ScalerStatus().State != LoadCorrupt {
		t.Fatalf("expected scaler to be marked corrupt, got %v", a.ScalerStatus().State)
	}
	if a.ClassifierStatus().State != LoadLoaded {
		t.Fatalf("classifier status should be untouched")
	}
}

func TestArtifactsIgnoresObjectsThatFailedToLoad(t *testing.T) {
	bad := NewArtifactStatus("model", "/m", "native", ErrArtifactLoad)
	a := NewArtifacts(&fakeScaler{}, loaded("scaler"), &linearClassifier{}, bad)
	if a.Ready() {
		t.Fatalf("expected not ready when classifier failed to load")
	}
	if len(a.Statuses()) != 2 {
		t.Fatalf("expected two statuses")
	}
}

func TestNilArtifactsNotReady(t *testing.T) {
	var a *Artifacts
	if a.Ready() {
		t.Fatalf("nil artifacts must not be ready")
	}
}
