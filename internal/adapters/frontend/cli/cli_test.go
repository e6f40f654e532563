package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mikey/pd-screen/internal/core"
	"go.uber.org/zap"
)

type identityScaler struct{}

func (identityScaler) Transform(row []float64) ([]float64, error) {
	return row, nil
}

type constClassifier int

func (c constClassifier) Predict([]float64) (int, error) {
	return int(c), nil
}

func newFrontend(artifacts *core.Artifacts, verbose bool) (*Frontend, *bytes.Buffer) {
	var buf bytes.Buffer
	svc := core.NewScreeningService(artifacts, zap.NewNop())
	return NewFrontend(svc, zap.NewNop(), verbose, &buf), &buf
}

func loaded(label int) *core.Artifacts {
	return core.NewArtifacts(
		identityScaler{}, core.NewArtifactStatus("Scaler", "scaler.json", "native", nil),
		constClassifier(label), core.NewArtifactStatus("Model", "model.json", "native", nil),
	)
}

func TestScreenPrintsSummary(t *testing.T) {
	f, buf := newFrontend(loaded(1), true)

	vector := core.SampleFeatureVector()
	vector.Fhi = 1234.5
	p := f.Screen(context.Background(), vector)
	if p.State != core.DisplayPositive {
		t.Fatalf("expected positive, got %s", p.State)
	}

	out := buf.String()
	for _, want := range []string{
		"=== Input ===",
		"MDVP:Fhi(Hz):  1,234.500000",
		"PPE:           0.500000",
		"=== Result ===",
		core.MessagePositive,
		"Status: ok",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestScreenUnavailable(t *testing.T) {
	missing := core.NewArtifacts(
		nil, core.NewArtifactStatus("Scaler", "scaler.json", "native", core.ErrArtifactMissing),
		constClassifier(1), core.NewArtifactStatus("Model", "model.json", "native", nil),
	)
	f, buf := newFrontend(missing, false)

	p := f.Screen(context.Background(), core.FeatureVector{})
	if p.State != core.DisplayUnavailable {
		t.Fatalf("expected unavailable, got %s", p.State)
	}
	if !strings.Contains(buf.String(), core.MessageUnavailable) {
		t.Fatalf("expected unavailable message in output")
	}
	if strings.Contains(buf.String(), "Status:") {
		t.Fatalf("status line is only printed in verbose mode")
	}

	buf.Reset()
	if f.PrintStatus() {
		t.Fatalf("expected inference to be reported disabled")
	}
	out := buf.String()
	if !strings.Contains(out, "Scaler not found at: scaler.json") || !strings.Contains(out, "Inference disabled") {
		t.Fatalf("unexpected status output:\n%s", out)
	}
}

func TestPrintStatusReady(t *testing.T) {
	f, buf := newFrontend(loaded(0), false)
	if !f.PrintStatus() {
		t.Fatalf("expected inference to be enabled")
	}
	if !strings.Contains(buf.String(), "Model loaded from model.json") {
		t.Fatalf("unexpected status output:\n%s", buf.String())
	}
}
