// Package cli runs a single screening from the command line.
package cli

import (
	"context"
	"io"

	"github.com/mikey/pd-screen/internal/core"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Frontend prints screening summaries to a writer
type Frontend struct {
	service *core.ScreeningService
	logger  *zap.Logger
	verbose bool
	w       io.Writer
	p       *message.Printer
}

// NewFrontend creates a new CLI frontend writing to w
func NewFrontend(service *core.ScreeningService, logger *zap.Logger, verbose bool, w io.Writer) *Frontend {
	return &Frontend{
		service: service,
		logger:  logger,
		verbose: verbose,
		w:       w,
		p:       message.NewPrinter(language.English),
	}
}

// Screen runs one screening and prints the input values and the result
func (f *Frontend) Screen(ctx context.Context, vector core.FeatureVector) core.Presentation {
	f.printf("\n=== Input ===\n")
	values := vector.Values()
	for i, feat := range core.FeatureSchema() {
		f.printf("%-14s %.6f\n", feat.Name+":", values[i])
	}
	f.printf("\n")

	result := f.service.Infer(ctx, vector)
	p := core.Present(result)

	f.printf("=== Result ===\n")
	f.printf("%s\n", p.Message)
	if f.verbose {
		f.printf("Status: %s\n", result.Status)
		f.printf("Processing time: %v\n", result.Duration)
	}
	return p
}

// PrintStatus prints each artifact's load state and whether inference can run
func (f *Frontend) PrintStatus() bool {
	f.printf("=== Artifacts ===\n")
	for _, s := range f.service.Artifacts().Statuses() {
		f.printf("%-7s %-8s %s\n", s.Name, s.State, s.Diagnostic())
	}
	ready := f.service.Ready()
	if ready {
		f.printf("\nInference enabled (%d features)\n", core.FeatureCount)
	} else {
		f.printf("\nInference disabled\n")
	}
	return ready
}

// Start is a no-op for the CLI frontend
func (f *Frontend) Start() error {
	return nil
}

// Stop is a no-op for the CLI frontend
func (f *Frontend) Stop() error {
	return nil
}

// printf renders numbers with English digit grouping, e.g. 1,234.500000
func (f *Frontend) printf(format string, args ...interface{}) {
	f.p.Fprintf(f.w, format, args...)
}
