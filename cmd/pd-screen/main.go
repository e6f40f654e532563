package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/pd-screen/internal/di"
	"github.com/mikey/pd-screen/internal/factory"
	"github.com/mikey/pd-screen/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "pd-screen",
		Short:         "Serve the voice-biomarker screening form",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build the dependency injection container
			container, err := di.BuildContainer(configFile)
			if err != nil {
				return fmt.Errorf("failed to build dependency container: %w", err)
			}
			return container.Invoke(run)
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to config file (searches the default locations when empty)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	frontend ports.Frontend,
	artifacts *factory.ArtifactFactory,
) error {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(frontend.Start)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down...")
		return frontend.Stop()
	})
	err := g.Wait()

	if cerr := artifacts.Close(); cerr != nil {
		logger.Error("Failed to release artifacts", zap.Error(cerr))
	}

	logger.Info("Shutdown complete")
	return err
}
