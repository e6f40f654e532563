package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mikey/pd-screen/internal/config"
	"github.com/mikey/pd-screen/internal/core"
	"github.com/mikey/pd-screen/internal/di"
	"github.com/mikey/pd-screen/internal/factory"
	"github.com/mikey/pd-screen/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	errInferenceDisabled = errors.New("inference disabled: model or scaler not loaded")
	errNotScreened       = errors.New("screening did not produce a result")
)

// statusReporter is implemented by frontends that can describe artifact state
type statusReporter interface {
	PrintStatus() bool
}

func newRootCmd() *cobra.Command {
	flags := &di.CLIFlags{}

	rootCmd := &cobra.Command{
		Use:           "pd-screen-cli",
		Short:         "Screen voice-biomarker values against local artifacts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			flags.Out = cmd.OutOrStdout()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "Path to config file (flags override its values)")
	pf.StringVar(&flags.ModelPath, "model", "", "Path to the classifier artifact")
	pf.StringVar(&flags.ScalerPath, "scaler", "", "Path to the scaler artifact")
	pf.StringVar(&flags.ModelFormat, "model-format", "", "Classifier artifact format (native, onnx)")
	pf.StringVar(&flags.ONNXLibrary, "onnx-library", "", "Path to the onnxruntime shared library")
	pf.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging and output")
	pf.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")

	rootCmd.AddCommand(
		newCheckCmd(flags),
		newPredictCmd(flags),
	)
	return rootCmd
}

func newCheckCmd(flags *di.CLIFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the artifacts and report whether inference can run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := di.BuildCLIContainer(flags)
			if err != nil {
				return fmt.Errorf("failed to build dependency container: %w", err)
			}
			return container.Invoke(func(logger *zap.Logger, fe ports.Frontend, af *factory.ArtifactFactory) error {
				defer logger.Sync()
				defer af.Close()

				reporter, ok := fe.(statusReporter)
				if !ok {
					return fmt.Errorf("frontend %T cannot report status", fe)
				}
				if !reporter.PrintStatus() {
					return errInferenceDisabled
				}
				return nil
			})
		},
	}
}

func newPredictCmd(flags *di.CLIFlags) *cobra.Command {
	var (
		sample bool
		strict bool
	)
	raw := make(map[string]*string, core.FeatureCount)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run one screening for the seven voice-biomarker values",
		Long: `Runs one screening and prints the result message.

All seven values are required unless --sample is given, in which case
the sample values fill any value not set explicitly. The command exits
non-zero for invalid input, and with --strict also when no prediction
could be made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := di.BuildCLIContainer(flags)
			if err != nil {
				return fmt.Errorf("failed to build dependency container: %w", err)
			}
			return container.Invoke(func(logger *zap.Logger, cfg *config.Config, fe ports.Frontend, af *factory.ArtifactFactory) error {
				defer logger.Sync()
				defer af.Close()

				get := func(key string) string {
					if f := cmd.Flags().Lookup(flagName(key)); f != nil && f.Changed {
						return *raw[key]
					}
					if sample {
						return sampleValue(key)
					}
					return ""
				}
				vector, err := core.ParseFeatureVector(get, cfg.GetInput().AllowNegative)
				if err != nil {
					return err
				}

				p := fe.Screen(context.Background(), vector)
				if strict && p.State == core.DisplayUnavailable {
					return errNotScreened
				}
				return nil
			})
		},
	}

	for _, f := range core.FeatureSchema() {
		raw[f.Key] = cmd.Flags().String(flagName(f.Key), "", f.Name+" value")
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "Fill unset values with the sample feature vector")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when no prediction could be made")
	cmd.Flags().BoolVar(&flags.AllowNegative, "allow-negative", false, "Accept negative feature values")
	return cmd
}

// flagName maps a feature key to its command line flag, e.g. jitter_ddp -> jitter-ddp
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func sampleValue(key string) string {
	values := core.SampleFeatureVector().Values()
	for i, f := range core.FeatureSchema() {
		if f.Key == key {
			return core.FormatValue(values[i])
		}
	}
	return ""
}
