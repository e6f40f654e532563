package di

import (
	"io"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/pd-screen/internal/config"
	"github.com/mikey/pd-screen/internal/core"
	"github.com/mikey/pd-screen/internal/factory"
	"github.com/mikey/pd-screen/internal/logging"
	"github.com/mikey/pd-screen/internal/ports"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Artifact flags
	ModelPath   string
	ScalerPath  string
	ModelFormat string
	ONNXLibrary string

	// Input flags
	AllowNegative bool

	// Output flags
	Verbose    bool
	JSONLog    bool
	ConfigFile string
	Out        io.Writer
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		cfg, err := loadCLIConfig(flags)
		if err != nil {
			return nil, err
		}
		if used := cfg.GetViper().ConfigFileUsed(); used != "" {
			logger.Info("Loaded configuration from file", zap.String("file", used))
		}
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	if err := provideScreening(container); err != nil {
		return nil, err
	}

	// Register frontend
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger, service *core.ScreeningService, flags *CLIFlags) *factory.FrontendFactory {
		return factory.NewFrontendFactory(cfg, logger, service).WithOutput(flags.Out)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.FrontendFactory) (ports.Frontend, error) {
		return f.CreateFrontend()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// loadCLIConfig reads the config file when one is given, then applies the
// flags that were set on top of it
func loadCLIConfig(flags *CLIFlags) (*config.Config, error) {
	var cfg *config.Config
	if flags.ConfigFile != "" {
		var err error
		cfg, err = config.NewFromFile(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.NewFromViper(config.NewEmptyViper())
	}

	v := cfg.GetViper()

	// Set some cli specific settings
	v.Set("frontend.type", "cli")
	v.Set("cli.verbose", flags.Verbose)

	if flags.ModelPath != "" {
		v.Set("artifacts.model_path", flags.ModelPath)
	}
	if flags.ScalerPath != "" {
		v.Set("artifacts.scaler_path", flags.ScalerPath)
	}
	if flags.ModelFormat != "" {
		v.Set("artifacts.model_format", flags.ModelFormat)
	}
	if flags.ONNXLibrary != "" {
		v.Set("artifacts.onnx.library_path", flags.ONNXLibrary)
	}
	if flags.AllowNegative {
		v.Set("input.allow_negative", true)
	}

	return cfg, nil
}
