package factory

import (
	"fmt"
	"io"
	"os"

	"github.com/mikey/pd-screen/internal/adapters/frontend/cli"
	"github.com/mikey/pd-screen/internal/adapters/frontend/web"
	"github.com/mikey/pd-screen/internal/config"
	"github.com/mikey/pd-screen/internal/core"
	"github.com/mikey/pd-screen/internal/ports"
	"go.uber.org/zap"
)

// FrontendFactory creates frontends based on configuration
type FrontendFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.ScreeningService
	out     io.Writer
}

// NewFrontendFactory creates a new frontend factory
func NewFrontendFactory(cfg *config.Config, logger *zap.Logger, service *core.ScreeningService) *FrontendFactory {
	return &FrontendFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
		out:     os.Stdout,
	}
}

// WithOutput directs the CLI frontend's output to w
func (f *FrontendFactory) WithOutput(w io.Writer) *FrontendFactory {
	if w != nil {
		f.out = w
	}
	return f
}

// CreateFrontend creates a frontend based on the configuration
func (f *FrontendFactory) CreateFrontend() (ports.Frontend, error) {
	frontendType := f.cfg.GetString("frontend.type")

	switch frontendType {
	case "web":
		serverCfg, err := f.cfg.GetServer()
		if err != nil {
			return nil, fmt.Errorf("invalid server configuration: %w", err)
		}
		server, err := web.NewServer(f.service, f.logger, serverCfg, f.cfg.GetInput())
		if err != nil {
			return nil, err
		}
		return server, nil
	case "cli":
		return cli.NewFrontend(f.service, f.logger, f.cfg.GetBool("cli.verbose"), f.out), nil
	default:
		return nil, fmt.Errorf("unsupported frontend type: %s", frontendType)
	}
}
