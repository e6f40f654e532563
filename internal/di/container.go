package di

import (
	"go.uber.org/dig"

	"github.com/mikey/pd-screen/internal/config"
	"github.com/mikey/pd-screen/internal/core"
	"github.com/mikey/pd-screen/internal/factory"
	"github.com/mikey/pd-screen/internal/logging"
	"github.com/mikey/pd-screen/internal/ports"
)

// BuildContainer creates and configures a dependency injection container.
// An empty configFile searches the default config locations.
func BuildContainer(configFile string) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() (*config.Config, error) {
		return config.NewFromFile(configFile)
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideScreening(container); err != nil {
		return nil, err
	}

	// Register frontend
	if err := container.Provide(factory.NewFrontendFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.FrontendFactory) (ports.Frontend, error) {
		return f.CreateFrontend()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideScreening registers the artifacts and the screening service, which
// both containers share
func provideScreening(container *dig.Container) error {
	if err := container.Provide(factory.NewArtifactFactory); err != nil {
		return err
	}

	// Artifacts are loaded once, when first requested
	if err := container.Provide(func(f *factory.ArtifactFactory) *core.Artifacts {
		return f.CreateArtifacts()
	}); err != nil {
		return err
	}

	return container.Provide(core.NewScreeningService)
}
