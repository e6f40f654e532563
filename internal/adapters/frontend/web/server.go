// Package web serves the screening form as server-rendered HTML pages.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/mikey/pd-screen/internal/config"
	"github.com/mikey/pd-screen/internal/core"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// maxFormBytes bounds a form submission; seven numbers fit easily
const maxFormBytes = 16 << 10

// Server is the web frontend for the screening form
type Server struct {
	service       *core.ScreeningService
	logger        *zap.Logger
	cfg           config.ServerConfig
	allowNegative bool
	pages         map[string]*template.Template
	server        *http.Server
}

// NewServer creates a new web form server
func NewServer(service *core.ScreeningService, logger *zap.Logger, cfg config.ServerConfig, input config.InputConfig) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	s := &Server{
		service:       service,
		logger:        logger,
		cfg:           cfg,
		allowNegative: input.AllowNegative,
		pages:         pages,
	}
	s.server = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	chain := Chain(
		Recovery(s.logger),
		Logger(s.logger),
		SecurityHeaders,
		RequestSize(maxFormBytes),
	)
	return chain(mux)
}

// Screen runs one screening and returns what the Test page shows
func (s *Server) Screen(ctx context.Context, vector core.FeatureVector) core.Presentation {
	return core.Present(s.service.Infer(ctx, vector))
}

// Start serves the form until Stop is called
func (s *Server) Start() error {
	s.logger.Info("Starting web form",
		zap.String("address", s.cfg.ListenAddress),
		zap.Bool("inference_enabled", s.service.Ready()))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down within the configured timeout
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down web form")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// parsePages builds one template set per page, each sharing the layout
func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(navPages))
	for _, p := range navPages {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+p.name+".html")
		if err != nil {
			return nil, err
		}
		pages[p.name] = t
	}
	return pages, nil
}
