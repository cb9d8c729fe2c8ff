// Package app wires the harness dependencies: configuration, instrumentation,
// the REST facade and the user-service client. Tests and the smoke runner
// receive an *App explicitly instead of resolving components from a container.
package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/shandysiswandi/usere2e/internal/pkg/config"
	"github.com/shandysiswandi/usere2e/internal/pkg/instrument"
	"github.com/shandysiswandi/usere2e/internal/pkg/uid"
	"github.com/shandysiswandi/usere2e/internal/pkg/validator"
	"github.com/shandysiswandi/usere2e/internal/restfacade"
	"github.com/shandysiswandi/usere2e/internal/userservice"
)

// App holds the wired harness and manages its lifecycle.
type App struct {
	// configuration
	config   config.Config
	settings settings
	ins      instrument.Instrumentation

	// libraries
	validator validator.Validator
	uuid      uid.StringID

	// clients
	facade restfacade.Facade
	users  *userservice.Client

	// options
	logOutput io.Writer
	transport http.RoundTripper

	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// Option customizes New.
type Option func(*App)

// WithLogOutput sends JSON logs to w instead of stdout.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) { a.logOutput = w }
}

// WithTransport replaces the HTTP transport used by the facade.
func WithTransport(rt http.RoundTripper) Option {
	return func(a *App) { a.transport = rt }
}

// Load resolves configuration: the file named by CONFIG_PATH when set,
// otherwise defaults plus environment variables.
func Load() (config.Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		cfg, err := config.NewViper(path)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return config.NewViperFromEnv(), nil
}

// New wires the harness from cfg. The caller owns the returned App and must
// call Close.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	a := &App{config: cfg}
	for _, opt := range opts {
		opt(a)
	}

	steps := []func(context.Context) error{
		a.initLibraries,
		a.initConfig,
		a.initInstrument,
		a.initClients,
		a.initClosers,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			a.Close(ctx)
			return nil, err
		}
	}

	return a, nil
}

// Users returns the user-service client.
func (a *App) Users() *userservice.Client {
	return a.users
}

// Facade returns the REST facade shared by every client.
func (a *App) Facade() restfacade.Facade {
	return a.facade
}

// BaseURL returns the validated user-service base URL.
func (a *App) BaseURL() string {
	return a.settings.BaseURL
}

// Close flushes instrumentation and releases resources.
func (a *App) Close(ctx context.Context) {
	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}
	a.closers = nil
}
