//go:build e2e

package e2e

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/shandysiswandi/usere2e/internal/app"
	"github.com/shandysiswandi/usere2e/internal/pkg/config"
)

// setup targets a real service. With USER_SERVICE_IMAGE set a container is
// started first, otherwise the loaded config (USER_SERVICE_URL) decides.
func setup(ctx context.Context) (*app.App, func(), error) {
	cfg, err := app.Load()
	if err != nil {
		return nil, nil, err
	}

	var container *Container
	if image := strings.TrimSpace(os.Getenv("USER_SERVICE_IMAGE")); image != "" {
		container, err = StartUserService(ctx, ContainerConfig{
			Image: image,
			Port:  os.Getenv("USER_SERVICE_PORT"),
		})
		if err != nil {
			return nil, nil, err
		}

		if v, ok := cfg.(*config.Viper); ok {
			v.Set("user.service.url", container.BaseURL)
		}
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		_ = container.Terminate()
		return nil, nil, err
	}

	return a, func() {
		a.Close(context.Background())
		if err := container.Terminate(); err != nil {
			slog.Error("failed to terminate user service container", "error", err)
		}
	}, nil
}
