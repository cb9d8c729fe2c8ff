//go:build !e2e

package e2e

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/shandysiswandi/usere2e/internal/app"
	"github.com/shandysiswandi/usere2e/internal/pkg/config"
	"github.com/shandysiswandi/usere2e/internal/userstub"
)

func setup(ctx context.Context) (*app.App, func(), error) {
	stub, err := userstub.New(userstub.Config{})
	if err != nil {
		return nil, nil, err
	}
	srv := httptest.NewServer(stub)

	cfg := config.NewViperFromEnv()
	cfg.Set("user.service.url", srv.URL)
	cfg.Set("scenario.unique_user", false)

	a, err := app.New(ctx, cfg, app.WithLogOutput(io.Discard))
	if err != nil {
		srv.Close()
		return nil, nil, err
	}

	return a, func() {
		a.Close(context.Background())
		srv.Close()
	}, nil
}
