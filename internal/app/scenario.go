package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/usere2e/internal/expect"
	"github.com/shandysiswandi/usere2e/internal/pkg/goerror"
	"github.com/shandysiswandi/usere2e/internal/pkg/instrument"
	"github.com/shandysiswandi/usere2e/internal/restfacade"
	"github.com/shandysiswandi/usere2e/internal/userservice"
)

// WaitReady polls the service base URL until it answers with a status below
// 500. It makes user.service.ready_attempts attempts spaced by
// user.service.ready_interval_millis. Scenario requests are never retried.
func (a *App) WaitReady(ctx context.Context) error {
	attempts := a.settings.ReadyAttempts
	if attempts < 1 {
		attempts = 1
	}

	b := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(max(a.settings.ReadyInterval, 1)))

	try := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		try++

		resp, err := a.users.Ping(ctx)
		if err != nil {
			slog.WarnContext(ctx, "user service not reachable", "attempt", try, "error", err)
			return retry.RetryableError(err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			slog.WarnContext(ctx, "user service not healthy", "attempt", try, "status", resp.StatusCode)
			return retry.RetryableError(goerror.NewUnexpectedStatus(resp.StatusCode))
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("user service at %s is not ready after %d attempt(s): %w", a.settings.BaseURL, try, err)
	}

	slog.InfoContext(ctx, "user service is ready", "base_url", a.settings.BaseURL, "attempts", try)

	return nil
}

// SaveUserPayload returns the payload the save-user scenario posts.
func (a *App) SaveUserPayload() userservice.UserCreationRequest {
	if a.settings.UniqueUser {
		return userservice.UniqueUser(a.settings.UserPrefix)
	}

	return userservice.DefaultUser()
}

// RunSaveUser posts the reference user once and asserts a 2xx status. The
// response is returned whenever one was received, even if the assertion
// failed. Transport failures return a nil response.
func (a *App) RunSaveUser(ctx context.Context) (*restfacade.Response, error) {
	ctx = instrument.SetCorrelationID(ctx, a.uuid.Generate())

	resp, err := a.users.CreateUser(ctx, a.SaveUserPayload())
	if err != nil {
		slog.ErrorContext(ctx, "save user request failed", "url", a.users.UsersURL(), "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "save user response",
		"status", resp.StatusCode,
		"body", instrument.MaskJSON(resp.Bytes(), instrument.BuildMaskKeys(a.settings.MaskFields)),
	)

	if err := expect.Successful(resp); err != nil {
		slog.ErrorContext(ctx, "save user assertion failed", "error", err)
		return resp, err
	}

	return resp, nil
}
