package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shandysiswandi/usere2e/internal/pkg/config"
	"github.com/shandysiswandi/usere2e/internal/pkg/goerror"
	"github.com/shandysiswandi/usere2e/internal/userstub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func newConfig(baseURL string, kv ...any) *config.Viper {
	cfg := config.NewViperFromEnv()
	cfg.Set("user.service.url", baseURL)
	cfg.Set("user.service.ready_interval_millis", 1)
	for i := 0; i+1 < len(kv); i += 2 {
		cfg.Set(kv[i].(string), kv[i+1])
	}

	return cfg
}

func newApp(t *testing.T, cfg config.Config) (*App, *bytes.Buffer) {
	t.Helper()

	logs := &bytes.Buffer{}
	a, err := New(context.Background(), cfg, WithLogOutput(logs))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })

	return a, logs
}

func newStub(t *testing.T) (*userstub.Server, *httptest.Server) {
	t.Helper()

	stub, err := userstub.New(userstub.Config{})
	require.NoError(t, err)

	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	return stub, srv
}

func TestNew_DefaultSettings(t *testing.T) {
	cfg := config.NewViperFromEnv()
	cfg.Set("user.service.url", "http://localhost:8080")

	a, _ := newApp(t, cfg)

	assert.Zero(t, a.settings.Timeout)
	assert.Equal(t, 1, a.settings.ReadyAttempts)
	assert.False(t, a.settings.UniqueUser)

	cfg = newConfig("http://localhost:8080", "rest.timeout_seconds", 5)
	a, _ = newApp(t, cfg)
	assert.Equal(t, 5*time.Second, a.settings.Timeout)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "NilConfig", cfg: nil},
		{name: "EmptyURL", cfg: newConfig("")},
		{name: "NotAURL", cfg: newConfig("user-service")},
		{name: "ZeroAttempts", cfg: newConfig("http://localhost:8080", "user.service.ready_attempts", 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(context.Background(), tt.cfg, WithLogOutput(&bytes.Buffer{}))

			assert.Nil(t, a)
			var gerr *goerror.Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, goerror.TypeValidation, gerr.Type())
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user:\n  service:\n    url: http://from-file:9000\nrest:\n  timeout_seconds: 3\n"), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("USER_SERVICE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	assert.Equal(t, "http://from-file:9000", cfg.GetString("user.service.url"))
	assert.Equal(t, 1, cfg.GetInt("user.service.ready_attempts"))

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("USER_SERVICE_URL", "http://from-env:7000")

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:7000", cfg.GetString("user.service.url"))
}

func TestRunSaveUser(t *testing.T) {
	stub, srv := newStub(t)
	a, logs := newApp(t, newConfig(srv.URL+"/"))

	assert.Equal(t, srv.URL+"/", a.BaseURL())

	// Act
	resp, err := a.RunSaveUser(context.Background())

	// Assert
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, resp.Body, `"email":"juanmadrid@gmail.com"`)
	assert.EqualValues(t, 1, stub.Created())
	assert.Contains(t, logs.String(), "save user response")
	assert.NotContains(t, logs.String(), "12345678")

	// Rerunning the default payload hits the duplicate rule.
	resp, err = a.RunSaveUser(context.Background())
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "Unexpected status code: 409", err.Error())
	assert.Contains(t, logs.String(), "save user assertion failed")
}

func TestRunSaveUser_UniqueUser(t *testing.T) {
	stub, srv := newStub(t)
	a, _ := newApp(t, newConfig(srv.URL, "scenario.unique_user", true, "scenario.user_prefix", "e2e"))

	for range 3 {
		resp, err := a.RunSaveUser(context.Background())
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	assert.EqualValues(t, 3, stub.Created())
}

func TestRunSaveUser_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	a, _ := newApp(t, newConfig(srv.URL))

	resp, err := a.RunSaveUser(context.Background())

	assert.Nil(t, resp)
	assert.True(t, goerror.IsTransport(err))
}

func TestWaitReady(t *testing.T) {
	unhealthyFor := func(n int64) *httptest.Server {
		calls := atomic.NewInt64(0)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Inc() <= n {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)
		return srv
	}

	t.Run("ReadyOnFirstAttempt", func(t *testing.T) {
		_, srv := newStub(t)
		a, _ := newApp(t, newConfig(srv.URL))

		assert.NoError(t, a.WaitReady(context.Background()))
	})

	t.Run("ReadyWithinAttempts", func(t *testing.T) {
		srv := unhealthyFor(2)
		a, _ := newApp(t, newConfig(srv.URL, "user.service.ready_attempts", 3))

		assert.NoError(t, a.WaitReady(context.Background()))
	})

	t.Run("NotReady", func(t *testing.T) {
		srv := unhealthyFor(2)
		a, _ := newApp(t, newConfig(srv.URL, "user.service.ready_attempts", 2))

		err := a.WaitReady(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not ready after 2 attempt(s)")
		assert.Contains(t, err.Error(), "Unexpected status code: 503")
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		a, _ := newApp(t, newConfig(srv.URL))

		err := a.WaitReady(context.Background())
		require.Error(t, err)
		assert.True(t, goerror.IsTransport(err))
	})
}
