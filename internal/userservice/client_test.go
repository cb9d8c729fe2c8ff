package userservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shandysiswandi/usere2e/internal/pkg/instrument"
	"github.com/shandysiswandi/usere2e/internal/restfacade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateUser(t *testing.T) {
	var (
		gotPath string
		gotBody UserCreationRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"1","email":"juanmadrid@gmail.com"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL+"/", restfacade.New(restfacade.Config{Instrument: instrument.NewNoop()}))
	assert.Equal(t, srv.URL+UsersPath, c.UsersURL())

	resp, err := c.CreateUser(context.Background(), DefaultUser())
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, UsersPath, gotPath)
	assert.Equal(t, DefaultUser(), gotBody)

	var created CreatedUser
	require.NoError(t, resp.Decode(&created))
	assert.Equal(t, "1", created.ID)
}

func TestClient_GetUserAndPing(t *testing.T) {
	paths := []string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"9","email":"x@y.z"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(" "+srv.URL+" ", restfacade.New(restfacade.Config{}))

	var user CreatedUser
	resp, err := c.GetUser(context.Background(), "9", &user)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "9", user.ID)

	_, err = c.Ping(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{UsersPath + "/9", "/"}, paths)
}
