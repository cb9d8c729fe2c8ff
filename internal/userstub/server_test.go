package userstub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shandysiswandi/usere2e/internal/pkg/clock"
	"github.com/shandysiswandi/usere2e/internal/userservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	s, err := New(Config{
		Clock: clock.Fixed(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)),
	})
	require.NoError(t, err)

	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}

	return rec, out
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rec, body := doJSON(t, s, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestServer_CreateUser(t *testing.T) {
	tests := []struct {
		name       string
		payload    userservice.UserCreationRequest
		wantStatus int
		wantField  string
	}{
		{
			name:       "Success",
			payload:    userservice.DefaultUser(),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MissingCredential",
			payload:    userservice.NewUser().Name("Juan Felipe", "Madrid").Email("a@b.co").Phone("3023028538").Build(),
			wantStatus: http.StatusBadRequest,
			wantField:  "credential",
		},
		{
			name: "MissingEmail",
			payload: userservice.NewUser().
				Name("Juan Felipe", "Madrid").
				Phone("3023028538").
				Credential(userservice.NewCredential("juanmadrid", "12345678")).
				Build(),
			wantStatus: http.StatusBadRequest,
			wantField:  "email",
		},
		{
			name: "ShortPassword",
			payload: userservice.NewUser().
				Name("Juan Felipe", "Madrid").
				Email("a@b.co").
				Phone("3023028538").
				Credential(userservice.NewCredential("juanmadrid", "123")).
				Build(),
			wantStatus: http.StatusBadRequest,
			wantField:  "credential.password",
		},
		{
			name: "InvalidAddress",
			payload: userservice.NewUser().
				Name("Juan Felipe", "Madrid").
				Email("a@b.co").
				Phone("3023028538").
				Address("", "760000", "Cali").
				Credential(userservice.NewCredential("juanmadrid", "12345678")).
				Build(),
			wantStatus: http.StatusBadRequest,
			wantField:  "addressDtos[0].fullAddress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			s := newTestServer(t)

			// Act
			rec, body := doJSON(t, s, http.MethodPost, userservice.UsersPath, tt.payload)

			// Assert
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantField != "" {
				assert.Equal(t, "Validation error", body["message"])
				fields, ok := body["error"].(map[string]any)
				require.True(t, ok, "error fields missing: %v", body)
				assert.Contains(t, fields, tt.wantField)
				assert.Zero(t, s.Created())
				return
			}

			assert.NotEmpty(t, body["id"])
			assert.Equal(t, tt.payload.Email, body["email"])
			assert.Equal(t, "2026-01-02T03:04:05Z", body["createdAt"])
			assert.NotContains(t, rec.Body.String(), "12345678")
			assert.EqualValues(t, 1, s.Created())
		})
	}
}

func TestServer_CreateUser_RejectsMalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, userservice.UsersPath, bytes.NewBufferString(`{"unknown":1}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CreateUser_Duplicate(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doJSON(t, s, http.MethodPost, userservice.UsersPath, userservice.DefaultUser())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := doJSON(t, s, http.MethodPost, userservice.UsersPath, userservice.DefaultUser())
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "user account with that email already exists", body["message"])

	sameLogin := userservice.NewUser().
		Name("Other", "Person").
		Email("other@example.com").
		Phone("3023028538").
		Credential(userservice.NewCredential("juanmadrid", "12345678")).
		Build()
	rec, _ = doJSON(t, s, http.MethodPost, userservice.UsersPath, sameLogin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	assert.EqualValues(t, 1, s.Created())
	assert.EqualValues(t, 3, s.Hits())
}

func TestServer_GetAndDeleteUser(t *testing.T) {
	s := newTestServer(t)

	rec, created := doJSON(t, s, http.MethodPost, userservice.UsersPath, userservice.DefaultUser())
	require.Equal(t, http.StatusCreated, rec.Code)
	id, ok := created["id"].(string)
	require.True(t, ok)

	assert.True(t, s.VerifyPassword(id, "12345678"))
	assert.False(t, s.VerifyPassword(id, "wrong-password"))

	rec, got := doJSON(t, s, http.MethodGet, userservice.UsersPath+"/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "juanmadrid", got["username"])
	assert.Equal(t, userservice.RoleUser, got["roleBasedAuthority"])

	rec, _ = doJSON(t, s, http.MethodGet, userservice.UsersPath+"/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, s, http.MethodDelete, userservice.UsersPath+"/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, body := doJSON(t, s, http.MethodGet, userservice.UsersPath+"/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found", body["message"])

	rec, _ = doJSON(t, s, http.MethodPost, userservice.UsersPath, userservice.DefaultUser())
	assert.Equal(t, http.StatusCreated, rec.Code)
}
