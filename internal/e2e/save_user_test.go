package e2e

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shandysiswandi/usere2e/internal/app"
	"github.com/shandysiswandi/usere2e/internal/expect"
	"github.com/shandysiswandi/usere2e/internal/pkg/config"
	"github.com/shandysiswandi/usere2e/internal/pkg/goerror"
	"github.com/shandysiswandi/usere2e/internal/userservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveUser(t *testing.T) {
	// Arrange
	ctx := context.Background()

	// Act
	resp, err := suite.RunSaveUser(ctx)

	// Assert
	require.NoError(t, err)
	expect.RequireSuccessful(t, resp)
	assert.NotEmpty(t, resp.Body)
}

func TestSaveUser_MissingCredential(t *testing.T) {
	// Arrange
	payload := userservice.NewUser().
		Name("Juan Felipe", "Madrid").
		ImageURL("http://placeholder:200").
		Email("no-credential@example.com").
		Phone("3023028538").
		Address("Cr85c#15-94", "760000", "Cali").
		Build()

	// Act
	resp, err := suite.Users().CreateUser(context.Background(), payload)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.EqualError(t, expect.Successful(resp), "Unexpected status code: 400")
}

func TestSaveUser_MissingEmail(t *testing.T) {
	// Arrange
	unique := userservice.UniqueUser("no-email")
	payload := userservice.NewUser().
		Name(unique.FirstName, unique.LastName).
		Phone(unique.Phone).
		Credential(*unique.Credential).
		Build()

	// Act
	resp, err := suite.Users().CreateUser(context.Background(), payload)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NoError(t, expect.Class(resp, expect.Class4xx))
	assert.Error(t, expect.Successful(resp))
}

func TestSaveUser_Duplicate(t *testing.T) {
	// Arrange
	payload := userservice.UniqueUser("dup")

	first, err := suite.Users().CreateUser(context.Background(), payload)
	require.NoError(t, err)
	expect.RequireSuccessful(t, first)

	// Act
	second, err := suite.Users().CreateUser(context.Background(), payload)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, expect.Status(second, http.StatusConflict))
	assert.EqualError(t, expect.Successful(second), "Unexpected status code: 409")
}

func TestSaveUser_ThenGet(t *testing.T) {
	// Arrange
	payload := userservice.UniqueUser("get")

	resp, err := suite.Users().CreateUser(context.Background(), payload)
	require.NoError(t, err)
	expect.RequireSuccessful(t, resp)

	var created userservice.CreatedUser
	require.NoError(t, resp.Decode(&created))
	require.NotEmpty(t, created.ID)

	// Act
	var fetched userservice.CreatedUser
	resp, err = suite.Users().GetUser(context.Background(), created.ID, &fetched)

	// Assert
	require.NoError(t, err)
	expect.RequireSuccessful(t, resp)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, payload.Email, fetched.Email)
}

func TestSaveUser_Unreachable(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := config.NewViperFromEnv()
	cfg.Set("user.service.url", srv.URL)

	a, err := app.New(context.Background(), cfg, app.WithLogOutput(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })

	// Act
	resp, err := a.RunSaveUser(context.Background())

	// Assert
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.True(t, goerror.IsTransport(err))
}
