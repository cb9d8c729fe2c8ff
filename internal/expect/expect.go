// Package expect holds the status assertions run against REST facade responses.
//
// Only the status code is judged; the body is left to the caller.
package expect

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/shandysiswandi/usere2e/internal/pkg/goerror"
	"github.com/shandysiswandi/usere2e/internal/restfacade"
	"github.com/stretchr/testify/require"
)

// ErrNoResponse is returned when there is no response to judge, typically
// because the request failed at the transport level.
var ErrNoResponse = goerror.NewInternal(nil, "no response to assert")

// Status classes accepted by Class.
const (
	Class2xx = 2
	Class3xx = 3
	Class4xx = 4
	Class5xx = 5
)

// Successful returns nil when the status code is in [200, 299]. Otherwise the
// error message is exactly "Unexpected status code: <code>".
func Successful(resp *restfacade.Response) error {
	if resp == nil {
		return ErrNoResponse
	}
	if !resp.Is2xxSuccessful() {
		return goerror.NewUnexpectedStatus(resp.StatusCode)
	}

	return nil
}

// RequireSuccessful stops the test when resp is not a 2xx response.
func RequireSuccessful(t require.TestingT, resp *restfacade.Response) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}

	if err := Successful(resp); err != nil {
		require.FailNow(t, err.Error())
	}
}

// Status returns nil when the status code is one of codes.
func Status(resp *restfacade.Response, codes ...int) error {
	if resp == nil {
		return ErrNoResponse
	}
	if !slices.Contains(codes, resp.StatusCode) {
		return goerror.NewUnexpectedStatus(resp.StatusCode)
	}

	return nil
}

// Class returns nil when the status code belongs to the given hundreds class,
// for example Class4xx.
func Class(resp *restfacade.Response, class int) error {
	if resp == nil {
		return ErrNoResponse
	}
	if class < 1 || class > 5 {
		return goerror.NewInvalidInput(nil, fmt.Sprintf("unknown status class %d", class))
	}
	if resp.StatusClass() != class {
		return goerror.NewUnexpectedStatus(resp.StatusCode)
	}

	return nil
}

// Created is shorthand for Status(resp, http.StatusCreated).
func Created(resp *restfacade.Response) error {
	return Status(resp, http.StatusCreated)
}
