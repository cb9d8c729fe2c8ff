package restfacade

import (
	"encoding/json"
	"net/http"

	"github.com/shandysiswandi/usere2e/internal/pkg/goerror"
)

// Response is the raw outcome of one request. It is returned for every status
// code, judging it is up to the caller.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       string

	raw []byte
}

// Is2xxSuccessful reports whether the status code is in [200, 299].
func (r *Response) Is2xxSuccessful() bool {
	return r != nil && r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// StatusClass returns the hundreds digit of the status code (2 for 201).
func (r *Response) StatusClass() int {
	if r == nil {
		return 0
	}
	return r.StatusCode / 100
}

// Bytes returns the raw body.
func (r *Response) Bytes() []byte {
	return r.raw
}

// Decode unmarshals the JSON body into out regardless of the status code.
func (r *Response) Decode(out any) error {
	if err := json.Unmarshal(r.raw, out); err != nil {
		return goerror.NewDecode(err, r.StatusCode)
	}
	return nil
}
