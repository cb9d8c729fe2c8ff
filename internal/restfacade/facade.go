// Package restfacade is a thin JSON-over-HTTP client used by end-to-end tests.
//
// It never turns a status code into an error: every answered request yields a
// *Response. Errors are reserved for invalid input, transport failures and a
// 2xx body that does not fit the expected shape.
package restfacade

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/usere2e/internal/pkg/goerror"
	"github.com/shandysiswandi/usere2e/internal/pkg/instrument"
	"github.com/shandysiswandi/usere2e/internal/pkg/uid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Facade sends JSON requests and returns raw responses.
//
// out is the expected body shape: nil and *string receive the raw body, any
// other pointer is JSON-decoded, but only for 2xx responses.
type Facade interface {
	Do(ctx context.Context, method, rawURL string, payload, out any) (*Response, error)
	Get(ctx context.Context, rawURL string, out any) (*Response, error)
	Post(ctx context.Context, rawURL string, payload, out any) (*Response, error)
	Put(ctx context.Context, rawURL string, payload, out any) (*Response, error)
	Delete(ctx context.Context, rawURL string, out any) (*Response, error)
}

// Config holds dependencies required to build an HTTPFacade.
type Config struct {
	// Timeout bounds a whole request. Zero leaves it to the transport.
	Timeout time.Duration
	// BearerToken is sent as "Authorization: Bearer <token>" when set.
	BearerToken string
	// MaskFields lists JSON fields hidden from request/response logs.
	MaskFields []string
	// UUID generates correlation IDs for requests whose context has none.
	UUID uid.StringID
	// Instrument provides the tracer and meter providers for the transport.
	Instrument instrument.Instrumentation
	// Transport is the underlying round tripper, http.DefaultTransport when nil.
	Transport http.RoundTripper
}

// HTTPFacade implements Facade on top of net/http.
type HTTPFacade struct {
	client   *http.Client
	token    string
	uuid     uid.StringID
	maskKeys map[string]struct{}
	requests metric.Int64Counter
}

// New builds an HTTPFacade. The transport is wrapped with otelhttp so every
// request produces a client span and duration metrics.
func New(cfg Config) *HTTPFacade {
	ins := cfg.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	gen := cfg.UUID
	if gen == nil {
		gen = uid.NewUUID()
	}

	requests, err := ins.Meter("restfacade").Int64Counter(
		"restfacade.requests",
		metric.WithDescription("Number of requests sent by the facade, by method and status class"),
	)
	if err != nil {
		slog.Error("failed to create restfacade request counter", "error", err)
	}

	return &HTTPFacade{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: otelhttp.NewTransport(base,
				otelhttp.WithTracerProvider(ins.TracerProvider()),
				otelhttp.WithMeterProvider(ins.MeterProvider()),
			),
		},
		token:    strings.TrimSpace(cfg.BearerToken),
		uuid:     gen,
		maskKeys: instrument.BuildMaskKeys(cfg.MaskFields),
		requests: requests,
	}
}

// Get sends a GET request.
func (f *HTTPFacade) Get(ctx context.Context, rawURL string, out any) (*Response, error) {
	return f.Do(ctx, http.MethodGet, rawURL, nil, out)
}

// Post sends payload as a JSON POST request.
func (f *HTTPFacade) Post(ctx context.Context, rawURL string, payload, out any) (*Response, error) {
	return f.Do(ctx, http.MethodPost, rawURL, payload, out)
}

// Put sends payload as a JSON PUT request.
func (f *HTTPFacade) Put(ctx context.Context, rawURL string, payload, out any) (*Response, error) {
	return f.Do(ctx, http.MethodPut, rawURL, payload, out)
}

// Delete sends a DELETE request.
func (f *HTTPFacade) Delete(ctx context.Context, rawURL string, out any) (*Response, error) {
	return f.Do(ctx, http.MethodDelete, rawURL, nil, out)
}

// Do sends one request. It is never retried.
func (f *HTTPFacade) Do(ctx context.Context, method, rawURL string, payload, out any) (*Response, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, goerror.NewInvalidInput(err, "encode request payload")
		}
		body = encoded
	}

	cID := instrument.GetCorrelationID(ctx)
	if cID == "" {
		cID = f.uuid.Generate()
		ctx = instrument.SetCorrelationID(ctx, cID)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, goerror.NewInvalidInput(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(instrument.HeaderCorrelationID, cID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	slog.InfoContext(ctx, "request sent",
		"method", method,
		"url", rawURL,
		"body", instrument.MaskJSON(body, f.maskKeys),
	)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		f.count(ctx, method, "transport_error")
		slog.ErrorContext(ctx, "request failed", "method", method, "url", rawURL, "error", err)
		return nil, goerror.NewTransport(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		f.count(ctx, method, "transport_error")
		slog.ErrorContext(ctx, "failed to read response body", "method", method, "url", rawURL, "error", err)
		return nil, goerror.NewTransport(err)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       string(raw),
		raw:        raw,
	}
	f.count(ctx, method, strconv.Itoa(result.StatusClass())+"xx")

	slog.InfoContext(ctx, "response received",
		"method", method,
		"url", rawURL,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
		"body", instrument.MaskJSON(raw, f.maskKeys),
	)

	return result, bindBody(result, out)
}

func (f *HTTPFacade) count(ctx context.Context, method, class string) {
	if f.requests == nil {
		return
	}
	f.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("status_class", class),
	))
}

func bindBody(resp *Response, out any) error {
	switch dst := out.(type) {
	case nil:
		return nil
	case *string:
		*dst = resp.Body
		return nil
	case *[]byte:
		*dst = resp.raw
		return nil
	}

	if !resp.Is2xxSuccessful() || len(resp.raw) == 0 {
		return nil
	}

	return resp.Decode(out)
}

func validateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return goerror.NewInvalidInput(nil, "url is required", "url", "is required")
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return goerror.NewInvalidInput(err, "invalid url", "url", "must be an absolute url")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return goerror.NewInvalidInput(nil, "invalid url", "url", "must be an absolute http(s) url")
	}

	return nil
}
