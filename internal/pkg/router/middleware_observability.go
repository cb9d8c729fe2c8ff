package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/usere2e/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Bodies above this size are logged as a size only.
const maxLoggedBodyBytes = 32 * 1024

// exchangeRecorder keeps the status, the JSON body and the handler error of
// one request so they can be logged after the handler returns.
type exchangeRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
	err    error
}

func (w *exchangeRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *exchangeRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}

func (w *exchangeRecorder) SetError(err error) {
	w.err = err
}

func (w *exchangeRecorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// resourceRef is the part of a JSON resource worth a log attribute.
type resourceRef struct {
	ID    any    `json:"id"`
	Email string `json:"email"`
}

func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// jsonBody reads the request body for logging and puts it back for the handler.
func jsonBody(r *http.Request, maskKeys map[string]struct{}) any {
	if r.Body == nil {
		return nil
	}

	raw, err := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return nil
	}

	return maskedJSON(raw, maskKeys)
}

func maskedJSON(raw []byte, maskKeys map[string]struct{}) any {
	if len(raw) > maxLoggedBodyBytes {
		return map[string]any{"bytes": len(raw), "truncated": true}
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return map[string]any{"bytes": len(raw), "json": false}
	}
	return instrument.MaskValue(v, maskKeys)
}

func middlewareObservability(maskFields []string, ins instrument.Instrumentation) Middleware {
	maskKeys := instrument.BuildMaskKeys(maskFields)
	tracer := ins.Tracer("http.server")
	meter := ins.Meter("http.server")

	requestCounter, err := meter.Int64Counter("http.server.requests", metric.WithDescription("Number of HTTP requests received"))
	if err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}

	durationHistogram, err := meter.Float64Histogram("http.server.duration", metric.WithDescription("HTTP request duration in milliseconds"))
	if err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			start := time.Now()

			ctx, span := tracer.Start(r.Context(), r.Method+" "+route, trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
			))
			defer span.End()

			slog.InfoContext(ctx, "request received",
				"method", r.Method,
				"path", route,
				"body", jsonBody(r, maskKeys),
			)

			rec := &exchangeRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.statusCode()
			class := strconv.Itoa(status/100) + "xx"
			elapsed := time.Since(start)

			attrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
				attribute.String("http.status_class", class),
			}
			span.SetAttributes(append(attrs, semconv.HTTPResponseStatusCodeKey.Int(status))...)

			switch {
			case rec.err != nil && status >= http.StatusInternalServerError:
				span.RecordError(rec.err)
				span.SetStatus(codes.Error, rec.err.Error())
			case status >= http.StatusInternalServerError:
				span.SetStatus(codes.Error, http.StatusText(status))
			default:
				span.SetStatus(codes.Ok, "")
			}

			if requestCounter != nil {
				requestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
			}
			if durationHistogram != nil {
				durationHistogram.Record(ctx, float64(elapsed.Milliseconds()), metric.WithAttributes(attrs...))
			}

			logAttrs := []any{
				"method", r.Method,
				"path", route,
				"status", status,
				"status_class", class,
				"latency_ms", elapsed.Milliseconds(),
			}

			if status < http.StatusMultipleChoices {
				var ref resourceRef
				if json.Unmarshal(rec.body.Bytes(), &ref) == nil && ref.ID != nil {
					logAttrs = append(logAttrs, "resource_id", ref.ID, "resource_email", ref.Email)
				}
			} else {
				logAttrs = append(logAttrs, "body", maskedJSON(rec.body.Bytes(), maskKeys))
			}
			if rec.err != nil {
				logAttrs = append(logAttrs, "error", rec.err.Error())
			}

			slog.InfoContext(ctx, "response sent", logAttrs...)
		})
	}
}
