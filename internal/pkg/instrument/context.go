package instrument

import "context"

// HeaderCorrelationID carries the correlation ID between the harness and the
// services it calls.
const HeaderCorrelationID = "X-Correlation-ID"

type correlationIDKey struct{}

// SetCorrelationID returns a copy of ctx carrying the correlation ID.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cID)
}

// GetCorrelationID returns the correlation ID stored in ctx, or "".
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	cID, _ := ctx.Value(correlationIDKey{}).(string) //nolint:errcheck // zero value is fine
	return cID
}
