package shared

import "context"

type contextKey string

// Context keys injected by middleware and read by services
const (
	ClientIPKey  contextKey = "client_ip"
	RequestIDKey contextKey = "request_id"
)

// ClientIPFromContext trả về client IP đã được middleware inject.
// Returns empty string if not found.
func ClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ClientIPKey).(string); ok {
		return ip
	}
	return ""
}

// WithClientIP injects the client IP into the context
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ClientIPKey, ip)
}
