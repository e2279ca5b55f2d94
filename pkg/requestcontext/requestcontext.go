// Package requestcontext carries per-request values set by the HTTP
// middleware: request id, client address, user agent and a readable client name.
package requestcontext

import "context"

type (
	requestIDKey  struct{}
	clientIPKey   struct{}
	userAgentKey  struct{}
	clientNameKey struct{}
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id, or "" outside a request.
func RequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey{})
}

// WithClientMetadata records the client address and User-Agent header.
func WithClientMetadata(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, ip)
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

func ClientIP(ctx context.Context) string {
	return stringValue(ctx, clientIPKey{})
}

func UserAgent(ctx context.Context) string {
	return stringValue(ctx, userAgentKey{})
}

// WithClientName records a display name such as "Edge on Windows 10".
func WithClientName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, clientNameKey{}, name)
}

func ClientName(ctx context.Context) string {
	return stringValue(ctx, clientNameKey{})
}

func stringValue(ctx context.Context, key any) string {
	v, _ := ctx.Value(key).(string)
	return v
}
