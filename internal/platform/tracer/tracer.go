// Package tracer provides a small tracing abstraction so the resolver and the
// Onsight client can emit spans without importing OpenTelemetry directly.
//
// Implementations:
//   - NoopTracer: tests and binaries without a tracer provider
//   - OTelTracer: OpenTelemetry adapter
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording err when non-nil.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context carries the span for child operations.
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashEmail returns a short SHA-256 prefix of an email address so traces can
// be correlated without carrying the address itself.
func HashEmail(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return hex.EncodeToString(hash[:8])
}

// Span names.
const (
	SpanResolve      = "resolver.resolve"
	SpanResolveStep  = "resolver.step"
	SpanTokenRequest = "onsight.token"
	SpanMeeting      = "onsight.meeting.create"
	SpanChat         = "onsight.ida.chat"
	SpanPlugin       = "plugin.execute"
)

// Attribute keys.
const (
	AttrEntityType  = "crm.entity_type"
	AttrStep        = "resolver.step"
	AttrChainLength = "resolver.chain_length"
	AttrFallback    = "resolver.record_fallback"
	AttrStatusCode  = "http.status_code"
	AttrPlugin      = "plugin.name"
	AttrSoftFail    = "onsight.soft_fail"
	AttrEmailHash   = "participant.email_hash"
)
