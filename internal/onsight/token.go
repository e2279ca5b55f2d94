// Package onsight talks to the Onsight NOW service: client-credentials token
// exchange, meeting scheduling and the Ida assistant chat.
package onsight

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"onsightnow/internal/platform/logger"
	"onsightnow/internal/platform/metrics"
	"onsightnow/internal/platform/tracer"
	dErrors "onsightnow/pkg/domain-errors"
)

// Scopes requested for every token.
var Scopes = []string{"meeting_api", "collection_api"}

// TokenProvider exchanges client credentials for a bearer token. Every call
// hits the token endpoint; nothing is cached between calls.
type TokenProvider struct {
	httpClient *http.Client
	logger     *slog.Logger
	tracer     tracer.Tracer
	metrics    *metrics.Metrics
}

// TokenProviderOption configures the TokenProvider.
type TokenProviderOption func(*TokenProvider)

// WithTokenHTTPClient sets the client used to reach the token endpoint.
func WithTokenHTTPClient(c *http.Client) TokenProviderOption {
	return func(p *TokenProvider) { p.httpClient = c }
}

func WithTokenLogger(l *slog.Logger) TokenProviderOption {
	return func(p *TokenProvider) { p.logger = l }
}

func WithTokenTracer(t tracer.Tracer) TokenProviderOption {
	return func(p *TokenProvider) { p.tracer = t }
}

func WithTokenMetrics(m *metrics.Metrics) TokenProviderOption {
	return func(p *TokenProvider) { p.metrics = m }
}

// NewTokenProvider creates a TokenProvider.
func NewTokenProvider(opts ...TokenProviderOption) *TokenProvider {
	p := &TokenProvider{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.Discard(),
		tracer:     tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetToken posts grant_type=client_credentials with the credentials in the
// form body and returns the access_token. A non-success status is auth_failed.
func (p *TokenProvider) GetToken(ctx context.Context, clientID, clientSecret, endpoint string) (token string, err error) {
	ctx, span := p.tracer.Start(ctx, tracer.SpanTokenRequest)
	start := time.Now()
	defer func() {
		p.metrics.ObserveOutbound("token", time.Since(start))
		if err != nil {
			p.metrics.IncrementTokenRequest(metrics.OutcomeFailure)
		} else {
			p.metrics.IncrementTokenRequest(metrics.OutcomeSuccess)
		}
		span.End(err)
	}()

	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     endpoint,
		Scopes:       Scopes,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tok, err := cfg.Token(context.WithValue(ctx, oauth2.HTTPClient, p.httpClient))
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			status := 0
			if re.Response != nil {
				status = re.Response.StatusCode
			}
			span.SetAttributes(tracer.Int(tracer.AttrStatusCode, status))
			p.logger.WarnContext(ctx, "token endpoint rejected credentials",
				"status", status,
				"error_code", re.ErrorCode,
			)
			return "", dErrors.Wrap(err, dErrors.CodeAuth, "token request failed")
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", dErrors.Wrap(ctxErr, dErrors.CodeTimeout, "token request cancelled")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "token request failed")
	}

	if exp, ok := expiry(tok.AccessToken); ok {
		span.AddEvent("token.issued", tracer.Duration("expires_in_ms", time.Until(exp)))
	}
	return tok.AccessToken, nil
}

// expiry reads the exp claim without verifying the token. Opaque tokens have none.
func expiry(accessToken string) (time.Time, bool) {
	tok, _, err := jwt.NewParser().ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := tok.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
