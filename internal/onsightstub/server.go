// Package onsightstub is a local stand-in for the OnsightNow token, meetings
// and Ida chat endpoints. It issues real signed tokens and checks them on
// every call, so the plugins can be exercised end to end without a tenant.
package onsightstub

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"onsightnow/internal/platform/logger"
	"onsightnow/pkg/secrets"
)

// Scopes the token endpoint will grant.
const (
	ScopeMeetings   = "meeting_api"
	ScopeCollection = "collection_api"
)

var grantable = []string{ScopeMeetings, ScopeCollection}

// Server serves the stub endpoints.
type Server struct {
	clientID   string
	secretHash string
	tokens     *TokenIssuer
	joinBase   string
	tenantID   uuid.UUID
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.RWMutex
	meetings map[uuid.UUID]meetingRecord
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock fixes the time used for token issue and validation.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New hashes the configured secret at bcryptCost (zero for the default cost)
// and returns a ready Server.
func New(cfg Config, bcryptCost int, opts ...Option) (*Server, error) {
	hash, err := secrets.Hash(cfg.ClientSecret, bcryptCost)
	if err != nil {
		return nil, err
	}
	s := &Server{
		clientID:   cfg.ClientID,
		secretHash: hash,
		joinBase:   strings.TrimRight(cfg.JoinBaseURL, "/"),
		logger:     logger.Discard(),
		now:        time.Now,
		meetings:   make(map[uuid.UUID]meetingRecord),
	}
	if cfg.TenantID != "" {
		s.tenantID = uuid.MustParse(cfg.TenantID)
	} else {
		s.tenantID = uuid.New()
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tokens = NewTokenIssuer(cfg.SigningKey, cfg.Issuer, cfg.TokenTTL, s.now)
	return s, nil
}

// Routes mounts the stub endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/connect/token", s.handleToken)
	r.Group(func(r chi.Router) {
		r.Use(s.requireScope(ScopeMeetings))
		r.Post("/meetings", s.handleCreateMeeting)
		r.Get("/meetings/{id}", s.handleGetMeeting)
	})
	r.Group(func(r chi.Router) {
		r.Use(s.requireScope(ScopeCollection))
		r.Post("/ida/chat", s.handleChat)
	})
	return r
}

type claimsKey struct{}

func claimsFrom(ctx context.Context) *AccessTokenClaims {
	c, _ := ctx.Value(claimsKey{}).(*AccessTokenClaims)
	return c
}

func (s *Server) requireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				writeOAuthError(w, http.StatusUnauthorized, "invalid_token", "missing bearer token")
				return
			}
			claims, err := s.tokens.Validate(strings.TrimSpace(raw))
			if err != nil {
				writeOAuthError(w, http.StatusUnauthorized, "invalid_token", err.Error())
				return
			}
			if !claims.HasScope(scope) {
				writeOAuthError(w, http.StatusForbidden, "insufficient_scope", "token lacks scope "+scope)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

func (s *Server) authenticate(clientID, secret string) bool {
	if !secrets.Equal(clientID, s.clientID) {
		return false
	}
	return secrets.Verify(secret, s.secretHash) == nil
}

// requestedScopes returns the grantable scopes named in raw, or all of them
// when raw is empty. ok is false if any name is unknown.
func requestedScopes(raw string) ([]string, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return slices.Clone(grantable), true
	}
	for _, f := range fields {
		if !slices.Contains(grantable, f) {
			return nil, false
		}
	}
	return fields, true
}
