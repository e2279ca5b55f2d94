package onsightstub

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	dErrors "onsightnow/pkg/domain-errors"
)

// AccessTokenClaims are the claims of a stub-issued access token.
type AccessTokenClaims struct {
	ClientID string `json:"client_id"`
	Scope    string `json:"scope"`
	jwt.RegisteredClaims
}

// HasScope reports whether the space separated scope claim contains scope.
func (c *AccessTokenClaims) HasScope(scope string) bool {
	return lo.Contains(strings.Fields(c.Scope), scope)
}

// TokenIssuer mints and validates HS256 access tokens.
type TokenIssuer struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

func NewTokenIssuer(signingKey, issuer string, ttl time.Duration, now func() time.Time) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{signingKey: []byte(signingKey), issuer: issuer, ttl: ttl, now: now}
}

// TTL is the lifetime of issued tokens.
func (s *TokenIssuer) TTL() time.Duration { return s.ttl }

// Issue signs a token for clientID carrying the given scopes.
func (s *TokenIssuer) Issue(clientID string, scopes []string) (string, error) {
	if len(scopes) == 0 {
		return "", dErrors.New(dErrors.CodeValidation, "scopes cannot be empty")
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessTokenClaims{
		ClientID: clientID,
		Scope:    strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return signed, nil
}

// Validate checks signature, algorithm, issuer and expiry.
func (s *TokenIssuer) Validate(tokenString string) (*AccessTokenClaims, error) {
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "empty token")
	}
	claims := new(AccessTokenClaims)
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return claims, nil
}
