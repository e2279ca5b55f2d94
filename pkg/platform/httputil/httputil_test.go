package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "onsightnow/pkg/domain-errors"
)

func TestDomainCodeToHTTPStatus(t *testing.T) {
	tests := map[dErrors.Code]int{
		dErrors.CodeValidation:    http.StatusBadRequest,
		dErrors.CodeBadRequest:    http.StatusBadRequest,
		dErrors.CodeNotFound:      http.StatusNotFound,
		dErrors.CodeForbidden:     http.StatusForbidden,
		dErrors.CodeResolution:    http.StatusFailedDependency,
		dErrors.CodeAuth:          http.StatusBadGateway,
		dErrors.CodeService:       http.StatusBadGateway,
		dErrors.CodeTimeout:       http.StatusGatewayTimeout,
		dErrors.CodeConfiguration: http.StatusInternalServerError,
		dErrors.CodeInternal:      http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, DomainCodeToHTTPStatus(code), string(code))
	}
}

type stepError struct{ err error }

func (e *stepError) Error() string           { return e.err.Error() }
func (e *stepError) Unwrap() error           { return e.err }
func (e *stepError) Details() map[string]any { return map[string]any{"step": 2} }

func TestWriteError(t *testing.T) {
	t.Run("domain error", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, fmt.Errorf("schedule: %w", dErrors.New(dErrors.CodeAuth, "token request failed")))
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.JSONEq(t, `{"error":"auth_failed","error_description":"token request failed"}`, w.Body.String())
	})

	t.Run("details", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, &stepError{err: dErrors.New(dErrors.CodeResolution, "retrieve failed")})
		assert.Equal(t, http.StatusFailedDependency, w.Code)
		assert.JSONEq(t, `{"error":"resolution_failed","error_description":"retrieve failed","details":{"step":2}}`, w.Body.String())
	})

	t.Run("plain error hides message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("dial tcp: secret host"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal_error"}`, w.Body.String())
	})
}
