package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onsightnow/internal/platform/logger"
	dErrors "onsightnow/pkg/domain-errors"
)

type actionRequest struct {
	ParticipantEmails string `json:"ParticipantEmails"`
	normalized        bool
}

func (r *actionRequest) Normalize() {
	r.ParticipantEmails = strings.TrimSpace(r.ParticipantEmails)
	r.normalized = true
}

func (r *actionRequest) Validate() error {
	if r.ParticipantEmails == "" {
		return errors.New("ParticipantEmails is required")
	}
	return nil
}

type codedRequest struct {
	ID string `json:"id"`
}

func (r *codedRequest) Validate() error {
	if r.ID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	return nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDecodeJSON(t *testing.T) {
	t.Run("decodes body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"ParticipantEmails":"a@x.com"}`))
		req, ok := DecodeJSON[actionRequest](httptest.NewRecorder(), r, logger.Discard())
		require.True(t, ok)
		assert.Equal(t, "a@x.com", req.ParticipantEmails)
	})

	for name, body := range map[string]string{"malformed": `{oops}`, "empty": ``} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			req, ok := DecodeJSON[actionRequest](w, r, logger.Discard())
			assert.False(t, ok)
			assert.Nil(t, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "bad_request", decodeError(t, w).Error)
		})
	}
}

func TestDecodeAndPrepare(t *testing.T) {
	t.Run("normalizes before validating", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"ParticipantEmails":"  a@x.com "}`))
		req, ok := DecodeAndPrepare[actionRequest](httptest.NewRecorder(), r, logger.Discard())
		require.True(t, ok)
		assert.True(t, req.normalized)
		assert.Equal(t, "a@x.com", req.ParticipantEmails)
	})

	t.Run("plain error becomes validation_failed", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"ParticipantEmails":"  "}`))
		_, ok := DecodeAndPrepare[actionRequest](w, r, logger.Discard())
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "validation_failed", resp.Error)
		assert.Equal(t, "ParticipantEmails is required", resp.Description)
	})

	t.Run("domain code preserved", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":""}`))
		_, ok := DecodeAndPrepare[codedRequest](w, r, logger.Discard())
		assert.False(t, ok)
		assert.Equal(t, "bad_request", decodeError(t, w).Error)
	})
}
