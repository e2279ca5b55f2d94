package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "onsightnow/pkg/domain-errors"
	"onsightnow/pkg/requestcontext"
)

// DecodeJSON decodes the request body into T. On failure it writes a
// bad_request response and returns false.
//
//	req, ok := httputil.DecodeJSON[launch.Request](w, r, h.logger)
//	if !ok {
//	    return
//	}
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode request body",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	return &req, true
}

// Validatable is implemented by request types that check themselves.
type Validatable interface {
	Validate() error
}

// Normalizable is implemented by request types that trim or canonicalise fields.
type Normalizable interface {
	Normalize()
}

// PrepareRequest normalises then validates req. Plain validation errors are
// reported as validation_failed; domain errors keep their code.
func PrepareRequest(req any) error {
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	v, ok := req.(Validatable)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, err.Error())
	}
	return nil
}

// DecodeAndPrepare is DecodeJSON followed by PrepareRequest.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	req, ok := DecodeJSON[T](w, r, logger)
	if !ok {
		return nil, false
	}
	if err := PrepareRequest(req); err != nil {
		logger.WarnContext(r.Context(), "invalid request",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		WriteError(w, err)
		return nil, false
	}
	return req, true
}
