// Package httputil writes JSON responses and maps domain error codes to HTTP.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "onsightnow/pkg/domain-errors"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status is already sent, so an encoding error cannot be reported.
	_ = json.NewEncoder(w).Encode(response)
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error       string         `json:"error"`
	Description string         `json:"error_description,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// detailer is implemented by errors that carry diagnostic fields, such as the
// failing step of a resolution chain.
type detailer interface {
	Details() map[string]any
}

// WriteError translates err into a status code and ErrorResponse. Errors
// without a domain code are reported as internal without their message.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: string(dErrors.CodeInternal)})
		return
	}

	resp := ErrorResponse{
		Error:       string(domainErr.Code),
		Description: domainErr.Message,
	}
	var d detailer
	if errors.As(err, &d) {
		resp.Details = d.Details()
	}
	WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), resp)
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeResolution:
		return http.StatusFailedDependency
	case dErrors.CodeAuth, dErrors.CodeService:
		return http.StatusBadGateway
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
