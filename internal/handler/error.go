package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dhindle/commerce-cif-commercetools/internal/domain"
	"github.com/dhindle/commerce-cif-commercetools/internal/middleware"
)

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EINTERNAL:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// ErrorResponse writes a JSON error response derived from err.
// Internal errors are logged with their full cause but the response body
// only carries a generic message.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)

	if code == domain.EINTERNAL {
		logger := middleware.GetLogger(r.Context())
		logger.Error("request failed",
			"op", domain.ErrorOp(err),
			"error", err,
		)
	}

	writeError(w, status, errorBody{
		Code:    code,
		Message: domain.ErrorMessage(err),
	})
}

// ValidationErrorResponse writes a 400 response carrying per-field messages
// when err is a validator.ValidationErrors; any other error falls back to
// ErrorResponse.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		ErrorResponse(w, r, err)
		return
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}

	writeError(w, http.StatusBadRequest, errorBody{
		Code:    domain.EINVALID,
		Message: "request validation failed",
		Fields:  fields,
	})
}

// NotFoundResponse writes a generic 404 response.
func NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.NotFound("handler", "resource", r.URL.Path))
}

// InternalErrorResponse writes a generic 500 response.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	ErrorResponse(w, r, domain.Internal(err, "handler", "unexpected error"))
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Error: body}) //nolint:errcheck
}
