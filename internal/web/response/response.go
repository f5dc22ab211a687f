package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/docflow-io/docflow/internal/doctype"
	"github.com/docflow-io/docflow/internal/permission"
	"github.com/docflow-io/docflow/internal/store"
	"github.com/docflow-io/docflow/internal/workflow"
)

// ErrorBody is the standard error envelope
type ErrorBody struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationBody carries per-field validation messages
type ValidationBody struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields"`
}

// JSON writes v as a JSON response with the given status
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// Error maps a domain error onto the appropriate status code and envelope.
// Unrecognized errors become a generic 500 without leaking internals.
func Error(w http.ResponseWriter, err error) {
	var validationErrs *store.ValidationErrors
	if errors.As(err, &validationErrs) {
		JSON(w, http.StatusUnprocessableEntity, &ValidationBody{
			Error:   "validation_failed",
			Message: "the document contains invalid data",
			Fields:  validationErrs.Fields,
		})
		return
	}

	var permErr *permission.Error
	if errors.As(err, &permErr) {
		renderError(w, http.StatusForbidden, "permission_denied", permErr.Error())
		return
	}

	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, doctype.ErrNotFound):
		renderError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, store.ErrDuplicateID):
		renderError(w, http.StatusConflict, "duplicate_id", err.Error())
	case errors.Is(err, workflow.ErrInvalidTransition):
		renderError(w, http.StatusConflict, "invalid_transition", err.Error())
	default:
		renderError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// BadRequest writes a 400 with the given message
func BadRequest(w http.ResponseWriter, message string) {
	renderError(w, http.StatusBadRequest, "bad_request", message)
}

func renderError(w http.ResponseWriter, statusCode int, code, message string) {
	JSON(w, statusCode, &ErrorBody{Error: code, Message: message})
}
