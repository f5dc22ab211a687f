package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a document id does not exist
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateID is returned when a create collides with an existing id
	ErrDuplicateID = errors.New("document id already exists")
)

// ValidationErrors carries every field-level violation found in one pass so
// the caller can report the complete list in a single response
type ValidationErrors struct {
	Fields map[string][]string `json:"fields"`
}

// NewValidationErrors creates an empty ValidationErrors
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Fields: make(map[string][]string)}
}

// Add records a violation for a field
func (ve *ValidationErrors) Add(field, message string) {
	if ve.Fields == nil {
		ve.Fields = make(map[string][]string)
	}
	ve.Fields[field] = append(ve.Fields[field], message)
}

// HasErrors reports whether any violation was recorded
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Fields) > 0
}

// Count returns the total number of violations across all fields
func (ve *ValidationErrors) Count() int {
	n := 0
	for _, msgs := range ve.Fields {
		n += len(msgs)
	}
	return n
}

// Error implements the error interface
func (ve *ValidationErrors) Error() string {
	if !ve.HasErrors() {
		return "validation failed"
	}
	var parts []string
	for field, msgs := range ve.Fields {
		for _, msg := range msgs {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	if len(parts) == 1 {
		return "validation failed: " + parts[0]
	}
	return fmt.Sprintf("validation failed (%d errors): %s", len(parts), strings.Join(parts, "; "))
}

// MarshalJSON serializes the violations keyed by field
func (ve *ValidationErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Error  string              `json:"error"`
		Fields map[string][]string `json:"fields"`
	}{
		Error:  "validation_failed",
		Fields: ve.Fields,
	})
}

// IsValidation reports whether the error is a ValidationErrors
func IsValidation(err error) bool {
	var ve *ValidationErrors
	return errors.As(err, &ve)
}

// convertDBError translates driver-specific failures into engine errors.
// Anything it does not recognize passes through and surfaces as a generic
// server error at the API boundary.
func convertDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicateID, pgErr.Detail)
	}

	// mattn/go-sqlite3 reports constraint failures by message; matching the
	// text avoids importing the cgo driver package here.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", ErrDuplicateID, err)
	}

	return err
}
