package reports

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the referenced report or share token does not exist.
	ErrNotFound = errors.New("report not found")

	// ErrShareLinkExpired means the share token resolved but its validity
	// window has passed. Kept distinct from ErrNotFound so logs and tests can
	// tell the two apart; the public API collapses both into a generic 404.
	ErrShareLinkExpired = errors.New("share link expired")
)

// ValidationError reports caller-supplied data that violates a required-field
// or format invariant. Either MissingFields is set (presence check, listing
// every missing field) or Field/Reason is set (format check, first violation).
type ValidationError struct {
	MissingFields []string `json:"missingFields,omitempty"`
	Field         string   `json:"field,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) > 0 {
		return "missing required fields: " + strings.Join(e.MissingFields, ", ")
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
