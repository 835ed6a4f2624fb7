package schema

import (
	"fmt"

	"github.com/aretw0/aasedit/pkg/domain"
)

// ValidationError is one leaf schema violation.
type ValidationError struct {
	InstancePath string `json:"instancePath"` // JSON pointer into the document, "" for the root
	Keyword      string `json:"keyword"`      // Failing schema keyword, e.g. "required"
	Message      string `json:"message"`
}

func (e ValidationError) String() string {
	path := e.InstancePath
	if path == "" {
		path = "/"
	}
	msg := e.Message
	if msg == "" {
		msg = "invalid"
	}
	return path + " " + msg
}

// NoErrorsMessage is reported by FormatFirstError for an empty error list.
const NoErrorsMessage = "no schema errors"

// FormatFirstError renders the first error as "{instancePath or /} {message or invalid}".
func FormatFirstError(errs []ValidationError) string {
	if len(errs) == 0 {
		return NoErrorsMessage
	}
	return errs[0].String()
}

// ViolationError is returned by Result.Err for an invalid document.
type ViolationError struct {
	Errors []ValidationError
}

func (e *ViolationError) Error() string {
	if len(e.Errors) <= 1 {
		return fmt.Sprintf("%s: %s", domain.ErrSchemaViolation, FormatFirstError(e.Errors))
	}
	return fmt.Sprintf("%s: %s (and %d more)", domain.ErrSchemaViolation, FormatFirstError(e.Errors), len(e.Errors)-1)
}

func (e *ViolationError) Unwrap() error { return domain.ErrSchemaViolation }
