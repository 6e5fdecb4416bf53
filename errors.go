package blockinfo

import (
	"fmt"
	"strings"
)

// MissingFieldError is returned when a required field has no alias present and no default
type MissingFieldError struct {
	Field   string
	Aliases []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required key not found: %s (tried %s)", e.Field, strings.Join(e.Aliases, "/"))
}

// MissingWithdrawalFieldError is returned when a withdrawal entry lacks one of its mandatory keys
type MissingWithdrawalFieldError struct {
	Index int
	Field string
}

func (e *MissingWithdrawalFieldError) Error() string {
	return fmt.Sprintf("required withdrawal key not found: %s (withdrawal %d)", e.Field, e.Index)
}

// TypeError is returned when a value cannot be encoded for its field
type TypeError struct {
	Field  string
	Reason string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("invalid type for key %s: %s", e.Field, e.Reason)
}
