// Package validation holds the single definition of the input rules
// shared by the workout and progress creation paths. Checks fail fast,
// reporting the first violated rule only.
package validation

import (
	"errors"
	"fmt"
)

// Error marks a failure of a local input rule, raised before any
// remote call is made. Handlers map it to a 400 response.
type Error struct {
	message string
}

func (e *Error) Error() string {
	return e.message
}

func Errorf(format string, args ...any) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err (or anything it wraps) is a
// local validation failure.
func IsValidationError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

func NonEmpty(name, value string) error {
	if value == "" {
		return Errorf("%s must not be empty", name)
	}
	return nil
}

func PositiveInt(name string, value int) error {
	if value <= 0 {
		return Errorf("%s must be greater than zero", name)
	}
	return nil
}

func PositiveFloat(name string, value float64) error {
	if value <= 0 {
		return Errorf("%s must be greater than zero", name)
	}
	return nil
}
