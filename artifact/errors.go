package artifact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedArtifact indicates the dispatcher found no builder for an
// artifact/diagram combination. Unreachable after Validate; treated as an
// internal consistency failure, not user input error.
var ErrUnsupportedArtifact = errors.New("unsupported artifact type")

// MissingParameterError is returned when a required parameter is absent or
// empty after trimming.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("parameter %q is required", e.Name)
}

// InvalidEnumError is returned when an enumerated parameter holds a value
// outside its allowed set.
type InvalidEnumError struct {
	Name    string
	Value   string
	Allowed []string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s %q (allowed: %s)", e.Name, e.Value, strings.Join(e.Allowed, ", "))
}

// IsValidationError reports whether err is a validation failure raised by
// Validate, as opposed to an internal error.
func IsValidationError(err error) bool {
	var missing *MissingParameterError
	var invalid *InvalidEnumError
	return errors.As(err, &missing) || errors.As(err, &invalid)
}
