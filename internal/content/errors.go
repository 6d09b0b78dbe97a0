package content

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/heroforge/internal/class"
)

var (
	// ErrNotFound is returned by a Repository when a class id has no definition.
	ErrNotFound = errors.New("class not found")

	// ErrConfiguration matches every ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("configuration error")
)

// ConfigurationError reports a content-authoring defect: a class that does
// not resolve, or resolves without the data a calculation needs. It aborts
// the recalculation pass.
type ConfigurationError struct {
	ClassID class.ID
	Reason  string
	Err     error
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error: " + e.Reason
	if e.ClassID != "" {
		msg = fmt.Sprintf("configuration error: class %q: %s", e.ClassID, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is lets errors.Is(err, ErrConfiguration) match any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError builds a ConfigurationError without a cause.
func NewConfigurationError(id class.ID, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{ClassID: id, Reason: fmt.Sprintf(format, args...)}
}
