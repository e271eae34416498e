package pipeline

import (
	"errors"
	"fmt"
)

// MissingInputError is returned when a required input does not exist. It is
// detected before any output is written.
type MissingInputError struct {
	Path string

	// Remedy tells the operator how to produce or obtain the input.
	Remedy string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("required input %s was not found. %s", e.Path, e.Remedy)
}

// IsMissingInput reports whether err is, or wraps, a MissingInputError.
func IsMissingInput(err error) bool {
	var target *MissingInputError
	return errors.As(err, &target)
}
