package serror

import "fmt"

// StrideError is the error type used across the module for internal failures.
type StrideError struct {
	Err string
}

// New returns a new StrideError with the given formatted message.
func New(format string, args ...interface{}) *StrideError {
	return &StrideError{Err: fmt.Sprintf(format, args...)}
}

func (e *StrideError) Error() string {
	return e.Err
}
