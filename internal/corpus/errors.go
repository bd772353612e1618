package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound means a corpus source file does not exist.
	ErrSourceNotFound = errors.New("corpus source not found")
	// ErrMalformedSource means a source exists but cannot be read as a question-answer table.
	ErrMalformedSource = errors.New("malformed corpus source")
)

// LoadError reports why a corpus could not be loaded. It matches either
// ErrSourceNotFound or ErrMalformedSource under errors.Is.
type LoadError struct {
	Source string
	Kind   error
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Source)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Source, e.Err)
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notFound(source string, err error) *LoadError {
	return &LoadError{Source: source, Kind: ErrSourceNotFound, Err: err}
}

func malformed(source string, format string, args ...any) *LoadError {
	return &LoadError{Source: source, Kind: ErrMalformedSource, Err: fmt.Errorf(format, args...)}
}
