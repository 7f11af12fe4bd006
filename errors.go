package anonym

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownTransformer indicates no factory is registered for a transformer ID.
	ErrUnknownTransformer = errors.New("unknown transformer")

	// ErrInvalidOption indicates a transformer option has an invalid value.
	ErrInvalidOption = errors.New("invalid option")

	// ErrInvalidTag indicates a struct tag names an unknown transformer.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrDuplicateTarget indicates two transformers were configured for one column.
	ErrDuplicateTarget = errors.New("duplicate target")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrHash indicates hashing of a value failed.
	ErrHash = errors.New("hash failed")
)

// ConfigError represents a transformer configuration error.
// It wraps a sentinel error with the target column and transformer ID.
type ConfigError struct {
	Err         error  // Underlying sentinel error (ErrUnknownTransformer, etc.)
	Target      string // database.table.column that triggered the error
	Transformer string // Transformer ID that was missing/invalid
	Cause       error  // Original error, if any
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Transformer != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Transformer)
	}
	if e.Target != "" {
		msg = fmt.Sprintf("%s (column %s)", msg, e.Target)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ConfigError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for a column.
func newConfigError(sentinel error, transformer, target string, cause error) error {
	return &ConfigError{
		Err:         sentinel,
		Transformer: transformer,
		Target:      target,
		Cause:       cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
