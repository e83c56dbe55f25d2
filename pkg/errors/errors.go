// Package errors defines the typed errors of the unification pipeline.
//
// Run-level failures (a missing data directory, bad configuration, an
// unwritable output file) are returned to the caller. Cell-level failures
// (ConversionError, HandlerError, ValidationError) never stop a run: they
// travel with the degraded value so it can be logged and counted.
package errors

import (
	"errors"
	"fmt"
)

// Standard library helpers, re-exported so callers need a single import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConversion   = errors.New("conversion failed")
	// ErrBlank marks a typed cell that was empty. It is expected in sparse
	// exports and logged at debug level only.
	ErrBlank    = errors.New("blank value")
	ErrCanceled = errors.New("operation canceled")
)

// IsNotFound reports whether err is, or wraps, a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError reports whether err is, or wraps, a validation or
// configuration error.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsConversionError reports whether err is, or wraps, a ConversionError.
func IsConversionError(err error) bool { return errors.Is(err, ErrConversion) }

// IsCanceled reports whether err is, or wraps, ErrCanceled.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// DirectoryNotFoundError is returned when the data path is missing or is not
// a directory.
type DirectoryNotFoundError struct {
	Path string
	Err  error
}

func (e *DirectoryNotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("data directory %s does not exist", e.Path)
	}
	return fmt.Sprintf("data directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryNotFoundError) Unwrap() error        { return e.Err }
func (e *DirectoryNotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewDirectoryNotFoundError creates a DirectoryNotFoundError.
func NewDirectoryNotFoundError(path string, err error) *DirectoryNotFoundError {
	return &DirectoryNotFoundError{Path: path, Err: err}
}

// ValidationError reports a value outside its allowed set. Validation of
// cell values is advisory: the value is still emitted.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid value: " + e.Message
	}
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConversionError reports a cell that could not be converted to the kind
// declared for its column. Err, when set, is the parser's reason or
// ErrBlank.
type ConversionError struct {
	Field string
	Value string
	Kind  string
	Err   error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("%s %q is not a valid %s", e.Field, e.Value, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error        { return e.Err }
func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// NewConversionError creates a ConversionError.
func NewConversionError(field, value, kind string, err error) *ConversionError {
	return &ConversionError{Field: field, Value: value, Kind: kind, Err: err}
}

// HandlerError attributes a failed contribution to the handler, source field
// and target that produced it.
type HandlerError struct {
	Handler string
	Source  string
	Target  string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s handler, %s -> %s: %v", e.Handler, e.Source, e.Target, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// NewHandlerError creates a HandlerError.
func NewHandlerError(handler, source, target string, err error) *HandlerError {
	return &HandlerError{Handler: handler, Source: source, Target: target, Err: err}
}

// ConfigError reports an invalid option, flag or config file entry. It
// matches ErrInvalidInput.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Component != "" {
		msg = e.Component + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "config " + msg
}

func (e *ConfigError) Unwrap() error        { return e.Err }
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidInput }

// NewConfigError creates a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError reports a file that is not valid in its format. Line and Column
// are 1-based and zero when unknown.
type ParseError struct {
	Format  string
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: invalid %s: %s", e.File, e.Line, e.Column, e.Format, e.Message)
	}
	return fmt.Sprintf("%s: invalid %s: %s", e.File, e.Format, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WrapParse wraps err as a ParseError for file, or returns nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// IOError reports a failed filesystem operation (open, read, create, write,
// walk) on Path.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// WrapIO wraps err as an IOError, or returns nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// ResourceError reports a failed operation against an external resource
// such as the MongoDB sink. ID names the collection or record when known.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Err       error
}

func (e *ResourceError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target += " " + e.ID
	}
	return fmt.Sprintf("%s %s: %v", e.Operation, target, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// WrapResource wraps err as a ResourceError, or returns nil.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}
