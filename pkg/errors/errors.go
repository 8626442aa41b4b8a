// Package errors provides structured error handling for the snapshot library.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindInvalidArgument indicates a caller supplied an invalid value,
	// such as a non-positive size or pixel ratio.
	KindInvalidArgument
	// KindInvalidState indicates a value was consumed in a state its
	// contract disallows, such as converting an icon with empty bytes.
	KindInvalidState
	// KindUnavailable indicates no renderable surface exists. The caller
	// must complete surface initialization before retrying.
	KindUnavailable
	// KindRender indicates frame capture or encoding failed. The caller
	// may retry the whole render; no partial state persists.
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindInvalidState:
		return "invalid_state"
	case KindUnavailable:
		return "unavailable"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// RenderError represents a structured error in the snapshot library.
type RenderError struct {
	// Op is the operation that failed (e.g., "render.Rasterize").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// New wraps err with an operation and kind.
func New(op string, kind Kind, err error) *RenderError {
	return &RenderError{Op: op, Kind: kind, Err: err}
}

// Newf builds a RenderError from a format string.
func Newf(op string, kind Kind, format string, args ...any) *RenderError {
	return &RenderError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// InvalidArgumentf builds a KindInvalidArgument error.
func InvalidArgumentf(op, format string, args ...any) *RenderError {
	return Newf(op, KindInvalidArgument, format, args...)
}

// InvalidStatef builds a KindInvalidState error.
func InvalidStatef(op, format string, args ...any) *RenderError {
	return Newf(op, KindInvalidState, format, args...)
}

// Unavailablef builds a KindUnavailable error.
func Unavailablef(op, format string, args ...any) *RenderError {
	return Newf(op, KindUnavailable, format, args...)
}

// Renderf builds a KindRender error.
func Renderf(op, format string, args ...any) *RenderError {
	return Newf(op, KindRender, format, args...)
}

// KindOf extracts the Kind from an error chain. Errors that do not wrap a
// RenderError report KindUnknown.
func KindOf(err error) Kind {
	var re *RenderError
	if stderrors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain contains a RenderError of the
// given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
