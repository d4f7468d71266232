package spvmsl

import "fmt"

// ErrorKind categorizes conversion errors.
type ErrorKind uint8

const (
	// ErrInvalidSPIRV indicates the SPIR-V failed header validation or parsing.
	ErrInvalidSPIRV ErrorKind = iota

	// ErrSessionCreate indicates the engine could not open a session.
	ErrSessionCreate

	// ErrEntryPointNotFound indicates the requested entry point doesn't exist.
	ErrEntryPointNotFound

	// ErrUnsupported indicates a shader feature the engine cannot translate.
	ErrUnsupported

	// ErrCompile indicates MSL generation failed.
	ErrCompile
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidSPIRV:
		return "InvalidSPIRV"
	case ErrSessionCreate:
		return "SessionCreate"
	case ErrEntryPointNotFound:
		return "EntryPointNotFound"
	case ErrUnsupported:
		return "Unsupported"
	case ErrCompile:
		return "Compile"
	default:
		return "Unknown"
	}
}

// Error represents a conversion error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates a new Error wrapping err.
func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}
