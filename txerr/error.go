// Package txerr defines the tagged error taxonomy shared by every codec
// layer in the transcoder: the Protobuf codec, the ROS codec, the field
// library, and the message aggregator all return errors built from this
// package so callers can dispatch on cause with errors.Is.
package txerr

import "fmt"

// Code identifies the cause of a transcoding failure.
type Code int32

const (
	// Truncated indicates a read passed the end of the buffer.
	Truncated Code = iota + 1
	// MalformedVarint indicates a varint's continuation bytes exceeded
	// its type's maximum encoded length.
	MalformedVarint
	// UnsupportedFeature indicates a Protobuf group (wire type 3/4) or
	// other unhandled wire type was encountered.
	UnsupportedFeature
	// AlreadyPopulated indicates parse was called on a message that
	// already completed a parse.
	AlreadyPopulated
	// UnknownType indicates an Any value named a type absent from the
	// registry.
	UnknownType
	// Overflow indicates a fixed-size output buffer could not accept a
	// write.
	Overflow
	// Allocation indicates a dynamic allocation failed.
	Allocation
)

func (c Code) String() string {
	switch c {
	case Truncated:
		return "truncated"
	case MalformedVarint:
		return "malformed varint"
	case UnsupportedFeature:
		return "unsupported feature"
	case AlreadyPopulated:
		return "already populated"
	case UnknownType:
		return "unknown type"
	case Overflow:
		return "overflow"
	case Allocation:
		return "allocation"
	default:
		return "unknown"
	}
}

// Error is a tagged status carrying a Code and a human-readable message.
type Error struct {
	code Code
	msg  string
}

// New builds an Error with the given code and message.
func New(code Code, msg string) Error {
	return Error{code: code, msg: msg}
}

// Newf builds an Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) Error {
	return Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// Code returns the error's tagged code.
func (e Error) Code() Code {
	return e.code
}

// Is reports whether target is an Error with the same Code, enabling
// errors.Is(err, txerr.ErrTruncated) style checks against the sentinels
// below without walking message text.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}
	return e.code == t.code
}

// Sentinel errors for every tagged code. Compare with errors.Is.
var (
	ErrTruncated          = New(Truncated, "buffer ended mid-field")
	ErrMalformedVarint    = New(MalformedVarint, "varint continuation exceeds type limit")
	ErrUnsupportedFeature = New(UnsupportedFeature, "unsupported wire feature")
	ErrAlreadyPopulated   = New(AlreadyPopulated, "message already populated")
	ErrUnknownType        = New(UnknownType, "type not found in registry")
	ErrOverflow           = New(Overflow, "fixed-size buffer exceeded")
	ErrAllocation         = New(Allocation, "allocation failed")
)
