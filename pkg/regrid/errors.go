package regrid

import "fmt"

// ErrorKind identifies the boundary at which a conversion failed.
type ErrorKind int

const (
	// KindFileNotFound reports an unreadable input path.
	KindFileNotFound ErrorKind = iota + 1
	// KindInvalidDelimiter reports a delimiter token outside the recognized set.
	KindInvalidDelimiter
	// KindWriteNotPermitted reports an output directory or path that cannot be written.
	KindWriteNotPermitted
	// KindInvalidOutputFormat reports a format token outside the recognized set.
	KindInvalidOutputFormat
	// KindInvalidFileFormat reports input that is not a rectangular, non-empty grid.
	KindInvalidFileFormat
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindFileNotFound:
		return "file not found"
	case KindInvalidDelimiter:
		return "invalid delimiter"
	case KindWriteNotPermitted:
		return "write not permitted"
	case KindInvalidOutputFormat:
		return "invalid output format"
	case KindInvalidFileFormat:
		return "invalid file format"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the single error type returned by this package.
//
// errors.Is matches an *Error against any other *Error of the same Kind, so
// callers test for a failure class with the sentinels below:
//
//	if errors.Is(err, regrid.ErrInvalidFileFormat) {
//	    // input was ragged or empty
//	}
type Error struct {
	// Kind is the failure class.
	Kind ErrorKind
	// Detail names the offending value: a token, a path, or a line.
	Detail string
	// Err is the underlying cause, if any.
	Err error
}

// Error returns the kind, the detail and the cause.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrFileNotFound        = &Error{Kind: KindFileNotFound}
	ErrInvalidDelimiter    = &Error{Kind: KindInvalidDelimiter}
	ErrWriteNotPermitted   = &Error{Kind: KindWriteNotPermitted}
	ErrInvalidOutputFormat = &Error{Kind: KindInvalidOutputFormat}
	ErrInvalidFileFormat   = &Error{Kind: KindInvalidFileFormat}
)

func newError(kind ErrorKind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}
