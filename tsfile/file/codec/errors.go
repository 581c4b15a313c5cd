package codec

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a codec failure. Callers normally only need to know that
// the record is unusable; the kind is kept for diagnostics.
type Kind int

const (
	// EncodingFailure: the record could not be put into wire form.
	EncodingFailure Kind = iota + 1
	// DecodingFailure: the bytes did not form a valid record, including
	// input that ended mid-record.
	DecodingFailure
	// IoFailure: the underlying sink or source failed.
	IoFailure
)

func (k Kind) String() string {
	switch k {
	case EncodingFailure:
		return "encoding failure"
	case DecodingFailure:
		return "decoding failure"
	case IoFailure:
		return "io failure"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrCodec matches every error returned by this package:
// errors.Is(err, ErrCodec).
var ErrCodec = errors.New("tsfile codec failure")

// Error is the single error type returned across the codec boundary. Err
// holds the original cause.
type Error struct {
	Kind   Kind
	Op     string
	Record string
	Err    error
}

func newError(kind Kind, op, record string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Record: record, Err: errors.WithStack(cause)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("tsfile-file codec: can not %s %s (%s): %v", e.Op, e.Record, e.Kind, errors.Cause(e.Err))
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrCodec }

// KindOf returns the kind of a codec error, or 0 when err did not come from
// this package.
func KindOf(err error) Kind {
	var codecErr *Error
	if errors.As(err, &codecErr) {
		return codecErr.Kind
	}
	return 0
}
