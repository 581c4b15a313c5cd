package codec

import (
	"context"
	"errors"
	"io"
)

// readTransport is a read-only thrift transport over an io.Reader. It does
// no read-ahead, so decoding a page header leaves the source positioned on
// the first byte of the page payload. It also remembers how the source
// failed, which decides the kind of a decoding error.
type readTransport struct {
	r io.Reader

	truncated bool
	ioErr     error
}

func newReadTransport(r io.Reader) *readTransport {
	return &readTransport{r: r}
}

func (t *readTransport) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	switch {
	case err == nil:
	case errors.Is(err, io.ErrUnexpectedEOF):
		t.truncated = true
	case errors.Is(err, io.EOF):
		if n < len(p) {
			t.truncated = true
		}
	default:
		if t.ioErr == nil {
			t.ioErr = err
		}
	}
	return n, err
}

// failureKind tells what went wrong once a read has failed.
func (t *readTransport) failureKind() Kind {
	if t.ioErr != nil {
		return IoFailure
	}
	return DecodingFailure
}

func (t *readTransport) Write([]byte) (int, error) {
	return 0, errors.New("read only transport")
}

func (t *readTransport) Close() error { return nil }

func (t *readTransport) Flush(context.Context) error { return nil }

// RemainingBytes is unknown for a stream.
func (t *readTransport) RemainingBytes() uint64 { return ^uint64(0) }

func (t *readTransport) Open() error { return nil }

func (t *readTransport) IsOpen() bool { return true }
