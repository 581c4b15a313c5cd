// Package codec reads and writes page headers and file metadata of a TsFile
// in their thrift wire form.
//
// A Codec holds no mutable state and may be shared between goroutines. A
// given source or sink must only be used by one call at a time: records are
// not framed, so interleaved writes corrupt the stream.
package codec

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/pkg/errors"

	"github.com/hailanwhu/tsfile/conf"
	"github.com/hailanwhu/tsfile/logger"
	"github.com/hailanwhu/tsfile/tsfile/common/fileio"
	"github.com/hailanwhu/tsfile/tsfile/format"
)

const (
	opWrite = "write"
	opRead  = "read"
)

// Options selects the wire protocol and its limits.
type Options struct {
	// Protocol is conf.ProtocolCompact (the file format's protocol) or
	// conf.ProtocolBinary.
	Protocol string
	// MaxMessageSize bounds any single string, binary or container read.
	// Zero means the thrift default.
	MaxMessageSize int
	// LogFailures logs every failure before it is returned.
	LogFailures bool
}

type Codec struct {
	factory     thrift.TProtocolFactory
	protocol    string
	logFailures bool
}

// Default uses the compact protocol with thrift's default limits.
var Default = MustNew(Options{Protocol: conf.ProtocolCompact, LogFailures: true})

func New(opts Options) (*Codec, error) {
	if opts.MaxMessageSize < 0 || opts.MaxMessageSize > conf.MaxMessageSizeLimit {
		return nil, fmt.Errorf("max message size %d not in [0, %d]", opts.MaxMessageSize, conf.MaxMessageSizeLimit)
	}
	tconf := &thrift.TConfiguration{}
	if opts.MaxMessageSize > 0 {
		tconf.MaxMessageSize = int32(opts.MaxMessageSize)
	}

	c := &Codec{protocol: opts.Protocol, logFailures: opts.LogFailures}
	switch opts.Protocol {
	case conf.ProtocolCompact, "":
		c.protocol = conf.ProtocolCompact
		c.factory = thrift.NewTCompactProtocolFactoryConf(tconf)
	case conf.ProtocolBinary:
		c.factory = thrift.NewTBinaryProtocolFactoryConf(tconf)
	default:
		return nil, fmt.Errorf("unsupported protocol %q", opts.Protocol)
	}
	return c, nil
}

func MustNew(opts Options) *Codec {
	c, err := New(opts)
	if err != nil {
		panic(err)
	}
	return c
}

// NewFromConfig builds a codec from the [codec] section of cfg.
func NewFromConfig(cfg *conf.Cfg) (*Codec, error) {
	return New(Options{
		Protocol:       cfg.Protocol,
		MaxMessageSize: cfg.MaxMessageSize,
		LogFailures:    cfg.LogFailures,
	})
}

func (c *Codec) Protocol() string {
	return c.protocol
}

// Write serializes record and hands the bytes to the sink in a single
// write. If serialization fails nothing reaches the sink.
func (c *Codec) Write(record format.Record, to io.Writer) error {
	if record == nil {
		return c.fail(EncodingFailure, opWrite, "record", errors.New("nil record"))
	}
	ctx := context.Background()

	buf := thrift.NewTMemoryBufferLen(256)
	proto := c.factory.GetProtocol(buf)
	if err := record.Write(ctx, proto); err != nil {
		return c.fail(EncodingFailure, opWrite, record.RecordName(), err)
	}
	if err := proto.Flush(ctx); err != nil {
		return c.fail(EncodingFailure, opWrite, record.RecordName(), err)
	}

	data := buf.Bytes()
	n, err := to.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return c.fail(IoFailure, opWrite, record.RecordName(), err)
	}
	return nil
}

// Read decodes one record from the stream, consuming exactly its bytes.
func (c *Codec) Read(from io.Reader, record format.Record) error {
	if record == nil {
		return c.fail(DecodingFailure, opRead, "record", errors.New("nil record"))
	}
	trans := newReadTransport(from)
	if err := record.Read(context.Background(), c.factory.GetProtocol(trans)); err != nil {
		if trans.truncated {
			err = errors.Wrap(err, "truncated input")
		}
		return c.fail(trans.failureKind(), opRead, record.RecordName(), err)
	}
	return nil
}

func (c *Codec) fail(kind Kind, op, record string, cause error) error {
	err := newError(kind, op, record, cause)
	if c.logFailures {
		logger.Errorf("tsfile-file codec: can not %s %s: %+v", op, record, err.Err)
	}
	return err
}

// WritePageHeader writes header to the sink. On error the header must be
// considered not written.
func (c *Codec) WritePageHeader(header *format.PageHeader, to io.Writer) error {
	if header == nil {
		return c.fail(EncodingFailure, opWrite, "PageHeader", errors.New("nil page header"))
	}
	return c.Write(header, to)
}

// ReadPageHeader decodes one page header into a new value.
func (c *Codec) ReadPageHeader(from io.Reader) (*format.PageHeader, error) {
	return c.ReadPageHeaderInto(from, &format.PageHeader{})
}

// ReadPageHeaderInto decodes one page header into header, overwriting every
// field, and returns it. On failure header is reset and nil is returned.
func (c *Codec) ReadPageHeaderInto(from io.Reader, header *format.PageHeader) (*format.PageHeader, error) {
	if header == nil {
		header = &format.PageHeader{}
	}
	if err := c.Read(from, header); err != nil {
		header.Reset()
		return nil, err
	}
	return header, nil
}

// ReadPageHeaderAt positions r at offset and decodes the page header found
// there. r is left on the first byte of the page payload.
func (c *Codec) ReadPageHeaderAt(r fileio.Reader, offset int64) (*format.PageHeader, error) {
	if err := r.Seek(offset); err != nil {
		return nil, c.fail(IoFailure, opRead, "PageHeader", err)
	}
	return c.ReadPageHeader(r)
}

func (c *Codec) WriteFileMetaData(metadata *format.FileMetaData, to io.Writer) error {
	if metadata == nil {
		return c.fail(EncodingFailure, opWrite, "FileMetaData", errors.New("nil file metadata"))
	}
	return c.Write(metadata, to)
}

// ReadFileMetaData consumes from to its end and decodes the file metadata
// at its start.
func (c *Codec) ReadFileMetaData(from io.Reader) (*format.FileMetaData, error) {
	data, err := io.ReadAll(from)
	if err != nil {
		return nil, c.fail(IoFailure, opRead, "FileMetaData", err)
	}
	metadata := format.NewFileMetaData()
	if err := c.Read(bytes.NewReader(data), metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}
