package format

import (
	"context"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/stretchr/testify/require"
)

type fakeStatistics struct {
	empty    bool
	min, max []byte
}

func (s fakeStatistics) IsEmpty() bool    { return s.empty }
func (s fakeStatistics) MaxBytes() []byte { return s.max }
func (s fakeStatistics) MinBytes() []byte { return s.min }

var protocolFactories = map[string]thrift.TProtocolFactory{
	"compact": thrift.NewTCompactProtocolFactoryConf(nil),
	"binary":  thrift.NewTBinaryProtocolFactoryConf(nil),
}

func encode(t *testing.T, factory thrift.TProtocolFactory, s thrift.TStruct) []byte {
	t.Helper()
	buf := thrift.NewTMemoryBuffer()
	p := factory.GetProtocol(buf)
	require.NoError(t, s.Write(context.Background(), p))
	require.NoError(t, p.Flush(context.Background()))
	return buf.Bytes()
}

func decode(factory thrift.TProtocolFactory, data []byte, s thrift.TStruct) error {
	buf := thrift.NewTMemoryBuffer()
	buf.Write(data)
	return s.Read(context.Background(), factory.GetProtocol(buf))
}

// rawStruct writes arbitrary fields, for building inputs the typed records
// would refuse to produce.
type rawStruct struct {
	fields func(ctx context.Context, p thrift.TProtocol) error
}

func (r rawStruct) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "raw"); err != nil {
		return err
	}
	if err := r.fields(ctx, p); err != nil {
		return err
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (r rawStruct) Read(context.Context, thrift.TProtocol) error { return nil }

func rawI32(ctx context.Context, p thrift.TProtocol, id int16, v int32) error {
	if err := p.WriteFieldBegin(ctx, "", thrift.I32, id); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, v); err != nil {
		return err
	}
	return p.WriteFieldEnd(ctx)
}

func rawStructField(ctx context.Context, p thrift.TProtocol, id int16, s thrift.TStruct) error {
	if err := p.WriteFieldBegin(ctx, "", thrift.STRUCT, id); err != nil {
		return err
	}
	if err := s.Write(ctx, p); err != nil {
		return err
	}
	return p.WriteFieldEnd(ctx)
}
