package format

import (
	"context"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataHeader(digest *Digest) *PageHeader {
	return NewPageHeader(4096, 1024, &DataPageHeader{
		NumValues:    100,
		NumRows:      100,
		Encoding:     PLAIN,
		Digest:       digest,
		MaxTimestamp: 2000,
		MinTimestamp: 1000,
	})
}

func TestPageHeaderRoundTrip(t *testing.T) {
	headers := map[string]*PageHeader{
		"dataWithDigest": sampleDataHeader(&Digest{
			Max: []byte{0x00, 0x00, 0x00, 0x64},
			Min: []byte{0x00, 0x00, 0x00, 0x01},
		}),
		"dataWithoutDigest": sampleDataHeader(nil),
		"dataWithHalfDigest": sampleDataHeader(&Digest{Max: []byte{0x7f}}),
		"dictionary": NewPageHeader(512, 256, &DictionaryPageHeader{NumValues: 12, Encoding: PLAIN_DICTIONARY}),
		"index":      NewPageHeader(0, 0, &IndexPageHeader{}),
		"unknownEncoding": NewPageHeader(1, 1, &DataPageHeader{
			NumValues: 1, NumRows: 1, Encoding: Encoding(77), MaxTimestamp: 5, MinTimestamp: 5,
		}),
		"compressedLarger": NewPageHeader(10, 20, &DictionaryPageHeader{NumValues: 1, Encoding: RLE}),
	}

	for protoName, factory := range protocolFactories {
		for name, h := range headers {
			t.Run(protoName+"/"+name, func(t *testing.T) {
				data := encode(t, factory, h)

				got := &PageHeader{}
				require.NoError(t, decode(factory, data, got))
				assert.Equal(t, h, got)
				assert.Equal(t, h.Type(), got.Type())
			})
		}
	}
}

func TestPageHeaderDigestPresence(t *testing.T) {
	factory := protocolFactories["compact"]

	got := &PageHeader{}
	require.NoError(t, decode(factory, encode(t, factory, sampleDataHeader(nil)), got))
	data, ok := got.DataPageHeader()
	require.True(t, ok)
	assert.False(t, data.IsSetDigest())
	assert.Nil(t, data.Digest)

	digest := &Digest{Max: []byte{0x00, 0x00, 0x00, 0x64}, Min: []byte{0x00, 0x00, 0x00, 0x01}}
	require.NoError(t, decode(factory, encode(t, factory, sampleDataHeader(digest)), got))
	data, ok = got.DataPageHeader()
	require.True(t, ok)
	require.True(t, data.IsSetDigest())
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x64}, data.Digest.Max)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, data.Digest.Min)
}

func TestPageHeaderReadReuse(t *testing.T) {
	factory := protocolFactories["compact"]
	withDigest := encode(t, factory, sampleDataHeader(&Digest{Max: []byte{9}, Min: []byte{1}}))
	withoutDigest := encode(t, factory, sampleDataHeader(nil))
	dictionary := encode(t, factory, NewPageHeader(64, 32, &DictionaryPageHeader{NumValues: 3, Encoding: PLAIN}))

	reused := &PageHeader{}
	for _, data := range [][]byte{withDigest, withoutDigest, dictionary, withDigest, dictionary, withoutDigest} {
		fresh := &PageHeader{}
		require.NoError(t, decode(factory, data, fresh))
		require.NoError(t, decode(factory, data, reused))
		assert.Equal(t, fresh, reused)
	}
}

func TestPageHeaderReadReusesSubHeader(t *testing.T) {
	factory := protocolFactories["compact"]
	h := sampleDataHeader(&Digest{Max: []byte{9}, Min: []byte{1}})
	body := h.Body

	require.NoError(t, decode(factory, encode(t, factory, sampleDataHeader(nil)), h))
	assert.Same(t, body, h.Body)
	data, _ := h.DataPageHeader()
	assert.Nil(t, data.Digest)
}

func TestPageHeaderWriteWithoutBody(t *testing.T) {
	buf := thrift.NewTMemoryBuffer()
	err := (&PageHeader{UncompressedSize: 1}).Write(context.Background(), thrift.NewTCompactProtocolConf(buf, nil))
	assert.ErrorIs(t, err, ErrMissingPageBody)
	assert.Equal(t, 0, buf.Len())

	for _, body := range []PageBody{(*DataPageHeader)(nil), (*DictionaryPageHeader)(nil), (*IndexPageHeader)(nil)} {
		assert.NotPanics(t, func() {
			err = NewPageHeader(1, 1, body).Write(context.Background(), thrift.NewTCompactProtocolConf(buf, nil))
		})
		assert.ErrorIs(t, err, ErrMissingPageBody, "%T", body)
	}
	assert.Equal(t, 0, buf.Len())

	var nilHeader *PageHeader
	assert.ErrorIs(t, nilHeader.Write(context.Background(), thrift.NewTCompactProtocolConf(buf, nil)), ErrMissingPageBody)
}

func TestNilRecordsDoNotPanic(t *testing.T) {
	p := thrift.NewTCompactProtocolConf(thrift.NewTMemoryBuffer(), nil)
	records := []thrift.TStruct{(*DataPageHeader)(nil), (*DictionaryPageHeader)(nil), (*Digest)(nil), (*FileMetaData)(nil)}
	for _, r := range records {
		var err error
		assert.NotPanics(t, func() { err = r.Write(context.Background(), p) }, "%T", r)
		assert.Error(t, err, "%T", r)
	}
}

func TestPageHeaderRejectsInconsistentInput(t *testing.T) {
	data := &DataPageHeader{NumValues: 1, NumRows: 1, MaxTimestamp: 2, MinTimestamp: 1}
	dict := &DictionaryPageHeader{NumValues: 1}

	cases := map[string]func(ctx context.Context, p thrift.TProtocol) error{
		"typeDisagreesWithBody": func(ctx context.Context, p thrift.TProtocol) error {
			if err := rawI32(ctx, p, 1, DictionaryPage.Wire()); err != nil {
				return err
			}
			if err := rawI32(ctx, p, 2, 10); err != nil {
				return err
			}
			if err := rawI32(ctx, p, 3, 10); err != nil {
				return err
			}
			return rawStructField(ctx, p, 5, data)
		},
		"twoBodies": func(ctx context.Context, p thrift.TProtocol) error {
			for id, v := range map[int16]int32{1: DataPage.Wire(), 2: 10, 3: 10} {
				if err := rawI32(ctx, p, id, v); err != nil {
					return err
				}
			}
			if err := rawStructField(ctx, p, 5, data); err != nil {
				return err
			}
			return rawStructField(ctx, p, 7, dict)
		},
		"noBody": func(ctx context.Context, p thrift.TProtocol) error {
			for id, v := range map[int16]int32{1: DataPage.Wire(), 2: 10, 3: 10} {
				if err := rawI32(ctx, p, id, v); err != nil {
					return err
				}
			}
			return nil
		},
		"unknownPageType": func(ctx context.Context, p thrift.TProtocol) error {
			for id, v := range map[int16]int32{1: 99, 2: 10, 3: 10} {
				if err := rawI32(ctx, p, id, v); err != nil {
					return err
				}
			}
			return rawStructField(ctx, p, 5, data)
		},
		"missingCompressedSize": func(ctx context.Context, p thrift.TProtocol) error {
			for id, v := range map[int16]int32{1: DataPage.Wire(), 2: 10} {
				if err := rawI32(ctx, p, id, v); err != nil {
					return err
				}
			}
			return rawStructField(ctx, p, 5, data)
		},
		"missingDataField": func(ctx context.Context, p thrift.TProtocol) error {
			for id, v := range map[int16]int32{1: DataPage.Wire(), 2: 10, 3: 10} {
				if err := rawI32(ctx, p, id, v); err != nil {
					return err
				}
			}
			return rawStructField(ctx, p, 5, rawStruct{fields: func(ctx context.Context, p thrift.TProtocol) error {
				return rawI32(ctx, p, 1, 5)
			}})
		},
	}

	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			factory := protocolFactories["compact"]
			raw := encode(t, factory, rawStruct{fields: fields})

			err := decode(factory, raw, &PageHeader{})
			require.Error(t, err)
			var protoErr thrift.TProtocolException
			require.ErrorAs(t, err, &protoErr)
			assert.Equal(t, thrift.INVALID_DATA, protoErr.TypeId())
		})
	}
}

func TestPageHeaderSkipsUnknownFields(t *testing.T) {
	factory := protocolFactories["compact"]
	want := NewPageHeader(64, 32, &DictionaryPageHeader{NumValues: 3, Encoding: PLAIN})

	raw := encode(t, factory, rawStruct{fields: func(ctx context.Context, p thrift.TProtocol) error {
		for id, v := range map[int16]int32{1: DictionaryPage.Wire(), 2: 64, 3: 32, 4: 0x1234} {
			if err := rawI32(ctx, p, id, v); err != nil {
				return err
			}
		}
		if err := rawStructField(ctx, p, 7, want.Body); err != nil {
			return err
		}
		if err := p.WriteFieldBegin(ctx, "", thrift.STRING, 12); err != nil {
			return err
		}
		if err := p.WriteString(ctx, "future"); err != nil {
			return err
		}
		return p.WriteFieldEnd(ctx)
	}})

	got := &PageHeader{}
	require.NoError(t, decode(factory, raw, got))
	assert.Equal(t, want, got)
}

func TestPageHeaderTruncated(t *testing.T) {
	factory := protocolFactories["compact"]
	data := encode(t, factory, sampleDataHeader(&Digest{Max: []byte{1, 2, 3}, Min: []byte{0}}))

	for n := 0; n < len(data); n++ {
		err := decode(factory, data[:n], &PageHeader{})
		assert.Error(t, err, "prefix of %d bytes", n)
	}
}

func TestPageHeaderAccessors(t *testing.T) {
	h := sampleDataHeader(nil)
	_, ok := h.DictionaryPageHeader()
	assert.False(t, ok)
	_, ok = h.IndexPageHeader()
	assert.False(t, ok)
	assert.Equal(t, DataPage, h.Type())
	assert.Contains(t, h.String(), "DATA_PAGE")

	h.Reset()
	assert.Equal(t, pageTypeNone, h.Type())
	assert.Nil(t, h.Body)
}
