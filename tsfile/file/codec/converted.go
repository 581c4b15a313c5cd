package codec

import (
	"io"

	"github.com/hailanwhu/tsfile/tsfile/file/metadata"
	"github.com/hailanwhu/tsfile/tsfile/file/metadata/converter"
	"github.com/hailanwhu/tsfile/tsfile/format"
)

// WriteConverted writes the wire form of m.
func WriteConverted[T format.Record](c *Codec, m converter.Converter[T], to io.Writer) error {
	return c.Write(m.ConvertToThrift(), to)
}

// ReadConverted decodes a record into wire and applies it to m. m is left
// untouched when decoding fails.
func ReadConverted[T format.Record](c *Codec, from io.Reader, wire T, m converter.Converter[T]) error {
	if err := c.Read(from, wire); err != nil {
		return err
	}
	m.ConvertToTSF(wire)
	return nil
}

func (c *Codec) WriteTsFileMetaData(md *metadata.TsFileMetaData, to io.Writer) error {
	return WriteConverted[*format.FileMetaData](c, md, to)
}

// ReadTsFileMetaData reads the metadata block at the start of from; like
// ReadFileMetaData it consumes from to its end.
func (c *Codec) ReadTsFileMetaData(from io.Reader) (*metadata.TsFileMetaData, error) {
	wire, err := c.ReadFileMetaData(from)
	if err != nil {
		return nil, err
	}
	md := &metadata.TsFileMetaData{}
	md.ConvertToTSF(wire)
	return md, nil
}
