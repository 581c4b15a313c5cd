package codec

import (
	"io"

	"github.com/hailanwhu/tsfile/tsfile/format"
)

// NewDataPageHeader assembles the header of a data page. The digest is
// attached only when statistics recorded something. Arguments are taken as
// given; keeping sizes and counts non-negative and minTimestamp <=
// maxTimestamp is up to the caller.
func NewDataPageHeader(uncompressedSize, compressedSize, numValues, numRows int32, encoding format.Encoding,
	statistics format.Statistics, maxTimestamp, minTimestamp int64) *format.PageHeader {
	// TODO: fill the reserved crc field once page checksums are computed by the writer.
	return format.NewPageHeader(uncompressedSize, compressedSize, &format.DataPageHeader{
		NumValues:    numValues,
		NumRows:      numRows,
		Encoding:     encoding,
		Digest:       format.NewDigest(statistics),
		MaxTimestamp: maxTimestamp,
		MinTimestamp: minTimestamp,
	})
}

// NewDictionaryPageHeader assembles the header of a dictionary page.
func NewDictionaryPageHeader(uncompressedSize, compressedSize, numValues int32, encoding format.Encoding) *format.PageHeader {
	return format.NewPageHeader(uncompressedSize, compressedSize, &format.DictionaryPageHeader{
		NumValues: numValues,
		Encoding:  encoding,
	})
}

func (c *Codec) WriteDataPageHeader(uncompressedSize, compressedSize, numValues, numRows int32, encoding format.Encoding,
	statistics format.Statistics, maxTimestamp, minTimestamp int64, to io.Writer) error {
	header := NewDataPageHeader(uncompressedSize, compressedSize, numValues, numRows, encoding,
		statistics, maxTimestamp, minTimestamp)
	return c.WritePageHeader(header, to)
}

// WriteDictionaryPageHeader writes the header of a dictionary page. No
// writer emits dictionary pages yet.
func (c *Codec) WriteDictionaryPageHeader(uncompressedSize, compressedSize, numValues int32, encoding format.Encoding, to io.Writer) error {
	return c.WritePageHeader(NewDictionaryPageHeader(uncompressedSize, compressedSize, numValues, encoding), to)
}
