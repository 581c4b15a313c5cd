package codec

import (
	"io"

	"github.com/hailanwhu/tsfile/tsfile/format"
)

// Package level helpers run on Default.

func WritePageHeader(header *format.PageHeader, to io.Writer) error {
	return Default.WritePageHeader(header, to)
}

func ReadPageHeader(from io.Reader) (*format.PageHeader, error) {
	return Default.ReadPageHeader(from)
}

func ReadPageHeaderInto(from io.Reader, header *format.PageHeader) (*format.PageHeader, error) {
	return Default.ReadPageHeaderInto(from, header)
}

func WriteFileMetaData(metadata *format.FileMetaData, to io.Writer) error {
	return Default.WriteFileMetaData(metadata, to)
}

func ReadFileMetaData(from io.Reader) (*format.FileMetaData, error) {
	return Default.ReadFileMetaData(from)
}

func WriteDataPageHeader(uncompressedSize, compressedSize, numValues, numRows int32, encoding format.Encoding,
	statistics format.Statistics, maxTimestamp, minTimestamp int64, to io.Writer) error {
	return Default.WriteDataPageHeader(uncompressedSize, compressedSize, numValues, numRows, encoding,
		statistics, maxTimestamp, minTimestamp, to)
}

func WriteDictionaryPageHeader(uncompressedSize, compressedSize, numValues int32, encoding format.Encoding, to io.Writer) error {
	return Default.WriteDictionaryPageHeader(uncompressedSize, compressedSize, numValues, encoding, to)
}
