package format

import (
	"context"
	"errors"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// ErrMissingPageBody is returned when a PageHeader without a sub-header is
// written.
var ErrMissingPageBody = errors.New("page header has no sub-header")

// PageBody is the kind specific part of a PageHeader. It is implemented by
// *DataPageHeader, *IndexPageHeader and *DictionaryPageHeader only, so the
// page type of a header always follows from the sub-header it carries.
type PageBody interface {
	thrift.TStruct
	PageType() PageType
	pageBody()
	isNil() bool
}

// PageHeader describes one page: its sizes and the sub-header of its kind.
//
// Wire layout:
//
//	1: required PageType type
//	2: required i32 uncompressed_page_size
//	3: required i32 compressed_page_size
//	4: optional i32 crc                       (reserved, never written)
//	5: optional DataPageHeader data_page_header
//	6: optional IndexPageHeader index_page_header
//	7: optional DictionaryPageHeader dictionary_page_header
type PageHeader struct {
	UncompressedSize int32
	CompressedSize   int32
	Body             PageBody
}

const (
	pageHeaderFieldType         int16 = 1
	pageHeaderFieldUncompressed int16 = 2
	pageHeaderFieldCompressed   int16 = 3
	pageHeaderFieldData         int16 = 5
	pageHeaderFieldIndex        int16 = 6
	pageHeaderFieldDictionary   int16 = 7
)

func NewPageHeader(uncompressedSize, compressedSize int32, body PageBody) *PageHeader {
	return &PageHeader{
		UncompressedSize: uncompressedSize,
		CompressedSize:   compressedSize,
		Body:             body,
	}
}

func (h *PageHeader) RecordName() string { return "PageHeader" }

// Type reports the page type implied by the sub-header.
func (h *PageHeader) Type() PageType {
	if h.Body == nil {
		return pageTypeNone
	}
	return h.Body.PageType()
}

func (h *PageHeader) DataPageHeader() (*DataPageHeader, bool) {
	d, ok := h.Body.(*DataPageHeader)
	return d, ok && d != nil
}

func (h *PageHeader) DictionaryPageHeader() (*DictionaryPageHeader, bool) {
	d, ok := h.Body.(*DictionaryPageHeader)
	return d, ok && d != nil
}

func (h *PageHeader) IndexPageHeader() (*IndexPageHeader, bool) {
	d, ok := h.Body.(*IndexPageHeader)
	return d, ok && d != nil
}

// Reset clears h so it can be read into again.
func (h *PageHeader) Reset() {
	*h = PageHeader{}
}

func (h *PageHeader) bodyField() (string, int16) {
	switch h.Type() {
	case DataPage:
		return "data_page_header", pageHeaderFieldData
	case IndexPage:
		return "index_page_header", pageHeaderFieldIndex
	default:
		return "dictionary_page_header", pageHeaderFieldDictionary
	}
}

func (h *PageHeader) Write(ctx context.Context, oprot thrift.TProtocol) error {
	const record = "PageHeader"
	if h == nil || h.Body == nil || h.Body.isNil() {
		return ErrMissingPageBody
	}
	if err := writeStructBegin(ctx, oprot, record); err != nil {
		return err
	}
	if err := writeI32Field(ctx, oprot, record, "type", pageHeaderFieldType, h.Type().Wire()); err != nil {
		return err
	}
	if err := writeI32Field(ctx, oprot, record, "uncompressed_page_size", pageHeaderFieldUncompressed, h.UncompressedSize); err != nil {
		return err
	}
	if err := writeI32Field(ctx, oprot, record, "compressed_page_size", pageHeaderFieldCompressed, h.CompressedSize); err != nil {
		return err
	}
	name, id := h.bodyField()
	if err := writeStructField(ctx, oprot, record, name, id, h.Body); err != nil {
		return err
	}
	return writeStructEnd(ctx, oprot, record)
}

// Read populates h from iprot. Every field of h is overwritten; when h
// already holds a sub-header of the kind being read, that allocation is
// reused. A header whose declared type disagrees with the sub-header it
// carries is rejected.
func (h *PageHeader) Read(ctx context.Context, iprot thrift.TProtocol) error {
	const record = "PageHeader"
	var (
		issetType, issetUncompressed, issetCompressed bool

		wireType                         int32
		uncompressedSize, compressedSize int32
		bodies                           []PageBody
	)

	err := readStruct(ctx, iprot, record, func(id int16, typeID thrift.TType) (bool, error) {
		var err error
		switch {
		case id == pageHeaderFieldType && typeID == thrift.I32:
			wireType, err = readI32(ctx, iprot, record, id)
			issetType = true
		case id == pageHeaderFieldUncompressed && typeID == thrift.I32:
			uncompressedSize, err = readI32(ctx, iprot, record, id)
			issetUncompressed = true
		case id == pageHeaderFieldCompressed && typeID == thrift.I32:
			compressedSize, err = readI32(ctx, iprot, record, id)
			issetCompressed = true
		case id == pageHeaderFieldData && typeID == thrift.STRUCT:
			body := h.reuseData()
			err = body.Read(ctx, iprot)
			bodies = append(bodies, body)
		case id == pageHeaderFieldIndex && typeID == thrift.STRUCT:
			body := &IndexPageHeader{}
			err = body.Read(ctx, iprot)
			bodies = append(bodies, body)
		case id == pageHeaderFieldDictionary && typeID == thrift.STRUCT:
			body := h.reuseDictionary()
			err = body.Read(ctx, iprot)
			bodies = append(bodies, body)
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return err
	}

	if !issetType {
		return missingField(record, "type")
	}
	if !issetUncompressed {
		return missingField(record, "uncompressed_page_size")
	}
	if !issetCompressed {
		return missingField(record, "compressed_page_size")
	}
	pageType, ok := PageTypeFromWire(wireType)
	if !ok {
		return invalidData("%s: unrecognized page type %d", record, wireType)
	}
	if len(bodies) != 1 {
		return invalidData("%s: expected exactly one sub-header for %s, got %d", record, pageType, len(bodies))
	}
	if bodies[0].PageType() != pageType {
		return invalidData("%s: declared type %s but carries a %s sub-header", record, pageType, bodies[0].PageType())
	}

	h.UncompressedSize = uncompressedSize
	h.CompressedSize = compressedSize
	h.Body = bodies[0]
	return nil
}

func (h *PageHeader) reuseData() *DataPageHeader {
	if d, ok := h.DataPageHeader(); ok {
		return d
	}
	return &DataPageHeader{}
}

func (h *PageHeader) reuseDictionary() *DictionaryPageHeader {
	if d, ok := h.DictionaryPageHeader(); ok {
		return d
	}
	return &DictionaryPageHeader{}
}

func (h *PageHeader) String() string {
	if h == nil {
		return "<nil>"
	}
	return fmt.Sprintf("PageHeader{Type=%s,UncompressedSize=%d,CompressedSize=%d,Body=%v}",
		h.Type(), h.UncompressedSize, h.CompressedSize, h.Body)
}

// DataPageHeader is the sub-header of a data page.
//
//	1: required i32 num_values
//	2: required i32 num_rows
//	3: required Encoding encoding
//	4: optional Digest digest
//	5: required i64 max_timestamp
//	6: required i64 min_timestamp
type DataPageHeader struct {
	NumValues    int32
	NumRows      int32
	Encoding     Encoding
	Digest       *Digest
	MaxTimestamp int64
	MinTimestamp int64
}

func (d *DataPageHeader) PageType() PageType { return DataPage }

func (d *DataPageHeader) pageBody() {}

func (d *DataPageHeader) isNil() bool { return d == nil }

func (d *DataPageHeader) IsSetDigest() bool { return d.Digest != nil }

func (d *DataPageHeader) Write(ctx context.Context, oprot thrift.TProtocol) error {
	const record = "DataPageHeader"
	if d == nil {
		return invalidData("%s: nil sub-header", record)
	}
	if err := writeStructBegin(ctx, oprot, record); err != nil {
		return err
	}
	if err := writeI32Field(ctx, oprot, record, "num_values", 1, d.NumValues); err != nil {
		return err
	}
	if err := writeI32Field(ctx, oprot, record, "num_rows", 2, d.NumRows); err != nil {
		return err
	}
	if err := writeI32Field(ctx, oprot, record, "encoding", 3, int32(d.Encoding)); err != nil {
		return err
	}
	if d.IsSetDigest() {
		if err := writeStructField(ctx, oprot, record, "digest", 4, d.Digest); err != nil {
			return err
		}
	}
	if err := writeI64Field(ctx, oprot, record, "max_timestamp", 5, d.MaxTimestamp); err != nil {
		return err
	}
	if err := writeI64Field(ctx, oprot, record, "min_timestamp", 6, d.MinTimestamp); err != nil {
		return err
	}
	return writeStructEnd(ctx, oprot, record)
}

func (d *DataPageHeader) Read(ctx context.Context, iprot thrift.TProtocol) error {
	const record = "DataPageHeader"
	*d = DataPageHeader{}
	var issetNumValues, issetNumRows, issetEncoding, issetMax, issetMin bool

	err := readStruct(ctx, iprot, record, func(id int16, typeID thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typeID == thrift.I32:
			d.NumValues, err = readI32(ctx, iprot, record, id)
			issetNumValues = true
		case id == 2 && typeID == thrift.I32:
			d.NumRows, err = readI32(ctx, iprot, record, id)
			issetNumRows = true
		case id == 3 && typeID == thrift.I32:
			var v int32
			v, err = readI32(ctx, iprot, record, id)
			d.Encoding = Encoding(v)
			issetEncoding = true
		case id == 4 && typeID == thrift.STRUCT:
			d.Digest = &Digest{}
			err = d.Digest.Read(ctx, iprot)
		case id == 5 && typeID == thrift.I64:
			d.MaxTimestamp, err = readI64(ctx, iprot, record, id)
			issetMax = true
		case id == 6 && typeID == thrift.I64:
			d.MinTimestamp, err = readI64(ctx, iprot, record, id)
			issetMin = true
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return err
	}

	switch {
	case !issetNumValues:
		return missingField(record, "num_values")
	case !issetNumRows:
		return missingField(record, "num_rows")
	case !issetEncoding:
		return missingField(record, "encoding")
	case !issetMax:
		return missingField(record, "max_timestamp")
	case !issetMin:
		return missingField(record, "min_timestamp")
	}
	return nil
}

func (d *DataPageHeader) String() string {
	return fmt.Sprintf("DataPageHeader{NumValues=%d,NumRows=%d,Encoding=%s,MinTimestamp=%d,MaxTimestamp=%d,Digest=%v}",
		d.NumValues, d.NumRows, d.Encoding, d.MinTimestamp, d.MaxTimestamp, d.Digest)
}

// DictionaryPageHeader is the sub-header of a dictionary page.
//
//	1: required i32 num_values
//	2: required Encoding encoding
type DictionaryPageHeader struct {
	NumValues int32
	Encoding  Encoding
}

func (d *DictionaryPageHeader) PageType() PageType { return DictionaryPage }

func (d *DictionaryPageHeader) pageBody() {}

func (d *DictionaryPageHeader) isNil() bool { return d == nil }

func (d *DictionaryPageHeader) Write(ctx context.Context, oprot thrift.TProtocol) error {
	const record = "DictionaryPageHeader"
	if d == nil {
		return invalidData("%s: nil sub-header", record)
	}
	if err := writeStructBegin(ctx, oprot, record); err != nil {
		return err
	}
	if err := writeI32Field(ctx, oprot, record, "num_values", 1, d.NumValues); err != nil {
		return err
	}
	if err := writeI32Field(ctx, oprot, record, "encoding", 2, int32(d.Encoding)); err != nil {
		return err
	}
	return writeStructEnd(ctx, oprot, record)
}

func (d *DictionaryPageHeader) Read(ctx context.Context, iprot thrift.TProtocol) error {
	const record = "DictionaryPageHeader"
	*d = DictionaryPageHeader{}
	var issetNumValues, issetEncoding bool

	err := readStruct(ctx, iprot, record, func(id int16, typeID thrift.TType) (bool, error) {
		if typeID != thrift.I32 {
			return false, nil
		}
		switch id {
		case 1:
			v, err := readI32(ctx, iprot, record, id)
			d.NumValues, issetNumValues = v, true
			return true, err
		case 2:
			v, err := readI32(ctx, iprot, record, id)
			d.Encoding, issetEncoding = Encoding(v), true
			return true, err
		}
		return false, nil
	})
	if err != nil {
		return err
	}
	if !issetNumValues {
		return missingField(record, "num_values")
	}
	if !issetEncoding {
		return missingField(record, "encoding")
	}
	return nil
}

func (d *DictionaryPageHeader) String() string {
	return fmt.Sprintf("DictionaryPageHeader{NumValues=%d,Encoding=%s}", d.NumValues, d.Encoding)
}

// IndexPageHeader is reserved; index pages carry no fields yet.
type IndexPageHeader struct{}

func (d *IndexPageHeader) PageType() PageType { return IndexPage }

func (d *IndexPageHeader) pageBody() {}

func (d *IndexPageHeader) isNil() bool { return d == nil }

func (d *IndexPageHeader) Write(ctx context.Context, oprot thrift.TProtocol) error {
	const record = "IndexPageHeader"
	if err := writeStructBegin(ctx, oprot, record); err != nil {
		return err
	}
	return writeStructEnd(ctx, oprot, record)
}

func (d *IndexPageHeader) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "IndexPageHeader", func(int16, thrift.TType) (bool, error) {
		return false, nil
	})
}

func (d *IndexPageHeader) String() string { return "IndexPageHeader{}" }
