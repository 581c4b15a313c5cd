package format

import (
	"fmt"
)

// PageType identifies which sub-header a PageHeader carries. The wire values
// are part of the file format and must never be renumbered.
type PageType int32

const (
	DataPage       PageType = 0
	IndexPage      PageType = 1
	DictionaryPage PageType = 2

	// pageTypeNone is reported by a PageHeader without a body. It never
	// reaches the wire.
	pageTypeNone PageType = -1
)

// PageTypeFromWire maps a wire value onto a PageType. Values outside the
// defined set report false.
func PageTypeFromWire(v int32) (PageType, bool) {
	switch v {
	case 0:
		return DataPage, true
	case 1:
		return IndexPage, true
	case 2:
		return DictionaryPage, true
	default:
		return pageTypeNone, false
	}
}

// Wire returns the stable wire value of p.
func (p PageType) Wire() int32 {
	return int32(p)
}

func (p PageType) String() string {
	switch p {
	case DataPage:
		return "DATA_PAGE"
	case IndexPage:
		return "INDEX_PAGE"
	case DictionaryPage:
		return "DICTIONARY_PAGE"
	}
	return "<UNSET>"
}

func PageTypeFromString(s string) (PageType, error) {
	switch s {
	case "DATA_PAGE":
		return DataPage, nil
	case "INDEX_PAGE":
		return IndexPage, nil
	case "DICTIONARY_PAGE":
		return DictionaryPage, nil
	}
	return pageTypeNone, fmt.Errorf("not a valid PageType string: %q", s)
}
