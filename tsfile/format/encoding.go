package format

import (
	"fmt"
)

// Encoding names the value encoding of a page payload. The codec passes it
// through untouched, so values it does not know survive a round trip.
type Encoding int32

const (
	PLAIN            Encoding = 0
	PLAIN_DICTIONARY Encoding = 1
	RLE              Encoding = 2
	DIFF             Encoding = 3
	TS_2DIFF         Encoding = 4
	BITMAP           Encoding = 5
	GORILLA          Encoding = 6
	REGULAR          Encoding = 7
)

var encodingNames = map[Encoding]string{
	PLAIN:            "PLAIN",
	PLAIN_DICTIONARY: "PLAIN_DICTIONARY",
	RLE:              "RLE",
	DIFF:             "DIFF",
	TS_2DIFF:         "TS_2DIFF",
	BITMAP:           "BITMAP",
	GORILLA:          "GORILLA",
	REGULAR:          "REGULAR",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Encoding(%d)", int32(e))
}

func EncodingFromString(s string) (Encoding, error) {
	for e, name := range encodingNames {
		if name == s {
			return e, nil
		}
	}
	return 0, fmt.Errorf("not a valid Encoding string: %q", s)
}

// DataType is the declared type of a measurement.
type DataType int32

const (
	BOOLEAN              DataType = 0
	INT32                DataType = 1
	INT64                DataType = 2
	FLOAT                DataType = 3
	DOUBLE               DataType = 4
	TEXT                 DataType = 5
	FIXED_LEN_BYTE_ARRAY DataType = 6
	ENUMS                DataType = 7
	BIGDECIMAL           DataType = 8
)

func (t DataType) String() string {
	switch t {
	case BOOLEAN:
		return "BOOLEAN"
	case INT32:
		return "INT32"
	case INT64:
		return "INT64"
	case FLOAT:
		return "FLOAT"
	case DOUBLE:
		return "DOUBLE"
	case TEXT:
		return "TEXT"
	case FIXED_LEN_BYTE_ARRAY:
		return "FIXED_LEN_BYTE_ARRAY"
	case ENUMS:
		return "ENUMS"
	case BIGDECIMAL:
		return "BIGDECIMAL"
	}
	return fmt.Sprintf("DataType(%d)", int32(t))
}

func DataTypePtr(v DataType) *DataType { return &v }
