package metadata

import (
	"github.com/hailanwhu/tsfile/tsfile/format"
)

// TSDataType is the in-memory data type of a measurement. The zero value
// means the type is not recorded.
type TSDataType int

const (
	TSDataTypeUnset TSDataType = iota
	BOOLEAN
	INT32
	INT64
	FLOAT
	DOUBLE
	TEXT
	FIXED_LEN_BYTE_ARRAY
	ENUMS
	BIGDECIMAL
)

var dataTypeToThrift = map[TSDataType]format.DataType{
	BOOLEAN:              format.BOOLEAN,
	INT32:                format.INT32,
	INT64:                format.INT64,
	FLOAT:                format.FLOAT,
	DOUBLE:               format.DOUBLE,
	TEXT:                 format.TEXT,
	FIXED_LEN_BYTE_ARRAY: format.FIXED_LEN_BYTE_ARRAY,
	ENUMS:                format.ENUMS,
	BIGDECIMAL:           format.BIGDECIMAL,
}

var dataTypeFromThrift = func() map[format.DataType]TSDataType {
	m := make(map[format.DataType]TSDataType, len(dataTypeToThrift))
	for k, v := range dataTypeToThrift {
		m[v] = k
	}
	return m
}()

// toThrift returns nil for an unset type.
func (t TSDataType) toThrift() *format.DataType {
	v, ok := dataTypeToThrift[t]
	if !ok {
		return nil
	}
	return &v
}

// dataTypeOf maps a wire type back; absent or unknown values become unset.
func dataTypeOf(t *format.DataType) TSDataType {
	if t == nil {
		return TSDataTypeUnset
	}
	return dataTypeFromThrift[*t]
}

func (t TSDataType) String() string {
	if v := t.toThrift(); v != nil {
		return v.String()
	}
	return "UNSET"
}
