package format

import (
	"context"
	"fmt"
	"sort"

	"github.com/apache/thrift/lib/go/thrift"
)

// FileMetaData is the file level metadata block.
//
//	1: required map<string, DeltaObject> delta_object_map
//	2: required i32 current_version
//	3: optional list<TimeSeries> timeseries_list
//	4: optional string created_by
//	5: optional map<string, string> properties
type FileMetaData struct {
	DeltaObjectMap map[string]*DeltaObject
	CurrentVersion int32
	TimeseriesList []*TimeSeries
	CreatedBy      *string
	Properties     map[string]string
}

func NewFileMetaData() *FileMetaData {
	return &FileMetaData{DeltaObjectMap: map[string]*DeltaObject{}}
}

func (m *FileMetaData) RecordName() string { return "FileMetaData" }

func (m *FileMetaData) IsSetTimeseriesList() bool { return m.TimeseriesList != nil }

func (m *FileMetaData) IsSetCreatedBy() bool { return m.CreatedBy != nil }

func (m *FileMetaData) IsSetProperties() bool { return m.Properties != nil }

func (m *FileMetaData) Write(ctx context.Context, oprot thrift.TProtocol) error {
	const record = "FileMetaData"
	if m == nil {
		return invalidData("%s: nil record", record)
	}
	if err := writeStructBegin(ctx, oprot, record); err != nil {
		return err
	}

	if err := writeFieldBegin(ctx, oprot, record, "delta_object_map", thrift.MAP, 1); err != nil {
		return err
	}
	if err := oprot.WriteMapBegin(ctx, thrift.STRING, thrift.STRUCT, len(m.DeltaObjectMap)); err != nil {
		return thrift.PrependError("error writing map begin: ", err)
	}
	for _, k := range sortedKeys(m.DeltaObjectMap) {
		v := m.DeltaObjectMap[k]
		if v == nil {
			return fmt.Errorf("%s: delta object %q is nil", record, k)
		}
		if err := oprot.WriteString(ctx, k); err != nil {
			return thrift.PrependError(fmt.Sprintf("%T. (0) field write error: ", k), err)
		}
		if err := v.Write(ctx, oprot); err != nil {
			return thrift.PrependError(fmt.Sprintf("%s error writing delta object %q: ", record, k), err)
		}
	}
	if err := oprot.WriteMapEnd(ctx); err != nil {
		return thrift.PrependError("error writing map end: ", err)
	}
	if err := writeFieldEnd(ctx, oprot, record, "delta_object_map", 1); err != nil {
		return err
	}

	if err := writeI32Field(ctx, oprot, record, "current_version", 2, m.CurrentVersion); err != nil {
		return err
	}

	if m.IsSetTimeseriesList() {
		if err := writeFieldBegin(ctx, oprot, record, "timeseries_list", thrift.LIST, 3); err != nil {
			return err
		}
		if err := oprot.WriteListBegin(ctx, thrift.STRUCT, len(m.TimeseriesList)); err != nil {
			return thrift.PrependError("error writing list begin: ", err)
		}
		for i, v := range m.TimeseriesList {
			if v == nil {
				return fmt.Errorf("%s: time series %d is nil", record, i)
			}
			if err := v.Write(ctx, oprot); err != nil {
				return thrift.PrependError(fmt.Sprintf("%s error writing time series %d: ", record, i), err)
			}
		}
		if err := oprot.WriteListEnd(ctx); err != nil {
			return thrift.PrependError("error writing list end: ", err)
		}
		if err := writeFieldEnd(ctx, oprot, record, "timeseries_list", 3); err != nil {
			return err
		}
	}

	if m.IsSetCreatedBy() {
		if err := writeStringField(ctx, oprot, record, "created_by", 4, *m.CreatedBy); err != nil {
			return err
		}
	}

	if m.IsSetProperties() {
		if err := writeFieldBegin(ctx, oprot, record, "properties", thrift.MAP, 5); err != nil {
			return err
		}
		if err := oprot.WriteMapBegin(ctx, thrift.STRING, thrift.STRING, len(m.Properties)); err != nil {
			return thrift.PrependError("error writing map begin: ", err)
		}
		for _, k := range sortedKeys(m.Properties) {
			if err := oprot.WriteString(ctx, k); err != nil {
				return thrift.PrependError(fmt.Sprintf("%T. (0) field write error: ", k), err)
			}
			if err := oprot.WriteString(ctx, m.Properties[k]); err != nil {
				return thrift.PrependError(fmt.Sprintf("%T. (0) field write error: ", k), err)
			}
		}
		if err := oprot.WriteMapEnd(ctx); err != nil {
			return thrift.PrependError("error writing map end: ", err)
		}
		if err := writeFieldEnd(ctx, oprot, record, "properties", 5); err != nil {
			return err
		}
	}

	return writeStructEnd(ctx, oprot, record)
}

func (m *FileMetaData) Read(ctx context.Context, iprot thrift.TProtocol) error {
	const record = "FileMetaData"
	*m = FileMetaData{}
	var issetDeltaObjectMap, issetCurrentVersion bool

	err := readStruct(ctx, iprot, record, func(id int16, typeID thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typeID == thrift.MAP:
			m.DeltaObjectMap, err = m.readDeltaObjectMap(ctx, iprot)
			issetDeltaObjectMap = true
		case id == 2 && typeID == thrift.I32:
			m.CurrentVersion, err = readI32(ctx, iprot, record, id)
			issetCurrentVersion = true
		case id == 3 && typeID == thrift.LIST:
			m.TimeseriesList, err = m.readTimeseriesList(ctx, iprot)
		case id == 4 && typeID == thrift.STRING:
			var v string
			v, err = readString(ctx, iprot, record, id)
			m.CreatedBy = &v
		case id == 5 && typeID == thrift.MAP:
			m.Properties, err = m.readProperties(ctx, iprot)
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return err
	}
	if !issetDeltaObjectMap {
		return missingField(record, "delta_object_map")
	}
	if !issetCurrentVersion {
		return missingField(record, "current_version")
	}
	return nil
}

func (m *FileMetaData) readDeltaObjectMap(ctx context.Context, iprot thrift.TProtocol) (map[string]*DeltaObject, error) {
	_, _, size, err := iprot.ReadMapBegin(ctx)
	if err != nil {
		return nil, thrift.PrependError("error reading map begin: ", err)
	}
	result := make(map[string]*DeltaObject, size)
	for i := 0; i < size; i++ {
		key, err := iprot.ReadString(ctx)
		if err != nil {
			return nil, thrift.PrependError("error reading field 0: ", err)
		}
		value := &DeltaObject{}
		if err := value.Read(ctx, iprot); err != nil {
			return nil, thrift.PrependError(fmt.Sprintf("error reading delta object %q: ", key), err)
		}
		result[key] = value
	}
	if err := iprot.ReadMapEnd(ctx); err != nil {
		return nil, thrift.PrependError("error reading map end: ", err)
	}
	return result, nil
}

func (m *FileMetaData) readTimeseriesList(ctx context.Context, iprot thrift.TProtocol) ([]*TimeSeries, error) {
	_, size, err := iprot.ReadListBegin(ctx)
	if err != nil {
		return nil, thrift.PrependError("error reading list begin: ", err)
	}
	result := make([]*TimeSeries, 0, size)
	for i := 0; i < size; i++ {
		elem := &TimeSeries{}
		if err := elem.Read(ctx, iprot); err != nil {
			return nil, thrift.PrependError(fmt.Sprintf("error reading time series %d: ", i), err)
		}
		result = append(result, elem)
	}
	if err := iprot.ReadListEnd(ctx); err != nil {
		return nil, thrift.PrependError("error reading list end: ", err)
	}
	return result, nil
}

func (m *FileMetaData) readProperties(ctx context.Context, iprot thrift.TProtocol) (map[string]string, error) {
	_, _, size, err := iprot.ReadMapBegin(ctx)
	if err != nil {
		return nil, thrift.PrependError("error reading map begin: ", err)
	}
	result := make(map[string]string, size)
	for i := 0; i < size; i++ {
		key, err := iprot.ReadString(ctx)
		if err != nil {
			return nil, thrift.PrependError("error reading field 0: ", err)
		}
		value, err := iprot.ReadString(ctx)
		if err != nil {
			return nil, thrift.PrependError("error reading field 0: ", err)
		}
		result[key] = value
	}
	if err := iprot.ReadMapEnd(ctx); err != nil {
		return nil, thrift.PrependError("error reading map end: ", err)
	}
	return result, nil
}

func (m *FileMetaData) String() string {
	if m == nil {
		return "<nil>"
	}
	createdBy := ""
	if m.CreatedBy != nil {
		createdBy = *m.CreatedBy
	}
	return fmt.Sprintf("FileMetaData{CurrentVersion=%d,DeltaObjects=%d,TimeSeries=%d,CreatedBy=%q,Properties=%v}",
		m.CurrentVersion, len(m.DeltaObjectMap), len(m.TimeseriesList), createdBy, m.Properties)
}

// DeltaObject locates the metadata block of one device.
//
//	1: required i64 offset
//	2: required i32 metadata_block_size
//	3: required i64 start_time
//	4: required i64 end_time
type DeltaObject struct {
	Offset            int64
	MetadataBlockSize int32
	StartTime         int64
	EndTime           int64
}

func (d *DeltaObject) Write(ctx context.Context, oprot thrift.TProtocol) error {
	const record = "DeltaObject"
	if err := writeStructBegin(ctx, oprot, record); err != nil {
		return err
	}
	if err := writeI64Field(ctx, oprot, record, "offset", 1, d.Offset); err != nil {
		return err
	}
	if err := writeI32Field(ctx, oprot, record, "metadata_block_size", 2, d.MetadataBlockSize); err != nil {
		return err
	}
	if err := writeI64Field(ctx, oprot, record, "start_time", 3, d.StartTime); err != nil {
		return err
	}
	if err := writeI64Field(ctx, oprot, record, "end_time", 4, d.EndTime); err != nil {
		return err
	}
	return writeStructEnd(ctx, oprot, record)
}

func (d *DeltaObject) Read(ctx context.Context, iprot thrift.TProtocol) error {
	const record = "DeltaObject"
	*d = DeltaObject{}
	var isset [5]bool

	err := readStruct(ctx, iprot, record, func(id int16, typeID thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typeID == thrift.I64:
			d.Offset, err = readI64(ctx, iprot, record, id)
		case id == 2 && typeID == thrift.I32:
			d.MetadataBlockSize, err = readI32(ctx, iprot, record, id)
		case id == 3 && typeID == thrift.I64:
			d.StartTime, err = readI64(ctx, iprot, record, id)
		case id == 4 && typeID == thrift.I64:
			d.EndTime, err = readI64(ctx, iprot, record, id)
		default:
			return false, nil
		}
		isset[id] = true
		return true, err
	})
	if err != nil {
		return err
	}
	for id, name := range []string{"", "offset", "metadata_block_size", "start_time", "end_time"} {
		if id > 0 && !isset[id] {
			return missingField(record, name)
		}
	}
	return nil
}

// TimeSeries describes one measurement.
//
//	1: required string measurement_uid
//	2: optional DataType type
//	3: optional list<string> enum_values
type TimeSeries struct {
	MeasurementUID string
	Type           *DataType
	EnumValues     []string
}

func (t *TimeSeries) IsSetType() bool { return t.Type != nil }

func (t *TimeSeries) IsSetEnumValues() bool { return t.EnumValues != nil }

func (t *TimeSeries) Write(ctx context.Context, oprot thrift.TProtocol) error {
	const record = "TimeSeries"
	if err := writeStructBegin(ctx, oprot, record); err != nil {
		return err
	}
	if err := writeStringField(ctx, oprot, record, "measurement_uid", 1, t.MeasurementUID); err != nil {
		return err
	}
	if t.IsSetType() {
		if err := writeI32Field(ctx, oprot, record, "type", 2, int32(*t.Type)); err != nil {
			return err
		}
	}
	if t.IsSetEnumValues() {
		if err := writeFieldBegin(ctx, oprot, record, "enum_values", thrift.LIST, 3); err != nil {
			return err
		}
		if err := oprot.WriteListBegin(ctx, thrift.STRING, len(t.EnumValues)); err != nil {
			return thrift.PrependError("error writing list begin: ", err)
		}
		for _, v := range t.EnumValues {
			if err := oprot.WriteString(ctx, v); err != nil {
				return thrift.PrependError(fmt.Sprintf("%T. (0) field write error: ", v), err)
			}
		}
		if err := oprot.WriteListEnd(ctx); err != nil {
			return thrift.PrependError("error writing list end: ", err)
		}
		if err := writeFieldEnd(ctx, oprot, record, "enum_values", 3); err != nil {
			return err
		}
	}
	return writeStructEnd(ctx, oprot, record)
}

func (t *TimeSeries) Read(ctx context.Context, iprot thrift.TProtocol) error {
	const record = "TimeSeries"
	*t = TimeSeries{}
	var issetMeasurementUID bool

	err := readStruct(ctx, iprot, record, func(id int16, typeID thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typeID == thrift.STRING:
			t.MeasurementUID, err = readString(ctx, iprot, record, id)
			issetMeasurementUID = true
		case id == 2 && typeID == thrift.I32:
			var v int32
			v, err = readI32(ctx, iprot, record, id)
			t.Type = DataTypePtr(DataType(v))
		case id == 3 && typeID == thrift.LIST:
			t.EnumValues, err = readStringList(ctx, iprot)
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return err
	}
	if !issetMeasurementUID {
		return missingField(record, "measurement_uid")
	}
	return nil
}

func readStringList(ctx context.Context, iprot thrift.TProtocol) ([]string, error) {
	_, size, err := iprot.ReadListBegin(ctx)
	if err != nil {
		return nil, thrift.PrependError("error reading list begin: ", err)
	}
	result := make([]string, 0, size)
	for i := 0; i < size; i++ {
		v, err := iprot.ReadString(ctx)
		if err != nil {
			return nil, thrift.PrependError("error reading field 0: ", err)
		}
		result = append(result, v)
	}
	if err := iprot.ReadListEnd(ctx); err != nil {
		return nil, thrift.PrependError("error reading list end: ", err)
	}
	return result, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
