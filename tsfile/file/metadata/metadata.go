package metadata

import (
	"fmt"

	"github.com/hailanwhu/tsfile/tsfile/file/metadata/converter"
	"github.com/hailanwhu/tsfile/tsfile/format"
)

var (
	_ converter.Converter[*format.DeltaObject]  = (*TsDeltaObject)(nil)
	_ converter.Converter[*format.TimeSeries]   = (*TimeSeriesMetadata)(nil)
	_ converter.Converter[*format.FileMetaData] = (*TsFileMetaData)(nil)
)

// TsDeltaObject locates the metadata block of one device (delta object) and
// the time range it covers.
type TsDeltaObject struct {
	Offset            int64
	MetadataBlockSize int32
	StartTime         int64
	EndTime           int64
}

func NewTsDeltaObject(offset int64, metadataBlockSize int32, startTime, endTime int64) *TsDeltaObject {
	return &TsDeltaObject{
		Offset:            offset,
		MetadataBlockSize: metadataBlockSize,
		StartTime:         startTime,
		EndTime:           endTime,
	}
}

func (d *TsDeltaObject) ConvertToThrift() *format.DeltaObject {
	return &format.DeltaObject{
		Offset:            d.Offset,
		MetadataBlockSize: d.MetadataBlockSize,
		StartTime:         d.StartTime,
		EndTime:           d.EndTime,
	}
}

func (d *TsDeltaObject) ConvertToTSF(metadata *format.DeltaObject) {
	if metadata == nil {
		*d = TsDeltaObject{}
		return
	}
	d.Offset = metadata.Offset
	d.MetadataBlockSize = metadata.MetadataBlockSize
	d.StartTime = metadata.StartTime
	d.EndTime = metadata.EndTime
}

func (d *TsDeltaObject) String() string {
	return fmt.Sprintf("TsDeltaObject{offset=%d,metadataBlockSize=%d,startTime=%d,endTime=%d}",
		d.Offset, d.MetadataBlockSize, d.StartTime, d.EndTime)
}

// TimeSeriesMetadata is the schema entry of one measurement.
type TimeSeriesMetadata struct {
	MeasurementUID string
	Type           TSDataType
	EnumValues     []string
}

func NewTimeSeriesMetadata(measurementUID string, dataType TSDataType) *TimeSeriesMetadata {
	return &TimeSeriesMetadata{MeasurementUID: measurementUID, Type: dataType}
}

func (t *TimeSeriesMetadata) ConvertToThrift() *format.TimeSeries {
	return &format.TimeSeries{
		MeasurementUID: t.MeasurementUID,
		Type:           t.Type.toThrift(),
		EnumValues:     cloneStrings(t.EnumValues),
	}
}

func (t *TimeSeriesMetadata) ConvertToTSF(metadata *format.TimeSeries) {
	if metadata == nil {
		*t = TimeSeriesMetadata{}
		return
	}
	t.MeasurementUID = metadata.MeasurementUID
	t.Type = dataTypeOf(metadata.Type)
	t.EnumValues = cloneStrings(metadata.EnumValues)
}

func (t *TimeSeriesMetadata) String() string {
	return fmt.Sprintf("TimeSeriesMetadata{measurementUID=%s,type=%s,enumValues=%v}",
		t.MeasurementUID, t.Type, t.EnumValues)
}

// TsFileMetaData is the in-memory view of a file's footer.
type TsFileMetaData struct {
	DeltaObjectMap map[string]*TsDeltaObject
	TimeSeriesList []*TimeSeriesMetadata
	CurrentVersion int32
	CreatedBy      string
	Props          map[string]string
}

func NewTsFileMetaData(deltaObjectMap map[string]*TsDeltaObject, timeSeriesList []*TimeSeriesMetadata, currentVersion int32) *TsFileMetaData {
	if deltaObjectMap == nil {
		deltaObjectMap = make(map[string]*TsDeltaObject)
	}
	return &TsFileMetaData{
		DeltaObjectMap: deltaObjectMap,
		TimeSeriesList: timeSeriesList,
		CurrentVersion: currentVersion,
		Props:          make(map[string]string),
	}
}

func (m *TsFileMetaData) ContainsDeltaObject(deltaObjectUID string) bool {
	_, ok := m.DeltaObjectMap[deltaObjectUID]
	return ok
}

func (m *TsFileMetaData) GetDeltaObject(deltaObjectUID string) (*TsDeltaObject, bool) {
	d, ok := m.DeltaObjectMap[deltaObjectUID]
	return d, ok
}

func (m *TsFileMetaData) ContainsMeasurement(measurementUID string) bool {
	_, ok := m.timeSeries(measurementUID)
	return ok
}

// GetType returns the declared type of a measurement, or TSDataTypeUnset
// when the measurement is unknown.
func (m *TsFileMetaData) GetType(measurementUID string) TSDataType {
	if ts, ok := m.timeSeries(measurementUID); ok {
		return ts.Type
	}
	return TSDataTypeUnset
}

func (m *TsFileMetaData) timeSeries(measurementUID string) (*TimeSeriesMetadata, bool) {
	for _, ts := range m.TimeSeriesList {
		if ts != nil && ts.MeasurementUID == measurementUID {
			return ts, true
		}
	}
	return nil, false
}

func (m *TsFileMetaData) AddTimeSeriesMetaData(ts *TimeSeriesMetadata) {
	m.TimeSeriesList = append(m.TimeSeriesList, ts)
}

func (m *TsFileMetaData) AddProp(key, value string) {
	if m.Props == nil {
		m.Props = make(map[string]string)
	}
	m.Props[key] = value
}

func (m *TsFileMetaData) GetProp(key string) (string, bool) {
	v, ok := m.Props[key]
	return v, ok
}

// ConvertToThrift builds the wire record. Empty optional parts (no time
// series, no creator, no properties) are left unset so they are omitted on
// the wire.
func (m *TsFileMetaData) ConvertToThrift() *format.FileMetaData {
	md := &format.FileMetaData{
		DeltaObjectMap: make(map[string]*format.DeltaObject, len(m.DeltaObjectMap)),
		CurrentVersion: m.CurrentVersion,
	}
	for uid, d := range m.DeltaObjectMap {
		if d == nil {
			d = &TsDeltaObject{}
		}
		md.DeltaObjectMap[uid] = d.ConvertToThrift()
	}
	if len(m.TimeSeriesList) > 0 {
		md.TimeseriesList = make([]*format.TimeSeries, 0, len(m.TimeSeriesList))
		for _, ts := range m.TimeSeriesList {
			if ts == nil {
				continue
			}
			md.TimeseriesList = append(md.TimeseriesList, ts.ConvertToThrift())
		}
	}
	if m.CreatedBy != "" {
		createdBy := m.CreatedBy
		md.CreatedBy = &createdBy
	}
	if len(m.Props) > 0 {
		md.Properties = make(map[string]string, len(m.Props))
		for k, v := range m.Props {
			md.Properties[k] = v
		}
	}
	return md
}

// ConvertToTSF replaces the receiver's state with metadata.
func (m *TsFileMetaData) ConvertToTSF(metadata *format.FileMetaData) {
	*m = *NewTsFileMetaData(nil, nil, 0)
	if metadata == nil {
		return
	}
	m.CurrentVersion = metadata.CurrentVersion
	for uid, d := range metadata.DeltaObjectMap {
		delta := &TsDeltaObject{}
		delta.ConvertToTSF(d)
		m.DeltaObjectMap[uid] = delta
	}
	for _, ts := range metadata.TimeseriesList {
		series := &TimeSeriesMetadata{}
		series.ConvertToTSF(ts)
		m.TimeSeriesList = append(m.TimeSeriesList, series)
	}
	if metadata.CreatedBy != nil {
		m.CreatedBy = *metadata.CreatedBy
	}
	for k, v := range metadata.Properties {
		m.Props[k] = v
	}
}

func (m *TsFileMetaData) String() string {
	return fmt.Sprintf("TsFileMetaData{deltaObjects=%d,timeSeries=%d,currentVersion=%d,createdBy=%s,props=%v}",
		len(m.DeltaObjectMap), len(m.TimeSeriesList), m.CurrentVersion, m.CreatedBy, m.Props)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
