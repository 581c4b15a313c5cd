package metadata

import (
	"testing"

	"github.com/hailanwhu/tsfile/tsfile/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTsFileMetaData() *TsFileMetaData {
	md := NewTsFileMetaData(map[string]*TsDeltaObject{
		"root.car.d1": NewTsDeltaObject(4, 256, 100, 900),
		"root.car.d2": NewTsDeltaObject(1024, 128, 50, 60),
	}, []*TimeSeriesMetadata{
		NewTimeSeriesMetadata("speed", FLOAT),
		{MeasurementUID: "gear", Type: ENUMS, EnumValues: []string{"P", "R", "N", "D"}},
		NewTimeSeriesMetadata("note", TSDataTypeUnset),
	}, 2)
	md.CreatedBy = "tsfile-go"
	md.AddProp("encoding", "TS_2DIFF")
	return md
}

func TestTsDeltaObjectConvert(t *testing.T) {
	d := NewTsDeltaObject(10, 20, 30, 40)
	wire := d.ConvertToThrift()
	assert.Equal(t, &format.DeltaObject{Offset: 10, MetadataBlockSize: 20, StartTime: 30, EndTime: 40}, wire)

	got := &TsDeltaObject{}
	got.ConvertToTSF(wire)
	assert.Equal(t, d, got)

	got.ConvertToTSF(nil)
	assert.Equal(t, &TsDeltaObject{}, got)
}

func TestTimeSeriesMetadataConvert(t *testing.T) {
	ts := &TimeSeriesMetadata{MeasurementUID: "gear", Type: ENUMS, EnumValues: []string{"P", "D"}}
	wire := ts.ConvertToThrift()
	require.NotNil(t, wire.Type)
	assert.Equal(t, format.ENUMS, *wire.Type)

	wire.EnumValues[0] = "changed"
	assert.Equal(t, "P", ts.EnumValues[0], "conversion must not alias the receiver")

	unset := NewTimeSeriesMetadata("note", TSDataTypeUnset).ConvertToThrift()
	assert.Nil(t, unset.Type)

	got := &TimeSeriesMetadata{}
	got.ConvertToTSF(&format.TimeSeries{MeasurementUID: "x", Type: format.DataTypePtr(format.DataType(99))})
	assert.Equal(t, TSDataTypeUnset, got.Type)
}

func TestDataTypeMappingIsComplete(t *testing.T) {
	for dt := BOOLEAN; dt <= BIGDECIMAL; dt++ {
		wire := dt.toThrift()
		require.NotNil(t, wire, dt.String())
		assert.Equal(t, dt, dataTypeOf(wire))
		assert.Equal(t, wire.String(), dt.String())
	}
	assert.Equal(t, "UNSET", TSDataTypeUnset.String())
}

func TestTsFileMetaDataConvertRoundTrip(t *testing.T) {
	md := sampleTsFileMetaData()
	before := sampleTsFileMetaData()

	wire := md.ConvertToThrift()
	assert.Equal(t, before, md, "ConvertToThrift must not modify the receiver")
	require.NotNil(t, wire.CreatedBy)
	assert.Equal(t, "tsfile-go", *wire.CreatedBy)
	assert.Len(t, wire.TimeseriesList, 3)

	got := &TsFileMetaData{}
	got.ConvertToTSF(wire)
	assert.Equal(t, md, got)

	// applying the same record again changes nothing
	got.ConvertToTSF(wire)
	assert.Equal(t, md, got)
}

func TestTsFileMetaDataConvertReplacesState(t *testing.T) {
	got := sampleTsFileMetaData()
	got.ConvertToTSF(&format.FileMetaData{
		DeltaObjectMap: map[string]*format.DeltaObject{"root.x": {Offset: 1}},
		CurrentVersion: 9,
	})

	assert.True(t, got.ContainsDeltaObject("root.x"))
	assert.False(t, got.ContainsDeltaObject("root.car.d1"))
	assert.Empty(t, got.TimeSeriesList)
	assert.Empty(t, got.CreatedBy)
	assert.Empty(t, got.Props)
	assert.Equal(t, int32(9), got.CurrentVersion)
}

func TestTsFileMetaDataEmptyOptionalsOmitted(t *testing.T) {
	wire := NewTsFileMetaData(nil, nil, 1).ConvertToThrift()
	assert.NotNil(t, wire.DeltaObjectMap)
	assert.False(t, wire.IsSetTimeseriesList())
	assert.False(t, wire.IsSetCreatedBy())
	assert.False(t, wire.IsSetProperties())
}

func TestTsFileMetaDataLookups(t *testing.T) {
	md := sampleTsFileMetaData()

	d, ok := md.GetDeltaObject("root.car.d2")
	require.True(t, ok)
	assert.Equal(t, int64(1024), d.Offset)

	assert.True(t, md.ContainsMeasurement("gear"))
	assert.False(t, md.ContainsMeasurement("rpm"))
	assert.Equal(t, FLOAT, md.GetType("speed"))
	assert.Equal(t, TSDataTypeUnset, md.GetType("rpm"))

	md.AddTimeSeriesMetaData(NewTimeSeriesMetadata("rpm", INT32))
	assert.Equal(t, INT32, md.GetType("rpm"))

	v, ok := md.GetProp("encoding")
	assert.True(t, ok)
	assert.Equal(t, "TS_2DIFF", v)
	_, ok = md.GetProp("missing")
	assert.False(t, ok)
}
