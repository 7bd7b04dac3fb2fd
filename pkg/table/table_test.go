package table

import (
	"encoding/json"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/ssimconv/pkg/ssim"
	"github.com/travigo/ssimconv/pkg/ssim/ssimtest"
)

type batch struct {
	carrier  *ssim.Carrier
	flights  []*ssim.FlightLeg
	segments []*ssim.Segment
}

func parse(t *testing.T, lines ...string) batch {
	t.Helper()

	var b batch
	for _, line := range lines {
		record, err := ssim.Parse(line, b.carrier)
		require.NoError(t, err)

		switch r := record.(type) {
		case *ssim.Carrier:
			b.carrier = r
		case *ssim.FlightLeg:
			b.flights = append(b.flights, r)
		case *ssim.Segment:
			for i := len(b.flights) - 1; i >= 0; i-- {
				if b.flights[i].Key() == r.Key() {
					r.Leg = b.flights[i]
					break
				}
			}
			b.segments = append(b.segments, r)
		}
	}

	return b
}

func sample(t *testing.T) batch {
	return parse(t,
		ssimtest.CarrierLine("KL"),
		ssimtest.FlightLegLine("KL", "1000", "01", "AMS"),
		ssimtest.SegmentLine("KL", "1000", "01", "AMS", "GRQ"),
		ssimtest.SegmentLine("KL", "1000", "01", "AMS", "LHR"),
		ssimtest.FlightLegLine("KL", "1001", "01", "GRQ"),
	)
}

func TestJoin(t *testing.T) {
	b := sample(t)

	rows := Join(b.carrier, b.flights, b.segments)
	require.Len(t, rows, 3)

	assert.Equal(t, "GRQ", rows[0].Segment.OffPoint)
	assert.Equal(t, "LHR", rows[1].Segment.OffPoint)
	assert.Same(t, rows[0].Flight, rows[1].Flight)
	assert.Nil(t, rows[2].Segment)
	assert.Equal(t, "GRQ", rows[2].Flight.DepartureStation)

	for _, row := range rows {
		assert.Same(t, b.carrier, row.Carrier)
	}
}

func TestJoinCarrierMismatch(t *testing.T) {
	b := parse(t,
		ssimtest.CarrierLine("KL"),
		ssimtest.FlightLegLine("AF", "1000", "01", "CDG"),
	)

	rows := Join(b.carrier, b.flights, b.segments)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Carrier)
}

func TestCondense(t *testing.T) {
	b := sample(t)

	rows := Condense(b.carrier, b.flights, b.segments)
	require.Len(t, rows, 2)
	require.Len(t, rows[0].Segments, 2)
	assert.Equal(t, "GRQ", rows[0].Segments[0].OffPoint)
	assert.Equal(t, "LHR", rows[0].Segments[1].OffPoint)
	assert.Empty(t, rows[1].Segments)
}

func TestJoinRepeatedLegKey(t *testing.T) {
	b := parse(t,
		ssimtest.CarrierLine("KL"),
		ssimtest.FlightLegLine("KL", "1", "01", "AMS"),
		ssimtest.SegmentLine("KL", "1", "01", "AMS", "GRQ"),
		ssimtest.FlightLegLine("KL", "1", "01", "AMS"),
		ssimtest.SegmentLine("KL", "1", "01", "AMS", "LHR"),
	)

	rows := Join(b.carrier, b.flights, b.segments)
	require.Len(t, rows, 2)
	assert.Same(t, b.flights[0], rows[0].Flight)
	assert.Equal(t, "GRQ", rows[0].Segment.OffPoint)
	assert.Same(t, b.flights[1], rows[1].Flight)
	assert.Equal(t, "LHR", rows[1].Segment.OffPoint)

	condensed := Condense(b.carrier, b.flights, b.segments)
	require.Len(t, condensed, 2)
	require.Len(t, condensed[0].Segments, 1)
	assert.Equal(t, "GRQ", condensed[0].Segments[0].OffPoint)
	require.Len(t, condensed[1].Segments, 1)
	assert.Equal(t, "LHR", condensed[1].Segments[0].OffPoint)
}

func TestJoinSkipsUnlinkedSegments(t *testing.T) {
	b := parse(t,
		ssimtest.CarrierLine("KL"),
		ssimtest.SegmentLine("KL", "1", "01", "AMS", "GRQ"),
		ssimtest.FlightLegLine("KL", "1", "01", "AMS"),
	)
	require.Nil(t, b.segments[0].Leg)

	rows := Join(b.carrier, b.flights, b.segments)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Segment)
}

func TestSchemas(t *testing.T) {
	assert.Equal(t, 16, CarrierSchema.NumFields())
	assert.Equal(t, 47, FlightSchema.NumFields())
	assert.Equal(t, 17, SegmentSchema.NumFields())

	// legs without record type and serial, carrier-only fields, segment fields
	assert.Equal(t, 45+12+6, JoinedSchema.NumFields())
	assert.Equal(t, 45+12+1, CondensedSchema.NumFields())

	assert.Equal(t, "flight_designator", JoinedSchema.Field(0).Name)
	assert.Equal(t, "time_mode", JoinedSchema.Field(45).Name)
	assert.Equal(t, "board_point_indicator", JoinedSchema.Field(57).Name)
	assert.Equal(t, "data", JoinedSchema.Field(62).Name)

	segments := CondensedSchema.Field(CondensedSchema.NumFields() - 1)
	assert.Equal(t, "segments", segments.Name)
	list, ok := segments.Type.(*arrow.ListType)
	require.True(t, ok)
	assert.Equal(t, 6, list.Elem().(*arrow.StructType).NumFields())
}

func TestBuildJoined(t *testing.T) {
	b := sample(t)

	rec, err := BuildJoined(Join(b.carrier, b.flights, b.segments))
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 3, rec.NumRows())

	offPoints := rec.Column(JoinedSchema.FieldIndices("off_point")[0]).(*array.String)
	assert.Equal(t, "GRQ", offPoints.Value(0))
	assert.Equal(t, "LHR", offPoints.Value(1))
	assert.True(t, offPoints.IsNull(2))

	timeMode := rec.Column(JoinedSchema.FieldIndices("time_mode")[0]).(*array.String)
	assert.Equal(t, "U", timeMode.Value(2))
}

func TestBuildCondensed(t *testing.T) {
	b := sample(t)

	rec, err := BuildCondensed(Condense(b.carrier, b.flights, b.segments))
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 2, rec.NumRows())

	segments := rec.Column(int(rec.NumCols()) - 1).(*array.List)
	assert.False(t, segments.IsNull(0))
	assert.True(t, segments.IsNull(1))

	start, end := segments.ValueOffsets(0)
	assert.EqualValues(t, 2, end-start)

	values := segments.ListValues().(*array.Struct)
	offPoints := values.Field(3).(*array.String)
	assert.Equal(t, "GRQ", offPoints.Value(int(start)))
	assert.Equal(t, "LHR", offPoints.Value(int(start)+1))
}

func TestBuildEmpty(t *testing.T) {
	rec, err := BuildFlights(nil)
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 0, rec.NumRows())
	assert.EqualValues(t, FlightSchema.NumFields(), rec.NumCols())
}

func TestConcat(t *testing.T) {
	first := sample(t)
	second := parse(t,
		ssimtest.CarrierLine("AF"),
		ssimtest.FlightLegLine("AF", "1", "01", "CDG"),
	)

	a, err := BuildFlights(first.flights)
	require.NoError(t, err)
	b, err := BuildFlights(second.flights)
	require.NoError(t, err)

	tbl := Concat(FlightSchema, []arrow.RecordBatch{a, b})
	a.Release()
	b.Release()
	defer tbl.Release()

	assert.EqualValues(t, 3, tbl.NumRows())

	stations, err := Strings(tbl, "departure_station")
	require.NoError(t, err)
	assert.Equal(t, []string{"AMS", "GRQ", "CDG"}, stations)

	_, err = Strings(tbl, "missing")
	assert.Error(t, err)
}

func TestBuildCarriers(t *testing.T) {
	b := sample(t)

	rec, err := BuildCarriers([]*ssim.Carrier{b.carrier})
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 1, rec.NumRows())
	assert.Equal(t, "KL ", rec.Column(0).(*array.String).Value(0))
}

func TestSegmentsJSON(t *testing.T) {
	b := sample(t)

	encoded, err := SegmentsJSON(b.segments)
	require.NoError(t, err)

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal([]byte(encoded), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, map[string]string{
		"board_point_indicator":   "A",
		"off_point_indicator":     "B",
		"board_point":             "AMS",
		"off_point":               "GRQ",
		"data_element_identifier": "050",
		"data":                    "KL 2562",
	}, decoded[0])

	empty, err := SegmentsJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}
