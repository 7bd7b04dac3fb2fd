package table

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/sourcegraph/conc"
	"github.com/travigo/ssimconv/pkg/ssim"
)

// ErrShapeMismatch is returned when built columns do not line up with the
// schema or with each other.
var ErrShapeMismatch = errors.New("column shape mismatch")

// columnGroupSize is the number of columns built by one goroutine.
const columnGroupSize = 8

type column[R any] struct {
	field    arrow.Field
	appendTo func(b array.Builder, row R)
}

// project turns record fields into columns of row type R. A nil record from
// pick appends a null.
func project[R any, T any](fields []stringField[T], pick func(R) *T) []column[R] {
	columns := make([]column[R], 0, len(fields))

	for _, f := range fields {
		get := f.get
		columns = append(columns, column[R]{
			field: arrow.Field{Name: f.name, Type: arrow.BinaryTypes.String, Nullable: true},
			appendTo: func(b array.Builder, row R) {
				sb := b.(*array.StringBuilder)

				record := pick(row)
				if record == nil {
					sb.AppendNull()
					return
				}
				sb.Append(get(record))
			},
		})
	}

	return columns
}

func identity[T any](record *T) *T { return record }

var condensedSegmentType = arrow.StructOf(fieldsOf(project(joinedSegmentFields, identity[ssim.Segment]))...)

func segmentsColumn() column[CondensedRow] {
	return column[CondensedRow]{
		field: arrow.Field{Name: "segments", Type: arrow.ListOf(condensedSegmentType), Nullable: true},
		appendTo: func(b array.Builder, row CondensedRow) {
			lb := b.(*array.ListBuilder)
			if len(row.Segments) == 0 {
				lb.AppendNull()
				return
			}

			lb.Append(true)
			sb := lb.ValueBuilder().(*array.StructBuilder)
			for _, segment := range row.Segments {
				sb.Append(true)
				for i, f := range joinedSegmentFields {
					sb.FieldBuilder(i).(*array.StringBuilder).Append(f.get(segment))
				}
			}
		},
	}
}

var (
	carrierColumns = project(carrierFields, identity[ssim.Carrier])
	flightColumns  = project(flightFields, identity[ssim.FlightLeg])
	segmentColumns = project(segmentFields, identity[ssim.Segment])

	joinedColumns = concatColumns(
		project(joinedFlightFields, func(r JoinedRow) *ssim.FlightLeg { return r.Flight }),
		project(joinedCarrierFields, func(r JoinedRow) *ssim.Carrier { return r.Carrier }),
		project(joinedSegmentFields, func(r JoinedRow) *ssim.Segment { return r.Segment }),
	)

	condensedColumns = concatColumns(
		project(joinedFlightFields, func(r CondensedRow) *ssim.FlightLeg { return r.Flight }),
		project(joinedCarrierFields, func(r CondensedRow) *ssim.Carrier { return r.Carrier }),
		[]column[CondensedRow]{segmentsColumn()},
	)
)

var (
	CarrierSchema   = schemaOf(carrierColumns)
	FlightSchema    = schemaOf(flightColumns)
	SegmentSchema   = schemaOf(segmentColumns)
	JoinedSchema    = schemaOf(joinedColumns)
	CondensedSchema = schemaOf(condensedColumns)
)

func concatColumns[R any](groups ...[]column[R]) []column[R] {
	var columns []column[R]
	for _, group := range groups {
		columns = append(columns, group...)
	}
	return columns
}

func fieldsOf[R any](columns []column[R]) []arrow.Field {
	fields := make([]arrow.Field, len(columns))
	for i, c := range columns {
		fields[i] = c.field
	}
	return fields
}

func schemaOf[R any](columns []column[R]) *arrow.Schema {
	return arrow.NewSchema(fieldsOf(columns), nil)
}

// build appends every row to every column. Columns are split into groups that
// are built concurrently; each builder is owned by exactly one goroutine.
func build[R any](schema *arrow.Schema, columns []column[R], rows []R) (arrow.RecordBatch, error) {
	if len(columns) != schema.NumFields() {
		return nil, fmt.Errorf("%d columns for %d schema fields: %w", len(columns), schema.NumFields(), ErrShapeMismatch)
	}

	arrays := make([]arrow.Array, len(columns))

	var wg conc.WaitGroup
	for start := 0; start < len(columns); start += columnGroupSize {
		end := min(start+columnGroupSize, len(columns))

		wg.Go(func() {
			for i := start; i < end; i++ {
				b := array.NewBuilder(memory.DefaultAllocator, columns[i].field.Type)
				b.Reserve(len(rows))
				for _, row := range rows {
					columns[i].appendTo(b, row)
				}
				arrays[i] = b.NewArray()
				b.Release()
			}
		})
	}
	wg.Wait()

	defer func() {
		for _, a := range arrays {
			a.Release()
		}
	}()

	for i, a := range arrays {
		if a.Len() != len(rows) {
			return nil, fmt.Errorf("column %s has %d values for %d rows: %w", columns[i].field.Name, a.Len(), len(rows), ErrShapeMismatch)
		}
	}

	return array.NewRecordBatch(schema, arrays, int64(len(rows))), nil
}

func BuildCarriers(carriers []*ssim.Carrier) (arrow.RecordBatch, error) {
	return build(CarrierSchema, carrierColumns, carriers)
}

func BuildFlights(flights []*ssim.FlightLeg) (arrow.RecordBatch, error) {
	return build(FlightSchema, flightColumns, flights)
}

func BuildSegments(segments []*ssim.Segment) (arrow.RecordBatch, error) {
	return build(SegmentSchema, segmentColumns, segments)
}

func BuildJoined(rows []JoinedRow) (arrow.RecordBatch, error) {
	return build(JoinedSchema, joinedColumns, rows)
}

func BuildCondensed(rows []CondensedRow) (arrow.RecordBatch, error) {
	return build(CondensedSchema, condensedColumns, rows)
}

// Concat assembles batches into one table. The table holds its own
// references, so the caller may release the batches afterwards.
func Concat(schema *arrow.Schema, batches []arrow.RecordBatch) arrow.Table {
	return array.NewTableFromRecords(schema, batches)
}

// Strings returns the values of a Utf8 column, nulls as empty strings.
func Strings(tbl arrow.Table, name string) ([]string, error) {
	indices := tbl.Schema().FieldIndices(name)
	if len(indices) == 0 {
		return nil, fmt.Errorf("no column %q", name)
	}

	values := make([]string, 0, tbl.NumRows())
	for _, chunk := range tbl.Column(indices[0]).Data().Chunks() {
		strs, ok := chunk.(*array.String)
		if !ok {
			return nil, fmt.Errorf("column %q is %s, not utf8", name, chunk.DataType())
		}

		for i := 0; i < strs.Len(); i++ {
			if strs.IsNull(i) {
				values = append(values, "")
				continue
			}
			values = append(values, strs.Value(i))
		}
	}

	return values, nil
}
