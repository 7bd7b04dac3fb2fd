package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/jinzhu/copier"
	"github.com/travigo/ssimconv/pkg/ssim"
	"github.com/travigo/ssimconv/pkg/table"
)

// CarrierColumns are the carrier fields written next to each leg.
type CarrierColumns struct {
	TimeMode                       string `csv:"time_mode"`
	Season                         string `csv:"season"`
	PeriodOfScheduleValidityFrom   string `csv:"period_of_schedule_validity_from"`
	PeriodOfScheduleValidityTo     string `csv:"period_of_schedule_validity_to"`
	CreationDate                   string `csv:"creation_date"`
	TitleOfData                    string `csv:"title_of_data"`
	ReleaseDate                    string `csv:"release_date"`
	ScheduleStatus                 string `csv:"schedule_status"`
	GeneralInformation             string `csv:"general_information"`
	InFlightServiceInformation     string `csv:"in_flight_service_information"`
	ElectronicTicketingInformation string `csv:"electronic_ticketing_information"`
	CreationTime                   string `csv:"creation_time"`
}

type SegmentColumns struct {
	BoardPointIndicator   string `csv:"board_point_indicator"`
	OffPointIndicator     string `csv:"off_point_indicator"`
	BoardPoint            string `csv:"board_point"`
	OffPoint              string `csv:"off_point"`
	DataElementIdentifier string `csv:"data_element_identifier"`
	Data                  string `csv:"data"`
}

// TextRow is one joined row of the text export.
type TextRow struct {
	ssim.FlightLeg
	CarrierColumns
	SegmentColumns
}

// CondensedTextRow is one row per leg, its segments as a JSON array.
type CondensedTextRow struct {
	ssim.FlightLeg
	CarrierColumns
	Segments string `csv:"segments"`
}

type TextOptions struct {
	Condense bool
	// Append adds to an existing file instead of truncating it. The header is
	// left out when the file already has content.
	Append bool
}

// TextWriter writes each batch to a delimited text file as soon as it
// arrives.
type TextWriter struct {
	NopCarrierComplete

	path        string
	options     TextOptions
	file        *os.File
	writeHeader bool
	rows        int
}

func NewTextWriter(path string, options TextOptions) (*TextWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	writeHeader := true

	if options.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			writeHeader = false
		}
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening text output: %w", err)
	}

	return &TextWriter{
		path:        path,
		options:     options,
		file:        file,
		writeHeader: writeHeader,
	}, nil
}

func (w *TextWriter) ProcessBatch(flights []*ssim.FlightLeg, segments []*ssim.Segment, carrier *ssim.Carrier) error {
	if w.options.Condense {
		rows, err := condensedTextRows(table.Condense(carrier, flights, segments))
		if err != nil {
			return err
		}
		return w.write(rows, len(rows))
	}

	rows, err := textRows(table.Join(carrier, flights, segments))
	if err != nil {
		return err
	}
	return w.write(rows, len(rows))
}

func (w *TextWriter) write(rows any, count int) error {
	var err error
	if w.writeHeader {
		err = gocsv.Marshal(rows, w.file)
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, w.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", w.path, err)
	}

	w.writeHeader = false
	w.rows += count

	return nil
}

func (w *TextWriter) Finalize() error {
	return w.Close()
}

// Close closes the output file. It is safe to call more than once.
func (w *TextWriter) Close() error {
	if w.file == nil {
		return nil
	}

	file := w.file
	w.file = nil

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", w.path, err)
	}

	return nil
}

// Rows is the number of rows written so far.
func (w *TextWriter) Rows() int {
	return w.rows
}

func copyCarrier(dst *CarrierColumns, carrier *ssim.Carrier) error {
	if carrier == nil {
		return nil
	}
	return copier.Copy(dst, carrier)
}

func textRows(joined []table.JoinedRow) ([]*TextRow, error) {
	rows := make([]*TextRow, 0, len(joined))

	for _, j := range joined {
		row := &TextRow{FlightLeg: *j.Flight}

		if err := copyCarrier(&row.CarrierColumns, j.Carrier); err != nil {
			return nil, err
		}
		if j.Segment != nil {
			if err := copier.Copy(&row.SegmentColumns, j.Segment); err != nil {
				return nil, err
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func condensedTextRows(condensed []table.CondensedRow) ([]*CondensedTextRow, error) {
	rows := make([]*CondensedTextRow, 0, len(condensed))

	for _, c := range condensed {
		segments, err := table.SegmentsJSON(c.Segments)
		if err != nil {
			return nil, err
		}

		row := &CondensedTextRow{FlightLeg: *c.Flight, Segments: segments}
		if err := copyCarrier(&row.CarrierColumns, c.Carrier); err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}
