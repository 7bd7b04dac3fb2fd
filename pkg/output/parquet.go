package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ssimconv/pkg/ssim"
	"github.com/travigo/ssimconv/pkg/table"
)

// CarrierParquetWriter writes one Parquet file per carrier section. Only the
// batches of the active carrier are held in memory.
type CarrierParquetWriter struct {
	dir      string
	codec    codec
	condense bool

	carrier *ssim.Carrier
	batches []arrow.RecordBatch

	sections map[ssim.CarrierKey]int
	files    []string
}

func NewCarrierParquetWriter(dir string, compression string, condense bool) (*CarrierParquetWriter, error) {
	if dir == "" {
		dir = "."
	}

	if err := prepareDirectory(dir); err != nil {
		return nil, err
	}

	return &CarrierParquetWriter{
		dir:      dir,
		codec:    lookupCodec(compression),
		condense: condense,
		sections: map[ssim.CarrierKey]int{},
	}, nil
}

// prepareDirectory accepts an existing directory, or creates a missing path
// that has no file extension.
func prepareDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s: %w", dir, ErrOutputNotDirectory)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if filepath.Ext(dir) != "" {
		return fmt.Errorf("%s looks like a file name: %w", dir, ErrOutputNotDirectory)
	}

	return os.MkdirAll(dir, 0o755)
}

func (w *CarrierParquetWriter) schema() *arrow.Schema {
	if w.condense {
		return table.CondensedSchema
	}
	return table.JoinedSchema
}

func (w *CarrierParquetWriter) ProcessBatch(flights []*ssim.FlightLeg, segments []*ssim.Segment, carrier *ssim.Carrier) error {
	var rec arrow.RecordBatch
	var err error

	if w.condense {
		rec, err = table.BuildCondensed(table.Condense(carrier, flights, segments))
	} else {
		rec, err = table.BuildJoined(table.Join(carrier, flights, segments))
	}
	if err != nil {
		return err
	}

	w.carrier = carrier
	w.batches = append(w.batches, rec)

	return nil
}

func (w *CarrierParquetWriter) OnCarrierComplete(carrier *ssim.Carrier) error {
	if w.carrier == nil {
		w.carrier = carrier
	}

	return w.flush()
}

// Finalize writes the batches of a carrier section that had no trailer.
func (w *CarrierParquetWriter) Finalize() error {
	return w.flush()
}

// Files lists the written files in order.
func (w *CarrierParquetWriter) Files() []string {
	return w.files
}

func (w *CarrierParquetWriter) fileName(carrier *ssim.Carrier) string {
	airline := strings.TrimSpace(carrier.AirlineDesignator)
	control := strings.TrimSpace(carrier.ControlDuplicateIndicator)

	name := fmt.Sprintf("ssim_%s_%s", airline, control)

	key := carrier.Key()
	w.sections[key]++
	if section := w.sections[key]; section > 1 {
		name = fmt.Sprintf("%s-%d", name, section)
	}

	return name + w.codec.suffix
}

func (w *CarrierParquetWriter) flush() error {
	defer func() {
		releaseAll(w.batches)
		w.batches = nil
		w.carrier = nil
	}()

	if len(w.batches) == 0 || w.carrier == nil {
		return nil
	}

	path := filepath.Join(w.dir, w.fileName(w.carrier))
	if err := writeParquet(path, w.schema(), w.codec, w.batches); err != nil {
		return err
	}

	var rows int64
	for _, batch := range w.batches {
		rows += batch.NumRows()
	}

	log.Info().
		Str("file", path).
		Str("airline", w.carrier.AirlineDesignator).
		Int64("rows", rows).
		Msg("Written carrier file")

	w.files = append(w.files, path)

	return nil
}

func writeParquet(path string, schema *arrow.Schema, codec codec, batches []arrow.RecordBatch) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	writerProps := parquet.NewWriterProperties(
		parquet.WithCompression(codec.compression),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(
		pqarrow.WithStoreSchema(),
	)

	writer, err := pqarrow.NewFileWriter(schema, file, writerProps, arrowProps)
	if err != nil {
		file.Close()
		return fmt.Errorf("creating parquet writer for %s: %w", path, err)
	}

	for _, batch := range batches {
		if err := writer.Write(batch); err != nil {
			writer.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	// closes the underlying file too
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	return nil
}
