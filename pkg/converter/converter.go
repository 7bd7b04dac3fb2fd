package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ssimconv/pkg/config"
	"github.com/travigo/ssimconv/pkg/database"
	"github.com/travigo/ssimconv/pkg/output"
	"github.com/travigo/ssimconv/pkg/ssim"
	"github.com/travigo/ssimconv/pkg/util"
)

type Options = config.Options

var ErrUnsupportedFileType = errors.New("unsupported file type")

func readerOptions(options Options) (ssim.ReaderOptions, error) {
	options = options.WithEnvironment(util.GetEnvironmentVariables())

	readerOptions := ssim.ReaderOptions{
		BatchSize:      options.BatchSize,
		ReadBufferSize: options.ReadBufferSize,
	}

	if options.Filter != "" {
		filter, err := ssim.CompileFilter(options.Filter)
		if err != nil {
			return ssim.ReaderOptions{}, err
		}
		readerOptions.Filter = filter
	}

	return readerOptions, nil
}

// run streams the file at path through processor.
func run(path string, readerOptions ssim.ReaderOptions, processor ssim.BatchProcessor) error {
	startTime := time.Now()

	reader, file, err := ssim.Open(path, readerOptions)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := reader.Process(processor); err != nil {
		return fmt.Errorf("processing %s: %w", path, err)
	}

	stats := reader.Stats()
	log.Info().
		Str("file", path).
		Int("lines", stats.Lines).
		Int("carriers", stats.Carriers).
		Int("flights", stats.Flights).
		Int("segments", stats.Segments).
		Int("batches", stats.Batches).
		Int("malformed", stats.Malformed).
		Int("orphaned", stats.Orphaned).
		Int("filtered", stats.Filtered).
		Str("length", time.Since(startTime).String()).
		Msg("Processed SSIM file")

	return nil
}

// ParseToTable reads the whole file into one joined (or condensed) table.
func ParseToTable(path string, options Options) (arrow.Table, error) {
	readerOptions, err := readerOptions(options)
	if err != nil {
		return nil, err
	}

	combined := output.NewCombinedTable(options.CondenseSegments)
	if err := run(path, readerOptions, combined); err != nil {
		return nil, err
	}

	return combined.Table(), nil
}

// ParseToSplitTables reads the file into separate carrier, flight leg and
// segment tables.
func ParseToSplitTables(path string, options Options) (carriers, flights, segments arrow.Table, err error) {
	readerOptions, err := readerOptions(options)
	if err != nil {
		return nil, nil, nil, err
	}

	split := output.NewSplitTables()
	if err := run(path, readerOptions, split); err != nil {
		return nil, nil, nil, err
	}

	carriers, flights, segments = split.Tables()
	return carriers, flights, segments, nil
}

// ExportToText writes the joined rows as CSV to outputPath.
func ExportToText(path, outputPath string, options Options) error {
	readerOptions, err := readerOptions(options)
	if err != nil {
		return err
	}

	writer, err := output.NewTextWriter(outputPath, output.TextOptions{
		Condense: options.CondenseSegments,
		Append:   options.Append,
	})
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := run(path, readerOptions, writer); err != nil {
		return err
	}

	log.Info().Str("output", outputPath).Int("rows", writer.Rows()).Msg("Written text file")
	return nil
}

// ExportToCompressedFiles writes one Parquet file per carrier into outputDir.
func ExportToCompressedFiles(path, outputDir, compression string, options Options) error {
	readerOptions, err := readerOptions(options)
	if err != nil {
		return err
	}

	writer, err := output.NewCarrierParquetWriter(outputDir, compression, options.CondenseSegments)
	if err != nil {
		return err
	}

	return run(path, readerOptions, writer)
}

// ExportToMongo writes one document per flight leg to MongoDB.
func ExportToMongo(path string, options Options) error {
	readerOptions, err := readerOptions(options)
	if err != nil {
		return err
	}

	if err := database.ConnectMongoDB(); err != nil {
		return err
	}
	defer database.Disconnect()

	writer := output.NewMongoWriter(
		database.GetCollection(database.FlightsCollection),
		database.GetCollection(database.CarriersCollection),
		filepath.Base(path),
	)

	return run(path, readerOptions, writer)
}

// ExportToFile dispatches on fileType: "csv" writes a text file, "parquet"
// writes per-carrier Parquet files into output.
func ExportToFile(path, outputPath, fileType, compression string, options Options) error {
	switch config.Format(strings.ToLower(fileType)) {
	case config.FormatCSV:
		return ExportToText(path, outputPath, options)
	case config.FormatParquet:
		return ExportToCompressedFiles(path, outputPath, compression, options)
	default:
		return fmt.Errorf("%q: %w", fileType, ErrUnsupportedFileType)
	}
}

// RunJob runs one conversion described in a jobs file.
func RunJob(job config.Job) error {
	log.Info().Str("job", job.Name).Str("input", job.Input).Str("format", string(job.Format)).Msg("Running job")

	switch job.Format {
	case config.FormatTable:
		tbl, err := ParseToTable(job.Input, job.Options)
		if err != nil {
			return err
		}
		logTable(job.Name, tbl)
		tbl.Release()
	case config.FormatSplit:
		carriers, flights, segments, err := ParseToSplitTables(job.Input, job.Options)
		if err != nil {
			return err
		}
		logSplitTables(job.Name, carriers, flights, segments)
		carriers.Release()
		flights.Release()
		segments.Release()
	case config.FormatMongo:
		return ExportToMongo(job.Input, job.Options)
	default:
		return ExportToFile(job.Input, job.Output, string(job.Format), job.Compression, job.Options)
	}

	return nil
}

func logTable(name string, tbl arrow.Table) {
	log.Info().
		Str("name", name).
		Int64("rows", tbl.NumRows()).
		Int64("columns", tbl.NumCols()).
		Msg("Built table")
}

func logSplitTables(name string, carriers, flights, segments arrow.Table) {
	log.Info().
		Str("name", name).
		Int64("carriers", carriers.NumRows()).
		Int64("flights", flights.NumRows()).
		Int64("segments", segments.NumRows()).
		Msg("Built split tables")
}
