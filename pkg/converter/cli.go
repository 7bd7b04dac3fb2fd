package converter

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ssimconv/pkg/config"
	"github.com/travigo/ssimconv/pkg/ssim"
	"github.com/urfave/cli/v2"
)

func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "ssim-path",
			Aliases:  []string{"s"},
			Usage:    "Path to the SSIM file",
			Required: true,
		},
		&cli.IntFlag{
			Name:    "batch-size",
			Aliases: []string{"b"},
			Usage:   "Pending legs and segments before looking for a batch boundary",
		},
		&cli.IntFlag{
			Name:  "buffer-size",
			Usage: "Read buffer size in bytes",
		},
		&cli.BoolFlag{
			Name:  "condense",
			Usage: "One row per flight leg with its segments nested",
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: "Only keep flight legs matching this expression, e.g. 'DepartureStation == \"AMS\"'",
		},
	}
}

func optionsFromContext(c *cli.Context) Options {
	return Options{
		BatchSize:        c.Int("batch-size"),
		ReadBufferSize:   c.Int("buffer-size"),
		CondenseSegments: c.Bool("condense"),
		Filter:           c.String("filter"),
		Append:           c.Bool("append"),
	}
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert SSIM schedule files into tables and files",
		Subcommands: []*cli.Command{
			{
				Name:  "table",
				Usage: "Parse into a single joined table and print its shape",
				Flags: inputFlags(),
				Action: func(c *cli.Context) error {
					tbl, err := ParseToTable(c.String("ssim-path"), optionsFromContext(c))
					if err != nil {
						return err
					}
					defer tbl.Release()

					logTable(c.String("ssim-path"), tbl)
					return nil
				},
			},
			{
				Name:  "split",
				Usage: "Parse into carrier, flight leg and segment tables and print their heights",
				Flags: inputFlags(),
				Action: func(c *cli.Context) error {
					carriers, flights, segments, err := ParseToSplitTables(c.String("ssim-path"), optionsFromContext(c))
					if err != nil {
						return err
					}
					defer carriers.Release()
					defer flights.Release()
					defer segments.Release()

					logSplitTables(c.String("ssim-path"), carriers, flights, segments)
					return nil
				},
			},
			{
				Name:  "csv",
				Usage: "Write the joined rows to a CSV file",
				Flags: append(inputFlags(),
					&cli.StringFlag{
						Name:     "output-path",
						Aliases:  []string{"o"},
						Usage:    "CSV file to write",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "append",
						Usage: "Append to an existing file instead of replacing it",
					},
				),
				Action: func(c *cli.Context) error {
					return ExportToText(c.String("ssim-path"), c.String("output-path"), optionsFromContext(c))
				},
			},
			{
				Name:  "parquet",
				Usage: "Write one Parquet file per carrier",
				Flags: append(inputFlags(),
					&cli.StringFlag{
						Name:    "output-path",
						Aliases: []string{"o"},
						Usage:   "Directory to write the files into",
						Value:   ".",
					},
					&cli.StringFlag{
						Name:    "compression",
						Aliases: []string{"c"},
						Usage:   "uncompressed, snappy, gzip, lz4, zstd or brotli",
						Value:   "snappy",
					},
				),
				Action: func(c *cli.Context) error {
					return ExportToCompressedFiles(c.String("ssim-path"), c.String("output-path"), c.String("compression"), optionsFromContext(c))
				},
			},
			{
				Name:  "mongo",
				Usage: "Write flight legs to MongoDB",
				Flags: inputFlags(),
				Action: func(c *cli.Context) error {
					return ExportToMongo(c.String("ssim-path"), optionsFromContext(c))
				},
			},
			{
				Name:  "jobs",
				Usage: "Run the conversions listed in a YAML jobs file or directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Jobs file or directory of jobs files",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					jobs, err := config.LoadJobs(c.String("file"))
					if err != nil {
						return err
					}

					for _, job := range jobs {
						if err := RunJob(job); err != nil {
							return fmt.Errorf("job %s: %w", job.Name, err)
						}
					}

					return nil
				},
			},
			{
				Name:  "inspect",
				Usage: "Print the first parsed records of a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "ssim-path",
						Aliases:  []string{"s"},
						Usage:    "Path to the SSIM file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of records to print",
						Value: 10,
					},
				},
				Action: func(c *cli.Context) error {
					return Inspect(c.String("ssim-path"), c.Int("limit"))
				},
			},
		},
	}
}

// Inspect pretty prints the first limit carrier, leg and segment records.
func Inspect(path string, limit int) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	records, err := inspectRecords(file, limit)
	for _, record := range records {
		pretty.Println(record)
	}

	return err
}

func inspectRecords(r io.Reader, limit int) ([]ssim.Record, error) {
	var carrier *ssim.Carrier
	var records []ssim.Record

	scanner := bufio.NewScanner(r)
	for len(records) < limit && scanner.Scan() {
		line := scanner.Text()

		if len(line) > 0 && ssim.RecordType(line[0]) == ssim.RecordTypeTrailer {
			carrier = nil
			continue
		}

		record, err := ssim.Parse(line, carrier)
		if err != nil {
			log.Debug().Err(err).Msg("Skipping line")
			continue
		}

		if parsed, ok := record.(*ssim.Carrier); ok {
			carrier = parsed
		}

		records = append(records, record)
	}

	return records, scanner.Err()
}
