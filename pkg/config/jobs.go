package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable   Format = "table"
	FormatSplit   Format = "split"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatMongo   Format = "mongo"
)

var Formats = []Format{FormatTable, FormatSplit, FormatCSV, FormatParquet, FormatMongo}

var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrMissingInput  = errors.New("job has no input")
	ErrMissingOutput = errors.New("job has no output")
)

// Job is one conversion described in a jobs file.
type Job struct {
	Name        string  `yaml:"name"`
	Input       string  `yaml:"input"`
	Output      string  `yaml:"output"`
	Format      Format  `yaml:"format"`
	Compression string  `yaml:"compression"`
	Options     Options `yaml:"options"`
}

func (j *Job) Validate() error {
	if j.Input == "" {
		return fmt.Errorf("%s: %w", j.Name, ErrMissingInput)
	}

	if !slices.Contains(Formats, j.Format) {
		return fmt.Errorf("%s: %q: %w", j.Name, j.Format, ErrUnknownFormat)
	}

	if (j.Format == FormatCSV || j.Format == FormatParquet) && j.Output == "" {
		return fmt.Errorf("%s: %w", j.Name, ErrMissingOutput)
	}

	return nil
}

// ParseJobs decodes every YAML document in r as a Job.
func ParseJobs(r io.Reader) ([]Job, error) {
	var jobs []Job

	decoder := yaml.NewDecoder(r)
	for {
		var job Job
		err := decoder.Decode(&job)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding job %d: %w", len(jobs)+1, err)
		}

		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", len(jobs)+1)
		}
		if err := job.Validate(); err != nil {
			return nil, err
		}

		jobs = append(jobs, job)
	}

	return jobs, nil
}

// LoadJobs reads a jobs file, or every .yaml file below a directory in
// lexical order.
func LoadJobs(path string) ([]Job, error) {
	var files []string

	err := filepath.Walk(path,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() {
				return nil
			}

			extension := filepath.Ext(path)
			if extension != ".yaml" && extension != ".yml" {
				return nil
			}

			files = append(files, path)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading jobs: %w", err)
	}

	slices.Sort(files)

	var jobs []Job
	for _, file := range files {
		log.Debug().Str("path", file).Msg("Loading jobs file")

		content, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		fileJobs, err := ParseJobs(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}

		jobs = append(jobs, fileJobs...)
	}

	return jobs, nil
}
