package config

import "github.com/travigo/ssimconv/pkg/util"

// Options tune a single conversion. Zero values mean defaults.
type Options struct {
	BatchSize        int    `yaml:"batch_size"`
	ReadBufferSize   int    `yaml:"read_buffer_size"`
	CondenseSegments bool   `yaml:"condense_segments"`
	Filter           string `yaml:"filter"`
	Append           bool   `yaml:"append"`
}

// WithEnvironment fills unset sizes from SSIM_BATCH_SIZE and
// SSIM_READ_BUFFER_SIZE.
func (o Options) WithEnvironment(env map[string]string) Options {
	if o.BatchSize == 0 {
		o.BatchSize = util.GetEnvironmentInt(env, "SSIM_BATCH_SIZE", 0)
	}
	if o.ReadBufferSize == 0 {
		o.ReadBufferSize = util.GetEnvironmentInt(env, "SSIM_READ_BUFFER_SIZE", 0)
	}

	return o
}
