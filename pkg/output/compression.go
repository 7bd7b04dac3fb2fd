package output

import (
	"strings"

	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

type codec struct {
	name        string
	compression compress.Compression
	suffix      string
}

var codecs = []codec{
	{"uncompressed", compress.Codecs.Uncompressed, ".parquet"},
	{"snappy", compress.Codecs.Snappy, ".snappy.parquet"},
	{"gzip", compress.Codecs.Gzip, ".parquet.gz"},
	{"lz4", compress.Codecs.Lz4Raw, ".lz4.parquet"},
	{"zstd", compress.Codecs.Zstd, ".zstd.parquet"},
	{"brotli", compress.Codecs.Brotli, ".brotli.parquet"},
}

// CompressionNames lists the accepted compression names.
func CompressionNames() []string {
	names := make([]string, 0, len(codecs))
	for _, c := range codecs {
		names = append(names, c.name)
	}
	return names
}

// lookupCodec matches name case-insensitively. Unknown names fall back to
// uncompressed output.
func lookupCodec(name string) codec {
	name = strings.TrimSpace(name)
	if name == "" {
		return codecs[0]
	}

	i := slices.IndexFunc(codecs, func(c codec) bool {
		return strings.EqualFold(c.name, name)
	})
	if i < 0 {
		log.Warn().Str("compression", name).Strs("supported", CompressionNames()).Msg("Unknown compression, writing uncompressed")
		return codecs[0]
	}

	return codecs[i]
}
