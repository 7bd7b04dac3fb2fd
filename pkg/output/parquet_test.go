package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	goparquet "github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/ssimconv/pkg/ssim/ssimtest"
)

func parquetRows(t *testing.T, path string) int64 {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	require.NoError(t, err)

	pf, err := goparquet.OpenFile(f, stat.Size())
	require.NoError(t, err)

	return pf.NumRows()
}

func TestCarrierParquetWriter(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewCarrierParquetWriter(dir, "zstd", false)
	require.NoError(t, err)
	run(t, writer, twoCarriers...)

	require.Equal(t, []string{
		filepath.Join(dir, "ssim_KL_.zstd.parquet"),
		filepath.Join(dir, "ssim_AF_.zstd.parquet"),
	}, writer.Files())

	assert.EqualValues(t, 3, parquetRows(t, writer.Files()[0]))
	assert.EqualValues(t, 1, parquetRows(t, writer.Files()[1]))

	pf, err := file.OpenParquetFile(writer.Files()[0], false)
	require.NoError(t, err)
	defer pf.Close()

	column, err := pf.MetaData().RowGroup(0).ColumnChunk(0)
	require.NoError(t, err)
	assert.Equal(t, compress.Codecs.Zstd, column.Compression())
}

func TestCarrierParquetWriterFileNames(t *testing.T) {
	for _, tc := range []struct {
		compression string
		expected    string
	}{
		{"", "ssim_KL_.parquet"},
		{"uncompressed", "ssim_KL_.parquet"},
		{"SNAPPY", "ssim_KL_.snappy.parquet"},
		{"gzip", "ssim_KL_.parquet.gz"},
		{"lz4", "ssim_KL_.lz4.parquet"},
		{"brotli", "ssim_KL_.brotli.parquet"},
		{"rar", "ssim_KL_.parquet"},
	} {
		t.Run(tc.compression, func(t *testing.T) {
			dir := t.TempDir()

			writer, err := NewCarrierParquetWriter(dir, tc.compression, false)
			require.NoError(t, err)
			run(t, writer,
				ssimtest.CarrierLine("KL"),
				ssimtest.FlightLegLine("KL", "1000", "01", "AMS"),
				ssimtest.TrailerLine("KL"),
			)

			require.Len(t, writer.Files(), 1)
			assert.Equal(t, tc.expected, filepath.Base(writer.Files()[0]))
			assert.FileExists(t, writer.Files()[0])
		})
	}
}

func TestCarrierParquetWriterControlDuplicate(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewCarrierParquetWriter(dir, "snappy", true)
	require.NoError(t, err)
	run(t, writer,
		ssimtest.Set(ssimtest.CarrierLine("KL"), 107, "2"),
		ssimtest.FlightLegLine("KL", "1000", "01", "AMS"),
		ssimtest.SegmentLine("KL", "1000", "01", "AMS", "GRQ"),
		ssimtest.SegmentLine("KL", "1000", "01", "AMS", "LHR"),
		ssimtest.TrailerLine("KL"),
	)

	require.Len(t, writer.Files(), 1)
	assert.Equal(t, "ssim_KL_2.snappy.parquet", filepath.Base(writer.Files()[0]))
	assert.EqualValues(t, 1, parquetRows(t, writer.Files()[0]))
}

func TestCarrierParquetWriterRepeatedCarrier(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewCarrierParquetWriter(dir, "uncompressed", false)
	require.NoError(t, err)
	run(t, writer,
		ssimtest.CarrierLine("KL"),
		ssimtest.FlightLegLine("KL", "1000", "01", "AMS"),
		ssimtest.TrailerLine("KL"),
		ssimtest.CarrierLine("KL"),
		ssimtest.FlightLegLine("KL", "1001", "01", "AMS"),
		ssimtest.FlightLegLine("KL", "1002", "01", "AMS"),
		ssimtest.TrailerLine("KL"),
	)

	require.Len(t, writer.Files(), 2)
	assert.Equal(t, "ssim_KL_.parquet", filepath.Base(writer.Files()[0]))
	assert.Equal(t, "ssim_KL_-2.parquet", filepath.Base(writer.Files()[1]))
	assert.EqualValues(t, 1, parquetRows(t, writer.Files()[0]))
	assert.EqualValues(t, 2, parquetRows(t, writer.Files()[1]))
}

func TestCarrierParquetWriterWithoutTrailer(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewCarrierParquetWriter(dir, "", false)
	require.NoError(t, err)
	run(t, writer,
		ssimtest.CarrierLine("KL"),
		ssimtest.FlightLegLine("KL", "1000", "01", "AMS"),
	)

	require.Len(t, writer.Files(), 1)
	assert.EqualValues(t, 1, parquetRows(t, writer.Files()[0]))
}

func TestCarrierParquetWriterDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := NewCarrierParquetWriter(filepath.Join(dir, "out.parquet"), "", false)
	assert.ErrorIs(t, err, ErrOutputNotDirectory)

	existing := filepath.Join(dir, "existing")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))
	_, err = NewCarrierParquetWriter(existing, "", false)
	assert.ErrorIs(t, err, ErrOutputNotDirectory)

	missing := filepath.Join(dir, "a", "b")
	_, err = NewCarrierParquetWriter(missing, "", false)
	require.NoError(t, err)
	assert.DirExists(t, missing)
}
