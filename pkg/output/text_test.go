package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/ssimconv/pkg/ssim/ssimtest"
)

func TestTextWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schedule.csv")

	writer, err := NewTextWriter(path, TextOptions{})
	require.NoError(t, err)
	run(t, writer, twoCarriers...)

	assert.Equal(t, 4, writer.Rows())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var rows []*TextRow
	require.NoError(t, gocsv.UnmarshalFile(file, &rows))
	require.Len(t, rows, 4)

	assert.Equal(t, "KL ", rows[0].AirlineDesignator)
	assert.Equal(t, "U", rows[0].TimeMode)
	assert.Equal(t, "GRQ", rows[0].OffPoint)
	assert.Equal(t, "LHR", rows[1].OffPoint)
	assert.Equal(t, "", rows[2].OffPoint)
	assert.Equal(t, "AF ", rows[3].AirlineDesignator)
}

func TestTextWriterHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")

	writer, err := NewTextWriter(path, TextOptions{})
	require.NoError(t, err)
	run(t, writer, twoCarriers...)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 5)

	header := strings.Split(lines[0], ",")
	assert.Equal(t, "flight_designator", header[0])
	assert.Equal(t, "data", header[len(header)-1])
	assert.NotContains(t, header, "record_serial_number")
	assert.Equal(t, 1, strings.Count(string(content), "flight_designator"))
}

func TestTextWriterAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")

	for i := 0; i < 2; i++ {
		writer, err := NewTextWriter(path, TextOptions{Append: true})
		require.NoError(t, err)
		run(t, writer, twoCarriers...)
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 9)
	assert.Equal(t, 1, strings.Count(string(content), "flight_designator"))
}

func TestTextWriterTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	writer, err := NewTextWriter(path, TextOptions{})
	require.NoError(t, err)
	run(t, writer, twoCarriers...)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale")
}

func TestTextWriterCondensed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")

	writer, err := NewTextWriter(path, TextOptions{Condense: true})
	require.NoError(t, err)
	run(t, writer, twoCarriers...)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var rows []*CondensedTextRow
	require.NoError(t, gocsv.UnmarshalFile(file, &rows))
	require.Len(t, rows, 3)

	var segments []map[string]string
	require.NoError(t, json.Unmarshal([]byte(rows[0].Segments), &segments))
	require.Len(t, segments, 2)
	assert.Equal(t, "GRQ", segments[0]["off_point"])
	assert.Equal(t, "LHR", segments[1]["off_point"])

	assert.Equal(t, "", rows[1].Segments)
	assert.Equal(t, ssimtest.Carrier[1:2], rows[2].TimeMode)
}

func TestTextWriterCloseTwice(t *testing.T) {
	writer, err := NewTextWriter(filepath.Join(t.TempDir(), "schedule.csv"), TextOptions{})
	require.NoError(t, err)

	require.NoError(t, writer.Close())
	assert.NoError(t, writer.Close())
	assert.NoError(t, writer.Finalize())
}
