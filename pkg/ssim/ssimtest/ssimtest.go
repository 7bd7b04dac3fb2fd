package ssimtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Sample records, each exactly 200 bytes wide.
const (
	Header    = "1AIRLINE STANDARD SCHEDULE DATA SET                                                                                                                                                            001000001"
	Carrier   = "2UXX  0008S18 25MAR1827OCT1813OCT17                                    P                                                                                                                      1301000002"
	FlightLeg = "3 XX   120102P28MAR1803APR18 2      KEF05100510+0000  AMS08000800+0200  73HY                                                             XY   13                            Y189VV738H189         000003"
	Segment   = "4 XX   130101J              AB050AMSGRQKL 2562                                                                                                                                                    000006"
	Trailer   = "5 XX                                                                                                                                                                                       000011E000012"
)

// Set overwrites line with value starting at byte offset start.
func Set(line string, start int, value string) string {
	return line[:start] + value + line[start+len(value):]
}

func fixed(value string, width int) string {
	return fmt.Sprintf("%-*s", width, value)[:width]
}

// CarrierLine is Carrier with its airline designator replaced.
func CarrierLine(airline string) string {
	return Set(Carrier, 2, fixed(airline, 3))
}

// FlightLegLine is FlightLeg for the given airline, flight number and leg
// sequence number, departing from departure.
func FlightLegLine(airline, flightNumber, legSequence, departure string) string {
	line := Set(FlightLeg, 2, fixed(airline, 3))
	line = Set(line, 5, fmt.Sprintf("%4s", flightNumber))
	line = Set(line, 11, fixed(legSequence, 2))
	return Set(line, 36, fixed(departure, 3))
}

// SegmentLine is a segment that joins the leg built by FlightLegLine with the
// same airline, flight number and leg sequence number.
func SegmentLine(airline, flightNumber, legSequence, boardPoint, offPoint string) string {
	line := Set(Segment, 2, fixed(airline, 3))
	line = Set(line, 5, fmt.Sprintf("%4s", flightNumber))
	line = Set(line, 11, fixed(legSequence, 2))
	line = Set(line, 13, "P")
	line = Set(line, 33, fixed(boardPoint, 3))
	return Set(line, 36, fixed(offPoint, 3))
}

func TrailerLine(airline string) string {
	return Set(Trailer, 2, fixed(airline, 3))
}

// Serial sets the record serial number of line.
func Serial(line string, serial int) string {
	return Set(line, 194, fmt.Sprintf("%06d", serial))
}

// WriteFile writes lines joined by newlines to a file in dir and returns its path.
func WriteFile(t testing.TB, dir string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, "schedule.ssim")
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
	require.NoError(t, err)

	return path
}
