package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/travigo/ssimconv/pkg/ssim"
	"github.com/travigo/ssimconv/pkg/ssim/ssimtest"
)

func run(t *testing.T, processor ssim.BatchProcessor, lines ...string) {
	t.Helper()

	reader := ssim.NewReader(strings.NewReader(strings.Join(lines, "\n")+"\n"), ssim.ReaderOptions{BatchSize: 2})
	require.NoError(t, reader.Process(processor))
}

// twoCarriers has KL with two legs (the first with two segments) and AF with
// one leg and no segments.
var twoCarriers = []string{
	ssimtest.Header,
	ssimtest.CarrierLine("KL"),
	ssimtest.FlightLegLine("KL", "1000", "01", "AMS"),
	ssimtest.SegmentLine("KL", "1000", "01", "AMS", "GRQ"),
	ssimtest.SegmentLine("KL", "1000", "01", "AMS", "LHR"),
	ssimtest.FlightLegLine("KL", "1001", "01", "GRQ"),
	ssimtest.TrailerLine("KL"),
	ssimtest.CarrierLine("AF"),
	ssimtest.FlightLegLine("AF", "1", "01", "CDG"),
	ssimtest.TrailerLine("AF"),
}

func newLargeBatchReader(lines []string) *ssim.Reader {
	return ssim.NewReader(strings.NewReader(strings.Join(lines, "\n")+"\n"), ssim.ReaderOptions{})
}
