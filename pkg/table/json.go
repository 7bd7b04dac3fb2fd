package table

import (
	"encoding/json"

	"github.com/liip/sheriff"
	"github.com/travigo/ssimconv/pkg/ssim"
)

// SegmentsJSON renders a leg's segments as the condensed text cell: a JSON
// array holding only the segment-specific fields.
func SegmentsJSON(segments []*ssim.Segment) (string, error) {
	if len(segments) == 0 {
		return "", nil
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{Groups: []string{"condensed"}}, segments)
	if err != nil {
		return "", err
	}

	encoded, err := json.Marshal(reduced)
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}
