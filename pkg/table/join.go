package table

import "github.com/travigo/ssimconv/pkg/ssim"

// JoinedRow is one row of the joined view. Carrier is nil when the leg's
// airline differs from the carrier section it was read under; Segment is nil
// for a leg without segments.
type JoinedRow struct {
	Carrier *ssim.Carrier
	Flight  *ssim.FlightLeg
	Segment *ssim.Segment
}

// CondensedRow is one row per leg with its segments nested in source order.
type CondensedRow struct {
	Carrier  *ssim.Carrier
	Flight   *ssim.FlightLeg
	Segments []*ssim.Segment
}

// groupSegments groups segments under the leg they were read after.
// Segments without a leg are left out.
func groupSegments(segments []*ssim.Segment) map[*ssim.FlightLeg][]*ssim.Segment {
	grouped := make(map[*ssim.FlightLeg][]*ssim.Segment, len(segments))
	for _, segment := range segments {
		if segment.Leg == nil {
			continue
		}
		grouped[segment.Leg] = append(grouped[segment.Leg], segment)
	}

	return grouped
}

func carrierFor(carrier *ssim.Carrier, flight *ssim.FlightLeg) *ssim.Carrier {
	if carrier == nil || carrier.AirlineDesignator != flight.AirlineDesignator ||
		carrier.ControlDuplicateIndicator != flight.ControlDuplicateIndicator {
		return nil
	}

	return carrier
}

// Join left joins the batch's legs with the carrier and with their segments.
// A leg with k segments produces k rows, a leg with none produces one.
func Join(carrier *ssim.Carrier, flights []*ssim.FlightLeg, segments []*ssim.Segment) []JoinedRow {
	grouped := groupSegments(segments)
	rows := make([]JoinedRow, 0, max(len(flights), len(segments)))

	for _, flight := range flights {
		legCarrier := carrierFor(carrier, flight)

		matched := grouped[flight]
		if len(matched) == 0 {
			rows = append(rows, JoinedRow{Carrier: legCarrier, Flight: flight})
			continue
		}

		for _, segment := range matched {
			rows = append(rows, JoinedRow{Carrier: legCarrier, Flight: flight, Segment: segment})
		}
	}

	return rows
}

func Condense(carrier *ssim.Carrier, flights []*ssim.FlightLeg, segments []*ssim.Segment) []CondensedRow {
	grouped := groupSegments(segments)
	rows := make([]CondensedRow, 0, len(flights))

	for _, flight := range flights {
		rows = append(rows, CondensedRow{
			Carrier:  carrierFor(carrier, flight),
			Flight:   flight,
			Segments: grouped[flight],
		})
	}

	return rows
}
