package output

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/travigo/ssimconv/pkg/ssim"
	"github.com/travigo/ssimconv/pkg/table"
)

// SplitTables keeps carriers, legs and segments as three separate tables.
// Carriers are deduplicated on their key, keeping the first occurrence.
type SplitTables struct {
	carriers     []*ssim.Carrier
	seenCarriers map[ssim.CarrierKey]struct{}

	flightBatches  []arrow.RecordBatch
	segmentBatches []arrow.RecordBatch

	carrierTable arrow.Table
	flightTable  arrow.Table
	segmentTable arrow.Table
}

func NewSplitTables() *SplitTables {
	return &SplitTables{seenCarriers: map[ssim.CarrierKey]struct{}{}}
}

func (s *SplitTables) ProcessBatch(flights []*ssim.FlightLeg, segments []*ssim.Segment, carrier *ssim.Carrier) error {
	s.addCarrier(carrier)

	flightBatch, err := table.BuildFlights(flights)
	if err != nil {
		return err
	}
	s.flightBatches = append(s.flightBatches, flightBatch)

	segmentBatch, err := table.BuildSegments(segments)
	if err != nil {
		return err
	}
	s.segmentBatches = append(s.segmentBatches, segmentBatch)

	return nil
}

// OnCarrierComplete records carriers whose section held no legs.
func (s *SplitTables) OnCarrierComplete(carrier *ssim.Carrier) error {
	s.addCarrier(carrier)
	return nil
}

func (s *SplitTables) addCarrier(carrier *ssim.Carrier) {
	if carrier == nil {
		return
	}
	if _, seen := s.seenCarriers[carrier.Key()]; seen {
		return
	}

	s.seenCarriers[carrier.Key()] = struct{}{}
	s.carriers = append(s.carriers, carrier)
}

func (s *SplitTables) Finalize() error {
	carrierBatch, err := table.BuildCarriers(s.carriers)
	if err != nil {
		return err
	}
	defer carrierBatch.Release()

	s.carrierTable = table.Concat(table.CarrierSchema, []arrow.RecordBatch{carrierBatch})
	s.flightTable = table.Concat(table.FlightSchema, s.flightBatches)
	s.segmentTable = table.Concat(table.SegmentSchema, s.segmentBatches)

	releaseAll(s.flightBatches)
	releaseAll(s.segmentBatches)
	s.flightBatches, s.segmentBatches = nil, nil

	return nil
}

// Tables returns the carrier, flight leg and segment tables after Finalize.
func (s *SplitTables) Tables() (carriers, flights, segments arrow.Table) {
	return s.carrierTable, s.flightTable, s.segmentTable
}
