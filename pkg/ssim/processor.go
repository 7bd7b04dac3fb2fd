package ssim

// BatchProcessor receives the records of a file in carrier-section order.
//
// ProcessBatch is called with the legs and segments parsed from one flush,
// always under the carrier that was active when the lines were read.
// OnCarrierComplete is called once a carrier section has ended, after its
// last batch. Finalize is called exactly once at the end of the input.
type BatchProcessor interface {
	ProcessBatch(flights []*FlightLeg, segments []*Segment, carrier *Carrier) error
	OnCarrierComplete(carrier *Carrier) error
	Finalize() error
}
