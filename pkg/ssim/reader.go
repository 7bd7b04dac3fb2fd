package ssim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/iter"
	"github.com/travigo/ssimconv/pkg/util"
)

const (
	DefaultBatchSize      = 10_000
	DefaultReadBufferSize = 8 * 1024
)

type ReaderOptions struct {
	// BatchSize is the number of pending leg and segment lines after which the
	// reader looks for a batch boundary.
	BatchSize      int
	ReadBufferSize int
	Filter         LegFilter
}

type Stats struct {
	Lines     int
	Carriers  int
	Flights   int
	Segments  int
	Malformed int
	Orphaned  int
	Filtered  int
	Batches   int
}

// Reader streams an SSIM file into a BatchProcessor one batch at a time.
type Reader struct {
	reader  *bufio.Reader
	options ReaderOptions

	line []byte

	peeked  []byte
	hasPeek bool

	carrier *Carrier

	flightLines  []string
	segmentLines []string

	// segmentOwners holds, per pending segment line, the index of the last
	// pending leg line before it, or -1.
	segmentOwners []int

	stats Stats
}

func NewReader(r io.Reader, options ReaderOptions) *Reader {
	if options.BatchSize <= 0 {
		options.BatchSize = DefaultBatchSize
	}
	if options.ReadBufferSize <= 0 {
		options.ReadBufferSize = DefaultReadBufferSize
	}

	return &Reader{
		reader:  bufio.NewReaderSize(r, options.ReadBufferSize),
		options: options,
		line:    make([]byte, 0, RecordLength+2),
	}
}

// Open opens path for reading. The caller closes the returned file.
func Open(path string, options ReaderOptions) (*Reader, *os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening ssim file: %w", err)
	}

	return NewReader(file, options), file, nil
}

func (r *Reader) Stats() Stats {
	return r.stats
}

// readLine reads the next line into the reused line buffer, without its line
// ending. The returned slice is only valid until the next read.
func (r *Reader) readLine() ([]byte, error) {
	r.line = r.line[:0]

	for {
		chunk, err := r.reader.ReadSlice('\n')
		r.line = append(r.line, chunk...)

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(r.line) == 0 {
				return nil, io.EOF
			}
			break
		}
		if err != nil {
			return nil, err
		}
		break
	}

	r.stats.Lines++

	line := r.line
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}

	return line, nil
}

func (r *Reader) next() ([]byte, error) {
	if r.hasPeek {
		r.hasPeek = false
		return r.peeked, nil
	}

	return r.readLine()
}

func (r *Reader) peek() ([]byte, error) {
	if r.hasPeek {
		return r.peeked, nil
	}

	line, err := r.readLine()
	if err != nil {
		return nil, err
	}

	r.peeked = append(r.peeked[:0], line...)
	r.hasPeek = true

	return r.peeked, nil
}

// continueBatch decides whether the pending lines may grow further. Below the
// batch size it always continues. At or above it, a following segment line
// keeps the batch open so a leg is never separated from its segments; a
// carrier, leg or trailer line or the end of input ends it. Lines of any other
// kind found while looking ahead are consumed.
func (r *Reader) continueBatch() (bool, error) {
	if len(r.flightLines)+len(r.segmentLines) < r.options.BatchSize {
		return true, nil
	}

	for {
		line, err := r.peek()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		if len(line) == 0 {
			r.hasPeek = false
			continue
		}

		switch RecordType(line[0]) {
		case RecordTypeSegment:
			return true, nil
		case RecordTypeCarrier, RecordTypeFlightLeg, RecordTypeTrailer:
			return false, nil
		default:
			r.hasPeek = false
		}
	}
}

// Process reads the whole input, handing every batch to processor.
func (r *Reader) Process(processor BatchProcessor) error {
	for {
		line, err := r.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading ssim line %d: %w", r.stats.Lines+1, err)
		}

		if len(line) == 0 {
			continue
		}

		switch RecordType(line[0]) {
		case RecordTypeCarrier:
			if err := r.startCarrier(string(line), processor); err != nil {
				return err
			}
			continue

		case RecordTypeFlightLeg:
			if r.carrier == nil {
				r.stats.Orphaned++
				continue
			}
			r.flightLines = append(r.flightLines, string(line))

		case RecordTypeSegment:
			if r.carrier == nil {
				r.stats.Orphaned++
				continue
			}
			r.segmentLines = append(r.segmentLines, string(line))
			r.segmentOwners = append(r.segmentOwners, len(r.flightLines)-1)

		case RecordTypeTrailer:
			if err := r.completeCarrier(processor); err != nil {
				return err
			}
			continue

		default:
			continue
		}

		more, err := r.continueBatch()
		if err != nil {
			return fmt.Errorf("reading ssim line %d: %w", r.stats.Lines+1, err)
		}
		if !more {
			if err := r.flush(processor); err != nil {
				return err
			}
		}
	}

	if err := r.flush(processor); err != nil {
		return err
	}

	return processor.Finalize()
}

// startCarrier makes line the active carrier. A carrier still active at this
// point never saw its trailer and is completed first.
func (r *Reader) startCarrier(line string, processor BatchProcessor) error {
	if r.carrier != nil {
		log.Warn().
			Str("airline", r.carrier.AirlineDesignator).
			Str("cdi", r.carrier.ControlDuplicateIndicator).
			Msg("Carrier header found before trailer, completing previous carrier")

		if err := r.completeCarrier(processor); err != nil {
			return err
		}
	}

	carrier, err := ParseCarrier(line)
	if err != nil {
		r.stats.Malformed++
		log.Debug().Err(err).Msg("Dropping malformed carrier line")
		return nil
	}

	r.carrier = carrier
	r.stats.Carriers++

	return nil
}

func (r *Reader) completeCarrier(processor BatchProcessor) error {
	if err := r.flush(processor); err != nil {
		return err
	}

	if r.carrier == nil {
		return nil
	}

	carrier := r.carrier
	r.carrier = nil

	if err := processor.OnCarrierComplete(carrier); err != nil {
		return fmt.Errorf("completing carrier %s: %w", carrier.AirlineDesignator, err)
	}

	return nil
}

func (r *Reader) flush(processor BatchProcessor) error {
	if len(r.flightLines) == 0 && len(r.segmentLines) == 0 {
		return nil
	}

	flights, segments := r.parseBatch()

	r.flightLines = r.flightLines[:0]
	r.segmentLines = r.segmentLines[:0]
	r.segmentOwners = r.segmentOwners[:0]

	if r.options.Filter != nil {
		r.stats.Filtered += applyFilter(r.options.Filter, &flights, &segments)
	}

	r.stats.Flights += len(flights)
	r.stats.Segments += len(segments)
	r.stats.Batches++

	if err := processor.ProcessBatch(flights, segments, r.carrier); err != nil {
		return fmt.Errorf("processing batch %d: %w", r.stats.Batches, err)
	}

	return nil
}

// parseBatch parses the pending leg and segment lines in parallel under the
// active carrier, then links every segment to its leg.
func (r *Reader) parseBatch() ([]*FlightLeg, []*Segment) {
	carrier := r.carrier

	var flights []*FlightLeg
	var segments []*Segment

	var wg conc.WaitGroup
	wg.Go(func() {
		flights = parseLines(r.flightLines, func(line string) (*FlightLeg, error) {
			return ParseFlightLeg(line, carrier)
		})
	})
	wg.Go(func() {
		segments = parseLines(r.segmentLines, func(line string) (*Segment, error) {
			return ParseSegment(line, carrier)
		})
	})
	wg.Wait()

	linkSegments(flights, segments, r.segmentOwners)

	r.stats.Malformed += dropMalformed(&flights) + dropMalformed(&segments)

	return flights, segments
}

// parseLines parses lines in parallel. The result lines up with lines, with
// nil in place of a malformed line.
func parseLines[T any](lines []string, parse func(string) (*T, error)) []*T {
	return iter.Map(lines, func(line *string) *T {
		record, err := parse(*line)
		if err != nil {
			log.Debug().Err(err).Msg("Dropping malformed line")
			return nil
		}

		return record
	})
}

// linkSegments points each segment at the nearest leg before it in the file
// that has the same key. owners[i] is the index of the last leg line read
// before segment i.
func linkSegments(flights []*FlightLeg, segments []*Segment, owners []int) {
	for i, segment := range segments {
		if segment == nil {
			continue
		}

		key := segment.Key()
		for j := owners[i]; j >= 0; j-- {
			if flights[j] != nil && flights[j].Key() == key {
				segment.Leg = flights[j]
				break
			}
		}
	}
}

func dropMalformed[T any](records *[]*T) int {
	before := len(*records)
	util.InPlaceFilter(records, func(record *T) bool {
		return record != nil
	})

	return before - len(*records)
}
