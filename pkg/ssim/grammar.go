package ssim

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrLineTooShort      = errors.New("line too short")
	ErrNoActiveCarrier   = errors.New("no active carrier")
	ErrUnsupportedRecord = errors.New("unsupported record type")
	errEmptyLine         = errors.New("empty line")
)

// RecordLength is the width of every SSIM record; the serial number occupies
// the last six bytes.
const RecordLength = 200

type trim uint8

const (
	verbatim trim = iota
	trimmed
	trimmedLeft
)

// span is a half-open byte range of a record line.
type span struct {
	start, end int
	mode       trim
}

// of returns the field as a substring of line. Trimming also yields a
// substring, so no field value is copied.
func (s span) of(line string) string {
	value := line[s.start:s.end]

	switch s.mode {
	case trimmed:
		return strings.TrimSpace(value)
	case trimmedLeft:
		return strings.TrimLeftFunc(value, unicode.IsSpace)
	}

	return value
}

var carrierLayout = struct {
	recordType, timeMode, airlineDesignator, season, validityFrom, validityTo,
	creationDate, titleOfData, releaseDate, scheduleStatus, controlDuplicateIndicator,
	generalInformation, inFlightServiceInformation, electronicTicketingInformation,
	creationTime, recordSerialNumber span
}{
	recordType:                     span{0, 1, verbatim},
	timeMode:                       span{1, 2, verbatim},
	airlineDesignator:              span{2, 5, verbatim},
	season:                         span{10, 13, verbatim},
	validityFrom:                   span{14, 21, verbatim},
	validityTo:                     span{21, 28, verbatim},
	creationDate:                   span{28, 35, verbatim},
	titleOfData:                    span{35, 64, trimmed},
	releaseDate:                    span{64, 71, verbatim},
	scheduleStatus:                 span{71, 72, verbatim},
	controlDuplicateIndicator:      span{107, 108, verbatim},
	generalInformation:             span{108, 169, trimmed},
	inFlightServiceInformation:     span{169, 188, trimmedLeft},
	electronicTicketingInformation: span{188, 190, verbatim},
	creationTime:                   span{190, 194, verbatim},
	recordSerialNumber:             span{194, 200, verbatim},
}

var flightLegLayout = struct {
	recordType, operationalSuffix, airlineDesignator, flightNumber,
	itineraryVariationIdentifier, legSequenceNumber, serviceType,
	periodOfOperationFrom, periodOfOperationTo, daysOfOperation, frequencyRate,
	departureStation, passengerDeparture, aircraftDeparture, timeVariationDeparture,
	passengerTerminalDeparture, arrivalStation, aircraftArrival, passengerArrival,
	timeVariationArrival, passengerTerminalArrival, aircraftType, bookingDesignator,
	bookingModifier, mealServiceNote, jointOperationAirlineDesignators,
	mctStatusDeparture, mctStatusArrival, secureFlightIndicator,
	itineraryVariationIdentifierOverflow, aircraftOwner, cockpitCrewEmployer,
	cabinCrewEmployer, onwardFlight, airlineDesignator2, flightNumber2,
	aircraftRotationLayover, operationalSuffix2, flightTransitLayover,
	operatingAirlineDisclosure, trafficRestrictionCode, trafficRestrictionOverflow,
	aircraftConfiguration, dateVariation, recordSerialNumber span
}{
	recordType:                           span{0, 1, verbatim},
	operationalSuffix:                    span{1, 2, verbatim},
	airlineDesignator:                    span{2, 5, verbatim},
	flightNumber:                         span{5, 9, verbatim},
	itineraryVariationIdentifier:         span{9, 11, verbatim},
	legSequenceNumber:                    span{11, 13, verbatim},
	serviceType:                          span{13, 14, verbatim},
	periodOfOperationFrom:                span{14, 21, verbatim},
	periodOfOperationTo:                  span{21, 28, verbatim},
	daysOfOperation:                      span{28, 35, verbatim},
	frequencyRate:                        span{35, 36, verbatim},
	departureStation:                     span{36, 39, verbatim},
	passengerDeparture:                   span{39, 43, verbatim},
	aircraftDeparture:                    span{43, 47, verbatim},
	timeVariationDeparture:               span{47, 52, verbatim},
	passengerTerminalDeparture:           span{52, 54, verbatim},
	arrivalStation:                       span{54, 57, verbatim},
	aircraftArrival:                      span{57, 61, verbatim},
	passengerArrival:                     span{61, 65, verbatim},
	timeVariationArrival:                 span{65, 70, verbatim},
	passengerTerminalArrival:             span{70, 72, verbatim},
	aircraftType:                         span{72, 75, verbatim},
	bookingDesignator:                    span{75, 95, trimmed},
	bookingModifier:                      span{95, 100, verbatim},
	mealServiceNote:                      span{100, 110, verbatim},
	jointOperationAirlineDesignators:     span{110, 119, verbatim},
	mctStatusDeparture:                   span{119, 120, verbatim},
	mctStatusArrival:                     span{120, 121, verbatim},
	secureFlightIndicator:                span{121, 122, verbatim},
	itineraryVariationIdentifierOverflow: span{127, 128, verbatim},
	aircraftOwner:                        span{128, 131, trimmed},
	cockpitCrewEmployer:                  span{131, 134, trimmed},
	cabinCrewEmployer:                    span{134, 137, trimmed},
	onwardFlight:                         span{137, 146, trimmed},
	airlineDesignator2:                   span{137, 140, verbatim},
	flightNumber2:                        span{140, 144, verbatim},
	aircraftRotationLayover:              span{144, 145, verbatim},
	operationalSuffix2:                   span{145, 146, verbatim},
	flightTransitLayover:                 span{147, 148, verbatim},
	operatingAirlineDisclosure:           span{148, 149, verbatim},
	trafficRestrictionCode:               span{149, 160, verbatim},
	trafficRestrictionOverflow:           span{160, 161, verbatim},
	aircraftConfiguration:                span{172, 192, verbatim},
	dateVariation:                        span{192, 194, verbatim},
	recordSerialNumber:                   span{194, 200, verbatim},
}

var segmentLayout = struct {
	recordType, operationalSuffix, airlineDesignator, flightNumber,
	itineraryVariationIdentifier, legSequenceNumber, serviceType,
	itineraryVariationIdentifierOverflow, boardPointIndicator, offPointIndicator,
	dataElementIdentifier, boardPoint, offPoint, data, recordSerialNumber span
}{
	recordType:                           span{0, 1, verbatim},
	operationalSuffix:                    span{1, 2, verbatim},
	airlineDesignator:                    span{2, 5, verbatim},
	flightNumber:                         span{5, 9, verbatim},
	itineraryVariationIdentifier:         span{9, 11, verbatim},
	legSequenceNumber:                    span{11, 13, verbatim},
	serviceType:                          span{13, 14, verbatim},
	itineraryVariationIdentifierOverflow: span{27, 28, verbatim},
	boardPointIndicator:                  span{28, 29, verbatim},
	offPointIndicator:                    span{29, 30, verbatim},
	dataElementIdentifier:                span{30, 33, verbatim},
	boardPoint:                           span{33, 36, verbatim},
	offPoint:                             span{36, 39, verbatim},
	data:                                 span{39, 194, trimmed},
	recordSerialNumber:                   span{194, 200, verbatim},
}

func checkLength(line string, recordType RecordType) error {
	if len(line) < RecordLength {
		return fmt.Errorf("%s record of %d bytes: %w", recordType, len(line), ErrLineTooShort)
	}

	return nil
}

// flightDesignator is the only field value that does not share memory with the
// source line.
func flightDesignator(airline, controlDuplicate, flightNumber, operationalSuffix, variation, serviceType, variationOverflow string) string {
	return strings.Join([]string{
		airline,
		controlDuplicate,
		flightNumber,
		operationalSuffix,
		variation,
		serviceType,
		variationOverflow,
	}, " ")
}

func ParseCarrier(line string) (*Carrier, error) {
	if err := checkLength(line, RecordTypeCarrier); err != nil {
		return nil, err
	}

	l := &carrierLayout

	return &Carrier{
		AirlineDesignator:              l.airlineDesignator.of(line),
		ControlDuplicateIndicator:      l.controlDuplicateIndicator.of(line),
		TimeMode:                       l.timeMode.of(line),
		Season:                         l.season.of(line),
		PeriodOfScheduleValidityFrom:   l.validityFrom.of(line),
		PeriodOfScheduleValidityTo:     l.validityTo.of(line),
		CreationDate:                   l.creationDate.of(line),
		TitleOfData:                    l.titleOfData.of(line),
		ReleaseDate:                    l.releaseDate.of(line),
		ScheduleStatus:                 l.scheduleStatus.of(line),
		GeneralInformation:             l.generalInformation.of(line),
		InFlightServiceInformation:     l.inFlightServiceInformation.of(line),
		ElectronicTicketingInformation: l.electronicTicketingInformation.of(line),
		CreationTime:                   l.creationTime.of(line),
		RecordType:                     l.recordType.of(line),
		RecordSerialNumber:             l.recordSerialNumber.of(line),
	}, nil
}

func ParseFlightLeg(line string, carrier *Carrier) (*FlightLeg, error) {
	if carrier == nil {
		return nil, ErrNoActiveCarrier
	}
	if err := checkLength(line, RecordTypeFlightLeg); err != nil {
		return nil, err
	}

	l := &flightLegLayout

	leg := &FlightLeg{
		OperationalSuffix:                          l.operationalSuffix.of(line),
		AirlineDesignator:                          l.airlineDesignator.of(line),
		ControlDuplicateIndicator:                  carrier.ControlDuplicateIndicator,
		FlightNumber:                               l.flightNumber.of(line),
		ItineraryVariationIdentifier:               l.itineraryVariationIdentifier.of(line),
		LegSequenceNumber:                          l.legSequenceNumber.of(line),
		ServiceType:                                l.serviceType.of(line),
		PeriodOfOperationFrom:                      l.periodOfOperationFrom.of(line),
		PeriodOfOperationTo:                        l.periodOfOperationTo.of(line),
		DaysOfOperation:                            l.daysOfOperation.of(line),
		FrequencyRate:                              l.frequencyRate.of(line),
		DepartureStation:                           l.departureStation.of(line),
		ScheduledTimeOfPassengerDeparture:          l.passengerDeparture.of(line),
		ScheduledTimeOfAircraftDeparture:           l.aircraftDeparture.of(line),
		TimeVariationDeparture:                     l.timeVariationDeparture.of(line),
		PassengerTerminalDeparture:                 l.passengerTerminalDeparture.of(line),
		ArrivalStation:                             l.arrivalStation.of(line),
		ScheduledTimeOfAircraftArrival:             l.aircraftArrival.of(line),
		ScheduledTimeOfPassengerArrival:            l.passengerArrival.of(line),
		TimeVariationArrival:                       l.timeVariationArrival.of(line),
		PassengerTerminalArrival:                   l.passengerTerminalArrival.of(line),
		AircraftType:                               l.aircraftType.of(line),
		PassengerReservationsBookingDesignator:     l.bookingDesignator.of(line),
		PassengerReservationsBookingModifier:       l.bookingModifier.of(line),
		MealServiceNote:                            l.mealServiceNote.of(line),
		JointOperationAirlineDesignators:           l.jointOperationAirlineDesignators.of(line),
		MinConnectingTimeStatusDeparture:           l.mctStatusDeparture.of(line),
		MinConnectingTimeStatusArrival:             l.mctStatusArrival.of(line),
		SecureFlightIndicator:                      l.secureFlightIndicator.of(line),
		ItineraryVariationIdentifierOverflow:       l.itineraryVariationIdentifierOverflow.of(line),
		AircraftOwner:                              l.aircraftOwner.of(line),
		CockpitCrewEmployer:                        l.cockpitCrewEmployer.of(line),
		CabinCrewEmployer:                          l.cabinCrewEmployer.of(line),
		OnwardFlight:                               l.onwardFlight.of(line),
		AirlineDesignator2:                         l.airlineDesignator2.of(line),
		FlightNumber2:                              l.flightNumber2.of(line),
		AircraftRotationLayover:                    l.aircraftRotationLayover.of(line),
		OperationalSuffix2:                         l.operationalSuffix2.of(line),
		FlightTransitLayover:                       l.flightTransitLayover.of(line),
		OperatingAirlineDisclosure:                 l.operatingAirlineDisclosure.of(line),
		TrafficRestrictionCode:                     l.trafficRestrictionCode.of(line),
		TrafficRestrictionCodeLegOverflowIndicator: l.trafficRestrictionOverflow.of(line),
		AircraftConfiguration:                      l.aircraftConfiguration.of(line),
		DateVariation:                              l.dateVariation.of(line),
		RecordType:                                 l.recordType.of(line),
		RecordSerialNumber:                         l.recordSerialNumber.of(line),
	}

	leg.FlightDesignator = flightDesignator(
		leg.AirlineDesignator,
		leg.ControlDuplicateIndicator,
		leg.FlightNumber,
		leg.OperationalSuffix,
		leg.ItineraryVariationIdentifier,
		leg.ServiceType,
		leg.ItineraryVariationIdentifierOverflow,
	)

	return leg, nil
}

func ParseSegment(line string, carrier *Carrier) (*Segment, error) {
	if carrier == nil {
		return nil, ErrNoActiveCarrier
	}
	if err := checkLength(line, RecordTypeSegment); err != nil {
		return nil, err
	}

	l := &segmentLayout

	segment := &Segment{
		OperationalSuffix:                    l.operationalSuffix.of(line),
		AirlineDesignator:                    l.airlineDesignator.of(line),
		ControlDuplicateIndicator:            carrier.ControlDuplicateIndicator,
		FlightNumber:                         l.flightNumber.of(line),
		ItineraryVariationIdentifier:         l.itineraryVariationIdentifier.of(line),
		LegSequenceNumber:                    l.legSequenceNumber.of(line),
		ServiceType:                          l.serviceType.of(line),
		ItineraryVariationIdentifierOverflow: l.itineraryVariationIdentifierOverflow.of(line),
		BoardPointIndicator:                  l.boardPointIndicator.of(line),
		OffPointIndicator:                    l.offPointIndicator.of(line),
		BoardPoint:                           l.boardPoint.of(line),
		OffPoint:                             l.offPoint.of(line),
		DataElementIdentifier:                l.dataElementIdentifier.of(line),
		Data:                                 l.data.of(line),
		RecordType:                           l.recordType.of(line),
		RecordSerialNumber:                   l.recordSerialNumber.of(line),
	}

	segment.FlightDesignator = flightDesignator(
		segment.AirlineDesignator,
		segment.ControlDuplicateIndicator,
		segment.FlightNumber,
		segment.OperationalSuffix,
		segment.ItineraryVariationIdentifier,
		segment.ServiceType,
		segment.ItineraryVariationIdentifierOverflow,
	)

	return segment, nil
}

// Parse dispatches on the first byte of line. Only carrier, flight leg and
// segment lines produce records.
func Parse(line string, carrier *Carrier) (Record, error) {
	if len(line) == 0 {
		return nil, errEmptyLine
	}

	switch RecordType(line[0]) {
	case RecordTypeCarrier:
		return asRecord(ParseCarrier(line))
	case RecordTypeFlightLeg:
		return asRecord(ParseFlightLeg(line, carrier))
	case RecordTypeSegment:
		return asRecord(ParseSegment(line, carrier))
	default:
		return nil, fmt.Errorf("%q (%s): %w", line[0], RecordType(line[0]), ErrUnsupportedRecord)
	}
}

// asRecord keeps a failed parse from surfacing as a non-nil Record holding a
// nil pointer.
func asRecord[T Record](r T, err error) (Record, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}
