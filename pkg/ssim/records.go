package ssim

// RecordType is the first byte of every SSIM line.
type RecordType byte

const (
	RecordTypeFiller    RecordType = '0'
	RecordTypeHeader    RecordType = '1'
	RecordTypeCarrier   RecordType = '2'
	RecordTypeFlightLeg RecordType = '3'
	RecordTypeSegment   RecordType = '4'
	RecordTypeTrailer   RecordType = '5'
)

func (t RecordType) String() string {
	switch t {
	case RecordTypeFiller:
		return "filler"
	case RecordTypeHeader:
		return "header"
	case RecordTypeCarrier:
		return "carrier"
	case RecordTypeFlightLeg:
		return "flight leg"
	case RecordTypeSegment:
		return "segment"
	case RecordTypeTrailer:
		return "trailer"
	default:
		return "unknown"
	}
}

// Record is one parsed type 2, 3 or 4 line.
type Record interface {
	Type() RecordType
}

// CarrierKey identifies a carrier section.
type CarrierKey struct {
	AirlineDesignator         string
	ControlDuplicateIndicator string
}

// LegKey joins a segment to its flight leg.
type LegKey struct {
	FlightDesignator  string
	LegSequenceNumber string
}

type Carrier struct {
	AirlineDesignator              string `csv:"airline_designator"`
	ControlDuplicateIndicator      string `csv:"control_duplicate_indicator"`
	TimeMode                       string `csv:"time_mode"`
	Season                         string `csv:"season"`
	PeriodOfScheduleValidityFrom   string `csv:"period_of_schedule_validity_from"`
	PeriodOfScheduleValidityTo     string `csv:"period_of_schedule_validity_to"`
	CreationDate                   string `csv:"creation_date"`
	TitleOfData                    string `csv:"title_of_data"`
	ReleaseDate                    string `csv:"release_date"`
	ScheduleStatus                 string `csv:"schedule_status"`
	GeneralInformation             string `csv:"general_information"`
	InFlightServiceInformation     string `csv:"in_flight_service_information"`
	ElectronicTicketingInformation string `csv:"electronic_ticketing_information"`
	CreationTime                   string `csv:"creation_time"`
	RecordType                     string `csv:"record_type"`
	RecordSerialNumber             string `csv:"record_serial_number"`
}

func (c *Carrier) Type() RecordType { return RecordTypeCarrier }

func (c *Carrier) Key() CarrierKey {
	return CarrierKey{
		AirlineDesignator:         c.AirlineDesignator,
		ControlDuplicateIndicator: c.ControlDuplicateIndicator,
	}
}

// FlightLeg is a type 3 record. RecordType and RecordSerialNumber are not
// written to row exports.
type FlightLeg struct {
	FlightDesignator                           string `csv:"flight_designator"`
	OperationalSuffix                          string `csv:"operational_suffix"`
	AirlineDesignator                          string `csv:"airline_designator"`
	ControlDuplicateIndicator                  string `csv:"control_duplicate_indicator"`
	FlightNumber                               string `csv:"flight_number"`
	ItineraryVariationIdentifier               string `csv:"itinerary_variation_identifier"`
	LegSequenceNumber                          string `csv:"leg_sequence_number"`
	ServiceType                                string `csv:"service_type"`
	PeriodOfOperationFrom                      string `csv:"period_of_operation_from"`
	PeriodOfOperationTo                        string `csv:"period_of_operation_to"`
	DaysOfOperation                            string `csv:"days_of_operation"`
	FrequencyRate                              string `csv:"frequency_rate"`
	DepartureStation                           string `csv:"departure_station"`
	ScheduledTimeOfPassengerDeparture          string `csv:"scheduled_time_of_passenger_departure"`
	ScheduledTimeOfAircraftDeparture           string `csv:"scheduled_time_of_aircraft_departure"`
	TimeVariationDeparture                     string `csv:"time_variation_departure"`
	PassengerTerminalDeparture                 string `csv:"passenger_terminal_departure"`
	ArrivalStation                             string `csv:"arrival_station"`
	ScheduledTimeOfAircraftArrival             string `csv:"scheduled_time_of_aircraft_arrival"`
	ScheduledTimeOfPassengerArrival            string `csv:"scheduled_time_of_passenger_arrival"`
	TimeVariationArrival                       string `csv:"time_variation_arrival"`
	PassengerTerminalArrival                   string `csv:"passenger_terminal_arrival"`
	AircraftType                               string `csv:"aircraft_type"`
	PassengerReservationsBookingDesignator     string `csv:"passenger_reservations_booking_designator"`
	PassengerReservationsBookingModifier       string `csv:"passenger_reservations_booking_modifier"`
	MealServiceNote                            string `csv:"meal_service_note"`
	JointOperationAirlineDesignators           string `csv:"joint_operation_airline_designators"`
	MinConnectingTimeStatusDeparture           string `csv:"min_connecting_time_status_departure"`
	MinConnectingTimeStatusArrival             string `csv:"min_connecting_time_status_arrival"`
	SecureFlightIndicator                      string `csv:"secure_flight_indicator"`
	ItineraryVariationIdentifierOverflow       string `csv:"itinerary_variation_identifier_overflow"`
	AircraftOwner                              string `csv:"aircraft_owner"`
	CockpitCrewEmployer                        string `csv:"cockpit_crew_employer"`
	CabinCrewEmployer                          string `csv:"cabin_crew_employer"`
	OnwardFlight                               string `csv:"onward_flight"`
	AirlineDesignator2                         string `csv:"airline_designator2"`
	FlightNumber2                              string `csv:"flight_number2"`
	AircraftRotationLayover                    string `csv:"aircraft_rotation_layover"`
	OperationalSuffix2                         string `csv:"operational_suffix2"`
	FlightTransitLayover                       string `csv:"flight_transit_layover"`
	OperatingAirlineDisclosure                 string `csv:"operating_airline_disclosure"`
	TrafficRestrictionCode                     string `csv:"traffic_restriction_code"`
	TrafficRestrictionCodeLegOverflowIndicator string `csv:"traffic_restriction_code_leg_overflow_indicator"`
	AircraftConfiguration                      string `csv:"aircraft_configuration"`
	DateVariation                              string `csv:"date_variation"`
	RecordType                                 string `csv:"-"`
	RecordSerialNumber                         string `csv:"-"`
}

func (f *FlightLeg) Type() RecordType { return RecordTypeFlightLeg }

func (f *FlightLeg) Key() LegKey {
	return LegKey{FlightDesignator: f.FlightDesignator, LegSequenceNumber: f.LegSequenceNumber}
}

type Segment struct {
	FlightDesignator                     string `json:"flight_designator"`
	OperationalSuffix                    string `json:"operational_suffix"`
	AirlineDesignator                    string `json:"airline_designator"`
	ControlDuplicateIndicator            string `json:"control_duplicate_indicator"`
	FlightNumber                         string `json:"flight_number"`
	ItineraryVariationIdentifier         string `json:"itinerary_variation_identifier"`
	LegSequenceNumber                    string `json:"leg_sequence_number"`
	ServiceType                          string `json:"service_type"`
	ItineraryVariationIdentifierOverflow string `json:"itinerary_variation_identifier_overflow"`
	BoardPointIndicator                  string `json:"board_point_indicator" groups:"condensed"`
	OffPointIndicator                    string `json:"off_point_indicator" groups:"condensed"`
	BoardPoint                           string `json:"board_point" groups:"condensed"`
	OffPoint                             string `json:"off_point" groups:"condensed"`
	DataElementIdentifier                string `json:"data_element_identifier" groups:"condensed"`
	Data                                 string `json:"data" groups:"condensed"`
	RecordType                           string `json:"record_type"`
	RecordSerialNumber                   string `json:"record_serial_number"`

	// Leg is the leg line this segment followed in the file. The reader sets
	// it; it is nil when no leg with the same key precedes the segment in its
	// batch.
	Leg *FlightLeg `json:"-" bson:"-"`
}

func (s *Segment) Type() RecordType { return RecordTypeSegment }

func (s *Segment) Key() LegKey {
	return LegKey{FlightDesignator: s.FlightDesignator, LegSequenceNumber: s.LegSequenceNumber}
}
