package table

import "github.com/travigo/ssimconv/pkg/ssim"

// stringField is one Utf8 column taken from a record.
type stringField[T any] struct {
	name string
	get  func(*T) string
}

var carrierFields = []stringField[ssim.Carrier]{
	{"airline_designator", func(c *ssim.Carrier) string { return c.AirlineDesignator }},
	{"control_duplicate_indicator", func(c *ssim.Carrier) string { return c.ControlDuplicateIndicator }},
	{"time_mode", func(c *ssim.Carrier) string { return c.TimeMode }},
	{"season", func(c *ssim.Carrier) string { return c.Season }},
	{"period_of_schedule_validity_from", func(c *ssim.Carrier) string { return c.PeriodOfScheduleValidityFrom }},
	{"period_of_schedule_validity_to", func(c *ssim.Carrier) string { return c.PeriodOfScheduleValidityTo }},
	{"creation_date", func(c *ssim.Carrier) string { return c.CreationDate }},
	{"title_of_data", func(c *ssim.Carrier) string { return c.TitleOfData }},
	{"release_date", func(c *ssim.Carrier) string { return c.ReleaseDate }},
	{"schedule_status", func(c *ssim.Carrier) string { return c.ScheduleStatus }},
	{"general_information", func(c *ssim.Carrier) string { return c.GeneralInformation }},
	{"in_flight_service_information", func(c *ssim.Carrier) string { return c.InFlightServiceInformation }},
	{"electronic_ticketing_information", func(c *ssim.Carrier) string { return c.ElectronicTicketingInformation }},
	{"creation_time", func(c *ssim.Carrier) string { return c.CreationTime }},
	{"record_type", func(c *ssim.Carrier) string { return c.RecordType }},
	{"record_serial_number", func(c *ssim.Carrier) string { return c.RecordSerialNumber }},
}

var flightFields = []stringField[ssim.FlightLeg]{
	{"flight_designator", func(f *ssim.FlightLeg) string { return f.FlightDesignator }},
	{"operational_suffix", func(f *ssim.FlightLeg) string { return f.OperationalSuffix }},
	{"airline_designator", func(f *ssim.FlightLeg) string { return f.AirlineDesignator }},
	{"control_duplicate_indicator", func(f *ssim.FlightLeg) string { return f.ControlDuplicateIndicator }},
	{"flight_number", func(f *ssim.FlightLeg) string { return f.FlightNumber }},
	{"itinerary_variation_identifier", func(f *ssim.FlightLeg) string { return f.ItineraryVariationIdentifier }},
	{"leg_sequence_number", func(f *ssim.FlightLeg) string { return f.LegSequenceNumber }},
	{"service_type", func(f *ssim.FlightLeg) string { return f.ServiceType }},
	{"period_of_operation_from", func(f *ssim.FlightLeg) string { return f.PeriodOfOperationFrom }},
	{"period_of_operation_to", func(f *ssim.FlightLeg) string { return f.PeriodOfOperationTo }},
	{"days_of_operation", func(f *ssim.FlightLeg) string { return f.DaysOfOperation }},
	{"frequency_rate", func(f *ssim.FlightLeg) string { return f.FrequencyRate }},
	{"departure_station", func(f *ssim.FlightLeg) string { return f.DepartureStation }},
	{"scheduled_time_of_passenger_departure", func(f *ssim.FlightLeg) string { return f.ScheduledTimeOfPassengerDeparture }},
	{"scheduled_time_of_aircraft_departure", func(f *ssim.FlightLeg) string { return f.ScheduledTimeOfAircraftDeparture }},
	{"time_variation_departure", func(f *ssim.FlightLeg) string { return f.TimeVariationDeparture }},
	{"passenger_terminal_departure", func(f *ssim.FlightLeg) string { return f.PassengerTerminalDeparture }},
	{"arrival_station", func(f *ssim.FlightLeg) string { return f.ArrivalStation }},
	{"scheduled_time_of_aircraft_arrival", func(f *ssim.FlightLeg) string { return f.ScheduledTimeOfAircraftArrival }},
	{"scheduled_time_of_passenger_arrival", func(f *ssim.FlightLeg) string { return f.ScheduledTimeOfPassengerArrival }},
	{"time_variation_arrival", func(f *ssim.FlightLeg) string { return f.TimeVariationArrival }},
	{"passenger_terminal_arrival", func(f *ssim.FlightLeg) string { return f.PassengerTerminalArrival }},
	{"aircraft_type", func(f *ssim.FlightLeg) string { return f.AircraftType }},
	{"passenger_reservations_booking_designator", func(f *ssim.FlightLeg) string { return f.PassengerReservationsBookingDesignator }},
	{"passenger_reservations_booking_modifier", func(f *ssim.FlightLeg) string { return f.PassengerReservationsBookingModifier }},
	{"meal_service_note", func(f *ssim.FlightLeg) string { return f.MealServiceNote }},
	{"joint_operation_airline_designators", func(f *ssim.FlightLeg) string { return f.JointOperationAirlineDesignators }},
	{"min_connecting_time_status_departure", func(f *ssim.FlightLeg) string { return f.MinConnectingTimeStatusDeparture }},
	{"min_connecting_time_status_arrival", func(f *ssim.FlightLeg) string { return f.MinConnectingTimeStatusArrival }},
	{"secure_flight_indicator", func(f *ssim.FlightLeg) string { return f.SecureFlightIndicator }},
	{"itinerary_variation_identifier_overflow", func(f *ssim.FlightLeg) string { return f.ItineraryVariationIdentifierOverflow }},
	{"aircraft_owner", func(f *ssim.FlightLeg) string { return f.AircraftOwner }},
	{"cockpit_crew_employer", func(f *ssim.FlightLeg) string { return f.CockpitCrewEmployer }},
	{"cabin_crew_employer", func(f *ssim.FlightLeg) string { return f.CabinCrewEmployer }},
	{"onward_flight", func(f *ssim.FlightLeg) string { return f.OnwardFlight }},
	{"airline_designator2", func(f *ssim.FlightLeg) string { return f.AirlineDesignator2 }},
	{"flight_number2", func(f *ssim.FlightLeg) string { return f.FlightNumber2 }},
	{"aircraft_rotation_layover", func(f *ssim.FlightLeg) string { return f.AircraftRotationLayover }},
	{"operational_suffix2", func(f *ssim.FlightLeg) string { return f.OperationalSuffix2 }},
	{"flight_transit_layover", func(f *ssim.FlightLeg) string { return f.FlightTransitLayover }},
	{"operating_airline_disclosure", func(f *ssim.FlightLeg) string { return f.OperatingAirlineDisclosure }},
	{"traffic_restriction_code", func(f *ssim.FlightLeg) string { return f.TrafficRestrictionCode }},
	{"traffic_restriction_code_leg_overflow_indicator", func(f *ssim.FlightLeg) string { return f.TrafficRestrictionCodeLegOverflowIndicator }},
	{"aircraft_configuration", func(f *ssim.FlightLeg) string { return f.AircraftConfiguration }},
	{"date_variation", func(f *ssim.FlightLeg) string { return f.DateVariation }},
	{"record_type", func(f *ssim.FlightLeg) string { return f.RecordType }},
	{"record_serial_number", func(f *ssim.FlightLeg) string { return f.RecordSerialNumber }},
}

var segmentFields = []stringField[ssim.Segment]{
	{"flight_designator", func(s *ssim.Segment) string { return s.FlightDesignator }},
	{"operational_suffix", func(s *ssim.Segment) string { return s.OperationalSuffix }},
	{"airline_designator", func(s *ssim.Segment) string { return s.AirlineDesignator }},
	{"control_duplicate_indicator", func(s *ssim.Segment) string { return s.ControlDuplicateIndicator }},
	{"flight_number", func(s *ssim.Segment) string { return s.FlightNumber }},
	{"itinerary_variation_identifier", func(s *ssim.Segment) string { return s.ItineraryVariationIdentifier }},
	{"leg_sequence_number", func(s *ssim.Segment) string { return s.LegSequenceNumber }},
	{"service_type", func(s *ssim.Segment) string { return s.ServiceType }},
	{"itinerary_variation_identifier_overflow", func(s *ssim.Segment) string { return s.ItineraryVariationIdentifierOverflow }},
	{"board_point_indicator", func(s *ssim.Segment) string { return s.BoardPointIndicator }},
	{"off_point_indicator", func(s *ssim.Segment) string { return s.OffPointIndicator }},
	{"board_point", func(s *ssim.Segment) string { return s.BoardPoint }},
	{"off_point", func(s *ssim.Segment) string { return s.OffPoint }},
	{"data_element_identifier", func(s *ssim.Segment) string { return s.DataElementIdentifier }},
	{"data", func(s *ssim.Segment) string { return s.Data }},
	{"record_type", func(s *ssim.Segment) string { return s.RecordType }},
	{"record_serial_number", func(s *ssim.Segment) string { return s.RecordSerialNumber }},
}

// joinedFlightFields are the leg columns of the joined view; the record type
// and serial number are not carried over.
var joinedFlightFields = flightFields[:len(flightFields)-2]

// joinedCarrierFields are the carrier columns not already present on the leg.
var joinedCarrierFields = []stringField[ssim.Carrier]{
	{"time_mode", func(c *ssim.Carrier) string { return c.TimeMode }},
	{"season", func(c *ssim.Carrier) string { return c.Season }},
	{"period_of_schedule_validity_from", func(c *ssim.Carrier) string { return c.PeriodOfScheduleValidityFrom }},
	{"period_of_schedule_validity_to", func(c *ssim.Carrier) string { return c.PeriodOfScheduleValidityTo }},
	{"creation_date", func(c *ssim.Carrier) string { return c.CreationDate }},
	{"title_of_data", func(c *ssim.Carrier) string { return c.TitleOfData }},
	{"release_date", func(c *ssim.Carrier) string { return c.ReleaseDate }},
	{"schedule_status", func(c *ssim.Carrier) string { return c.ScheduleStatus }},
	{"general_information", func(c *ssim.Carrier) string { return c.GeneralInformation }},
	{"in_flight_service_information", func(c *ssim.Carrier) string { return c.InFlightServiceInformation }},
	{"electronic_ticketing_information", func(c *ssim.Carrier) string { return c.ElectronicTicketingInformation }},
	{"creation_time", func(c *ssim.Carrier) string { return c.CreationTime }},
}

// joinedSegmentFields are also the fields nested in the condensed segments column.
var joinedSegmentFields = []stringField[ssim.Segment]{
	{"board_point_indicator", func(s *ssim.Segment) string { return s.BoardPointIndicator }},
	{"off_point_indicator", func(s *ssim.Segment) string { return s.OffPointIndicator }},
	{"board_point", func(s *ssim.Segment) string { return s.BoardPoint }},
	{"off_point", func(s *ssim.Segment) string { return s.OffPoint }},
	{"data_element_identifier", func(s *ssim.Segment) string { return s.DataElementIdentifier }},
	{"data", func(s *ssim.Segment) string { return s.Data }},
}
