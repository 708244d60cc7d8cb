package domain

// Reference-table records consumed through the service interfaces. The DAO
// layer that loads and caches these is out of scope; the engine only reads
// already-parsed records keyed by vendor and item number.

// CarrierFlightSegment is one carrier/flight-number range row.
type CarrierFlightSegment struct {
	MarketingCarrier string `json:"marketing_carrier"`
	OperatingCarrier string `json:"operating_carrier,omitempty"`
	// FlightFrom/FlightTo bound the flight-number range, inclusive.
	// A zero FlightTo means the row matches FlightFrom exactly.
	FlightFrom int `json:"flight_from"`
	FlightTo   int `json:"flight_to"`
}

// Matches reports whether the given carrier and flight number fall in the row.
func (s *CarrierFlightSegment) Matches(carrier string, flightNo int) bool {
	if s.MarketingCarrier != "" && s.MarketingCarrier != carrier {
		return false
	}
	to := s.FlightTo
	if to == 0 {
		to = s.FlightFrom
	}
	return flightNo >= s.FlightFrom && flightNo <= to
}

// CarrierFlight is a carrier-flight reference table entry.
type CarrierFlight struct {
	Vendor   string                 `json:"vendor"`
	ItemNo   int                    `json:"item_no"`
	Segments []CarrierFlightSegment `json:"segments"`
}

// SectorDetailRow is one equipment/cabin match row with inclusion semantics.
type SectorDetailRow struct {
	Appl      ApplTag `json:"appl"`
	Equipment string  `json:"equipment,omitempty"`
	CabinCode string  `json:"cabin_code,omitempty"`
}

// Matches reports whether the flight satisfies the row's match fields.
// Empty fields match anything.
func (r *SectorDetailRow) Matches(f *FlightUsage) bool {
	if r.Equipment != "" && r.Equipment != f.Equipment {
		return false
	}
	if r.CabinCode != "" && r.CabinCode != f.CabinCode {
		return false
	}
	return true
}

// SectorDetail is a sector-detail reference table entry.
type SectorDetail struct {
	Vendor string            `json:"vendor"`
	ItemNo int               `json:"item_no"`
	Rows   []SectorDetailRow `json:"rows"`
}

// PassengerTypeRow is one passenger-type match row.
type PassengerTypeRow struct {
	Appl     ApplTag `json:"appl"`
	TypeCode string  `json:"type_code"`
	MinAge   int     `json:"min_age,omitempty"`
	MaxAge   int     `json:"max_age,omitempty"`
}

// PassengerTypeCodeItem is a passenger-type reference table entry.
type PassengerTypeCodeItem struct {
	Vendor string             `json:"vendor"`
	ItemNo int                `json:"item_no"`
	Rows   []PassengerTypeRow `json:"rows"`
}

// CarrierApplicationRow is one validating-carrier match row. A carrier of
// "$$" matches any carrier.
type CarrierApplicationRow struct {
	Appl    ApplTag `json:"appl"`
	Carrier string  `json:"carrier"`
}

// CarrierApplication is a validating-carrier reference table entry.
type CarrierApplication struct {
	Vendor string                  `json:"vendor"`
	ItemNo int                     `json:"item_no"`
	Rows   []CarrierApplicationRow `json:"rows"`
}
