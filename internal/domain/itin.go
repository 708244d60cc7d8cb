package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FlightUsage is one flown segment of an itinerary. Flight i owns geos 2i
// (departure) and 2i+1 (arrival) of the itinerary's geo path.
type FlightUsage struct {
	MarketingCarrier string    `json:"marketing_carrier" validate:"required,len=2"`
	OperatingCarrier string    `json:"operating_carrier,omitempty"`
	FlightNumber     int       `json:"flight_number" validate:"required,min=1"`
	Departure        time.Time `json:"departure"`
	Arrival          time.Time `json:"arrival"`
	Equipment        string    `json:"equipment,omitempty"`
	CabinCode        string    `json:"cabin_code,omitempty"`
}

// TicketingFee is one fee line item on the fare path.
type TicketingFee struct {
	SubCode string          `json:"sub_code"`
	Amount  decimal.Decimal `json:"amount"`
}

// FarePath carries the already-priced amounts the engine taxes. Fare
// construction itself is out of scope; these are read-only inputs.
type FarePath struct {
	// TotalAmount is the taxable fare in the tax-equivalent currency.
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TicketingFees []TicketingFee  `json:"ticketing_fees,omitempty"`
	ChangeFees    []TicketingFee  `json:"change_fees,omitempty"`
	ValidatingCarrier string      `json:"validating_carrier,omitempty"`
}

// Passenger is the traveller a rule's passenger-type check matches against.
type Passenger struct {
	TypeCode    string    `json:"type_code"`
	DateOfBirth time.Time `json:"date_of_birth,omitempty"`
}

// OptionalServiceInput is one ancillary charge attached to an itinerary.
type OptionalServiceInput struct {
	Amount         decimal.Decimal   `json:"amount"`
	ServiceGroup   string            `json:"service_group"`
	ServiceSubGroup string           `json:"service_sub_group,omitempty"`
	FlightRelation FlightRelationTag `json:"flight_relation"`
	Loc2Nation     string            `json:"loc2_nation,omitempty"`
}

// YqYrInput is one carrier-imposed fuel/insurance surcharge on a segment.
type YqYrInput struct {
	Code         string          `json:"code" validate:"oneof=YQ YR"`
	Type         string          `json:"type,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	SegmentIndex int             `json:"segment_index"`
	Loc2Nation   string          `json:"loc2_nation,omitempty"`
}

// Itin is one priced itinerary: the geo path plus the flight, fare and
// passenger context the rules read.
type Itin struct {
	ID               string                 `json:"id" validate:"required"`
	GeoPath          GeoPath                `json:"geo_path" validate:"required"`
	FlightUsages     []FlightUsage          `json:"flight_usages" validate:"required,min=1,dive"`
	FarePath         FarePath               `json:"fare_path"`
	Passenger        Passenger              `json:"passenger"`
	TravelOriginDate time.Time              `json:"travel_origin_date" validate:"required"`
	OptionalServices []OptionalServiceInput `json:"optional_services,omitempty"`
	YqYrs            []YqYrInput            `json:"yqyrs,omitempty"`
}

// FlightForGeo returns the flight usage owning the given geo index, or nil
// when the index falls outside the flight list.
func (it *Itin) FlightForGeo(geoIndex int) *FlightUsage {
	fi := FlightIndexForGeo(geoIndex)
	if fi < 0 || fi >= len(it.FlightUsages) {
		return nil
	}
	return &it.FlightUsages[fi]
}

// PointOfSale is where the ticket is sold.
type PointOfSale struct {
	LocCode string `json:"loc_code"`
	Nation  string `json:"nation,omitempty"`
	Vendor  string `json:"vendor,omitempty"`
}

// Empty reports whether no sale point was supplied.
func (p PointOfSale) Empty() bool {
	return p.LocCode == ""
}

// Request is one pricing request: the itineraries to evaluate plus the
// request-level context shared by all of them.
type Request struct {
	Itins         []Itin      `json:"itins" validate:"required,min=1,dive"`
	PointOfSale   PointOfSale `json:"point_of_sale"`
	TicketingDate time.Time   `json:"ticketing_date" validate:"required"`

	// PaymentCurrency is the tax-equivalent currency flat amounts convert
	// into.
	PaymentCurrency string `json:"payment_currency" validate:"required,len=3"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structural integrity of the request before any rule
// evaluation runs. Geo paths must pair up with flight usages.
func (r *Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return WrapError(err, EINVALID, "request.validate", "invalid evaluation request")
	}
	for i := range r.Itins {
		it := &r.Itins[i]
		if it.GeoPath.Len() != 2*len(it.FlightUsages) {
			return Errorf(EINVALID, "request.validate",
				"itin %s: geo path has %d points for %d flights (want %d)",
				it.ID, it.GeoPath.Len(), len(it.FlightUsages), 2*len(it.FlightUsages))
		}
		for _, yq := range it.YqYrs {
			if yq.SegmentIndex < 0 || yq.SegmentIndex >= len(it.FlightUsages) {
				return Errorf(EINVALID, "request.validate",
					"itin %s: yqyr segment index %d out of range", it.ID, yq.SegmentIndex)
			}
		}
	}
	return nil
}
