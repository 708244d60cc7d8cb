package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TaxName identifies a tax/fee record. It is immutable once built and is
// shared by reference by every payment detail created for that tax.
type TaxName struct {
	Code        string         `json:"code" validate:"required"`
	Type        string         `json:"type" validate:"required"`
	Nation      string         `json:"nation" validate:"required,len=2"`
	PercentFlat PercentFlatTag `json:"percent_flat" validate:"required,oneof=percent flat"`
}

// String renders the identity used in logs and limit-group keys.
func (n TaxName) String() string {
	return fmt.Sprintf("%s/%s/%s", n.Nation, n.Code, n.Type)
}

// DateBounds is a half-open travel date window [First, Last].
// Zero values mean unbounded on that side.
type DateBounds struct {
	First time.Time `json:"first,omitempty"`
	Last  time.Time `json:"last,omitempty"`
}

// Contains reports whether d falls inside the bounds.
func (b DateBounds) Contains(d time.Time) bool {
	if !b.First.IsZero() && d.Before(b.First) {
		return false
	}
	if !b.Last.IsZero() && d.After(b.Last) {
		return false
	}
	return true
}

// PaymentRuleData is the per-tax-record configuration a rule run evaluates
// against. It is created once when a record is loaded and never mutated.
type PaymentRuleData struct {
	Vendor    string `json:"vendor" validate:"required"`
	SeqNo     int    `json:"seq_no"`
	TaxPointTag TaxPointTag `json:"tax_point_tag" validate:"required"`

	TicketedPointTag TicketedPointTag `json:"ticketed_point_tag"`
	TaxableUnits     []TaxableUnit    `json:"taxable_units"`
	TaxAppliesTo     TaxAppliesToTag  `json:"tax_applies_to"`

	// Amount is a fraction for percent records (0.065 for 6.5%) and a
	// monetary amount in TaxCurrency for flat records.
	Amount      decimal.Decimal `json:"amount"`
	TaxCurrency string          `json:"tax_currency,omitempty"`

	// CurrencyOverride forces the output currency when set.
	CurrencyOverride string `json:"currency_override,omitempty"`

	// Stopover classification configuration.
	StopoverTag            StopoverTag `json:"stopover_tag,omitempty"`
	FareBreakMustBeStopover bool       `json:"fare_break_must_be_stopover,omitempty"`

	// Adjacency classification configuration.
	IntlDomLoc1 AdjacentIntlDomInd `json:"intl_dom_loc1,omitempty"`
	IntlDomLoc2 AdjacentIntlDomInd `json:"intl_dom_loc2,omitempty"`

	// Point of sale zone; empty means no restriction.
	POSZone string `json:"pos_zone,omitempty"`
	// Loc1Zone restricts tax point 1 to a zone; empty means no restriction.
	Loc1Zone string `json:"loc1_zone,omitempty"`

	// Reference-table item numbers; zero means the check is not configured.
	CarrierFlightItemNo  int `json:"carrier_flight_item_no,omitempty"`
	CarrierApplItemNo    int `json:"carrier_appl_item_no,omitempty"`
	PassengerTypeItemNo  int `json:"passenger_type_item_no,omitempty"`
	SectorDetailItemNo   int `json:"sector_detail_item_no,omitempty"`

	// Travel date applicability windows.
	JourneyDates  DateBounds `json:"journey_dates,omitempty"`
	TaxPointDates DateBounds `json:"tax_point_dates,omitempty"`

	// Rounding; zero Unit means fall back to point-of-sale nation rounding.
	RoundingUnit decimal.Decimal `json:"rounding_unit,omitempty"`
	RoundingDir  RoundingDir     `json:"rounding_dir,omitempty"`

	Limit LimitType `json:"limit,omitempty"`

	// Ticket value gate; zero bounds mean unbounded.
	MinTicketValue decimal.Decimal `json:"min_ticket_value,omitempty"`
	MaxTicketValue decimal.Decimal `json:"max_ticket_value,omitempty"`

	// ExemptTag marks the record as exempting rather than assessing.
	ExemptTag bool `json:"exempt_tag,omitempty"`
}

// CoversUnit reports whether the record's taxable-unit set includes u.
// An empty set covers the itinerary only.
func (r *PaymentRuleData) CoversUnit(u TaxableUnit) bool {
	if len(r.TaxableUnits) == 0 {
		return u == UnitItinerary
	}
	for _, tu := range r.TaxableUnits {
		if tu == u {
			return true
		}
	}
	return false
}

// RulesContainer pairs a tax identity with one of its rule records.
// RulesRecordsService returns these ordered by sequence number.
type RulesContainer struct {
	TaxName  TaxName          `json:"tax_name"`
	RuleData *PaymentRuleData `json:"rule_data"`
}
