package payment

import (
	"github.com/shopspring/decimal"

	"github.com/dukerupert/aerotax/internal/domain"
)

// OptionalService is one ancillary-fee line item under evaluation. It is
// owned by its PaymentDetail and lives exactly as long as it does.
type OptionalService struct {
	Amount          decimal.Decimal          `json:"amount"`
	TaxAmount       decimal.Decimal          `json:"tax_amount"`
	ServiceGroup    string                   `json:"service_group"`
	ServiceSubGroup string                   `json:"service_sub_group,omitempty"`
	FlightRelation  domain.FlightRelationTag `json:"flight_relation"`
	Loc2Nation      string                   `json:"loc2_nation,omitempty"`

	Subject Subject `json:"subject"`
}

// SegmentRelated reports whether the service attaches to a flight segment.
// Segment-related services are excluded when stopover classification blanks.
func (o *OptionalService) SegmentRelated() bool {
	return o.FlightRelation == domain.FlightRelationSegment
}

// TaxableYqYrs is the per-segment surcharge record: parallel arrays of
// subject amounts and independently failable subjects.
type TaxableYqYrs struct {
	Codes    []string          `json:"codes"`
	Amounts  []decimal.Decimal `json:"amounts"`
	Loc2     []string          `json:"loc2"`
	Segments []int             `json:"segments"`
	Subjects []Subject         `json:"subjects"`

	TaxAmounts []decimal.Decimal `json:"tax_amounts"`
}

// Len returns the number of surcharge entries.
func (y *TaxableYqYrs) Len() int {
	return len(y.Amounts)
}

// FailAll marks every not-yet-failed entry failed by the named rule.
func (y *TaxableYqYrs) FailAll(rule string) {
	for i := range y.Subjects {
		y.Subjects[i].Fail(rule)
	}
}

// AnyUnfailed reports whether at least one entry is still alive.
func (y *TaxableYqYrs) AnyUnfailed() bool {
	for i := range y.Subjects {
		if !y.Subjects[i].Failed() {
			return true
		}
	}
	return false
}
