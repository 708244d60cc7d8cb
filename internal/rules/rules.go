package rules

import (
	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/services"
)

// Registry names for the concrete rules. These double as the failure
// provenance recorded on subjects, so they must stay stable across releases.
const (
	NameLoc1StopoverTag = "loc1_stopover_tag"
	NameIntlDomLoc1     = "intl_dom_loc1"
	NameIntlDomLoc2     = "intl_dom_loc2"
	NamePointOfSale     = "point_of_sale"
	NameTicketedPoint   = "ticketed_point"
	NameCarrierFlight   = "carrier_flight"
	NamePassengerType   = "passenger_type"
	NameSectorDetail    = "sector_detail"
	NameExempt          = "exempt"
	NameTaxOnFare       = "tax_on_fare"
	NameTaxOnTicketingFee = "tax_on_ticketing_fee"
	NameTaxOnChangeFee  = "tax_on_change_fee"
	NameTaxRounding     = "tax_rounding"
	NameBlankLimit      = "blank_limit"
)

// BusinessRule is one immutable, description-producing business-rule check.
// A rule owns its static configuration (thresholds, zones, tag values) and
// is stateless across itineraries; per-itinerary context lives on the
// applicator it creates.
type BusinessRule interface {
	Name() string
	Describe() string

	// CreateApplicator builds the per-itinerary applicator, capturing
	// itinerary-specific references (geo path, flight usages, service
	// handles, the working set).
	CreateApplicator(itinIndex int, req *domain.Request, svc services.Bundle, raw *payment.RawPayments) Applicator
}

// Applicator judges one rule against one payment detail, mutating it in
// place. Returning true means the rule is satisfied or does not block the
// itinerary-level subject; optional-service and YQ/YR subjects may still
// have been marked failed. Returning false means the itinerary-level
// subject is blocked entirely. Applicators never panic on ordinary
// non-match; the return value plus mutated failure markers is the complete
// propagation channel.
type Applicator interface {
	Name() string
	Apply(pd *payment.PaymentDetail) bool
}

// ForRecord assembles the rule list for one tax record in the fixed
// execution order. Later rules depend on mutations made by earlier ones
// (stopover tag, tax-point rewriting, computed amounts), so this order is a
// contract, not a preference.
func ForRecord(rc domain.RulesContainer) []BusinessRule {
	rd := rc.RuleData
	out := []BusinessRule{
		PointOfSaleRule{Zone: rd.POSZone, Vendor: rd.Vendor},
		TicketedPointRule{TicketedPointTag: rd.TicketedPointTag},
	}
	if rd.StopoverTag != domain.StopoverTagBlank {
		out = append(out, Loc1StopoverTagRule{
			Tag:                     rd.StopoverTag,
			TicketedPointTag:        rd.TicketedPointTag,
			FareBreakMustBeStopover: rd.FareBreakMustBeStopover,
		})
	}
	if rd.IntlDomLoc1 != domain.AdjacentBlank {
		out = append(out, IntlDomLoc1Rule{Ind: rd.IntlDomLoc1, TicketedPointTag: rd.TicketedPointTag})
	}
	if rd.IntlDomLoc2 != domain.AdjacentBlank {
		out = append(out, IntlDomLoc2Rule{Ind: rd.IntlDomLoc2})
	}
	if rd.CarrierFlightItemNo != 0 {
		out = append(out, CarrierFlightRule{Vendor: rd.Vendor, ItemNo: rd.CarrierFlightItemNo})
	}
	if rd.PassengerTypeItemNo != 0 {
		out = append(out, PassengerTypeRule{Vendor: rd.Vendor, ItemNo: rd.PassengerTypeItemNo})
	}
	if rd.SectorDetailItemNo != 0 {
		out = append(out, SectorDetailRule{Vendor: rd.Vendor, ItemNo: rd.SectorDetailItemNo})
	}
	if rd.ExemptTag {
		out = append(out, ExemptRule{})
	}
	switch rd.TaxAppliesTo {
	case domain.TaxAppliesToTicketingFee:
		out = append(out, TaxOnTicketingFeeRule{})
	case domain.TaxAppliesToChangeFee:
		out = append(out, TaxOnChangeFeeRule{})
	default:
		out = append(out, TaxOnFareRule{})
	}
	out = append(out,
		TaxRoundingRule{},
		BlankLimitRule{},
	)
	return out
}
