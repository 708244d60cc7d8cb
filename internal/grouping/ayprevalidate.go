package grouping

import (
	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/rules"
	"github.com/dukerupert/aerotax/internal/services"
)

// AYPrevalidator cheaply decides whether the US "AY" departure tax can
// apply to an itinerary at all, so the full per-tax rule pass can be
// skipped when it cannot. It runs a fixed, ordered short-circuit chain
// against the departure tax point's AY records only.
type AYPrevalidator struct {
	req *domain.Request
	svc services.Bundle
}

// NewAYPrevalidator builds a prevalidator for one request.
func NewAYPrevalidator(req *domain.Request, svc services.Bundle) *AYPrevalidator {
	return &AYPrevalidator{req: req, svc: svc}
}

// DoesAYApply returns the first fully-matching AY record's applicability.
// No AY record for the departure nation means the tax does not apply;
// missing reference data is never an error here.
func (p *AYPrevalidator) DoesAYApply(itinIndex int) bool {
	itin := &p.req.Itins[itinIndex]
	dep := itin.GeoPath.First()
	if dep == nil {
		return false
	}

	containers := p.svc.RulesRecords.GetTaxRulesContainers(dep.Nation, domain.TagDeparture, p.req.TicketingDate)
	for _, rc := range containers {
		if rc.TaxName.Code != "AY" {
			continue
		}
		if p.recordMatches(rc, itinIndex, itin, dep) {
			return !rc.RuleData.ExemptTag
		}
	}
	return false
}

// recordMatches runs the ordered short-circuit chain for one AY record:
// loc1 stopover, loc1 zone, point-of-sale zone, validating carrier,
// carrier flight, passenger, sector detail, ticket min/max value.
func (p *AYPrevalidator) recordMatches(rc domain.RulesContainer, itinIndex int, itin *domain.Itin, dep *domain.Geo) bool {
	rd := rc.RuleData
	raw := payment.NewRawPayments()

	probe := func(r rules.BusinessRule) bool {
		pd := payment.NewPaymentDetail(rc.TaxName, rd, itin, dep, itin.GeoPath.Last())
		return r.CreateApplicator(itinIndex, p.req, p.svc, raw).Apply(pd)
	}

	if rd.StopoverTag != domain.StopoverTagBlank {
		ok := probe(rules.Loc1StopoverTagRule{
			Tag:                     rd.StopoverTag,
			TicketedPointTag:        rd.TicketedPointTag,
			FareBreakMustBeStopover: rd.FareBreakMustBeStopover,
		})
		if !ok {
			return false
		}
	}
	if rd.Loc1Zone != "" && !p.svc.Loc.IsInLoc(dep.LocCode, rd.Loc1Zone, rd.Vendor) {
		return false
	}
	if rd.POSZone != "" && !p.req.PointOfSale.Empty() &&
		!p.svc.Loc.IsInLoc(p.req.PointOfSale.LocCode, rd.POSZone, rd.Vendor) {
		return false
	}
	if rd.CarrierApplItemNo != 0 && !p.validatingCarrierMatches(rd, itin) {
		return false
	}
	if rd.CarrierFlightItemNo != 0 {
		if !probe(rules.CarrierFlightRule{Vendor: rd.Vendor, ItemNo: rd.CarrierFlightItemNo}) {
			return false
		}
	}
	if rd.PassengerTypeItemNo != 0 {
		if !probe(rules.PassengerTypeRule{Vendor: rd.Vendor, ItemNo: rd.PassengerTypeItemNo}) {
			return false
		}
	}
	if rd.SectorDetailItemNo != 0 {
		if !probe(rules.SectorDetailRule{Vendor: rd.Vendor, ItemNo: rd.SectorDetailItemNo}) {
			return false
		}
	}
	if !p.ticketValueInBounds(rd, itin) {
		return false
	}
	return true
}

func (p *AYPrevalidator) validatingCarrierMatches(rd *domain.PaymentRuleData, itin *domain.Itin) bool {
	ca := p.svc.CarrierApplication.GetCarrierApplication(rd.Vendor, rd.CarrierApplItemNo)
	if ca == nil {
		return true
	}
	vc := itin.FarePath.ValidatingCarrier
	for _, row := range ca.Rows {
		if row.Carrier != "$$" && row.Carrier != vc {
			continue
		}
		return row.Appl != domain.ApplNegative
	}
	return false
}

func (p *AYPrevalidator) ticketValueInBounds(rd *domain.PaymentRuleData, itin *domain.Itin) bool {
	total := itin.FarePath.TotalAmount
	if !rd.MinTicketValue.IsZero() && total.LessThan(rd.MinTicketValue) {
		return false
	}
	if !rd.MaxTicketValue.IsZero() && total.GreaterThan(rd.MaxTicketValue) {
		return false
	}
	return true
}
