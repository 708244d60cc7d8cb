package rules

import (
	"fmt"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/services"
)

// PointOfSaleRule checks the sale location against the record's zone. An
// empty sale point or an unrestricted record passes vacuously.
type PointOfSaleRule struct {
	Zone   string
	Vendor string
}

func (r PointOfSaleRule) Name() string { return NamePointOfSale }

func (r PointOfSaleRule) Describe() string {
	if r.Zone == "" {
		return "no point of sale restriction"
	}
	return fmt.Sprintf("point of sale must lie in zone %s", r.Zone)
}

func (r PointOfSaleRule) CreateApplicator(_ int, req *domain.Request, svc services.Bundle, _ *payment.RawPayments) Applicator {
	return &pointOfSaleApplicator{rule: r, pos: req.PointOfSale, loc: svc.Loc}
}

type pointOfSaleApplicator struct {
	rule PointOfSaleRule
	pos  domain.PointOfSale
	loc  services.LocService
}

func (a *pointOfSaleApplicator) Name() string { return NamePointOfSale }

// Apply returns true unconditionally when the sale point is empty. A zone
// mismatch blocks every subject: the record does not apply at this sale
// location at all.
func (a *pointOfSaleApplicator) Apply(pd *payment.PaymentDetail) bool {
	if a.pos.Empty() || a.rule.Zone == "" {
		return true
	}
	if a.loc.IsInLoc(a.pos.LocCode, a.rule.Zone, a.rule.Vendor) {
		return true
	}

	for i := range pd.OptionalServices {
		pd.OptionalServices[i].Subject.Fail(NamePointOfSale)
	}
	pd.YqYrs.FailAll(NamePointOfSale)
	return false
}

// TicketedPointRule resolves tax point 2 to the nearest ticketed geo when
// the current end point is an unticketed transfer.
type TicketedPointRule struct {
	TicketedPointTag domain.TicketedPointTag
}

func (r TicketedPointRule) Name() string { return NameTicketedPoint }

func (r TicketedPointRule) Describe() string {
	if r.TicketedPointTag == domain.MatchTicketedOnly {
		return "tax point 2 must resolve to a ticketed point"
	}
	return "unticketed points participate"
}

func (r TicketedPointRule) CreateApplicator(itinIndex int, req *domain.Request, _ services.Bundle, _ *payment.RawPayments) Applicator {
	return &ticketedPointApplicator{rule: r, itin: &req.Itins[itinIndex]}
}

type ticketedPointApplicator struct {
	rule TicketedPointRule
	itin *domain.Itin
}

func (a *ticketedPointApplicator) Name() string { return NameTicketedPoint }

// Apply rewrites the detail's end point to the nearest ticketed geo of the
// same kind, retreating toward tax point 1. Reaching tax point 1 without
// finding one blocks the itinerary subject.
func (a *ticketedPointApplicator) Apply(pd *payment.PaymentDetail) bool {
	if a.rule.TicketedPointTag != domain.MatchTicketedOnly {
		return true
	}
	if pd.End == nil || !pd.End.UnticketedTransfer {
		return true
	}

	step := -1
	if pd.End.Index < pd.Begin.Index {
		step = 1
	}
	kind := pd.End.Tag
	for i := pd.End.Index + step; i != pd.Begin.Index; i += step {
		cand := a.itin.GeoPath.At(i)
		if cand == nil {
			return false
		}
		if cand.Tag == kind && !cand.UnticketedTransfer {
			pd.End = cand
			return true
		}
	}
	return false
}
