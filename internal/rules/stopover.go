package rules

import (
	"fmt"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/services"
)

// Loc1StopoverTagRule classifies tax point 1 against the record's desired
// stopover tag and records the result on the detail for later rules.
type Loc1StopoverTagRule struct {
	Tag                     domain.StopoverTag
	TicketedPointTag        domain.TicketedPointTag
	FareBreakMustBeStopover bool
}

func (r Loc1StopoverTagRule) Name() string { return NameLoc1StopoverTag }

func (r Loc1StopoverTagRule) Describe() string {
	return fmt.Sprintf("tax point 1 must classify as %s", r.Tag)
}

func (r Loc1StopoverTagRule) CreateApplicator(itinIndex int, req *domain.Request, _ services.Bundle, _ *payment.RawPayments) Applicator {
	return &loc1StopoverTagApplicator{rule: r, itin: &req.Itins[itinIndex]}
}

type loc1StopoverTagApplicator struct {
	rule Loc1StopoverTagRule
	itin *domain.Itin
}

func (a *loc1StopoverTagApplicator) Name() string { return NameLoc1StopoverTag }

// Apply classifies tax point 1 with four independent predicates and sets
// the detail's stopover tag to the configured value when the matching
// predicate holds, Blank otherwise. A Blank classification fails the
// itinerary subject, every segment-related optional service and every
// YQ/YR entry; the call still returns true while any optional-service or
// YQ/YR subject survives.
func (a *loc1StopoverTagApplicator) Apply(pd *payment.PaymentDetail) bool {
	geo := pd.Begin
	matched := false
	switch a.rule.Tag {
	case domain.StopoverTagConnection:
		matched = a.isConnection(geo)
	case domain.StopoverTagStopover:
		matched = geo.IsStopover()
	case domain.StopoverTagFareBreak:
		matched = geo.FareBreak
		if a.rule.FareBreakMustBeStopover {
			matched = matched && geo.IsStopover()
		}
	case domain.StopoverTagNotFareBreak:
		matched = !geo.FareBreak && geo.IsTicketed(a.rule.TicketedPointTag)
	}

	if matched {
		pd.Loc1StopoverTag = a.rule.Tag
		return true
	}

	pd.Loc1StopoverTag = domain.StopoverTagBlank
	for i := range pd.OptionalServices {
		os := &pd.OptionalServices[i]
		if os.SegmentRelated() && !os.Subject.Failed() {
			os.Subject.Fail(NameLoc1StopoverTag)
		}
	}
	pd.YqYrs.FailAll(NameLoc1StopoverTag)
	pd.FailItinerary(NameLoc1StopoverTag)

	return pd.AnyServiceUnfailed() || pd.YqYrs.AnyUnfailed()
}

func (a *loc1StopoverTagApplicator) isConnection(geo *domain.Geo) bool {
	return !geo.IsStopover() && geo.IsTicketed(a.rule.TicketedPointTag)
}
