package rules

import (
	"fmt"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/services"
)

// nationsInternational compares the adjacent point's nation to the tax
// point's, with the US buffer-zone carve-out: a US tax point adjacent to a
// Canada/Mexico point still inside the buffer zone is treated as if the
// travel were domestic.
func nationsInternational(taxPoint, adjacent *domain.Geo) bool {
	if taxPoint.Nation == adjacent.Nation {
		return false
	}
	if taxPoint.Nation == "US" && adjacent.InBufferZone &&
		(adjacent.Nation == "CA" || adjacent.Nation == "MX") {
		return false
	}
	return true
}

func wantsInternational(ind domain.AdjacentIntlDomInd) bool {
	return ind == domain.AdjacentStopoverInternational || ind == domain.AdjacentInternational
}

// IntlDomLoc1Rule classifies the first qualifying point adjacent to tax
// point 1 as domestic or international.
type IntlDomLoc1Rule struct {
	Ind              domain.AdjacentIntlDomInd
	TicketedPointTag domain.TicketedPointTag
}

func (r IntlDomLoc1Rule) Name() string { return NameIntlDomLoc1 }

func (r IntlDomLoc1Rule) Describe() string {
	return fmt.Sprintf("adjacent point to tax point 1 must classify as %s", r.Ind)
}

func (r IntlDomLoc1Rule) CreateApplicator(itinIndex int, req *domain.Request, _ services.Bundle, _ *payment.RawPayments) Applicator {
	return &intlDomLoc1Applicator{rule: r, itin: &req.Itins[itinIndex]}
}

type intlDomLoc1Applicator struct {
	rule IntlDomLoc1Rule
	itin *domain.Itin
}

func (a *intlDomLoc1Applicator) Name() string { return NameIntlDomLoc1 }

// Apply walks the geo path outward from tax point 1 (backward for a
// departure point, forward for an arrival point) to the first adjacent
// point satisfying the configured predicate, then classifies that point's
// nation against the tax point's. Reaching the route end without a
// qualifying point fails closed.
func (a *intlDomLoc1Applicator) Apply(pd *payment.PaymentDetail) bool {
	if a.rule.Ind == domain.AdjacentBlank {
		return true
	}

	geo := pd.Begin
	step := 1
	if geo.Tag == domain.TagDeparture {
		step = -1
	}

	var adjacent *domain.Geo
	for i := geo.Index + step; ; i += step {
		cand := a.itin.GeoPath.At(i)
		if cand == nil {
			break
		}
		if a.qualifies(cand) {
			adjacent = cand
			break
		}
	}
	if adjacent == nil {
		return false
	}

	intl := nationsInternational(geo, adjacent)
	return intl == wantsInternational(a.rule.Ind)
}

func (a *intlDomLoc1Applicator) qualifies(geo *domain.Geo) bool {
	switch a.rule.Ind {
	case domain.AdjacentStopoverDomestic, domain.AdjacentStopoverInternational:
		return geo.IsStopover()
	default:
		return geo.IsTicketed(a.rule.TicketedPointTag)
	}
}

// IntlDomLoc2Rule compares tax point 2's nation directly against tax point
// 1's, independently for every subject.
type IntlDomLoc2Rule struct {
	Ind domain.AdjacentIntlDomInd
}

func (r IntlDomLoc2Rule) Name() string { return NameIntlDomLoc2 }

func (r IntlDomLoc2Rule) Describe() string {
	return fmt.Sprintf("tax point 2 must classify as %s relative to tax point 1", r.Ind)
}

func (r IntlDomLoc2Rule) CreateApplicator(int, *domain.Request, services.Bundle, *payment.RawPayments) Applicator {
	return &intlDomLoc2Applicator{rule: r}
}

type intlDomLoc2Applicator struct {
	rule IntlDomLoc2Rule
}

func (a *intlDomLoc2Applicator) Name() string { return NameIntlDomLoc2 }

// Apply evaluates the itinerary subject, every optional-service item and
// every YQ/YR entry individually; each failing subject is marked on its
// own. The call returns false only when nothing survives.
func (a *intlDomLoc2Applicator) Apply(pd *payment.PaymentDetail) bool {
	if a.rule.Ind == domain.AdjacentBlank {
		return true
	}

	want := wantsInternational(a.rule.Ind)
	nation1 := pd.Begin.Nation

	if (nation1 != pd.End.Nation) != want {
		pd.FailItinerary(NameIntlDomLoc2)
	}

	for i := range pd.OptionalServices {
		os := &pd.OptionalServices[i]
		loc2 := os.Loc2Nation
		if loc2 == "" {
			loc2 = pd.End.Nation
		}
		if (nation1 != loc2) != want {
			os.Subject.Fail(NameIntlDomLoc2)
		}
	}

	for i := 0; i < pd.YqYrs.Len(); i++ {
		loc2 := pd.YqYrs.Loc2[i]
		if loc2 == "" {
			loc2 = pd.End.Nation
		}
		if (nation1 != loc2) != want {
			pd.YqYrs.Subjects[i].Fail(NameIntlDomLoc2)
		}
	}

	return pd.AnySubjectSurvives()
}
