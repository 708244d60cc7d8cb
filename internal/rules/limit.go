package rules

import (
	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/services"
)

// BlankLimitRule enforces "apply at most once" constraints across the
// itinerary's working set. It is a keep-the-maximum dedup: when the current
// detail's amount exceeds another calculated, non-failed occurrence of the
// same tax name carrying an at-most-once limit, the smaller occurrence is
// marked failed. The detail being evaluated is never failed here.
type BlankLimitRule struct{}

func (r BlankLimitRule) Name() string     { return NameBlankLimit }
func (r BlankLimitRule) Describe() string { return "suppress duplicate at-most-once occurrences" }

func (r BlankLimitRule) CreateApplicator(_ int, _ *domain.Request, _ services.Bundle, raw *payment.RawPayments) Applicator {
	return &blankLimitApplicator{raw: raw}
}

type blankLimitApplicator struct {
	raw *payment.RawPayments
}

func (a *blankLimitApplicator) Name() string { return NameBlankLimit }

func (a *blankLimitApplicator) Apply(pd *payment.PaymentDetail) bool {
	if !pd.IsCalculated() || pd.IsFailedItinerary() {
		return true
	}

	for _, other := range a.raw.ForTaxName(pd.TaxName) {
		if other == pd || !other.IsCalculated() || other.IsFailedItinerary() {
			continue
		}
		switch other.RuleData.Limit {
		case domain.LimitOnceForItin, domain.LimitOncePerSingleJourney:
		default:
			continue
		}
		if pd.Calc.TaxAmount.GreaterThan(other.Calc.TaxAmount) {
			other.FailItinerary(NameBlankLimit)
		}
	}
	return true
}

// EnforceLimits runs the keep-the-maximum dedup over every registered
// at-most-once group once all chains for the itinerary have run. The
// in-chain applicator only sees occurrences recorded before its own detail,
// so when the larger amount is calculated first the smaller occurrence
// would survive; this sweep suppresses it. Ties are left alone, matching
// the strictly-greater in-chain semantics.
func EnforceLimits(limits *payment.LimitGroup) {
	for _, name := range limits.Names() {
		members := limits.Members(name)

		var best *payment.PaymentDetail
		for _, pd := range members {
			if !pd.IsCalculated() || pd.IsFailedItinerary() {
				continue
			}
			if best == nil || pd.Calc.TaxAmount.GreaterThan(best.Calc.TaxAmount) {
				best = pd
			}
		}
		if best == nil {
			continue
		}

		for _, pd := range members {
			if pd == best || !pd.IsCalculated() || pd.IsFailedItinerary() {
				continue
			}
			if best.Calc.TaxAmount.GreaterThan(pd.Calc.TaxAmount) {
				pd.FailItinerary(NameBlankLimit)
			}
		}
	}
}
