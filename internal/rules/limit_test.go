package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/services"
)

func limitedDetail(req *domain.Request, amount int64) *payment.PaymentDetail {
	rd := testRule(func(rd *domain.PaymentRuleData) { rd.Limit = domain.LimitOnceForItin })
	pd := detailFor(req, rd, 0, 3)
	pd.Calc.TaxAmount = decimal.NewFromInt(amount)
	pd.SetCalculated()
	return pd
}

func TestBlankLimit_KeepsTheMaximum(t *testing.T) {
	req := testRequest()
	raw := payment.NewRawPayments()

	smaller := limitedDetail(req, 10)
	larger := limitedDetail(req, 15)
	raw.Add(smaller)
	raw.Add(larger)

	rule := BlankLimitRule{}
	a := rule.CreateApplicator(0, req, services.MockBundle(), raw)

	assert.True(t, a.Apply(smaller), "smaller occurrence does not suppress anything")
	assert.False(t, larger.IsFailedItinerary())

	assert.True(t, a.Apply(larger))
	assert.True(t, smaller.IsFailedItinerary(), "smaller occurrence is suppressed")
	assert.Equal(t, NameBlankLimit, smaller.ItineraryFailedRule())
	assert.False(t, larger.IsFailedItinerary(), "the evaluated detail is never failed here")
}

func TestBlankLimit_IgnoresUnlimitedRecords(t *testing.T) {
	req := testRequest()
	raw := payment.NewRawPayments()

	unlimited := detailFor(req, testRule(), 0, 3)
	unlimited.Calc.TaxAmount = decimal.NewFromInt(10)
	unlimited.SetCalculated()
	larger := limitedDetail(req, 15)
	raw.Add(unlimited)
	raw.Add(larger)

	a := BlankLimitRule{}.CreateApplicator(0, req, services.MockBundle(), raw)
	assert.True(t, a.Apply(larger))
	assert.False(t, unlimited.IsFailedItinerary(), "no limit on the record, no suppression")
}

func TestBlankLimit_SkipsUncalculatedAndFailed(t *testing.T) {
	req := testRequest()
	raw := payment.NewRawPayments()

	uncalculated := detailFor(req, testRule(func(rd *domain.PaymentRuleData) { rd.Limit = domain.LimitOnceForItin }), 0, 3)
	current := limitedDetail(req, 15)
	raw.Add(uncalculated)
	raw.Add(current)

	a := BlankLimitRule{}.CreateApplicator(0, req, services.MockBundle(), raw)
	assert.True(t, a.Apply(uncalculated), "uncalculated detail is a no-op")
	assert.True(t, a.Apply(current))
	assert.False(t, uncalculated.IsFailedItinerary(), "only calculated occurrences compete")
}

func TestEnforceLimits_SuppressesEarlierLargerOrdering(t *testing.T) {
	// The per-chain applicator never fails its own detail against one added
	// later, so with the larger amount first both occurrences survive the
	// chains. The final sweep must suppress the smaller one.
	req := testRequest()
	limits := payment.NewLimitGroup()

	larger := limitedDetail(req, 15)
	smaller := limitedDetail(req, 10)
	limits.Register(larger)
	limits.Register(smaller)

	EnforceLimits(limits)

	assert.False(t, larger.IsFailedItinerary())
	assert.True(t, smaller.IsFailedItinerary())
	assert.Equal(t, NameBlankLimit, smaller.ItineraryFailedRule())
}

func TestEnforceLimits_SkipsUncalculatedAndTies(t *testing.T) {
	req := testRequest()
	limits := payment.NewLimitGroup()

	uncalculated := detailFor(req, testRule(func(rd *domain.PaymentRuleData) { rd.Limit = domain.LimitOnceForItin }), 0, 3)
	tieA := limitedDetail(req, 15)
	tieB := limitedDetail(req, 15)
	limits.Register(uncalculated)
	limits.Register(tieA)
	limits.Register(tieB)

	EnforceLimits(limits)

	assert.False(t, uncalculated.IsFailedItinerary(), "only calculated occurrences compete")
	assert.False(t, tieA.IsFailedItinerary(), "equal amounts do not suppress each other")
	assert.False(t, tieB.IsFailedItinerary())
}

func TestEnforceLimits_GroupsByTaxName(t *testing.T) {
	req := testRequest()
	limits := payment.NewLimitGroup()

	other := limitedDetail(req, 10)
	other.TaxName.Code = "US2"
	larger := limitedDetail(req, 15)
	limits.Register(other)
	limits.Register(larger)

	EnforceLimits(limits)

	assert.False(t, other.IsFailedItinerary(), "different tax names do not compete")
	assert.False(t, larger.IsFailedItinerary())
}

func TestBlankLimit_DifferentTaxNamesDoNotCompete(t *testing.T) {
	req := testRequest()
	raw := payment.NewRawPayments()

	other := limitedDetail(req, 10)
	other.TaxName.Code = "US2"
	current := limitedDetail(req, 15)
	raw.Add(other)
	raw.Add(current)

	a := BlankLimitRule{}.CreateApplicator(0, req, services.MockBundle(), raw)
	assert.True(t, a.Apply(current))
	assert.False(t, other.IsFailedItinerary())
}
