package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/services"
)

func TestTaxRounding_RuleLevelWins(t *testing.T) {
	req := testRequest()
	rd := testRule(func(rd *domain.PaymentRuleData) {
		rd.RoundingUnit = decimal.RequireFromString("0.1")
		rd.RoundingDir = domain.RoundUp
	})
	pd := detailFor(req, rd, 0, 3)
	pd.Calc.TaxAmount = decimal.RequireFromString("10.01")
	pd.SetCalculated()

	svc := services.MockBundle()
	// Nation rounding would round down; the rule's own config must win.
	svc.Rounding = &services.MockRounding{Nations: map[string]services.NationRounding{
		"US": {Unit: decimal.NewFromInt(1), Dir: domain.RoundDown},
	}}

	assert.True(t, apply(TaxRoundingRule{}, req, svc, pd))
	assert.True(t, pd.Calc.TaxAmount.Equal(decimal.RequireFromString("10.1")), "got %s", pd.Calc.TaxAmount)
	assert.True(t, pd.Calc.Rounded)
	assert.Equal(t, domain.RoundUp, pd.Calc.RoundingDir)
}

func TestTaxRounding_NationFallback(t *testing.T) {
	req := testRequest()
	rd := testRule()
	pd := detailFor(req, rd, 0, 3)
	pd.Calc.TaxAmount = decimal.RequireFromString("10.49")
	pd.SetCalculated()

	svc := services.MockBundle()
	svc.Rounding = &services.MockRounding{Nations: map[string]services.NationRounding{
		"US": {Unit: decimal.NewFromInt(1), Dir: domain.RoundNearest},
	}}

	assert.True(t, apply(TaxRoundingRule{}, req, svc, pd))
	assert.True(t, pd.Calc.TaxAmount.Equal(decimal.NewFromInt(10)))
	assert.True(t, pd.Calc.Rounded)
}

func TestTaxRounding_NoConventionLeavesAmount(t *testing.T) {
	req := testRequest()
	rd := testRule()
	pd := detailFor(req, rd, 0, 3)
	pd.Calc.TaxAmount = decimal.RequireFromString("10.49")
	pd.SetCalculated()

	assert.True(t, apply(TaxRoundingRule{}, req, services.MockBundle(), pd))
	assert.True(t, pd.Calc.TaxAmount.Equal(decimal.RequireFromString("10.49")))
	assert.False(t, pd.Calc.Rounded)
}

func TestTaxRounding_SkipsUncalculated(t *testing.T) {
	req := testRequest()
	rd := testRule(func(rd *domain.PaymentRuleData) {
		rd.RoundingUnit = decimal.NewFromInt(1)
		rd.RoundingDir = domain.RoundUp
	})
	pd := detailFor(req, rd, 0, 3)
	pd.Calc.TaxAmount = decimal.RequireFromString("10.49")

	assert.True(t, apply(TaxRoundingRule{}, req, services.MockBundle(), pd))
	assert.False(t, pd.Calc.Rounded, "amounts round only after computation")
}

func TestTaxRounding_RoundsSubjectAmounts(t *testing.T) {
	req := testRequest()
	rd := testRule(func(rd *domain.PaymentRuleData) {
		rd.RoundingUnit = decimal.NewFromInt(1)
		rd.RoundingDir = domain.RoundUp
	})
	pd := detailFor(req, rd, 0, 3)
	pd.Calc.TaxAmount = decimal.RequireFromString("9.2")
	pd.OptionalServices[0].TaxAmount = decimal.RequireFromString("3.1")
	pd.OptionalServices[1].Subject.Fail("rule_x")
	pd.OptionalServices[1].TaxAmount = decimal.RequireFromString("1.5")
	pd.YqYrs.TaxAmounts[0] = decimal.RequireFromString("2.9")
	pd.SetCalculated()

	assert.True(t, apply(TaxRoundingRule{}, req, services.MockBundle(), pd))
	assert.True(t, pd.Calc.TaxAmount.Equal(decimal.NewFromInt(10)))
	assert.True(t, pd.OptionalServices[0].TaxAmount.Equal(decimal.NewFromInt(4)))
	assert.True(t, pd.OptionalServices[1].TaxAmount.Equal(decimal.RequireFromString("1.5")),
		"failed subject amounts stay untouched")
	assert.True(t, pd.YqYrs.TaxAmounts[0].Equal(decimal.NewFromInt(3)))
}
