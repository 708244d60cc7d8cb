package rules

import (
	"github.com/shopspring/decimal"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/services"
)

// TaxRoundingRule rounds the computed amounts. Rule-level rounding wins
// when the record specifies a unit and direction; otherwise the point-of-
// sale nation's standard rounding applies. Must run after amount
// computation and before limit enforcement, since limit comparisons are
// amount-based.
type TaxRoundingRule struct{}

func (r TaxRoundingRule) Name() string     { return NameTaxRounding }
func (r TaxRoundingRule) Describe() string { return "round computed amounts" }

func (r TaxRoundingRule) CreateApplicator(_ int, req *domain.Request, svc services.Bundle, _ *payment.RawPayments) Applicator {
	return &taxRoundingApplicator{posNation: req.PointOfSale.Nation, svc: svc.Rounding}
}

type taxRoundingApplicator struct {
	posNation string
	svc       services.TaxRoundingInfoService
}

func (a *taxRoundingApplicator) Name() string { return NameTaxRounding }

func (a *taxRoundingApplicator) Apply(pd *payment.PaymentDetail) bool {
	if !pd.IsCalculated() {
		return true
	}

	unit := pd.RuleData.RoundingUnit
	dir := pd.RuleData.RoundingDir
	if unit.IsZero() || dir == domain.RoundNone {
		nr, ok := a.svc.GetNationRoundingInfo(a.posNation)
		if !ok {
			return true
		}
		unit, dir = nr.Unit, nr.Dir
	}

	round := func(d decimal.Decimal) decimal.Decimal {
		return a.svc.DoStandardRound(d, unit, dir)
	}

	if !pd.IsFailedItinerary() {
		pd.Calc.TaxAmount = round(pd.Calc.TaxAmount)
	}
	for i := range pd.Calc.FeeTaxAmounts {
		pd.Calc.FeeTaxAmounts[i] = round(pd.Calc.FeeTaxAmounts[i])
	}
	for i := range pd.OptionalServices {
		os := &pd.OptionalServices[i]
		if !os.Subject.Failed() {
			os.TaxAmount = round(os.TaxAmount)
		}
	}
	for i := 0; i < pd.YqYrs.Len(); i++ {
		if !pd.YqYrs.Subjects[i].Failed() {
			pd.YqYrs.TaxAmounts[i] = round(pd.YqYrs.TaxAmounts[i])
		}
	}

	pd.Calc.RoundingUnit = unit
	pd.Calc.RoundingDir = dir
	pd.Calc.Rounded = true
	return true
}
