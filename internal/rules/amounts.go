package rules

import (
	"github.com/shopspring/decimal"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/services"
)

// flatAmount converts the record's flat amount into the payment currency.
// On conversion failure the unconverted amount is used instead of
// propagating the error; the fallback is recorded on the detail so the
// caller can surface it. See the currency fallback note in DESIGN.md.
func flatAmount(pd *payment.PaymentDetail, currency services.CurrencyService, target string) (decimal.Decimal, string) {
	converted, err := currency.ConvertTo(target, services.Money{
		Amount:   pd.TaxAmt,
		Currency: pd.RuleData.TaxCurrency,
	})
	if err != nil {
		pd.Calc.UnconvertedFallback = true
		return pd.TaxAmt, pd.RuleData.TaxCurrency
	}
	return converted, target
}

// TaxOnFareRule computes the tax amount over the fare, plus the
// per-service and per-surcharge amounts for surviving subjects.
type TaxOnFareRule struct{}

func (r TaxOnFareRule) Name() string     { return NameTaxOnFare }
func (r TaxOnFareRule) Describe() string { return "compute tax on fare amount" }

func (r TaxOnFareRule) CreateApplicator(itinIndex int, req *domain.Request, svc services.Bundle, _ *payment.RawPayments) Applicator {
	return &taxOnFareApplicator{
		itin:     &req.Itins[itinIndex],
		currency: svc.Currency,
		target:   req.PaymentCurrency,
	}
}

type taxOnFareApplicator struct {
	itin     *domain.Itin
	currency services.CurrencyService
	target   string
}

func (a *taxOnFareApplicator) Name() string { return NameTaxOnFare }

// Apply computes amounts once; a calculated detail is frozen and a failed
// itinerary subject contributes no further itinerary amount, while
// surviving optional-service and YQ/YR subjects still receive theirs.
func (a *taxOnFareApplicator) Apply(pd *payment.PaymentDetail) bool {
	if pd.IsCalculated() {
		return true
	}

	percent := pd.TaxName.PercentFlat == domain.PercentTag

	var itinTax decimal.Decimal
	currency := a.target
	if percent {
		itinTax = a.itin.FarePath.TotalAmount.Mul(pd.TaxAmt)
	} else {
		itinTax, currency = flatAmount(pd, a.currency, a.target)
	}

	if !pd.IsFailedItinerary() && !pd.IsExempt() {
		pd.Calc.TaxAmount = itinTax
		pd.Calc.Currency = currency
	}

	for i := range pd.OptionalServices {
		os := &pd.OptionalServices[i]
		if os.Subject.Failed() {
			continue
		}
		if percent {
			os.TaxAmount = os.Amount.Mul(pd.TaxAmt)
		} else {
			os.TaxAmount = itinTax
		}
	}
	for i := 0; i < pd.YqYrs.Len(); i++ {
		if pd.YqYrs.Subjects[i].Failed() {
			continue
		}
		if percent {
			pd.YqYrs.TaxAmounts[i] = pd.YqYrs.Amounts[i].Mul(pd.TaxAmt)
		} else {
			pd.YqYrs.TaxAmounts[i] = itinTax
		}
	}

	pd.SetCalculated()
	return true
}

// TaxOnTicketingFeeRule computes the tax per ticketing-fee line item.
type TaxOnTicketingFeeRule struct{}

func (r TaxOnTicketingFeeRule) Name() string     { return NameTaxOnTicketingFee }
func (r TaxOnTicketingFeeRule) Describe() string { return "compute tax per ticketing fee" }

func (r TaxOnTicketingFeeRule) CreateApplicator(itinIndex int, req *domain.Request, svc services.Bundle, _ *payment.RawPayments) Applicator {
	return &feeTaxApplicator{
		name:     NameTaxOnTicketingFee,
		fees:     req.Itins[itinIndex].FarePath.TicketingFees,
		currency: svc.Currency,
		target:   req.PaymentCurrency,
	}
}

// TaxOnChangeFeeRule computes the tax per change-fee line item.
type TaxOnChangeFeeRule struct{}

func (r TaxOnChangeFeeRule) Name() string     { return NameTaxOnChangeFee }
func (r TaxOnChangeFeeRule) Describe() string { return "compute tax per change fee" }

func (r TaxOnChangeFeeRule) CreateApplicator(itinIndex int, req *domain.Request, svc services.Bundle, _ *payment.RawPayments) Applicator {
	return &feeTaxApplicator{
		name:     NameTaxOnChangeFee,
		fees:     req.Itins[itinIndex].FarePath.ChangeFees,
		currency: svc.Currency,
		target:   req.PaymentCurrency,
	}
}

type feeTaxApplicator struct {
	name     string
	fees     []domain.TicketingFee
	currency services.CurrencyService
	target   string
}

func (a *feeTaxApplicator) Name() string { return a.name }

// Apply repeats the percent or flat computation per fee line item rather
// than once; the itinerary-level amount is the sum.
func (a *feeTaxApplicator) Apply(pd *payment.PaymentDetail) bool {
	if pd.IsCalculated() {
		return true
	}

	percent := pd.TaxName.PercentFlat == domain.PercentTag
	currency := a.target
	total := decimal.Zero

	pd.Calc.FeeTaxAmounts = make([]decimal.Decimal, 0, len(a.fees))
	for _, fee := range a.fees {
		var tax decimal.Decimal
		if percent {
			tax = fee.Amount.Mul(pd.TaxAmt)
		} else {
			tax, currency = flatAmount(pd, a.currency, a.target)
		}
		pd.Calc.FeeTaxAmounts = append(pd.Calc.FeeTaxAmounts, tax)
		total = total.Add(tax)
	}

	if !pd.IsFailedItinerary() && !pd.IsExempt() {
		pd.Calc.TaxAmount = total
		pd.Calc.Currency = currency
	}

	pd.SetCalculated()
	return true
}
