package payment

import (
	"github.com/shopspring/decimal"

	"github.com/dukerupert/aerotax/internal/domain"
)

// Payment is the produced output for one assessed tax: the final amount
// plus the failure markers a downstream response assembler reads.
type Payment struct {
	TaxName   domain.TaxName  `json:"tax_name"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Rounded   bool            `json:"rounded"`
	Exempt    bool            `json:"exempt"`

	// FailedRule is set when the itinerary subject failed; the tax was not
	// assessed at the itinerary level but service/surcharge lines may
	// still carry amounts.
	FailedRule string `json:"failed_rule,omitempty"`

	ServiceTaxes []ServiceTax `json:"service_taxes,omitempty"`
	YqYrTaxes    []YqYrTax    `json:"yqyr_taxes,omitempty"`

	// UnconvertedFallback flags a flat amount emitted in its original
	// currency after a failed conversion.
	UnconvertedFallback bool `json:"unconverted_fallback,omitempty"`
}

// ServiceTax is one optional-service line in the output.
type ServiceTax struct {
	ServiceGroup string          `json:"service_group"`
	Amount       decimal.Decimal `json:"amount"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	FailedRule   string          `json:"failed_rule,omitempty"`
}

// YqYrTax is one surcharge line in the output.
type YqYrTax struct {
	Code       string          `json:"code"`
	Amount     decimal.Decimal `json:"amount"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	FailedRule string          `json:"failed_rule,omitempty"`
}

// FromDetail assembles the output payment for a finished detail.
func FromDetail(pd *PaymentDetail) Payment {
	p := Payment{
		TaxName:             pd.TaxName,
		Amount:              pd.Calc.TaxAmount,
		Currency:            pd.Calc.Currency,
		Rounded:             pd.Calc.Rounded,
		Exempt:              pd.IsExempt(),
		FailedRule:          pd.ItineraryFailedRule(),
		UnconvertedFallback: pd.Calc.UnconvertedFallback,
	}
	for i := range pd.OptionalServices {
		os := &pd.OptionalServices[i]
		p.ServiceTaxes = append(p.ServiceTaxes, ServiceTax{
			ServiceGroup: os.ServiceGroup,
			Amount:       os.Amount,
			TaxAmount:    os.TaxAmount,
			FailedRule:   os.Subject.FailedRule,
		})
	}
	for i := 0; i < pd.YqYrs.Len(); i++ {
		p.YqYrTaxes = append(p.YqYrTaxes, YqYrTax{
			Code:       pd.YqYrs.Codes[i],
			Amount:     pd.YqYrs.Amounts[i],
			TaxAmount:  pd.YqYrs.TaxAmounts[i],
			FailedRule: pd.YqYrs.Subjects[i].FailedRule,
		})
	}
	return p
}
