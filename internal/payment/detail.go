package payment

import (
	"github.com/shopspring/decimal"

	"github.com/dukerupert/aerotax/internal/domain"
)

// CalcDetails is the mutable amount block of a payment detail. Rounding
// configuration is resolved into it so the limit pass can compare final
// amounts.
type CalcDetails struct {
	TaxAmount    decimal.Decimal    `json:"tax_amount"`
	Currency     string             `json:"currency"`
	RoundingUnit decimal.Decimal    `json:"rounding_unit"`
	RoundingDir  domain.RoundingDir `json:"rounding_dir"`
	Rounded      bool               `json:"rounded"`

	// FeeTaxAmounts holds per-line-item taxes for ticketing/change fee
	// records, index-aligned with the fare path's fee list.
	FeeTaxAmounts []decimal.Decimal `json:"fee_tax_amounts,omitempty"`

	// UnconvertedFallback records that a flat amount could not be
	// converted and was used as-is. See the currency fallback note in
	// DESIGN.md.
	UnconvertedFallback bool `json:"unconverted_fallback,omitempty"`
}

// PaymentDetail is the computation state for one (itinerary, tax record)
// pair. Every applicator reads and mutates it in place; it is rebuilt per
// pricing pass and never persisted.
//
// Three taxable subjects live on it: the itinerary tax itself, the optional
// services, and the YQ/YR surcharges. Each fails independently.
type PaymentDetail struct {
	RuleData *domain.PaymentRuleData
	TaxName  domain.TaxName

	// Begin and End are tax point 1 and tax point 2. End may be rewritten
	// by ticketed-point resolution.
	Begin *domain.Geo
	End   *domain.Geo

	// TaxAmt is the configured amount off the rule record: a fraction for
	// percent records, a flat amount in the record's currency otherwise.
	TaxAmt decimal.Decimal

	Loc1StopoverTag domain.StopoverTag

	Calc CalcDetails

	OptionalServices []OptionalService
	YqYrs            TaxableYqYrs

	itinSubject   Subject
	validated     bool
	calculated    bool
	exempt        bool
	commandExempt bool
}

// NewPaymentDetail builds the computation state for one itinerary and one
// tax record, seeding the optional-service and YQ/YR subjects from the
// itinerary when the record's taxable units cover them.
func NewPaymentDetail(name domain.TaxName, rule *domain.PaymentRuleData, itin *domain.Itin, begin, end *domain.Geo) *PaymentDetail {
	pd := &PaymentDetail{
		RuleData: rule,
		TaxName:  name,
		Begin:    begin,
		End:      end,
		TaxAmt:   rule.Amount,
	}
	pd.Calc.Currency = rule.TaxCurrency
	if rule.CurrencyOverride != "" {
		pd.Calc.Currency = rule.CurrencyOverride
	}

	if rule.CoversUnit(domain.UnitOptionalService) {
		pd.OptionalServices = make([]OptionalService, 0, len(itin.OptionalServices))
		for _, os := range itin.OptionalServices {
			pd.OptionalServices = append(pd.OptionalServices, OptionalService{
				Amount:          os.Amount,
				ServiceGroup:    os.ServiceGroup,
				ServiceSubGroup: os.ServiceSubGroup,
				FlightRelation:  os.FlightRelation,
				Loc2Nation:      os.Loc2Nation,
			})
		}
	}
	if rule.CoversUnit(domain.UnitYqYr) {
		n := len(itin.YqYrs)
		pd.YqYrs = TaxableYqYrs{
			Codes:      make([]string, 0, n),
			Amounts:    make([]decimal.Decimal, 0, n),
			Loc2:       make([]string, 0, n),
			Segments:   make([]int, 0, n),
			Subjects:   make([]Subject, n),
			TaxAmounts: make([]decimal.Decimal, n),
		}
		for _, yq := range itin.YqYrs {
			pd.YqYrs.Codes = append(pd.YqYrs.Codes, yq.Code)
			pd.YqYrs.Amounts = append(pd.YqYrs.Amounts, yq.Amount)
			pd.YqYrs.Loc2 = append(pd.YqYrs.Loc2, yq.Loc2Nation)
			pd.YqYrs.Segments = append(pd.YqYrs.Segments, yq.SegmentIndex)
		}
	}
	return pd
}

// FailItinerary marks the itinerary-level subject failed by the named rule.
func (pd *PaymentDetail) FailItinerary(rule string) {
	pd.itinSubject.Fail(rule)
}

// IsFailedItinerary reports whether the itinerary-level subject failed.
func (pd *PaymentDetail) IsFailedItinerary() bool {
	return pd.itinSubject.Failed()
}

// ItineraryFailedRule returns the name of the rule that failed the
// itinerary subject, or "" when it has not failed.
func (pd *PaymentDetail) ItineraryFailedRule() string {
	return pd.itinSubject.FailedRule
}

// SetValidated records that the applicability chain accepted the detail.
func (pd *PaymentDetail) SetValidated() { pd.validated = true }

// IsValidated reports whether the applicability chain accepted the detail.
func (pd *PaymentDetail) IsValidated() bool { return pd.validated }

// SetCalculated freezes the itinerary amount for this rule pass. Amount
// applicators must not touch a calculated detail again.
func (pd *PaymentDetail) SetCalculated() { pd.calculated = true }

// IsCalculated reports whether the itinerary amount is frozen.
func (pd *PaymentDetail) IsCalculated() bool { return pd.calculated }

// SetExempt marks the tax exempted. Exemption and rule failure are
// independent: a tax can be exempted for one subject while failing rule
// validation for another.
func (pd *PaymentDetail) SetExempt()        { pd.exempt = true }
func (pd *PaymentDetail) IsExempt() bool    { return pd.exempt }
func (pd *PaymentDetail) SetCommandExempt() { pd.commandExempt = true }
func (pd *PaymentDetail) IsCommandExempt() bool { return pd.commandExempt }

// AnyServiceUnfailed reports whether at least one optional service survives.
func (pd *PaymentDetail) AnyServiceUnfailed() bool {
	for i := range pd.OptionalServices {
		if !pd.OptionalServices[i].Subject.Failed() {
			return true
		}
	}
	return false
}

// AnySubjectSurvives reports whether the rule chain should keep running:
// the itinerary subject, any optional service, or any YQ/YR entry is still
// alive.
func (pd *PaymentDetail) AnySubjectSurvives() bool {
	if !pd.itinSubject.Failed() {
		return true
	}
	if pd.AnyServiceUnfailed() {
		return true
	}
	return pd.YqYrs.AnyUnfailed()
}
