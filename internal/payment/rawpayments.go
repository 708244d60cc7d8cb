package payment

import (
	"github.com/dukerupert/aerotax/internal/domain"
)

// RawPayment is one {tax name, detail} pair in an itinerary's working set.
type RawPayment struct {
	TaxName domain.TaxName
	Detail  *PaymentDetail
}

// RawPayments is the ordered working set of details for one itinerary. The
// limit applicator and the AY prevalidator scan it; order is the rule
// records' sequence order.
type RawPayments struct {
	entries []RawPayment
}

// NewRawPayments returns an empty working set.
func NewRawPayments() *RawPayments {
	return &RawPayments{}
}

// Add appends a detail to the working set.
func (r *RawPayments) Add(pd *PaymentDetail) {
	r.entries = append(r.entries, RawPayment{TaxName: pd.TaxName, Detail: pd})
}

// Entries returns the working set in insertion order.
func (r *RawPayments) Entries() []RawPayment {
	return r.entries
}

// ForTaxName returns every detail recorded under the given tax name.
func (r *RawPayments) ForTaxName(name domain.TaxName) []*PaymentDetail {
	var out []*PaymentDetail
	for _, e := range r.entries {
		if e.TaxName == name {
			out = append(out, e.Detail)
		}
	}
	return out
}

// LimitGroup is the cross-detail bookkeeping for "apply at most once"
// constraints within one pricing request. It holds non-owning references
// keyed by tax name; details stay owned by their RawPayments.
type LimitGroup struct {
	byName map[domain.TaxName][]*PaymentDetail
}

// NewLimitGroup returns an empty limit group for one pricing request.
func NewLimitGroup() *LimitGroup {
	return &LimitGroup{byName: make(map[domain.TaxName][]*PaymentDetail)}
}

// Register records a detail under its tax name when its record carries an
// at-most-once limit.
func (g *LimitGroup) Register(pd *PaymentDetail) {
	switch pd.RuleData.Limit {
	case domain.LimitOnceForItin, domain.LimitOncePerSingleJourney:
		g.byName[pd.TaxName] = append(g.byName[pd.TaxName], pd)
	}
}

// Members returns every registered detail for the tax name.
func (g *LimitGroup) Members(name domain.TaxName) []*PaymentDetail {
	return g.byName[name]
}

// Names returns every tax name with at least one registered detail.
func (g *LimitGroup) Names() []domain.TaxName {
	names := make([]domain.TaxName, 0, len(g.byName))
	for name := range g.byName {
		names = append(names, name)
	}
	return names
}
