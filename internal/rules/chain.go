package rules

import (
	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/services"
)

// Chain is the ordered applicator sequence for one (itinerary, tax record)
// pair. Rules run in the exact configured order; partial failures keep the
// chain alive for surviving subjects.
type Chain struct {
	applicators []Applicator
}

// NewChain builds every rule's applicator for the itinerary.
func NewChain(ruleSet []BusinessRule, itinIndex int, req *domain.Request, svc services.Bundle, raw *payment.RawPayments) *Chain {
	c := &Chain{applicators: make([]Applicator, 0, len(ruleSet))}
	for _, r := range ruleSet {
		c.applicators = append(c.applicators, r.CreateApplicator(itinIndex, req, svc, raw))
	}
	return c
}

// Run executes the chain against one payment detail. A false return from an
// applicator blocks the itinerary-level subject; the chain keeps running as
// long as any subject survives, so optional-service and YQ/YR evaluation
// continues independently. Returns whether anything survived the pass.
func (c *Chain) Run(pd *payment.PaymentDetail) bool {
	for _, a := range c.applicators {
		if a.Apply(pd) {
			continue
		}
		pd.FailItinerary(a.Name())
		if !pd.AnySubjectSurvives() {
			return false
		}
	}
	if !pd.IsFailedItinerary() {
		pd.SetValidated()
	}
	return pd.AnySubjectSurvives()
}
