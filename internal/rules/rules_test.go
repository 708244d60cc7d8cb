package rules

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/services"
)

// Test fixtures shared by the rule tests. One itinerary JFK-ORD-YYZ with
// geos indexed 0..3; tweak geos per test case as needed.

func testRequest() *domain.Request {
	dep1 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	dep2 := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	return &domain.Request{
		TicketingDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		PaymentCurrency: "USD",
		PointOfSale:     domain.PointOfSale{LocCode: "NYC", Nation: "US"},
		Itins: []domain.Itin{{
			ID: "itin-1",
			GeoPath: domain.GeoPath{Geos: []domain.Geo{
				{Index: 0, LocCode: "JFK", Nation: "US", Tag: domain.TagDeparture, Stopover: true, FareBreak: true},
				{Index: 1, LocCode: "ORD", Nation: "US", Tag: domain.TagArrival},
				{Index: 2, LocCode: "ORD", Nation: "US", Tag: domain.TagDeparture},
				{Index: 3, LocCode: "YYZ", Nation: "CA", Tag: domain.TagArrival, Stopover: true, FareBreak: true},
			}},
			FlightUsages: []domain.FlightUsage{
				{MarketingCarrier: "AA", FlightNumber: 100, Departure: dep1, Arrival: dep1.Add(2 * time.Hour)},
				{MarketingCarrier: "AA", FlightNumber: 200, Departure: dep2, Arrival: dep2.Add(2 * time.Hour)},
			},
			FarePath:         domain.FarePath{TotalAmount: decimal.NewFromInt(1000), ValidatingCarrier: "AA"},
			Passenger:        domain.Passenger{TypeCode: "ADT"},
			TravelOriginDate: dep1,
			OptionalServices: []domain.OptionalServiceInput{
				{Amount: decimal.NewFromInt(30), ServiceGroup: "BG", FlightRelation: domain.FlightRelationSegment},
				{Amount: decimal.NewFromInt(15), ServiceGroup: "ML", FlightRelation: domain.FlightRelationJourney},
			},
			YqYrs: []domain.YqYrInput{
				{Code: "YQ", Amount: decimal.NewFromInt(20), SegmentIndex: 0},
			},
		}},
	}
}

func testRule(mut ...func(*domain.PaymentRuleData)) *domain.PaymentRuleData {
	rd := &domain.PaymentRuleData{
		Vendor:      "ATP",
		TaxPointTag: domain.TagDeparture,
		Amount:      decimal.RequireFromString("0.1"),
		TaxableUnits: []domain.TaxableUnit{
			domain.UnitItinerary, domain.UnitOptionalService, domain.UnitYqYr,
		},
	}
	for _, m := range mut {
		m(rd)
	}
	return rd
}

func detailFor(req *domain.Request, rd *domain.PaymentRuleData, beginIdx, endIdx int) *payment.PaymentDetail {
	itin := &req.Itins[0]
	name := domain.TaxName{Code: "US1", Type: "001", Nation: "US", PercentFlat: domain.PercentTag}
	return payment.NewPaymentDetail(name, rd, itin, itin.GeoPath.At(beginIdx), itin.GeoPath.At(endIdx))
}

func apply(r BusinessRule, req *domain.Request, svc services.Bundle, pd *payment.PaymentDetail) bool {
	return r.CreateApplicator(0, req, svc, payment.NewRawPayments()).Apply(pd)
}

func TestForRecord_Order(t *testing.T) {
	rc := domain.RulesContainer{
		TaxName: domain.TaxName{Code: "US1", Type: "001", Nation: "US", PercentFlat: domain.PercentTag},
		RuleData: testRule(func(rd *domain.PaymentRuleData) {
			rd.StopoverTag = domain.StopoverTagStopover
			rd.IntlDomLoc1 = domain.AdjacentInternational
			rd.IntlDomLoc2 = domain.AdjacentInternational
			rd.CarrierFlightItemNo = 1
			rd.PassengerTypeItemNo = 2
			rd.SectorDetailItemNo = 3
			rd.ExemptTag = true
		}),
	}

	var names []string
	for _, r := range ForRecord(rc) {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{
		NamePointOfSale,
		NameTicketedPoint,
		NameLoc1StopoverTag,
		NameIntlDomLoc1,
		NameIntlDomLoc2,
		NameCarrierFlight,
		NamePassengerType,
		NameSectorDetail,
		NameExempt,
		NameTaxOnFare,
		NameTaxRounding,
		NameBlankLimit,
	}, names)
}

func TestForRecord_UnconfiguredChecksOmitted(t *testing.T) {
	rc := domain.RulesContainer{
		TaxName:  domain.TaxName{Code: "US1", Type: "001", Nation: "US", PercentFlat: domain.PercentTag},
		RuleData: testRule(),
	}

	var names []string
	for _, r := range ForRecord(rc) {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{
		NamePointOfSale,
		NameTicketedPoint,
		NameTaxOnFare,
		NameTaxRounding,
		NameBlankLimit,
	}, names)
}

func TestForRecord_FeeTaxSelection(t *testing.T) {
	base := domain.RulesContainer{
		TaxName:  domain.TaxName{Code: "US1", Type: "001", Nation: "US", PercentFlat: domain.PercentTag},
		RuleData: testRule(func(rd *domain.PaymentRuleData) { rd.TaxAppliesTo = domain.TaxAppliesToTicketingFee }),
	}
	names := func(rc domain.RulesContainer) []string {
		var out []string
		for _, r := range ForRecord(rc) {
			out = append(out, r.Name())
		}
		return out
	}
	assert.Contains(t, names(base), NameTaxOnTicketingFee)

	base.RuleData = testRule(func(rd *domain.PaymentRuleData) { rd.TaxAppliesTo = domain.TaxAppliesToChangeFee })
	assert.Contains(t, names(base), NameTaxOnChangeFee)
}

func TestChain_Run(t *testing.T) {
	t.Run("clean pass validates the detail", func(t *testing.T) {
		req := testRequest()
		rc := domain.RulesContainer{
			TaxName:  domain.TaxName{Code: "US1", Type: "001", Nation: "US", PercentFlat: domain.PercentTag},
			RuleData: testRule(),
		}
		pd := detailFor(req, rc.RuleData, 0, 3)
		chain := NewChain(ForRecord(rc), 0, req, services.MockBundle(), payment.NewRawPayments())

		assert.True(t, chain.Run(pd))
		assert.True(t, pd.IsValidated())
		assert.False(t, pd.IsFailedItinerary())
		assert.True(t, pd.IsCalculated())
	})

	t.Run("itinerary failure keeps chain alive for other subjects", func(t *testing.T) {
		req := testRequest()
		// Tax point 1 is a stopover, so a connection requirement blanks out.
		rc := domain.RulesContainer{
			TaxName: domain.TaxName{Code: "US1", Type: "001", Nation: "US", PercentFlat: domain.PercentTag},
			RuleData: testRule(func(rd *domain.PaymentRuleData) {
				rd.StopoverTag = domain.StopoverTagConnection
			}),
		}
		pd := detailFor(req, rc.RuleData, 0, 3)
		chain := NewChain(ForRecord(rc), 0, req, services.MockBundle(), payment.NewRawPayments())

		assert.True(t, chain.Run(pd), "journey-related service still survives")
		assert.True(t, pd.IsFailedItinerary())
		assert.Equal(t, NameLoc1StopoverTag, pd.ItineraryFailedRule())
		assert.False(t, pd.IsValidated())
		// Amounts are still computed for the surviving service subject.
		assert.True(t, pd.IsCalculated())
		assert.True(t, pd.OptionalServices[1].TaxAmount.Equal(decimal.RequireFromString("1.5")))
	})
}
