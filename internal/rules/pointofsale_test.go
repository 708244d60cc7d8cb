package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/services"
)

func TestPointOfSale_EmptySalePointPassesVacuously(t *testing.T) {
	req := testRequest()
	req.PointOfSale = domain.PointOfSale{}

	svc := services.MockBundle()
	svc.Loc = &services.MockLoc{IsInLocFunc: func(loc, zone, vendor string) bool {
		t.Fatal("zone service must not be consulted for an empty sale point")
		return false
	}}

	rd := testRule(func(rd *domain.PaymentRuleData) { rd.POSZone = "Z1" })
	pd := detailFor(req, rd, 0, 3)
	rule := PointOfSaleRule{Zone: "Z1", Vendor: "ATP"}
	assert.True(t, apply(rule, req, svc, pd))
}

func TestPointOfSale_UnrestrictedRecordPasses(t *testing.T) {
	req := testRequest()
	pd := detailFor(req, testRule(), 0, 3)
	rule := PointOfSaleRule{Vendor: "ATP"}
	assert.True(t, apply(rule, req, services.MockBundle(), pd))
}

func TestPointOfSale_ZoneMatch(t *testing.T) {
	req := testRequest()
	svc := services.MockBundle()
	svc.Loc = &services.MockLoc{IsInLocFunc: func(loc, zone, vendor string) bool {
		return loc == "NYC" && zone == "Z1"
	}}

	rd := testRule(func(rd *domain.PaymentRuleData) { rd.POSZone = "Z1" })
	pd := detailFor(req, rd, 0, 3)
	assert.True(t, apply(PointOfSaleRule{Zone: "Z1", Vendor: "ATP"}, req, svc, pd))
}

func TestPointOfSale_ZoneMismatchBlocksEverySubject(t *testing.T) {
	req := testRequest()
	svc := services.MockBundle() // MockLoc defaults to false

	rd := testRule(func(rd *domain.PaymentRuleData) { rd.POSZone = "Z1" })
	pd := detailFor(req, rd, 0, 3)
	rule := PointOfSaleRule{Zone: "Z1", Vendor: "ATP"}

	assert.False(t, apply(rule, req, svc, pd))
	assert.False(t, pd.AnyServiceUnfailed())
	assert.False(t, pd.YqYrs.AnyUnfailed())
}

func TestTicketedPoint_NoRewriteForTicketedEnd(t *testing.T) {
	req := testRequest()
	rd := testRule(func(rd *domain.PaymentRuleData) { rd.TicketedPointTag = domain.MatchTicketedOnly })
	pd := detailFor(req, rd, 0, 3)
	end := pd.End

	rule := TicketedPointRule{TicketedPointTag: domain.MatchTicketedOnly}
	assert.True(t, apply(rule, req, services.MockBundle(), pd))
	assert.Same(t, end, pd.End)
}

func TestTicketedPoint_RewritesToNearestTicketedArrival(t *testing.T) {
	req := testRequest()
	geos := req.Itins[0].GeoPath.Geos
	geos[3].UnticketedTransfer = true // end point is a hidden stop

	rd := testRule(func(rd *domain.PaymentRuleData) { rd.TicketedPointTag = domain.MatchTicketedOnly })
	pd := detailFor(req, rd, 0, 3)
	rule := TicketedPointRule{TicketedPointTag: domain.MatchTicketedOnly}

	require.True(t, apply(rule, req, services.MockBundle(), pd))
	assert.Equal(t, 1, pd.End.Index, "end resolves to the previous ticketed arrival")
	assert.Equal(t, domain.TagArrival, pd.End.Tag)
}

func TestTicketedPoint_NoTicketedPointBlocks(t *testing.T) {
	req := testRequest()
	geos := req.Itins[0].GeoPath.Geos
	geos[1].UnticketedTransfer = true
	geos[3].UnticketedTransfer = true

	rd := testRule(func(rd *domain.PaymentRuleData) { rd.TicketedPointTag = domain.MatchTicketedOnly })
	pd := detailFor(req, rd, 0, 3)
	rule := TicketedPointRule{TicketedPointTag: domain.MatchTicketedOnly}

	assert.False(t, apply(rule, req, services.MockBundle(), pd))
}

func TestTicketedPoint_BothTagPassesThrough(t *testing.T) {
	req := testRequest()
	geos := req.Itins[0].GeoPath.Geos
	geos[3].UnticketedTransfer = true

	pd := detailFor(req, testRule(), 0, 3)
	rule := TicketedPointRule{TicketedPointTag: domain.MatchTicketedAndUnticketed}
	assert.True(t, apply(rule, req, services.MockBundle(), pd))
	assert.Equal(t, 3, pd.End.Index, "unticketed points participate, no rewrite")
}
