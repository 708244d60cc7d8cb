// Package grouping partitions itineraries into rule-equivalence classes so
// the expensive per-itinerary rule evaluation need only run once per class.
package grouping

import (
	"github.com/samber/lo"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/services"
)

// ItinGrouping combines date and flight-range segmentation plus AY
// prevalidation for one request. All caches are built in New and immutable
// afterwards, so the grouping may be shared across concurrently evaluated
// itineraries.
type ItinGrouping struct {
	dates   *DateSegmenter
	flights *FlightSegmenter
	ay      *AYPrevalidator
}

// New builds the segmenters over every nation the request's itineraries
// touch.
func New(req *domain.Request, svc services.Bundle) *ItinGrouping {
	nations := lo.Uniq(lo.FlatMap(req.Itins, func(it domain.Itin, _ int) []string {
		return it.GeoPath.Nations()
	}))

	return &ItinGrouping{
		dates:   NewDateSegmenter(svc.RulesRecords, nations, req.TicketingDate),
		flights: NewFlightSegmenter(svc.RulesRecords, svc.CarrierFlight, nations, req.TicketingDate),
		ay:      NewAYPrevalidator(req, svc),
	}
}

// GroupKey returns the equivalence-class key for one itinerary.
// Itineraries with equal keys are rule-equivalent and need only one full
// evaluation.
func (g *ItinGrouping) GroupKey(itin *domain.Itin) string {
	return g.dates.BuildKey(itin) + "|" + g.flights.BuildKey(itin)
}

// DoesAYApply runs the AY departure-tax prevalidation gate.
func (g *ItinGrouping) DoesAYApply(itinIndex int) bool {
	return g.ay.DoesAYApply(itinIndex)
}
