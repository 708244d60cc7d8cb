package grouping

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/services"
)

// DateSegmenter buckets itineraries by the travel-date boundaries the rule
// records define. Two itineraries landing in the same buckets are
// rule-equivalent for date-dependent taxes. The boundary lists are built
// once up front and immutable afterwards, so concurrent itinerary
// processing only ever reads.
type DateSegmenter struct {
	journeyBounds  []time.Time
	taxPointBounds []time.Time
}

// NewDateSegmenter scans every rule container for the given nations across
// all four tax point tags, collecting journey-level and tax-point-level
// travel date boundaries. Boundaries beyond the ticketing date can never
// matter and are discarded.
func NewDateSegmenter(svc services.RulesRecordsService, nations []string, ticketingDate time.Time) *DateSegmenter {
	var journey, taxPoint []time.Time

	collect := func(list *[]time.Time, b domain.DateBounds) {
		if !b.First.IsZero() {
			*list = append(*list, b.First)
		}
		if !b.Last.IsZero() {
			// The day after the window closes starts a new bucket.
			*list = append(*list, b.Last.AddDate(0, 0, 1))
		}
	}

	for _, nation := range nations {
		for _, tag := range domain.AllTaxPointTags() {
			for _, rc := range svc.GetTaxRulesContainers(nation, tag, ticketingDate) {
				collect(&journey, rc.RuleData.JourneyDates)
				collect(&taxPoint, rc.RuleData.TaxPointDates)
			}
		}
	}

	prune := func(list []time.Time) []time.Time {
		kept := lo.Filter(list, func(t time.Time, _ int) bool {
			return !t.After(ticketingDate)
		})
		kept = lo.Uniq(kept)
		sort.Slice(kept, func(i, j int) bool { return kept[i].Before(kept[j]) })
		return kept
	}

	return &DateSegmenter{
		journeyBounds:  prune(journey),
		taxPointBounds: prune(taxPoint),
	}
}

// bucket returns the index of the boundary bucket d falls into: the number
// of boundaries at or before d.
func bucket(bounds []time.Time, d time.Time) int {
	n := 0
	for _, b := range bounds {
		if b.After(d) {
			break
		}
		n++
	}
	return n
}

// BuildKey appends the bucket index of the itinerary's origin date and of
// each flight's departure date to a segmentation key. Moving any relevant
// date across a single boundary changes the key.
func (s *DateSegmenter) BuildKey(itin *domain.Itin) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "J%d|T", bucket(s.journeyBounds, itin.TravelOriginDate))
	for i := range itin.FlightUsages {
		if i > 0 {
			sb.WriteByte('.')
		}
		fmt.Fprintf(&sb, "%d", bucket(s.taxPointBounds, itin.FlightUsages[i].Departure))
	}
	return sb.String()
}
