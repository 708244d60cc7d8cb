package grouping

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/services"
)

type numRange struct {
	from, to int
}

type rangeKey struct {
	nation  string
	carrier string
	tag     domain.TaxPointTag
}

// FlightSegmenter buckets itineraries by the flight-number ranges the
// carrier-flight rule tables define. Range tables are keyed by (nation,
// carrier, tax point tag); "before" tables cover the flight arriving at a
// point, "after" tables the flight departing it. Built eagerly, immutable
// afterwards.
type FlightSegmenter struct {
	before map[rangeKey][]numRange
	after  map[rangeKey][]numRange

	// nations with at least one carrier-flight table, for a cheap skip.
	nations map[string]struct{}
}

// NewFlightSegmenter resolves every carrier-flight table referenced by the
// nations' rule records and builds the per-(nation, carrier, tag) range
// tables.
func NewFlightSegmenter(rulesSvc services.RulesRecordsService, cfSvc services.CarrierFlightService, nations []string, ticketingDate time.Time) *FlightSegmenter {
	s := &FlightSegmenter{
		before:  make(map[rangeKey][]numRange),
		after:   make(map[rangeKey][]numRange),
		nations: make(map[string]struct{}),
	}

	for _, nation := range nations {
		for _, tag := range domain.AllTaxPointTags() {
			for _, rc := range rulesSvc.GetTaxRulesContainers(nation, tag, ticketingDate) {
				if rc.RuleData.CarrierFlightItemNo == 0 {
					continue
				}
				cf := cfSvc.GetCarrierFlight(rc.RuleData.Vendor, rc.RuleData.CarrierFlightItemNo)
				if cf == nil {
					continue
				}
				s.nations[nation] = struct{}{}
				for _, seg := range cf.Segments {
					to := seg.FlightTo
					if to == 0 {
						to = seg.FlightFrom
					}
					key := rangeKey{nation: nation, carrier: seg.MarketingCarrier, tag: tag}
					r := numRange{from: seg.FlightFrom, to: to}
					if tag == domain.TagArrival {
						s.before[key] = append(s.before[key], r)
					} else {
						s.after[key] = append(s.after[key], r)
					}
				}
			}
		}
	}

	for _, tables := range []map[rangeKey][]numRange{s.before, s.after} {
		for k := range tables {
			rs := tables[k]
			sort.Slice(rs, func(i, j int) bool { return rs[i].from < rs[j].from })
			tables[k] = rs
		}
	}
	return s
}

// rangeIndex returns the index of the first range containing flightNo, or
// -1 when none does.
func rangeIndex(ranges []numRange, flightNo int) int {
	for i, r := range ranges {
		if flightNo >= r.from && flightNo <= r.to {
			return i
		}
	}
	return -1
}

// BuildKey encodes, for each geo whose nation carries carrier-flight
// tables, which range the adjacent flight's number falls into. Itineraries
// with identical encodings are rule-equivalent for flight-range-dependent
// taxes.
func (s *FlightSegmenter) BuildKey(itin *domain.Itin) string {
	var sb strings.Builder
	sb.WriteByte('F')
	for gi := range itin.GeoPath.Geos {
		geo := &itin.GeoPath.Geos[gi]
		if _, ok := s.nations[geo.Nation]; !ok {
			continue
		}
		flight := itin.FlightForGeo(geo.Index)
		if flight == nil {
			continue
		}
		key := rangeKey{nation: geo.Nation, carrier: flight.MarketingCarrier, tag: geo.Tag}
		tables := s.after
		if geo.Tag == domain.TagArrival {
			tables = s.before
		}
		ranges, ok := tables[key]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "|%d:%d", geo.Index, rangeIndex(ranges, flight.FlightNumber))
	}
	return sb.String()
}
