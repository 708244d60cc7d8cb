package domain

// Geo is one tax point in an itinerary's geo path. The host builds the path
// (two points per flight: a departure and an arrival) and the engine only
// reads it; classification flags are inputs, not derived here.
type Geo struct {
	// Index is the position of this point within its GeoPath.
	Index int `json:"index"`

	// LocCode is the airport/city code (e.g., "JFK").
	LocCode string `json:"loc_code" validate:"required"`

	// Nation is the two-letter nation code of the location (e.g., "US").
	Nation string `json:"nation" validate:"required,len=2"`

	Tag TaxPointTag `json:"tag" validate:"required,oneof=departure arrival sale delivery"`

	// UnticketedTransfer marks a point the ticket does not show (a hidden
	// stop). Rules configured with MatchTicketedOnly skip these points.
	UnticketedTransfer bool `json:"unticketed_transfer"`

	// Open marks a point belonging to an open (undated) segment. Open
	// points always count as stopovers.
	Open bool `json:"open"`

	// Stopover and FareBreak are the host's itinerary-segmentation inputs
	// for this point.
	Stopover  bool `json:"stopover"`
	FareBreak bool `json:"fare_break"`

	// InBufferZone marks a Canada/Mexico location inside the US buffer
	// zone. A US tax point adjacent to such a location is treated as if
	// the travel were domestic.
	InBufferZone bool `json:"in_buffer_zone"`
}

// IsTicketed reports whether the point participates under the given
// ticketed-point tag.
func (g *Geo) IsTicketed(tag TicketedPointTag) bool {
	if tag == MatchTicketedOnly {
		return !g.UnticketedTransfer
	}
	return true
}

// IsStopover reports whether the point counts as a stopover. Open segments
// always do.
func (g *Geo) IsStopover() bool {
	return g.Stopover || g.Open
}

// GeoPath is the ordered sequence of tax points for one itinerary.
type GeoPath struct {
	Geos []Geo `json:"geos" validate:"required,min=2,dive"`
}

// At returns the geo at index i, or nil when i is outside the path.
func (p *GeoPath) At(i int) *Geo {
	if i < 0 || i >= len(p.Geos) {
		return nil
	}
	return &p.Geos[i]
}

// Len returns the number of tax points in the path.
func (p *GeoPath) Len() int {
	return len(p.Geos)
}

// First and Last return the path boundaries; nil on an empty path.
func (p *GeoPath) First() *Geo {
	return p.At(0)
}

func (p *GeoPath) Last() *Geo {
	return p.At(len(p.Geos) - 1)
}

// FlightIndexForGeo maps a geo index to the index of the flight it belongs
// to. Geos come in departure/arrival pairs, so flight i owns geos 2i and
// 2i+1.
func FlightIndexForGeo(geoIndex int) int {
	return geoIndex / 2
}

// Nations returns the distinct nations touched by the path, in path order.
func (p *GeoPath) Nations() []string {
	seen := make(map[string]struct{}, len(p.Geos))
	var out []string
	for i := range p.Geos {
		n := p.Geos[i].Nation
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
