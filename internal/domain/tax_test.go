package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateBounds_Contains(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad date %q: %v", s, err)
		}
		return d
	}

	tests := []struct {
		name     string
		bounds   DateBounds
		date     time.Time
		expected bool
	}{
		{
			name:     "unbounded contains everything",
			bounds:   DateBounds{},
			date:     day("2026-03-15"),
			expected: true,
		},
		{
			name:     "inside window",
			bounds:   DateBounds{First: day("2026-01-01"), Last: day("2026-12-31")},
			date:     day("2026-06-01"),
			expected: true,
		},
		{
			name:     "on first boundary",
			bounds:   DateBounds{First: day("2026-01-01")},
			date:     day("2026-01-01"),
			expected: true,
		},
		{
			name:     "on last boundary",
			bounds:   DateBounds{Last: day("2026-12-31")},
			date:     day("2026-12-31"),
			expected: true,
		},
		{
			name:     "before window",
			bounds:   DateBounds{First: day("2026-01-01")},
			date:     day("2025-12-31"),
			expected: false,
		},
		{
			name:     "after window",
			bounds:   DateBounds{Last: day("2026-12-31")},
			date:     day("2027-01-01"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.bounds.Contains(tt.date))
		})
	}
}

func TestPaymentRuleData_CoversUnit(t *testing.T) {
	tests := []struct {
		name     string
		units    []TaxableUnit
		unit     TaxableUnit
		expected bool
	}{
		{
			name:     "empty set covers itinerary",
			units:    nil,
			unit:     UnitItinerary,
			expected: true,
		},
		{
			name:     "empty set does not cover services",
			units:    nil,
			unit:     UnitOptionalService,
			expected: false,
		},
		{
			name:     "listed unit covered",
			units:    []TaxableUnit{UnitItinerary, UnitYqYr},
			unit:     UnitYqYr,
			expected: true,
		},
		{
			name:     "unlisted unit not covered",
			units:    []TaxableUnit{UnitItinerary},
			unit:     UnitOptionalService,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := PaymentRuleData{TaxableUnits: tt.units}
			assert.Equal(t, tt.expected, rd.CoversUnit(tt.unit))
		})
	}
}

func TestTaxName_String(t *testing.T) {
	n := TaxName{Code: "US1", Type: "001", Nation: "US", PercentFlat: PercentTag}
	assert.Equal(t, "US/US1/001", n.String())
}

func TestFlightIndexForGeo(t *testing.T) {
	assert.Equal(t, 0, FlightIndexForGeo(0))
	assert.Equal(t, 0, FlightIndexForGeo(1))
	assert.Equal(t, 1, FlightIndexForGeo(2))
	assert.Equal(t, 1, FlightIndexForGeo(3))
	assert.Equal(t, 2, FlightIndexForGeo(4))
}

func TestCarrierFlightSegment_Matches(t *testing.T) {
	tests := []struct {
		name     string
		seg      CarrierFlightSegment
		carrier  string
		flightNo int
		expected bool
	}{
		{
			name:     "in range",
			seg:      CarrierFlightSegment{MarketingCarrier: "AA", FlightFrom: 100, FlightTo: 200},
			carrier:  "AA",
			flightNo: 150,
			expected: true,
		},
		{
			name:     "wrong carrier",
			seg:      CarrierFlightSegment{MarketingCarrier: "AA", FlightFrom: 100, FlightTo: 200},
			carrier:  "DL",
			flightNo: 150,
			expected: false,
		},
		{
			name:     "zero to matches from exactly",
			seg:      CarrierFlightSegment{MarketingCarrier: "AA", FlightFrom: 100},
			carrier:  "AA",
			flightNo: 100,
			expected: true,
		},
		{
			name:     "zero to rejects off-by-one",
			seg:      CarrierFlightSegment{MarketingCarrier: "AA", FlightFrom: 100},
			carrier:  "AA",
			flightNo: 101,
			expected: false,
		},
		{
			name:     "blank carrier matches any",
			seg:      CarrierFlightSegment{FlightFrom: 1, FlightTo: 9999},
			carrier:  "UA",
			flightNo: 42,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.seg.Matches(tt.carrier, tt.flightNo))
		})
	}
}
