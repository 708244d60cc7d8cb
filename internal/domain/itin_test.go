package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *Request {
	dep := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &Request{
		TicketingDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		PaymentCurrency: "USD",
		Itins: []Itin{{
			ID: "itin-1",
			GeoPath: GeoPath{Geos: []Geo{
				{Index: 0, LocCode: "JFK", Nation: "US", Tag: TagDeparture},
				{Index: 1, LocCode: "LAX", Nation: "US", Tag: TagArrival},
			}},
			FlightUsages: []FlightUsage{{
				MarketingCarrier: "AA",
				FlightNumber:     100,
				Departure:        dep,
				Arrival:          dep.Add(6 * time.Hour),
			}},
			FarePath:         FarePath{TotalAmount: decimal.NewFromInt(500)},
			TravelOriginDate: dep,
		}},
	}
}

func TestRequest_Validate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		require.NoError(t, validRequest().Validate())
	})

	t.Run("geo path must pair with flights", func(t *testing.T) {
		req := validRequest()
		req.Itins[0].GeoPath.Geos = req.Itins[0].GeoPath.Geos[:1]
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, EINVALID, ErrorCode(err))
	})

	t.Run("yqyr segment index out of range", func(t *testing.T) {
		req := validRequest()
		req.Itins[0].YqYrs = []YqYrInput{{Code: "YQ", Amount: decimal.NewFromInt(10), SegmentIndex: 5}}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, EINVALID, ErrorCode(err))
	})

	t.Run("missing payment currency", func(t *testing.T) {
		req := validRequest()
		req.PaymentCurrency = ""
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, EINVALID, ErrorCode(err))
	})

	t.Run("missing itin id", func(t *testing.T) {
		req := validRequest()
		req.Itins[0].ID = ""
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, EINVALID, ErrorCode(err))
	})
}

func TestItin_FlightForGeo(t *testing.T) {
	req := validRequest()
	it := &req.Itins[0]

	assert.Equal(t, &it.FlightUsages[0], it.FlightForGeo(0))
	assert.Equal(t, &it.FlightUsages[0], it.FlightForGeo(1))
	assert.Nil(t, it.FlightForGeo(2))
	assert.Nil(t, it.FlightForGeo(-1))
}

func TestGeoPath_Nations(t *testing.T) {
	p := GeoPath{Geos: []Geo{
		{Nation: "US"}, {Nation: "US"},
		{Nation: "CA"}, {Nation: "US"},
	}}
	assert.Equal(t, []string{"US", "CA"}, p.Nations())
}

func TestGeo_IsTicketed(t *testing.T) {
	g := Geo{UnticketedTransfer: true}
	assert.True(t, g.IsTicketed(MatchTicketedAndUnticketed))
	assert.False(t, g.IsTicketed(MatchTicketedOnly))

	g.UnticketedTransfer = false
	assert.True(t, g.IsTicketed(MatchTicketedOnly))
}

func TestGeo_IsStopover(t *testing.T) {
	assert.False(t, (&Geo{}).IsStopover())
	assert.True(t, (&Geo{Stopover: true}).IsStopover())
	// Open segments always count as stopovers.
	assert.True(t, (&Geo{Open: true}).IsStopover())
}
