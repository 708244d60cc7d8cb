package domain

// TaxPointTag identifies the kind of location a tax may be assessed at.
type TaxPointTag string

const (
	TagDeparture TaxPointTag = "departure"
	TagArrival   TaxPointTag = "arrival"
	TagSale      TaxPointTag = "sale"
	TagDelivery  TaxPointTag = "delivery"
)

// AllTaxPointTags lists the tags in the order grouping and rule lookup scan them.
func AllTaxPointTags() []TaxPointTag {
	return []TaxPointTag{TagDeparture, TagArrival, TagSale, TagDelivery}
}

// StopoverTag classifies tax point 1 relative to the surrounding travel.
// Blank means none of the configured classifications matched.
type StopoverTag string

const (
	StopoverTagBlank        StopoverTag = ""
	StopoverTagConnection   StopoverTag = "connection"
	StopoverTagStopover     StopoverTag = "stopover"
	StopoverTagFareBreak    StopoverTag = "fare_break"
	StopoverTagNotFareBreak StopoverTag = "not_fare_break"
)

// AdjacentIntlDomInd configures the international/domestic adjacency check.
type AdjacentIntlDomInd string

const (
	AdjacentBlank                 AdjacentIntlDomInd = ""
	AdjacentStopoverDomestic      AdjacentIntlDomInd = "adjacent_stopover_domestic"
	AdjacentStopoverInternational AdjacentIntlDomInd = "adjacent_stopover_international"
	AdjacentDomestic              AdjacentIntlDomInd = "adjacent_domestic"
	AdjacentInternational         AdjacentIntlDomInd = "adjacent_international"
)

// PercentFlatTag selects the computation mode of a tax record.
type PercentFlatTag string

const (
	PercentTag PercentFlatTag = "percent"
	FlatTag    PercentFlatTag = "flat"
)

// TicketedPointTag controls whether unticketed transfer points participate
// in adjacency walks and stopover classification.
type TicketedPointTag string

const (
	MatchTicketedAndUnticketed TicketedPointTag = "ticketed_and_unticketed"
	MatchTicketedOnly          TicketedPointTag = "ticketed_only"
)

// LimitType constrains how often a tax may apply across an itinerary.
type LimitType string

const (
	LimitNone             LimitType = ""
	LimitOnceForItin      LimitType = "once_for_itin"
	LimitOncePerSingleJourney LimitType = "once_per_single_journey"
)

// TaxAppliesToTag selects which taxable base the amount computation reads.
type TaxAppliesToTag string

const (
	TaxAppliesToFare         TaxAppliesToTag = "fare"
	TaxAppliesToTicketingFee TaxAppliesToTag = "ticketing_fee"
	TaxAppliesToChangeFee    TaxAppliesToTag = "change_fee"
)

// TaxableUnit names one of the independently taxable subjects a record covers.
type TaxableUnit string

const (
	UnitItinerary       TaxableUnit = "itinerary"
	UnitOptionalService TaxableUnit = "optional_service"
	UnitYqYr            TaxableUnit = "yqyr"
	UnitTicketingFee    TaxableUnit = "ticketing_fee"
	UnitChangeFee       TaxableUnit = "change_fee"
)

// ApplTag marks a reference-table entry as including or excluding matches.
type ApplTag string

const (
	ApplPositive ApplTag = "positive"
	ApplNegative ApplTag = "negative"
)

// RoundingDir selects the direction of standard rounding.
type RoundingDir string

const (
	RoundNone    RoundingDir = ""
	RoundUp      RoundingDir = "up"
	RoundDown    RoundingDir = "down"
	RoundNearest RoundingDir = "nearest"
)

// FlightRelationTag relates an optional service to the flight segments it
// covers. Segment-related services are the ones a Blank stopover
// classification excludes from the tax.
type FlightRelationTag string

const (
	FlightRelationSegment  FlightRelationTag = "segment"
	FlightRelationPortion  FlightRelationTag = "portion"
	FlightRelationJourney  FlightRelationTag = "journey"
)
