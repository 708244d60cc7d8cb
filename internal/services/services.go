package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/aerotax/internal/domain"
)

// The engine consumes pre-loaded reference data through these interfaces.
// Implementations are expected to be cached by the caller before rule
// evaluation begins; nothing here may block inside the hot evaluation loop.

// Money pairs an amount with its currency for conversion calls.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// LocService answers zone membership questions for location codes.
type LocService interface {
	// IsInLoc reports whether the location code lies inside the zone for
	// the vendor's zone definitions.
	IsInLoc(locCode, zone, vendor string) bool
}

// CurrencyService converts amounts between currencies. ConvertTo returns an
// error on unknown currency pairs; callers degrade rather than propagate.
type CurrencyService interface {
	ConvertTo(targetCurrency string, money Money) (decimal.Decimal, error)
}

// CarrierFlightService resolves carrier-flight reference tables.
type CarrierFlightService interface {
	GetCarrierFlight(vendor string, itemNo int) *domain.CarrierFlight
}

// SectorDetailService resolves sector-detail reference tables.
type SectorDetailService interface {
	GetSectorDetail(vendor string, itemNo int) *domain.SectorDetail
}

// PassengerTypesService resolves passenger-type reference tables.
type PassengerTypesService interface {
	GetPassengerTypeCode(vendor string, itemNo int) *domain.PassengerTypeCodeItem
}

// CarrierApplicationService resolves validating-carrier reference tables.
type CarrierApplicationService interface {
	GetCarrierApplication(vendor string, itemNo int) *domain.CarrierApplication
}

// RulesRecordsService returns the candidate tax rule records for a nation
// and tax point tag, filtered to the ticketing date, ordered by sequence
// number.
type RulesRecordsService interface {
	GetTaxRulesContainers(nation string, tag domain.TaxPointTag, ticketingDate time.Time) []domain.RulesContainer
}

// NationRounding is a nation's standard rounding convention.
type NationRounding struct {
	Unit decimal.Decimal
	Dir  domain.RoundingDir
}

// TaxRoundingInfoService resolves rounding conventions and performs the
// standard round.
type TaxRoundingInfoService interface {
	// GetNationRoundingInfo returns the standard rounding for a nation;
	// ok is false when the nation has no convention on file.
	GetNationRoundingInfo(nation string) (NationRounding, bool)

	// DoStandardRound rounds amount to a multiple of unit in the given
	// direction. A zero unit returns the amount unchanged.
	DoStandardRound(amount, unit decimal.Decimal, dir domain.RoundingDir) decimal.Decimal
}

// Bundle groups every consumed service for applicator construction.
type Bundle struct {
	Loc                LocService
	Currency           CurrencyService
	CarrierFlight      CarrierFlightService
	SectorDetail       SectorDetailService
	PassengerTypes     PassengerTypesService
	CarrierApplication CarrierApplicationService
	RulesRecords       RulesRecordsService
	Rounding           TaxRoundingInfoService
}
