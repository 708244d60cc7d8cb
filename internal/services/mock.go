package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/aerotax/internal/domain"
)

// Test doubles for the consumed services. Each mock delegates to a
// configurable function and falls back to a benign default, following the
// same shape the rest of the codebase uses for injected collaborators.

// MockLoc is a test implementation of LocService.
type MockLoc struct {
	IsInLocFunc func(locCode, zone, vendor string) bool
}

func (m *MockLoc) IsInLoc(locCode, zone, vendor string) bool {
	if m.IsInLocFunc != nil {
		return m.IsInLocFunc(locCode, zone, vendor)
	}
	return false
}

// MockCurrency is a test implementation of CurrencyService.
type MockCurrency struct {
	ConvertToFunc func(targetCurrency string, money Money) (decimal.Decimal, error)
}

func (m *MockCurrency) ConvertTo(targetCurrency string, money Money) (decimal.Decimal, error) {
	if m.ConvertToFunc != nil {
		return m.ConvertToFunc(targetCurrency, money)
	}
	return money.Amount, nil
}

// MockCarrierFlight is a test implementation of CarrierFlightService.
type MockCarrierFlight struct {
	Items map[int]*domain.CarrierFlight
}

func (m *MockCarrierFlight) GetCarrierFlight(vendor string, itemNo int) *domain.CarrierFlight {
	return m.Items[itemNo]
}

// MockSectorDetail is a test implementation of SectorDetailService.
type MockSectorDetail struct {
	Items map[int]*domain.SectorDetail
}

func (m *MockSectorDetail) GetSectorDetail(vendor string, itemNo int) *domain.SectorDetail {
	return m.Items[itemNo]
}

// MockPassengerTypes is a test implementation of PassengerTypesService.
type MockPassengerTypes struct {
	Items map[int]*domain.PassengerTypeCodeItem
}

func (m *MockPassengerTypes) GetPassengerTypeCode(vendor string, itemNo int) *domain.PassengerTypeCodeItem {
	return m.Items[itemNo]
}

// MockCarrierApplication is a test implementation of CarrierApplicationService.
type MockCarrierApplication struct {
	Items map[int]*domain.CarrierApplication
}

func (m *MockCarrierApplication) GetCarrierApplication(vendor string, itemNo int) *domain.CarrierApplication {
	return m.Items[itemNo]
}

// MockRulesRecords is a test implementation of RulesRecordsService.
type MockRulesRecords struct {
	Containers []domain.RulesContainer
}

func (m *MockRulesRecords) GetTaxRulesContainers(nation string, tag domain.TaxPointTag, _ time.Time) []domain.RulesContainer {
	var out []domain.RulesContainer
	for _, rc := range m.Containers {
		if rc.TaxName.Nation == nation && rc.RuleData.TaxPointTag == tag {
			out = append(out, rc)
		}
	}
	return out
}

// MockRounding is a test implementation of TaxRoundingInfoService.
type MockRounding struct {
	Nations map[string]NationRounding
}

func (m *MockRounding) GetNationRoundingInfo(nation string) (NationRounding, bool) {
	nr, ok := m.Nations[nation]
	return nr, ok
}

func (m *MockRounding) DoStandardRound(amount, unit decimal.Decimal, dir domain.RoundingDir) decimal.Decimal {
	return StandardRound(amount, unit, dir)
}

// MockBundle assembles a bundle of the zero-value mocks, overridable per
// field by the caller.
func MockBundle() Bundle {
	return Bundle{
		Loc:                &MockLoc{},
		Currency:           &MockCurrency{},
		CarrierFlight:      &MockCarrierFlight{},
		SectorDetail:       &MockSectorDetail{},
		PassengerTypes:     &MockPassengerTypes{},
		CarrierApplication: &MockCarrierApplication{},
		RulesRecords:       &MockRulesRecords{},
		Rounding:           &MockRounding{},
	}
}
