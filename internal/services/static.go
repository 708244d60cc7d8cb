package services

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/aerotax/internal/domain"
)

// ReferenceData is the static, pre-parsed reference data set backing the
// in-memory service implementations. Loading and caching strategy beyond
// this (databases, refresh) belongs to the excluded DAO layer.
type ReferenceData struct {
	// Zones maps zone name -> member location codes.
	Zones map[string][]string `json:"zones"`

	// Rates maps "FROM/TO" -> conversion rate.
	Rates map[string]decimal.Decimal `json:"rates"`

	CarrierFlights      []domain.CarrierFlight        `json:"carrier_flights"`
	SectorDetails       []domain.SectorDetail         `json:"sector_details"`
	PassengerTypes      []domain.PassengerTypeCodeItem `json:"passenger_types"`
	CarrierApplications []domain.CarrierApplication   `json:"carrier_applications"`

	// Rules maps nation -> rule containers across all tax point tags.
	Rules []domain.RulesContainer `json:"rules" validate:"dive"`

	// NationRounding maps nation -> rounding convention.
	NationRounding map[string]struct {
		Unit decimal.Decimal    `json:"unit"`
		Dir  domain.RoundingDir `json:"dir"`
	} `json:"nation_rounding"`
}

// Static implements every consumed service interface over a ReferenceData
// set held in memory. It is immutable after construction and safe for
// concurrent readers.
type Static struct {
	data    ReferenceData
	zoneSet map[string]map[string]struct{}
}

var refValidate = validator.New(validator.WithRequiredStructEnabled())

// NewStatic builds the in-memory services from a reference data set.
func NewStatic(data ReferenceData) (*Static, error) {
	if err := refValidate.Struct(&data); err != nil {
		return nil, domain.WrapError(err, domain.EINVALID, "services.static", "invalid reference data")
	}
	s := &Static{data: data, zoneSet: make(map[string]map[string]struct{}, len(data.Zones))}
	for zone, locs := range data.Zones {
		set := make(map[string]struct{}, len(locs))
		for _, l := range locs {
			set[l] = struct{}{}
		}
		s.zoneSet[zone] = set
	}
	// Rule lookup depends on sequence order.
	sort.SliceStable(s.data.Rules, func(i, j int) bool {
		return s.data.Rules[i].RuleData.SeqNo < s.data.Rules[j].RuleData.SeqNo
	})
	return s, nil
}

// LoadStatic reads a reference data JSON file and builds the services.
func LoadStatic(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "services.load", "reading reference data")
	}
	var data ReferenceData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, domain.WrapError(err, domain.EINVALID, "services.load", "parsing reference data")
	}
	return NewStatic(data)
}

// Bundle returns the service bundle backed by this data set.
func (s *Static) Bundle() Bundle {
	return Bundle{
		Loc:                s,
		Currency:           s,
		CarrierFlight:      s,
		SectorDetail:       s,
		PassengerTypes:     s,
		CarrierApplication: s,
		RulesRecords:       s,
		Rounding:           s,
	}
}

// IsInLoc implements LocService. A zone equal to the location code itself
// matches, so single-airport zones need no table entry.
func (s *Static) IsInLoc(locCode, zone, vendor string) bool {
	if zone == locCode {
		return true
	}
	set, ok := s.zoneSet[zone]
	if !ok {
		return false
	}
	_, ok = set[locCode]
	return ok
}

// ConvertTo implements CurrencyService over the static rate table.
func (s *Static) ConvertTo(targetCurrency string, money Money) (decimal.Decimal, error) {
	if money.Currency == targetCurrency {
		return money.Amount, nil
	}
	rate, ok := s.data.Rates[money.Currency+"/"+targetCurrency]
	if !ok {
		return decimal.Zero, domain.Errorf(domain.ENOTFOUND, "currency.convert",
			"no rate for %s/%s", money.Currency, targetCurrency)
	}
	return money.Amount.Mul(rate), nil
}

// GetCarrierFlight implements CarrierFlightService.
func (s *Static) GetCarrierFlight(vendor string, itemNo int) *domain.CarrierFlight {
	for i := range s.data.CarrierFlights {
		cf := &s.data.CarrierFlights[i]
		if cf.Vendor == vendor && cf.ItemNo == itemNo {
			return cf
		}
	}
	return nil
}

// GetSectorDetail implements SectorDetailService.
func (s *Static) GetSectorDetail(vendor string, itemNo int) *domain.SectorDetail {
	for i := range s.data.SectorDetails {
		sd := &s.data.SectorDetails[i]
		if sd.Vendor == vendor && sd.ItemNo == itemNo {
			return sd
		}
	}
	return nil
}

// GetPassengerTypeCode implements PassengerTypesService.
func (s *Static) GetPassengerTypeCode(vendor string, itemNo int) *domain.PassengerTypeCodeItem {
	for i := range s.data.PassengerTypes {
		pt := &s.data.PassengerTypes[i]
		if pt.Vendor == vendor && pt.ItemNo == itemNo {
			return pt
		}
	}
	return nil
}

// GetCarrierApplication implements CarrierApplicationService.
func (s *Static) GetCarrierApplication(vendor string, itemNo int) *domain.CarrierApplication {
	for i := range s.data.CarrierApplications {
		ca := &s.data.CarrierApplications[i]
		if ca.Vendor == vendor && ca.ItemNo == itemNo {
			return ca
		}
	}
	return nil
}

// GetTaxRulesContainers implements RulesRecordsService. Records whose
// travel-date window opens after the ticketing date are not candidates.
func (s *Static) GetTaxRulesContainers(nation string, tag domain.TaxPointTag, ticketingDate time.Time) []domain.RulesContainer {
	var out []domain.RulesContainer
	for _, rc := range s.data.Rules {
		if rc.TaxName.Nation != nation || rc.RuleData.TaxPointTag != tag {
			continue
		}
		if f := rc.RuleData.JourneyDates.First; !f.IsZero() && f.After(ticketingDate) {
			continue
		}
		out = append(out, rc)
	}
	return out
}

// GetNationRoundingInfo implements TaxRoundingInfoService.
func (s *Static) GetNationRoundingInfo(nation string) (NationRounding, bool) {
	nr, ok := s.data.NationRounding[nation]
	if !ok {
		return NationRounding{}, false
	}
	return NationRounding{Unit: nr.Unit, Dir: nr.Dir}, true
}

// DoStandardRound implements TaxRoundingInfoService: round amount to a
// multiple of unit in the given direction.
func (s *Static) DoStandardRound(amount, unit decimal.Decimal, dir domain.RoundingDir) decimal.Decimal {
	return StandardRound(amount, unit, dir)
}

// StandardRound rounds amount to a multiple of unit in the given direction.
// A zero unit or blank direction returns the amount unchanged.
func StandardRound(amount, unit decimal.Decimal, dir domain.RoundingDir) decimal.Decimal {
	if unit.IsZero() || dir == domain.RoundNone {
		return amount
	}
	q := amount.Div(unit)
	switch dir {
	case domain.RoundUp:
		q = q.Ceil()
	case domain.RoundDown:
		q = q.Floor()
	case domain.RoundNearest:
		q = q.Round(0)
	default:
		return amount
	}
	return q.Mul(unit)
}
