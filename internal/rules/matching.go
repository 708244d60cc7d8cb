package rules

import (
	"fmt"
	"time"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/services"
)

// CarrierFlightRule checks the flight adjacent to tax point 1 against a
// carrier/flight-number range table.
type CarrierFlightRule struct {
	Vendor string
	ItemNo int
}

func (r CarrierFlightRule) Name() string { return NameCarrierFlight }

func (r CarrierFlightRule) Describe() string {
	return fmt.Sprintf("flight must match carrier-flight table %d", r.ItemNo)
}

func (r CarrierFlightRule) CreateApplicator(itinIndex int, req *domain.Request, svc services.Bundle, _ *payment.RawPayments) Applicator {
	return &carrierFlightApplicator{rule: r, itin: &req.Itins[itinIndex], svc: svc.CarrierFlight}
}

type carrierFlightApplicator struct {
	rule CarrierFlightRule
	itin *domain.Itin
	svc  services.CarrierFlightService
}

func (a *carrierFlightApplicator) Name() string { return NameCarrierFlight }

// Apply passes when any range row covers the flight owning tax point 1.
// A missing reference table means the restriction cannot be evaluated and
// the record simply does not restrict; that is not an error.
func (a *carrierFlightApplicator) Apply(pd *payment.PaymentDetail) bool {
	cf := a.svc.GetCarrierFlight(a.rule.Vendor, a.rule.ItemNo)
	if cf == nil {
		return true
	}
	flight := a.itin.FlightForGeo(pd.Begin.Index)
	if flight == nil {
		return false
	}
	for i := range cf.Segments {
		if cf.Segments[i].Matches(flight.MarketingCarrier, flight.FlightNumber) {
			return true
		}
	}
	return false
}

// PassengerTypeRule checks the passenger against a passenger-type table
// with positive/negative row semantics.
type PassengerTypeRule struct {
	Vendor string
	ItemNo int
}

func (r PassengerTypeRule) Name() string { return NamePassengerType }

func (r PassengerTypeRule) Describe() string {
	return fmt.Sprintf("passenger must match passenger-type table %d", r.ItemNo)
}

func (r PassengerTypeRule) CreateApplicator(itinIndex int, req *domain.Request, svc services.Bundle, _ *payment.RawPayments) Applicator {
	return &passengerTypeApplicator{
		rule:          r,
		passenger:     req.Itins[itinIndex].Passenger,
		ticketingDate: req.TicketingDate,
		svc:           svc.PassengerTypes,
	}
}

type passengerTypeApplicator struct {
	rule          PassengerTypeRule
	passenger     domain.Passenger
	ticketingDate time.Time
	svc           services.PassengerTypesService
}

func (a *passengerTypeApplicator) Name() string { return NamePassengerType }

// Apply scans rows in order; the first row matching the passenger decides.
// A negative match fails the whole check immediately; no matching row
// fails it too.
func (a *passengerTypeApplicator) Apply(pd *payment.PaymentDetail) bool {
	item := a.svc.GetPassengerTypeCode(a.rule.Vendor, a.rule.ItemNo)
	if item == nil {
		return true
	}
	for i := range item.Rows {
		row := &item.Rows[i]
		if !a.rowMatches(row) {
			continue
		}
		return row.Appl != domain.ApplNegative
	}
	return false
}

func (a *passengerTypeApplicator) rowMatches(row *domain.PassengerTypeRow) bool {
	if row.TypeCode != "" && row.TypeCode != a.passenger.TypeCode {
		return false
	}
	if row.MinAge == 0 && row.MaxAge == 0 {
		return true
	}
	if a.passenger.DateOfBirth.IsZero() {
		return true
	}
	age := yearsBetween(a.passenger.DateOfBirth, a.ticketingDate)
	if row.MinAge != 0 && age < row.MinAge {
		return false
	}
	if row.MaxAge != 0 && age > row.MaxAge {
		return false
	}
	return true
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() ||
		(to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

// SectorDetailRule checks every flight of the itinerary against a
// sector-detail table with positive/negative row semantics.
type SectorDetailRule struct {
	Vendor string
	ItemNo int
}

func (r SectorDetailRule) Name() string { return NameSectorDetail }

func (r SectorDetailRule) Describe() string {
	return fmt.Sprintf("flights must match sector-detail table %d", r.ItemNo)
}

func (r SectorDetailRule) CreateApplicator(itinIndex int, req *domain.Request, svc services.Bundle, _ *payment.RawPayments) Applicator {
	return &sectorDetailApplicator{rule: r, itin: &req.Itins[itinIndex], svc: svc.SectorDetail}
}

type sectorDetailApplicator struct {
	rule SectorDetailRule
	itin *domain.Itin
	svc  services.SectorDetailService
}

func (a *sectorDetailApplicator) Name() string { return NameSectorDetail }

// Apply requires every flight to be accepted by its first matching row; a
// negative match on any flight fails the whole check.
func (a *sectorDetailApplicator) Apply(pd *payment.PaymentDetail) bool {
	item := a.svc.GetSectorDetail(a.rule.Vendor, a.rule.ItemNo)
	if item == nil {
		return true
	}
	for fi := range a.itin.FlightUsages {
		f := &a.itin.FlightUsages[fi]
		decided := false
		for ri := range item.Rows {
			row := &item.Rows[ri]
			if !row.Matches(f) {
				continue
			}
			if row.Appl == domain.ApplNegative {
				return false
			}
			decided = true
			break
		}
		if !decided {
			return false
		}
	}
	return true
}

// ExemptRule marks the record as exempting the tax. The detail keeps
// flowing through the chain so limit bookkeeping still sees it, but amount
// computation yields zero.
type ExemptRule struct{}

func (r ExemptRule) Name() string     { return NameExempt }
func (r ExemptRule) Describe() string { return "record exempts the tax" }

func (r ExemptRule) CreateApplicator(int, *domain.Request, services.Bundle, *payment.RawPayments) Applicator {
	return exemptApplicator{}
}

type exemptApplicator struct{}

func (exemptApplicator) Name() string { return NameExempt }

func (exemptApplicator) Apply(pd *payment.PaymentDetail) bool {
	pd.SetExempt()
	return true
}
