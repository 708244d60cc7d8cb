// Package engine orchestrates the per-itinerary tax-rule evaluation: it
// groups itineraries into rule-equivalence classes, runs one applicator
// chain per (itinerary, tax record) pair, and assembles the resulting
// payments.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/grouping"
	"github.com/dukerupert/aerotax/internal/payment"
	"github.com/dukerupert/aerotax/internal/rules"
	"github.com/dukerupert/aerotax/internal/services"
	"github.com/dukerupert/aerotax/internal/telemetry"
)

// Engine evaluates pricing requests. It holds no per-request state; one
// Engine may serve concurrent requests as long as each request owns its
// own working sets, which Evaluate guarantees.
type Engine struct {
	svc     services.Bundle
	logger  *slog.Logger
	metrics *telemetry.EngineMetrics
}

// New creates an engine. metrics may be nil when telemetry is not wired.
func New(svc services.Bundle, logger *slog.Logger, metrics *telemetry.EngineMetrics) *Engine {
	return &Engine{svc: svc, logger: logger, metrics: metrics}
}

// ItinResult is the evaluation outcome for one itinerary.
type ItinResult struct {
	ItinID   string            `json:"itin_id"`
	GroupKey string            `json:"group_key"`
	Reused   bool              `json:"reused,omitempty"`
	Payments []payment.Payment `json:"payments"`
}

// Result is the evaluation outcome for one request.
type Result struct {
	Itins []ItinResult `json:"itins"`
}

// Evaluate validates the request, builds the grouping caches eagerly, and
// evaluates one representative itinerary per equivalence class, reusing
// its payments for the rest of the class.
func (e *Engine) Evaluate(ctx context.Context, req *domain.Request) (*Result, error) {
	start := time.Now()
	if err := req.Validate(); err != nil {
		e.count("invalid")
		return nil, err
	}

	groups := grouping.New(req, e.svc)

	result := &Result{Itins: make([]ItinResult, 0, len(req.Itins))}
	firstByKey := make(map[string]int, len(req.Itins))

	for i := range req.Itins {
		if err := ctx.Err(); err != nil {
			e.count("canceled")
			return nil, domain.WrapError(err, domain.EINTERNAL, "engine.evaluate", "evaluation canceled")
		}

		itin := &req.Itins[i]
		key := groups.GroupKey(itin)

		if prior, ok := firstByKey[key]; ok {
			reused := result.Itins[prior]
			result.Itins = append(result.Itins, ItinResult{
				ItinID:   itin.ID,
				GroupKey: key,
				Reused:   true,
				Payments: reused.Payments,
			})
			if e.metrics != nil {
				e.metrics.GroupReuse.Inc()
			}
			continue
		}

		payments := e.evaluateItin(i, req, groups)
		firstByKey[key] = len(result.Itins)
		result.Itins = append(result.Itins, ItinResult{
			ItinID:   itin.ID,
			GroupKey: key,
			Payments: payments,
		})
	}

	e.count("ok")
	if e.metrics != nil {
		e.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	}
	e.logger.Debug("request evaluated",
		"itins", len(req.Itins),
		"groups", len(firstByKey),
		"duration", time.Since(start),
	)
	return result, nil
}

// evaluateItin runs the full rule pass for one itinerary: one payment
// detail and one applicator chain per candidate tax record at each tax
// point. Details join the working set before their chain runs so the limit
// applicator sees every occurrence recorded so far; a final limit sweep
// over the registered groups catches occurrences the per-chain pass could
// not, since a chain never fails its own detail against one added later.
func (e *Engine) evaluateItin(itinIndex int, req *domain.Request, groups *grouping.ItinGrouping) []payment.Payment {
	itin := &req.Itins[itinIndex]
	raw := payment.NewRawPayments()
	limits := payment.NewLimitGroup()

	for gi := range itin.GeoPath.Geos {
		geo := &itin.GeoPath.Geos[gi]
		if geo.Tag != domain.TagDeparture && geo.Tag != domain.TagArrival {
			continue
		}
		containers := e.svc.RulesRecords.GetTaxRulesContainers(geo.Nation, geo.Tag, req.TicketingDate)
		for _, rc := range containers {
			if !e.recordApplies(rc, itin, geo) {
				continue
			}
			if rc.TaxName.Code == "AY" && !groups.DoesAYApply(itinIndex) {
				if e.metrics != nil {
					e.metrics.AYSkips.Inc()
				}
				continue
			}

			pd := payment.NewPaymentDetail(rc.TaxName, rc.RuleData, itin, geo, e.endPointFor(itin, geo))
			raw.Add(pd)
			limits.Register(pd)

			chain := rules.NewChain(rules.ForRecord(rc), itinIndex, req, e.svc, raw)
			chain.Run(pd)
		}
	}

	rules.EnforceLimits(limits)

	return e.collect(itin, raw)
}

// recordApplies gates a record on its travel-date windows before any chain
// is built.
func (e *Engine) recordApplies(rc domain.RulesContainer, itin *domain.Itin, geo *domain.Geo) bool {
	if !rc.RuleData.JourneyDates.Contains(itin.TravelOriginDate) {
		return false
	}
	flight := itin.FlightForGeo(geo.Index)
	if flight != nil && !rc.RuleData.TaxPointDates.Contains(flight.Departure) {
		return false
	}
	return true
}

// endPointFor picks the initial tax point 2: the journey end in travel
// direction. Ticketed-point resolution may rewrite it later.
func (e *Engine) endPointFor(itin *domain.Itin, begin *domain.Geo) *domain.Geo {
	if begin.Tag == domain.TagArrival {
		return itin.GeoPath.First()
	}
	return itin.GeoPath.Last()
}

// collect assembles output payments after every chain has run, so late
// limit suppressions are reflected, and records telemetry and the currency
// fallback warnings.
func (e *Engine) collect(itin *domain.Itin, raw *payment.RawPayments) []payment.Payment {
	var out []payment.Payment
	for _, entry := range raw.Entries() {
		pd := entry.Detail
		p := payment.FromDetail(pd)
		out = append(out, p)

		if pd.Calc.UnconvertedFallback {
			e.logger.Warn("flat tax amount used unconverted after failed currency conversion",
				"itin", itin.ID,
				"tax", pd.TaxName.String(),
				"tax_currency", pd.RuleData.TaxCurrency,
			)
			if e.metrics != nil {
				e.metrics.ConversionFallback.WithLabelValues(pd.TaxName.Code).Inc()
			}
		}
		if e.metrics != nil {
			if p.FailedRule != "" {
				e.metrics.RuleFailures.WithLabelValues(p.FailedRule).Inc()
			} else if pd.IsCalculated() && !pd.IsExempt() {
				e.metrics.TaxesAssessed.WithLabelValues(pd.TaxName.Code).Inc()
			}
		}
	}
	return out
}

func (e *Engine) count(status string) {
	if e.metrics != nil {
		e.metrics.EvaluationsTotal.WithLabelValues(status).Inc()
	}
}
