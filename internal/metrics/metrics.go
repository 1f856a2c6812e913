// Package metrics exposes the simulation's optional Prometheus
// instrumentation, grounded on qazna-org-qazna.org's internal/obs: a
// package-level metric set, an Init that registers them, and a
// promhttp.Handler for scraping. Ambient observability, not a core
// scope feature — the scheduler does not use it; cmd/econsim calls
// RecordTick after each tick when its metrics address is set.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nivenhall/econsim/internal/diagnostics"
	"github.com/nivenhall/econsim/internal/worldstate"
)

var (
	ticksProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "econsim_ticks_processed_total",
		Help: "Total number of simulation ticks advanced.",
	})

	diagnosticsBySeverity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "econsim_diagnostics_total",
			Help: "Diagnostics recorded so far, by severity.",
		},
		[]string{"severity"},
	)

	worldGDP = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "econsim_country_gdp",
			Help: "Current annualized GDP per country.",
		},
		[]string{"country"},
	)

	worldLegitimacy = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "econsim_country_legitimacy",
			Help: "Current legitimacy per country.",
		},
		[]string{"country"},
	)
)

// Init registers the metric set with the default Prometheus registry.
// Call once at process start.
func Init() {
	prometheus.MustRegister(ticksProcessed, diagnosticsBySeverity, worldGDP, worldLegitimacy)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordTick updates the gauges from state's current values and
// increments the tick counter. Intended to be called once per
// scheduler.Advance iteration.
func RecordTick(state *worldstate.State) {
	ticksProcessed.Inc()

	for sev, count := range state.Diagnostics.CountBySeverity() {
		diagnosticsBySeverity.WithLabelValues(severityLabel(sev)).Set(float64(count))
	}

	for _, c := range state.Countries {
		worldGDP.WithLabelValues(c.Code).Set(c.GDP)
		worldLegitimacy.WithLabelValues(c.Code).Set(c.Legitimacy)
	}
}

func severityLabel(sev diagnostics.Severity) string {
	return sev.String()
}
