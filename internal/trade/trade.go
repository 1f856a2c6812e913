// Package trade implements spec §4.3: bilateral flow computation with
// elasticity, tariffs, and sanctions, plus the FX update.
package trade

import (
	"math"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// effectiveExporterPriceFloor guards the tariff-inclusive exporter
// price used as the ratio's denominator against zero.
const effectiveExporterPriceFloor = 1e-4

// deltaT is the FX update's per-tick time step: one tick is 1/52 year.
const deltaT = 1.0 / 52.0

// ResetBalances zeroes every country's this-tick trade balance, per
// spec §4.3 ("Trade balances are reset to 0 at the start of each trade
// tick"). AccumulatedTariffCents is a fiscal-period accumulator, not a
// this-tick balance, and must survive until the fiscal subsystem
// consumes it — see worldstate.Country.AccumulatedTariffCents.
func ResetBalances(s *worldstate.State) {
	for i := range s.Countries {
		s.Countries[i].TradeBalanceCents = 0
		s.Countries[i].ImportVolume = [commodity.K]float64{}
	}
}

// RunAll resolves every directed trade relation in insertion order
// (spec §4.7, "all directed relations, in insertion order"), then
// applies the FX update once per country from its fully-accumulated
// this-tick trade balance.
func RunAll(s *worldstate.State, gamma float64) error {
	for i := range s.TradeRelations {
		if err := runRelation(s, &s.TradeRelations[i], gamma); err != nil {
			return err
		}
	}
	updateFX(s)
	return nil
}

// updateFX applies spec §4.3's FX ← FX + trade_balance · Δt once per
// country, using the balance accumulated across all of that country's
// relations this tick (not per relation — see RunAll).
func updateFX(s *worldstate.State) {
	for i := range s.Countries {
		s.Countries[i].FXReserves += float64(s.Countries[i].TradeBalanceCents) * deltaT
	}
}

// runRelation computes per-commodity flow for one directed relation
// and applies its balance and tariff-revenue effects. FX is updated
// afterwards, once per country, by updateFX.
func runRelation(s *worldstate.State, rel *worldstate.TradeRelation, gamma float64) error {
	exporter, err := s.Country(rel.From)
	if err != nil {
		return err
	}
	importer, err := s.Country(rel.To)
	if err != nil {
		return err
	}

	for c := 0; c < commodity.K; c++ {
		flow := resolveFlow(
			rel.BaseTradeVolume[c],
			exporter.Price[c],
			importer.Price[c],
			rel.TariffRate[c],
			rel.SanctionSeverity,
			gamma,
		)
		rel.CurrentTradeVolume[c] = flow
		importer.ImportVolume[c] += flow

		exportRevenue := exporter.Price[c] * flow
		importCost := exporter.Price[c] * (1 + rel.TariffRate[c]) * flow
		tariffRevenue := rel.TariffRate[c] * exporter.Price[c] * flow

		exporter.TradeBalanceCents += toCents(exportRevenue)
		importer.TradeBalanceCents -= toCents(importCost)
		importer.AccumulatedTariffCents += toCents(tariffRevenue)
	}

	return nil
}

// resolveFlow implements spec §4.3's per-commodity flow formula.
func resolveFlow(baseVolume, exporterPrice, importerPrice, tariff, sanction, gamma float64) float64 {
	if sanction >= 1 {
		return 0
	}

	effective := exporterPrice * (1 + tariff)
	if effective < effectiveExporterPriceFloor {
		effective = effectiveExporterPriceFloor
	}

	ratio := importerPrice / effective
	multiplier := math.Pow(ratio, gamma)
	multiplier = clamp(multiplier, 0.01, 10)

	return baseVolume * multiplier * (1 - sanction)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toCents converts a floating monetary amount into the fixed integer
// minor-unit representation spec §3 mandates for monetary fields.
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}
