// Package price implements spec §4.2: excess-demand price adjustment,
// display smoothing, and CPI. Inflation is derived from CPI by
// worldstate.Country.InflationRate, not computed here.
package price

import (
	"math"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/diagnostics"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// epsilon guards the excess-demand ratio's denominator against zero
// supply (spec §4.1, "Failure semantics"; formula in §4.2).
const epsilon = 1e-4

// AggregateCountry sums demand and supply across every region a
// country owns, per commodity. Demand is read from region.Demand
// (populated from cohort consumption by production.RunCountry);
// supply from region.Supply (populated by production this tick).
func AggregateCountry(s *worldstate.State, id worldstate.CountryID) (demand, supply [commodity.K]float64, err error) {
	country, err := s.Country(id)
	if err != nil {
		return demand, supply, err
	}
	for _, rid := range country.RegionIDs {
		region, err := s.Region(rid)
		if err != nil {
			return demand, supply, err
		}
		for c := 0; c < commodity.K; c++ {
			demand[c] += region.Demand[c]
			supply[c] += region.Supply[c]
		}
	}
	return demand, supply, nil
}

// RunCountry adjusts country id's prices from aggregated demand/supply,
// updates the smoothed display price, and recomputes CPI.
func RunCountry(s *worldstate.State, id worldstate.CountryID, demand, supply [commodity.K]float64) error {
	country, err := s.Country(id)
	if err != nil {
		return err
	}

	deltaMax := s.Config.DeltaMax
	beta := s.Config.Beta

	for c := 0; c < commodity.K; c++ {
		p := country.Price[c]
		p0 := country.InitialPrice[c]
		sigma := s.PriceSensitivity[c]

		sSafe := math.Max(supply[c], epsilon)
		excess := (demand[c] - supply[c]) / sSafe
		excess = clamp(excess, -deltaMax, deltaMax)

		p = p * (1 + sigma*excess)

		if math.IsNaN(p) || math.IsInf(p, 0) {
			s.Diagnostics.Record(s.Tick, diagnostics.SeverityFatal,
				&diagnostics.NumericError{Tick: s.Tick, Where: "price.adjust", Value: p})
			return &diagnostics.NumericError{Tick: s.Tick, Where: "price.adjust", Value: p}
		}

		if p0 > 0 {
			p = clamp(p, 0.1*p0, 10*p0)
		}

		country.Price[c] = p
		country.DisplayPrice[c] = beta*p + (1-beta)*country.DisplayPrice[c]
	}

	updateCPI(country)
	return nil
}

// updateCPI computes spec §4.2's consumption-weighted CPI: skip
// commodities with zero/negative basis prices; CPI = 1 if total weight
// is zero.
func updateCPI(country *worldstate.Country) {
	weightedSum := 0.0
	totalWeight := 0.0
	for c := 0; c < commodity.K; c++ {
		w := country.BasketWeight[c]
		if w <= 0 {
			continue
		}
		p0 := country.InitialPrice[c]
		if p0 <= 0 {
			continue
		}
		weightedSum += w * (country.Price[c] / p0)
		totalWeight += w
	}
	if totalWeight <= 0 {
		country.CPI = 1
		return
	}
	country.CPI = weightedSum / totalWeight
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
