// Package labor implements spec §4.4: per-sector employment allocation
// from labor-force/demand tightness, wage adjustment, and optional
// inter-sector mobility.
package labor

import (
	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// wageFloor is spec §4.4's minimum sector wage, in cents.
const wageFloor = 100.0

// RunCountry allocates employment and updates wages for every region
// owned by country id, then rolls the results up to the country's
// employed/labor-force/total-wages aggregates.
func RunCountry(s *worldstate.State, id worldstate.CountryID) error {
	country, err := s.Country(id)
	if err != nil {
		return err
	}

	omega := s.Config.Omega
	mu := s.Config.Mu

	var totalEmployed, totalLaborForce, totalWages float64

	for _, rid := range country.RegionIDs {
		region, err := s.Region(rid)
		if err != nil {
			return err
		}
		runRegion(region, omega, mu)
		totalEmployed += region.Employed
		totalLaborForce += region.LaborForce
		totalWages += region.Employed * region.AverageWage
	}

	country.Employed = totalEmployed
	country.LaborForce = totalLaborForce
	country.TotalWagesPaid = totalWages
	country.AccumulatedWagesCents += totalWages
	return nil
}

// runRegion applies spec §4.4's per-region algorithm: demand, the
// allocation factor, employment, wage update, and optional mobility.
func runRegion(region *worldstate.Region, omega, mu float64) {
	var demand [commodity.K]float64
	var totalDemand float64
	for c := 0; c < commodity.K; c++ {
		sec := &region.Sectors[c]
		demand[c] = sec.LaborCoefficient * sec.Capacity
		totalDemand += demand[c]
	}

	var f float64
	if totalDemand > 0 {
		f = region.LaborForce / totalDemand
		if f > 1 {
			f = 1
		}
	}

	var employed [commodity.K]float64
	for c := 0; c < commodity.K; c++ {
		employed[c] = demand[c] * f
	}

	for c := 0; c < commodity.K; c++ {
		region.SectorWage[c] = updateWage(region.SectorWage[c], demand[c], employed[c], omega)
	}

	if mu > 0 {
		employed = applyMobility(employed, region.SectorWage, mu)
	}

	var totalEmployed, weightedWage float64
	for c := 0; c < commodity.K; c++ {
		region.Sectors[c].LaborEmployed = employed[c]
		totalEmployed += employed[c]
		weightedWage += employed[c] * region.SectorWage[c]
	}

	region.Employed = totalEmployed
	if totalEmployed > 0 {
		region.AverageWage = weightedWage / totalEmployed
	}
}

// updateWage implements spec §4.4's wage-update rule for one sector:
// extreme tightness (no employment but positive demand) grows the wage
// by half the adjustment speed; otherwise the wage moves toward
// tightness = demand/supply, clamped to ±10% per tick, floored at
// wageFloor. Zero demand and zero supply together are neutral
// (tightness 1, no adjustment) — the spec leaves this corner
// unspecified.
func updateWage(w, d, e, omega float64) float64 {
	if e <= 0 && d > 0 {
		return w * (1 + 0.5*omega)
	}

	tightness := 1.0
	if e > 0 {
		tightness = d / e
	}

	adj := omega * (tightness - 1)
	adj = clamp(adj, -0.1, 0.1)
	w = w * (1 + adj)
	if w < wageFloor {
		w = wageFloor
	}
	return w
}

// applyMobility shifts workers proportionally toward above-average-wage
// sectors at rate mu, then redistributes the resulting conservation
// residual uniformly so total employment is preserved (spec §4.4).
func applyMobility(employed, wage [commodity.K]float64, mu float64) [commodity.K]float64 {
	total, weightedWage := 0.0, 0.0
	for c := 0; c < commodity.K; c++ {
		total += employed[c]
		weightedWage += employed[c] * wage[c]
	}
	if total <= 0 {
		return employed
	}
	avgWage := weightedWage / total
	if avgWage <= 0 {
		return employed
	}

	shifted := employed
	for c := 0; c < commodity.K; c++ {
		delta := mu * employed[c] * (wage[c] - avgWage) / avgWage
		shifted[c] += delta
		if shifted[c] < 0 {
			shifted[c] = 0
		}
	}

	after := 0.0
	for c := 0; c < commodity.K; c++ {
		after += shifted[c]
	}
	residual := (total - after) / float64(commodity.K)
	for c := 0; c < commodity.K; c++ {
		shifted[c] += residual
		if shifted[c] < 0 {
			shifted[c] = 0
		}
	}
	return shifted
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
