// Package production implements spec §4.1: soft-Leontief sector
// output, input consumption, value added, and extraction/manufacturing
// facility output. All functions are pure functions of *worldstate.State
// plus a country id — no hidden instance state (spec §9).
package production

import (
	"math"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/diagnostics"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// RunCountry runs the production subsystem for one country: for every
// region it owns and every commodity, it sets sector.Output, mutates
// region inventory, sets region.Supply, sets sector.ValueAdded, and
// folds in extraction and manufacturing facility output. Regions and
// sectors are visited in ascending id/commodity order for determinism.
func RunCountry(s *worldstate.State, id worldstate.CountryID) error {
	country, err := s.Country(id)
	if err != nil {
		return err
	}
	mat, err := s.Matrix(id)
	if err != nil {
		return err
	}

	for _, rid := range country.RegionIDs {
		region, err := s.Region(rid)
		if err != nil {
			return err
		}

		// Sync sector prices from the country's market state before
		// computing value added — Sector.Price is a per-region mirror
		// of Country.Price, there being no separate regional price
		// formation process in this spec.
		for c := 0; c < commodity.K; c++ {
			region.Sectors[c].Price = country.Price[c]
			region.Sectors[c].InitialPrice = country.InitialPrice[c]
		}

		// Single pass: compute every sector's output from the inventory
		// as it stood at the start of the tick, before any sector
		// consumes its inputs. This is what makes output order-
		// independent within a tick (spec §4.1, "Input consumption").
		outputs := computeOutputs(region, mat, s.Config.Alpha)

		// Now consume inputs, in ascending commodity order.
		for sIdx := 0; sIdx < commodity.K; sIdx++ {
			out := outputs[sIdx]
			if out <= 0 {
				continue
			}
			outCommodity := commodity.Commodity(sIdx)
			mat.Inputs(outCommodity, func(i commodity.Commodity, coeff float64) {
				need := coeff * out
				take := math.Min(need, region.Inventory[i])
				region.Inventory[i] -= take
			})
		}

		// Value added, after consumption so VA reflects the tick's
		// actual output and the input prices charged for it.
		for sIdx := 0; sIdx < commodity.K; sIdx++ {
			sec := &region.Sectors[sIdx]
			sec.Output = outputs[sIdx]
			out := commodity.Commodity(sIdx)
			va := sec.Output * sec.Price
			mat.Inputs(out, func(i commodity.Commodity, coeff float64) {
				va -= coeff * sec.Output * country.Price[i]
			})
			sec.ValueAdded = va
		}

		// Demand the price subsystem aggregates per country: final
		// consumption demand from every cohort the region hosts. The
		// data model carries region.Demand but spec §4.1/§4.2 don't say
		// which subsystem populates it; grounded here since production
		// already walks every region once per tick and
		// PopulationCohort.Consumption is the only per-commodity demand
		// source the data model defines (see DESIGN.md).
		for c := 0; c < commodity.K; c++ {
			region.Demand[c] = 0
		}
		for _, cid := range region.CohortIDs {
			cohort, err := s.Cohort(cid)
			if err != nil {
				return err
			}
			for c := 0; c < commodity.K; c++ {
				region.Demand[c] += cohort.Consumption(commodity.Commodity(c))
			}
		}

		extractionOut, err := runExtraction(s, region)
		if err != nil {
			return err
		}
		manufacturingOut, err := runManufacturing(s, region, mat)
		if err != nil {
			return err
		}

		// Supply aggregation (spec §4.1): sector output + extraction +
		// manufacturing + whatever carried over in inventory.
		for c := 0; c < commodity.K; c++ {
			region.Supply[c] = region.Sectors[c].Output + extractionOut[c] + manufacturingOut[c] + region.Inventory[c]
			region.Inventory[c] += region.Sectors[c].Output + extractionOut[c] + manufacturingOut[c]
			if region.Inventory[c] < 0 {
				s.Diagnostics.Record(s.Tick, diagnostics.SeverityWarning,
					&diagnostics.InvariantViolation{Tick: s.Tick, Where: "production.supply", Detail: "negative inventory clamped"})
				region.Inventory[c] = 0
			}
			region.Sectors[c].Inventory = region.Inventory[c]
		}
	}

	return nil
}

// inputLister is satisfied by *matrix.Coefficients; declared as an
// interface here so production's pure functions don't need to import
// the matrix package's concrete type for their signatures.
type inputLister interface {
	Inputs(j commodity.Commodity, fn func(i commodity.Commodity, coeff float64))
}

// computeOutputs returns the soft-Leontief output for every sector in
// region, read-only with respect to region.Inventory (the consumption
// pass happens separately, after all outputs are known).
func computeOutputs(region *worldstate.Region, mat inputLister, alpha float64) [commodity.K]float64 {
	var out [commodity.K]float64
	for sIdx := 0; sIdx < commodity.K; sIdx++ {
		sec := &region.Sectors[sIdx]
		out[sIdx] = sectorOutput(region, mat, commodity.Commodity(sIdx), sec, alpha)
	}
	return out
}

// sectorOutput computes spec §4.1's soft-Leontief production function
// for one sector, using the region's current (pre-consumption)
// inventory.
func sectorOutput(region *worldstate.Region, mat inputLister, s commodity.Commodity, sec *worldstate.Sector, alpha float64) float64 {
	qCap := sec.Capacity

	qLab := math.Inf(1)
	if sec.LaborCoefficient > 0 {
		qLab = sec.LaborEmployed / sec.LaborCoefficient
	}

	sigmaMin, sigmaAvg := inputSatisfaction(region, mat, s, qCap)

	qIn := qCap * (alpha*sigmaMin + (1-alpha)*sigmaAvg)

	q := math.Min(qCap, math.Min(qLab, qIn))

	output := q * region.InfrastructureFactor * sec.Efficiency
	if output < 0 {
		output = 0
	}
	return output
}

// inputSatisfaction computes the σ_min / σ_avg pair spec §4.1 defines
// for the input-constraint step: for every input i with A[i,out] > 0,
// σ_i = min(1, inventory[i] / (A[i,out] · baseline)). Shared by sector
// output and manufacturing facility output, which both blend the same
// two statistics against a different notion of "baseline" capacity.
func inputSatisfaction(region *worldstate.Region, mat inputLister, out commodity.Commodity, baseline float64) (sigmaMin, sigmaAvg float64) {
	sigmaMin = 1.0
	sigmaSum := 0.0
	count := 0
	mat.Inputs(out, func(i commodity.Commodity, coeff float64) {
		required := coeff * baseline
		sigma := 1.0
		if required > 0 {
			sigma = region.Inventory[i] / required
			if sigma > 1 {
				sigma = 1
			}
		}
		if count == 0 || sigma < sigmaMin {
			sigmaMin = sigma
		}
		sigmaSum += sigma
		count++
	})
	if count > 0 {
		sigmaAvg = sigmaSum / float64(count)
	} else {
		sigmaMin = 1.0
		sigmaAvg = 1.0
	}
	return sigmaMin, sigmaAvg
}
