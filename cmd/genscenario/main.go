// Command genscenario produces a synthetic scenario JSON file for load
// testing internal/scenario and the tick pipeline at sizes larger than
// a hand-authored fixture. Regional infrastructure factor and deposit
// richness vary by layered simplex noise, grounded on the teacher's
// internal/world/generation.go (independent noise generators seeded
// off a single run seed, sampled per coordinate).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	opensimplex "github.com/ojrac/opensimplex-go"
)

const numSectors = 12

var sectorNames = [numSectors]string{
	"agriculture", "rare_earths", "petroleum", "coal", "ore", "uranium",
	"electricity", "consumer_goods", "industrial_goods", "military_goods",
	"electronics", "services",
}

var rawResources = []string{"agriculture", "rare_earths", "petroleum", "coal", "ore", "uranium"}

func main() {
	seed := flag.Int64("seed", 1, "generation seed")
	countries := flag.Int("countries", 6, "number of countries to generate")
	regionsPer := flag.Int("regions", 4, "regions per country")
	out := flag.String("out", "scenarios/generated.json", "output path")
	flag.Parse()

	infraNoise := opensimplex.NewNormalized(*seed)
	depositNoise := opensimplex.NewNormalized(*seed + 1)
	rng := rand.New(rand.NewSource(*seed))

	scenario := buildScenario(*countries, *regionsPer, *seed, infraNoise, depositNoise, rng)

	if err := os.MkdirAll(dirOf(*out), 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	f, err := os.Create(*out)
	if err != nil {
		slog.Error("failed to create scenario file", "path", *out, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(scenario); err != nil {
		slog.Error("failed to write scenario", "error", err)
		os.Exit(1)
	}

	slog.Info("scenario generated", "path", *out, "countries", *countries, "regions", *countries**regionsPer)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}

// buildScenario produces the top-level JSON document shape documented
// by internal/scenario.Load — field names must match that package's
// decoder exactly, since the two aren't sharing a type (the decoder's
// types are unexported, matching "decode, don't leak schema types"
// elsewhere in this repo).
func buildScenario(numCountries, regionsPerCountry int, seed int64, infraNoise, depositNoise opensimplex.Noise, rng *rand.Rand) map[string]any {
	priceSensitivities := make([]float64, numSectors)
	laborCoefficients := make([]float64, numSectors)
	spoilageRates := make([]float64, numSectors)
	for i := range priceSensitivities {
		priceSensitivities[i] = 0.3 + rng.Float64()*0.4
		laborCoefficients[i] = 0.5 + rng.Float64()*1.5
		spoilageRates[i] = rng.Float64() * 0.1
	}

	var countryList []map[string]any
	for c := 0; c < numCountries; c++ {
		countryList = append(countryList, buildCountry(c, regionsPerCountry, infraNoise, depositNoise, rng))
	}

	var relations []map[string]any
	for i := 0; i < numCountries; i++ {
		for j := 0; j < numCountries; j++ {
			if i == j {
				continue
			}
			relations = append(relations, buildTradeRelation(countryCode(i), countryCode(j), rng))
		}
	}

	return map[string]any{
		"name":              fmt.Sprintf("generated-%d", seed),
		"description":       "synthetic load-test scenario",
		"author":            "genscenario",
		"version":           "1.0",
		"startYear":         2026,
		"randomSeed":        seed,
		"priceSensitivities": priceSensitivities,
		"laborCoefficients": laborCoefficients,
		"spoilageRates":     spoilageRates,
		"baseInterestRate":  0.03,
		"countries":         countryList,
		"tradeRelations":    relations,
	}
}

func countryCode(i int) string {
	return fmt.Sprintf("C%02d", i)
}

func buildCountry(idx, regionsPerCountry int, infraNoise, depositNoise opensimplex.Noise, rng *rand.Rand) map[string]any {
	technical := make([]float64, numSectors*numSectors)
	for j := 0; j < numSectors; j++ {
		col := rng.Perm(numSectors)[:3]
		budget := 0.5
		for _, i := range col {
			share := budget * rng.Float64() / 3
			technical[i*numSectors+j] = share
			budget -= share
		}
	}

	prices := make([]float64, numSectors)
	weights := make([]float64, numSectors)
	importProp := make([]float64, numSectors)
	exportProp := make([]float64, numSectors)
	for i := 0; i < numSectors; i++ {
		prices[i] = 10 + rng.Float64()*90
		weights[i] = 1.0 / numSectors
		importProp[i] = rng.Float64() * 0.3
		exportProp[i] = rng.Float64() * 0.3
	}

	var regions []map[string]any
	for r := 0; r < regionsPerCountry; r++ {
		x := float64(idx*regionsPerCountry + r)
		regions = append(regions, buildRegion(x, infraNoise, depositNoise, rng))
	}

	return map[string]any{
		"code":                  countryCode(idx),
		"name":                  fmt.Sprintf("Country %s", countryCode(idx)),
		"initialGDP":            1_000_000.0 + rng.Float64()*9_000_000,
		"initialDebtCents":      int64(rng.Float64() * 5_000_000_00),
		"laborForce":            500_000.0 + rng.Float64()*2_000_000,
		"population":            1_000_000.0 + rng.Float64()*5_000_000,
		"taxRateIncome":         0.15 + rng.Float64()*0.15,
		"taxRateCorporate":      0.15 + rng.Float64()*0.15,
		"taxRateVAT":            0.05 + rng.Float64()*0.1,
		"baseInterestRate":      0.02 + rng.Float64()*0.04,
		"corruption":            rng.Float64() * 0.5,
		"legitimacy":            40 + rng.Float64()*40,
		"importPropensity":      importProp,
		"exportPropensity":      exportProp,
		"initialPrices":         prices,
		"basketWeights":         weights,
		"technicalCoefficients": technical,
		"spendingShares": map[string]float64{
			"welfare":        0.25,
			"education":      0.15,
			"defense":        0.15,
			"infrastructure": 0.2,
			"healthcare":     0.25,
		},
		"regions":  regions,
		"factions": buildFactions(rng),
	}
}

func buildRegion(x float64, infraNoise, depositNoise opensimplex.Noise, rng *rand.Rand) map[string]any {
	infra := 0.5 + infraNoise.Eval2(x*0.3, 0)
	capacities := make([]float64, numSectors)
	for i := range capacities {
		capacities[i] = 1000 * (0.5 + rng.Float64())
	}

	var deposits []map[string]any
	for _, res := range rawResources {
		richness := depositNoise.Eval2(x*0.3, float64(sectorIndex(res)))
		if richness < 0.4 {
			continue
		}
		deposits = append(deposits, map[string]any{
			"subtype":       res + "_deposit",
			"resource":      res,
			"totalReserves": 1_000_000 * richness,
			"baseYield":     10 * richness,
			"difficulty":    0.5 + rng.Float64()*1.5,
			"discovery":     "proven",
		})
	}

	return map[string]any{
		"name":                 fmt.Sprintf("Region-%d", int(x)),
		"population":           100_000.0 + rng.Float64()*400_000,
		"laborForce":           50_000.0 + rng.Float64()*200_000,
		"infrastructureFactor": clamp(infra, 0.5, 1.5),
		"sectorCapacities":     capacities,
		"foodInsecurity":       rng.Float64() * 0.3,
		"inequality":           rng.Float64() * 0.5,
		"deposits":             deposits,
	}
}

func sectorIndex(name string) int {
	for i, n := range sectorNames {
		if n == name {
			return i
		}
	}
	return 0
}

func buildFactions(rng *rand.Rand) []map[string]any {
	names := []string{"Industrialists", "Agrarians", "Labor Bloc", "Technocrats"}
	redLines := []string{"none", "unemploymentAbove", "corporateTaxAbove", "corruptionAbove"}

	var out []map[string]any
	power := 1.0
	for i, name := range names {
		share := power / float64(len(names)-i)
		power -= share
		out = append(out, map[string]any{
			"name":             name,
			"basePower":        share,
			"baseSatisfaction": 50 + rng.Float64()*20,
			"redLine":          redLines[i],
			"redLineThreshold": 0.3 + rng.Float64()*0.3,
			"redLinePenalty":   10 + rng.Float64()*15,
			"preferences": map[string]float64{
				"corporateTax":    rng.Float64()*2 - 1,
				"incomeTax":       rng.Float64()*2 - 1,
				"welfareSpend":    rng.Float64()*2 - 1,
				"militarySpend":   rng.Float64()*2 - 1,
				"tradeOpenness":   rng.Float64()*2 - 1,
				"gdpGrowth":       rng.Float64(),
				"lowUnemployment": rng.Float64(),
				"wageGrowth":      rng.Float64(),
				"lowCorruption":   rng.Float64(),
			},
		})
	}
	return out
}

func buildTradeRelation(from, to string, rng *rand.Rand) map[string]any {
	tariff := make([]float64, numSectors)
	volume := make([]float64, numSectors)
	for i := range tariff {
		tariff[i] = rng.Float64() * 0.2
		volume[i] = rng.Float64() * 10000
	}
	return map[string]any{
		"from":              from,
		"to":                to,
		"tariffRate":        tariff,
		"baseTradeVolume":   volume,
		"diplomaticScore":   rng.Float64()*200 - 100,
		"reliability":       0.5 + rng.Float64()*0.5,
		"distancePenalty":   rng.Float64() * 0.3,
		"treatyBonus":       rng.Float64() * 0.1,
		"sanctionSeverity":  0,
		"transportCostUnit": 1 + rng.Float64()*4,
	}
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
