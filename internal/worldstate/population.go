package worldstate

import "github.com/nivenhall/econsim/internal/commodity"

// WealthLevel buckets a population cohort's material standing, used to
// key the base-consumption-per-capita lookup table.
type WealthLevel int

const (
	Subsistence WealthLevel = iota
	Poor
	Middle
	Wealthy
	Rich

	wealthLevelCount
)

// PopulationCohort is a demographic slice of a region's population
// sharing a primary sector and wealth level.
type PopulationCohort struct {
	ID       CohortID
	RegionID RegionID

	PrimarySector commodity.Commodity
	Wealth        WealthLevel

	Population       float64
	AccumulatedWealth float64
	IncomeCents      int64 // recurring per-tick income; no subsystem updates this tick to tick
	CostOfLiving     float64
	SavingsRate      float64 // [0,1]

	ConsumptionMultiplier [commodity.K]float64
}

// baseConsumptionPerCapita is the fixed lookup table keyed by
// (wealth, commodity), spec §3 PopulationCohort. Values are
// units/capita/tick at the basket's reference prices; richer cohorts
// consume more of everything and skew further toward manufactured
// goods and services.
var baseConsumptionPerCapita = [wealthLevelCount][commodity.K]float64{
	Subsistence: {
		commodity.Agriculture: 1.20, commodity.ConsumerGoods: 0.05, commodity.Electricity: 0.05,
		commodity.Services: 0.05,
	},
	Poor: {
		commodity.Agriculture: 1.00, commodity.ConsumerGoods: 0.15, commodity.Electricity: 0.20,
		commodity.Electronics: 0.02, commodity.Services: 0.20,
	},
	Middle: {
		commodity.Agriculture: 0.90, commodity.ConsumerGoods: 0.40, commodity.Electricity: 0.50,
		commodity.Electronics: 0.10, commodity.Services: 0.60,
	},
	Wealthy: {
		commodity.Agriculture: 0.80, commodity.ConsumerGoods: 0.70, commodity.Electricity: 0.90,
		commodity.Electronics: 0.30, commodity.Services: 1.30,
	},
	Rich: {
		commodity.Agriculture: 0.75, commodity.ConsumerGoods: 1.10, commodity.Electricity: 1.40,
		commodity.Electronics: 0.60, commodity.Services: 2.50,
	},
}

// BaseConsumption returns the fixed per-capita baseline for (wealth, c).
func BaseConsumption(wealth WealthLevel, c commodity.Commodity) float64 {
	return baseConsumptionPerCapita[wealth][c]
}

// Consumption returns a cohort's total demand for commodity c this
// tick: population * base per-capita * the cohort's own multiplier.
func (p *PopulationCohort) Consumption(c commodity.Commodity) float64 {
	return p.Population * BaseConsumption(p.Wealth, c) * p.ConsumptionMultiplier[c]
}
