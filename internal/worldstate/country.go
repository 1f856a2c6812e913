package worldstate

import "github.com/nivenhall/econsim/internal/commodity"

// SpendingCategory names one of the country's discretionary spending
// shares. Shares are policy knobs, not required to sum to 1.
type SpendingCategory int

const (
	SpendWelfare SpendingCategory = iota
	SpendEducation
	SpendDefense
	SpendInfrastructure
	SpendHealthcare

	spendCategoryCount
)

// Country is a nation in the simulation: economic, fiscal, trade,
// political, and military aggregates, plus cross-references to the
// regions and factions it owns.
type Country struct {
	ID   CountryID
	Code string
	Name string

	// Economic aggregates.
	GDP           float64 // current tick, annualized
	GDPPrevious   float64
	CPI           float64
	CPIYearAgo    float64 // value 52 ticks back
	LaborForce    float64
	Employed      float64
	TotalWagesPaid float64 // this tick, cents (display snapshot)

	// AccumulatedWagesCents sums TotalWagesPaid across every tick since
	// the last fiscal run. The fiscal subsystem runs on a 4-tick cadence
	// but the wage bill is only ever known one tick at a time, so it
	// must be accrued here rather than read as a single-tick snapshot;
	// fiscal zeroes it after consuming it as the income-tax base.
	AccumulatedWagesCents float64

	// Fiscal.
	DebtCents          int64
	BaseInterestRate   float64
	EffectiveInterestRate float64
	FXReserves         float64
	TaxRateIncome      float64
	TaxRateCorporate   float64
	TaxRateVAT         float64
	TaxRevenueCents    int64 // total revenue recognized at the last fiscal run
	SpendingCents      int64 // total spending recognized at the last fiscal run
	SpendingShares     [spendCategoryCount]float64

	// Trade.
	TradeBalanceCents int64 // this tick

	// AccumulatedTariffCents sums tariff revenue across every trade tick
	// since the last fiscal run (ResetBalances zeroes TradeBalanceCents
	// every trade tick but must not touch this accumulator). Fiscal
	// consumes and zeroes it as the tariff-revenue base.
	AccumulatedTariffCents int64

	ImportPropensity  [commodity.K]float64
	ExportPropensity  [commodity.K]float64
	ImportVolume      [commodity.K]float64 // this tick, summed across relations where this country is importer

	// Political red-line bookkeeping: spending shares as of the last
	// fiscal/political run, for DefenseBudgetCutAbove's period-over-period
	// comparison.
	PreviousSpendingShares [spendCategoryCount]float64

	// Political.
	Legitimacy   float64 // [0,100]
	Corruption   float64 // [0,1]
	AverageUnrest float64 // [0,100]
	WarWeariness float64
	AtWar        bool

	// Military (placeholder subsystem).
	MilitaryPower               float64
	MilitaryGoodsRequired       float64
	ProcurementSatisfaction     float64 // [0,1]

	// Cross-references.
	RegionIDs  []RegionID
	FactionIDs []FactionID

	// Market state.
	Price           [commodity.K]float64
	DisplayPrice    [commodity.K]float64
	InitialPrice    [commodity.K]float64 // immutable after load
	BasketWeight    [commodity.K]float64 // non-negative, normalized at load
}

// DebtToGDP returns D/GDP, or 0 if GDP is non-positive (avoids a
// division the fiscal subsystem would otherwise have to special-case
// at every call site). Debt is stored in cents, GDP in whole currency
// units, so debt is converted to whole units before the ratio.
func (c *Country) DebtToGDP() float64 {
	if c.GDP <= 0 {
		return 0
	}
	return (float64(c.DebtCents) / 100) / c.GDP
}

// Sustainable reports the debt-sustainability flag from spec §4.5:
// D/GDP < 1.5.
func (c *Country) Sustainable() bool {
	return c.DebtToGDP() < 1.5
}

// Unemployment returns 1 - employed/laborForce, or 0 if the labor
// force is empty.
func (c *Country) Unemployment() float64 {
	if c.LaborForce <= 0 {
		return 0
	}
	u := 1 - c.Employed/c.LaborForce
	if u < 0 {
		return 0
	}
	return u
}

// Stability returns 0.6*legitimacy + 0.4*(100-unrest) (spec §4.6).
func (c *Country) Stability() float64 {
	return 0.6*c.Legitimacy + 0.4*(100-c.AverageUnrest)
}

// AtRisk reports spec §4.6's at_risk predicate: legitimacy < 30 or
// unrest > 70.
func (c *Country) AtRisk() bool {
	return c.Legitimacy < 30 || c.AverageUnrest > 70
}

// InflationRate returns CPI/CPIYearAgo - 1, or 0 if CPIYearAgo is not
// positive (scenario.Load starts it at 1).
func (c *Country) InflationRate() float64 {
	if c.CPIYearAgo <= 0 {
		return 0
	}
	return c.CPI/c.CPIYearAgo - 1
}
