package worldstate

import "github.com/nivenhall/econsim/internal/commodity"

// Region is a sub-national production/labor unit owned by a Country.
type Region struct {
	ID        RegionID
	CountryID CountryID
	Name      string

	Sectors             [commodity.K]Sector
	InfrastructureFactor float64 // [0.5, 1.5]

	Population  float64
	LaborForce  float64
	Employed    float64
	AverageWage float64
	SectorWage  [commodity.K]float64

	Unrest          float64 // [0,100]
	FoodInsecurity  float64 // [0,1]
	Inequality      float64 // [0,1]

	Inventory [commodity.K]float64
	Demand    [commodity.K]float64
	Supply    [commodity.K]float64

	// Cross-references populated at load, used by production/political
	// lookups without rescanning the deposit/facility arrays every tick.
	DepositIDs               []DepositID
	ExtractionFacilityIDs    []FacilityID
	ManufacturingFacilityIDs []FacilityID
	CohortIDs                []CohortID
}

// Unemployment returns 1 - employed/laborForce, or 0 if the region has
// no labor force (mirrors Country.Unemployment at region granularity,
// used by the political subsystem's per-region unrest score).
func (r *Region) Unemployment() float64 {
	if r.LaborForce <= 0 {
		return 0
	}
	u := 1 - r.Employed/r.LaborForce
	if u < 0 {
		return 0
	}
	return u
}

// UnrestScore computes spec §4.6's regional unrest formula:
// clamp(100*u + 150*food_insecurity + 50*inequality + 30*corruption, 0, 100).
// u is the region's local unemployment rate; corruption is the owning
// country's corruption (regions don't carry their own).
func (r *Region) UnrestScore(unemployment, corruption float64) float64 {
	v := 100*unemployment + 150*r.FoodInsecurity + 50*r.Inequality + 30*corruption
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
