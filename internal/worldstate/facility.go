package worldstate

import "github.com/nivenhall/econsim/internal/commodity"

// CostBundle is a maintenance or build cost: a basket of per-commodity
// quantities plus a money cost, shared by extraction and manufacturing
// facilities.
type CostBundle struct {
	Commodities [commodity.K]float64
	MoneyCents  int64
}

// FacilityCommon holds the fields shared by extraction and
// manufacturing facilities. Exported (rather than the more common
// lowercase-embed idiom) so other packages can take its address
// through the promoted embedded field, e.g. &f.FacilityCommon, without
// needing a method on every derived facility type.
type FacilityCommon struct {
	ID       FacilityID
	RegionID RegionID

	Level     int     // [0,5], 0 = not built
	Condition float64 // [0,1]

	Workers         float64
	WorkersRequired float64

	UnderConstruction    bool
	ConstructionProgress float64 // [0,1]
	BaseBuildTicks       int

	DegradationRate float64
	MaintenanceCost CostBundle
	BuildCost       CostBundle

	Output float64 // this tick
}

// ExtractionFacility draws raw output from a ResourceDeposit.
type ExtractionFacility struct {
	FacilityCommon
	DepositID DepositID
}

// ManufacturingFacility converts inputs into a manufactured commodity.
type ManufacturingFacility struct {
	FacilityCommon
	OutputCommodity      commodity.Commodity
	BaseCapacityPerLevel float64
}

// Destroyed reports whether the facility's condition has reached zero
// (rebuild required).
func (f *FacilityCommon) Destroyed() bool {
	return f.Level > 0 && f.Condition <= 0
}

// Active reports whether the facility can produce this tick: built,
// not under construction, and not destroyed.
func (f *FacilityCommon) Active() bool {
	return f.Level > 0 && !f.UnderConstruction && f.Condition > 0
}
