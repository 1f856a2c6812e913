package labor

import (
	"testing"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/worldstate"
)

func newLaborState() *worldstate.State {
	s := worldstate.New(1, 2026)
	s.Config = worldstate.DefaultConfig()

	country := worldstate.Country{ID: 0, RegionIDs: []worldstate.RegionID{0}}
	s.Countries = append(s.Countries, country)

	region := worldstate.Region{ID: 0, CountryID: 0, LaborForce: 100}
	region.Sectors[commodity.Agriculture] = worldstate.Sector{Capacity: 50, LaborCoefficient: 1}
	region.Sectors[commodity.IndustrialGoods] = worldstate.Sector{Capacity: 50, LaborCoefficient: 1}
	region.SectorWage[commodity.Agriculture] = 1000
	region.SectorWage[commodity.IndustrialGoods] = 1000
	s.Regions = append(s.Regions, region)
	return s
}

func TestRunCountryAllocatesEmploymentToMatchLaborForce(t *testing.T) {
	s := newLaborState()
	if err := RunCountry(s, 0); err != nil {
		t.Fatal(err)
	}
	if got := s.Countries[0].Employed; got != 100 {
		t.Fatalf("Employed = %v, want 100 (labor force fully absorbed, demand=100)", got)
	}
}

func TestRunCountryUnderSuppliedLaborForceScalesDown(t *testing.T) {
	s := newLaborState()
	s.Regions[0].LaborForce = 50 // half of total demand (100)

	if err := RunCountry(s, 0); err != nil {
		t.Fatal(err)
	}
	region := s.Regions[0]
	if got := region.Sectors[commodity.Agriculture].LaborEmployed; got != 25 {
		t.Fatalf("Agriculture employed = %v, want 25 (f=0.5 of demand 50)", got)
	}
}

func TestRunCountryUnknownIDReturnsError(t *testing.T) {
	s := newLaborState()
	if err := RunCountry(s, 7); err == nil {
		t.Fatal("expected a lookup error for an unknown country id")
	}
}

func TestUpdateWageGrowsUnderExtremeTightness(t *testing.T) {
	got := updateWage(1000, 10, 0, 0.02)
	want := 1000 * 1.01
	if got != want {
		t.Fatalf("updateWage = %v, want %v", got, want)
	}
}

func TestUpdateWageClampsAdjustmentToTenPercent(t *testing.T) {
	// tightness = d/e = 1000, far exceeding the +-0.1 adjustment clamp.
	got := updateWage(1000, 1000, 1, 0.02)
	want := 1000 * 1.1
	if got != want {
		t.Fatalf("updateWage = %v, want %v (clamped at +10%%)", got, want)
	}
}

func TestUpdateWageNeverFallsBelowFloor(t *testing.T) {
	got := updateWage(wageFloor, 1, 1000, 0.02)
	if got < wageFloor {
		t.Fatalf("updateWage = %v, want >= wageFloor (%v)", got, wageFloor)
	}
}

func TestApplyMobilityPreservesTotalEmployment(t *testing.T) {
	var employed, wage [commodity.K]float64
	employed[commodity.Agriculture] = 60
	employed[commodity.IndustrialGoods] = 40
	wage[commodity.Agriculture] = 500
	wage[commodity.IndustrialGoods] = 1500

	shifted := applyMobility(employed, wage, 0.1)

	var total float64
	for _, v := range shifted {
		total += v
	}
	if total < 99.999 || total > 100.001 {
		t.Fatalf("total employment after mobility = %v, want ~100", total)
	}
	if shifted[commodity.IndustrialGoods] <= employed[commodity.IndustrialGoods] {
		t.Fatal("higher-wage sector should gain workers under mobility")
	}
}
