package production

import (
	"testing"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/matrix"
	"github.com/nivenhall/econsim/internal/worldstate"
)

func newTestState() *worldstate.State {
	s := worldstate.New(1, 2026)
	s.Countries = append(s.Countries, worldstate.Country{
		ID:        0,
		RegionIDs: []worldstate.RegionID{0},
	})
	copy(s.Countries[0].Price[:], []float64{10, 10, 10, 10, 10, 10, 10, 20, 20, 20, 20, 10})
	copy(s.Countries[0].InitialPrice[:], s.Countries[0].Price[:])

	region := worldstate.Region{ID: 0, CountryID: 0, InfrastructureFactor: 1}
	region.Sectors[commodity.IndustrialGoods] = worldstate.Sector{
		Capacity: 100, LaborEmployed: 100, LaborCoefficient: 1, Efficiency: 1,
	}
	region.Inventory[commodity.Ore] = 1000
	s.Regions = append(s.Regions, region)

	mat := matrix.New()
	mat.Set(commodity.Ore, commodity.IndustrialGoods, 0.5)
	s.Matrices = append(s.Matrices, mat)
	return s
}

func TestRunCountryProducesOutputAndConsumesInputs(t *testing.T) {
	s := newTestState()
	if err := RunCountry(s, 0); err != nil {
		t.Fatal(err)
	}

	region := &s.Regions[0]
	sec := region.Sectors[commodity.IndustrialGoods]
	if sec.Output <= 0 {
		t.Fatalf("expected positive output, got %v", sec.Output)
	}
	// 0.5 units of Ore required per unit of IndustrialGoods; with full
	// input satisfaction (1000 Ore available, way over what's needed),
	// output should hit the capacity/labor ceiling (100).
	if sec.Output != 100 {
		t.Fatalf("Output = %v, want 100 (capacity-bound)", sec.Output)
	}
	wantOreLeft := 1000 - 0.5*100
	if region.Inventory[commodity.Ore] != wantOreLeft {
		t.Fatalf("Ore inventory = %v, want %v", region.Inventory[commodity.Ore], wantOreLeft)
	}
}

func TestRunCountryStarvedInputsReduceOutput(t *testing.T) {
	s := newTestState()
	s.Regions[0].Inventory[commodity.Ore] = 10 // only enough for 20 units of output

	if err := RunCountry(s, 0); err != nil {
		t.Fatal(err)
	}
	sec := s.Regions[0].Sectors[commodity.IndustrialGoods]
	if sec.Output >= 100 {
		t.Fatalf("expected input-starved output below capacity, got %v", sec.Output)
	}
}

func TestRunCountryUnknownIDReturnsError(t *testing.T) {
	s := newTestState()
	if err := RunCountry(s, 99); err == nil {
		t.Fatal("expected a lookup error for an unknown country id")
	}
}

func TestRunCountryPopulatesRegionDemandFromCohorts(t *testing.T) {
	s := newTestState()
	cohort := worldstate.PopulationCohort{
		ID: 0, RegionID: 0, Population: 1000, Wealth: worldstate.Middle,
	}
	cohort.ConsumptionMultiplier[commodity.Agriculture] = 1
	s.Cohorts = append(s.Cohorts, cohort)
	s.Regions[0].CohortIDs = []worldstate.CohortID{0}

	if err := RunCountry(s, 0); err != nil {
		t.Fatal(err)
	}
	want := 1000 * worldstate.BaseConsumption(worldstate.Middle, commodity.Agriculture)
	if got := s.Regions[0].Demand[commodity.Agriculture]; got != want {
		t.Fatalf("Demand[Agriculture] = %v, want %v", got, want)
	}
}
