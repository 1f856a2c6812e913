package worldstate

import (
	"math"
	"testing"

	"github.com/nivenhall/econsim/internal/commodity"
)

func TestCountryDebtToGDP(t *testing.T) {
	c := &Country{GDP: 1000, DebtCents: 50000} // 500 whole units of debt
	if got := c.DebtToGDP(); got != 0.5 {
		t.Fatalf("DebtToGDP() = %v, want 0.5", got)
	}
}

func TestCountryDebtToGDPZeroGDP(t *testing.T) {
	c := &Country{GDP: 0, DebtCents: 100}
	if got := c.DebtToGDP(); got != 0 {
		t.Fatalf("DebtToGDP() = %v, want 0 when GDP <= 0", got)
	}
}

func TestCountrySustainable(t *testing.T) {
	c := &Country{GDP: 1000, DebtCents: 100000} // D/GDP = 1.0
	if !c.Sustainable() {
		t.Fatal("D/GDP of 1.0 should be sustainable (< 1.5)")
	}
	c.DebtCents = 200000 // D/GDP = 2.0
	if c.Sustainable() {
		t.Fatal("D/GDP of 2.0 should not be sustainable")
	}
}

func TestCountryUnemployment(t *testing.T) {
	c := &Country{LaborForce: 100, Employed: 90}
	// 1 - 90/100 is 0.09999999999999998 in float64, not the literal 0.1.
	if got := c.Unemployment(); math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("Unemployment() = %v, want 0.1", got)
	}
	c.Employed = 110
	if got := c.Unemployment(); got != 0 {
		t.Fatalf("Unemployment() = %v, want 0 clamped", got)
	}
	c.LaborForce = 0
	if got := c.Unemployment(); got != 0 {
		t.Fatalf("Unemployment() = %v, want 0 for empty labor force", got)
	}
}

func TestCountryStability(t *testing.T) {
	c := &Country{Legitimacy: 80, AverageUnrest: 20}
	want := 0.6*80 + 0.4*(100-20)
	if got := c.Stability(); got != want {
		t.Fatalf("Stability() = %v, want %v", got, want)
	}
}

func TestCountryAtRisk(t *testing.T) {
	c := &Country{Legitimacy: 25, AverageUnrest: 10}
	if !c.AtRisk() {
		t.Fatal("legitimacy below 30 should be at risk")
	}
	c.Legitimacy = 60
	c.AverageUnrest = 75
	if !c.AtRisk() {
		t.Fatal("unrest above 70 should be at risk")
	}
	c.AverageUnrest = 10
	if c.AtRisk() {
		t.Fatal("should not be at risk when neither condition holds")
	}
}

func TestCountryInflationRate(t *testing.T) {
	c := &Country{CPI: 1.1, CPIYearAgo: 1.0}
	if got := c.InflationRate(); got < 0.0999 || got > 0.1001 {
		t.Fatalf("InflationRate() = %v, want ~0.1", got)
	}
	c.CPIYearAgo = 0
	if got := c.InflationRate(); got != 0 {
		t.Fatalf("InflationRate() = %v, want 0 with no prior CPI", got)
	}
}

func TestRegionUnemployment(t *testing.T) {
	r := &Region{LaborForce: 200, Employed: 150}
	if got := r.Unemployment(); got != 0.25 {
		t.Fatalf("Unemployment() = %v, want 0.25", got)
	}
}

func TestRegionUnrestScoreClampedToBounds(t *testing.T) {
	r := &Region{FoodInsecurity: 1, Inequality: 1}
	if got := r.UnrestScore(1, 1); got != 100 {
		t.Fatalf("UnrestScore() = %v, want 100 clamped", got)
	}
	r2 := &Region{}
	if got := r2.UnrestScore(0, 0); got != 0 {
		t.Fatalf("UnrestScore() = %v, want 0", got)
	}
}

func TestDepositExtractClampsToRemaining(t *testing.T) {
	d := &ResourceDeposit{RemainingReserves: 10}
	got := d.Extract(15)
	if got != 10 {
		t.Fatalf("Extract(15) = %v, want 10 (clamped)", got)
	}
	if !d.Exhausted() {
		t.Fatal("deposit should be exhausted after extracting all reserves")
	}
}

func TestDepositExtractNegativeAmount(t *testing.T) {
	d := &ResourceDeposit{RemainingReserves: 10}
	if got := d.Extract(-5); got != 0 {
		t.Fatalf("Extract(-5) = %v, want 0", got)
	}
	if d.RemainingReserves != 10 {
		t.Fatalf("RemainingReserves = %v, want unchanged at 10", d.RemainingReserves)
	}
}

func TestFacilityActiveAndDestroyed(t *testing.T) {
	f := &FacilityCommon{Level: 1, Condition: 0.5}
	if !f.Active() {
		t.Fatal("expected active facility")
	}
	if f.Destroyed() {
		t.Fatal("facility with positive condition should not be destroyed")
	}

	f.Condition = 0
	if f.Active() {
		t.Fatal("zero-condition facility should not be active")
	}
	if !f.Destroyed() {
		t.Fatal("zero-condition built facility should be destroyed")
	}

	unbuilt := &FacilityCommon{Level: 0, Condition: 0}
	if unbuilt.Destroyed() {
		t.Fatal("an unbuilt facility (level 0) is not 'destroyed'")
	}
}

func TestCohortConsumptionScalesWithPopulationAndMultiplier(t *testing.T) {
	cohort := &PopulationCohort{Population: 1000, Wealth: Middle}
	cohort.ConsumptionMultiplier[commodity.Agriculture] = 2.0

	base := BaseConsumption(Middle, commodity.Agriculture)
	want := 1000 * base * 2.0
	if got := cohort.Consumption(commodity.Agriculture); got != want {
		t.Fatalf("Consumption() = %v, want %v", got, want)
	}
}

func TestStateAccessorsLookupError(t *testing.T) {
	s := New(1, 2026)
	s.Countries = append(s.Countries, Country{ID: 0})
	s.Regions = append(s.Regions, Region{ID: 0})

	if _, err := s.Country(0); err != nil {
		t.Fatalf("Country(0) unexpected error: %v", err)
	}
	if _, err := s.Country(1); err == nil {
		t.Fatal("Country(1) should be a LookupError for an empty arena slot")
	}
	if _, err := s.Region(5); err == nil {
		t.Fatal("Region(5) should be a LookupError")
	}
}

func TestRegionsOfFollowsInsertionOrder(t *testing.T) {
	s := New(1, 2026)
	s.Countries = append(s.Countries, Country{ID: 0, RegionIDs: []RegionID{1, 0}})
	s.Regions = append(s.Regions, Region{ID: 0, Name: "r0"}, Region{ID: 1, Name: "r1"})

	got := s.RegionsOf(0)
	if len(got) != 2 || got[0].Name != "r1" || got[1].Name != "r0" {
		t.Fatalf("RegionsOf(0) = %+v, want [r1, r0] (RegionIDs order)", got)
	}
}
