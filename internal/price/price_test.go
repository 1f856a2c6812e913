package price

import (
	"testing"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/worldstate"
)

func newCountryState() (*worldstate.State, worldstate.CountryID) {
	s := worldstate.New(1, 2026)
	s.Config = worldstate.DefaultConfig()
	s.PriceSensitivity[commodity.Agriculture] = 0.5

	country := worldstate.Country{ID: 0, RegionIDs: []worldstate.RegionID{0}}
	country.Price[commodity.Agriculture] = 10
	country.InitialPrice[commodity.Agriculture] = 10
	country.BasketWeight[commodity.Agriculture] = 1
	s.Countries = append(s.Countries, country)

	region := worldstate.Region{ID: 0, CountryID: 0}
	s.Regions = append(s.Regions, region)

	return s, 0
}

func TestAggregateCountrySumsAcrossRegions(t *testing.T) {
	s, id := newCountryState()
	s.Countries[id].RegionIDs = []worldstate.RegionID{0}
	s.Regions[0].Demand[commodity.Agriculture] = 30
	s.Regions[0].Supply[commodity.Agriculture] = 20

	demand, supply, err := AggregateCountry(s, id)
	if err != nil {
		t.Fatal(err)
	}
	if demand[commodity.Agriculture] != 30 || supply[commodity.Agriculture] != 20 {
		t.Fatalf("demand=%v supply=%v, want 30/20", demand[commodity.Agriculture], supply[commodity.Agriculture])
	}
}

func TestRunCountryRaisesPriceOnExcessDemand(t *testing.T) {
	s, id := newCountryState()
	var demand, supply [commodity.K]float64
	demand[commodity.Agriculture] = 150
	supply[commodity.Agriculture] = 100

	if err := RunCountry(s, id, demand, supply); err != nil {
		t.Fatal(err)
	}
	if got := s.Countries[id].Price[commodity.Agriculture]; got <= 10 {
		t.Fatalf("Price = %v, want > 10 after excess demand", got)
	}
}

func TestRunCountryLowersPriceOnExcessSupply(t *testing.T) {
	s, id := newCountryState()
	var demand, supply [commodity.K]float64
	demand[commodity.Agriculture] = 50
	supply[commodity.Agriculture] = 100

	if err := RunCountry(s, id, demand, supply); err != nil {
		t.Fatal(err)
	}
	if got := s.Countries[id].Price[commodity.Agriculture]; got >= 10 {
		t.Fatalf("Price = %v, want < 10 after excess supply", got)
	}
}

func TestRunCountryClampsToDeltaMax(t *testing.T) {
	s, id := newCountryState()
	s.PriceSensitivity[commodity.Agriculture] = 10 // force a huge raw excess*sigma
	var demand, supply [commodity.K]float64
	demand[commodity.Agriculture] = 1_000_000
	supply[commodity.Agriculture] = 1

	if err := RunCountry(s, id, demand, supply); err != nil {
		t.Fatal(err)
	}
	got := s.Countries[id].Price[commodity.Agriculture]
	maxPossible := 10 * (1 + 10*s.Config.DeltaMax)
	if got > maxPossible+1e-9 {
		t.Fatalf("Price = %v, want capped near %v by DeltaMax clamp", got, maxPossible)
	}
}

func TestRunCountryClampsToInitialPriceBand(t *testing.T) {
	s, id := newCountryState()
	// Run many ticks of sustained excess demand; price should never
	// exceed 10x the initial price (spec's band clamp).
	var demand, supply [commodity.K]float64
	demand[commodity.Agriculture] = 1000
	supply[commodity.Agriculture] = 1
	for i := 0; i < 200; i++ {
		if err := RunCountry(s, id, demand, supply); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Countries[id].Price[commodity.Agriculture]; got > 100+1e-6 {
		t.Fatalf("Price = %v, want <= 100 (10x initial price of 10)", got)
	}
}

func TestUpdateCPIDefaultsToOneWithNoWeight(t *testing.T) {
	s, id := newCountryState()
	s.Countries[id].BasketWeight[commodity.Agriculture] = 0
	var demand, supply [commodity.K]float64
	if err := RunCountry(s, id, demand, supply); err != nil {
		t.Fatal(err)
	}
	if got := s.Countries[id].CPI; got != 1 {
		t.Fatalf("CPI = %v, want 1 with no basket weight", got)
	}
}

func TestUpdateCPITracksPriceRatio(t *testing.T) {
	s, id := newCountryState()
	var demand, supply [commodity.K]float64
	demand[commodity.Agriculture] = 150
	supply[commodity.Agriculture] = 100
	if err := RunCountry(s, id, demand, supply); err != nil {
		t.Fatal(err)
	}
	wantCPI := s.Countries[id].Price[commodity.Agriculture] / s.Countries[id].InitialPrice[commodity.Agriculture]
	if got := s.Countries[id].CPI; got != wantCPI {
		t.Fatalf("CPI = %v, want %v", got, wantCPI)
	}
}
