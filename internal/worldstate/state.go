package worldstate

import (
	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/diagnostics"
	"github.com/nivenhall/econsim/internal/matrix"
)

// TicksPerYear is the fixed base-unit relationship: one tick is one
// week, one year is 52 ticks.
const TicksPerYear = 52

// State is the single mutable world every subsystem borrows exclusive
// access to for the duration of its phase (spec §5). All entities live
// in dense slices keyed by their integer id; every cross-reference is
// an id, never a pointer (spec §9).
type State struct {
	Tick         uint64
	TicksPerYear int
	StartYear    int
	Seed         int64
	RNGState     uint64 // current RNG state, reseeded each tick (see internal/rng)

	Countries []Country
	Regions   []Region
	Factions  []Faction

	TradeRelations []TradeRelation

	Deposits                []ResourceDeposit
	ExtractionFacilities    []ExtractionFacility
	ManufacturingFacilities []ManufacturingFacility

	Cohorts    []PopulationCohort
	Formations []MilitaryFormation

	// Matrices[i] is country i's technical coefficient matrix — a
	// parallel array to Countries, indexed the same way.
	Matrices []*matrix.Coefficients

	// Process-wide arrays, length K.
	LaborCoefficients [commodity.K]float64
	PriceSensitivity  [commodity.K]float64
	SpoilageRate      [commodity.K]float64

	Config Config

	Diagnostics diagnostics.Log
}

// New returns an empty State ready to be populated by a loader.
func New(seed int64, startYear int) *State {
	return &State{
		TicksPerYear: TicksPerYear,
		StartYear:    startYear,
		Seed:         seed,
		Config:       DefaultConfig(),
	}
}

// Country returns a pointer to the country with the given id, or a
// LookupError if id is out of range.
func (s *State) Country(id CountryID) (*Country, error) {
	if int(id) < 0 || int(id) >= len(s.Countries) {
		return nil, &diagnostics.LookupError{Kind: "country", ID: int(id)}
	}
	return &s.Countries[id], nil
}

// Region returns a pointer to the region with the given id, or a
// LookupError if id is out of range.
func (s *State) Region(id RegionID) (*Region, error) {
	if int(id) < 0 || int(id) >= len(s.Regions) {
		return nil, &diagnostics.LookupError{Kind: "region", ID: int(id)}
	}
	return &s.Regions[id], nil
}

// Faction returns a pointer to the faction with the given id, or a
// LookupError if id is out of range.
func (s *State) Faction(id FactionID) (*Faction, error) {
	if int(id) < 0 || int(id) >= len(s.Factions) {
		return nil, &diagnostics.LookupError{Kind: "faction", ID: int(id)}
	}
	return &s.Factions[id], nil
}

// Deposit returns a pointer to the deposit with the given id, or a
// LookupError if id is out of range.
func (s *State) Deposit(id DepositID) (*ResourceDeposit, error) {
	if int(id) < 0 || int(id) >= len(s.Deposits) {
		return nil, &diagnostics.LookupError{Kind: "deposit", ID: int(id)}
	}
	return &s.Deposits[id], nil
}

// Matrix returns country id's technical coefficient matrix, or a
// LookupError if id is out of range.
func (s *State) Matrix(id CountryID) (*matrix.Coefficients, error) {
	if int(id) < 0 || int(id) >= len(s.Matrices) {
		return nil, &diagnostics.LookupError{Kind: "matrix", ID: int(id)}
	}
	return s.Matrices[id], nil
}

// Cohort returns a pointer to the population cohort with the given id,
// or a LookupError if id is out of range.
func (s *State) Cohort(id CohortID) (*PopulationCohort, error) {
	if int(id) < 0 || int(id) >= len(s.Cohorts) {
		return nil, &diagnostics.LookupError{Kind: "cohort", ID: int(id)}
	}
	return &s.Cohorts[id], nil
}

// RegionsOf returns the regions owned by country id, in the order of
// the country's RegionIDs; ids that don't resolve are skipped.
func (s *State) RegionsOf(id CountryID) []*Region {
	c, err := s.Country(id)
	if err != nil {
		return nil
	}
	out := make([]*Region, 0, len(c.RegionIDs))
	for _, rid := range c.RegionIDs {
		if r, err := s.Region(rid); err == nil {
			out = append(out, r)
		}
	}
	return out
}

// FactionsOf returns the factions belonging to country id.
func (s *State) FactionsOf(id CountryID) []*Faction {
	c, err := s.Country(id)
	if err != nil {
		return nil
	}
	out := make([]*Faction, 0, len(c.FactionIDs))
	for _, fid := range c.FactionIDs {
		if f, err := s.Faction(fid); err == nil {
			out = append(out, f)
		}
	}
	return out
}
