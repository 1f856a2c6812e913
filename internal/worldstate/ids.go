// Package worldstate holds the single mutable world the simulation
// core operates on: dense, id-indexed arrays of every entity kind, with
// all cross-references expressed as ids rather than pointers (spec §9,
// "Cyclic ownership"). This mirrors the teacher's arena style (agents
// indexed by AgentID, settlements by a dense uint64 id) generalized to
// the country/region/faction/trade-relation graph this spec needs.
package worldstate

// CountryID, RegionID, ... are dense, non-negative integers assigned at
// scenario load. They index directly into State's entity slices.
type (
	CountryID  int
	RegionID   int
	FactionID  int
	DepositID  int
	FacilityID int
	CohortID   int
	FormationID int
)

// Invalid marks an unset id reference. All id types use -1 for "no
// reference".
const Invalid = -1
