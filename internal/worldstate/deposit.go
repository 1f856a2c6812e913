package worldstate

import "github.com/nivenhall/econsim/internal/commodity"

// DiscoveryState tracks how well a deposit's true reserves are known.
type DiscoveryState int

const (
	Unknown DiscoveryState = iota
	Surveyed
	Proven
)

// ResourceDeposit is a site of a raw commodity with finite, monotonically
// non-increasing remaining reserves.
type ResourceDeposit struct {
	ID       DepositID
	HexID    int
	RegionID RegionID

	Resource commodity.Commodity // must be a raw commodity
	Subtype  string

	TotalReserves     float64
	RemainingReserves float64 // monotonically non-increasing
	BaseYield         float64
	Difficulty        float64 // [0.5, 2.0]

	Discovery         DiscoveryState
	EstimatedReserves float64 // accuracy depends on Discovery
}

// Exhausted reports whether the deposit has nothing left to extract.
func (d *ResourceDeposit) Exhausted() bool {
	return d.RemainingReserves <= 0
}

// Extract subtracts amount from RemainingReserves, clamped to
// [0, RemainingReserves], and returns the amount actually extracted.
func (d *ResourceDeposit) Extract(amount float64) float64 {
	if amount < 0 {
		amount = 0
	}
	if amount > d.RemainingReserves {
		amount = d.RemainingReserves
	}
	d.RemainingReserves -= amount
	if d.RemainingReserves < 0 {
		d.RemainingReserves = 0
	}
	return amount
}
