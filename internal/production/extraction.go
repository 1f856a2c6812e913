package production

import (
	"math"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// techModifier is the placeholder "tech modifier τ" spec §4.1 names in
// the extraction/manufacturing output formula without defining where it
// comes from. Resolved here as a fixed global multiplier (see
// DESIGN.md) until a scenario field supersedes it.
const techModifier = 1.0

// runExtraction computes extraction facility output for every facility
// in region, deducts it from the owning deposit's remaining reserves,
// and returns the per-commodity total extracted this tick.
func runExtraction(s *worldstate.State, region *worldstate.Region) ([commodity.K]float64, error) {
	var out [commodity.K]float64

	for _, fid := range region.ExtractionFacilityIDs {
		if int(fid) < 0 || int(fid) >= len(s.ExtractionFacilities) {
			continue
		}
		f := &s.ExtractionFacilities[fid]

		if !f.Active() {
			f.Output = 0
			continue
		}

		deposit, err := s.Deposit(f.DepositID)
		if err != nil {
			return out, err
		}
		if deposit.Exhausted() {
			f.Output = 0
			continue
		}

		workforce := 1.0
		if f.WorkersRequired > 0 {
			workforce = f.Workers / f.WorkersRequired
			if workforce > 1 {
				workforce = 1
			}
		}
		conditionFactor := math.Sqrt(math.Max(0, f.Condition))

		produced := deposit.BaseYield * float64(f.Level) * workforce * conditionFactor *
			region.InfrastructureFactor * techModifier
		produced = deposit.Extract(produced)

		f.Output = produced
		out[deposit.Resource] += produced
	}

	return out, nil
}
