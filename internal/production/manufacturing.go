package production

import (
	"math"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// runManufacturing computes manufacturing facility output for every
// facility in region. Per spec §4.1, manufacturing facilities draw an
// input-satisfaction factor from the same inventory pool sectors use,
// but do not get separate input accounting — only the output enters
// supply aggregation.
func runManufacturing(s *worldstate.State, region *worldstate.Region, mat inputLister) ([commodity.K]float64, error) {
	var out [commodity.K]float64

	for _, fid := range region.ManufacturingFacilityIDs {
		if int(fid) < 0 || int(fid) >= len(s.ManufacturingFacilities) {
			continue
		}
		f := &s.ManufacturingFacilities[fid]

		if !f.Active() {
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

		baseline := f.BaseCapacityPerLevel * float64(f.Level)
		sigmaMin, sigmaAvg := inputSatisfaction(region, mat, f.OutputCommodity, baseline)
		satisfaction := s.Config.Alpha*sigmaMin + (1-s.Config.Alpha)*sigmaAvg

		produced := baseline * workforce * conditionFactor * region.InfrastructureFactor * techModifier * satisfaction
		if produced < 0 {
			produced = 0
		}

		f.Output = produced
		out[f.OutputCommodity] += produced
	}

	return out, nil
}
