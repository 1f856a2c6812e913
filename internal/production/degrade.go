package production

import "github.com/nivenhall/econsim/internal/worldstate"

// Degrade runs scheduler step 7 (spec §4.7): facility condition decay
// plus repair from maintenance, and military formation equipment aging.
// Maintenance satisfaction is the same σ_avg blend used for production
// inputs, computed against each facility's own region inventory and
// its MaintenanceCost commodity basket.
func Degrade(s *worldstate.State) error {
	for i := range s.ExtractionFacilities {
		f := &s.ExtractionFacilities[i]
		if f.Level == 0 {
			continue
		}
		region, err := s.Region(f.RegionID)
		if err != nil {
			return err
		}
		degradeFacility(&f.FacilityCommon, region, s.Config.RepairRate)
	}

	for i := range s.ManufacturingFacilities {
		f := &s.ManufacturingFacilities[i]
		if f.Level == 0 {
			continue
		}
		region, err := s.Region(f.RegionID)
		if err != nil {
			return err
		}
		degradeFacility(&f.FacilityCommon, region, s.Config.RepairRate)
	}

	for i := range s.Formations {
		form := &s.Formations[i]
		form.AgeEquipment(form.BaseStrength)
	}

	return nil
}

// degradeFacility applies spec §4.1's condition update:
// condition ← max(0, condition − degradation_rate + maintenance_satisfaction · repair_rate).
// Maintenance satisfaction is the σ_avg of the facility's maintenance
// commodity basket against the owning region's inventory (1.0 if the
// facility needs no maintenance commodities).
func degradeFacility(f *worldstate.FacilityCommon, region *worldstate.Region, repairRate float64) {
	satisfaction := maintenanceSatisfaction(f, region)

	f.Condition = f.Condition - f.DegradationRate + satisfaction*repairRate
	if f.Condition < 0 {
		f.Condition = 0
	}
	if f.Condition > 1 {
		f.Condition = 1
	}
}

// maintenanceSatisfaction averages, over every commodity the facility's
// MaintenanceCost basket requires, min(1, inventory/required).
func maintenanceSatisfaction(f *worldstate.FacilityCommon, region *worldstate.Region) float64 {
	sum := 0.0
	count := 0
	for i, required := range f.MaintenanceCost.Commodities {
		if required <= 0 {
			continue
		}
		sigma := region.Inventory[i] / required
		if sigma > 1 {
			sigma = 1
		}
		sum += sigma
		count++
	}
	if count == 0 {
		return 1
	}
	return sum / float64(count)
}
