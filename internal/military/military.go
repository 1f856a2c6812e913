// Package military implements spec §3/§4.1's placeholder military
// subsystem: formation strength derived from training, morale, and
// equipment quality (the one part of combat the spec actually defines
// is equipment aging, already applied by production.Degrade), plus the
// country-level rollups (power, procurement satisfaction, war
// weariness) the data model carries but leaves without a combat
// resolution model. Runs every tick, alongside facility degradation.
package military

import (
	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// wearinessDecay is how quickly war weariness recedes once a country is
// no longer at war; wearinessGrowth is how quickly it accrues while at
// war. Both are placeholder constants: the spec names the field but
// never a combat model to drive it.
const (
	wearinessGrowth = 0.01
	wearinessDecay  = 0.02
)

// RunCountry recomputes formation strength for every formation the
// country owns, then rolls up military power, procurement
// satisfaction, and war weariness onto the country.
func RunCountry(s *worldstate.State, id worldstate.CountryID) error {
	country, err := s.Country(id)
	if err != nil {
		return err
	}

	var totalStrength float64
	for i := range s.Formations {
		f := &s.Formations[i]
		if f.CountryID != id {
			continue
		}
		f.CurrentStrength = f.BaseStrength * f.EquipmentQuality * f.Training * f.Morale
		totalStrength += f.CurrentStrength
	}
	country.MilitaryPower = totalStrength

	country.ProcurementSatisfaction = procurementSatisfaction(s, country)

	if country.AtWar {
		country.WarWeariness += wearinessGrowth
	} else {
		country.WarWeariness -= wearinessDecay
	}
	if country.WarWeariness < 0 {
		country.WarWeariness = 0
	}
	if country.WarWeariness > 1 {
		country.WarWeariness = 1
	}

	return nil
}

// procurementSatisfaction is min(1, available MilitaryGoods / goods
// required), available being the sum of MilitaryGoods inventory across
// the country's regions. 1 if the country requires none.
func procurementSatisfaction(s *worldstate.State, country *worldstate.Country) float64 {
	if country.MilitaryGoodsRequired <= 0 {
		return 1
	}
	var available float64
	for _, rid := range country.RegionIDs {
		region, err := s.Region(rid)
		if err != nil {
			continue
		}
		available += region.Inventory[commodity.MilitaryGoods]
	}
	sat := available / country.MilitaryGoodsRequired
	if sat > 1 {
		sat = 1
	}
	return sat
}
