// Package political implements spec §4.6: faction satisfaction,
// red-line veto checks, legitimacy convergence, faction power dynamics,
// and regional unrest/stability. Runs on ticks where tick mod 4 == 0.
package political

import (
	"math"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// legitimacyPenaltyHighPower and legitimacyPenaltyMidPower are spec
// §4.6's red-line rising-edge legitimacy penalties, gated on the
// violating faction's power share.
const (
	legitimacyPenaltyHighPower = 20.0
	legitimacyPenaltyMidPower  = 10.0
	highPowerThreshold         = 0.5
	midPowerThreshold          = 0.3
)

// RunCountry updates faction satisfaction, checks red lines, converges
// legitimacy toward weighted satisfaction, re-derives faction power,
// and recomputes regional/country unrest and stability for country id.
func RunCountry(s *worldstate.State, id worldstate.CountryID) error {
	country, err := s.Country(id)
	if err != nil {
		return err
	}

	weightedSum, totalPower := 0.0, 0.0
	for _, fid := range country.FactionIDs {
		faction, ferr := s.Faction(fid)
		if ferr != nil {
			return ferr
		}

		faction.CurrentSatisfaction = satisfaction(country, faction)
		applyRedLine(s, country, faction)

		weightedSum += faction.Power * faction.CurrentSatisfaction
		totalPower += faction.Power
	}

	sBar := 50.0
	if totalPower > 0 {
		sBar = weightedSum / totalPower
	}

	lambda := s.Config.Lambda
	country.Legitimacy = clamp(country.Legitimacy+lambda*(sBar-country.Legitimacy), 0, 100)

	if err := updateFactionPower(s, country, sBar); err != nil {
		return err
	}

	if err := updateUnrest(s, country); err != nil {
		return err
	}

	country.PreviousSpendingShares = country.SpendingShares
	return nil
}

// satisfaction computes spec §4.6's faction satisfaction: base plus
// weighted utility contributions across the named axes, clamped to
// [0,100].
func satisfaction(country *worldstate.Country, faction *worldstate.Faction) float64 {
	p := faction.Preferences
	s := faction.BaseSatisfaction

	s += p.CorporateTax * (0.20 - country.TaxRateCorporate) * 100
	s += p.IncomeTax * (0.20 - country.TaxRateIncome) * 100
	s += p.WelfareSpend * (country.SpendingShares[worldstate.SpendWelfare] - 0.10) * 100
	s += p.MilitarySpend * (country.SpendingShares[worldstate.SpendDefense] - 0.10) * 100
	s += p.LowUnemployment * (0.05 - country.Unemployment()) * 200
	s += p.LowCorruption * (0.2 - country.Corruption) * 100

	return clamp(s, 0, 100)
}

// applyRedLine evaluates faction's red-line predicate against the
// country's current state and handles the rising/falling edge
// transition (spec §4.6).
func applyRedLine(s *worldstate.State, country *worldstate.Country, faction *worldstate.Faction) {
	if faction.RedLine == worldstate.RedLineNone {
		return
	}

	violated := redLinePredicate(s, country, faction)

	switch {
	case violated && !faction.RedLineViolated:
		faction.CurrentSatisfaction -= faction.RedLinePenalty
		if faction.CurrentSatisfaction < 0 {
			faction.CurrentSatisfaction = 0
		}
		switch {
		case faction.Power >= highPowerThreshold:
			country.Legitimacy = clamp(country.Legitimacy-legitimacyPenaltyHighPower, 0, 100)
		case faction.Power >= midPowerThreshold:
			country.Legitimacy = clamp(country.Legitimacy-legitimacyPenaltyMidPower, 0, 100)
		}
	case !violated && faction.RedLineViolated:
		// Falling edge: clear the bit, no reward.
	}

	faction.RedLineViolated = violated
}

// redLinePredicate evaluates the predicate named by faction.RedLine
// against country's current state.
func redLinePredicate(s *worldstate.State, country *worldstate.Country, faction *worldstate.Faction) bool {
	switch faction.RedLine {
	case worldstate.RedLineCorporateTaxAbove:
		return country.TaxRateCorporate > faction.RedLineThreshold
	case worldstate.RedLineUnemploymentAbove:
		return country.Unemployment() > faction.RedLineThreshold
	case worldstate.RedLineDefenseSpendingBelow:
		return country.SpendingShares[worldstate.SpendDefense] < faction.RedLineThreshold
	case worldstate.RedLineCorruptionAbove:
		return country.Corruption > faction.RedLineThreshold
	case worldstate.RedLineFoodImportsAbove:
		return foodImportRatio(s, country) > faction.RedLineThreshold
	case worldstate.RedLineDefenseBudgetCutAbove:
		cut := country.PreviousSpendingShares[worldstate.SpendDefense] - country.SpendingShares[worldstate.SpendDefense]
		return cut > faction.RedLineThreshold
	default:
		return false
	}
}

// foodImportRatio is imported Agriculture volume divided by total
// Agriculture supply across the country's regions this tick (0 if
// there is no supply to divide by).
func foodImportRatio(s *worldstate.State, country *worldstate.Country) float64 {
	var totalSupply float64
	for _, rid := range country.RegionIDs {
		region, err := s.Region(rid)
		if err != nil {
			continue
		}
		totalSupply += region.Supply[commodity.Agriculture]
	}
	if totalSupply <= 0 {
		return 0
	}
	return country.ImportVolume[commodity.Agriculture] / totalSupply
}

// updateFactionPower applies spec §4.6's power dynamics: each faction's
// power drifts toward factions more satisfied than the weighted mean,
// floored at 0.01, then the country's faction powers are renormalized
// to sum to 1.
func updateFactionPower(s *worldstate.State, country *worldstate.Country, sBar float64) error {
	mu := s.Config.PowerMu

	total := 0.0
	for _, fid := range country.FactionIDs {
		faction, err := s.Faction(fid)
		if err != nil {
			return err
		}
		faction.Power = math.Max(0.01, faction.Power+mu*faction.Power*(faction.CurrentSatisfaction-sBar)/100)
		total += faction.Power
	}

	if total <= 0 {
		return nil
	}
	for _, fid := range country.FactionIDs {
		faction, err := s.Faction(fid)
		if err != nil {
			return err
		}
		faction.Power /= total
	}
	return nil
}

// updateUnrest recomputes every owned region's unrest from local
// unemployment, food insecurity, inequality, and country corruption,
// then sets the country's average unrest to the mean over regions.
func updateUnrest(s *worldstate.State, country *worldstate.Country) error {
	var sum float64
	var count int
	for _, rid := range country.RegionIDs {
		region, err := s.Region(rid)
		if err != nil {
			return err
		}
		region.Unrest = region.UnrestScore(region.Unemployment(), country.Corruption)
		sum += region.Unrest
		count++
	}
	if count > 0 {
		country.AverageUnrest = sum / float64(count)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
