// Package fiscal implements spec §4.5: tax revenue, government spending,
// the debt/interest feedback loop, and the GDP update. Runs on ticks
// where tick mod 4 == 0 (monthly cadence over a weekly base tick).
package fiscal

import (
	"math"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// period is the fraction of a year covered by one fiscal run: four
// weekly ticks.
const period = 4.0 / 52.0

// ticksPerPeriod is the number of weekly ticks between fiscal runs.
// Spending is computed directly from the annualized GDP/debt stocks
// scaled by period, but revenue is built from flow quantities
// (wages, tariffs, cohort income) that are only ever known one tick at
// a time — those must be accrued across ticksPerPeriod ticks before
// they're comparable to the period-scaled spending side of the budget.
const ticksPerPeriod = 4

// RunCountry computes this period's tax revenue, spending, budget
// balance, debt, interest rate, and GDP for country id. Trade tariff
// revenue must already be accrued into country.AccumulatedTariffCents
// by the trade subsystem, and wages into country.AccumulatedWagesCents
// by the labor subsystem, across the ticksPerPeriod ticks before this
// runs; both accumulators are consumed and zeroed here.
func RunCountry(s *worldstate.State, id worldstate.CountryID) error {
	country, err := s.Country(id)
	if err != nil {
		return err
	}

	gdp, incomeCents, corporateCents, err := recomputeGDPAndCorporateBase(s, country)
	if err != nil {
		return err
	}
	country.GDPPrevious = country.GDP
	country.GDP = gdp

	vatCents := vatRevenue(s, country)

	totalRevenueCents := float64(country.AccumulatedTariffCents) + incomeCents + corporateCents + vatCents

	baseSpendingCents := 0.35 * country.GDP * period * 100
	interestCents := country.EffectiveInterestRate * float64(country.DebtCents) * period
	totalSpendingCents := baseSpendingCents + interestCents

	balanceCents := totalRevenueCents - totalSpendingCents

	country.DebtCents -= roundCents(balanceCents)
	if country.DebtCents < 0 {
		country.DebtCents = 0
	}

	country.TaxRevenueCents = roundCents(totalRevenueCents)
	country.SpendingCents = roundCents(totalSpendingCents)
	country.AccumulatedWagesCents = 0
	country.AccumulatedTariffCents = 0

	country.EffectiveInterestRate = country.BaseInterestRate +
		math.Max(0, s.Config.Kappa*(country.DebtToGDP()-s.Config.DebtThreshold))

	return nil
}

// recomputeGDPAndCorporateBase sums value added across every sector in
// every region the country owns (spec §4.5's GDP update), and
// simultaneously accumulates the corporate tax base
// Σ(VA_s - wage_bill_s), clamped non-negative and scaled to cents
// before the tax rate is applied. VA is carried in whole currency
// units by the production subsystem; wage bills are carried in cents,
// so VA is converted to cents here for a consistent base.
func recomputeGDPAndCorporateBase(s *worldstate.State, country *worldstate.Country) (gdp, incomeCents, corporateCents float64, err error) {
	var sumVA, corporateBaseCents float64

	for _, rid := range country.RegionIDs {
		region, regErr := s.Region(rid)
		if regErr != nil {
			return 0, 0, 0, regErr
		}
		for c := 0; c < commodity.K; c++ {
			sec := &region.Sectors[c]
			sumVA += sec.ValueAdded
			wageBillCents := region.SectorWage[c] * sec.LaborEmployed
			corporateBaseCents += sec.ValueAdded*100 - wageBillCents
		}
	}

	gdp = 52 * sumVA
	if corporateBaseCents < 0 {
		corporateBaseCents = 0
	}

	incomeCents = country.TaxRateIncome * country.AccumulatedWagesCents
	corporateCents = country.TaxRateCorporate * corporateBaseCents
	return gdp, incomeCents, corporateCents, nil
}

// vatRevenue sums τ_VAT · income · (1 − savings_rate) over every
// population cohort in every region the country owns. No subsystem
// recomputes PopulationCohort.IncomeCents tick to tick, so the same
// per-tick income recurs for all ticksPerPeriod ticks since the last
// fiscal run; that's scaled in here rather than read as a single
// tick's income, for the same reason wages and tariffs are accrued
// across the period instead of snapshotted.
func vatRevenue(s *worldstate.State, country *worldstate.Country) float64 {
	total := 0.0
	for _, rid := range country.RegionIDs {
		region, err := s.Region(rid)
		if err != nil {
			continue
		}
		for _, cid := range region.CohortIDs {
			cohort := findCohort(s, cid)
			if cohort == nil {
				continue
			}
			periodIncome := float64(cohort.IncomeCents) * ticksPerPeriod
			total += country.TaxRateVAT * periodIncome * (1 - cohort.SavingsRate)
		}
	}
	return total
}

func findCohort(s *worldstate.State, id worldstate.CohortID) *worldstate.PopulationCohort {
	for i := range s.Cohorts {
		if s.Cohorts[i].ID == id {
			return &s.Cohorts[i]
		}
	}
	return nil
}

// roundCents rounds an already-cents-denominated float to the nearest
// integer minor unit.
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
