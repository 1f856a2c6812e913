// Package scenario decodes the spec §6 scenario JSON format into a
// worldstate.State ready for scheduler.Advance. Grounded on the
// teacher's load-then-validate pattern in cmd/worldsim/main.go: decode,
// check structural invariants, fail with a wrapped error rather than
// panic. Unknown fields are rejected, matching spec §6's "Unknown
// fields are rejected".
package scenario

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/diagnostics"
	"github.com/nivenhall/econsim/internal/matrix"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// file is the top-level scenario JSON shape (spec §6).
type file struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	Author             string       `json:"author"`
	Version            string       `json:"version"`
	StartYear          int          `json:"startYear"`
	RandomSeed         int64        `json:"randomSeed"`
	PriceSensitivities []float64    `json:"priceSensitivities"`
	LaborCoefficients  []float64    `json:"laborCoefficients"`
	SpoilageRates      []float64    `json:"spoilageRates"`
	BaseInterestRate   float64      `json:"baseInterestRate"`
	Countries          []countryFile `json:"countries"`
	TradeRelations     []tradeRelationFile `json:"tradeRelations"`
}

type countryFile struct {
	Code                  string        `json:"code"`
	Name                  string        `json:"name"`
	InitialGDP            float64       `json:"initialGDP"`
	InitialDebtCents      int64         `json:"initialDebtCents"`
	LaborForce            float64       `json:"laborForce"`
	Population            float64       `json:"population"`
	TaxRateIncome         float64       `json:"taxRateIncome"`
	TaxRateCorporate      float64       `json:"taxRateCorporate"`
	TaxRateVAT            float64       `json:"taxRateVAT"`
	BaseInterestRate      float64       `json:"baseInterestRate"`
	Corruption            float64       `json:"corruption"`
	Legitimacy            float64       `json:"legitimacy"`
	ImportPropensity      []float64     `json:"importPropensity"`
	ExportPropensity      []float64     `json:"exportPropensity"`
	InitialPrices         []float64     `json:"initialPrices"`
	BasketWeights         []float64     `json:"basketWeights"`
	TechnicalCoefficients []float64     `json:"technicalCoefficients"`
	SpendingShares        spendingFile  `json:"spendingShares"`
	Regions               []regionFile  `json:"regions"`
	Factions              []factionFile `json:"factions"`
}

type spendingFile struct {
	Welfare        float64 `json:"welfare"`
	Education      float64 `json:"education"`
	Defense        float64 `json:"defense"`
	Infrastructure float64 `json:"infrastructure"`
	Healthcare     float64 `json:"healthcare"`
}

type regionFile struct {
	Name                 string        `json:"name"`
	Population           float64       `json:"population"`
	LaborForce           float64       `json:"laborForce"`
	InfrastructureFactor float64       `json:"infrastructureFactor"`
	SectorCapacities     []float64     `json:"sectorCapacities"`
	SectorEfficiency     []float64     `json:"sectorEfficiency"`
	FoodInsecurity       float64       `json:"foodInsecurity"`
	Inequality           float64       `json:"inequality"`
	Deposits             []depositFile `json:"deposits"`
	ExtractionFacilities []extractionFacilityFile    `json:"extractionFacilities"`
	ManufacturingFacilities []manufacturingFacilityFile `json:"manufacturingFacilities"`
	Cohorts              []cohortFile  `json:"cohorts"`
}

type depositFile struct {
	Subtype       string  `json:"subtype"`
	Resource      string  `json:"resource"`
	TotalReserves float64 `json:"totalReserves"`
	BaseYield     float64 `json:"baseYield"`
	Difficulty    float64 `json:"difficulty"`
	Discovery     string  `json:"discovery"`
}

type extractionFacilityFile struct {
	DepositIndex    int     `json:"depositIndex"`
	Level           int     `json:"level"`
	Condition       float64 `json:"condition"`
	Workers         float64 `json:"workers"`
	WorkersRequired float64 `json:"workersRequired"`
	DegradationRate float64 `json:"degradationRate"`
}

type manufacturingFacilityFile struct {
	OutputCommodity      string  `json:"outputCommodity"`
	BaseCapacityPerLevel float64 `json:"baseCapacityPerLevel"`
	Level                int     `json:"level"`
	Condition            float64 `json:"condition"`
	Workers              float64 `json:"workers"`
	WorkersRequired      float64 `json:"workersRequired"`
	DegradationRate      float64 `json:"degradationRate"`
}

type cohortFile struct {
	PrimarySector string  `json:"primarySector"`
	Wealth        string  `json:"wealth"`
	Population    float64 `json:"population"`
	IncomeCents   int64   `json:"incomeCents"`
	CostOfLiving  float64 `json:"costOfLiving"`
	SavingsRate   float64 `json:"savingsRate"`
}

type factionFile struct {
	Name             string          `json:"name"`
	BasePower        float64         `json:"basePower"`
	BaseSatisfaction float64         `json:"baseSatisfaction"`
	RedLine          string          `json:"redLine"`
	RedLineThreshold float64         `json:"redLineThreshold"`
	RedLinePenalty   float64         `json:"redLinePenalty"`
	Preferences      preferencesFile `json:"preferences"`
}

type preferencesFile struct {
	CorporateTax    float64 `json:"corporateTax"`
	IncomeTax       float64 `json:"incomeTax"`
	WelfareSpend    float64 `json:"welfareSpend"`
	MilitarySpend   float64 `json:"militarySpend"`
	TradeOpenness   float64 `json:"tradeOpenness"`
	GDPGrowth       float64 `json:"gdpGrowth"`
	LowUnemployment float64 `json:"lowUnemployment"`
	WageGrowth      float64 `json:"wageGrowth"`
	LowCorruption   float64 `json:"lowCorruption"`
}

type tradeRelationFile struct {
	From              string    `json:"from"`
	To                string    `json:"to"`
	TariffRate        []float64 `json:"tariffRate"`
	BaseTradeVolume   []float64 `json:"baseTradeVolume"`
	DiplomaticScore   float64   `json:"diplomaticScore"`
	Reliability       float64   `json:"reliability"`
	DistancePenalty   float64   `json:"distancePenalty"`
	TreatyBonus       float64   `json:"treatyBonus"`
	SanctionSeverity  float64   `json:"sanctionSeverity"`
	TransportCostUnit float64   `json:"transportCostUnit"`
}

var redLineTags = map[string]worldstate.RedLineType{
	"none":                   worldstate.RedLineNone,
	"corporateTaxAbove":      worldstate.RedLineCorporateTaxAbove,
	"unemploymentAbove":      worldstate.RedLineUnemploymentAbove,
	"defenseSpendingBelow":   worldstate.RedLineDefenseSpendingBelow,
	"corruptionAbove":        worldstate.RedLineCorruptionAbove,
	"foodImportsAbove":       worldstate.RedLineFoodImportsAbove,
	"defenseBudgetCutAbove":  worldstate.RedLineDefenseBudgetCutAbove,
}

var wealthTags = map[string]worldstate.WealthLevel{
	"subsistence": worldstate.Subsistence,
	"poor":        worldstate.Poor,
	"middle":      worldstate.Middle,
	"wealthy":     worldstate.Wealthy,
	"rich":        worldstate.Rich,
}

var discoveryTags = map[string]worldstate.DiscoveryState{
	"unknown":  worldstate.Unknown,
	"surveyed": worldstate.Surveyed,
	"proven":   worldstate.Proven,
}

// Load decodes scenario JSON from r into a ready-to-run
// worldstate.State. Rejects unknown fields and any array whose length
// isn't K, per spec §6/§7 (SchemaError).
func Load(r io.Reader) (*worldstate.State, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}

	if err := checkLength("priceSensitivities", f.PriceSensitivities); err != nil {
		return nil, err
	}
	if err := checkLength("laborCoefficients", f.LaborCoefficients); err != nil {
		return nil, err
	}
	if err := checkLength("spoilageRates", f.SpoilageRates); err != nil {
		return nil, err
	}

	state := worldstate.New(f.RandomSeed, f.StartYear)
	copy(state.PriceSensitivity[:], f.PriceSensitivities)
	copy(state.LaborCoefficients[:], f.LaborCoefficients)
	copy(state.SpoilageRate[:], f.SpoilageRates)

	codeToID := make(map[string]worldstate.CountryID, len(f.Countries))

	for _, cf := range f.Countries {
		if _, dup := codeToID[cf.Code]; dup {
			return nil, &diagnostics.SchemaError{Field: "countries.code", Reason: fmt.Sprintf("duplicate country code %q", cf.Code)}
		}

		id := worldstate.CountryID(len(state.Countries))
		codeToID[cf.Code] = id

		country, err := buildCountry(cf, id, f.BaseInterestRate)
		if err != nil {
			return nil, err
		}

		mat, err := matrix.FromRowMajor(cf.TechnicalCoefficients)
		if err != nil {
			return nil, &diagnostics.SchemaError{Field: "countries.technicalCoefficients", Reason: err.Error()}
		}
		if err := mat.Validate(); err != nil {
			return nil, &diagnostics.SchemaError{Field: "countries.technicalCoefficients", Reason: err.Error()}
		}

		for _, rf := range cf.Regions {
			region, err := buildRegion(state, id, rf)
			if err != nil {
				return nil, err
			}
			country.RegionIDs = append(country.RegionIDs, region.ID)
		}

		for _, ff := range cf.Factions {
			faction, err := buildFaction(ff, id, worldstate.FactionID(len(state.Factions)))
			if err != nil {
				return nil, err
			}
			state.Factions = append(state.Factions, *faction)
			country.FactionIDs = append(country.FactionIDs, faction.ID)
		}

		state.Countries = append(state.Countries, *country)
		state.Matrices = append(state.Matrices, mat)
	}

	for _, tf := range f.TradeRelations {
		rel, err := buildTradeRelation(tf, codeToID)
		if err != nil {
			return nil, err
		}
		state.TradeRelations = append(state.TradeRelations, *rel)
	}

	return state, nil
}

func checkLength(field string, v []float64) error {
	if len(v) != commodity.K {
		return &diagnostics.SchemaError{Field: field, Reason: fmt.Sprintf("want length %d, got %d", commodity.K, len(v))}
	}
	return nil
}

func buildCountry(cf countryFile, id worldstate.CountryID, defaultInterestRate float64) (*worldstate.Country, error) {
	if err := checkLength("countries.importPropensity", cf.ImportPropensity); err != nil {
		return nil, err
	}
	if err := checkLength("countries.exportPropensity", cf.ExportPropensity); err != nil {
		return nil, err
	}
	if err := checkLength("countries.initialPrices", cf.InitialPrices); err != nil {
		return nil, err
	}
	if err := checkLength("countries.basketWeights", cf.BasketWeights); err != nil {
		return nil, err
	}

	c := &worldstate.Country{
		ID:                    id,
		Code:                  cf.Code,
		Name:                  cf.Name,
		GDP:                   cf.InitialGDP,
		GDPPrevious:           cf.InitialGDP,
		CPI:                   1,
		CPIYearAgo:            1,
		LaborForce:            cf.LaborForce,
		DebtCents:             cf.InitialDebtCents,
		BaseInterestRate:      cf.BaseInterestRate,
		EffectiveInterestRate: cf.BaseInterestRate,
		TaxRateIncome:         cf.TaxRateIncome,
		TaxRateCorporate:      cf.TaxRateCorporate,
		TaxRateVAT:            cf.TaxRateVAT,
		Corruption:            cf.Corruption,
		Legitimacy:            cf.Legitimacy,
		SpendingShares: [5]float64{
			worldstate.SpendWelfare:        cf.SpendingShares.Welfare,
			worldstate.SpendEducation:      cf.SpendingShares.Education,
			worldstate.SpendDefense:        cf.SpendingShares.Defense,
			worldstate.SpendInfrastructure: cf.SpendingShares.Infrastructure,
			worldstate.SpendHealthcare:     cf.SpendingShares.Healthcare,
		},
	}
	if c.BaseInterestRate == 0 {
		c.BaseInterestRate = defaultInterestRate
		c.EffectiveInterestRate = defaultInterestRate
	}
	copy(c.ImportPropensity[:], cf.ImportPropensity)
	copy(c.ExportPropensity[:], cf.ExportPropensity)
	copy(c.InitialPrice[:], cf.InitialPrices)
	copy(c.Price[:], cf.InitialPrices)
	copy(c.DisplayPrice[:], cf.InitialPrices)
	copy(c.BasketWeight[:], cf.BasketWeights)
	totalWeight := 0.0
	for _, w := range c.BasketWeight {
		totalWeight += w
	}
	if totalWeight > 0 {
		for i := range c.BasketWeight {
			c.BasketWeight[i] /= totalWeight
		}
	}
	return c, nil
}

func buildRegion(state *worldstate.State, countryID worldstate.CountryID, rf regionFile) (*worldstate.Region, error) {
	if err := checkLength("regions.sectorCapacities", rf.SectorCapacities); err != nil {
		return nil, err
	}
	if len(rf.SectorEfficiency) != 0 {
		if err := checkLength("regions.sectorEfficiency", rf.SectorEfficiency); err != nil {
			return nil, err
		}
	}

	region := worldstate.Region{
		ID:                   worldstate.RegionID(len(state.Regions)),
		CountryID:            countryID,
		Name:                 rf.Name,
		Population:           rf.Population,
		LaborForce:           rf.LaborForce,
		InfrastructureFactor: rf.InfrastructureFactor,
		FoodInsecurity:       rf.FoodInsecurity,
		Inequality:           rf.Inequality,
	}
	for c := 0; c < commodity.K; c++ {
		region.Sectors[c].Capacity = rf.SectorCapacities[c]
		region.Sectors[c].Efficiency = 1
		region.Sectors[c].LaborCoefficient = state.LaborCoefficients[c]
		if len(rf.SectorEfficiency) == commodity.K {
			region.Sectors[c].Efficiency = rf.SectorEfficiency[c]
		}
	}

	for _, df := range rf.Deposits {
		res, ok := commodity.FromString(df.Resource)
		if !ok || !res.Raw() {
			return nil, &diagnostics.SchemaError{Field: "deposits.resource", Reason: fmt.Sprintf("unknown or non-raw commodity tag %q", df.Resource)}
		}
		disc, ok := discoveryTags[df.Discovery]
		if !ok {
			return nil, &diagnostics.SchemaError{Field: "deposits.discovery", Reason: fmt.Sprintf("unknown discovery state %q", df.Discovery)}
		}
		deposit := worldstate.ResourceDeposit{
			ID:                worldstate.DepositID(len(state.Deposits)),
			RegionID:          region.ID,
			Resource:          res,
			Subtype:           df.Subtype,
			TotalReserves:     df.TotalReserves,
			RemainingReserves: df.TotalReserves,
			BaseYield:         df.BaseYield,
			Difficulty:        df.Difficulty,
			Discovery:         disc,
		}
		state.Deposits = append(state.Deposits, deposit)
		region.DepositIDs = append(region.DepositIDs, deposit.ID)
	}

	for _, ef := range rf.ExtractionFacilities {
		if ef.DepositIndex < 0 || ef.DepositIndex >= len(region.DepositIDs) {
			return nil, &diagnostics.SchemaError{Field: "extractionFacilities.depositIndex", Reason: "index out of range for region's deposits"}
		}
		facility := worldstate.ExtractionFacility{
			FacilityCommon: worldstate.FacilityCommon{
				ID:              worldstate.FacilityID(len(state.ExtractionFacilities)),
				RegionID:        region.ID,
				Level:           ef.Level,
				Condition:       ef.Condition,
				Workers:         ef.Workers,
				WorkersRequired: ef.WorkersRequired,
				DegradationRate: ef.DegradationRate,
			},
			DepositID: region.DepositIDs[ef.DepositIndex],
		}
		state.ExtractionFacilities = append(state.ExtractionFacilities, facility)
		region.ExtractionFacilityIDs = append(region.ExtractionFacilityIDs, facility.ID)
	}

	for _, mf := range rf.ManufacturingFacilities {
		out, ok := commodity.FromString(mf.OutputCommodity)
		if !ok || !out.Manufactured() {
			return nil, &diagnostics.SchemaError{Field: "manufacturingFacilities.outputCommodity", Reason: fmt.Sprintf("unknown or non-manufactured commodity tag %q", mf.OutputCommodity)}
		}
		facility := worldstate.ManufacturingFacility{
			FacilityCommon: worldstate.FacilityCommon{
				ID:              worldstate.FacilityID(len(state.ManufacturingFacilities)),
				RegionID:        region.ID,
				Level:           mf.Level,
				Condition:       mf.Condition,
				Workers:         mf.Workers,
				WorkersRequired: mf.WorkersRequired,
				DegradationRate: mf.DegradationRate,
			},
			OutputCommodity:      out,
			BaseCapacityPerLevel: mf.BaseCapacityPerLevel,
		}
		state.ManufacturingFacilities = append(state.ManufacturingFacilities, facility)
		region.ManufacturingFacilityIDs = append(region.ManufacturingFacilityIDs, facility.ID)
	}

	for _, cf := range rf.Cohorts {
		wealth, ok := wealthTags[cf.Wealth]
		if !ok {
			return nil, &diagnostics.SchemaError{Field: "cohorts.wealth", Reason: fmt.Sprintf("unknown wealth tag %q", cf.Wealth)}
		}
		sector, ok := commodity.FromString(cf.PrimarySector)
		if !ok {
			return nil, &diagnostics.SchemaError{Field: "cohorts.primarySector", Reason: fmt.Sprintf("unknown commodity tag %q", cf.PrimarySector)}
		}
		cohort := worldstate.PopulationCohort{
			ID:            worldstate.CohortID(len(state.Cohorts)),
			RegionID:      region.ID,
			PrimarySector: sector,
			Wealth:        wealth,
			Population:    cf.Population,
			IncomeCents:   cf.IncomeCents,
			CostOfLiving:  cf.CostOfLiving,
			SavingsRate:   cf.SavingsRate,
		}
		for c := 0; c < commodity.K; c++ {
			cohort.ConsumptionMultiplier[c] = 1
		}
		state.Cohorts = append(state.Cohorts, cohort)
		region.CohortIDs = append(region.CohortIDs, cohort.ID)
	}

	state.Regions = append(state.Regions, region)
	return &state.Regions[len(state.Regions)-1], nil
}

func buildFaction(ff factionFile, countryID worldstate.CountryID, id worldstate.FactionID) (*worldstate.Faction, error) {
	redLine, ok := redLineTags[ff.RedLine]
	if !ok {
		return nil, &diagnostics.SchemaError{Field: "factions.redLine", Reason: fmt.Sprintf("unknown red line tag %q", ff.RedLine)}
	}
	p := ff.Preferences
	return &worldstate.Faction{
		ID:               id,
		CountryID:        countryID,
		Name:             ff.Name,
		Power:            ff.BasePower,
		BaseSatisfaction: ff.BaseSatisfaction,
		CurrentSatisfaction: ff.BaseSatisfaction,
		RedLine:          redLine,
		RedLineThreshold: ff.RedLineThreshold,
		RedLinePenalty:   ff.RedLinePenalty,
		Preferences: worldstate.PreferenceWeights{
			CorporateTax:    p.CorporateTax,
			IncomeTax:       p.IncomeTax,
			WelfareSpend:    p.WelfareSpend,
			MilitarySpend:   p.MilitarySpend,
			TradeOpenness:   p.TradeOpenness,
			GDPGrowth:       p.GDPGrowth,
			LowUnemployment: p.LowUnemployment,
			WageGrowth:      p.WageGrowth,
			LowCorruption:   p.LowCorruption,
		},
	}, nil
}

func buildTradeRelation(tf tradeRelationFile, codeToID map[string]worldstate.CountryID) (*worldstate.TradeRelation, error) {
	from, ok := codeToID[tf.From]
	if !ok {
		return nil, &diagnostics.SchemaError{Field: "tradeRelations.from", Reason: fmt.Sprintf("unknown country code %q", tf.From)}
	}
	to, ok := codeToID[tf.To]
	if !ok {
		return nil, &diagnostics.SchemaError{Field: "tradeRelations.to", Reason: fmt.Sprintf("unknown country code %q", tf.To)}
	}
	if err := checkLength("tradeRelations.tariffRate", tf.TariffRate); err != nil {
		return nil, err
	}
	if err := checkLength("tradeRelations.baseTradeVolume", tf.BaseTradeVolume); err != nil {
		return nil, err
	}

	rel := &worldstate.TradeRelation{
		From:              from,
		To:                to,
		DiplomaticScore:   tf.DiplomaticScore,
		Reliability:       tf.Reliability,
		DistancePenalty:   tf.DistancePenalty,
		TreatyBonus:       tf.TreatyBonus,
		SanctionSeverity:  tf.SanctionSeverity,
		TransportCostUnit: tf.TransportCostUnit,
	}
	copy(rel.TariffRate[:], tf.TariffRate)
	copy(rel.BaseTradeVolume[:], tf.BaseTradeVolume)
	return rel, nil
}
