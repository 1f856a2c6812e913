package worldstate

// RedLineType is a faction's veto policy trigger. All branches over
// this enumeration are exhaustive switches, never dynamic dispatch
// (spec §9, "Dynamic dispatch over sectors and red lines").
type RedLineType int

const (
	RedLineNone RedLineType = iota
	RedLineCorporateTaxAbove
	RedLineUnemploymentAbove
	RedLineDefenseSpendingBelow
	RedLineCorruptionAbove
	RedLineFoodImportsAbove
	RedLineDefenseBudgetCutAbove
)

// PreferenceWeights are a faction's signed utility weights. Positive
// means the faction prefers higher utility on that axis.
type PreferenceWeights struct {
	CorporateTax   float64
	IncomeTax      float64
	WelfareSpend   float64
	MilitarySpend  float64
	TradeOpenness  float64
	GDPGrowth      float64
	LowUnemployment float64
	WageGrowth     float64
	LowCorruption  float64
}

// Faction is a political actor within a Country competing for power
// share and evaluated against a red-line veto threshold.
type Faction struct {
	ID        FactionID
	CountryID CountryID
	Name      string

	Power float64 // [0.01, 1], all factions in a country sum to 1

	BaseSatisfaction    float64 // [0,100]
	CurrentSatisfaction float64 // [0,100]

	Preferences PreferenceWeights

	RedLine          RedLineType
	RedLineThreshold float64
	RedLineViolated  bool // current-violation bit
	RedLinePenalty   float64
}
