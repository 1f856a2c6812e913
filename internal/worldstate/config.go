package worldstate

// Config carries the process-wide tunables spec §9 says may be
// "configurable" or "passed in or attached to the state" rather than
// hard-coded — the teacher's equivalent is threading fields through
// *Engine/*Simulation instead of reading package globals.
type Config struct {
	// Production: soft-Leontief input-satisfaction blend weight,
	// default 0.6, configurable in [0.6, 0.9].
	Alpha float64

	// Price: display-smoothing weight, default 0.7.
	Beta float64

	// Price: max per-tick fractional price change. Spec's written text
	// says 0.05; the reference scenarios in spec §8 assume 0.5. Both are
	// accepted — this is an explicit Open Question (see DESIGN.md) and
	// the field is configurable so a caller can set either on
	// State.Config (the scenario file has no field for it).
	DeltaMax float64

	// Labor: wage adjustment speed, default 0.02, in [0.01, 0.05].
	Omega float64

	// Labor: mobility rate between sectors, default 0 (disabled), in [0, 0.1].
	Mu float64

	// Trade: demand elasticity exponent, default 2.0.
	Gamma float64

	// Fiscal: risk-premium slope, default 0.02.
	Kappa float64

	// Fiscal: debt/GDP threshold above which risk premium applies, default 0.6.
	DebtThreshold float64

	// Political: legitimacy convergence rate, default 0.1, in [0.05, 0.2].
	Lambda float64

	// Political: faction power adjustment rate, default 0.02.
	PowerMu float64

	// Facility degradation: condition recovered per tick per unit of
	// maintenance satisfaction, spec §4.1's unspecified "repair_rate".
	// Default 0.015 (see DESIGN.md).
	RepairRate float64
}

// DefaultConfig returns the defaults named throughout spec §4.
func DefaultConfig() Config {
	return Config{
		Alpha:         0.6,
		Beta:          0.7,
		DeltaMax:      0.5,
		Omega:         0.02,
		Mu:            0,
		Gamma:         2.0,
		Kappa:         0.02,
		DebtThreshold: 0.6,
		Lambda:        0.1,
		PowerMu:       0.02,
		RepairRate:    0.015,
	}
}
