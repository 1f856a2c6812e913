package worldstate

// FormationType tags the kind of a military formation. The military
// subsystem is a spec-mandated placeholder: it carries the data model
// and degradation/upkeep loop but no combat resolution.
type FormationType int

const (
	FormationInfantry FormationType = iota
	FormationArmor
	FormationAir
	FormationNaval
)

// MilitaryFormation is a unit belonging to a country's armed forces.
type MilitaryFormation struct {
	ID        FormationID
	CountryID CountryID
	Type      FormationType

	BaseStrength    float64
	CurrentStrength float64
	Personnel       float64

	Training   float64 // [0,1]
	Maintenance float64 // [0,1]
	Morale     float64 // [0,1]

	EquipmentQuality float64
	EquipmentAge     int // ticks

	MaintenanceCostCents int64
	CombatSupplyCostCents int64

	SupplyStatus float64 // [0,1]
	Deployed     bool
	HexID        int
	InCombat     bool
}

// depreciationRate is the per-tick equipment quality decay coefficient
// applied to BaseStrength-derived quality (spec §4.1, facility
// degradation section, "equipment age on military formations").
const depreciationRate = 0.002

// AgeEquipment increments equipment age by one tick and recomputes
// quality = base * max(0, 1 - depreciationRate*age).
func (m *MilitaryFormation) AgeEquipment(base float64) {
	m.EquipmentAge++
	q := base * (1 - depreciationRate*float64(m.EquipmentAge))
	if q < 0 {
		q = 0
	}
	m.EquipmentQuality = q
}
