package worldstate

// Sector is the small per-region, per-commodity value record the
// production subsystem reads and mutates every tick.
type Sector struct {
	Capacity        float64 // capital-determined upper bound on output
	LaborEmployed   float64 // workers
	LaborCoefficient float64 // workers per unit output
	Output          float64 // this tick
	Inventory       float64 // sector-local pipe-through view
	Price           float64
	InitialPrice    float64
	Efficiency      float64 // [0.5, 2.0]
	ValueAdded      float64 // this tick
}
