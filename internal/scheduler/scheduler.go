// Package scheduler implements spec §4.7's fixed per-tick ordering,
// generalized from the teacher's internal/engine/tick.go Engine/step()
// layering (minute/hour/day/week/season) down to this spec's single
// weekly tick with a tick-mod-4 monthly gate.
package scheduler

import (
	"fmt"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/fiscal"
	"github.com/nivenhall/econsim/internal/labor"
	"github.com/nivenhall/econsim/internal/military"
	"github.com/nivenhall/econsim/internal/political"
	"github.com/nivenhall/econsim/internal/price"
	"github.com/nivenhall/econsim/internal/production"
	"github.com/nivenhall/econsim/internal/rng"
	"github.com/nivenhall/econsim/internal/trade"
	"github.com/nivenhall/econsim/internal/worldstate"
)

// monthTicks is how many weekly ticks make up the fiscal/political
// cadence (spec §4.7 step 5, "tick mod 4 == 0").
const monthTicks = 4

// Advance runs n ticks of the fixed pipeline over state in place,
// matching the external-interface signature `advance(state, n) -> state`
// (spec §6): the state pointer already is the returned state, so Go
// mutates it and returns only an error.
func Advance(state *worldstate.State, n int) error {
	for i := 0; i < n; i++ {
		if err := step(state); err != nil {
			return fmt.Errorf("tick %d: %w", state.Tick, err)
		}
	}
	return nil
}

// step runs spec §4.7's nine-step ordering for a single tick.
func step(s *worldstate.State) error {
	// 1. Production, all countries in id order.
	for i := range s.Countries {
		if err := production.RunCountry(s, worldstate.CountryID(i)); err != nil {
			return fmt.Errorf("production: %w", err)
		}
	}

	// 2. Trade, all directed relations in insertion order.
	trade.ResetBalances(s)
	if err := trade.RunAll(s, s.Config.Gamma); err != nil {
		return fmt.Errorf("trade: %w", err)
	}

	// 3. Labor, all countries in id order.
	for i := range s.Countries {
		if err := labor.RunCountry(s, worldstate.CountryID(i)); err != nil {
			return fmt.Errorf("labor: %w", err)
		}
	}

	// 4. Price: aggregate supply/demand, adjust prices, then CPI.
	for i := range s.Countries {
		id := worldstate.CountryID(i)
		demand, supply, err := price.AggregateCountry(s, id)
		if err != nil {
			return fmt.Errorf("price aggregate: %w", err)
		}
		if err := price.RunCountry(s, id, demand, supply); err != nil {
			return fmt.Errorf("price: %w", err)
		}
	}

	// 5. Every 4 ticks: fiscal, then political.
	if s.Tick%monthTicks == 0 {
		for i := range s.Countries {
			if err := fiscal.RunCountry(s, worldstate.CountryID(i)); err != nil {
				return fmt.Errorf("fiscal: %w", err)
			}
		}
		for i := range s.Countries {
			if err := political.RunCountry(s, worldstate.CountryID(i)); err != nil {
				return fmt.Errorf("political: %w", err)
			}
		}
	}

	// 6. Spoilage.
	spoil(s)

	// 7. Facility condition decay, equipment age, military rollups.
	if err := production.Degrade(s); err != nil {
		return fmt.Errorf("degrade: %w", err)
	}
	for i := range s.Countries {
		if err := military.RunCountry(s, worldstate.CountryID(i)); err != nil {
			return fmt.Errorf("military: %w", err)
		}
	}

	// 8. Rotate CPI history every 52 ticks.
	if s.Tick%uint64(s.TicksPerYear) == 0 {
		for i := range s.Countries {
			s.Countries[i].CPIYearAgo = s.Countries[i].CPI
		}
	}

	// 9. Tick counter, RNG reseed.
	s.Tick++
	s.Seed = rng.MixTick(s.Seed, s.Tick)
	s.RNGState = rng.Seeded(s.Seed, s.Tick, rng.PhaseScheduler).Uint64()

	return nil
}

// spoil applies spec §4.7 step 6: stockpileable commodities decay by
// spoilage_rate[c]; non-stockpileable commodities (Electricity,
// Services) are discarded entirely.
func spoil(s *worldstate.State) {
	for i := range s.Regions {
		region := &s.Regions[i]
		for c := 0; c < commodity.K; c++ {
			cc := commodity.Commodity(c)
			if !cc.Stockpileable() {
				region.Inventory[c] = 0
				region.Sectors[c].Inventory = 0
				continue
			}
			region.Inventory[c] *= 1 - s.SpoilageRate[c]
			if region.Inventory[c] < 0 {
				region.Inventory[c] = 0
			}
			region.Sectors[c].Inventory = region.Inventory[c]
		}
	}
}
