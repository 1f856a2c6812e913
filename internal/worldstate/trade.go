package worldstate

import "github.com/nivenhall/econsim/internal/commodity"

// TradeRelation is a directed, ordered (from, to) country pair the
// trade subsystem resolves every tick. Tariffs are imposed by `to` on
// imports from `from`.
type TradeRelation struct {
	From CountryID
	To   CountryID

	TariffRate        [commodity.K]float64 // [0,1], imposed by To
	BaseTradeVolume    [commodity.K]float64 // loaded from MRIO
	CurrentTradeVolume [commodity.K]float64 // last tick's resolved flow

	DiplomaticScore   float64 // [-100,100]
	Reliability       float64 // [0,1]
	DistancePenalty   float64
	TreatyBonus       float64
	SanctionSeverity  float64 // [0,1], 1 = full embargo
	TransportCostUnit float64
}
