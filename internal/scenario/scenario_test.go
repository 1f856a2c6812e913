package scenario

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/nivenhall/econsim/internal/commodity"
)

func zeros() []float64 { return make([]float64, commodity.K) }

func validDoc() map[string]any {
	return map[string]any{
		"name":               "test-scenario",
		"startYear":          2026,
		"randomSeed":         1,
		"priceSensitivities": zeros(),
		"laborCoefficients":  zeros(),
		"spoilageRates":      zeros(),
		"baseInterestRate":   0.03,
		"countries": []map[string]any{
			{
				"code":                  "AUS",
				"name":                  "Australia",
				"initialGDP":            1000,
				"laborForce":            100,
				"importPropensity":      zeros(),
				"exportPropensity":      zeros(),
				"initialPrices":         zeros(),
				"basketWeights":         zeros(),
				"technicalCoefficients": make([]float64, commodity.K*commodity.K),
				"spendingShares": map[string]any{
					"welfare": 0.1, "education": 0.1, "defense": 0.1, "infrastructure": 0.1, "healthcare": 0.1,
				},
				"regions": []map[string]any{
					{
						"name":             "Outback",
						"population":       1000,
						"laborForce":       500,
						"sectorCapacities": zeros(),
						"deposits": []map[string]any{
							{"subtype": "mine", "resource": "ore", "totalReserves": 1000, "baseYield": 10, "discovery": "proven"},
						},
						"cohorts": []map[string]any{
							{"primarySector": "agriculture", "wealth": "middle", "population": 1000},
						},
					},
				},
				"factions": []map[string]any{
					{"name": "Unions", "basePower": 1, "baseSatisfaction": 50, "redLine": "none"},
				},
			},
		},
	}
}

func encode(t *testing.T, doc map[string]any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(doc); err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestLoadValidDocument(t *testing.T) {
	state, err := Load(encode(t, validDoc()))
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Countries) != 1 {
		t.Fatalf("len(Countries) = %d, want 1", len(state.Countries))
	}
	if len(state.Regions) != 1 {
		t.Fatalf("len(Regions) = %d, want 1", len(state.Regions))
	}
	if len(state.Deposits) != 1 {
		t.Fatalf("len(Deposits) = %d, want 1", len(state.Deposits))
	}
	if len(state.Cohorts) != 1 {
		t.Fatalf("len(Cohorts) = %d, want 1", len(state.Cohorts))
	}
	if state.Countries[0].Code != "AUS" {
		t.Fatalf("Code = %q, want AUS", state.Countries[0].Code)
	}
	if state.Regions[0].DepositIDs[0] != state.Deposits[0].ID {
		t.Fatal("region's DepositIDs should reference the loaded deposit")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	doc := validDoc()
	doc["unexpectedField"] = true
	if _, err := Load(encode(t, doc)); err == nil {
		t.Fatal("expected an error for an unknown top-level field")
	}
}

func TestLoadRejectsDuplicateCountryCode(t *testing.T) {
	doc := validDoc()
	countries := doc["countries"].([]map[string]any)
	doc["countries"] = append(countries, countries[0])
	if _, err := Load(encode(t, doc)); err == nil {
		t.Fatal("expected an error for a duplicate country code")
	}
}

func TestLoadRejectsWrongLengthArray(t *testing.T) {
	doc := validDoc()
	doc["priceSensitivities"] = []float64{1, 2, 3}
	if _, err := Load(encode(t, doc)); err == nil {
		t.Fatal("expected an error for a short priceSensitivities array")
	}
}

func TestLoadRejectsUnknownDepositResource(t *testing.T) {
	doc := validDoc()
	countries := doc["countries"].([]map[string]any)
	regions := countries[0]["regions"].([]map[string]any)
	deposits := regions[0]["deposits"].([]map[string]any)
	deposits[0]["resource"] = "not_a_commodity"
	if _, err := Load(encode(t, doc)); err == nil {
		t.Fatal("expected an error for an unknown deposit resource tag")
	}
}

func TestLoadRejectsNonRawDepositResource(t *testing.T) {
	doc := validDoc()
	countries := doc["countries"].([]map[string]any)
	regions := countries[0]["regions"].([]map[string]any)
	deposits := regions[0]["deposits"].([]map[string]any)
	deposits[0]["resource"] = "services" // not raw
	if _, err := Load(encode(t, doc)); err == nil {
		t.Fatal("expected an error for a non-raw deposit resource tag")
	}
}

func TestLoadRejectsUnknownFactionRedLine(t *testing.T) {
	doc := validDoc()
	countries := doc["countries"].([]map[string]any)
	factions := countries[0]["factions"].([]map[string]any)
	factions[0]["redLine"] = "bogus"
	if _, err := Load(encode(t, doc)); err == nil {
		t.Fatal("expected an error for an unknown red line tag")
	}
}

func TestLoadTradeRelationsResolveCountryCodes(t *testing.T) {
	doc := validDoc()
	countries := doc["countries"].([]map[string]any)
	second := map[string]any{}
	for k, v := range countries[0] {
		second[k] = v
	}
	second["code"] = "USA"
	second["name"] = "United States"
	doc["countries"] = append(countries, second)
	doc["tradeRelations"] = []map[string]any{
		{
			"from": "AUS", "to": "USA",
			"tariffRate":      zeros(),
			"baseTradeVolume": zeros(),
		},
	}

	state, err := Load(encode(t, doc))
	if err != nil {
		t.Fatal(err)
	}
	if len(state.TradeRelations) != 1 {
		t.Fatalf("len(TradeRelations) = %d, want 1", len(state.TradeRelations))
	}
	if state.TradeRelations[0].From != 0 || state.TradeRelations[0].To != 1 {
		t.Fatalf("TradeRelation From/To = %v/%v, want 0/1", state.TradeRelations[0].From, state.TradeRelations[0].To)
	}
}

func TestLoadTradeRelationUnknownCountryCode(t *testing.T) {
	doc := validDoc()
	doc["tradeRelations"] = []map[string]any{
		{
			"from": "AUS", "to": "ZZZ",
			"tariffRate":      zeros(),
			"baseTradeVolume": zeros(),
		},
	}
	if _, err := Load(encode(t, doc)); err == nil {
		t.Fatal("expected an error for an unresolvable trade relation country code")
	}
}
