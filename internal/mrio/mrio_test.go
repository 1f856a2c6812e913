package mrio

import (
	"strings"
	"testing"

	"github.com/nivenhall/econsim/internal/commodity"
)

var testMapping = SectorMapping{
	"01T02": commodity.Agriculture,
	"10T12": commodity.IndustrialGoods,
}

func TestIngestComputesIntraCountryCoefficient(t *testing.T) {
	csv := strings.Join([]string{
		",AUS_01T02,AUS_10T12",
		"AUS_01T02,0,50",
		"AUS_10T12,0,0",
		"OUT,200,100",
		"",
	}, "\n")

	mats, err := Ingest(strings.NewReader(csv), testMapping)
	if err != nil {
		t.Fatal(err)
	}
	if len(mats) != 1 {
		t.Fatalf("len(mats) = %d, want 1", len(mats))
	}
	got := mats[0].At(commodity.Agriculture, commodity.IndustrialGoods)
	want := 50.0 / 100.0
	if got != want {
		t.Fatalf("A[Agriculture,IndustrialGoods] = %v, want %v", got, want)
	}
}

func TestIngestSkipsCrossCountryFlows(t *testing.T) {
	csv := strings.Join([]string{
		",AUS_01T02,USA_10T12",
		"AUS_01T02,0,75",
		"USA_10T12,0,0",
		"OUT,200,100",
		"",
	}, "\n")

	mats, err := Ingest(strings.NewReader(csv), testMapping)
	if err != nil {
		t.Fatal(err)
	}
	if len(mats) != 2 {
		t.Fatalf("len(mats) = %d, want 2 (AUS, USA)", len(mats))
	}
	// The AUS->USA flow is cross-country and must not land in either
	// country's own technical coefficient matrix.
	for _, m := range mats {
		if m.At(commodity.Agriculture, commodity.IndustrialGoods) != 0 {
			t.Fatal("cross-country flow leaked into a technical coefficient")
		}
	}
}

func TestIngestZeroOutputYieldsZeroCoefficient(t *testing.T) {
	csv := strings.Join([]string{
		",AUS_01T02,AUS_10T12",
		"AUS_01T02,0,50",
		"AUS_10T12,0,0",
		"OUT,200,0",
		"",
	}, "\n")

	mats, err := Ingest(strings.NewReader(csv), testMapping)
	if err != nil {
		t.Fatal(err)
	}
	if got := mats[0].At(commodity.Agriculture, commodity.IndustrialGoods); got != 0 {
		t.Fatalf("coefficient with zero output = %v, want 0", got)
	}
}

func TestIngestUnmappedSectorIsSchemaError(t *testing.T) {
	csv := strings.Join([]string{
		",AUS_99T99",
		"AUS_99T99,0",
		"OUT,100",
		"",
	}, "\n")

	if _, err := Ingest(strings.NewReader(csv), testMapping); err == nil {
		t.Fatal("expected a schema error for an unmapped ISIC sector")
	}
}

func TestIngestCountryOrderMatchesFirstAppearance(t *testing.T) {
	csv := strings.Join([]string{
		",USA_01T02,USA_10T12,AUS_01T02",
		"USA_01T02,0,5,0",
		"USA_10T12,0,0,0",
		"AUS_01T02,0,0,0",
		"OUT,10,10,10",
		"",
	}, "\n")

	mats, err := Ingest(strings.NewReader(csv), testMapping)
	if err != nil {
		t.Fatal(err)
	}
	if len(mats) != 2 {
		t.Fatalf("len(mats) = %d, want 2", len(mats))
	}
	// USA appears first in the header, so its matrix (the only one with a
	// nonzero intra-country flow) comes first.
	if got := mats[0].At(commodity.Agriculture, commodity.IndustrialGoods); got != 0.5 {
		t.Fatalf("mats[0] A[Agriculture,IndustrialGoods] = %v, want 0.5 (USA first)", got)
	}
	if got := mats[1].At(commodity.Agriculture, commodity.IndustrialGoods); got != 0 {
		t.Fatalf("mats[1] A[Agriculture,IndustrialGoods] = %v, want 0 (AUS second)", got)
	}
}
