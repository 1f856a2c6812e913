package commodity

import "testing"

func TestFromStringRoundTrip(t *testing.T) {
	for _, c := range All() {
		got, ok := FromString(c.String())
		if !ok {
			t.Fatalf("FromString(%q) not ok", c.String())
		}
		if got != c {
			t.Fatalf("FromString(%q) = %v, want %v", c.String(), got, c)
		}
	}
}

func TestFromStringUnknown(t *testing.T) {
	if _, ok := FromString("not_a_commodity"); ok {
		t.Fatal("expected ok=false for unknown tag")
	}
}

func TestRawManufacturedPartition(t *testing.T) {
	for _, c := range All() {
		if c.Raw() && c.Manufactured() {
			t.Fatalf("%v is both raw and manufactured", c)
		}
	}
	if !Agriculture.Raw() {
		t.Fatal("Agriculture should be raw")
	}
	if !Electronics.Manufactured() {
		t.Fatal("Electronics should be manufactured")
	}
}

func TestStockpileable(t *testing.T) {
	if Electricity.Stockpileable() {
		t.Fatal("Electricity should not be stockpileable")
	}
	if Services.Stockpileable() {
		t.Fatal("Services should not be stockpileable")
	}
	if !Coal.Stockpileable() {
		t.Fatal("Coal should be stockpileable")
	}
}

func TestKMatchesCount(t *testing.T) {
	if K != int(Count) {
		t.Fatalf("K = %d, want %d", K, int(Count))
	}
	if K != 12 {
		t.Fatalf("K = %d, want 12", K)
	}
}
