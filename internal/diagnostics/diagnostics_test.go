package diagnostics

import "testing"

func TestLogRecordAndEntries(t *testing.T) {
	var log Log
	id := log.Record(5, SeverityWarning, &SchemaError{Field: "x", Reason: "bad"})
	if id == "" {
		t.Fatal("expected a non-empty correlation id")
	}
	if log.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", log.Len())
	}
	entries := log.Entries()
	if entries[0].Tick != 5 || entries[0].Severity != SeverityWarning {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestLogCountBySeverity(t *testing.T) {
	var log Log
	log.Record(1, SeverityWarning, &InvariantViolation{Tick: 1, Where: "a", Detail: "b"})
	log.Record(1, SeverityWarning, &InvariantViolation{Tick: 1, Where: "a", Detail: "c"})
	log.Record(1, SeverityFatal, &NumericError{Tick: 1, Where: "d", Value: 0})

	counts := log.CountBySeverity()
	if counts[SeverityWarning] != 2 {
		t.Fatalf("warning count = %d, want 2", counts[SeverityWarning])
	}
	if counts[SeverityFatal] != 1 {
		t.Fatalf("fatal count = %d, want 1", counts[SeverityFatal])
	}
}

func TestLogDrainClears(t *testing.T) {
	var log Log
	log.Record(1, SeverityInfo, &LookupError{Kind: "country", ID: 99})

	drained := log.Drain()
	if len(drained) != 1 {
		t.Fatalf("Drain() returned %d entries, want 1", len(drained))
	}
	if log.Len() != 0 {
		t.Fatalf("Len() after Drain() = %d, want 0", log.Len())
	}
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{
		SeverityInfo:    "info",
		SeverityWarning: "warning",
		SeverityFatal:   "fatal",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Fatalf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	errs := []error{
		&SchemaError{Field: "countries.code", Reason: "duplicate"},
		&InvariantViolation{Tick: 3, Where: "production", Detail: "negative inventory"},
		&NumericError{Tick: 3, Where: "price", Value: 0},
		&LookupError{Kind: "region", ID: 7},
	}
	for _, err := range errs {
		if err.Error() == "" {
			t.Fatalf("%T.Error() is empty", err)
		}
	}
}
