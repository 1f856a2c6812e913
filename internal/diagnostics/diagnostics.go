// Package diagnostics defines the simulation's error kinds and the
// per-tick diagnostics log attached to worldstate.State. See spec §7.
package diagnostics

import (
	"fmt"

	"github.com/google/uuid"
)

// SchemaError reports a structurally invalid scenario or MRIO input.
// Surfaces at load time and aborts the run before tick 0.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %s: %s", e.Field, e.Reason)
}

// InvariantViolation reports a post-tick invariant failure (negative
// inventory, price out of bounds, faction powers not summing to 1,
// ...). Fatal in debug builds; in release the offending value is
// clamped and a diagnostic is emitted instead of aborting the tick.
type InvariantViolation struct {
	Tick   uint64
	Where  string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation at tick %d in %s: %s", e.Tick, e.Where, e.Detail)
}

// NumericError reports a non-finite value (NaN, ±Inf) produced by a
// numeric operation. Always fatal — it indicates a programmer bug.
type NumericError struct {
	Tick  uint64
	Where string
	Value float64
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("numeric error at tick %d in %s: value=%v", e.Tick, e.Where, e.Value)
}

// LookupError reports an id out of range. Always fatal — it indicates
// a programmer bug (a dangling reference into a dense array).
type LookupError struct {
	Kind string
	ID   int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup error: no %s with id %d", e.Kind, e.ID)
}

// Severity classifies a diagnostic entry for filtering/reporting.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	default:
		return "info"
	}
}

// Entry is one record in a Log: an error observed during a tick, tagged
// with when and where it happened so a snapshot can correlate it.
type Entry struct {
	ID       string   `json:"id"`
	Tick     uint64   `json:"tick"`
	Severity Severity `json:"severity"`
	Err      error    `json:"-"`
	Message  string   `json:"message"`
}

// Log is an append-only, slice-backed diagnostics log. Per §7's
// propagation policy, InvariantViolation and SchemaError entries never
// abort a running tick — they accumulate here for the caller to drain;
// NumericError and LookupError are returned as hard errors in addition
// to (optionally) being recorded here for audit purposes.
type Log struct {
	entries []Entry
}

// Record appends a diagnostic entry built from err, stamped with tick
// and severity, and returns the entry's correlation id.
func (l *Log) Record(tick uint64, sev Severity, err error) string {
	id := uuid.NewString()
	l.entries = append(l.entries, Entry{
		ID:       id,
		Tick:     tick,
		Severity: sev,
		Err:      err,
		Message:  err.Error(),
	})
	return id
}

// Entries returns the accumulated diagnostics in recorded order.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Len reports how many diagnostics have been recorded.
func (l *Log) Len() int {
	return len(l.entries)
}

// CountBySeverity tallies entries for each severity, used by
// internal/metrics to populate gauges.
func (l *Log) CountBySeverity() map[Severity]int {
	out := make(map[Severity]int, 3)
	for _, e := range l.entries {
		out[e.Severity]++
	}
	return out
}

// Drain returns and clears the accumulated entries, for callers that
// want to flush diagnostics between snapshots instead of keeping the
// full run's history resident.
func (l *Log) Drain() []Entry {
	out := l.entries
	l.entries = nil
	return out
}
