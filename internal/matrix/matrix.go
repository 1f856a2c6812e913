// Package matrix provides the dense K×K Leontief technical coefficient
// matrix used by each country. See spec §3, TechnicalCoefficientMatrix.
package matrix

import (
	"fmt"

	"github.com/nivenhall/econsim/internal/commodity"
)

// Coefficients is a dense K×K Leontief technical coefficient matrix.
// Entry At(i, j) is "units of input i needed per unit of output j".
// Stored row-major in a flat slice to avoid per-tick allocations and
// match the wire format's flattening (spec §6: "[i·K + j]").
type Coefficients struct {
	data [commodity.K * commodity.K]float64
}

// New returns a zeroed K×K matrix.
func New() *Coefficients {
	return &Coefficients{}
}

// FromRowMajor builds a matrix from a flattened row-major slice of
// length K*K, as produced by scenario JSON ingestion. Returns a schema
// error if the length doesn't match K*K.
func FromRowMajor(flat []float64) (*Coefficients, error) {
	if len(flat) != commodity.K*commodity.K {
		return nil, fmt.Errorf("technical coefficient matrix: want %d entries, got %d", commodity.K*commodity.K, len(flat))
	}
	c := &Coefficients{}
	copy(c.data[:], flat)
	return c, nil
}

// At returns A[i,j]: units of input i required per unit of output j.
func (c *Coefficients) At(i, j commodity.Commodity) float64 {
	return c.data[int(i)*commodity.K+int(j)]
}

// Set assigns A[i,j].
func (c *Coefficients) Set(i, j commodity.Commodity, v float64) {
	c.data[int(i)*commodity.K+int(j)] = v
}

// ColumnSum returns the sum of column j (total input requirement per
// unit of output j). Spec invariant: this must lie in [0, 1).
func (c *Coefficients) ColumnSum(j commodity.Commodity) float64 {
	sum := 0.0
	for i := 0; i < commodity.K; i++ {
		sum += c.data[i*commodity.K+int(j)]
	}
	return sum
}

// Inputs calls fn for every input commodity i with A[i,j] > 0, in
// ascending commodity order — the deterministic iteration order the
// production subsystem relies on for its per-input reductions.
func (c *Coefficients) Inputs(j commodity.Commodity, fn func(i commodity.Commodity, coeff float64)) {
	for i := 0; i < commodity.K; i++ {
		v := c.data[i*commodity.K+int(j)]
		if v > 0 {
			fn(commodity.Commodity(i), v)
		}
	}
}

// Validate checks the profitability invariant (column sums in [0,1))
// and non-negativity of every entry.
func (c *Coefficients) Validate() error {
	for j := 0; j < commodity.K; j++ {
		sum := c.ColumnSum(commodity.Commodity(j))
		if sum < 0 || sum >= 1 {
			return fmt.Errorf("technical coefficient matrix: column %s sums to %v, want [0,1)", commodity.Commodity(j), sum)
		}
	}
	for i := 0; i < commodity.K*commodity.K; i++ {
		if c.data[i] < 0 {
			return fmt.Errorf("technical coefficient matrix: entry %d is negative (%v)", i, c.data[i])
		}
	}
	return nil
}

// RowMajor returns a copy of the flattened matrix, for snapshotting.
func (c *Coefficients) RowMajor() []float64 {
	out := make([]float64, len(c.data))
	copy(out, c.data[:])
	return out
}
