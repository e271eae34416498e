package correlation

import (
	"fmt"
	"math"

	"github.com/carbocation/genepanel/expression"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a square, symmetric gene×gene correlation matrix. Values is nil
// for an empty gene list.
type Matrix struct {
	Genes  []string
	Method Method
	Values *mat.SymDense
}

// Compute correlates every pair of gene rows of t across samples. The
// diagonal is exactly 1. Pairs without enough shared observations, or
// involving a gene with constant expression, are NaN.
func Compute(t *expression.Table, m Method) (*Matrix, error) {
	if m != Spearman && m != Pearson {
		return nil, fmt.Errorf("unsupported correlation method %v", m)
	}

	n := len(t.Genes)
	out := &Matrix{
		Genes:  append([]string(nil), t.Genes...),
		Method: m,
	}
	if n == 0 {
		return out, nil
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = t.Row(i)
	}

	out.Values = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		out.Values.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			out.Values.SetSym(i, j, m.Correlate(rows[i], rows[j]))
		}
	}

	return out, nil
}

// Size is the number of genes.
func (c *Matrix) Size() int {
	return len(c.Genes)
}

// At returns the coefficient between genes i and j.
func (c *Matrix) At(i, j int) float64 {
	return c.Values.At(i, j)
}

// Threshold returns a copy keeping only cells whose absolute value exceeds
// cutoff. Every other cell, including NaN, becomes 0. It is a display filter.
func (c *Matrix) Threshold(cutoff float64) *Matrix {
	out := &Matrix{
		Genes:  append([]string(nil), c.Genes...),
		Method: c.Method,
	}
	if c.Values == nil {
		return out
	}

	n := c.Size()
	out.Values = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := c.At(i, j)
			if math.IsNaN(v) || math.Abs(v) <= cutoff {
				v = 0
			}
			out.Values.SetSym(i, j, v)
		}
	}

	return out
}
