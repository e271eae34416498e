package expression

import (
	"math"

	"github.com/carbocation/runningvariance"
)

// GeneMean summarizes one gene's expression across samples. Missing values are
// skipped; Mean and SD are NaN when nothing was measured.
type GeneMean struct {
	Gene string
	N    int
	Mean float64
	SD   float64
}

// RowMeans returns the arithmetic mean of every gene row, in row order.
func (t *Table) RowMeans() []GeneMean {
	out := make([]GeneMean, 0, len(t.Genes))

	for i, gene := range t.Genes {
		rs := runningvariance.NewRunningStat()
		n := 0
		for _, v := range t.Row(i) {
			if math.IsNaN(v) {
				continue
			}
			rs.Push(v)
			n++
		}

		entry := GeneMean{Gene: gene, N: n, Mean: math.NaN(), SD: math.NaN()}
		if n > 0 {
			entry.Mean = rs.Mean()
		}
		if n > 1 {
			entry.SD = rs.StandardDeviation()
		}
		out = append(out, entry)
	}

	return out
}
