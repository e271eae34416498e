package cluster

import (
	"math"

	"github.com/carbocation/genepanel/correlation"
	"github.com/carbocation/genepanel/expression"
)

// CorrelationDistance is one minus the Pearson correlation of two gene rows,
// so it ranges from 0 (perfectly correlated) to 2 (perfectly anticorrelated).
// Pairs whose correlation is undefined are placed at the maximum distance.
func CorrelationDistance(t *expression.Table) func(i, j int) float64 {
	rows := make([][]float64, len(t.Genes))
	for i := range rows {
		rows[i] = t.Row(i)
	}

	return func(i, j int) float64 {
		if i == j {
			return 0
		}

		r := correlation.PearsonCorrelation(rows[i], rows[j])
		if math.IsNaN(r) {
			return 2
		}

		// Rounding can push r a hair past 1
		return math.Max(0, 1-r)
	}
}

// Genes clusters the rows of t by correlation distance.
func Genes(t *expression.Table) (*Dendrogram, error) {
	return Average(t.Genes, CorrelationDistance(t))
}
