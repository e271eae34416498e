// Package expression holds a genes×samples expression matrix and the
// operations that restrict it to a gene panel.
package expression

import (
	"fmt"
	"math"

	"github.com/carbocation/genepanel/panel"
	"gonum.org/v1/gonum/mat"
)

// Table is a numeric matrix whose rows are genes and whose columns are
// samples. Values is nil when the table has no rows or no columns. Missing
// measurements are NaN.
type Table struct {
	// IndexName is the header of the gene identifier column, which may be
	// empty.
	IndexName string
	Genes     []string
	Samples   []string
	Values    *mat.Dense

	// Duplicates lists gene identifiers whose second and later rows were
	// ignored while parsing.
	Duplicates []string

	index map[string]int
}

// NewTable builds a table from row-major values. len(data) must equal
// len(genes)*len(samples).
func NewTable(indexName string, genes, samples []string, data []float64) (*Table, error) {
	if len(data) != len(genes)*len(samples) {
		return nil, fmt.Errorf("%d genes and %d samples require %d values, but %d were given", len(genes), len(samples), len(genes)*len(samples), len(data))
	}

	t := &Table{
		IndexName: indexName,
		Genes:     genes,
		Samples:   samples,
	}
	if len(genes) > 0 && len(samples) > 0 {
		t.Values = mat.NewDense(len(genes), len(samples), data)
	}
	t.buildIndex()

	return t, nil
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Genes))
	for i, gene := range t.Genes {
		t.index[gene] = i
	}
}

// Dims returns the number of genes and samples.
func (t *Table) Dims() (genes, samples int) {
	return len(t.Genes), len(t.Samples)
}

// Lookup returns the row index of gene.
func (t *Table) Lookup(gene string) (int, bool) {
	if t.index == nil {
		t.buildIndex()
	}
	i, ok := t.index[gene]
	return i, ok
}

// Has reports whether gene is a row of the table.
func (t *Table) Has(gene string) bool {
	_, ok := t.Lookup(gene)
	return ok
}

// Row returns a copy of the expression vector of row i across all samples.
func (t *Table) Row(i int) []float64 {
	out := make([]float64, len(t.Samples))
	if t.Values == nil {
		return out
	}

	return mat.Row(out, i, t.Values)
}

// Column returns a copy of the values of sample j across all genes.
func (t *Table) Column(j int) []float64 {
	out := make([]float64, len(t.Genes))
	if t.Values == nil {
		return out
	}

	return mat.Col(out, j, t.Values)
}

// At returns the value for gene row i and sample column j.
func (t *Table) At(i, j int) float64 {
	return t.Values.At(i, j)
}

// Subset restricts the table to the genes of p that are present, in panel
// order. The column set is unchanged. The panel is also partitioned into the
// genes that were found and those that were not.
func (t *Table) Subset(p panel.Panel) (sub *Table, found, notFound panel.Panel) {
	found, notFound = p.Unique().Partition(t.Has)

	data := make([]float64, 0, len(found)*len(t.Samples))
	for _, gene := range found {
		i, _ := t.Lookup(gene)
		data = append(data, t.Row(i)...)
	}

	samples := make([]string, len(t.Samples))
	copy(samples, t.Samples)

	// Lengths agree by construction.
	sub, _ = NewTable(t.IndexName, []string(found), samples, data)

	return sub, found, notFound
}

// Range returns the smallest and largest non-NaN values. Both are NaN when the
// table holds no values.
func (t *Table) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	if t.Values != nil {
		r, c := t.Values.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				v := t.Values.At(i, j)
				if math.IsNaN(v) {
					continue
				}
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
		}
	}

	if math.IsInf(lo, 1) {
		return math.NaN(), math.NaN()
	}

	return lo, hi
}
