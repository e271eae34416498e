// Package correlation computes gene-by-gene co-expression matrices and ranks
// gene pairs by the strength of their correlation.
package correlation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Method selects the correlation estimator.
type Method int

const (
	// Spearman is the Pearson correlation of average ranks.
	Spearman Method = iota
	// Pearson is the product-moment correlation of the raw values.
	Pearson
)

func (m Method) String() string {
	switch m {
	case Spearman:
		return "spearman"
	case Pearson:
		return "pearson"
	}

	return fmt.Sprintf("Method(%d)", int(m))
}

// Title is the capitalized estimator name, for figure labels.
func (m Method) Title() string {
	s := m.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseMethod accepts "spearman" or "pearson" in any case.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spearman":
		return Spearman, nil
	case "pearson":
		return Pearson, nil
	}

	return 0, fmt.Errorf("unknown correlation method %q (options: spearman, pearson)", s)
}

// Correlate applies the method to x and y.
func (m Method) Correlate(x, y []float64) float64 {
	if m == Pearson {
		return PearsonCorrelation(x, y)
	}

	return SpearmanCorrelation(x, y)
}

// PearsonCorrelation uses the observations where both x and y are present.
// Fewer than two such observations, or no variance in either vector, gives
// NaN.
func PearsonCorrelation(x, y []float64) float64 {
	x, y = complete(x, y)
	if len(x) < 2 {
		return math.NaN()
	}

	return stat.Correlation(x, y, nil)
}

// SpearmanCorrelation is the Pearson correlation of the ranks of the
// observations where both x and y are present.
func SpearmanCorrelation(x, y []float64) float64 {
	x, y = complete(x, y)
	if len(x) < 2 {
		return math.NaN()
	}

	return stat.Correlation(Ranks(x), Ranks(y), nil)
}

// complete drops the positions where either vector is NaN.
func complete(x, y []float64) ([]float64, []float64) {
	if len(x) != len(y) {
		panic(fmt.Sprintf("correlation: vectors of length %d and %d", len(x), len(y)))
	}

	cx := make([]float64, 0, len(x))
	cy := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		cx = append(cx, x[i])
		cy = append(cy, y[i])
	}

	return cx, cy
}

// Ranks returns 1-based ranks of x. Tied values share the mean of the ranks
// they span.
func Ranks(x []float64) []float64 {
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return x[order[a]] < x[order[b]] })

	ranks := make([]float64, len(x))
	for start := 0; start < len(order); {
		end := start + 1
		for end < len(order) && x[order[end]] == x[order[start]] {
			end++
		}

		// Positions start..end-1 hold ranks start+1..end
		avg := float64(start+1+end) / 2
		for k := start; k < end; k++ {
			ranks[order[k]] = avg
		}
		start = end
	}

	return ranks
}
