package correlation

import (
	"math"
	"sort"
)

// Pair is one unordered gene pair and its coefficient.
type Pair struct {
	Gene1          string  `csv:"Gene1"`
	Gene2          string  `csv:"Gene2"`
	Correlation    float64 `csv:"Correlation"`
	AbsCorrelation float64 `csv:"Abs_Correlation"`
}

// Pairs enumerates every pair i<j in gene index order. Self pairs are
// excluded.
func (c *Matrix) Pairs() []Pair {
	n := c.Size()
	out := make([]Pair, 0, n*(n-1)/2)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := c.At(i, j)
			out = append(out, Pair{
				Gene1:          c.Genes[i],
				Gene2:          c.Genes[j],
				Correlation:    v,
				AbsCorrelation: math.Abs(v),
			})
		}
	}

	return out
}

// Rank sorts pairs in place by absolute correlation, strongest first. Equal
// values keep their enumeration order and NaN coefficients go last.
func Rank(pairs []Pair) []Pair {
	sort.SliceStable(pairs, func(i, j int) bool {
		a, b := pairs[i].AbsCorrelation, pairs[j].AbsCorrelation
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})

	return pairs
}

// Ranked returns the matrix's pairs, ranked.
func (c *Matrix) Ranked() []Pair {
	return Rank(c.Pairs())
}

// CountAbove counts pairs whose absolute correlation is strictly greater than
// cutoff.
func CountAbove(pairs []Pair, cutoff float64) int {
	n := 0
	for _, p := range pairs {
		if p.AbsCorrelation > cutoff {
			n++
		}
	}

	return n
}

// Top returns at most n leading pairs. A negative n selects none.
func Top(pairs []Pair, n int) []Pair {
	if n < 0 {
		n = 0
	}
	if n < len(pairs) {
		return pairs[:n]
	}

	return pairs
}
