package report

import (
	"fmt"
	"io"
	"math"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/genepanel/correlation"
)

// PrintTopPairs writes the first n ranked pairs as an aligned table with
// coefficients rounded to three places.
func PrintTopPairs(w io.Writer, pairs []correlation.Pair, n int) {
	top := correlation.Top(pairs, n)
	if len(top) == 0 {
		fmt.Fprintln(w, "No gene pairs to report.")
		return
	}

	g1, g2 := len("Gene1"), len("Gene2")
	for _, p := range top {
		if len(p.Gene1) > g1 {
			g1 = len(p.Gene1)
		}
		if len(p.Gene2) > g2 {
			g2 = len(p.Gene2)
		}
	}

	fmt.Fprintf(w, "%4s  %-*s  %-*s  %11s  %15s\n", "", g1, "Gene1", g2, "Gene2", "Correlation", "Abs_Correlation")
	for i, p := range top {
		fmt.Fprintf(w, "%4d  %-*s  %-*s  %11.3f  %15.3f\n", i+1, g1, p.Gene1, g2, p.Gene2, p.Correlation, p.AbsCorrelation)
	}
}

// Findings are the headline numbers of an analysis.
type Findings struct {
	Pairs  int
	Strong int
	Cutoff float64

	// Top is the strongest pair; HasTop is false when there are no pairs.
	Top    correlation.Pair
	HasTop bool
}

// Summarize computes Findings from ranked pairs.
func Summarize(ranked []correlation.Pair, strongCutoff float64) Findings {
	f := Findings{
		Pairs:  len(ranked),
		Strong: correlation.CountAbove(ranked, strongCutoff),
		Cutoff: strongCutoff,
	}
	if len(ranked) > 0 && !math.IsNaN(ranked[0].Correlation) {
		f.Top = ranked[0]
		f.HasTop = true
	}

	return f
}

// PrintFindings writes the key findings footer.
func PrintFindings(w io.Writer, f Findings) {
	fmt.Fprintln(w, "Key findings:")
	fmt.Fprintf(w, "   - Analyzed correlations between %d gene pairs\n", f.Pairs)
	fmt.Fprintf(w, "   - Found %d strong correlations (|r| > %g)\n", f.Strong, f.Cutoff)
	if f.HasTop {
		fmt.Fprintf(w, "   - Top correlation: %s-%s (r = %.3f)\n", f.Top.Gene1, f.Top.Gene2, f.Top.Correlation)
	} else {
		fmt.Fprintln(w, "   - Top correlation: none (no defined pair)")
	}
}

// PrintDistribution draws a text histogram of the defined pair coefficients.
func PrintDistribution(w io.Writer, pairs []correlation.Pair, bins int) error {
	values := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		if !math.IsNaN(p.Correlation) {
			values = append(values, p.Correlation)
		}
	}
	if len(values) == 0 || bins < 1 {
		return nil
	}

	fmt.Fprintf(w, "Distribution of %d pairwise coefficients:\n", len(values))

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo == hi {
		_, err := fmt.Fprintf(w, "%.3f: %d\n", lo, len(values))
		return err
	}

	hist := histogram.Hist(bins, values)

	return histogram.Fprint(w, hist, histogram.Linear(40))
}
