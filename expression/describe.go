package expression

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// SummaryRows are the statistics reported for every sample, in display order.
var SummaryRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// SampleSummary holds descriptive statistics of one sample column. The
// standard deviation is the sample (n-1) estimate. Quartiles interpolate
// linearly between order statistics at position (n-1)p, the definition used by
// numpy and pandas.
type SampleSummary struct {
	Sample string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Values returns the statistics in SummaryRows order.
func (s SampleSummary) Values() []float64 {
	return []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max}
}

// Describe summarizes every sample column of the table, ignoring NaN values.
func Describe(t *Table) []SampleSummary {
	out := make([]SampleSummary, 0, len(t.Samples))

	for j, sample := range t.Samples {
		observed := make([]float64, 0, len(t.Genes))
		for _, v := range t.Column(j) {
			if !math.IsNaN(v) {
				observed = append(observed, v)
			}
		}

		out = append(out, summarize(sample, observed))
	}

	return out
}

func summarize(sample string, observed []float64) SampleSummary {
	nan := math.NaN()
	s := SampleSummary{
		Sample: sample,
		Count:  len(observed),
		Mean:   nan, Std: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan,
	}
	if len(observed) == 0 {
		return s
	}

	data := stats.Float64Data(observed)
	s.Mean, _ = data.Mean()
	s.Min, _ = data.Min()
	s.Max, _ = data.Max()
	if len(observed) > 1 {
		s.Std, _ = data.StandardDeviationSample()
	}

	sorted := make([]float64, len(observed))
	copy(sorted, observed)
	sort.Float64s(sorted)
	s.Q1 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q3 = quantile(sorted, 0.75)

	return s
}

// quantile expects sorted, non-empty input.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}

	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
