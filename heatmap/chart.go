package heatmap

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/carbocation/genepanel/correlation"
	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
)

// TopPairsChart writes a bar chart of the absolute correlation of the first n
// ranked pairs to path as a PNG.
func TopPairsChart(pairs []correlation.Pair, n int, title, path string) error {
	pairs = correlation.Top(pairs, n)

	bars := make([]chart.Value, 0, len(pairs))
	for _, p := range pairs {
		v := p.AbsCorrelation
		if math.IsNaN(v) {
			v = 0
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s / %s", p.Gene1, p.Gene2),
			Value: v,
		})
	}
	if len(bars) == 0 {
		// go-chart refuses to render without bars
		bars = append(bars, chart.Value{Label: "no pairs", Value: 0})
	}

	width := 120 * len(bars)
	if width < 600 {
		width = 600
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    width,
		Height:   480,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Name:  "|r|",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: bars,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return pfx.Err(err)
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return pfx.Err(err)
	}

	return f.Close()
}
