// Package heatmap renders expression and correlation matrices as figures.
package heatmap

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Colormap maps [0, 1] onto a sequence of evenly spaced colour stops,
// interpolating in Lab space.
type Colormap struct {
	Name  string
	stops []colorful.Color
}

var (
	// RdBuR runs from dark blue through white to dark red.
	RdBuR = mustColormap("RdBu_r",
		"#053061", "#2166ac", "#4393c3", "#92c5de", "#d1e5f0", "#f7f7f7",
		"#fddbc7", "#f4a582", "#d6604d", "#b2182b", "#67001f")

	// Coolwarm runs from blue through light grey to red.
	Coolwarm = mustColormap("coolwarm",
		"#3b4cc0", "#6788ee", "#9abbff", "#c9d7f0", "#dddddd",
		"#edd1c2", "#f7a889", "#e26952", "#b40426")

	// Missing is drawn for NaN cells.
	Missing = color.RGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}
)

func mustColormap(name string, hexes ...string) Colormap {
	c := Colormap{Name: name}
	for _, hex := range hexes {
		stop, err := colorful.Hex(hex)
		if err != nil {
			panic(err)
		}
		c.stops = append(c.stops, stop)
	}

	return c
}

// At returns the colour at position t, which is clamped to [0, 1]. NaN maps to
// Missing.
func (c Colormap) At(t float64) color.Color {
	if math.IsNaN(t) || len(c.stops) == 0 {
		return Missing
	}
	t = math.Max(0, math.Min(1, t))

	if len(c.stops) == 1 {
		return c.stops[0]
	}

	pos := t * float64(len(c.stops)-1)
	i := int(math.Floor(pos))
	if i >= len(c.stops)-1 {
		return c.stops[len(c.stops)-1]
	}

	return c.stops[i].BlendLab(c.stops[i+1], pos-float64(i)).Clamped()
}

// Scale maps data values onto colormap positions, with Center at 0.5.
type Scale struct {
	Min    float64
	Center float64
	Max    float64
}

// CenteredScale spans the values lo..hi symmetrically around center, the way
// a diverging heatmap is centred. A degenerate range becomes center±1.
func CenteredScale(lo, hi, center float64) Scale {
	half := math.Max(math.Abs(lo-center), math.Abs(hi-center))
	if half == 0 || math.IsNaN(half) || math.IsInf(half, 0) {
		half = 1
	}

	return Scale{Min: center - half, Center: center, Max: center + half}
}

// Position returns where v falls on the colormap.
func (s Scale) Position(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}

	if v < s.Center {
		if s.Center == s.Min {
			return 0.5
		}
		return 0.5 * (v - s.Min) / (s.Center - s.Min)
	}
	if s.Max == s.Center {
		return 0.5
	}

	return 0.5 + 0.5*(v-s.Center)/(s.Max-s.Center)
}

// Color combines the scale and a colormap.
func (s Scale) Color(c Colormap, v float64) color.Color {
	return c.At(s.Position(v))
}
