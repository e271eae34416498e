package heatmap

import (
	"image"
	"math"

	"github.com/carbocation/genepanel/correlation"
	"github.com/fogleman/gg"
)

const correlationCellSize = 44.0

// LowerTriangle draws the correlation matrix with the diagonal and everything
// above it left blank. Visible cells are annotated with their coefficient.
func LowerTriangle(m *correlation.Matrix, opts Options) image.Image {
	opts.Annotate = true
	if opts.ColorbarLabel == "" {
		opts.ColorbarLabel = m.Method.Title() + " Correlation Coefficient"
	}

	return square(m, opts, func(i, j int) bool { return j < i })
}

// Full draws every cell of the matrix. It is used for thresholded views, where
// cells below the cutoff are already 0.
func Full(m *correlation.Matrix, opts Options) image.Image {
	return square(m, opts, func(i, j int) bool { return true })
}

func square(m *correlation.Matrix, opts Options, visible func(i, j int) bool) image.Image {
	cmap := opts.colormap(Coolwarm)
	cell := opts.cellSize(correlationCellSize)
	n := m.Size()

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := m.At(i, j); visible(i, j) && !math.IsNaN(v) {
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = -1, 1
	}
	scale := CenteredScale(lo, hi, 0)

	measure := newContext(1, 1)
	labelW := widest(measure, m.Genes)

	plot := cell * float64(n)
	if plot < 100 {
		plot = 100
	}
	left := margin + labelW + labelPad
	top := margin + titleHeight
	width := left + plot + colorbarExtent(measure, scale)
	height := top + plot + labelPad + labelW + margin

	dc := newContext(width, height)
	drawTitle(dc, opts.Title, width)

	for i := 0; i < n; i++ {
		y := top + float64(i)*cell
		for j := 0; j < n; j++ {
			if !visible(i, j) {
				continue
			}

			x := left + float64(j)*cell
			v := m.At(i, j)
			fill := scale.Color(cmap, v)
			dc.SetColor(fill)
			dc.DrawRectangle(x, y, cell, cell)
			dc.Fill()

			if opts.Annotate && !math.IsNaN(v) {
				dc.SetColor(contrast(fill))
				dc.DrawStringAnchored(opts.annotation(v), x+cell/2, y+cell/2, 0.5, 0.5)
			}
		}
	}

	dc.SetColor(black)
	for i, gene := range m.Genes {
		centre := float64(i)*cell + cell/2

		dc.DrawStringAnchored(gene, left-labelPad, top+centre, 1, 0.5)

		x, y := left+centre, top+plot+labelPad
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), x, y)
		dc.DrawStringAnchored(gene, x, y, 1, 0.5)
		dc.Pop()
	}

	drawColorbar(dc, cmap, scale, opts.ColorbarLabel, left+plot+colorbarGap, top, plot)

	return dc.Image()
}
