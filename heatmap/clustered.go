package heatmap

import (
	"fmt"
	"image"

	"github.com/carbocation/genepanel/cluster"
	"github.com/carbocation/genepanel/expression"
	"github.com/fogleman/gg"
)

const (
	clusteredPlotWidth  = 800.0
	clusteredCellHeight = 16.0
	dendrogramWidth     = 120.0
)

// Clustered draws the expression table with its rows in the leaf order of d
// and its columns in input order. The row dendrogram sits to the left of the
// heatmap and gene labels to the right. Samples are not labelled. Colours are
// RdBu_r centred at 0 unless opts says otherwise.
func Clustered(t *expression.Table, d *cluster.Dendrogram, opts Options) (image.Image, error) {
	if d.Len() != len(t.Genes) {
		return nil, fmt.Errorf("dendrogram has %d leaves but the table has %d genes", d.Len(), len(t.Genes))
	}

	cmap := opts.colormap(RdBuR)
	lo, hi := t.Range()
	scale := CenteredScale(lo, hi, 0)
	if opts.ColorbarLabel == "" {
		opts.ColorbarLabel = "Expression Level"
	}

	leaves := d.Leaves()
	nRows, nCols := len(leaves), len(t.Samples)

	cellH := opts.cellSize(clusteredCellHeight)
	cellW := clusteredPlotWidth
	if nCols > 0 {
		cellW = clusteredPlotWidth / float64(nCols)
	}
	plotH := cellH * float64(nRows)
	if plotH < 200 {
		plotH = 200
		if nRows > 0 {
			cellH = plotH / float64(nRows)
		}
	}

	measure := newContext(1, 1)
	labelW := widest(measure, d.LeafLabels())

	left := margin + dendrogramWidth
	top := margin + titleHeight
	labelX := left + clusteredPlotWidth + labelPad
	width := labelX + labelW + colorbarExtent(measure, scale)
	height := top + plotH + margin

	dc := newContext(width, height)
	drawTitle(dc, opts.Title, width)

	for row, leaf := range leaves {
		y := top + float64(row)*cellH
		for col := 0; col < nCols; col++ {
			dc.SetColor(scale.Color(cmap, t.At(leaf, col)))
			// Overdraw by half a pixel so narrow columns leave no seams
			dc.DrawRectangle(left+float64(col)*cellW, y, cellW+0.5, cellH+0.5)
			dc.Fill()
		}

		dc.SetColor(black)
		dc.DrawStringAnchored(t.Genes[leaf], labelX, y+cellH/2, 0, 0.5)
	}

	drawDendrogram(dc, d, margin, top, dendrogramWidth, cellH)

	drawColorbar(dc, cmap, scale, opts.ColorbarLabel, labelX+labelW+colorbarGap, top, plotH)

	return dc.Image(), nil
}

// drawDendrogram draws the tree with leaves on the right edge of the box at
// x..x+width and the root towards the left. Leaf i of the leaf order sits at
// the vertical centre of row i.
func drawDendrogram(dc *gg.Context, d *cluster.Dendrogram, x, top, width, cellH float64) {
	n := d.Len()
	if len(d.Merges) == 0 {
		return
	}

	maxHeight := d.MaxHeight()
	if maxHeight <= 0 {
		maxHeight = 1
	}
	right := x + width

	// Position of every leaf and merged node
	ys := make([]float64, n+len(d.Merges))
	xs := make([]float64, n+len(d.Merges))
	for row, leaf := range d.Leaves() {
		ys[leaf] = top + (float64(row)+0.5)*cellH
		xs[leaf] = right
	}

	dc.SetColor(black)
	dc.SetLineWidth(1)
	for k, m := range d.Merges {
		id := n + k
		xs[id] = right - width*m.Height/maxHeight
		ys[id] = (ys[m.Left] + ys[m.Right]) / 2

		for _, child := range []int{m.Left, m.Right} {
			dc.DrawLine(xs[child], ys[child], xs[id], ys[child])
			dc.Stroke()
		}
		dc.DrawLine(xs[id], ys[m.Left], xs[id], ys[m.Right])
		dc.Stroke()
	}
}
