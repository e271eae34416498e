package heatmap

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Options control the labelling of a heatmap. Zero values fall back to the
// defaults of each renderer.
type Options struct {
	Title         string
	ColorbarLabel string

	// Colormap replaces the renderer's default when it has a name.
	Colormap Colormap

	// CellSize is the edge of a square cell, in pixels. Renderers that stretch
	// cells to a fixed plot width use it as the cell height.
	CellSize float64

	// Annotate writes each visible value inside its cell.
	Annotate bool

	// AnnotationFormat is the fmt verb used for annotations, "%.2f" by
	// default.
	AnnotationFormat string
}

func (o Options) colormap(fallback Colormap) Colormap {
	if o.Colormap.Name == "" {
		return fallback
	}
	return o.Colormap
}

func (o Options) cellSize(fallback float64) float64 {
	if o.CellSize <= 0 {
		return fallback
	}
	return o.CellSize
}

func (o Options) annotation(v float64) string {
	format := o.AnnotationFormat
	if format == "" {
		format = "%.2f"
	}
	return fmt.Sprintf(format, v)
}

const (
	margin        = 20.0
	titleHeight   = 40.0
	colorbarWidth = 18.0
	colorbarGap   = 30.0
	tickLength    = 4.0
	labelPad      = 6.0
)

var (
	white = color.White
	black = color.Black
)

func newContext(width, height float64) *gg.Context {
	dc := gg.NewContext(int(math.Ceil(width)), int(math.Ceil(height)))
	dc.SetColor(white)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(black)

	return dc
}

// widest returns the rendered width of the longest label.
func widest(dc *gg.Context, labels []string) float64 {
	w := 0.0
	for _, label := range labels {
		if lw, _ := dc.MeasureString(label); lw > w {
			w = lw
		}
	}

	return w
}

func colorbarExtent(dc *gg.Context, s Scale) float64 {
	ticks := []string{tickLabel(s.Min), tickLabel(s.Center), tickLabel(s.Max)}
	_, h := dc.MeasureString("X")
	return colorbarGap + colorbarWidth + tickLength + labelPad + widest(dc, ticks) + labelPad + h + margin
}

func tickLabel(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func drawTitle(dc *gg.Context, title string, width float64) {
	if title == "" {
		return
	}
	dc.SetColor(black)
	dc.DrawStringAnchored(title, width/2, titleHeight/2, 0.5, 0.5)
}

// drawColorbar paints a vertical gradient with its top-left corner at x, y,
// ticks at the minimum, centre and maximum of the scale, and the label running
// up its right-hand side.
func drawColorbar(dc *gg.Context, cmap Colormap, s Scale, label string, x, y, height float64) {
	steps := int(math.Max(2, math.Ceil(height)))
	step := height / float64(steps)
	for i := 0; i < steps; i++ {
		// Top of the bar is the maximum
		t := 1 - (float64(i)+0.5)/float64(steps)
		dc.SetColor(cmap.At(t))
		dc.DrawRectangle(x, y+float64(i)*step, colorbarWidth, step+0.5)
		dc.Fill()
	}

	dc.SetColor(black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, colorbarWidth, height)
	dc.Stroke()

	tickX := x + colorbarWidth
	var labelRight float64
	for _, v := range []float64{s.Min, s.Center, s.Max} {
		ty := y + height*(1-s.Position(v))
		dc.DrawLine(tickX, ty, tickX+tickLength, ty)
		dc.Stroke()

		text := tickLabel(v)
		dc.DrawStringAnchored(text, tickX+tickLength+labelPad, ty, 0, 0.5)
		if w, _ := dc.MeasureString(text); tickX+tickLength+labelPad+w > labelRight {
			labelRight = tickX + tickLength + labelPad + w
		}
	}

	if label == "" {
		return
	}

	_, h := dc.MeasureString(label)
	lx, ly := labelRight+labelPad+h/2, y+height/2
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), lx, ly)
	dc.DrawStringAnchored(label, lx, ly, 0.5, 0.5)
	dc.Pop()
}

// contrast picks black or white text for legibility over c.
func contrast(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 0xffff
	if luminance < 0.5 {
		return white
	}
	return black
}
