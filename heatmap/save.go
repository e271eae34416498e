package heatmap

import (
	"image"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

const mmPerInch = 25.4

// SavePNG writes img to path, creating parent directories and replacing any
// existing file.
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return pfx.Err(err)
	}

	if err := imaging.Save(img, path); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// SavePDF writes img as a single-page PDF whose page size is the image printed
// at dpi dots per inch.
func SavePDF(img image.Image, path string, dpi float64) error {
	if dpi <= 0 {
		dpi = 300
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return pfx.Err(err)
	}

	bounds := img.Bounds()
	widthMM := float64(bounds.Dx()) / dpi * mmPerInch
	heightMM := float64(bounds.Dy()) / dpi * mmPerInch

	c := canvas.New(widthMM, heightMM)
	ctx := canvas.NewContext(c)
	ctx.DrawImage(0, 0, img, canvas.DPI(dpi))

	if err := c.WriteFile(path, renderers.PDF()); err != nil {
		return pfx.Err(err)
	}

	return nil
}
