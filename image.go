package termcore

import (
	"image"

	"golang.org/x/image/draw"
)

// ImagePlacement is one decoded image anchored to the grid. Placements
// scroll with their anchor line and are dropped once the anchor leaves
// history.
type ImagePlacement struct {
	// Row is the placement's current line offset in the grid
	Row int
	// Col is the placement's first column
	Col int
	// Rows and Cols are the cell extent the image covers
	Rows int
	Cols int
	// Img is the decoded pixel data
	Img image.Image
}

// placement is the internal, absolutely-anchored form.
type placement struct {
	absLine int64
	col     int
	rows    int
	cols    int
	img     *image.RGBA
}

// normalizeImage copies a decoded image into plain RGBA so the renderer
// never sees decoder-specific color models.
func normalizeImage(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// cellExtent computes how many cells an image of the given pixel size
// covers, based on the per-cell pixel metrics from the last resize.
func cellExtent(pxW, pxH, cellW, cellH int) (cols, rows int) {
	if cellW <= 0 {
		cellW = 10
	}
	if cellH <= 0 {
		cellH = 20
	}
	cols = (pxW + cellW - 1) / cellW
	rows = (pxH + cellH - 1) / cellH
	return cols, rows
}
