package image

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/fumen"
	"github.com/ericpauley/go-quantize/quantize"
)

var errWrongSize = errors.New("image: image is wrong size")

type rgba [4]uint32

func key(c color.Color) rgba {
	r, g, b, a := c.RGBA()
	return rgba{r, g, b, a}
}

// cellColors maps every distinct color in m to a cell color. Exact Palette
// colors map directly. If there are more distinct off-palette shades than
// cell colors they are first grouped with a median cut quantizer, so noise
// around one color is resolved as a whole.
func cellColors(m image.Image) map[rgba]fumen.CellColor {
	exact := make(map[rgba]fumen.CellColor, len(Palette))
	for i, c := range Palette {
		exact[key(c)] = fumen.CellColor(i)
	}

	colors := make(map[rgba]fumen.CellColor)
	var others []color.Color

	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.At(x, y)
			k := key(c)
			if _, ok := colors[k]; ok {
				continue
			}
			if cell, ok := exact[k]; ok {
				colors[k] = cell
				continue
			}
			colors[k] = fumen.CellColor(Palette.Index(c))
			others = append(others, c)
		}
	}

	if len(others) > len(Palette) {
		// One pixel per distinct shade
		om := image.NewRGBA(image.Rect(0, 0, len(others), 1))
		for x, c := range others {
			om.Set(x, 0, c)
		}
		q := quantize.MedianCutQuantizer{}
		groups := q.Quantize(make(color.Palette, 0, len(Palette)), om)
		for _, c := range others {
			colors[key(c)] = fumen.CellColor(Palette.Index(groups.Convert(c)))
		}
	}

	return colors
}

// FromImage returns a page with the field, and optionally the garbage row,
// taken from m.
func FromImage(m image.Image) (*fumen.Page, error) {
	b := m.Bounds()
	if b.Dx() != width || (b.Dy() != fieldHeight && b.Dy() != garbageHeight) {
		return nil, errWrongSize
	}

	colors := cellColors(m)

	p := fumen.NewPage()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < width; x++ {
			c := colors[key(m.At(b.Min.X+x, b.Min.Y+y))]
			if y < fieldHeight {
				// Bitmaps have the top row first
				p.Field[fieldHeight-1-y][x] = c
			} else {
				p.Garbage[x] = c
			}
		}
	}

	return &p, nil
}

// Decode reads a bitmap in any registered image format from r and returns it
// as a page.
func Decode(r io.Reader) (*fumen.Page, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(m)
}
