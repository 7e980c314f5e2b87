package image

import (
	"image"
	"image/png"
	"io"

	"github.com/bodgit/fumen"
)

// ToImage returns the field and garbage row of p as a 10 by 24 bitmap using
// Palette.
func ToImage(p *fumen.Page) (*image.Paletted, error) {
	m := image.NewPaletted(image.Rect(0, 0, width, garbageHeight), Palette)

	set := func(x, y int, c fumen.CellColor) error {
		if !c.Valid() {
			return fumen.ErrInvalidColor
		}
		m.SetColorIndex(x, y, uint8(c))
		return nil
	}

	for y, row := range p.Field {
		for x, c := range row {
			if err := set(x, fieldHeight-1-y, c); err != nil {
				return nil, err
			}
		}
	}
	for x, c := range p.Garbage {
		if err := set(x, fieldHeight, c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Encode writes the field and garbage row of p to w as a PNG bitmap.
func Encode(w io.Writer, p *fumen.Page) error {
	m, err := ToImage(p)
	if err != nil {
		return err
	}
	return png.Encode(w, m)
}
