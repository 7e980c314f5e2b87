/*
Package image converts between fumen fields and bitmaps with one pixel per
cell.

A bitmap is exactly 10 pixels wide and either 23 pixels tall, covering just
the playfield, or 24 pixels tall in which case the bottom line of pixels is
the garbage row. Pixels that are exactly a Palette color map straight to that
cell. Any other shades are mapped to the closest Palette color, after first
being grouped with a median cut quantizer when there are more of them than
there are cell colors.
*/
package image

import (
	"image/color"

	"github.com/bodgit/fumen"
)

const (
	width         = fumen.FieldWidth
	fieldHeight   = fumen.FieldHeight
	garbageHeight = fumen.FieldHeight + 1
)

// Palette holds the color used for each fumen.CellColor, indexed by value.
var Palette = color.Palette{
	fumen.Empty: color.RGBA{0x00, 0x00, 0x00, 0xff},
	fumen.CellI: color.RGBA{0x00, 0xff, 0xff, 0xff},
	fumen.CellL: color.RGBA{0xff, 0x80, 0x00, 0xff},
	fumen.CellO: color.RGBA{0xff, 0xff, 0x00, 0xff},
	fumen.CellZ: color.RGBA{0xff, 0x00, 0x00, 0xff},
	fumen.CellT: color.RGBA{0xa0, 0x00, 0xf0, 0xff},
	fumen.CellJ: color.RGBA{0x00, 0x00, 0xff, 0xff},
	fumen.CellS: color.RGBA{0x00, 0xff, 0x00, 0xff},
	fumen.Grey:  color.RGBA{0x80, 0x80, 0x80, 0xff},
}
