package image

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/fumen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage() *fumen.Page {
	p := fumen.NewPage()
	p.Field[0] = fumen.Row{fumen.CellI, fumen.CellL, fumen.CellO, fumen.CellZ, fumen.CellT, fumen.CellJ, fumen.CellS, fumen.Grey}
	p.Field[22][9] = fumen.CellT
	p.Garbage[5] = fumen.Grey
	return &p
}

func TestRoundTrip(t *testing.T) {
	p := testPage()

	m, err := ToImage(p)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 24), m.Bounds())
	assert.Equal(t, uint8(fumen.CellT), m.ColorIndexAt(9, 0))
	assert.Equal(t, uint8(fumen.Grey), m.ColorIndexAt(5, 23))

	got, err := FromImage(m)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestEncodeDecode(t *testing.T) {
	p := testPage()

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, p))

	got, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestFieldOnly(t *testing.T) {
	m := image.NewRGBA(image.Rect(5, 5, 15, 28))
	for y := 5; y < 28; y++ {
		for x := 5; x < 15; x++ {
			m.Set(x, y, Palette[fumen.Empty])
		}
	}
	m.Set(5, 27, Palette[fumen.Grey])
	m.Set(14, 5, Palette[fumen.CellJ])

	p, err := FromImage(m)
	require.NoError(t, err)
	assert.Equal(t, fumen.Grey, p.Field[0][0])
	assert.Equal(t, fumen.CellJ, p.Field[22][9])
	assert.Equal(t, fumen.Row{}, p.Garbage)
	assert.True(t, p.Lock)
}

func TestQuantize(t *testing.T) {
	// Many shades of cyan all collapse onto the I color
	m := image.NewRGBA(image.Rect(0, 0, 10, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 10; x++ {
			m.Set(x, y, color.RGBA{0x00, uint8(0xff - x), uint8(0xff - y/2), 0xff})
		}
	}

	p, err := FromImage(m)
	require.NoError(t, err)
	for y, row := range p.Field {
		for x, c := range row {
			assert.Equal(t, fumen.CellI, c, "cell %d,%d", x, y)
		}
	}
}

func TestQuantizeKeepsPaletteColors(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 10, 24))
	for y := 0; y < 23; y++ {
		for x := 0; x < 10; x++ {
			m.Set(x, y, Palette[(y*10+x)%len(Palette)])
		}
	}
	// Enough off-palette shades to need grouping, close to both grey
	// and empty
	for x := 0; x < 5; x++ {
		v := uint8(0x81 + x)
		m.Set(x, 23, color.RGBA{v, v, v, 0xff})
	}
	for x := 5; x < 10; x++ {
		v := uint8(x - 4)
		m.Set(x, 23, color.RGBA{v, v, v, 0xff})
	}

	p, err := FromImage(m)
	require.NoError(t, err)
	for y := 0; y < 23; y++ {
		for x := 0; x < 10; x++ {
			want := fumen.CellColor((y*10 + x) % len(Palette))
			assert.Equal(t, want, p.Field[22-y][x], "cell %d,%d", x, 22-y)
		}
	}
	assert.Equal(t, fumen.Row{fumen.Grey, fumen.Grey, fumen.Grey, fumen.Grey, fumen.Grey}, p.Garbage)
}

func TestWrongSize(t *testing.T) {
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 10, 22),
		image.Rect(0, 0, 10, 25),
		image.Rect(0, 0, 9, 24),
	} {
		_, err := FromImage(image.NewRGBA(r))
		assert.Equal(t, errWrongSize, err)
	}
}

func TestInvalidColor(t *testing.T) {
	p := fumen.NewPage()
	p.Field[3][3] = fumen.CellColor(12)

	_, err := ToImage(&p)
	assert.Equal(t, fumen.ErrInvalidColor, err)
}
