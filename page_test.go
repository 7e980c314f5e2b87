package fumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullRow(c CellColor) (r Row) {
	for i := range r {
		r[i] = c
	}
	return
}

func TestNextIdempotent(t *testing.T) {
	p := NewPage()
	p.Field[0] = Row{Grey, Empty, Grey}
	p.Field[5][9] = CellT
	p.Garbage[3] = Grey

	next := p.Next()
	assert.Equal(t, p, next)
	assert.Equal(t, next, next.Next())
}

func TestNextLock(t *testing.T) {
	p := NewPage()
	p.Field[0][2] = Grey
	p.Piece = &Piece{Type: T, Rotation: North, X: 2, Y: 0}
	p.SetComment("locked")

	next := p.Next()
	assert.Nil(t, next.Piece)
	assert.Nil(t, next.Comment)
	assert.True(t, next.Lock)
	assert.Equal(t, Row{Empty, CellT, CellT, CellT}, next.Field[0])
	assert.Equal(t, Row{Empty, Empty, CellT}, next.Field[1])

	p.Lock = false
	next = p.Next()
	assert.False(t, next.Lock)
	assert.Equal(t, Row{Empty, Empty, Grey}, next.Field[0])
	assert.Equal(t, Row{}, next.Field[1])
}

func TestNextLineClear(t *testing.T) {
	p := NewPage()
	p.Field[0] = fullRow(Grey)
	p.Field[1][0] = CellI
	p.Field[2] = fullRow(CellS)
	p.Field[3][1] = CellJ
	p.Field[22] = fullRow(CellZ)
	p.Garbage = fullRow(Grey)

	next := p.Next()
	assert.Equal(t, Row{CellI}, next.Field[0])
	assert.Equal(t, Row{Empty, CellJ}, next.Field[1])
	for y := 2; y < FieldHeight; y++ {
		assert.Equal(t, Row{}, next.Field[y], "row %d", y)
	}
	// The garbage row is never cleared
	assert.Equal(t, fullRow(Grey), next.Garbage)
}

func TestNextLockClearsLine(t *testing.T) {
	p := NewPage()
	p.Field[0] = Row{Grey, Grey, Grey, Grey, Empty, Empty, Empty, Empty, Grey, Grey}
	p.Piece = &Piece{Type: I, Rotation: North, X: 5, Y: 0}

	next := p.Next()
	assert.Equal(t, Field{}, next.Field)
}

func TestNextRise(t *testing.T) {
	p := NewPage()
	p.Field[0][1] = CellI
	p.Field[22][0] = CellO
	p.Garbage[4] = Grey
	p.Rise = true

	next := p.Next()
	assert.False(t, next.Rise)
	assert.Equal(t, Row{Empty, Empty, Empty, Empty, Grey}, next.Field[0])
	assert.Equal(t, Row{Empty, CellI}, next.Field[1])
	assert.Equal(t, Row{}, next.Garbage)
	// The top row is pushed out of the field
	assert.Equal(t, Row{}, next.Field[22])
}

func TestNextMirror(t *testing.T) {
	p := NewPage()
	p.Field[0] = Row{CellI, CellL, CellO, CellZ, CellT, CellJ, CellS, Grey}
	p.Garbage[0] = Grey
	p.Mirror = true

	next := p.Next()
	assert.False(t, next.Mirror)
	assert.Equal(t, Row{Empty, Empty, Grey, CellS, CellJ, CellT, CellZ, CellO, CellL, CellI}, next.Field[0])
	assert.Equal(t, Row{Grey}, next.Garbage)
}

func TestNextRiseThenMirror(t *testing.T) {
	p := NewPage()
	p.Garbage[0] = Grey
	p.Rise = true
	p.Mirror = true

	next := p.Next()
	assert.Equal(t, Row{9: Grey}, next.Field[0])
}

func TestLinear(t *testing.T) {
	p := NewPage()
	p.Field[0] = fullRow(Grey)
	p.Field[22][3] = CellT
	p.Garbage[0] = Grey

	cells := p.linear()
	assert.Equal(t, CellT, cells[3])
	for i := 0; i < FieldWidth; i++ {
		assert.Equal(t, Grey, cells[22*FieldWidth+i])
	}
	assert.Equal(t, Grey, cells[23*FieldWidth])
	assert.Equal(t, Empty, cells[23*FieldWidth+1])

	var q Page
	q.setLinear(cells)
	assert.Equal(t, p.Field, q.Field)
	assert.Equal(t, p.Garbage, q.Garbage)
}

func TestCellColorString(t *testing.T) {
	assert.Equal(t, "_", Empty.String())
	assert.Equal(t, "T", CellT.String())
	assert.Equal(t, "X", Grey.String())
	assert.Equal(t, "?", CellColor(9).String())
	assert.Equal(t, "?", CellColor(-1).String())
}
