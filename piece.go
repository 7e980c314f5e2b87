package fumen

import "image"

// PieceType identifies one of the seven tetrominoes. The values are those
// used in the encoded form.
type PieceType int

// Piece types
const (
	I PieceType = 1
	L PieceType = 2
	O PieceType = 3
	Z PieceType = 4
	T PieceType = 5
	J PieceType = 6
	S PieceType = 7
)

var pieceTypeNames = map[PieceType]string{
	I: "I",
	L: "L",
	O: "O",
	Z: "Z",
	T: "T",
	J: "J",
	S: "S",
}

func (t PieceType) String() string {
	if s, ok := pieceTypeNames[t]; ok {
		return s
	}
	return "?"
}

// Color returns the cell color used when a piece of this type is locked.
func (t PieceType) Color() CellColor {
	switch t {
	case I:
		return CellI
	case L:
		return CellL
	case O:
		return CellO
	case Z:
		return CellZ
	case T:
		return CellT
	case J:
		return CellJ
	case S:
		return CellS
	}
	return Empty
}

// Rotation is the orientation of a piece. The values are those used in the
// encoded form.
type Rotation int

// Rotations
const (
	South Rotation = 0
	East  Rotation = 1
	North Rotation = 2
	West  Rotation = 3
)

var rotationNames = map[Rotation]string{
	South: "South",
	East:  "East",
	North: "North",
	West:  "West",
}

func (r Rotation) String() string {
	if s, ok := rotationNames[r]; ok {
		return s
	}
	return "?"
}

// Piece is a placed tetromino. X and Y are the coordinates of the SRS true
// rotation center with Y counting up from the bottom row of the field.
type Piece struct {
	Type     PieceType
	Rotation Rotation
	X, Y     int
}

// Cell offsets from the rotation center when pointing North
var pieceCells = map[PieceType][4]image.Point{
	I: {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	O: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	T: {{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
	L: {{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
	J: {{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
	S: {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
	Z: {{1, 0}, {0, 0}, {0, 1}, {-1, 1}},
}

// Cells returns the four field cells occupied by the piece.
func (p Piece) Cells() [4]image.Point {
	cells := pieceCells[p.Type]
	for i, c := range cells {
		switch p.Rotation {
		case East:
			c.X, c.Y = c.Y, -c.X
		case South:
			c.X, c.Y = -c.X, -c.Y
		case West:
			c.X, c.Y = -c.Y, c.X
		}
		cells[i] = c.Add(image.Pt(p.X, p.Y))
	}
	return cells
}

type orientation struct {
	t PieceType
	r Rotation
}

// The encoded form centers some pieces one cell away from the SRS true
// rotation center. These are the adjustments applied when encoding; decoding
// subtracts them.
var centerCorrection = map[orientation]image.Point{
	{S, East}:  {1, 0},
	{Z, West}:  {-1, 0},
	{O, West}:  {-1, 1},
	{O, South}: {-1, 0},
	{I, South}: {-1, 0},
	{S, North}: {0, 1},
	{Z, North}: {0, 1},
	{O, North}: {0, 1},
	{I, West}:  {0, 1},
}

func correction(t PieceType, r Rotation) image.Point {
	return centerCorrection[orientation{t, r}]
}

// position returns the cell number of the encoded center, counting from the
// top left of the field.
func (p Piece) position() int {
	c := image.Pt(p.X, p.Y).Add(correction(p.Type, p.Rotation))
	return c.X + (FieldHeight-1-c.Y)*FieldWidth
}

func (p Piece) number() uint {
	return uint(p.Type) + 8*uint(p.Rotation) + 32*uint(p.position())
}

func pieceFromNumber(n uint) *Piece {
	t := PieceType(n % 8)
	if t == 0 {
		return nil
	}
	r := Rotation(n / 8 % 4)
	pos := int(n / 32 % linearCells)
	c := image.Pt(pos%FieldWidth, FieldHeight-1-pos/FieldWidth).Sub(correction(t, r))
	return &Piece{
		Type:     t,
		Rotation: r,
		X:        c.X,
		Y:        c.Y,
	}
}

var bounds = image.Rect(0, 0, FieldWidth, FieldHeight)

// Valid reports whether the piece lies entirely within the field. Only valid
// pieces can be encoded.
func (p Piece) Valid() bool {
	if _, ok := pieceCells[p.Type]; !ok || p.Rotation < South || p.Rotation > West {
		return false
	}
	for _, c := range p.Cells() {
		if !c.In(bounds) {
			return false
		}
	}
	return true
}
