package fumen

// Field dimensions
const (
	FieldWidth  = 10
	FieldHeight = 23

	// The encoded field includes the garbage row below the playfield
	linearRows  = FieldHeight + 1
	linearCells = linearRows * FieldWidth
)

// CellColor is the content of a single field cell. The values are those used
// in the encoded form.
type CellColor int

// Cell colors
const (
	Empty CellColor = 0
	CellI CellColor = 1
	CellL CellColor = 2
	CellO CellColor = 3
	CellZ CellColor = 4
	CellT CellColor = 5
	CellJ CellColor = 6
	CellS CellColor = 7
	Grey  CellColor = 8
)

const cellNames = "_ILOZTJSX"

func (c CellColor) String() string {
	if c.Valid() {
		return cellNames[c : c+1]
	}
	return "?"
}

// Valid reports whether c is one of the defined colors.
func (c CellColor) Valid() bool {
	return c >= Empty && c <= Grey
}

// Row is one horizontal line of the field, column 0 on the left.
type Row [FieldWidth]CellColor

// Full reports whether the row has no empty cells.
func (r Row) Full() bool {
	for _, c := range r {
		if c == Empty {
			return false
		}
	}
	return true
}

// Field is the playfield, row 0 at the bottom.
type Field [FieldHeight]Row

// Page is a single board state.
type Page struct {
	// Piece is the piece being placed, if any
	Piece *Piece
	Field Field
	// Garbage is the row waiting below the field, pushed up by Rise
	Garbage Row
	// Rise pushes the garbage row up into the field on the next page
	Rise bool
	// Mirror flips the field horizontally on the next page
	Mirror bool
	// Lock adds the piece to the field on the next page, clearing any
	// completed lines
	Lock    bool
	Comment *string
}

// NewPage returns an empty page with no piece and Lock set.
func NewPage() Page {
	return Page{
		Lock: true,
	}
}

// SetComment sets the page comment.
func (p *Page) SetComment(s string) {
	p.Comment = &s
}

// Next returns the page that follows p when nothing else is changed. The
// piece is locked, completed lines are cleared, then the Rise and Mirror
// rules are applied in that order. The result carries Lock forward and has
// no piece or comment.
func (p Page) Next() Page {
	field := p.Field

	if p.Piece != nil && p.Lock {
		for _, c := range p.Piece.Cells() {
			if c.In(bounds) {
				field[c.Y][c.X] = p.Piece.Type.Color()
			}
		}
	}

	var y int
	for _, row := range field {
		if !row.Full() {
			field[y] = row
			y++
		}
	}
	for ; y < FieldHeight; y++ {
		field[y] = Row{}
	}

	garbage := p.Garbage
	if p.Rise {
		copy(field[1:], field[:FieldHeight-1])
		field[0] = garbage
		garbage = Row{}
	}

	if p.Mirror {
		for i := range field {
			row := &field[i]
			for l, r := 0, FieldWidth-1; l < r; l, r = l+1, r-1 {
				row[l], row[r] = row[r], row[l]
			}
		}
	}

	return Page{
		Field:   field,
		Garbage: garbage,
		Lock:    p.Lock,
	}
}

// linear returns the field in encoded order; the top row first and the
// garbage row last.
func (p *Page) linear() (cells [linearCells]CellColor) {
	for y, row := range p.Field {
		copy(cells[(FieldHeight-1-y)*FieldWidth:], row[:])
	}
	copy(cells[FieldHeight*FieldWidth:], p.Garbage[:])
	return
}

// setLinear is the inverse of linear.
func (p *Page) setLinear(cells [linearCells]CellColor) {
	for y := range p.Field {
		copy(p.Field[y][:], cells[(FieldHeight-1-y)*FieldWidth:])
	}
	copy(p.Garbage[:], cells[FieldHeight*FieldWidth:])
}
