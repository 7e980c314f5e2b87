package fumen

import (
	"fmt"

	"github.com/bodgit/fumen/base64"
	"github.com/bodgit/fumen/comment"
)

const (
	// Added to every cell difference so it is never negative
	deltaOffset = 8
	// Digits used for each run of identical differences
	runDigits = 2
	// Digits used for the piece and flags of each page
	pageDigits = 3
	// Limit on the count following an unchanged field, so one marker
	// covers at most maxRepeat+1 pages
	maxRepeat = 62
)

// Page flags, multiplied by flagUnit
const (
	flagRise = 1 << iota
	flagMirror
	flagGuideline
	flagComment
	flagNoLock
)

const flagUnit = 32 * linearCells

type encoder struct {
	buf []byte

	// Position of the count following the last unchanged field, or -1
	// if there is no unchanged run in progress
	repeat int
	count  uint
}

func (e *encoder) finishRepeat() {
	if e.repeat >= 0 {
		e.buf[e.repeat] = base64.Encode(e.count)
		e.repeat = -1
	}
}

func (e *encoder) writeRuns(delta *[linearCells]uint) {
	prev, n := delta[0], uint(0)
	for _, d := range delta {
		if d != prev {
			e.buf = base64.AppendUint(e.buf, prev*linearCells+n-1, runDigits)
			prev, n = d, 0
		}
		n++
	}
	e.buf = base64.AppendUint(e.buf, prev*linearCells+n-1, runDigits)
}

func (e *encoder) writeField(prev, cur *[linearCells]CellColor) {
	var delta [linearCells]uint
	unchanged := true
	for i := range delta {
		delta[i] = uint(deltaOffset + cur[i] - prev[i])
		if delta[i] != deltaOffset {
			unchanged = false
		}
	}

	if !unchanged {
		e.finishRepeat()
		e.writeRuns(&delta)
		return
	}

	if e.repeat >= 0 {
		if e.count++; e.count == maxRepeat {
			e.finishRepeat()
		}
		return
	}

	// Start a new run, the count is filled in once the run ends
	e.writeRuns(&delta)
	e.repeat, e.count = len(e.buf), 0
	e.buf = append(e.buf, 0)
}

func (p *Page) number(guideline bool) uint {
	var n uint
	if p.Piece != nil {
		n = p.Piece.number()
	}

	var flags uint
	if p.Rise {
		flags |= flagRise
	}
	if p.Mirror {
		flags |= flagMirror
	}
	if guideline {
		flags |= flagGuideline
	}
	if p.Comment != nil {
		flags |= flagComment
	}
	if !p.Lock {
		flags |= flagNoLock
	}

	return n + flags*flagUnit
}

func (p *Page) validate() error {
	if p.Piece != nil && !p.Piece.Valid() {
		return ErrInvalidPiece
	}
	for _, row := range p.Field {
		for _, c := range row {
			if !c.Valid() {
				return ErrInvalidColor
			}
		}
	}
	for _, c := range p.Garbage {
		if !c.Valid() {
			return ErrInvalidColor
		}
	}
	return nil
}

// Encode returns the document in fumen v115 format. It only fails if a page
// has a piece that does not fit in the field or a cell with an undefined
// color.
func (f *Fumen) Encode() (string, error) {
	for i := range f.Pages {
		if err := f.Pages[i].validate(); err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
	}

	e := encoder{
		buf:    []byte(Header),
		repeat: -1,
	}

	// The first page is compared against an empty field
	var prev [linearCells]CellColor

	for i := range f.Pages {
		p := &f.Pages[i]

		cur := p.linear()
		e.writeField(&prev, &cur)

		e.buf = base64.AppendUint(e.buf, p.number(i == 0 && f.Guideline), pageDigits)

		if p.Comment != nil {
			e.buf = comment.Append(e.buf, *p.Comment)
		}

		next := p.Next()
		prev = next.linear()
	}

	e.finishRepeat()

	return string(e.buf), nil
}
