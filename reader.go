package fumen

import (
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/fumen/base64"
	"github.com/bodgit/fumen/comment"
)

type decoder struct {
	r *base64.Reader
}

func (d *decoder) read(n int) (uint, error) {
	v, err := d.r.ReadUint(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return 0, ErrTruncated
	}
	return v, err
}

// readField reads the field of p, which must already hold the field left
// behind by the previous page. It returns the number of following pages
// sharing the same field.
func (d *decoder) readField(p *Page) (uint, error) {
	var delta [linearCells]uint
	for i := 0; i < linearCells; {
		v, err := d.r.ReadUint(runDigits)
		switch err {
		case nil:
		case io.EOF:
			return 0, ErrFieldUnderflow
		case io.ErrUnexpectedEOF:
			return 0, ErrTruncated
		default:
			return 0, err
		}

		value, n := v/linearCells, int(v%linearCells)+1
		if i+n > linearCells {
			return 0, ErrFieldOverflow
		}
		for ; n > 0; n-- {
			delta[i] = value
			i++
		}
	}

	var repeat uint
	if unchanged(&delta) {
		var err error
		if repeat, err = d.read(1); err != nil {
			return 0, err
		}
	}

	cells := p.linear()
	for i, c := range cells {
		c += CellColor(delta[i]) - deltaOffset
		if !c.Valid() {
			return 0, ErrInvalidColor
		}
		cells[i] = c
	}
	p.setLinear(cells)

	return repeat, nil
}

func unchanged(delta *[linearCells]uint) bool {
	for _, d := range delta {
		if d != deltaOffset {
			return false
		}
	}
	return true
}

// readPage reads the piece, flags and comment of p. It returns the value of
// the guideline flag.
func (d *decoder) readPage(p *Page) (bool, error) {
	n, err := d.read(pageDigits)
	if err != nil {
		return false, err
	}

	if p.Piece = pieceFromNumber(n); p.Piece != nil && !p.Piece.Valid() {
		return false, ErrInvalidPiece
	}

	flags := n / flagUnit
	p.Rise = flags&flagRise != 0
	p.Mirror = flags&flagMirror != 0
	p.Lock = flags&flagNoLock == 0

	if flags&flagComment != 0 {
		s, err := comment.Read(d.r)
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				return false, ErrTruncated
			}
			return false, err
		}
		p.Comment = &s
	}

	return flags&flagGuideline != 0, nil
}

// Decode parses a document in fumen v115 format. Characters outside the
// base64 alphabet are reported as a base64.CorruptInputError.
func Decode(s string) (*Fumen, error) {
	if !strings.HasPrefix(s, Header) {
		return nil, ErrHeader
	}

	d := decoder{
		r: base64.NewReader(s[len(Header):], len(Header)),
	}

	f := New()

	var repeat uint
	for d.r.More() {
		i := len(f.Pages)
		p := f.AddPage()

		if repeat > 0 {
			repeat--
		} else {
			var err error
			if repeat, err = d.readField(p); err != nil {
				return nil, fmt.Errorf("page %d: %w", i, err)
			}
		}

		guideline, err := d.readPage(p)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		if i == 0 {
			f.Guideline = guideline
		}
	}

	return f, nil
}
