/*
Package fumen implements an encoder and decoder for the fumen v115 format used
to share sequences of Tetris board states as short ASCII strings.

A document is a list of pages. Each page stores its field as a run-length
encoded difference from the field left behind by the previous page, so the
rules that carry one page into the next (locking the piece, clearing lines,
rising garbage and mirroring) are part of the format itself.
*/
package fumen

import "errors"

// Header is the version prefix of every encoded document.
const Header = "v115@"

var (
	// ErrHeader is returned when the input does not start with Header
	ErrHeader = errors.New("fumen: invalid header")
	// ErrTruncated is returned when the input ends part way through a page
	ErrTruncated = errors.New("fumen: unexpected end of data")
	// ErrInvalidColor is returned for a cell outside the defined colors
	ErrInvalidColor = errors.New("fumen: invalid cell color")
	// ErrInvalidPiece is returned for a piece that does not fit in the field
	ErrInvalidPiece = errors.New("fumen: invalid piece")
	// ErrFieldOverflow is returned when field data covers too many cells
	ErrFieldOverflow = errors.New("fumen: too much field data")
	// ErrFieldUnderflow is returned when the input ends before the field
	// is complete
	ErrFieldUnderflow = errors.New("fumen: not enough field data")
)

// Fumen is a sequence of pages. It implements the encoding.TextMarshaler
// and encoding.TextUnmarshaler interfaces.
type Fumen struct {
	Pages []Page
	// Guideline selects guideline piece colors; it is stored once, with
	// the first page
	Guideline bool
}

// New returns an empty document with Guideline set.
func New() *Fumen {
	return &Fumen{
		Guideline: true,
	}
}

// AddPage appends a page following on from the last one and returns it. The
// pointer is only valid until the next page is added.
func (f *Fumen) AddPage() *Page {
	p := NewPage()
	if n := len(f.Pages); n > 0 {
		p = f.Pages[n-1].Next()
	}
	f.Pages = append(f.Pages, p)
	return &f.Pages[len(f.Pages)-1]
}

// MarshalText encodes the document.
func (f Fumen) MarshalText() ([]byte, error) {
	s, err := f.Encode()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText decodes the document, replacing any existing pages.
func (f *Fumen) UnmarshalText(b []byte) error {
	d, err := Decode(string(b))
	if err != nil {
		return err
	}
	*f = *d
	return nil
}
