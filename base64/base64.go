/*
Package base64 implements the 64 symbol alphabet used by the fumen v115 text
format.

The alphabet contains the same characters as RFC 4648 base64 but numbers are
never packed into byte groups; every value is written as a run of 6-bit
digits, least significant digit first.
*/
package base64

import (
	"fmt"
	"io"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var decodeMap [256]byte

func init() {
	for i := range decodeMap {
		decodeMap[i] = 0xff
	}
	for i := 0; i < len(alphabet); i++ {
		decodeMap[alphabet[i]] = byte(i)
	}
}

// A CorruptInputError is returned when a character outside the alphabet is
// found. The value is the offset of the character within the input.
type CorruptInputError int64

func (e CorruptInputError) Error() string {
	return fmt.Sprintf("base64: illegal data at input byte %d", int64(e))
}

// Encode returns the digit for the lowest 6 bits of v.
func Encode(v uint) byte {
	return alphabet[v&0x3f]
}

// Decode returns the value of digit c.
func Decode(c byte) (uint, bool) {
	if v := decodeMap[c]; v != 0xff {
		return uint(v), true
	}
	return 0, false
}

// AppendUint appends v to dst as n digits, least significant first.
func AppendUint(dst []byte, v uint, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, Encode(v))
		v >>= 6
	}
	return dst
}

// Reader reads multi-digit values from a string.
type Reader struct {
	s    string
	off  int
	base int
}

// NewReader returns a Reader for s. Offsets reported in errors are relative
// to base, which allows the caller to account for any prefix already
// consumed.
func NewReader(s string, base int) *Reader {
	return &Reader{s: s, base: base}
}

// More reports whether there are any unread characters.
func (r *Reader) More() bool {
	return r.off < len(r.s)
}

// Offset returns the absolute offset of the next unread character.
func (r *Reader) Offset() int {
	return r.base + r.off
}

// ReadUint reads an n digit value, least significant digit first. It returns
// io.EOF if no input remains and io.ErrUnexpectedEOF if the input ends part
// way through the value.
func (r *Reader) ReadUint(n int) (uint, error) {
	var v uint
	for i := 0; i < n; i++ {
		if r.off >= len(r.s) {
			if i == 0 && n > 0 {
				return 0, io.EOF
			}
			return 0, io.ErrUnexpectedEOF
		}
		d, ok := Decode(r.s[r.off])
		if !ok {
			return 0, CorruptInputError(r.base + r.off)
		}
		v |= d << (6 * uint(i))
		r.off++
	}
	return v, nil
}
