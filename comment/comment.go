/*
Package comment implements the comment sub-format of fumen pages.

Text is first escaped in the same way as the JavaScript escape() function,
working on UTF-16 code units, and the resulting ASCII is then packed four
characters at a time into five base64 digits. Each character is treated as a
base 96 digit offset from the space character.
*/
package comment

import (
	"io"

	"github.com/bodgit/fumen/base64"
	"golang.org/x/text/encoding/unicode"
)

// MaxLength is the maximum number of escaped bytes that can be stored.
// Longer comments are truncated without regard for escape sequences.
const MaxLength = 4095

const (
	charsPerGroup  = 4
	digitsPerGroup = 5
	lengthDigits   = 2
	charBase       = 96
	charOffset     = 0x20
)

const hexDigits = "0123456789ABCDEF"

var utf16 = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func literal(u uint16) bool {
	switch {
	case u >= 'a' && u <= 'z', u >= 'A' && u <= 'Z', u >= '0' && u <= '9':
		return true
	}
	switch u {
	case '@', '*', '_', '+', '-', '.', '/':
		return true
	}
	return false
}

func codeUnits(s string) []uint16 {
	// Invalid UTF-8 is encoded as U+FFFD so this never fails
	b, _ := utf16.NewEncoder().Bytes([]byte(s))
	units := make([]uint16, len(b)>>1)
	for i := range units {
		units[i] = uint16(b[i<<1])<<8 | uint16(b[i<<1+1])
	}
	return units
}

// Escape returns s in escaped form. Code units up to 0xFF that are not
// letters, digits or one of @*_+-./ are written as %XX, anything larger as
// %uXXXX. Characters outside the Basic Multilingual Plane therefore produce
// two %u sequences, one per surrogate.
func Escape(s string) []byte {
	var b []byte
	for _, u := range codeUnits(s) {
		switch {
		case literal(u):
			b = append(b, byte(u))
		case u <= 0xff:
			b = append(b, '%', hexDigits[u>>4], hexDigits[u&0xf])
		default:
			b = append(b, '%', 'u', hexDigits[u>>12], hexDigits[u>>8&0xf], hexDigits[u>>4&0xf], hexDigits[u&0xf])
		}
	}
	return b
}

func unhex(c byte) (uint16, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint16(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint16(c - 'a' + 10), true
	case c >= 'A' && c <= 'F':
		return uint16(c - 'A' + 10), true
	}
	return 0, false
}

// Unescape reverses Escape. An escape sequence always consumes the expected
// number of characters; any that are not hex digits are skipped. Unpaired
// surrogates are replaced with U+FFFD.
func Unescape(b []byte) string {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		i++
		if c != '%' {
			units = append(units, uint16(c))
			continue
		}

		n := 2
		if i < len(b) && b[i] == 'u' {
			n = 4
			i++
		}

		var u uint16
		for j := 0; j < n && i < len(b); j++ {
			if v, ok := unhex(b[i]); ok {
				u = u<<4 | v
			}
			i++
		}
		units = append(units, u)
	}

	tmp := make([]byte, len(units)<<1)
	for i, u := range units {
		tmp[i<<1] = byte(u >> 8)
		tmp[i<<1+1] = byte(u)
	}
	// Unpaired surrogates are decoded as U+FFFD so this never fails
	s, _ := utf16.NewDecoder().Bytes(tmp)
	return string(s)
}

// Append escapes s, truncates it to MaxLength bytes, and appends the packed
// form to dst.
func Append(dst []byte, s string) []byte {
	b := Escape(s)
	if len(b) > MaxLength {
		b = b[:MaxLength]
	}

	dst = base64.AppendUint(dst, uint(len(b)), lengthDigits)

	for i := 0; i < len(b); i += charsPerGroup {
		end := i + charsPerGroup
		if end > len(b) {
			end = len(b)
		}
		var v uint
		for j := end - 1; j >= i; j-- {
			v = v*charBase + uint(b[j]-charOffset)
		}
		dst = base64.AppendUint(dst, v, digitsPerGroup)
	}

	return dst
}

// Read reads a packed comment from r and returns the unescaped text. If the
// input ends early io.ErrUnexpectedEOF is returned.
func Read(r *base64.Reader) (string, error) {
	n, err := r.ReadUint(lengthDigits)
	if err != nil {
		return "", unexpected(err)
	}

	b := make([]byte, 0, n)
	for uint(len(b)) < n {
		v, err := r.ReadUint(digitsPerGroup)
		if err != nil {
			return "", unexpected(err)
		}
		for i := 0; i < charsPerGroup && uint(len(b)) < n; i++ {
			b = append(b, byte(v%charBase+charOffset))
			v /= charBase
		}
	}

	return Unescape(b), nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
