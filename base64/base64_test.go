package base64

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabet(t *testing.T) {
	for i := uint(0); i < 64; i++ {
		c := Encode(i)
		v, ok := Decode(c)
		require.True(t, ok, "digit %d", i)
		assert.Equal(t, i, v)
	}

	assert.Equal(t, byte('A'), Encode(0))
	assert.Equal(t, byte('a'), Encode(26))
	assert.Equal(t, byte('0'), Encode(52))
	assert.Equal(t, byte('+'), Encode(62))
	assert.Equal(t, byte('/'), Encode(63))
	assert.Equal(t, byte('B'), Encode(65))

	for _, c := range []byte("?=-_ @\x00\xff") {
		_, ok := Decode(c)
		assert.False(t, ok, "character %q", c)
	}
}

func TestAppendUint(t *testing.T) {
	tests := []struct {
		v    uint
		n    int
		want string
	}{
		{0, 1, "A"},
		{2159, 2, "vh"},
		{30720, 3, "AgH"},
		{37845, 3, "VPJ"},
		{0, 3, "AAA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, string(AppendUint(nil, tt.v, tt.n)))
	}
}

func TestReader(t *testing.T) {
	r := NewReader("VPJvhA", 5)
	require.True(t, r.More())

	v, err := r.ReadUint(3)
	require.NoError(t, err)
	assert.Equal(t, uint(37845), v)
	assert.Equal(t, 8, r.Offset())

	v, err = r.ReadUint(2)
	require.NoError(t, err)
	assert.Equal(t, uint(2159), v)

	v, err = r.ReadUint(1)
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)
	assert.False(t, r.More())

	_, err = r.ReadUint(2)
	assert.Equal(t, io.EOF, err)
}

func TestReaderErrors(t *testing.T) {
	_, err := NewReader("A", 0).ReadUint(2)
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	_, err = NewReader("AA?A", 5).ReadUint(4)
	assert.Equal(t, CorruptInputError(7), err)
	assert.EqualError(t, err, "base64: illegal data at input byte 7")
}
