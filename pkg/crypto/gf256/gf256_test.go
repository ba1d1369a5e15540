package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTables(t *testing.T) {
	// Every non-zero element appears exactly once in the first 255 entries.
	seen := make(map[byte]bool)
	for i := 0; i < 255; i++ {
		v := expTable[i]
		assert.NotZero(t, v, "exp table contains zero at %d", i)
		assert.False(t, seen[v], "exp table repeats %#x at %d", v, i)
		seen[v] = true
	}

	assert.Equal(t, expTable[0], expTable[255], "exp table cycle does not wrap")

	for i := 0; i < 255; i++ {
		assert.Equal(t, byte(i), logTable[expTable[i]], "log/exp mismatch at %d", i)
	}
}

func TestAddSub(t *testing.T) {
	assert.Equal(t, byte(0), Add(0x53, 0x53))
	assert.Equal(t, byte(0x53), Add(0x53, 0))
	assert.Equal(t, Add(0x53, 0xCA), Sub(0x53, 0xCA), "add and sub must coincide")
}

func TestMul(t *testing.T) {
	assert.Equal(t, byte(0), Mul(0, 0x42))
	assert.Equal(t, byte(0), Mul(0x42, 0))
	assert.Equal(t, byte(0x42), Mul(0x42, 1))

	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			got := Mul(byte(a), byte(b))
			assert.Equal(t, mulSlow(byte(a), byte(b)), got, "Mul(%#x, %#x)", a, b)
			if t.Failed() {
				return
			}
		}
	}
}

// mulSlow is carry-less polynomial multiplication reduced modulo 0x11D,
// independent of the lookup tables.
func mulSlow(a, b byte) byte {
	var p uint16
	x := uint16(a)
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= x
		}
		b >>= 1
		x <<= 1
		if x&0x100 != 0 {
			x ^= fieldPolynomial
		}
	}
	return byte(p)
}

func TestPow(t *testing.T) {
	assert.Equal(t, byte(1), Pow(0x42, 0))
	assert.Equal(t, byte(1), Pow(0, 0))
	assert.Equal(t, byte(0), Pow(0, 5))
	assert.Equal(t, byte(0x42), Pow(0x42, 1))
	assert.Equal(t, Mul(0x42, 0x42), Pow(0x42, 2))
	assert.Equal(t, Mul(0x1B, Mul(0x1B, 0x1B)), Pow(0x1B, 3))
}

func TestInverse(t *testing.T) {
	_, err := Inverse(0)
	require.ErrorIs(t, err, ErrDivisionByZero)

	for a := 1; a < 256; a++ {
		inv, err := Inverse(byte(a))
		require.NoError(t, err)
		assert.Equal(t, byte(1), Mul(byte(a), inv), "a * a^-1 != 1 for %#x", a)
	}
}

func TestDiv(t *testing.T) {
	_, err := Div(0x42, 0)
	require.ErrorIs(t, err, ErrDivisionByZero)

	q, err := Div(0, 0x42)
	require.NoError(t, err)
	assert.Equal(t, byte(0), q)

	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			q, err := Div(byte(a), byte(b))
			require.NoError(t, err)
			assert.Equal(t, byte(a), Mul(q, byte(b)), "(a/b)*b != a for %#x/%#x", a, b)
			if t.Failed() {
				return
			}
		}
	}
}
