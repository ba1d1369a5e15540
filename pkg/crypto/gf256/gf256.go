// Package gf256 implements arithmetic over GF(2^8), the finite field of 256
// elements, defined by the primitive polynomial x^8 + x^4 + x^3 + x^2 + 1 (0x11D)
// with generator 2. All share arithmetic in this module is performed in this field.
package gf256

import "errors"

const (
	// Field modulus: x^8 + x^4 + x^3 + x^2 + 1
	fieldPolynomial = 0x11D

	// Order of the multiplicative group (2^8 - 1).
	fieldOrder = 255
)

// ErrDivisionByZero is returned when an inverse or quotient of zero is requested.
var ErrDivisionByZero = errors.New("gf256: division by zero")

// exp and log tables for multiplication and inversion. Immutable after init,
// safe for concurrent readers.
var (
	expTable [256]byte
	logTable [256]byte
)

func init() {
	// Walk successive powers of the generator 2, reducing modulo the field
	// polynomial on overflow. log(0) stays 0; every multiplicative operation
	// guards the zero operand before consulting the tables.
	x := uint16(1)
	for i := 0; i < fieldOrder; i++ {
		expTable[i] = byte(x)
		logTable[x] = byte(i)

		x <<= 1
		if x&0x100 != 0 {
			x ^= fieldPolynomial
		}
	}
	// Wrap the cycle so exponent arithmetic may land on index 255.
	expTable[fieldOrder] = expTable[0]
}

// Add returns a + b in GF(2^8).
func Add(a, b byte) byte {
	return a ^ b
}

// Sub returns a - b in GF(2^8). Subtraction and addition coincide in
// characteristic 2.
func Sub(a, b byte) byte {
	return a ^ b
}

// Mul returns a * b in GF(2^8).
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	sum := (int(logTable[a]) + int(logTable[b])) % fieldOrder
	return expTable[sum]
}

// Pow returns base raised to exponent in GF(2^8). By convention Pow(b, 0) is 1
// for every b, including zero.
func Pow(base, exponent byte) byte {
	if exponent == 0 {
		return 1
	}
	if base == 0 {
		return 0
	}
	product := (int(logTable[base]) * int(exponent)) % fieldOrder
	return expTable[product]
}

// Inverse returns the multiplicative inverse of a, or ErrDivisionByZero when
// a is zero.
func Inverse(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 1 {
		return 1, nil
	}
	return expTable[(fieldOrder-int(logTable[a]))%fieldOrder], nil
}

// Div returns a / b in GF(2^8), or ErrDivisionByZero when b is zero.
func Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	diff := (int(logTable[a]) - int(logTable[b]) + fieldOrder) % fieldOrder
	return expTable[diff], nil
}
