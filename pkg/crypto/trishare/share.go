// Package trishare implements fixed 2-of-3 secret sharing over GF(2^8).
//
// A secret is split byte-wise with fresh degree-1 polynomials into exactly
// three shares bound to the identities device, server and recovery. Any two
// shares reconstruct the secret; a single share reveals nothing about it
// provided the random coefficients come from a cryptographically secure
// source. Every share carries a SHA-256 integrity tag that is verified before
// the share is trusted by any combining operation.
package trishare

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
)

// Identity names the party a share belongs to.
type Identity string

const (
	IdentityDevice   Identity = "device"
	IdentityServer   Identity = "server"
	IdentityRecovery Identity = "recovery"
)

// ShareVersion is stamped on every share created by this package.
const ShareVersion = 1

// identityCoordinates binds each identity to its fixed, non-configurable
// evaluation point. Reconstruction interpolates at 0, so no coordinate may
// be zero.
var identityCoordinates = map[Identity]byte{
	IdentityDevice:   1,
	IdentityServer:   2,
	IdentityRecovery: 3,
}

// allIdentities lists the identities in canonical share order.
var allIdentities = []Identity{IdentityDevice, IdentityServer, IdentityRecovery}

// Valid reports whether id is one of the three known identities.
func (id Identity) Valid() bool {
	_, ok := identityCoordinates[id]
	return ok
}

// Coordinate returns the fixed evaluation point bound to id.
func (id Identity) Coordinate() (byte, error) {
	x, ok := identityCoordinates[id]
	if !ok {
		return 0, fmt.Errorf("%w: unknown identity %q", ErrInvalidInput, string(id))
	}
	return x, nil
}

// Share is one party's fragment of a split secret. Shares are immutable once
// their hash is stamped; any transformation produces a new value.
type Share struct {
	// Type is the identity this share is bound to.
	Type Identity
	// X is the field element the per-byte polynomials were evaluated at.
	X byte
	// Y holds one evaluation per byte of the original secret.
	Y []byte
	// Version tags the share format for forward compatibility.
	Version int
	// Hash is the integrity tag over (X, Y, Type).
	Hash []byte
}

// Clone returns a deep copy of the share.
func (s Share) Clone() Share {
	c := s
	c.Y = append([]byte(nil), s.Y...)
	c.Hash = append([]byte(nil), s.Hash...)
	return c
}

// computeShareHash digests the share's coordinate, payload and identity in a
// canonical byte order. The payload is length-prefixed so distinct (Y, Type)
// pairs can never collide on the same concatenation.
func computeShareHash(s Share) []byte {
	h := sha256.New()
	h.Write([]byte{s.X})

	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(s.Y)))
	h.Write(n[:])
	h.Write(s.Y)
	h.Write([]byte(s.Type))
	return h.Sum(nil)
}

// VerifyShare reports whether the share's integrity tag matches its content.
// It fails closed on a missing tag and compares in constant time so a
// mismatch position cannot leak through timing.
func VerifyShare(s Share) bool {
	if len(s.Hash) == 0 {
		return false
	}
	expected := computeShareHash(s)
	if len(expected) != len(s.Hash) {
		return false
	}
	return subtle.ConstantTimeCompare(expected, s.Hash) == 1
}
