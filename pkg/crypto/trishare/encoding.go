package trishare

import (
	"encoding/hex"
	"fmt"
)

// EncodedShare is the storage/transport representation of a Share. Byte
// fields are lowercase hex; the transform is pure and lossless.
type EncodedShare struct {
	Type    string `json:"type"`
	X       int    `json:"x"`
	Y       string `json:"y"`
	Version int    `json:"version"`
	Hash    string `json:"hash"`
}

// Encode converts a share to its boundary representation.
func Encode(s Share) EncodedShare {
	return EncodedShare{
		Type:    string(s.Type),
		X:       int(s.X),
		Y:       hex.EncodeToString(s.Y),
		Version: s.Version,
		Hash:    hex.EncodeToString(s.Hash),
	}
}

// Decode converts a boundary representation back to a Share, validating its
// shape: the identity must be known, the coordinate must match the identity's
// fixed binding, the hash must be present, and both byte fields must be valid
// hex. Shape failures wrap ErrInvalidInput; integrity is not checked here.
func Decode(e EncodedShare) (Share, error) {
	id := Identity(e.Type)
	coord, err := id.Coordinate()
	if err != nil {
		return Share{}, err
	}
	if e.X != int(coord) {
		return Share{}, fmt.Errorf("%w: %s share carries x=%d, expected %d", ErrInvalidInput, id, e.X, coord)
	}

	y, err := hex.DecodeString(e.Y)
	if err != nil {
		return Share{}, fmt.Errorf("%w: payload is not valid hex: %v", ErrInvalidInput, err)
	}

	if e.Hash == "" {
		return Share{}, fmt.Errorf("%w: missing integrity hash", ErrInvalidInput)
	}
	hash, err := hex.DecodeString(e.Hash)
	if err != nil {
		return Share{}, fmt.Errorf("%w: hash is not valid hex: %v", ErrInvalidInput, err)
	}

	return Share{
		Type:    id,
		X:       coord,
		Y:       y,
		Version: e.Version,
		Hash:    hash,
	}, nil
}
