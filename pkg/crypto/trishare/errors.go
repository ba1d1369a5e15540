package trishare

import "errors"

// Sentinel errors for every failure class the engine can surface. Callers
// match them with errors.Is; no failure is ever recovered internally.
var (
	// ErrInsufficientShares indicates fewer than two shares were supplied
	// where at least two are required.
	ErrInsufficientShares = errors.New("trishare: at least 2 shares required")

	// ErrTamperedShare indicates a share's integrity hash is missing or does
	// not match its content. One tampered member rejects the whole operation.
	ErrTamperedShare = errors.New("trishare: share integrity check failed")

	// ErrVersionMismatch indicates the supplied shares disagree on version.
	ErrVersionMismatch = errors.New("trishare: share versions do not match")

	// ErrDuplicateCoordinate indicates two shares carry the same evaluation
	// point, which makes interpolation undefined.
	ErrDuplicateCoordinate = errors.New("trishare: duplicate share coordinate")

	// ErrAmbiguousTarget indicates the identity to derive could not be
	// determined when generating a compatible share.
	ErrAmbiguousTarget = errors.New("trishare: ambiguous derivation target")

	// ErrInvalidInput indicates a malformed share or argument at the boundary.
	ErrInvalidInput = errors.New("trishare: invalid input")
)
