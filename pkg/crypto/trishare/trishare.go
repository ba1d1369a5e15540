package trishare

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/veilbit/trishare/pkg/crypto/gf256"
)

// Split splits secret into exactly three shares, one per identity, in the
// order device, server, recovery. Each byte position gets its own degree-1
// polynomial f(x) = secret[i] + r[i]*x with a fresh coefficient drawn from
// crypto/rand; substituting a weaker source silently destroys the hiding
// property, so the randomness source is not configurable.
//
// An empty secret is valid and yields three shares with empty payloads.
func Split(secret []byte) ([]Share, error) {
	coeffs := make([]byte, len(secret))
	if _, err := io.ReadFull(rand.Reader, coeffs); err != nil {
		return nil, fmt.Errorf("failed to draw random coefficients: %w", err)
	}

	shares := make([]Share, 0, len(allIdentities))
	for _, id := range allIdentities {
		x := identityCoordinates[id]
		y := make([]byte, len(secret))
		for i := range secret {
			y[i] = gf256.Add(secret[i], gf256.Mul(coeffs[i], x))
		}

		s := Share{Type: id, X: x, Y: y, Version: ShareVersion}
		s.Hash = computeShareHash(s)
		shares = append(shares, s)
	}

	return shares, nil
}

// Reconstruct recovers the secret from two or more shares. Every precondition
// is checked before any field arithmetic runs: share count, integrity tags,
// version agreement, payload lengths and coordinate uniqueness. A single bad
// member rejects the whole operation.
func Reconstruct(shares []Share) ([]byte, error) {
	if err := checkShareSet(shares); err != nil {
		return nil, err
	}

	weights, err := lagrangeWeights(0, shares)
	if err != nil {
		return nil, err
	}

	secret := make([]byte, len(shares[0].Y))
	for i := range secret {
		var sum byte
		for k := range shares {
			sum = gf256.Add(sum, gf256.Mul(shares[k].Y[i], weights[k]))
		}
		secret[i] = sum
	}

	return secret, nil
}

// GenerateCompatibleShare derives a new share from exactly two existing ones
// by interpolating each byte's polynomial at the target identity's fixed
// coordinate. When target is empty it is inferred as the one identity absent
// from the inputs. The derived share carries the inputs' version and a fresh
// integrity tag, and is byte-identical to the share Split originally produced
// for that identity.
func GenerateCompatibleShare(shares []Share, target Identity) (*Share, error) {
	if len(shares) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientShares, len(shares))
	}
	if len(shares) > 2 {
		return nil, fmt.Errorf("%w: derivation takes exactly 2 shares, got %d", ErrInvalidInput, len(shares))
	}
	if err := checkShareSet(shares); err != nil {
		return nil, err
	}

	target, err := resolveTarget(shares, target)
	if err != nil {
		return nil, err
	}
	x, err := target.Coordinate()
	if err != nil {
		return nil, err
	}

	weights, err := lagrangeWeights(x, shares)
	if err != nil {
		return nil, err
	}

	y := make([]byte, len(shares[0].Y))
	for i := range y {
		var sum byte
		for k := range shares {
			sum = gf256.Add(sum, gf256.Mul(shares[k].Y[i], weights[k]))
		}
		y[i] = sum
	}

	derived := Share{Type: target, X: x, Y: y, Version: shares[0].Version}
	derived.Hash = computeShareHash(derived)
	return &derived, nil
}

// checkShareSet runs the preconditions shared by every combining operation.
func checkShareSet(shares []Share) error {
	if len(shares) < 2 {
		return fmt.Errorf("%w: got %d", ErrInsufficientShares, len(shares))
	}

	for _, s := range shares {
		if !s.Type.Valid() {
			return fmt.Errorf("%w: unknown identity %q", ErrInvalidInput, string(s.Type))
		}
		// Integrity first: a flipped coordinate or identity must surface as
		// tampering, not as a shape error.
		if !VerifyShare(s) {
			return fmt.Errorf("%w: %s share", ErrTamperedShare, s.Type)
		}
		if x := identityCoordinates[s.Type]; s.X != x {
			return fmt.Errorf("%w: %s share carries x=%d, expected %d", ErrInvalidInput, s.Type, s.X, x)
		}
	}

	version := shares[0].Version
	payloadLen := len(shares[0].Y)
	seen := make(map[byte]Identity, len(shares))
	for _, s := range shares {
		if s.Version != version {
			return fmt.Errorf("%w: %d vs %d", ErrVersionMismatch, version, s.Version)
		}
		if len(s.Y) != payloadLen {
			return fmt.Errorf("%w: payload lengths differ (%d vs %d)", ErrInvalidInput, payloadLen, len(s.Y))
		}
		if prev, ok := seen[s.X]; ok {
			return fmt.Errorf("%w: %s and %s both at x=%d", ErrDuplicateCoordinate, prev, s.Type, s.X)
		}
		seen[s.X] = s.Type
	}

	return nil
}

// resolveTarget determines the identity to derive. An explicit target must be
// known and absent from the inputs; an empty target resolves to the single
// identity the inputs do not cover.
func resolveTarget(shares []Share, target Identity) (Identity, error) {
	present := make(map[Identity]bool, len(shares))
	for _, s := range shares {
		present[s.Type] = true
	}

	if target != "" {
		if !target.Valid() {
			return "", fmt.Errorf("%w: unknown identity %q", ErrInvalidInput, string(target))
		}
		if present[target] {
			return "", fmt.Errorf("%w: %s is already among the inputs", ErrAmbiguousTarget, target)
		}
		return target, nil
	}

	var missing []Identity
	for _, id := range allIdentities {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) != 1 {
		return "", fmt.Errorf("%w: %d identities absent from inputs", ErrAmbiguousTarget, len(missing))
	}
	return missing[0], nil
}

// lagrangeWeights computes the Lagrange basis coefficients for evaluating the
// shares' common polynomial at x. The weights depend only on the coordinates,
// so they are computed once and reused for every byte position. A zero
// denominator means two shares sit at the same coordinate.
func lagrangeWeights(x byte, shares []Share) ([]byte, error) {
	weights := make([]byte, len(shares))
	for k := range shares {
		num, den := byte(1), byte(1)
		for j := range shares {
			if j == k {
				continue
			}
			num = gf256.Mul(num, gf256.Sub(x, shares[j].X))
			den = gf256.Mul(den, gf256.Sub(shares[k].X, shares[j].X))
		}

		w, err := gf256.Div(num, den)
		if err != nil {
			return nil, fmt.Errorf("%w: interpolation denominator is zero", ErrDuplicateCoordinate)
		}
		weights[k] = w
	}
	return weights, nil
}
