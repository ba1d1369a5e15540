package trishare

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAndReconstruct(t *testing.T) {
	tests := []struct {
		name   string
		secret []byte
	}{
		{
			name:   "Short text secret",
			secret: []byte("my secret data"),
		},
		{
			name:   "256-bit key",
			secret: bytes.Repeat([]byte{0x42}, 32),
		},
		{
			name:   "Large secret",
			secret: bytes.Repeat([]byte("test"), 256),
		},
		{
			name:   "Single byte",
			secret: []byte{0x00},
		},
		{
			name:   "Empty secret",
			secret: []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Split(tt.secret)
			require.NoError(t, err)
			require.Len(t, shares, 3)

			wantOrder := []Identity{IdentityDevice, IdentityServer, IdentityRecovery}
			for i, s := range shares {
				assert.Equal(t, wantOrder[i], s.Type)
				assert.Equal(t, byte(i+1), s.X)
				assert.Len(t, s.Y, len(tt.secret))
				assert.Equal(t, ShareVersion, s.Version)
				assert.True(t, VerifyShare(s))
			}

			// Every 2-of-3 pairing reproduces the secret, as does the full set.
			pairs := [][2]int{{0, 1}, {0, 2}, {1, 2}}
			for _, p := range pairs {
				got, err := Reconstruct([]Share{shares[p[0]], shares[p[1]]})
				require.NoError(t, err)
				assert.Equal(t, tt.secret, got, "pairing %v", p)
			}

			got, err := Reconstruct(shares)
			require.NoError(t, err)
			assert.Equal(t, tt.secret, got)
		})
	}
}

func TestSplitKnownVector(t *testing.T) {
	secret := []byte{0x41, 0x42}

	shares, err := Split(secret)
	require.NoError(t, err)
	require.Len(t, shares, 3)

	for _, s := range shares {
		assert.Contains(t, []byte{1, 2, 3}, s.X)
		assert.Len(t, s.Y, 2)
	}

	got, err := Reconstruct([]Share{shares[0], shares[1]})
	require.NoError(t, err)
	assert.Equal(t, secret, got)

	got, err = Reconstruct([]Share{shares[1], shares[2]})
	require.NoError(t, err)
	assert.Equal(t, secret, got)

	derived, err := GenerateCompatibleShare([]Share{shares[0], shares[1]}, "")
	require.NoError(t, err)
	assert.Equal(t, IdentityRecovery, derived.Type)
	assert.Equal(t, byte(3), derived.X)
	assert.Equal(t, shares[2].Y, derived.Y, "derived recovery share must match the original byte-for-byte")
}

func TestSplitUsesFreshRandomness(t *testing.T) {
	secret := bytes.Repeat([]byte{0x7F}, 64)

	first, err := Split(secret)
	require.NoError(t, err)
	second, err := Split(secret)
	require.NoError(t, err)

	// With 64 fresh coefficients per run, identical payloads would mean the
	// random source is broken.
	assert.NotEqual(t, first[0].Y, second[0].Y)
	assert.NotEqual(t, first[1].Y, second[1].Y)
}

func TestReconstructInsufficientShares(t *testing.T) {
	shares, err := Split([]byte("secret"))
	require.NoError(t, err)

	_, err = Reconstruct(nil)
	assert.ErrorIs(t, err, ErrInsufficientShares)

	_, err = Reconstruct(shares[:1])
	assert.ErrorIs(t, err, ErrInsufficientShares)
}

func TestTamperDetection(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Share)
	}{
		{
			name:   "Flipped payload bit",
			mutate: func(s *Share) { s.Y[0] ^= 0x01 },
		},
		{
			name:   "Flipped coordinate",
			mutate: func(s *Share) { s.X ^= 0x02 },
		},
		{
			name:   "Swapped identity",
			mutate: func(s *Share) { s.Type = IdentityRecovery },
		},
		{
			name:   "Missing hash",
			mutate: func(s *Share) { s.Hash = nil },
		},
		{
			name:   "Flipped hash bit",
			mutate: func(s *Share) { s.Hash[0] ^= 0x80 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Split([]byte("attack at dawn"))
			require.NoError(t, err)

			evil := shares[0].Clone()
			tt.mutate(&evil)

			assert.False(t, VerifyShare(evil))

			_, err = Reconstruct([]Share{evil, shares[1]})
			assert.ErrorIs(t, err, ErrTamperedShare)

			_, err = GenerateCompatibleShare([]Share{evil, shares[1]}, "")
			assert.ErrorIs(t, err, ErrTamperedShare)
		})
	}
}

func TestVersionMismatch(t *testing.T) {
	shares, err := Split([]byte("secret"))
	require.NoError(t, err)

	other := shares[1].Clone()
	other.Version = 2
	other.Hash = computeShareHash(other)
	require.True(t, VerifyShare(other), "re-stamped share must verify")

	_, err = Reconstruct([]Share{shares[0], other})
	assert.ErrorIs(t, err, ErrVersionMismatch)

	_, err = GenerateCompatibleShare([]Share{shares[0], other}, "")
	assert.ErrorIs(t, err, ErrVersionMismatch)
}

func TestDuplicateCoordinate(t *testing.T) {
	first, err := Split([]byte("secret"))
	require.NoError(t, err)
	second, err := Split([]byte("secret"))
	require.NoError(t, err)

	// Two independently generated device shares sit at the same x.
	_, err = Reconstruct([]Share{first[0], second[0]})
	assert.ErrorIs(t, err, ErrDuplicateCoordinate)

	_, err = GenerateCompatibleShare([]Share{first[0], second[0]}, "")
	assert.ErrorIs(t, err, ErrDuplicateCoordinate)
}

func TestPayloadLengthMismatch(t *testing.T) {
	a, err := Split([]byte("short"))
	require.NoError(t, err)
	b, err := Split([]byte("a longer secret"))
	require.NoError(t, err)

	_, err = Reconstruct([]Share{a[0], b[1]})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateCompatibleShare(t *testing.T) {
	secret := []byte("the vault combination")
	shares, err := Split(secret)
	require.NoError(t, err)

	pairs := []struct {
		inputs  [2]int
		missing Identity
	}{
		{inputs: [2]int{0, 1}, missing: IdentityRecovery},
		{inputs: [2]int{0, 2}, missing: IdentityServer},
		{inputs: [2]int{1, 2}, missing: IdentityDevice},
	}

	for _, p := range pairs {
		t.Run(string(p.missing), func(t *testing.T) {
			inputs := []Share{shares[p.inputs[0]], shares[p.inputs[1]]}

			derived, err := GenerateCompatibleShare(inputs, "")
			require.NoError(t, err)
			assert.Equal(t, p.missing, derived.Type)
			assert.Equal(t, shares[0].Version, derived.Version)
			assert.True(t, VerifyShare(*derived))

			// The derived share matches the originally split one exactly.
			idx := int(derived.X) - 1
			assert.Equal(t, shares[idx].Y, derived.Y)

			// Derived share plus either original reproduces the secret.
			for _, in := range inputs {
				got, err := Reconstruct([]Share{*derived, in})
				require.NoError(t, err)
				assert.Equal(t, secret, got)
			}

			got, err := Reconstruct([]Share{inputs[0], inputs[1], *derived})
			require.NoError(t, err)
			assert.Equal(t, secret, got)
		})
	}
}

func TestGenerateCompatibleShareExplicitTarget(t *testing.T) {
	shares, err := Split([]byte("secret"))
	require.NoError(t, err)

	derived, err := GenerateCompatibleShare([]Share{shares[0], shares[1]}, IdentityRecovery)
	require.NoError(t, err)
	assert.Equal(t, shares[2].Y, derived.Y)

	// Target already among the inputs.
	_, err = GenerateCompatibleShare([]Share{shares[0], shares[1]}, IdentityServer)
	assert.ErrorIs(t, err, ErrAmbiguousTarget)

	// Unknown target identity.
	_, err = GenerateCompatibleShare([]Share{shares[0], shares[1]}, Identity("escrow"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Too few and too many inputs.
	_, err = GenerateCompatibleShare(shares[:1], "")
	assert.ErrorIs(t, err, ErrInsufficientShares)

	_, err = GenerateCompatibleShare(shares, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestShareHiding(t *testing.T) {
	// Fix the secret, vary only the random draws, and check each payload
	// byte value occurs: a single share's payload should look uniform.
	secret := []byte{0xAA}

	counts := make(map[byte]int)
	for i := 0; i < 4096; i++ {
		shares, err := Split(secret)
		require.NoError(t, err)
		counts[shares[0].Y[0]]++
	}

	// 4096 draws over 256 values: expect every value at least once and no
	// value dominating. This is a smoke test, not a chi-squared analysis.
	assert.Greater(t, len(counts), 200, "payload distribution is far from uniform")
	for v, c := range counts {
		assert.Less(t, c, 100, "value %#x occurs %d times", v, c)
	}
}
