package trishare

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	shares, err := Split([]byte("boundary crossing"))
	require.NoError(t, err)

	for _, s := range shares {
		encoded := Encode(s)
		assert.Equal(t, string(s.Type), encoded.Type)
		assert.Equal(t, int(s.X), encoded.X)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, s, decoded)
		assert.True(t, VerifyShare(decoded))
	}
}

func TestEncodeDecodeEmptyPayload(t *testing.T) {
	shares, err := Split(nil)
	require.NoError(t, err)

	decoded, err := Decode(Encode(shares[0]))
	require.NoError(t, err)
	assert.Empty(t, decoded.Y)
	assert.True(t, VerifyShare(decoded))
}

func TestEncodedShareJSON(t *testing.T) {
	shares, err := Split([]byte{0x41, 0x42})
	require.NoError(t, err)

	raw, err := json.Marshal(Encode(shares[1]))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"server"`)
	assert.Contains(t, string(raw), `"x":2`)

	var encoded EncodedShare
	require.NoError(t, json.Unmarshal(raw, &encoded))

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, shares[1], decoded)
}

func TestDecodeRejectsMalformedShares(t *testing.T) {
	valid := Encode(mustSplitOne(t))

	tests := []struct {
		name   string
		mutate func(*EncodedShare)
	}{
		{
			name:   "Unknown identity",
			mutate: func(e *EncodedShare) { e.Type = "escrow" },
		},
		{
			name:   "Coordinate unbound from identity",
			mutate: func(e *EncodedShare) { e.X = 2 },
		},
		{
			name:   "Coordinate out of range",
			mutate: func(e *EncodedShare) { e.X = 0 },
		},
		{
			name:   "Payload not hex",
			mutate: func(e *EncodedShare) { e.Y = "zz" },
		},
		{
			name:   "Missing hash",
			mutate: func(e *EncodedShare) { e.Hash = "" },
		},
		{
			name:   "Hash not hex",
			mutate: func(e *EncodedShare) { e.Hash = "nothex" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := valid
			tt.mutate(&encoded)

			_, err := Decode(encoded)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func mustSplitOne(t *testing.T) Share {
	t.Helper()
	shares, err := Split([]byte("fixture"))
	require.NoError(t, err)
	return shares[0]
}
