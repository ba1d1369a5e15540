// Package secure holds helpers for handling secret material in memory:
// zeroization of buffers that carried secrets or share payloads, and a small
// wrapper that keeps a secret copyable and wipeable.
package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"runtime"
	"sync"
)

// Zero overwrites b with zero bytes.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// ConstantTimeCompare reports whether x and y are equal without leaking the
// position of the first differing byte.
func ConstantTimeCompare(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	return subtle.ConstantTimeCompare(x, y) == 1
}

// RandomBytes returns size cryptographically secure random bytes.
func RandomBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		Zero(b)
		return nil, fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return b, nil
}

// Bytes is a wipeable container for secret material. All accesses copy, so
// a caller can never hold an alias into the protected buffer.
type Bytes struct {
	data []byte
	mu   sync.RWMutex
}

// FromBytes copies data into a new protected buffer.
func FromBytes(data []byte) *Bytes {
	b := &Bytes{data: make([]byte, len(data))}
	copy(b.data, data)
	return b
}

// Get returns a copy of the protected data.
func (b *Bytes) Get() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Len returns the length of the protected data.
func (b *Bytes) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Destroy wipes the protected data and releases the buffer.
func (b *Bytes) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	Zero(b.data)
	b.data = nil
}
