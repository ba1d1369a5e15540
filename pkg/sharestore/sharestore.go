// Package sharestore persists sets of trishare shares to disk. A set groups
// the shares of one split secret under a name; individual shares can be
// marked distributed so the set records which identities are still held
// locally. Files are optionally encrypted with a passphrase-derived key.
package sharestore

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/veilbit/trishare/pkg/crypto/trishare"
	"github.com/veilbit/trishare/pkg/secure"
)

const saltSize = 32

// ShareSet is a named collection of shares belonging to one split secret.
type ShareSet struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Created     time.Time         `json:"created"`
	Modified    time.Time         `json:"modified"`
	Tags        []string          `json:"tags,omitempty"`
	Shares      []StoredShare     `json:"shares"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Checksum    []byte            `json:"checksum_sha256,omitempty"`
}

// StoredShare wraps an encoded share with distribution bookkeeping.
type StoredShare struct {
	Share       trishare.EncodedShare `json:"share"`
	Distributed bool                  `json:"distributed"`
	Location    string                `json:"location,omitempty"`
	Notes       string                `json:"notes,omitempty"`
}

// HeldShares returns the decoded shares still held locally (not distributed).
func (s *ShareSet) HeldShares() ([]trishare.Share, error) {
	var held []trishare.Share
	for _, stored := range s.Shares {
		if stored.Distributed {
			continue
		}
		share, err := trishare.Decode(stored.Share)
		if err != nil {
			return nil, fmt.Errorf("share set %q holds a malformed %s share: %w", s.Name, stored.Share.Type, err)
		}
		held = append(held, share)
	}
	return held, nil
}

// Store manages share sets under a single directory, one JSON file per set.
type Store struct {
	path       string
	sets       map[string]*ShareSet
	passphrase []byte
}

// Option configures a Store.
type Option func(*Store)

// WithPassphrase enables at-rest encryption: each file is sealed with
// ChaCha20-Poly1305 under an Argon2id key derived from the passphrase and a
// per-file salt.
func WithPassphrase(passphrase []byte) Option {
	return func(s *Store) {
		s.passphrase = append([]byte(nil), passphrase...)
	}
}

// Open loads the store at path, creating the directory if needed.
func Open(path string, opts ...Option) (*Store, error) {
	store := &Store{
		path: path,
		sets: make(map[string]*ShareSet),
	}
	for _, opt := range opts {
		opt(store)
	}

	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	if err := store.loadAll(); err != nil {
		return nil, fmt.Errorf("failed to load share sets: %w", err)
	}

	return store, nil
}

// Close wipes the passphrase copy held by the store.
func (s *Store) Close() {
	secure.Zero(s.passphrase)
	s.passphrase = nil
}

// Save adds or updates a share set and persists it.
func (s *Store) Save(set *ShareSet) error {
	if set.Name == "" {
		return fmt.Errorf("share set name cannot be empty")
	}
	if set.ID == "" {
		id, err := generateID()
		if err != nil {
			return err
		}
		set.ID = id
	}
	if set.Created.IsZero() {
		set.Created = time.Now().UTC()
	}
	set.Modified = time.Now().UTC()

	stampChecksum(set)
	s.sets[set.ID] = set

	return s.writeSet(set)
}

// Get retrieves a share set by ID, verifying its checksum.
func (s *Store) Get(id string) (*ShareSet, error) {
	set, ok := s.sets[id]
	if !ok {
		return nil, fmt.Errorf("share set %q not found", id)
	}
	if err := verifyChecksum(set); err != nil {
		return nil, err
	}
	return set, nil
}

// GetByName retrieves a share set by its name.
func (s *Store) GetByName(name string) (*ShareSet, error) {
	for _, set := range s.sets {
		if set.Name == name {
			return s.Get(set.ID)
		}
	}
	return nil, fmt.Errorf("share set %q not found", name)
}

// List returns all share sets, newest first.
func (s *Store) List() []*ShareSet {
	result := make([]*ShareSet, 0, len(s.sets))
	for _, set := range s.sets {
		result = append(result, set)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Created.After(result[j].Created)
	})
	return result
}

// Delete removes a share set from memory and disk.
func (s *Store) Delete(id string) error {
	set, ok := s.sets[id]
	if !ok {
		return fmt.Errorf("share set %q not found", id)
	}

	delete(s.sets, id)

	if err := os.Remove(s.filename(set)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *Store) loadAll() error {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.path, entry.Name()))
		if err != nil {
			return err
		}

		if len(s.passphrase) > 0 {
			data, err = s.unseal(data)
			if err != nil {
				return fmt.Errorf("failed to decrypt %s: %w", entry.Name(), err)
			}
		}

		var set ShareSet
		if err := json.Unmarshal(data, &set); err != nil {
			return fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		if err := verifyChecksum(&set); err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}

		s.sets[set.ID] = &set
	}

	return nil
}

func (s *Store) writeSet(set *ShareSet) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}

	if len(s.passphrase) > 0 {
		data, err = s.seal(data)
		if err != nil {
			return err
		}
	}

	return os.WriteFile(s.filename(set), data, 0600)
}

func (s *Store) filename(set *ShareSet) string {
	safe := strings.ReplaceAll(set.Name, " ", "_")
	safe = strings.ReplaceAll(safe, "/", "_")
	if len(safe) > 50 {
		safe = safe[:50]
	}
	return filepath.Join(s.path, fmt.Sprintf("%s_%s.json", safe, set.ID[:8]))
}

// seal encrypts data as salt || nonce || ciphertext.
func (s *Store) seal(data []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := chacha20poly1305.New(deriveKey(s.passphrase, salt))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, data, nil)

	out := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

func (s *Store) unseal(data []byte) ([]byte, error) {
	if len(data) < saltSize+chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("encrypted data too short")
	}

	salt := data[:saltSize]
	nonce := data[saltSize : saltSize+chacha20poly1305.NonceSize]
	sealed := data[saltSize+chacha20poly1305.NonceSize:]

	aead, err := chacha20poly1305.New(deriveKey(s.passphrase, salt))
	if err != nil {
		return nil, err
	}

	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plain, nil
}

func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 3, 64*1024, 4, chacha20poly1305.KeySize)
}

func stampChecksum(set *ShareSet) {
	tmp := *set
	tmp.Checksum = nil

	data, _ := json.Marshal(tmp)
	sum := sha256.Sum256(data)
	set.Checksum = sum[:]
}

func verifyChecksum(set *ShareSet) error {
	if len(set.Checksum) == 0 {
		return nil
	}

	tmp := *set
	tmp.Checksum = nil
	data, err := json.Marshal(tmp)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(data)

	if !secure.ConstantTimeCompare(sum[:], set.Checksum) {
		return fmt.Errorf("checksum mismatch for share set %q", set.Name)
	}
	return nil
}

func generateID() (string, error) {
	b, err := secure.RandomBytes(16)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", b), nil
}
