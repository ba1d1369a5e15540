// Package mnemonic wraps BIP-39 so secrets can be carried as word phrases.
// A phrase is purely an encoding of the secret's entropy bytes here; the
// sharing engine never sees words, only the raw bytes.
package mnemonic

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

const (
	MinEntropyBits = 128
	MaxEntropyBits = 256
)

// Mnemonic is a validated BIP-39 word phrase.
type Mnemonic struct {
	words []string
}

// New generates a fresh mnemonic with the given entropy size in bits.
func New(entropyBits int) (*Mnemonic, error) {
	if entropyBits < MinEntropyBits || entropyBits > MaxEntropyBits {
		return nil, fmt.Errorf("entropy bits must be between %d and %d", MinEntropyBits, MaxEntropyBits)
	}
	if entropyBits%32 != 0 {
		return nil, fmt.Errorf("entropy bits must be a multiple of 32")
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate entropy: %w", err)
	}

	words, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mnemonic: %w", err)
	}

	return &Mnemonic{words: strings.Split(words, " ")}, nil
}

// FromWords parses and validates an existing phrase.
func FromWords(words string) (*Mnemonic, error) {
	words = strings.Join(strings.Fields(words), " ")
	if !bip39.IsMnemonicValid(words) {
		return nil, fmt.Errorf("invalid mnemonic phrase")
	}

	return &Mnemonic{words: strings.Split(words, " ")}, nil
}

// FromEntropy encodes raw entropy bytes as a phrase.
func FromEntropy(entropy []byte) (*Mnemonic, error) {
	if len(entropy) < MinEntropyBits/8 || len(entropy) > MaxEntropyBits/8 {
		return nil, fmt.Errorf("entropy must be between %d and %d bytes", MinEntropyBits/8, MaxEntropyBits/8)
	}
	if len(entropy)%4 != 0 {
		return nil, fmt.Errorf("entropy length must be a multiple of 4")
	}

	words, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entropy: %w", err)
	}

	return &Mnemonic{words: strings.Split(words, " ")}, nil
}

// Words returns the phrase as a single space-separated string.
func (m *Mnemonic) Words() string {
	return strings.Join(m.words, " ")
}

// WordCount returns the number of words in the phrase.
func (m *Mnemonic) WordCount() int {
	return len(m.words)
}

// Entropy returns the raw bytes the phrase encodes. These are the bytes
// handed to the sharing engine.
func (m *Mnemonic) Entropy() ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(m.Words())
	if err != nil {
		return nil, fmt.Errorf("failed to get entropy from mnemonic: %w", err)
	}
	return entropy, nil
}

// EntropyBitsFromWordCount maps a BIP-39 word count to its entropy size.
func EntropyBitsFromWordCount(wordCount int) (int, error) {
	switch wordCount {
	case 12:
		return 128, nil
	case 15:
		return 160, nil
	case 18:
		return 192, nil
	case 21:
		return 224, nil
	case 24:
		return 256, nil
	default:
		return 0, fmt.Errorf("invalid word count: %d", wordCount)
	}
}
