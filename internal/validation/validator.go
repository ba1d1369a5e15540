package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]*$`)

// Engine geometry: the sharing scheme is fixed at 2-of-3. Any request for a
// different geometry is rejected here, before the engine is ever called,
// rather than silently ignored.
const (
	FixedShares    = 3
	FixedThreshold = 2
)

// ValidateSplitParams checks requested share counts against the fixed scheme.
func ValidateSplitParams(parts, threshold int) error {
	if threshold < 2 {
		return fmt.Errorf("threshold must be at least 2 (got %d)", threshold)
	}
	if parts < threshold {
		return fmt.Errorf("parts (%d) cannot be less than threshold (%d)", parts, threshold)
	}
	if parts != FixedShares || threshold != FixedThreshold {
		return fmt.Errorf("only %d-of-%d sharing is supported (requested %d-of-%d)",
			FixedThreshold, FixedShares, threshold, parts)
	}
	return nil
}

// ValidateHex checks that input is a well-formed hex string.
func ValidateHex(input string) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return fmt.Errorf("hex string cannot be empty")
	}
	if len(input)%2 != 0 {
		return fmt.Errorf("hex string must have even length")
	}
	if !hexPattern.MatchString(input) {
		return fmt.Errorf("invalid hex characters")
	}
	return nil
}

// ValidateIdentity checks a share identity string from the command line.
func ValidateIdentity(identity string) error {
	switch identity {
	case "", "device", "server", "recovery":
		return nil
	}
	return fmt.Errorf("identity must be one of device, server, recovery (got %q)", identity)
}

// ValidatePassphrase applies basic sanity limits to a storage passphrase.
func ValidatePassphrase(passphrase string, minLength int) error {
	if len(passphrase) < minLength {
		return fmt.Errorf("passphrase must be at least %d characters", minLength)
	}
	if len(passphrase) > 256 {
		return fmt.Errorf("passphrase too long (max 256 characters)")
	}
	for i, ch := range passphrase {
		if ch == 0 {
			return fmt.Errorf("passphrase contains null character at position %d", i)
		}
	}
	return nil
}

// SanitizeInput normalizes line endings and trims surrounding whitespace.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "\n")
}
