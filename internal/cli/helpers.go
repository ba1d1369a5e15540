package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/veilbit/trishare/internal/validation"
	"github.com/veilbit/trishare/pkg/crypto/trishare"
)

// shareFile is the on-disk JSON document produced by split and consumed by
// combine and derive.
type shareFile struct {
	Shares []trishare.EncodedShare `json:"shares"`
}

// readPassphrase reads a passphrase without echo when stdin is a terminal.
func readPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		pass, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(pass), nil
	}

	reader := bufio.NewReader(os.Stdin)
	pass, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pass), nil
}

// readSecretInteractive reads a secret from the terminal without echo.
func readSecretInteractive() ([]byte, error) {
	fmt.Print("Enter your secret: ")

	if term.IsTerminal(int(syscall.Stdin)) {
		secret, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return nil, err
		}
		if len(secret) == 0 {
			return nil, fmt.Errorf("secret cannot be empty")
		}
		return secret, nil
	}

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}

	secret := []byte(strings.TrimSpace(input))
	if len(secret) == 0 {
		return nil, fmt.Errorf("secret cannot be empty")
	}
	return secret, nil
}

// readFromStdin reads the whole of stdin as the secret.
func readFromStdin() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}

	secret := []byte(strings.TrimSpace(string(data)))
	if len(secret) == 0 {
		return nil, fmt.Errorf("no data received on stdin")
	}
	return secret, nil
}

// parseShareArg parses a single share given as a JSON object on the command
// line.
func parseShareArg(arg string) (trishare.Share, error) {
	var encoded trishare.EncodedShare
	if err := json.Unmarshal([]byte(validation.SanitizeInput(arg)), &encoded); err != nil {
		return trishare.Share{}, fmt.Errorf("share is not valid JSON: %w", err)
	}
	return trishare.Decode(encoded)
}

// readSharesFromFile loads shares from a JSON file written by split. Both the
// {"shares": [...]} document and a bare array are accepted.
func readSharesFromFile(path string) ([]trishare.Share, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc shareFile
	if err := json.Unmarshal(data, &doc); err != nil || len(doc.Shares) == 0 {
		var bare []trishare.EncodedShare
		if err := json.Unmarshal(data, &bare); err != nil {
			return nil, fmt.Errorf("%s does not contain shares: %w", path, err)
		}
		doc.Shares = bare
	}

	shares := make([]trishare.Share, 0, len(doc.Shares))
	for _, encoded := range doc.Shares {
		share, err := trishare.Decode(encoded)
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}
	return shares, nil
}

// collectShares gathers shares from a file, from args, or interactively, in
// that order of preference.
func collectShares(inputFile string, args []string, want int) ([]trishare.Share, error) {
	if inputFile != "" {
		return readSharesFromFile(inputFile)
	}

	if len(args) > 0 {
		shares := make([]trishare.Share, 0, len(args))
		for _, arg := range args {
			share, err := parseShareArg(arg)
			if err != nil {
				return nil, err
			}
			shares = append(shares, share)
		}
		return shares, nil
	}

	return collectSharesInteractive(want)
}

// collectSharesInteractive prompts for shares one per line, blank line to
// finish.
func collectSharesInteractive(want int) ([]trishare.Share, error) {
	fmt.Printf("Paste shares one per line (need at least %d), blank line to finish:\n", want)

	var shares []trishare.Share
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		share, err := parseShareArg(line)
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return shares, nil
}

// writeShares writes shares either to a file or, when path is empty, renders
// them to stdout.
func writeShares(shares []trishare.Share, path string, asJSON bool) error {
	doc := shareFile{Shares: make([]trishare.EncodedShare, 0, len(shares))}
	for _, s := range shares {
		doc.Shares = append(doc.Shares, trishare.Encode(s))
	}

	if path != "" {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Wrote %d shares to %s\n", len(shares), path)
		return nil
	}

	if asJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	displayShares(shares)
	return nil
}

// displayShares renders shares for manual distribution.
func displayShares(shares []trishare.Share) {
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Println()
	yellow.Println("Generated shares (any 2 reconstruct the secret):")
	fmt.Println()

	for _, s := range shares {
		encoded, _ := json.Marshal(trishare.Encode(s))
		cyan.Printf("%s share (x=%d):\n", s.Type, s.X)
		fmt.Printf("  %s\n\n", string(encoded))
	}
}
