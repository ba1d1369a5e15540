package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/veilbit/trishare/internal/validation"
	"github.com/veilbit/trishare/pkg/crypto/mnemonic"
	"github.com/veilbit/trishare/pkg/crypto/trishare"
	"github.com/veilbit/trishare/pkg/secure"
)

func NewSplitCommand() *cobra.Command {
	var (
		parts        int
		threshold    int
		useStdin     bool
		fromMnemonic bool
		outputFile   string
		storeName    string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into device, server and recovery shares",
		Long: `Split a secret into exactly three shares bound to the identities
device, server and recovery. Any two shares reconstruct the secret;
a single share reveals nothing about it.

Each share carries an integrity hash that is checked before the share
is accepted by combine or derive.`,
		Example: `  # Split a secret entered interactively
  trishare split

  # Split raw data from stdin
  echo "secret data" | trishare split --stdin

  # Split the entropy of a BIP39 mnemonic
  trishare split --mnemonic

  # Write the shares to a file
  trishare split --output shares.json

  # Keep the shares in the local store under a name
  trishare split --store "backup keys"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateSplitParams(parts, threshold); err != nil {
				return err
			}

			outputJSON, _ := cmd.Flags().GetBool("json")

			var secret []byte
			var err error
			switch {
			case useStdin:
				secret, err = readFromStdin()
			case fromMnemonic:
				secret, err = readMnemonicSecret()
			default:
				secret, err = readSecretInteractive()
			}
			if err != nil {
				return fmt.Errorf("failed to read secret: %w", err)
			}
			defer secure.Zero(secret)

			shares, err := trishare.Split(secret)
			if err != nil {
				return fmt.Errorf("failed to split secret: %w", err)
			}

			for _, s := range shares {
				if !trishare.VerifyShare(s) {
					return fmt.Errorf("freshly split %s share failed verification", s.Type)
				}
			}

			if storeName != "" {
				if err := saveToStore(storeName, shares); err != nil {
					return err
				}
				green := color.New(color.FgGreen, color.Bold)
				green.Printf("✓ Stored share set %q\n", storeName)
			}

			return writeShares(shares, outputFile, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&parts, "parts", "p", validation.FixedShares, "Total number of shares (fixed at 3)")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", validation.FixedThreshold, "Shares required to reconstruct (fixed at 2)")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "Read the secret from stdin")
	cmd.Flags().BoolVarP(&fromMnemonic, "mnemonic", "m", false, "Enter the secret as a BIP39 mnemonic")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write shares to a JSON file")
	cmd.Flags().StringVar(&storeName, "store", "", "Save the shares in the local share store under this name")

	return cmd
}

// readMnemonicSecret reads a BIP39 phrase and returns its entropy bytes as
// the secret.
func readMnemonicSecret() ([]byte, error) {
	words, err := readPassphrase("Enter your mnemonic phrase: ")
	if err != nil {
		return nil, err
	}

	m, err := mnemonic.FromWords(words)
	if err != nil {
		return nil, err
	}
	return m.Entropy()
}
