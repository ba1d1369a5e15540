package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/veilbit/trishare/pkg/crypto/mnemonic"
	"github.com/veilbit/trishare/pkg/crypto/trishare"
	"github.com/veilbit/trishare/pkg/secure"
)

func NewGenerateCommand() *cobra.Command {
	var (
		bytesLen   int
		wordCount  int
		useWords   bool
		outputFile string
		storeName  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fresh random secret and split it",
		Long: `Generate a new cryptographically secure random secret and immediately
split it into device, server and recovery shares. With --words the
secret is BIP39 entropy and is also printed as a mnemonic phrase for
offline transcription.`,
		Example: `  # Generate a 32-byte secret and print its shares
  trishare generate

  # Generate a 24-word mnemonic secret
  trishare generate --words 24

  # Generate and store the shares
  trishare generate --store "signing key"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")

			var secret []byte
			var phrase string

			if useWords || cmd.Flags().Changed("words") {
				entropyBits, err := mnemonic.EntropyBitsFromWordCount(wordCount)
				if err != nil {
					return fmt.Errorf("invalid word count: %w", err)
				}

				m, err := mnemonic.New(entropyBits)
				if err != nil {
					return fmt.Errorf("failed to generate mnemonic: %w", err)
				}
				phrase = m.Words()

				secret, err = m.Entropy()
				if err != nil {
					return err
				}
			} else {
				var err error
				secret, err = secure.RandomBytes(bytesLen)
				if err != nil {
					return err
				}
			}
			defer secure.Zero(secret)

			shares, err := trishare.Split(secret)
			if err != nil {
				return fmt.Errorf("failed to split secret: %w", err)
			}

			cyan := color.New(color.FgCyan, color.Bold)
			if phrase != "" {
				cyan.Println("Generated mnemonic (write it down, it IS the secret):")
				fmt.Println(phrase)
				fmt.Println()
			} else if !outputJSON {
				cyan.Println("Generated secret (hex):")
				fmt.Println(hex.EncodeToString(secret))
				fmt.Println()
			}

			if storeName != "" {
				if err := saveToStore(storeName, shares); err != nil {
					return err
				}
				color.New(color.FgGreen, color.Bold).Printf("✓ Stored share set %q\n", storeName)
			}

			return writeShares(shares, outputFile, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&bytesLen, "bytes", "b", 32, "Secret length in bytes")
	cmd.Flags().IntVarP(&wordCount, "words", "w", 24, "Generate BIP39 entropy with this word count")
	cmd.Flags().BoolVar(&useWords, "mnemonic", false, "Generate the secret as BIP39 entropy")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write shares to a JSON file")
	cmd.Flags().StringVar(&storeName, "store", "", "Save the shares in the local share store under this name")

	return cmd
}
