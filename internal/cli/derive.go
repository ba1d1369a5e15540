package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/veilbit/trishare/internal/validation"
	"github.com/veilbit/trishare/pkg/crypto/trishare"
)

func NewDeriveCommand() *cobra.Command {
	var (
		inputFile  string
		target     string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "derive [share share]",
		Short: "Derive the missing share from two existing ones",
		Long: `Derive a new, fully compatible share from two existing shares of the
same secret. With no --target flag the missing identity is inferred.

The derived share is byte-identical to the one split originally
produced for that identity, so it can replace a lost share.`,
		Example: `  # Derive the missing share from a file holding two shares
  trishare derive --input two_shares.json

  # Derive an explicitly named identity
  trishare derive --input two_shares.json --target recovery`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateIdentity(target); err != nil {
				return err
			}

			shares, err := collectShares(inputFile, args, 2)
			if err != nil {
				return err
			}

			derived, err := trishare.GenerateCompatibleShare(shares, trishare.Identity(target))
			if err != nil {
				return fmt.Errorf("failed to derive share: %w", err)
			}

			green := color.New(color.FgGreen, color.Bold)
			fmt.Println()
			green.Printf("✓ Derived %s share (x=%d)\n", derived.Type, derived.X)
			fmt.Println()

			encoded, err := json.Marshal(trishare.Encode(*derived))
			if err != nil {
				return err
			}

			if outputFile != "" {
				if err := os.WriteFile(outputFile, encoded, 0600); err != nil {
					return fmt.Errorf("failed to write %s: %w", outputFile, err)
				}
				fmt.Printf("Wrote derived share to %s\n", outputFile)
				return nil
			}

			fmt.Println(string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read the two source shares from a JSON file")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Identity to derive (device, server or recovery)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the derived share to a file")

	return cmd
}
