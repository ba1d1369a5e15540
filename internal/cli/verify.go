package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/veilbit/trishare/pkg/crypto/trishare"
)

func NewVerifyCommand() *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "verify [share...]",
		Short: "Verify the integrity of one or more shares",
		Long: `Recompute each share's integrity hash and compare it against the stored
tag. A share that fails verification must not be used for combine or
derive.`,
		Example: `  # Verify a single share given as JSON
  trishare verify '{"type":"device",...}'

  # Verify every share in a file
  trishare verify --input shares.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputFile == "" && len(args) == 0 {
				return fmt.Errorf("supply shares as arguments or via --input")
			}

			var shares []trishare.Share
			var err error
			if inputFile != "" {
				shares, err = readSharesFromFile(inputFile)
			} else {
				shares, err = collectShares("", args, 1)
			}
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen, color.Bold)
			red := color.New(color.FgRed, color.Bold)

			fmt.Println()
			failed := 0
			for _, s := range shares {
				if trishare.VerifyShare(s) {
					green.Printf("✓ %s share (x=%d, %d bytes) is intact\n", s.Type, s.X, len(s.Y))
				} else {
					red.Printf("✗ %s share (x=%d) failed integrity verification\n", s.Type, s.X)
					failed++
				}
			}
			fmt.Println()

			if failed > 0 {
				return fmt.Errorf("%d of %d shares failed verification", failed, len(shares))
			}

			fmt.Printf("All %d shares verified.\n", len(shares))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read shares from a JSON file")

	return cmd
}
