package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/veilbit/trishare/internal/cli"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "trishare",
		Short: "Fixed 2-of-3 secret sharing with tamper-evident shares",
		Long: `Trishare splits a secret into exactly three shares bound to the
identities device, server and recovery. Any two shares reconstruct the
secret; a single share reveals nothing about it.

Features:
- Per-byte Shamir sharing over GF(2^8), fixed 2-of-3 geometry
- SHA-256 integrity tag on every share, verified before use
- Derivation of a lost share from the two remaining ones
- Optional encrypted local share store
- BIP39 mnemonic entry and output for offline handling`,
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
	}

	rootCmd.AddCommand(
		cli.NewSplitCommand(),
		cli.NewCombineCommand(),
		cli.NewDeriveCommand(),
		cli.NewVerifyCommand(),
		cli.NewGenerateCommand(),
		cli.NewStoreCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
