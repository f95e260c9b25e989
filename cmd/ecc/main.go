package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldlab/ecc/internal/cli"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelWarn)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "ecc",
		Short: "BCH and Reed-Solomon error correction over GF(2^m)",
		Long: `ecc encodes and decodes words with algebraic error-correcting codes.

Two code families are supported, both built on the same syndrome decoder
(Berlekamp-Massey, Chien search, Forney):

- BCH: binary codes, words are bit strings
- Reed-Solomon: symbol codes over GF(2^m), words are symbol lists

Codes are selected with explicit parameters (-m, -t, -n, -k) or with a
named profile from the config file (see 'ecc info --profiles').`,
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logLevel.Set(slog.LevelDebug)
			}
		},
	}

	rootCmd.AddCommand(
		cli.NewEncodeCommand(),
		cli.NewDecodeCommand(),
		cli.NewCorruptCommand(),
		cli.NewInfoCommand(),
		cli.NewDemoCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
