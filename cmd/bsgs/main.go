package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Davincible/bsgs/internal/cli"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cli.LogLevel,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "bsgs",
		Short: "Baby-step giant-step discrete logarithm solver",
		Long: `bsgs finds x such that alpha^x ≡ beta (mod n) using Shanks'
baby-step giant-step algorithm in O(√n) time and memory.

Features:
- Arbitrary-precision operands (decimal, hex, binary, octal)
- Explicit "no solution" results, distinct from x = 0
- Verification of claimed logarithms
- Concurrent batch solving from files or stdin

The modulus is expected to be prime. Composite moduli are accepted but the
result is not guaranteed.`,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				cli.EnableVerbose()
			}
		},
	}

	rootCmd.AddCommand(
		cli.NewSolveCommand(),
		cli.NewVerifyCommand(),
		cli.NewBatchCommand(),
		cli.NewConfigCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
