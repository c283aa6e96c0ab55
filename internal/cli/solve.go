package cli

import (
	"fmt"
	"io"
	"math/big"

	"github.com/Davincible/bsgs/internal/validation"
	"github.com/Davincible/bsgs/pkg/dlog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SolveReport is the JSON form of a solve result
type SolveReport struct {
	Alpha    string  `json:"alpha"`
	Beta     string  `json:"beta"`
	Modulus  string  `json:"modulus"`
	Found    bool    `json:"found"`
	Exponent *string `json:"exponent"`
}

func NewSolveCommand() *cobra.Command {
	var (
		alphaFlag   string
		betaFlag    string
		modulusFlag string
		maxBits     int
	)

	cmd := &cobra.Command{
		Use:   "solve [alpha beta modulus]",
		Short: "Find x such that alpha^x ≡ beta (mod modulus)",
		Long: `Solve the discrete logarithm problem with the baby-step giant-step method.

The modulus is expected to be prime. Alpha and beta must both be coprime to
the modulus. Values may be given in decimal, 0x hex, 0b binary or 0o octal.
Values that are not supplied as arguments or flags are read from stdin, one
per line.`,
		Example: `  # Positional arguments
  bsgs solve 5 3 7

  # Flags
  bsgs solve --base 2 --target 22 --modulus 29

  # Interactive
  bsgs solve

  # Output as JSON
  bsgs solve 5 3 7 --json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("expected 0 or 3 arguments (alpha beta modulus), got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if cmd.Flags().Changed("max-bits") {
				cfg.Solver.MaxModulusBits = maxBits
			}

			inputs := []string{alphaFlag, betaFlag, modulusFlag}
			if len(args) == 3 {
				copy(inputs, args)
			}

			alpha, beta, modulus, err := resolveOperands(cmd, inputs)
			if err != nil {
				return err
			}

			if err := checkModulus(modulus, cfg); err != nil {
				return err
			}

			result, err := newSolver().Solve(alpha, beta, modulus)
			if err != nil {
				return fmt.Errorf("failed to solve: %w", err)
			}

			if wantJSON(cmd, cfg) {
				return writeJSON(cmd.OutOrStdout(), SolveReport{
					Alpha:    alpha.String(),
					Beta:     beta.String(),
					Modulus:  modulus.String(),
					Found:    result.Found,
					Exponent: exponentString(result),
				})
			}

			outputSolveText(cmd.OutOrStdout(), alpha, beta, modulus, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&alphaFlag, "base", "a", "", "Base alpha")
	cmd.Flags().StringVarP(&betaFlag, "target", "b", "", "Target beta (the modular power)")
	cmd.Flags().StringVarP(&modulusFlag, "modulus", "n", "", "Prime modulus n")
	cmd.Flags().IntVar(&maxBits, "max-bits", 0, "Largest modulus width in bits to accept (0 disables the limit)")

	return cmd
}

// resolveOperands parses the given values and prompts for any left empty
func resolveOperands(cmd *cobra.Command, inputs []string) (alpha, beta, modulus *big.Int, err error) {
	prompts := []struct {
		prompt string
		name   string
	}{
		{"Enter base: ", "base"},
		{"Enter modular power: ", "modular power"},
		{"Enter modulus: ", "modulus"},
	}

	var p *prompter
	values := make([]*big.Int, len(inputs))
	for i, input := range inputs {
		if input != "" {
			values[i], err = validation.ParseNamedInteger(prompts[i].name, input)
		} else {
			if p == nil {
				p = newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			values[i], err = p.readInteger(prompts[i].prompt, prompts[i].name)
		}
		if err != nil {
			return nil, nil, nil, err
		}
	}

	if p != nil && p.interactive {
		fmt.Fprintln(cmd.OutOrStdout())
	}

	return values[0], values[1], values[2], nil
}

func outputSolveText(w io.Writer, alpha, beta, modulus *big.Int, result dlog.Result) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	if !result.Found {
		yellow.Fprintf(w, "No solution: %s has no exponential index (discrete logarithm) in base %s mod %s.\n",
			beta, alpha, modulus)
		return
	}

	green.Fprintf(w, "%s is the exponential index (discrete logarithm) of %s in base %s mod %s.\n",
		result.Exponent, beta, alpha, modulus)
}
