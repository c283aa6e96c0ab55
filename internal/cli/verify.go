package cli

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Davincible/bsgs/internal/validation"
	"github.com/Davincible/bsgs/pkg/dlog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ErrCongruenceFails is returned by verify when alpha^x is not beta mod n
var ErrCongruenceFails = errors.New("congruence does not hold")

func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [alpha] [beta] [modulus] [exponent]",
		Short: "Check that alpha^exponent ≡ beta (mod modulus)",
		Long:  `Verify a claimed discrete logarithm by modular exponentiation.`,
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := []string{"alpha", "beta", "modulus", "exponent"}
			values, err := parseAll(names, args)
			if err != nil {
				return err
			}
			alpha, beta, modulus, exponent := values[0], values[1], values[2], values[3]

			ok, err := dlog.Verify(alpha, exponent, beta, modulus)
			if err != nil {
				return fmt.Errorf("failed to verify: %w", err)
			}

			cfg := loadConfig()
			if wantJSON(cmd, cfg) {
				if err := writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"alpha":    alpha.String(),
					"beta":     beta.String(),
					"modulus":  modulus.String(),
					"exponent": exponent.String(),
					"valid":    ok,
				}); err != nil {
					return err
				}
			} else {
				w := cmd.OutOrStdout()
				if ok {
					color.New(color.FgGreen, color.Bold).Fprintf(w, "✓ %s^%s ≡ %s (mod %s)\n", alpha, exponent, beta, modulus)
				} else {
					color.New(color.FgRed, color.Bold).Fprintf(w, "✗ %s^%s ≢ %s (mod %s)\n", alpha, exponent, beta, modulus)
				}
			}

			if !ok {
				return ErrCongruenceFails
			}
			return nil
		},
	}

	return cmd
}

func parseAll(names, inputs []string) ([]*big.Int, error) {
	values := make([]*big.Int, len(inputs))
	for i, input := range inputs {
		v, err := validation.ParseNamedInteger(names[i], input)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
