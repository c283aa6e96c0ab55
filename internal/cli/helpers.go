package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"strings"

	"github.com/Davincible/bsgs/internal/validation"
	"github.com/Davincible/bsgs/pkg/config"
	"github.com/Davincible/bsgs/pkg/dlog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// LogLevel controls the default logger installed by main. It starts at warn.
var LogLevel = func() *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	return level
}()

var verbose bool

// EnableVerbose switches logging to debug. It takes precedence over the
// configured verbosity.
func EnableVerbose() {
	verbose = true
	LogLevel.Set(slog.LevelDebug)
}

// loadConfig returns the user's configuration, falling back to defaults when
// the file cannot be read or created.
func loadConfig() *config.Config {
	cm, err := config.NewConfigManager()
	if err != nil {
		slog.Warn("Using default configuration", "error", err)
		return config.DefaultConfig()
	}

	cfg := cm.GetConfig()
	if !cfg.UI.UseColor {
		color.NoColor = true
	}

	if !verbose {
		switch cfg.UI.Verbosity {
		case "quiet":
			LogLevel.Set(slog.LevelError)
		case "verbose":
			LogLevel.Set(slog.LevelDebug)
		}
	}

	return cfg
}

// wantJSON reports whether the command should print JSON, either because
// --json was passed or because the config defaults to it.
func wantJSON(cmd *cobra.Command, cfg *config.Config) bool {
	if cmd.Flags().Lookup("json") != nil {
		if outputJSON, err := cmd.Flags().GetBool("json"); err == nil && outputJSON {
			return true
		}
	}
	return cfg.Defaults.OutputFormat == "json"
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// isTerminal reports whether r is an interactive terminal
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// prompter reads one value per line, printing prompts only when the input is
// a terminal.
type prompter struct {
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		reader:      bufio.NewReader(in),
		out:         out,
		interactive: isTerminal(in),
	}
}

// readInteger prompts for and parses one integer
func (p *prompter) readInteger(prompt, name string) (*big.Int, error) {
	if p.interactive {
		fmt.Fprint(p.out, prompt)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
		if err == io.EOF {
			return nil, fmt.Errorf("missing %s", name)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return validation.ParseNamedInteger(name, validation.SanitizeInput(line))
}

// checkModulus applies the configured guards to a modulus before solving.
// Composite moduli are allowed but logged, since the group order n-1 is only
// right for primes.
func checkModulus(modulus *big.Int, cfg *config.Config) error {
	if err := validation.ValidateModulusSize(modulus, cfg.Solver.MaxModulusBits); err != nil {
		return err
	}

	if cfg.Solver.WarnComposite && modulus.Cmp(big.NewInt(2)) >= 0 && !modulus.ProbablyPrime(20) {
		slog.Warn("Modulus is not prime, the result is not guaranteed", "modulus", modulus.String())
	}

	return nil
}

// newSolver returns a solver that logs through the default logger
func newSolver() *dlog.Solver {
	return dlog.NewSolver(slog.Default())
}

// exponentString returns the decimal exponent or nil for no solution
func exponentString(r dlog.Result) *string {
	if !r.Found {
		return nil
	}
	s := r.Exponent.String()
	return &s
}
