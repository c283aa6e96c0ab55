package validation

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var (
	integerPattern = regexp.MustCompile(`^[+-]?(0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|[0-9][0-9_]*)$`)
	tripleSplitter = regexp.MustCompile(`[\s,;]+`)
)

// ParseInteger parses a decimal, 0x hex, 0b binary or 0o octal integer of any
// size. Underscores between digits are accepted.
func ParseInteger(input string) (*big.Int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("integer cannot be empty")
	}

	if !integerPattern.MatchString(input) {
		return nil, fmt.Errorf("invalid integer %q", input)
	}

	n, ok := new(big.Int).SetString(input, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", input)
	}

	return n, nil
}

// ParseNamedInteger parses input and names the operand in any error.
func ParseNamedInteger(name, input string) (*big.Int, error) {
	n, err := ParseInteger(input)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

// ValidateModulusSize rejects moduli wider than maxBits. A maxBits of 0
// disables the check.
func ValidateModulusSize(modulus *big.Int, maxBits int) error {
	if maxBits <= 0 {
		return nil
	}

	if bits := modulus.BitLen(); bits > maxBits {
		return fmt.Errorf("modulus is %d bits wide, limit is %d (raise solver.max_modulus_bits to allow it)", bits, maxBits)
	}

	return nil
}

// SplitFields splits a line such as "5 3 7" or "5,3,7" into its fields.
func SplitFields(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	return tripleSplitter.Split(line, -1)
}

// StripComment removes a trailing '#' comment from line.
func StripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, "\n")
}

func ValidateOutputFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("output format must be text or json (got %q)", format)
	}
}

func ValidateWorkers(workers int) error {
	if workers < 1 || workers > 1024 {
		return fmt.Errorf("workers must be between 1 and 1024 (got %d)", workers)
	}
	return nil
}
