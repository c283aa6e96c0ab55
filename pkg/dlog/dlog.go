// Package dlog computes discrete logarithms in the multiplicative group of
// integers modulo n with the baby-step giant-step algorithm.
//
// Given α, β and n it finds the smallest x in [0, n-1) with α^x ≡ β (mod n),
// or reports that none exists. The group order is taken to be n-1, so the
// answer is only guaranteed for prime n. Primality is not checked; callers
// passing a composite modulus get an unspecified result.
package dlog

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"

	"github.com/Davincible/bsgs/pkg/numtheory"
)

// maxTableHint caps the map preallocation so huge moduli don't reserve memory
// before a single step has run.
const maxTableHint = 1 << 20

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// Solver runs baby-step giant-step searches. The zero value is not usable;
// create one with NewSolver. A Solver holds no per-search state and may be
// shared between goroutines.
type Solver struct {
	logger *slog.Logger
}

// NewSolver returns a solver that reports search progress to logger at debug
// level. A nil logger discards everything.
func NewSolver(logger *slog.Logger) *Solver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Solver{logger: logger}
}

var defaultSolver = NewSolver(nil)

// FindExponentialIndex returns x with alpha^x ≡ beta (mod modulus).
//
// It fails with ErrInvalidModulus when modulus < 2 and with a
// *NotInvertibleError when alpha or beta shares a factor with modulus.
// A search that finds nothing returns NoSolution() and a nil error.
func FindExponentialIndex(alpha, beta, modulus *big.Int) (Result, error) {
	return defaultSolver.Solve(alpha, beta, modulus)
}

// Solve is FindExponentialIndex with the solver's logger attached.
func (s *Solver) Solve(alpha, beta, modulus *big.Int) (Result, error) {
	if err := validate(alpha, beta, modulus); err != nil {
		return NoSolution(), err
	}

	a := numtheory.Reduce(alpha, modulus)
	b := numtheory.Reduce(beta, modulus)

	if result, done := trivialCase(a, b); done {
		s.logger.Debug("Trivial case", "alpha", a, "beta", b, "modulus", modulus, "result", result)
		return result, nil
	}

	groupOrder := new(big.Int).Sub(modulus, bigOne)

	m, err := stepBound(groupOrder)
	if err != nil {
		return NoSolution(), fmt.Errorf("failed to compute step bound: %w", err)
	}

	table := babySteps(a, modulus, m)
	s.logger.Debug("Baby steps complete", "modulus", modulus, "step_bound", m, "table_size", table.Len())

	inverse, ok := numtheory.ModInverse(a, modulus)
	if !ok {
		s.logger.Debug("Base has no inverse", "alpha", a, "modulus", modulus)
		return NoSolution(), nil
	}

	multiplier, err := numtheory.ModExp(inverse, m, modulus)
	if err != nil {
		return NoSolution(), fmt.Errorf("failed to compute giant-step multiplier: %w", err)
	}

	result := giantSteps(b, modulus, groupOrder, m, multiplier, table)
	s.logger.Debug("Giant steps complete", "modulus", modulus, "result", result)

	return result, nil
}

func validate(alpha, beta, modulus *big.Int) error {
	if alpha == nil || beta == nil || modulus == nil {
		return ErrNilOperand
	}

	if modulus.Cmp(bigTwo) < 0 {
		return fmt.Errorf("%w: modulus %s must be greater than or equal to two (2)", ErrInvalidModulus, modulus)
	}

	if !numtheory.IsUnit(alpha, modulus) {
		return &NotInvertibleError{
			Operand: OperandAlpha,
			Value:   new(big.Int).Set(alpha),
			Modulus: new(big.Int).Set(modulus),
		}
	}

	if !numtheory.IsUnit(beta, modulus) {
		return &NotInvertibleError{
			Operand: OperandBeta,
			Value:   new(big.Int).Set(beta),
			Modulus: new(big.Int).Set(modulus),
		}
	}

	return nil
}

// trivialCase settles inputs that need no search. alpha and beta must already
// be reduced.
func trivialCase(alpha, beta *big.Int) (Result, bool) {
	switch {
	case beta.Cmp(bigOne) == 0:
		return Found(big.NewInt(0)), true
	case numtheory.IsZero(alpha) && !numtheory.IsZero(beta):
		return NoSolution(), true
	case numtheory.IsZero(alpha):
		return Found(big.NewInt(1)), true
	case alpha.Cmp(bigOne) == 0:
		// 1^x is always 1 and beta ≡ 1 was handled above.
		return NoSolution(), true
	}
	return Result{}, false
}

// stepBound returns ceil(sqrt(groupOrder)).
func stepBound(groupOrder *big.Int) (*big.Int, error) {
	root, err := numtheory.IntegerSquareRoot(groupOrder)
	if err != nil {
		return nil, err
	}

	if new(big.Int).Mul(root, root).Cmp(groupOrder) != 0 {
		root.Add(root, bigOne)
	}

	return root, nil
}

// babySteps records α^j for j in [0, m). Earlier steps win on collisions, so
// each element maps to its smallest exponent.
func babySteps(alpha, modulus, m *big.Int) *BabyStepTable {
	hint := maxTableHint
	if m.IsInt64() && m.Int64() < maxTableHint {
		hint = int(m.Int64())
	}
	table := NewBabyStepTable(hint)

	index := big.NewInt(1)
	for j := big.NewInt(0); j.Cmp(m) < 0; j.Add(j, bigOne) {
		table.Insert(index, j)

		index.Mul(index, alpha)
		index.Mod(index, modulus)
	}

	return table
}

// giantSteps walks γ = β·α^(-i·m) for i in [0, m) and returns the first match
// against the baby-step table as (i·m + j) mod groupOrder.
func giantSteps(beta, modulus, groupOrder, m, multiplier *big.Int, table *BabyStepTable) Result {
	gamma := new(big.Int).Set(beta)

	for i := big.NewInt(0); i.Cmp(m) < 0; i.Add(i, bigOne) {
		if j, ok := table.Lookup(gamma); ok {
			x := new(big.Int).Mul(i, m)
			x.Add(x, j)
			x.Mod(x, groupOrder)
			return Found(x)
		}

		gamma.Mul(gamma, multiplier)
		gamma.Mod(gamma, modulus)
	}

	return NoSolution()
}

// Verify reports whether alpha^x ≡ beta (mod modulus).
func Verify(alpha, x, beta, modulus *big.Int) (bool, error) {
	if alpha == nil || x == nil || beta == nil || modulus == nil {
		return false, ErrNilOperand
	}
	if modulus.Cmp(bigOne) < 0 {
		return false, fmt.Errorf("%w: modulus %s must be positive", ErrInvalidModulus, modulus)
	}

	power, err := numtheory.ModExp(alpha, x, modulus)
	if err != nil {
		return false, fmt.Errorf("failed to exponentiate: %w", err)
	}

	return power.Cmp(numtheory.Reduce(beta, modulus)) == 0, nil
}
