package dlog

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidModulus is returned when the modulus is below 2.
	ErrInvalidModulus = errors.New("invalid modulus")

	// ErrNotInvertible is returned when the base or target shares a factor
	// with the modulus. The concrete error is a *NotInvertibleError.
	ErrNotInvertible = errors.New("operand not invertible")

	// ErrNilOperand is returned when any operand is nil.
	ErrNilOperand = errors.New("nil operand")
)

// Operand names used by NotInvertibleError.
const (
	OperandAlpha = "alpha"
	OperandBeta  = "beta"
)

// NotInvertibleError names the operand that lies outside the multiplicative
// group modulo Modulus.
type NotInvertibleError struct {
	Operand string
	Value   *big.Int
	Modulus *big.Int
}

func (e *NotInvertibleError) Error() string {
	if e.Operand == OperandBeta {
		return fmt.Sprintf("beta %s lies outside the multiplicative group mod %s", e.Value, e.Modulus)
	}
	return fmt.Sprintf("%s %s not invertible mod %s", e.Operand, e.Value, e.Modulus)
}

func (e *NotInvertibleError) Unwrap() error {
	return ErrNotInvertible
}
