// Package numtheory provides the arbitrary-precision integer primitives used by
// the discrete logarithm solver: greatest common divisor, integer square root,
// modular exponentiation and modular inverse.
//
// All functions treat their arguments as read-only and return freshly
// allocated values. Modular reduction always uses the Euclidean modulus, so
// reduced values are non-negative even for negative inputs.
package numtheory

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidArgument is returned when an input lies outside a primitive's domain.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
)

// GCD returns the non-negative greatest common divisor of a and b using the
// Euclidean algorithm. GCD(a, 0) is |a|.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)

	for y.Sign() != 0 {
		r := new(big.Int).Mod(x, y)
		x, y = y, r
	}

	return x.Abs(x)
}

// ExtendedGCD returns g = gcd(a, b) together with Bézout coefficients x and y
// such that a*x + b*y == g. g is never negative.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	lastRemainder, remainder := new(big.Int).Set(a), new(big.Int).Set(b)
	lastX, curX := big.NewInt(1), big.NewInt(0)
	lastY, curY := big.NewInt(0), big.NewInt(1)

	quotient := new(big.Int)
	tmp := new(big.Int)
	for remainder.Sign() != 0 {
		quotient.Div(lastRemainder, remainder)

		tmp.Mul(quotient, remainder)
		lastRemainder, remainder = remainder, new(big.Int).Sub(lastRemainder, tmp)

		tmp.Mul(quotient, curX)
		lastX, curX = curX, new(big.Int).Sub(lastX, tmp)

		tmp.Mul(quotient, curY)
		lastY, curY = curY, new(big.Int).Sub(lastY, tmp)
	}

	if lastRemainder.Sign() < 0 {
		lastRemainder.Neg(lastRemainder)
		lastX.Neg(lastX)
		lastY.Neg(lastY)
	}

	return lastRemainder, lastX, lastY
}

// IntegerSquareRoot returns floor(sqrt(square)) found by binary search over
// [1, square/2]. Perfect squares yield their exact root.
func IntegerSquareRoot(square *big.Int) (*big.Int, error) {
	if square.Sign() < 0 {
		return nil, fmt.Errorf("%w: square %s should not be less than zero", ErrInvalidArgument, square)
	}

	if square.Cmp(bigTwo) < 0 {
		return new(big.Int).Set(square), nil
	}

	lower := big.NewInt(1)
	upper := new(big.Int).Rsh(square, 1)

	midpoint := new(big.Int)
	midpointSquared := new(big.Int)
	for lower.Cmp(upper) <= 0 {
		midpoint.Add(lower, upper)
		midpoint.Rsh(midpoint, 1)
		midpointSquared.Mul(midpoint, midpoint)

		switch midpointSquared.Cmp(square) {
		case 0:
			return midpoint, nil
		case -1:
			lower.Add(midpoint, bigOne)
		default:
			upper.Sub(midpoint, bigOne)
		}
	}

	return upper, nil
}

// ModExp computes base^exponent mod modulus by square-and-multiply.
//
// A modulus of 1 yields 0, a zero exponent yields 1 (including 0^0) and a base
// congruent to 0 yields 0. Negative exponents and moduli below 1 are rejected;
// callers needing a negative power should invert the base with ModInverse.
func ModExp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus %s must be positive", ErrInvalidArgument, modulus)
	}
	if exponent.Sign() < 0 {
		return nil, fmt.Errorf("%w: exponent %s must not be negative", ErrInvalidArgument, exponent)
	}

	if modulus.Cmp(bigOne) == 0 {
		return big.NewInt(0), nil
	}
	if exponent.Sign() == 0 {
		return big.NewInt(1), nil
	}

	b := new(big.Int).Mod(base, modulus)
	if b.Sign() == 0 {
		return big.NewInt(0), nil
	}

	power := big.NewInt(1)
	for i, n := 0, exponent.BitLen(); i < n; i++ {
		if exponent.Bit(i) == 1 {
			power.Mul(power, b)
			power.Mod(power, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}

	return power, nil
}

// ModInverse returns y in [0, modulus) with base*y ≡ 1 (mod modulus).
// ok is false when no inverse exists: modulus < 1, base == 0, or base and
// modulus share a factor. Every residue is congruent mod 1, so the inverse
// modulo 1 is 0.
func ModInverse(base, modulus *big.Int) (inverse *big.Int, ok bool) {
	if modulus.Cmp(bigOne) == 0 {
		return big.NewInt(0), true
	}
	if modulus.Cmp(bigOne) < 0 || base.Sign() == 0 {
		return nil, false
	}

	reduced := new(big.Int).Mod(base, modulus)

	g, x, _ := ExtendedGCD(reduced, modulus)
	if g.Cmp(bigOne) != 0 {
		return nil, false
	}

	return x.Mod(x, modulus), true
}

// IsUnit reports whether a is invertible modulo n, i.e. gcd(a, n) == 1.
func IsUnit(a, n *big.Int) bool {
	return GCD(a, n).Cmp(bigOne) == 0
}

// Reduce returns a mod n in [0, n).
func Reduce(a, n *big.Int) *big.Int {
	if n.Sign() == 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Mod(a, new(big.Int).Abs(n))
}

// IsZero reports whether a is zero.
func IsZero(a *big.Int) bool {
	return a.Cmp(bigZero) == 0
}
