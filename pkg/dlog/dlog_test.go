package dlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math/big"
	"sync"
	"testing"

	"github.com/Davincible/bsgs/pkg/numtheory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bi(v int64) *big.Int {
	return big.NewInt(v)
}

// bruteForce returns the smallest x in [0, n-1) with alpha^x ≡ beta (mod n).
func bruteForce(alpha, beta, n int64) (int64, bool) {
	target := ((beta % n) + n) % n
	power := int64(1)
	a := ((alpha % n) + n) % n
	for x := int64(0); x < n-1; x++ {
		if power == target {
			return x, true
		}
		power = power * a % n
	}
	return 0, false
}

func TestFindExponentialIndex(t *testing.T) {
	tests := []struct {
		name           string
		alpha, beta, n int64
		wantFound      bool
		wantExponent   int64
	}{
		{"Primitive root mod 7", 5, 3, 7, true, 5},
		{"Primitive root mod 29", 2, 22, 29, true, 26},
		{"Power of two mod 29", 2, 20, 29, true, 24},
		{"Beta is one", 2, 1, 5, true, 0},
		{"Beta congruent to one", 3, 12, 11, true, 0},
		{"Beta outside subgroup", 4, 3, 7, false, 0},
		{"Alpha is one", 1, 3, 7, false, 0},
		{"Alpha congruent to one", 8, 3, 7, false, 0},
		{"Negative alpha", -2, 4, 7, true, 2},
		{"Negative beta", 3, -1, 7, true, 3},
		{"Modulus two", 1, 1, 2, true, 0},
		{"Perfect square order", 2, 8, 17, true, 3},
		{"Unreduced operands", 12, 10, 7, true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FindExponentialIndex(bi(tt.alpha), bi(tt.beta), bi(tt.n))
			require.NoError(t, err)
			require.Equal(t, tt.wantFound, result.Found, "result %s", result)

			if !tt.wantFound {
				assert.Nil(t, result.Exponent)
				return
			}

			assert.Equal(t, tt.wantExponent, result.Exponent.Int64())

			ok, err := Verify(bi(tt.alpha), result.Exponent, bi(tt.beta), bi(tt.n))
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestFindExponentialIndexErrors(t *testing.T) {
	tests := []struct {
		name        string
		alpha, beta *big.Int
		n           *big.Int
		wantErr     error
		wantOperand string
	}{
		{"Modulus one", bi(2), bi(1), bi(1), ErrInvalidModulus, ""},
		{"Modulus zero", bi(2), bi(1), bi(0), ErrInvalidModulus, ""},
		{"Negative modulus", bi(2), bi(1), bi(-7), ErrInvalidModulus, ""},
		{"Alpha shares factor", bi(6), bi(2), bi(4), ErrNotInvertible, OperandAlpha},
		{"Alpha zero", bi(0), bi(0), bi(5), ErrNotInvertible, OperandAlpha},
		{"Alpha multiple of modulus", bi(14), bi(3), bi(7), ErrNotInvertible, OperandAlpha},
		{"Beta shares factor", bi(2), bi(6), bi(9), ErrNotInvertible, OperandBeta},
		{"Beta zero", bi(3), bi(0), bi(7), ErrNotInvertible, OperandBeta},
		{"Nil alpha", nil, bi(1), bi(7), ErrNilOperand, ""},
		{"Nil modulus", bi(3), bi(1), nil, ErrNilOperand, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FindExponentialIndex(tt.alpha, tt.beta, tt.n)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, result.Found)

			if tt.wantOperand != "" {
				var nie *NotInvertibleError
				require.True(t, errors.As(err, &nie))
				assert.Equal(t, tt.wantOperand, nie.Operand)
				assert.Contains(t, err.Error(), tt.wantOperand)
			}
		})
	}
}

func TestFindExponentialIndexMatchesBruteForce(t *testing.T) {
	primes := []int64{3, 5, 7, 11, 13, 17, 29, 31, 37, 101, 257}

	for _, p := range primes {
		for alpha := int64(1); alpha < p; alpha++ {
			for beta := int64(1); beta < p; beta++ {
				result, err := FindExponentialIndex(bi(alpha), bi(beta), bi(p))
				require.NoError(t, err)

				want, found := bruteForce(alpha, beta, p)
				require.Equal(t, found, result.Found, "alpha=%d beta=%d p=%d", alpha, beta, p)
				if found {
					require.Equal(t, want, result.Exponent.Int64(), "alpha=%d beta=%d p=%d", alpha, beta, p)
				}
			}
		}
	}
}

func TestFindExponentialIndexLargePrime(t *testing.T) {
	p := bi(2147483647) // 2^31 - 1
	alpha := bi(7)
	x := bi(123456789)

	beta, err := numtheory.ModExp(alpha, x, p)
	require.NoError(t, err)

	result, err := FindExponentialIndex(alpha, beta, p)
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.LessOrEqual(t, result.Exponent.Cmp(x), 0)

	ok, err := Verify(alpha, result.Exponent, beta, p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFindExponentialIndexIsDeterministic(t *testing.T) {
	first, err := FindExponentialIndex(bi(5), bi(3), bi(7))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := FindExponentialIndex(bi(5), bi(3), bi(7))
		require.NoError(t, err)
		assert.Equal(t, first.String(), again.String())
	}
}

func TestFindExponentialIndexDoesNotMutateInputs(t *testing.T) {
	alpha, beta, n := bi(12), bi(-4), bi(7)
	_, err := FindExponentialIndex(alpha, beta, n)
	require.NoError(t, err)

	assert.Equal(t, int64(12), alpha.Int64())
	assert.Equal(t, int64(-4), beta.Int64())
	assert.Equal(t, int64(7), n.Int64())
}

func TestSolverConcurrentUse(t *testing.T) {
	solver := NewSolver(nil)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	errs := make([]error, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = solver.Solve(bi(2), bi(int64(i%28)+1), bi(29))
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		require.NoError(t, errs[i])
		require.True(t, r.Found)
		ok, err := Verify(bi(2), r.Exponent, bi(int64(i%28)+1), bi(29))
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestSolverLogsPhases(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	result, err := NewSolver(logger).Solve(bi(5), bi(3), bi(7))
	require.NoError(t, err)
	require.True(t, result.Found)

	out := buf.String()
	assert.Contains(t, out, "Baby steps complete")
	assert.Contains(t, out, `"step_bound":3`)
	assert.Contains(t, out, "Giant steps complete")
}

func TestTrivialCase(t *testing.T) {
	tests := []struct {
		name        string
		alpha, beta int64
		wantDone    bool
		want        string
	}{
		{"Beta one", 3, 1, true, "0"},
		{"Zero alpha nonzero beta", 0, 4, true, "no solution"},
		{"Zero alpha zero beta", 0, 0, true, "1"},
		{"Alpha one", 1, 4, true, "no solution"},
		{"General", 3, 4, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, done := trivialCase(bi(tt.alpha), bi(tt.beta))
			assert.Equal(t, tt.wantDone, done)
			if tt.wantDone {
				assert.Equal(t, tt.want, result.String())
			}
		})
	}
}

func TestStepBound(t *testing.T) {
	want := map[int64]int64{1: 1, 2: 2, 4: 2, 5: 3, 6: 3, 9: 3, 10: 4, 16: 4, 28: 6, 100: 10, 101: 11}
	for order, m := range want {
		got, err := stepBound(bi(order))
		require.NoError(t, err)
		assert.Equal(t, m, got.Int64(), "order %d", order)
	}
}

func TestBabyStepTableFirstWriteWins(t *testing.T) {
	table := NewBabyStepTable(4)

	assert.True(t, table.Insert(bi(6), bi(1)))
	assert.False(t, table.Insert(bi(6), bi(3)))
	assert.True(t, table.Insert(bi(0), bi(2)))

	step, ok := table.Lookup(bi(6))
	require.True(t, ok)
	assert.Equal(t, int64(1), step.Int64())

	step, ok = table.Lookup(bi(0))
	require.True(t, ok)
	assert.Equal(t, int64(2), step.Int64())

	_, ok = table.Lookup(bi(5))
	assert.False(t, ok)
	assert.Equal(t, 2, table.Len())
}

func TestBabyStepsSmallOrder(t *testing.T) {
	// 2 has order 3 mod 7, so the walk 1, 2, 4, 1, 2 repeats.
	table := babySteps(bi(2), bi(7), bi(5))
	assert.Equal(t, 3, table.Len())

	for element, want := range map[int64]int64{1: 0, 2: 1, 4: 2} {
		step, ok := table.Lookup(bi(element))
		require.True(t, ok)
		assert.Equal(t, want, step.Int64(), "element %d", element)
	}
}

func TestBabyStepTableCopiesStep(t *testing.T) {
	table := NewBabyStepTable(1)
	step := bi(4)
	table.Insert(bi(9), step)
	step.SetInt64(99)

	got, ok := table.Lookup(bi(9))
	require.True(t, ok)
	assert.Equal(t, int64(4), got.Int64())
}

func TestResult(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "no solution", NoSolution().String())
		assert.Equal(t, "0", Found(bi(0)).String())
		assert.Equal(t, "42", Found(bi(42)).String())
	})

	t.Run("JSON", func(t *testing.T) {
		data, err := json.Marshal(Found(bi(24)))
		require.NoError(t, err)
		assert.JSONEq(t, `{"found":true,"exponent":"24"}`, string(data))

		data, err = json.Marshal(NoSolution())
		require.NoError(t, err)
		assert.JSONEq(t, `{"found":false,"exponent":null}`, string(data))
	})

	t.Run("Found copies value", func(t *testing.T) {
		x := bi(7)
		r := Found(x)
		x.SetInt64(8)
		assert.Equal(t, int64(7), r.Exponent.Int64())
	})
}

func TestVerify(t *testing.T) {
	ok, err := Verify(bi(5), bi(5), bi(3), bi(7))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(bi(5), bi(4), bi(3), bi(7))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Verify(bi(5), bi(-1), bi(3), bi(7))
	assert.ErrorIs(t, err, numtheory.ErrInvalidArgument)

	_, err = Verify(bi(5), bi(1), bi(3), bi(0))
	assert.ErrorIs(t, err, ErrInvalidModulus)

	_, err = Verify(nil, bi(1), bi(3), bi(7))
	assert.ErrorIs(t, err, ErrNilOperand)
}

func TestNotInvertibleErrorMessages(t *testing.T) {
	_, err := FindExponentialIndex(bi(6), bi(3), bi(4))
	assert.EqualError(t, err, "alpha 6 not invertible mod 4")

	_, err = FindExponentialIndex(bi(3), bi(2), bi(4))
	assert.EqualError(t, err, "beta 2 lies outside the multiplicative group mod 4")
}
