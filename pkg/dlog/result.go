package dlog

import (
	"encoding/json"
	"math/big"
)

// Result is the outcome of a discrete logarithm search. A search that
// finishes without a match is not an error: Found is false and Exponent is nil.
type Result struct {
	Found    bool
	Exponent *big.Int
}

// Found returns a successful result holding a copy of x.
func Found(x *big.Int) Result {
	return Result{Found: true, Exponent: new(big.Int).Set(x)}
}

// NoSolution returns the result for a search that proved no exponent exists.
func NoSolution() Result {
	return Result{}
}

func (r Result) String() string {
	if !r.Found {
		return "no solution"
	}
	return r.Exponent.String()
}

// MarshalJSON encodes the exponent as a decimal string so that values wider
// than 53 bits survive JSON consumers.
func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Found    bool    `json:"found"`
		Exponent *string `json:"exponent"`
	}{Found: r.Found}

	if r.Found {
		s := r.Exponent.String()
		out.Exponent = &s
	}

	return json.Marshal(out)
}
