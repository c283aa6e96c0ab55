package dlog

import "math/big"

// BabyStepTable maps a group element α^j to the smallest j recorded for it.
type BabyStepTable struct {
	// big.Int is not comparable, so entries are keyed by the element's
	// big-endian bytes. Elements are reduced and non-negative, which keeps
	// the encoding unique.
	steps map[string]*big.Int
}

// NewBabyStepTable returns an empty table sized for hint entries.
func NewBabyStepTable(hint int) *BabyStepTable {
	if hint < 0 {
		hint = 0
	}
	return &BabyStepTable{steps: make(map[string]*big.Int, hint)}
}

// Insert records step for element unless element is already present.
// It reports whether the entry was added.
func (t *BabyStepTable) Insert(element, step *big.Int) bool {
	key := string(element.Bytes())
	if _, exists := t.steps[key]; exists {
		return false
	}
	t.steps[key] = new(big.Int).Set(step)
	return true
}

// Lookup returns the step recorded for element.
func (t *BabyStepTable) Lookup(element *big.Int) (*big.Int, bool) {
	step, ok := t.steps[string(element.Bytes())]
	return step, ok
}

// Len returns the number of distinct elements in the table.
func (t *BabyStepTable) Len() int {
	return len(t.steps)
}
