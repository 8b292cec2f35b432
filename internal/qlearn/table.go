// Package qlearn provides the tabular Q-learning trainer and its policy
// tables. One table is trained per role; after training a table is
// read-only and may be shared by reference across agents of that role.
package qlearn

import "github.com/BkAsDrP/Soft-Kill-9000/internal/cosmos"

// Actions is the fixed action ordering. Column indices of every table
// follow this ordering for the lifetime of the process; training and
// inference must use it verbatim.
var Actions = []string{"advance", "defend", "stabilise", "negotiate", "withdraw"}

// NumStates and NumActions fix the table shape: one row per scenario
// template, one column per action.
var (
	NumStates  = len(cosmos.ScenarioKeys)
	NumActions = len(Actions)
)

// Table is a dense Q-value table indexed by (scenario index, action index).
type Table struct {
	q [][]float64
}

// NewTable creates a zeroed table of the fixed shape.
func NewTable() *Table {
	q := make([][]float64, NumStates)
	for i := range q {
		q[i] = make([]float64, NumActions)
	}
	return &Table{q: q}
}

// Get returns the Q-value for a (state, action) pair.
func (t *Table) Get(state, action int) float64 {
	return t.q[state][action]
}

// set updates one entry. Unexported: only the trainer writes.
func (t *Table) set(state, action int, v float64) {
	t.q[state][action] = v
}

// Best returns the action index with the maximum Q-value in the state's
// row, breaking ties by first index.
func (t *Table) Best(state int) int {
	best := 0
	for a := 1; a < NumActions; a++ {
		if t.q[state][a] > t.q[state][best] {
			best = a
		}
	}
	return best
}

// maxQ returns the maximum Q-value in a state's row.
func (t *Table) maxQ(state int) float64 {
	return t.q[state][t.Best(state)]
}

// Rows returns a deep copy of the table values for export.
func (t *Table) Rows() [][]float64 {
	out := make([][]float64, len(t.q))
	for i, row := range t.q {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
