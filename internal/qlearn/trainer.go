package qlearn

import (
	"log/slog"
	"math/rand"

	"github.com/BkAsDrP/Soft-Kill-9000/internal/cosmos"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/reward"
)

// Trainer builds per-role policy tables by running independent training
// episodes against the reward calculator. Each episode is a single
// (scenario, action) trial: a uniform scenario draw with no successor
// state, so the Bellman update degenerates to a bandit-style rule that
// bootstraps off the same row's current maximum.
type Trainer struct {
	Gamma   float64 // discount factor, (0,1]
	Alpha   float64 // learning rate, (0,1]
	Epsilon float64 // exploration rate, [0,1]

	calc *reward.Calculator
	rng  *rand.Rand
}

// NewTrainer creates a trainer with its own seeded random source. A fixed
// seed makes Train bit-reproducible.
func NewTrainer(gamma, alpha, epsilon float64, calc *reward.Calculator, seed int64) *Trainer {
	return &Trainer{
		Gamma:   gamma,
		Alpha:   alpha,
		Epsilon: epsilon,
		calc:    calc,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Train runs the configured number of episodes for a role and returns the
// finished table. Callers must pair the table with the package-level
// Actions ordering at inference time.
func (t *Trainer) Train(role string, episodes int) *Table {
	table := NewTable()

	for ep := 0; ep < episodes; ep++ {
		state := t.rng.Intn(NumStates)

		// ε-greedy: explore a random action, else exploit the current row
		// maximum (first-index tie-break).
		var action int
		if t.rng.Float64() < t.Epsilon {
			action = t.rng.Intn(NumActions)
		} else {
			action = table.Best(state)
		}

		r := t.calc.Calculate(
			role,
			Actions[action],
			cosmos.Narratives[state],
			cosmos.Terrains[t.rng.Intn(len(cosmos.Terrains))],
			cosmos.WeatherConditions[t.rng.Intn(len(cosmos.WeatherConditions))],
		)

		// Single-step Bellman update. No transition: the "next state" is
		// the same row.
		old := table.Get(state, action)
		table.set(state, action, old+t.Alpha*(r+t.Gamma*table.maxQ(state)-old))
	}

	slog.Info("training complete",
		"role", role,
		"episodes", episodes,
		"gamma", t.Gamma,
		"alpha", t.Alpha,
		"epsilon", t.Epsilon,
	)
	return table
}
