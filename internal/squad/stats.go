// Package squad provides the agent data model, action selection, and the
// per-timestep squad loop.
package squad

import "github.com/BkAsDrP/Soft-Kill-9000/internal/cosmos"

// Stat bounds. Every stat stays inside these after any modifier.
const (
	StatMin = 0
	StatMax = 110
)

// Stats is an agent's attribute block, each field bounded [0, 110].
type Stats struct {
	Strength     int `json:"strength"`
	Empathy      int `json:"empathy"`
	Intelligence int `json:"intelligence"`
	Mobility     int `json:"mobility"`
	Tactical     int `json:"tactical"`
}

// ApplySpecies returns a copy with the species delta applied and every
// field clamped back into bounds. Species modifiers are a one-time mixin
// at construction, not an ongoing effect.
func (s Stats) ApplySpecies(d cosmos.StatDelta) Stats {
	return Stats{
		Strength:     clampStat(s.Strength + d.Strength),
		Empathy:      clampStat(s.Empathy + d.Empathy),
		Intelligence: clampStat(s.Intelligence + d.Intelligence),
		Mobility:     clampStat(s.Mobility + d.Mobility),
		Tactical:     clampStat(s.Tactical + d.Tactical),
	}
}

// Dominant returns the highest stat's preferred action. Ties resolve in
// declared field order: strength, empathy, intelligence, mobility, tactical.
func (s Stats) Dominant() string {
	type entry struct {
		value  int
		action string
	}
	// Static dominant-stat → action mapping; the rule-based fallback is
	// table-driven for the same auditability as the Q-table path.
	entries := []entry{
		{s.Strength, "advance"},
		{s.Empathy, "negotiate"},
		{s.Intelligence, "stabilise"},
		{s.Mobility, "withdraw"},
		{s.Tactical, "defend"},
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.value > best.value {
			best = e
		}
	}
	return best.action
}

func clampStat(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}
