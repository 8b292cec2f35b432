package squad

import (
	"log/slog"

	"github.com/BkAsDrP/Soft-Kill-9000/internal/cosmos"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/qlearn"
)

// Record is one entry of an agent's action history.
type Record struct {
	Tick   int     `json:"tick"`
	Action string  `json:"action"`
	Reward float64 `json:"reward"`
}

// Point is a trajectory sample in the unit mission square.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Agent is one squad member: identity, derived stats, mutable position and
// reward state. Agents live for exactly one simulator run.
type Agent struct {
	Name        string  `json:"name"` // disambiguates duplicate roles
	Role        string  `json:"role"`
	Species     string  `json:"species"`
	Description string  `json:"description"`
	Stats       Stats   `json:"stats"`

	X, Y             float64  `json:"-"`
	Trajectory       []Point  `json:"trajectory"`
	CumulativeReward float64  `json:"cumulative_reward"`
	History          []Record `json:"history"`
}

// NewAgent builds an agent from base stats plus the species modifier,
// starting at the centre of the mission square.
func NewAgent(name, role, species string, base Stats) *Agent {
	final := base
	if delta, ok := cosmos.SpeciesModifiers[species]; ok {
		final = base.ApplySpecies(delta)
	}
	a := &Agent{
		Name:        name,
		Role:        role,
		Species:     species,
		Description: cosmos.RoleDescriptions[role],
		Stats:       final,
		X:           0.5,
		Y:           0.5,
	}
	a.Trajectory = []Point{{X: a.X, Y: a.Y}}
	slog.Debug("agent created", "name", name, "role", role, "species", species)
	return a
}

// ChooseAction selects an action for the narrative. With a trained table,
// the narrative is mapped to its scenario row and the row maximum wins
// (first-index tie-break). Without a table, or when the narrative matches
// no known template, the dominant-stat rule decides. Pure selection: the
// caller applies reward and position updates.
func (a *Agent) ChooseAction(narrative string, table *qlearn.Table) string {
	if table != nil {
		if state, ok := cosmos.ScenarioIndex(narrative); ok {
			return qlearn.Actions[table.Best(state)]
		}
	}
	return a.Stats.Dominant()
}

// actionVectors are the fixed per-action movement directions in the unit
// square. Negotiating holds position; drift still applies.
var actionVectors = map[string]Point{
	"advance":   {X: 1, Y: 0},
	"withdraw":  {X: -1, Y: 0},
	"stabilise": {X: 0, Y: 1},
	"defend":    {X: 0, Y: -1},
	"negotiate": {X: 0, Y: 0},
}

// UpdatePosition moves the agent one step: the action's direction scaled
// by mobility, plus a lateral drift supplied by the manager's noise field.
// Positions clamp to the unit square.
func (a *Agent) UpdatePosition(action string, drift float64) {
	step := float64(a.Stats.Mobility) / 200.0 * 0.1
	dir := actionVectors[action]

	a.X = clampUnit(a.X + dir.X*step + drift*step)
	a.Y = clampUnit(a.Y + dir.Y*step - drift*step)
	a.Trajectory = append(a.Trajectory, Point{X: a.X, Y: a.Y})
}

// UpdateReward accumulates a timestep reward and appends to the history.
func (a *Agent) UpdateReward(tick int, action string, r float64) {
	a.CumulativeReward += r
	a.History = append(a.History, Record{Tick: tick, Action: action, Reward: r})
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
