package squad

import (
	"log/slog"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/BkAsDrP/Soft-Kill-9000/internal/cosmos"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/qlearn"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/reward"
)

// Step is one agent's outcome within a timestep.
type Step struct {
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Action string  `json:"action"`
	Reward float64 `json:"reward"`
	Banter string  `json:"banter"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Manager owns the roster and drives one synchronized timestep across it.
// Roster order is insertion order and fixes the canonical log order.
type Manager struct {
	agents []*Agent
	drift  opensimplex.Noise
	rng    *rand.Rand
}

// NewManager creates a squad manager over the roster. The seed feeds the
// trajectory drift field and banter draws; a fixed seed reproduces both.
func NewManager(agents []*Agent, seed int64) *Manager {
	slog.Info("squad assembled", "agents", len(agents))
	return &Manager{
		agents: agents,
		drift:  opensimplex.NewNormalized(seed),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Agents returns the roster in canonical order.
func (m *Manager) Agents() []*Agent {
	return m.agents
}

// ExecuteTimestep runs one tick: every agent, in roster order, chooses an
// action against the shared scenario, is scored independently, and has its
// reward, position, and history updated. Returns one Step per agent in
// roster order.
func (m *Manager) ExecuteTimestep(
	tick int,
	scn cosmos.Scenario,
	tables map[string]*qlearn.Table,
	calc *reward.Calculator,
) []Step {
	steps := make([]Step, 0, len(m.agents))

	for i, a := range m.agents {
		action := a.ChooseAction(scn.Narrative, tables[a.Role])

		r := calc.Calculate(a.Role, action, scn.Narrative, scn.Terrain, scn.Weather)
		// Stronger agents convert the same tactical outcome into more
		// effect on the ground.
		r *= 0.5 + float64(a.Stats.Strength)/200.0

		a.UpdateReward(tick, action, r)

		// Smooth lateral drift: each agent tracks its own line through the
		// noise field, deterministic for a given seed.
		drift := m.drift.Eval2(float64(i)*7.3, float64(tick)*0.1)*2 - 1
		a.UpdatePosition(action, drift)

		steps = append(steps, Step{
			Name:   a.Name,
			Role:   a.Role,
			Action: action,
			Reward: r,
			Banter: cosmos.Banter(a.Role, m.rng),
			X:      a.X,
			Y:      a.Y,
		})
	}

	return steps
}

// SquadStats snapshots every agent's stat block, keyed by agent name.
func (m *Manager) SquadStats() map[string]Stats {
	out := make(map[string]Stats, len(m.agents))
	for _, a := range m.agents {
		out[a.Name] = a.Stats
	}
	return out
}

// CumulativeRewards returns final rewards keyed by agent name.
func (m *Manager) CumulativeRewards() map[string]float64 {
	out := make(map[string]float64, len(m.agents))
	for _, a := range m.agents {
		out[a.Name] = a.CumulativeReward
	}
	return out
}

// Trajectories returns each agent's movement path keyed by agent name.
func (m *Manager) Trajectories() map[string][]Point {
	out := make(map[string][]Point, len(m.agents))
	for _, a := range m.agents {
		out[a.Name] = a.Trajectory
	}
	return out
}
