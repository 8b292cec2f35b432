// Package mission orchestrates the full simulation lifecycle: scenario
// generation, per-role policy training, squad construction, the timestep
// loop, and result aggregation.
package mission

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/BkAsDrP/Soft-Kill-9000/internal/config"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/cosmos"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/qlearn"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/reward"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/squad"
)

// Phase tracks the simulator lifecycle.
type Phase int

const (
	PhaseNew Phase = iota
	PhaseReady
	PhaseComplete
)

var (
	// ErrNotSetup is returned by Run before a successful Setup.
	ErrNotSetup = errors.New("mission: run called before setup")
	// ErrEmptyRoster is returned by Setup when no agents are configured.
	ErrEmptyRoster = errors.New("mission: roster has no agents")
)

// Simulator drives one mission from configuration to result.
//
// Calling Run again without a new Setup reuses the already-trained tables
// and keeps accumulating agent reward and trajectory state; callers wanting
// a fresh mission must call Setup again.
type Simulator struct {
	cfg      config.Config
	calc     *reward.Calculator
	scenario cosmos.Scenario
	tables   map[string]*qlearn.Table
	manager  *squad.Manager
	phase    Phase
}

// NewSimulator creates a simulator for a validated configuration.
func NewSimulator(cfg config.Config) *Simulator {
	return &Simulator{
		cfg:  cfg,
		calc: reward.NewCalculator(cfg.Mission.EthicsEnabled),
	}
}

// Phase reports the current lifecycle phase.
func (s *Simulator) Phase() Phase {
	return s.phase
}

// Scenario returns the generated scenario. Zero before Setup.
func (s *Simulator) Scenario() cosmos.Scenario {
	return s.scenario
}

// Setup generates the scenario, trains one policy table per distinct role,
// and assembles the squad. Training for different roles is independent and
// runs in parallel; each role gets its own derived seed, so the parallel
// schedule never changes results.
func (s *Simulator) Setup() error {
	if len(s.cfg.Agents) == 0 {
		return ErrEmptyRoster
	}

	rng := rand.New(rand.NewSource(s.cfg.Seed))
	s.scenario = cosmos.GenerateWith(rng, cosmos.Overrides{
		Galaxy:    s.cfg.Mission.Galaxy,
		Planet:    s.cfg.Mission.Planet,
		Terrain:   s.cfg.Mission.Terrain,
		Weather:   s.cfg.Mission.Weather,
		Narrative: s.cfg.Mission.Scenario,
	})
	slog.Info("scenario ready",
		"galaxy", s.scenario.Galaxy,
		"planet", s.scenario.Planet,
		"terrain", s.scenario.Terrain,
		"weather", s.scenario.Weather,
	)

	// Distinct roles in first-appearance roster order.
	var roles []string
	seen := make(map[string]bool)
	for _, a := range s.cfg.Agents {
		if !seen[a.Role] {
			seen[a.Role] = true
			roles = append(roles, a.Role)
		}
	}

	tables := make([]*qlearn.Table, len(roles))
	var g errgroup.Group
	for i, role := range roles {
		i, role := i, role
		g.Go(func() error {
			trainer := qlearn.NewTrainer(
				s.cfg.QLearning.Gamma,
				s.cfg.QLearning.Alpha,
				s.cfg.QLearning.Epsilon,
				s.calc,
				s.cfg.Seed+1000*int64(i+1),
			)
			tables[i] = trainer.Train(role, s.cfg.QLearning.Episodes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("train policies: %w", err)
	}

	s.tables = make(map[string]*qlearn.Table, len(roles))
	for i, role := range roles {
		s.tables[role] = tables[i]
	}

	// Duplicate roles get numbered names so per-agent results stay distinct.
	roleCount := make(map[string]int)
	for _, a := range s.cfg.Agents {
		roleCount[a.Role]++
	}
	roleSeen := make(map[string]int)
	agents := make([]*squad.Agent, 0, len(s.cfg.Agents))
	for _, ac := range s.cfg.Agents {
		name := ac.Role
		if roleCount[ac.Role] > 1 {
			roleSeen[ac.Role]++
			name = fmt.Sprintf("%s #%d", ac.Role, roleSeen[ac.Role])
		}
		agents = append(agents, squad.NewAgent(name, ac.Role, ac.Species, squad.Stats{
			Strength:     ac.BaseStrength,
			Empathy:      ac.BaseEmpathy,
			Intelligence: ac.BaseIntelligence,
			Mobility:     ac.BaseMobility,
			Tactical:     ac.BaseTactical,
		}))
	}

	s.manager = squad.NewManager(agents, s.cfg.Seed+777)
	s.phase = PhaseReady

	slog.Info("setup complete", "agents", len(agents), "roles_trained", len(roles))
	return nil
}

// Run executes the configured number of timesteps and returns the
// aggregated result. Fails fast with ErrNotSetup before Setup.
func (s *Simulator) Run() (*Result, error) {
	if s.phase == PhaseNew {
		return nil, ErrNotSetup
	}

	ticks := s.cfg.Mission.NumTimesteps
	log := make([]LogEntry, 0, ticks*len(s.manager.Agents()))
	history := make(map[string][]float64, len(s.manager.Agents()))

	for tick := 0; tick < ticks; tick++ {
		steps := s.manager.ExecuteTimestep(tick, s.scenario, s.tables, s.calc)
		for _, st := range steps {
			log = append(log, LogEntry{
				Tick:   tick,
				Name:   st.Name,
				Role:   st.Role,
				Action: st.Action,
				Reward: st.Reward,
				Banter: st.Banter,
			})
		}
		for _, a := range s.manager.Agents() {
			history[a.Name] = append(history[a.Name], a.CumulativeReward)
		}
		if (tick+1)%10 == 0 {
			slog.Debug("mission progress", "tick", tick+1, "of", ticks)
		}
	}

	finals := s.manager.CumulativeRewards()
	var total float64
	for _, r := range finals {
		total += r
	}

	s.phase = PhaseComplete
	slog.Info("mission complete", "timesteps", ticks, "total_reward", fmt.Sprintf("%.2f", total))

	return &Result{
		Scenario: s.scenario,
		Config: ResultConfig{
			NumTimesteps:  ticks,
			EthicsEnabled: s.cfg.Mission.EthicsEnabled,
			Episodes:      s.cfg.QLearning.Episodes,
			Seed:          s.cfg.Seed,
		},
		AgentStats:    s.manager.SquadStats(),
		FinalRewards:  finals,
		TotalReward:   total,
		RewardHistory: history,
		Trajectories:  s.manager.Trajectories(),
		Log:           log,
	}, nil
}
