package mission

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BkAsDrP/Soft-Kill-9000/internal/cosmos"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/squad"
)

// LogEntry is one agent's record within one timestep. The log across a
// mission is ordered: tick-major, roster order within a tick.
type LogEntry struct {
	Tick   int     `json:"tick"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Action string  `json:"action"`
	Reward float64 `json:"reward"`
	Banter string  `json:"banter,omitempty"`
}

// ResultConfig echoes the parameters the mission ran with.
type ResultConfig struct {
	NumTimesteps  int   `json:"num_timesteps"`
	EthicsEnabled bool  `json:"ethics_enabled"`
	Episodes      int   `json:"q_learning_episodes"`
	Seed          int64 `json:"seed"`
}

// Result is the aggregated mission output. Built once by Run, never
// mutated afterward; everything here is plain strings, numbers, and lists,
// so JSON export is lossless.
type Result struct {
	Scenario      cosmos.Scenario          `json:"scenario"`
	Config        ResultConfig             `json:"config"`
	AgentStats    map[string]squad.Stats   `json:"agent_stats"`
	FinalRewards  map[string]float64       `json:"final_rewards"`
	TotalReward   float64                  `json:"total_reward"`
	RewardHistory map[string][]float64     `json:"reward_history"`
	Trajectories  map[string][]squad.Point `json:"trajectories"`
	Log           []LogEntry               `json:"mission_log"`
}

// WriteJSON exports the result to a file.
func (r *Result) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
