// Package config provides validated simulation configuration. The core
// trusts these bounds: validation runs here, before anything reaches the
// simulator.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultBaseStat is the base value for any stat an agent entry omits.
const defaultBaseStat = 60

// AgentConfig describes one squad member. Base stats default to 60.
type AgentConfig struct {
	Role             string `yaml:"role" json:"role"`
	Species          string `yaml:"species" json:"species"`
	BaseStrength     int    `yaml:"base_strength" json:"base_strength"`
	BaseEmpathy      int    `yaml:"base_empathy" json:"base_empathy"`
	BaseIntelligence int    `yaml:"base_intelligence" json:"base_intelligence"`
	BaseMobility     int    `yaml:"base_mobility" json:"base_mobility"`
	BaseTactical     int    `yaml:"base_tactical" json:"base_tactical"`
}

// rawAgentConfig distinguishes omitted stats (nil) from explicit zeros so
// omitted fields can take the 60 default instead of loading as 0.
type rawAgentConfig struct {
	Role             string `yaml:"role" json:"role"`
	Species          string `yaml:"species" json:"species"`
	BaseStrength     *int   `yaml:"base_strength" json:"base_strength"`
	BaseEmpathy      *int   `yaml:"base_empathy" json:"base_empathy"`
	BaseIntelligence *int   `yaml:"base_intelligence" json:"base_intelligence"`
	BaseMobility     *int   `yaml:"base_mobility" json:"base_mobility"`
	BaseTactical     *int   `yaml:"base_tactical" json:"base_tactical"`
}

func (r rawAgentConfig) toConfig() AgentConfig {
	return AgentConfig{
		Role:             r.Role,
		Species:          r.Species,
		BaseStrength:     statOrDefault(r.BaseStrength),
		BaseEmpathy:      statOrDefault(r.BaseEmpathy),
		BaseIntelligence: statOrDefault(r.BaseIntelligence),
		BaseMobility:     statOrDefault(r.BaseMobility),
		BaseTactical:     statOrDefault(r.BaseTactical),
	}
}

func statOrDefault(v *int) int {
	if v == nil {
		return defaultBaseStat
	}
	return *v
}

// UnmarshalYAML decodes an agent entry, defaulting omitted stats to 60.
func (a *AgentConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw rawAgentConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*a = raw.toConfig()
	return nil
}

// UnmarshalJSON decodes an agent entry, defaulting omitted stats to 60.
func (a *AgentConfig) UnmarshalJSON(data []byte) error {
	var raw rawAgentConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = raw.toConfig()
	return nil
}

// MissionConfig sets mission parameters. Empty scenario fields are drawn
// at random during setup.
type MissionConfig struct {
	Galaxy        string `yaml:"galaxy" json:"galaxy"`
	Planet        string `yaml:"planet" json:"planet"`
	Terrain       string `yaml:"terrain" json:"terrain"`
	Weather       string `yaml:"weather" json:"weather"`
	Scenario      string `yaml:"scenario" json:"scenario"`
	NumTimesteps  int    `yaml:"num_timesteps" json:"num_timesteps"`
	EthicsEnabled bool   `yaml:"ethics_enabled" json:"ethics_enabled"`
}

// QLearningConfig sets the training hyperparameters.
type QLearningConfig struct {
	Episodes int     `yaml:"episodes" json:"episodes"`
	Gamma    float64 `yaml:"gamma" json:"gamma"`
	Alpha    float64 `yaml:"alpha" json:"alpha"`
	Epsilon  float64 `yaml:"epsilon" json:"epsilon"`
}

// Config is the complete simulation configuration.
type Config struct {
	Agents    []AgentConfig   `yaml:"agents" json:"agents"`
	Mission   MissionConfig   `yaml:"mission" json:"mission"`
	QLearning QLearningConfig `yaml:"q_learning" json:"q_learning"`
	Seed      int64           `yaml:"seed" json:"seed"`
}

// defaultSquad pairs each default role with its canonical species.
var defaultSquad = []AgentConfig{
	{Role: "Longsight", Species: "Vyr'khai"},
	{Role: "Lifebinder", Species: "Lumenari"},
	{Role: "Specter", Species: "Zephryl"},
	{Role: "Whisper", Species: "Mycelian"},
	{Role: "Archivist", Species: "Ferroth"},
	{Role: "Brawler", Species: "Aetherborn"},
	{Role: "Armsmaster", Species: "Kinetari"},
	{Role: "Explosives Expert", Species: "Verdan"},
}

// Default returns the full eight-role squad with standard hyperparameters.
func Default() Config {
	agents := make([]AgentConfig, len(defaultSquad))
	for i, a := range defaultSquad {
		a.BaseStrength = 60
		a.BaseEmpathy = 60
		a.BaseIntelligence = 60
		a.BaseMobility = 60
		a.BaseTactical = 60
		agents[i] = a
	}
	return Config{
		Agents: agents,
		Mission: MissionConfig{
			NumTimesteps:  60,
			EthicsEnabled: true,
		},
		QLearning: QLearningConfig{
			Episodes: 1000,
			Gamma:    0.90,
			Alpha:    0.3,
			Epsilon:  0.2,
		},
		Seed: 42,
	}
}

// Load reads a YAML config file over the defaults and validates it.
// Fields omitted from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate enforces the documented bounds.
func (c Config) Validate() error {
	if len(c.Agents) < 1 {
		return fmt.Errorf("at least one agent must be configured")
	}
	for i, a := range c.Agents {
		if a.Role == "" {
			return fmt.Errorf("agent %d: role is required", i)
		}
		for name, v := range map[string]int{
			"base_strength":     a.BaseStrength,
			"base_empathy":      a.BaseEmpathy,
			"base_intelligence": a.BaseIntelligence,
			"base_mobility":     a.BaseMobility,
			"base_tactical":     a.BaseTactical,
		} {
			if v < 0 || v > 110 {
				return fmt.Errorf("agent %d (%s): %s must be in [0, 110], got %d", i, a.Role, name, v)
			}
		}
	}
	if c.Mission.NumTimesteps < 10 || c.Mission.NumTimesteps > 500 {
		return fmt.Errorf("num_timesteps must be in [10, 500], got %d", c.Mission.NumTimesteps)
	}
	if c.QLearning.Episodes < 100 || c.QLearning.Episodes > 10000 {
		return fmt.Errorf("episodes must be in [100, 10000], got %d", c.QLearning.Episodes)
	}
	for name, v := range map[string]float64{
		"gamma":   c.QLearning.Gamma,
		"alpha":   c.QLearning.Alpha,
		"epsilon": c.QLearning.Epsilon,
	} {
		if v < 0.0 || v > 1.0 {
			return fmt.Errorf("%s must be in [0.0, 1.0], got %g", name, v)
		}
	}
	return nil
}
