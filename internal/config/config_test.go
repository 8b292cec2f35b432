package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if len(cfg.Agents) != 8 {
		t.Fatalf("expected 8 default agents, got %d", len(cfg.Agents))
	}
	if !cfg.Mission.EthicsEnabled {
		t.Fatal("ethics should default to enabled")
	}
}

func TestValidateBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no agents", func(c *Config) { c.Agents = nil }},
		{"missing role", func(c *Config) { c.Agents[0].Role = "" }},
		{"stat too high", func(c *Config) { c.Agents[0].BaseStrength = 111 }},
		{"stat negative", func(c *Config) { c.Agents[0].BaseEmpathy = -1 }},
		{"timesteps too low", func(c *Config) { c.Mission.NumTimesteps = 9 }},
		{"timesteps too high", func(c *Config) { c.Mission.NumTimesteps = 501 }},
		{"episodes too low", func(c *Config) { c.QLearning.Episodes = 99 }},
		{"episodes too high", func(c *Config) { c.QLearning.Episodes = 10001 }},
		{"gamma out of range", func(c *Config) { c.QLearning.Gamma = 1.5 }},
		{"alpha negative", func(c *Config) { c.QLearning.Alpha = -0.1 }},
		{"epsilon out of range", func(c *Config) { c.QLearning.Epsilon = 2 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mission.yaml")
	doc := `
agents:
  - role: Longsight
    species: Vyr'khai
    base_strength: 70
    base_empathy: 60
    base_intelligence: 65
    base_mobility: 75
    base_tactical: 80
mission:
  num_timesteps: 120
  ethics_enabled: false
seed: 7
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Agents) != 1 || cfg.Agents[0].BaseTactical != 80 {
		t.Fatalf("agents not loaded: %+v", cfg.Agents)
	}
	if cfg.Mission.NumTimesteps != 120 || cfg.Mission.EthicsEnabled {
		t.Fatalf("mission not loaded: %+v", cfg.Mission)
	}
	if cfg.Seed != 7 {
		t.Fatalf("seed not loaded: %d", cfg.Seed)
	}
	// Omitted q_learning keeps defaults.
	if cfg.QLearning.Episodes != 1000 || cfg.QLearning.Gamma != 0.90 {
		t.Fatalf("q_learning defaults lost: %+v", cfg.QLearning)
	}
}

func TestLoadDefaultsOmittedAgentStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.yaml")
	doc := `
agents:
  - role: Longsight
    species: Vyr'khai
  - role: Brawler
    species: Ferroth
    base_strength: 0
    base_mobility: 90
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(cfg.Agents))
	}

	// Stats omitted from the entry take the 60 default.
	a := cfg.Agents[0]
	for name, got := range map[string]int{
		"strength":     a.BaseStrength,
		"empathy":      a.BaseEmpathy,
		"intelligence": a.BaseIntelligence,
		"mobility":     a.BaseMobility,
		"tactical":     a.BaseTactical,
	} {
		if got != 60 {
			t.Fatalf("omitted %s should default to 60, got %d", name, got)
		}
	}

	// An explicit zero survives; other omitted stats still default.
	b := cfg.Agents[1]
	if b.BaseStrength != 0 {
		t.Fatalf("explicit zero strength overwritten: %d", b.BaseStrength)
	}
	if b.BaseMobility != 90 || b.BaseEmpathy != 60 {
		t.Fatalf("mixed entry mis-decoded: %+v", b)
	}
}

func TestAgentConfigJSONDefaults(t *testing.T) {
	var a AgentConfig
	if err := json.Unmarshal([]byte(`{"role":"Archivist","species":"Mycelian","base_tactical":45}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.BaseTactical != 45 {
		t.Fatalf("explicit tactical lost: %d", a.BaseTactical)
	}
	if a.BaseStrength != 60 || a.BaseIntelligence != 60 {
		t.Fatalf("omitted stats should default to 60: %+v", a)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("mission:\n  num_timesteps: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for num_timesteps=5")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
