// Package reward scores (role, action, scenario, terrain, weather) tuples.
// Calculate is a pure function: the same tuple always yields the same value,
// and every combination of catalog values yields a finite one.
package reward

import (
	"log/slog"

	"github.com/BkAsDrP/Soft-Kill-9000/internal/cosmos"
)

// baseRewards is the role×action compatibility table. Unknown roles or
// actions score 0.
var baseRewards = map[string]map[string]float64{
	"Longsight":         {"advance": 80, "defend": 60, "stabilise": -30, "negotiate": -40, "withdraw": -10},
	"Lifebinder":        {"advance": -10, "defend": 30, "stabilise": 100, "negotiate": 10, "withdraw": 20},
	"Specter":           {"advance": 70, "defend": 30, "stabilise": -10, "negotiate": 0, "withdraw": 40},
	"Whisper":           {"advance": -20, "defend": 10, "stabilise": 10, "negotiate": 100, "withdraw": 30},
	"Archivist":         {"advance": 0, "defend": 20, "stabilise": 20, "negotiate": 60, "withdraw": 30},
	"Brawler":           {"advance": 70, "defend": 50, "stabilise": -20, "negotiate": -30, "withdraw": 20},
	"Armsmaster":        {"advance": 60, "defend": 70, "stabilise": -10, "negotiate": -20, "withdraw": 30},
	"Explosives Expert": {"advance": 50, "defend": 40, "stabilise": -40, "negotiate": -30, "withdraw": 10},
}

// scenarioAdjust shifts action payoffs per scenario key, added to the base
// before the environmental factors apply.
var scenarioAdjust = map[string]map[string]float64{
	"magnetar":  {"withdraw": 20, "defend": 10},
	"xenofauna": {"stabilise": 30, "defend": 20},
	"pirate":    {"advance": 20, "defend": 10, "negotiate": 10},
	"ocean":     {"stabilise": 20, "withdraw": 10},
	"schism":    {"negotiate": 40, "defend": 10},
}

// terrainFactors are multiplicative, bounded to [0.8, 1.2]. Unknown terrain
// is neutral.
var terrainFactors = map[string]float64{
	"Urban Lattice":     1.05,
	"Desert Glass":      0.90,
	"Ice Ridge":         0.95,
	"Oceanic Platforms": 1.00,
	"Jungle Canopy":     1.10,
	"Volcanic Spires":   0.80,
	"Acidic Swamps":     0.85,
	"Crystal Caves":     1.15,
	"Floating Islands":  1.20,
}

// weatherFactors are multiplicative, bounded to [0.7, 1.3]. Unknown weather
// is neutral.
var weatherFactors = map[string]float64{
	"Clear":              1.25,
	"Ion Storm":          0.75,
	"Radiation Flare":    0.70,
	"Sandstorm":          0.80,
	"Cryo Blizzards":     0.85,
	"Plasma Rain":        0.90,
	"Gravity Eddies":     0.95,
	"Sonic Winds":        1.10,
	"Magnetic Anomalies": 1.30,
}

// Ethics schedule: fixed additive bonuses and penalties.
const (
	ethicsSaveCivilian = 8
	ethicsCollateral   = -8
	ethicsDocument     = 3
	ethicsDeescalate   = 5
)

// ethicsRule matches a (scenario key, role, action) combination.
// Empty key or nil role/action set matches anything.
type ethicsRule struct {
	key     string
	roles   []string
	actions []string
	delta   float64
}

var ethicsRules = []ethicsRule{
	// Civilian rescue: staying to shield or stabilise where civilians are
	// at risk.
	{key: "magnetar", actions: []string{"withdraw", "defend"}, delta: ethicsSaveCivilian},
	{key: "xenofauna", actions: []string{"stabilise"}, delta: ethicsSaveCivilian},
	{key: "ocean", actions: []string{"stabilise", "advance"}, delta: ethicsSaveCivilian},
	{roles: []string{"Brawler"}, actions: []string{"defend"}, delta: ethicsSaveCivilian},
	{key: "magnetar", roles: []string{"Explosives Expert"}, actions: []string{"withdraw"}, delta: ethicsSaveCivilian},

	// De-escalation: talking or holding instead of shooting.
	{key: "pirate", actions: []string{"negotiate", "defend"}, delta: ethicsDeescalate},
	{key: "schism", actions: []string{"negotiate"}, delta: ethicsDeescalate},
	{key: "pirate", roles: []string{"Armsmaster"}, actions: []string{"advance"}, delta: ethicsDeescalate},

	// Documentation: the Archivist recording events under pressure.
	{roles: []string{"Archivist"}, actions: []string{"defend", "negotiate"}, delta: ethicsDocument},

	// Collateral damage: ordnance-heavy roles pushing into scenes with
	// civilians present.
	{key: "magnetar", roles: []string{"Explosives Expert", "Armsmaster", "Brawler"}, actions: []string{"advance"}, delta: ethicsCollateral},
	{key: "xenofauna", roles: []string{"Explosives Expert", "Armsmaster", "Brawler"}, actions: []string{"advance"}, delta: ethicsCollateral},
	{key: "ocean", roles: []string{"Explosives Expert", "Armsmaster"}, actions: []string{"advance"}, delta: ethicsCollateral},
}

func (r ethicsRule) matches(key, role, action string) bool {
	if r.key != "" && r.key != key {
		return false
	}
	if r.roles != nil && !contains(r.roles, role) {
		return false
	}
	if r.actions != nil && !contains(r.actions, action) {
		return false
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Calculator scores agent actions. Zero value has ethics disabled.
type Calculator struct {
	EthicsEnabled bool
}

// NewCalculator creates a reward calculator.
func NewCalculator(ethicsEnabled bool) *Calculator {
	slog.Debug("reward calculator ready", "ethics", ethicsEnabled)
	return &Calculator{EthicsEnabled: ethicsEnabled}
}

// Calculate returns the reward for an action in context. Composition:
// (base + scenario adjustment) × terrain factor × weather factor, plus the
// ethics term when enabled. Out-of-catalog inputs fall back to neutral
// values; the function never fails.
func (c *Calculator) Calculate(role, action, narrative, terrain, weather string) float64 {
	r := baseRewards[role][action]

	key := scenarioKey(narrative)
	if key != "" {
		r += scenarioAdjust[key][action]
	}

	if f, ok := terrainFactors[terrain]; ok {
		r *= f
	}
	if f, ok := weatherFactors[weather]; ok {
		r *= f
	}

	if c.EthicsEnabled {
		r += ethicsTerm(key, role, action)
	}

	return r
}

// EthicsTerm exposes the additive ethics contribution for a tuple,
// independent of the enabled flag. Used by exports and tests.
func EthicsTerm(role, action, narrative string) float64 {
	return ethicsTerm(scenarioKey(narrative), role, action)
}

func ethicsTerm(key, role, action string) float64 {
	var total float64
	for _, rule := range ethicsRules {
		if rule.matches(key, role, action) {
			total += rule.delta
		}
	}
	return total
}

func scenarioKey(narrative string) string {
	if idx, ok := cosmos.ScenarioIndex(narrative); ok {
		return cosmos.ScenarioKeys[idx]
	}
	return ""
}
