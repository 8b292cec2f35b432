package cosmos

import (
	"fmt"
	"math/rand"
	"strings"
)

// Scenario is an immutable mission description. Generated once per
// simulation and shared read-only by every agent and the reward calculator.
type Scenario struct {
	Galaxy    string `json:"galaxy"`
	Planet    string `json:"planet"`
	Terrain   string `json:"terrain"`
	Weather   string `json:"weather"`
	Narrative string `json:"narrative"`
}

// Overrides pins selected scenario fields; empty fields are drawn at random.
type Overrides struct {
	Galaxy    string
	Planet    string
	Terrain   string
	Weather   string
	Narrative string
}

// Generate draws a scenario uniformly from the catalogs.
func Generate(rng *rand.Rand) Scenario {
	return GenerateWith(rng, Overrides{})
}

// GenerateWith draws a scenario, honoring any pinned fields.
func GenerateWith(rng *rand.Rand, ov Overrides) Scenario {
	s := Scenario{
		Galaxy:    ov.Galaxy,
		Planet:    ov.Planet,
		Terrain:   ov.Terrain,
		Weather:   ov.Weather,
		Narrative: ov.Narrative,
	}
	if s.Galaxy == "" {
		s.Galaxy = Galaxies[rng.Intn(len(Galaxies))]
	}
	if s.Planet == "" {
		s.Planet = fmt.Sprintf("%s-%d", planetName(rng), 1+rng.Intn(999))
	}
	if s.Terrain == "" {
		s.Terrain = Terrains[rng.Intn(len(Terrains))]
	}
	if s.Weather == "" {
		s.Weather = WeatherConditions[rng.Intn(len(WeatherConditions))]
	}
	if s.Narrative == "" {
		s.Narrative = Narratives[rng.Intn(len(Narratives))]
	}
	return s
}

// String renders the mission briefing header used in logs and exports.
func (s Scenario) String() string {
	return fmt.Sprintf("MISSION: %s // Planet %s\nTerrain: %s // Weather: %s\nScenario: %s",
		s.Galaxy, s.Planet, s.Terrain, s.Weather, s.Narrative)
}

// planetName builds a 2-4 syllable procedural name.
func planetName(rng *rand.Rand) string {
	n := 2 + rng.Intn(3)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(planetSyllables[rng.Intn(len(planetSyllables))])
	}
	name := b.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Banter returns a flavor line for the role, or empty for unknown roles.
func Banter(role string, rng *rand.Rand) string {
	lines := BanterLines[role]
	if len(lines) == 0 {
		return ""
	}
	return lines[rng.Intn(len(lines))]
}
