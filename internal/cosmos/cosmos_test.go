package cosmos

import (
	"math/rand"
	"strings"
	"testing"
)

func TestCatalogShapes(t *testing.T) {
	if len(Terrains) != 9 {
		t.Fatalf("expected 9 terrains, got %d", len(Terrains))
	}
	if len(WeatherConditions) != 9 {
		t.Fatalf("expected 9 weather conditions, got %d", len(WeatherConditions))
	}
	if len(ScenarioKeys) != 5 || len(Narratives) != 5 {
		t.Fatalf("expected 5 scenario templates, got %d keys / %d narratives",
			len(ScenarioKeys), len(Narratives))
	}
	if len(SpeciesModifiers) != 8 {
		t.Fatalf("expected 8 species, got %d", len(SpeciesModifiers))
	}
	if len(RoleDescriptions) != 8 {
		t.Fatalf("expected 8 roles, got %d", len(RoleDescriptions))
	}
}

func TestScenarioIndexMatchesEachNarrative(t *testing.T) {
	for i, n := range Narratives {
		idx, ok := ScenarioIndex(n)
		if !ok {
			t.Fatalf("narrative %q matched no scenario key", n)
		}
		if idx != i {
			t.Fatalf("narrative %q: expected index %d, got %d", n, i, idx)
		}
	}
}

func TestScenarioIndexUnknown(t *testing.T) {
	if _, ok := ScenarioIndex("a quiet day with nothing happening"); ok {
		t.Fatal("expected no match for unknown narrative")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(7)))
	b := Generate(rand.New(rand.NewSource(7)))
	if a != b {
		t.Fatalf("same seed produced different scenarios: %+v vs %+v", a, b)
	}
}

func TestGenerateWithOverrides(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := GenerateWith(rng, Overrides{Terrain: "Ice Ridge", Weather: "Clear"})
	if s.Terrain != "Ice Ridge" || s.Weather != "Clear" {
		t.Fatalf("overrides not honored: %+v", s)
	}
	if s.Galaxy == "" || s.Planet == "" || s.Narrative == "" {
		t.Fatalf("unpinned fields not drawn: %+v", s)
	}
}

func TestPlanetNameFormat(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		s := Generate(rng)
		if !strings.Contains(s.Planet, "-") {
			t.Fatalf("planet name %q missing numeric suffix", s.Planet)
		}
	}
}

func TestBanterKnownRole(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if Banter("Longsight", rng) == "" {
		t.Fatal("expected a banter line for Longsight")
	}
	if Banter("Quartermaster", rng) != "" {
		t.Fatal("expected empty banter for unknown role")
	}
}
