package squad

import (
	"testing"

	"github.com/BkAsDrP/Soft-Kill-9000/internal/cosmos"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/qlearn"
)

func TestApplySpeciesClamps(t *testing.T) {
	base := Stats{Strength: 108, Empathy: 1, Intelligence: 60, Mobility: 60, Tactical: 60}
	got := base.ApplySpecies(cosmos.StatDelta{Strength: 9, Empathy: -3, Intelligence: 2})
	if got.Strength != 110 {
		t.Fatalf("strength should clamp to 110, got %d", got.Strength)
	}
	if got.Empathy != 0 {
		t.Fatalf("empathy should clamp to 0, got %d", got.Empathy)
	}
	if got.Intelligence != 62 {
		t.Fatalf("intelligence should be 62, got %d", got.Intelligence)
	}
}

func TestDominantStatMapping(t *testing.T) {
	cases := []struct {
		stats Stats
		want  string
	}{
		{Stats{Strength: 90, Empathy: 10, Intelligence: 10, Mobility: 10, Tactical: 10}, "advance"},
		{Stats{Strength: 10, Empathy: 90, Intelligence: 10, Mobility: 10, Tactical: 10}, "negotiate"},
		{Stats{Strength: 10, Empathy: 10, Intelligence: 90, Mobility: 10, Tactical: 10}, "stabilise"},
		{Stats{Strength: 10, Empathy: 10, Intelligence: 10, Mobility: 90, Tactical: 10}, "withdraw"},
		{Stats{Strength: 10, Empathy: 10, Intelligence: 10, Mobility: 10, Tactical: 90}, "defend"},
		// All equal: strength wins by declared order.
		{Stats{Strength: 60, Empathy: 60, Intelligence: 60, Mobility: 60, Tactical: 60}, "advance"},
	}
	for _, tc := range cases {
		if got := tc.stats.Dominant(); got != tc.want {
			t.Fatalf("Dominant(%+v) = %q, want %q", tc.stats, got, tc.want)
		}
	}
}

func TestNewAgentAppliesSpeciesModifier(t *testing.T) {
	base := Stats{Strength: 60, Empathy: 60, Intelligence: 60, Mobility: 60, Tactical: 60}
	a := NewAgent("Longsight", "Longsight", "Vyr'khai", base)
	if a.Stats.Strength != 66 || a.Stats.Empathy != 58 || a.Stats.Mobility != 64 {
		t.Fatalf("species modifier not applied: %+v", a.Stats)
	}
	if a.X != 0.5 || a.Y != 0.5 {
		t.Fatalf("agent should start at centre, got (%v, %v)", a.X, a.Y)
	}
	if len(a.Trajectory) != 1 {
		t.Fatalf("trajectory should hold the start point, got %d entries", len(a.Trajectory))
	}
}

func TestNewAgentUnknownSpeciesKeepsBase(t *testing.T) {
	base := Stats{Strength: 50, Empathy: 50, Intelligence: 50, Mobility: 50, Tactical: 50}
	a := NewAgent("X", "Longsight", "Unknown", base)
	if a.Stats != base {
		t.Fatalf("unknown species should leave stats untouched: %+v", a.Stats)
	}
}

func TestChooseActionQTablePath(t *testing.T) {
	a := NewAgent("Longsight", "Longsight", "Vyr'khai", Stats{Strength: 60, Empathy: 60, Intelligence: 60, Mobility: 60, Tactical: 60})
	table := qlearn.NewTable()

	// Zero table ties: first action wins on the matching row.
	got := a.ChooseAction(cosmos.Narratives[0], table)
	if got != qlearn.Actions[0] {
		t.Fatalf("expected %q on all-zero row, got %q", qlearn.Actions[0], got)
	}

	// Repeated calls with an unchanged table are deterministic.
	for i := 0; i < 20; i++ {
		if again := a.ChooseAction(cosmos.Narratives[0], table); again != got {
			t.Fatalf("call %d: action changed from %q to %q", i, got, again)
		}
	}
}

func TestChooseActionFallsBackOnUnknownNarrative(t *testing.T) {
	stats := Stats{Strength: 10, Empathy: 95, Intelligence: 10, Mobility: 10, Tactical: 10}
	a := NewAgent("Whisper", "Whisper", "", stats)
	table := qlearn.NewTable()
	if got := a.ChooseAction("no known template here", table); got != "negotiate" {
		t.Fatalf("expected rule fallback to negotiate, got %q", got)
	}
}

func TestChooseActionNoTableUsesRule(t *testing.T) {
	stats := Stats{Strength: 10, Empathy: 10, Intelligence: 10, Mobility: 10, Tactical: 95}
	a := NewAgent("Armsmaster", "Armsmaster", "", stats)
	if got := a.ChooseAction(cosmos.Narratives[0], nil); got != "defend" {
		t.Fatalf("expected defend from dominant tactical, got %q", got)
	}
}

func TestUpdatePositionClampsToUnitSquare(t *testing.T) {
	a := NewAgent("X", "Longsight", "", Stats{Mobility: 110, Strength: 60, Empathy: 60, Intelligence: 60, Tactical: 60})
	for i := 0; i < 200; i++ {
		a.UpdatePosition("advance", 1)
	}
	if a.X < 0 || a.X > 1 || a.Y < 0 || a.Y > 1 {
		t.Fatalf("position left the unit square: (%v, %v)", a.X, a.Y)
	}
	if len(a.Trajectory) != 201 {
		t.Fatalf("trajectory should record every step, got %d", len(a.Trajectory))
	}
}

func TestUpdateRewardAccumulates(t *testing.T) {
	a := NewAgent("X", "Longsight", "", Stats{})
	a.UpdateReward(0, "advance", 3.5)
	a.UpdateReward(1, "defend", -1.25)
	if a.CumulativeReward != 2.25 {
		t.Fatalf("cumulative reward %v, want 2.25", a.CumulativeReward)
	}
	if len(a.History) != 2 || a.History[1].Action != "defend" {
		t.Fatalf("history not recorded: %+v", a.History)
	}
}
