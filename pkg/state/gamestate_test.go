package state

import (
	"encoding/json"
	"testing"
)

func TestAddMorale(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		delta    float64
		expected float64
	}{
		{"inflow clamps at 100", 95, 20, 100},
		{"inflow below cap", 50, 20, 70},
		{"outflow goes negative", 10, -35, -25},
		{"zero delta", 42, 0, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := New()
			gs.Morale = tt.start
			gs.AddMorale(tt.delta)
			if gs.Morale != tt.expected {
				t.Errorf("expected morale %.1f, got %.1f", tt.expected, gs.Morale)
			}
		})
	}
}

func TestSpendSupplies_FloorsAtZero(t *testing.T) {
	gs := New()
	gs.Resources.Supplies = 10
	gs.SpendSupplies(25)
	if gs.Resources.Supplies != 0 {
		t.Errorf("expected supplies 0, got %.1f", gs.Resources.Supplies)
	}
}

func TestMarkVisited(t *testing.T) {
	gs := New()
	gs.MarkVisited("shire")
	gs.MarkVisited("bree")
	gs.MarkVisited("bree") // repeat arrival must not duplicate history

	if gs.Location != "bree" {
		t.Errorf("expected location bree, got %s", gs.Location)
	}
	if len(gs.PathTaken) != 2 {
		t.Fatalf("expected path of 2, got %v", gs.PathTaken)
	}
	if gs.PathTaken[0] != "shire" || gs.PathTaken[1] != "bree" {
		t.Errorf("unexpected path order: %v", gs.PathTaken)
	}
	if !gs.DiscoveredStops["shire"] || !gs.DiscoveredStops["bree"] {
		t.Errorf("expected both stops discovered, got %v", gs.DiscoveredStops)
	}
}

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		elapsed  float64
		expected float64
	}{
		{0, 0},
		{11, 11},
		{24, 0},
		{35, 11},
		{47.5, 23.5},
	}

	for _, tt := range tests {
		gs := New()
		gs.ElapsedHours = tt.elapsed
		if tod := gs.TimeOfDay(); tod != tt.expected {
			t.Errorf("elapsed %.1f: expected tod %.1f, got %.1f", tt.elapsed, tt.expected, tod)
		}
	}
}

func TestBuffActive(t *testing.T) {
	gs := New()
	gs.ElapsedHours = 50

	if gs.BuffActive(BuffSustainingWater) {
		t.Error("unset buff should not be active")
	}

	gs.Buffs[BuffSustainingWater] = 74
	if !gs.BuffActive(BuffSustainingWater) {
		t.Error("buff expiring at 74 should be active at 50")
	}

	gs.ElapsedHours = 74
	if gs.BuffActive(BuffSustainingWater) {
		t.Error("buff should expire exactly at its expiry hour")
	}
}

func TestMember_Heal(t *testing.T) {
	m := &Member{Name: "Sam", Species: SpeciesHobbit, Health: 90}
	m.Heal(25)
	if m.Health != MaxHealth {
		t.Errorf("expected heal to clamp at %v, got %v", MaxHealth, m.Health)
	}

	dead := &Member{Name: "Boromir", Species: SpeciesMan, Health: 0}
	dead.Heal(50)
	if dead.Health != 0 {
		t.Errorf("healing must not revive the dead, got %v", dead.Health)
	}
}

func TestMember_Damage_NoFloor(t *testing.T) {
	m := &Member{Name: "Frodo", Species: SpeciesHobbit, Health: 10}
	m.Damage(35)
	if m.Health != -25 {
		t.Errorf("expected health -25 (unfloored), got %v", m.Health)
	}
	if m.Alive() {
		t.Error("member at negative health must not be alive")
	}
}

func TestLivingMembers(t *testing.T) {
	gs := New()
	gs.Roster = []*Member{
		{Name: "Frodo", Species: SpeciesHobbit, Health: 50},
		{Name: "Sam", Species: SpeciesHobbit, Health: 0},
		{Name: "Merry", Species: SpeciesHobbit, Health: -10},
		{Name: "Pippin", Species: SpeciesHobbit, Health: 1},
	}

	living := gs.LivingMembers()
	if len(living) != 2 {
		t.Fatalf("expected 2 living, got %d", len(living))
	}
	if living[0].Name != "Frodo" || living[1].Name != "Pippin" {
		t.Errorf("living members out of roster order: %v, %v", living[0].Name, living[1].Name)
	}
	if gs.LivingCount() != 2 {
		t.Errorf("LivingCount disagrees with LivingMembers: %d", gs.LivingCount())
	}
	if !gs.HasLivingMember("Merry", "Pippin") {
		t.Error("expected HasLivingMember to find Pippin")
	}
	if gs.HasLivingMember("Sam", "Merry") {
		t.Error("dead members must not count as living")
	}
}

func TestGameState_JSONRoundTrip(t *testing.T) {
	gs := New()
	gs.Seed = 12345
	gs.OpCount = 7
	gs.ElapsedHours = 35.5
	gs.Roster = []*Member{{Name: "Frodo", Species: SpeciesHobbit, Health: 62.5}}
	gs.MarkVisited("shire")
	gs.Flags[FlagMetStrider] = true
	gs.Counters[CounterRivendellPhase] = 2
	gs.Buffs[BuffSustainingWater] = 40
	gs.Pending = &Prompt{
		Title:    "Welcome to Rivendell",
		Continue: true,
		Options:  []string{"Continue"},
		Followup: &Followup{Town: "rivendell"},
	}

	data, err := json.Marshal(gs)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var restored GameState
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if restored.Seed != gs.Seed || restored.OpCount != gs.OpCount {
		t.Errorf("roll-source fields lost: seed %d/%d op %d/%d",
			restored.Seed, gs.Seed, restored.OpCount, gs.OpCount)
	}
	if restored.Roster[0].Health != 62.5 {
		t.Errorf("expected roster health 62.5, got %v", restored.Roster[0].Health)
	}
	if restored.Pending == nil || !restored.Pending.Continue {
		t.Fatal("continue prompt lost in round trip")
	}
	if restored.Pending.Followup == nil || restored.Pending.Followup.Town != "rivendell" {
		t.Errorf("followup lost in round trip: %+v", restored.Pending.Followup)
	}
	if !restored.Flags[FlagMetStrider] || restored.Counters[CounterRivendellPhase] != 2 {
		t.Error("flags or counters lost in round trip")
	}
}
