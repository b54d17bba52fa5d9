package engine

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/ringtrail/pkg/state"
)

// deathOdds is the species-keyed per-roll death probability.
var deathOdds = map[state.Species]float64{
	state.SpeciesHobbit: 0.01,
	state.SpeciesMan:    0.02,
	state.SpeciesDwarf:  0.02,
	state.SpeciesElf:    0.005,
	state.SpeciesWizard: 0.005,
}

// DeathRolls rolls a species-keyed death check for every living member.
// The morale penalty applies once per batch, however many fall. This is
// the only stochastic permanent-injury process; combat-flavored options
// invoke it explicitly.
func (op *opCtx) DeathRolls(cause string) string {
	var fallen []string
	for _, m := range op.gs.LivingMembers() {
		if op.rng.Float64() < deathOdds[m.Species] {
			m.Health = 0
			fallen = append(fallen, fmt.Sprintf("%s has fallen in %s!", m.Name, cause))
		}
	}
	if len(fallen) == 0 {
		return ""
	}
	op.gs.AddMorale(-25)
	return strings.Join(fallen, " ")
}

// RecruitStrider adds Strider to the roster. Guarded so he is never added
// twice, even once renamed.
func (op *opCtx) RecruitStrider() {
	gs := op.gs
	if gs.FindMember("Strider") != nil || gs.FindMember("Aragorn") != nil {
		return
	}
	gs.Roster = append(gs.Roster, &state.Member{Name: "Strider", Species: state.SpeciesMan, Health: state.MaxHealth})
	gs.Flags[state.FlagMetStrider] = true
}

// RenameStriderToAragorn reveals the Ranger's true name in place.
func (op *opCtx) RenameStriderToAragorn() {
	if m := op.gs.FindMember("Strider"); m != nil {
		m.Name = "Aragorn"
	}
}

// FormFellowship adds the remaining companions chosen at the Council and
// flips the completion flag. Members already present are not duplicated.
func (op *opCtx) FormFellowship() {
	gs := op.gs
	op.RenameStriderToAragorn()
	companions := []state.Member{
		{Name: "Legolas", Species: state.SpeciesElf, Health: state.MaxHealth},
		{Name: "Gimli", Species: state.SpeciesDwarf, Health: state.MaxHealth},
		{Name: "Boromir", Species: state.SpeciesMan, Health: state.MaxHealth},
		{Name: "Gandalf", Species: state.SpeciesWizard, Health: state.MaxHealth},
	}
	for i := range companions {
		if gs.FindMember(companions[i].Name) == nil {
			c := companions[i]
			gs.Roster = append(gs.Roster, &c)
		}
	}
	gs.Flags[state.FlagCouncilComplete] = true
}

// GandalfFalls is the guide's-death beat: Gandalf's health is zeroed and
// the party takes a large fixed morale hit.
func (op *opCtx) GandalfFalls() {
	if g := op.gs.FindMember("Gandalf"); g != nil && g.Alive() {
		g.Health = 0
		op.gs.AddMorale(-40)
	}
}

// FellowshipBroken kills Boromir and filters the roster down to the
// members who continue the quest.
func (op *opCtx) FellowshipBroken() {
	gs := op.gs
	if b := gs.FindMember("Boromir"); b != nil {
		b.Health = 0
	}
	allowed := map[string]bool{"Frodo": true, "Sam": true, "Aragorn": true, "Legolas": true, "Gimli": true}
	kept := gs.Roster[:0]
	for _, m := range gs.Roster {
		if allowed[m.Name] {
			kept = append(kept, m)
		}
	}
	gs.Roster = kept
}

// replayStory applies the flag side effects (not the narrative) of the
// story beats at key, used by fast-forward starts.
func (op *opCtx) replayStory(key string) {
	gs := op.gs
	switch key {
	case "bree":
		op.RecruitStrider()
	case "rivendell":
		op.RenameStriderToAragorn()
		op.FormFellowship()
		gs.Flags[state.FlagStingAndMithril] = true
		gs.Counters[state.CounterRivendellPhase] = 3
	case "moria":
		op.GandalfFalls()
	case "amonhen":
		op.FellowshipBroken()
	}
}
