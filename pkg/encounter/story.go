package encounter

import (
	"fmt"

	"github.com/jwebster45206/ringtrail/pkg/state"
)

// caradhrasRetryCap forces the Moria reroute after this many failed
// attempts, so the blizzard retry loop is bounded.
const caradhrasRetryCap = 4

// caradhrasFailures is the escalating flavor for repeated attempts on the
// pass, indexed by attempt count.
var caradhrasFailures = []string{
	"Beaten back by the blizzard, you find a small alcove to catch your breath. The wind's howl sounds like a mocking laugh, and the cold saps your strength.",
	"The snow is a blinding, swirling wall. For every step forward, you are driven two steps back. You must retreat to your meager shelter.",
	"A great drift of snow, larger than a house, blocks the path completely. It is impassable. You are forced to turn back, shivering.",
	"The air grows so cold that your breath freezes in front of your face. The malice of the mountain is a palpable force, pushing you away.",
}

func storyEncounters() []*Encounter {
	return []*Encounter{
		{
			ID:          "the_journey_begins",
			Name:        "The Shadow of the Past",
			Description: `The door of Bag End closes behind you for what feels like the last time. Every rolling hill and familiar lane of the Shire is tinged with a new sadness, for you know you are leaving it all behind. Gandalf's final, urgent words echo in your mind: "The enemy is moving. The Nine are abroad; they will be drawn to the Ring. You must leave, and leave quickly. Keep it secret. Keep it safe." The weight of his words, and the Ring in your pocket, settles upon you. You turn your face to the East, towards the growing shadow.`,
			Kind:        KindStory,
			Options: []Option{
				{Label: "Step onto the Road", Effect: func(gs *state.GameState, h Helpers) Outcome {
					return Outcome{GoToTravel: true}
				}},
			},
		},
		{
			ID:          "weathertop",
			Name:        "The Witch-king at Weathertop",
			Description: "At the summit of the ancient watchtower, you see them: five black figures against the skyline. The Nazgûl. Their leader draws a long sword that glitters with a cold, pale light. A cry of pure terror and hatred splits the air as they advance, and Frodo feels an overwhelming urge to put on the Ring.",
			Trigger:     TriggerLandmark,
			Kind:        KindStory,
			Options: []Option{
				{Label: "Frodo resists the urge", Effect: func(gs *state.GameState, h Helpers) Outcome {
					lost := float64(h.Rand().Intn(20) + 15)
					if frodo := gs.FindMember("Frodo"); frodo != nil {
						frodo.Damage(lost)
					}
					gs.AddMorale(-30)
					return Say("Aragorn leaps to defend the hobbits, brandishing fire against the Wraiths. They are driven back, but not before Frodo is gravely wounded by a Morgul-blade! You must get him to Rivendell!")
				}},
				{Label: "Frodo puts on the Ring", Effect: func(gs *state.GameState, h Helpers) Outcome {
					if frodo := gs.FindMember("Frodo"); frodo != nil {
						frodo.Damage(40)
					}
					gs.AddMorale(-40)
					return Say("Frodo vanishes, entering the wraith-world. The Witch-king strikes with a Morgul-blade, and a shard of ice enters Frodo's shoulder. He is fading fast! You must race to Rivendell!")
				}},
			},
		},
		{
			ID:          "caradhras_pass",
			Name:        "The Pass of Caradhras",
			Description: "The mountain feels alive, and it hates you. As you climb higher, the air grows thin and a cruel wind howls like a hunting wolf. A sudden, unnatural snowstorm descends, a blinding, swirling wall of white that stings your face and freezes the breath in your lungs. You can feel a malevolent will behind the storm, seeking to crush your quest before it can cross the Misty Mountains.",
			Trigger:     TriggerLandmark,
			Kind:        KindStory,
			Options: []Option{
				{Label: "Attempt to push through the snow", Effect: func(gs *state.GameState, h Helpers) Outcome {
					if h.Rand().Float64() < 0.1 {
						gs.MarkVisited("lothlorien")
						return Outcome{
							Title: "The Pass is Broken",
							Text:  "With a final, desperate effort, you break through the storm's heart! The wind lessens, the snow thins, and ahead you see the slopes descending into a golden-hued valley. You have conquered the pass, but the ordeal has left you battered and weary.",
						}
					}
					for _, m := range gs.Roster {
						m.Damage(15)
					}
					gs.AddMorale(-10)
					gs.Counters[state.CounterCaradhrasAttempts]++
					attempts := gs.Counters[state.CounterCaradhrasAttempts]
					if attempts >= caradhrasRetryCap {
						rerouteToMoria(gs)
						return Outcome{
							Title:         "The Mountain's Wrath",
							Text:          "The mountain will not be passed. Half-frozen and exhausted, the company can endure no more. With heavy hearts, you turn back and take the dark and secret way through the Mines of Moria.",
							GoToEncounter: "west_gate_of_moria",
						}
					}
					return Outcome{Retry: true, Text: caradhrasFailures[attempts%len(caradhrasFailures)]}
				}},
				{Label: "Turn back and take the path through Moria", Effect: func(gs *state.GameState, h Helpers) Outcome {
					rerouteToMoria(gs)
					return Outcome{
						Title:         "The Mountain's Wrath",
						Text:          "The mountain has defeated you. With heavy hearts, you turn back and take the dark and secret way through the Mines of Moria.",
						GoToEncounter: "west_gate_of_moria",
					}
				}},
			},
		},
		{
			ID:          "west_gate_of_moria",
			Name:        "The West-gate of Moria",
			Description: "Before you stands a cliff of grey rock, smooth and sheer. At its base, a dark, still lake gives off a foul stench. Faint lines, like silver threads, are barely visible on the rock face, outlining two great pillars and an arch. These are the Doors of Durin, and they are shut. The air is heavy with a watchful silence, broken only by the unsettling stillness of the water.",
			Trigger:     TriggerLandmark,
			Kind:        KindStory,
			Puzzle: &Puzzle{
				Choices: []PuzzleChoice{
					{Label: "Push on the doors"},
					{Label: "Search for a keyhole"},
					{Label: "Shout 'Open!' in Dwarvish"},
					{Label: "Speak 'Mellon' (Friend) in Elvish", Correct: true},
					{Label: "Throw a rock in the lake"},
					{Label: "Wait for someone to come out"},
				},
				OnFailure: func(gs *state.GameState, h Helpers) Outcome {
					living := gs.LivingMembers()
					if len(living) <= 1 {
						h.GameOver("the lone survivor was seized by a tentacle and dragged into the murky depths before the Doors of Durin")
						return Done()
					}
					victim := living[h.Rand().Intn(len(living))]
					victim.Damage(35)
					for _, rescuer := range living {
						if rescuer != victim {
							rescuer.Damage(10)
						}
					}
					return Outcome{
						Retry: true,
						Text: fmt.Sprintf("A ripple disturbs the black water. Suddenly, a score of pale, coiling tentacles erupt from the lake! One whips out and seizes %s, dragging them towards the water's edge! The rest of the company rushes forward, hacking at the rubbery limbs to free their companion. They manage to drive the creature back, but not before everyone is battered and shaken.", victim.Name),
					}
				},
				OnSuccess: func(gs *state.GameState, h Helpers) Outcome {
					gs.Counters[state.CounterMoriaPhase] = 1
					return Outcome{
						Title:    "The Doors of Durin",
						Text:     "As Gandalf speaks the word 'Mellon', the silver lines on the door glow brightly, and the great stone slabs swing inward without a sound, revealing a vast darkness. You hurry inside, just as grasping tentacles begin to rise from the lake once more.",
						GoToTown: "moria",
					}
				},
			},
		},
		{
			ID:          "bridge_of_khazad_dum",
			Name:        "The Bridge of Khazad-dûm",
			Description: "You have fled through the endless dark, but at the Bridge of Khazad-dûm, a new terror emerges. A great shadow, surrounded by flame, rises from the abyss. Its darkness seems to swallow the light. It is a Balrog of Morgoth. Gandalf alone turns to face it on the narrow bridge. 'You cannot pass!' he cries, striking the bridge with his staff.",
			Kind:        KindStory,
			Options: []Option{
				{Label: "You cannot pass!", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.GandalfFalls()
					return Say("Gandalf and the Balrog fall into the abyss. The Fellowship escapes, but their guide and friend is lost. Grief-stricken, you stumble out of the East-gate and into the dim light of the world.")
				}},
				{Label: "Stand with Gandalf!", Chance: 0.05, Effect: func(gs *state.GameState, h Helpers) Outcome {
					if h.Rand().Float64() < 0.05 {
						if gandalf := gs.FindMember("Gandalf"); gandalf != nil {
							gandalf.Health = 10
						}
						gs.AddMorale(50)
						return Say("Your valiant stand gives Gandalf the second he needs! As the bridge crumbles and the Balrog plunges into the abyss, Gandalf manages to cling to the broken edge. With a great heave, you pull him to safety, wounded and exhausted, but alive. A miracle has occurred this day.")
					}
					h.GandalfFalls()
					living := make([]*state.Member, 0, len(gs.Roster))
					for _, m := range gs.LivingMembers() {
						if m.Name != "Gandalf" {
							living = append(living, m)
						}
					}
					if len(living) == 0 {
						return Say("You rush to Gandalf's side, but the Balrog's fiery whip lashes out as it falls. The loss is devastating.")
					}
					victim := living[h.Rand().Intn(len(living))]
					victim.Health = 0
					gs.AddMorale(-50)
					return Say(fmt.Sprintf("You rush to Gandalf's side, but the Balrog's fiery whip lashes out as it falls, catching %s and dragging them into the chasm as well. The loss is devastating.", victim.Name))
				}},
			},
		},
		{
			ID:          "amonhen",
			Name:        "The Breaking of the Fellowship",
			Description: "At Amon Hen, Boromir tries to take the Ring. In the chaos, he is slain by Uruk-hai. Frodo, realizing the Ring's corrupting influence, decides he must go on alone... but Samwise refuses to leave his side. The Fellowship is broken.",
			Trigger:     TriggerLandmark,
			Kind:        KindStory,
			Options: []Option{
				{Label: "Face the inevitable", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.FellowshipBroken()
					gs.MarkVisited("emynmuil")
					return Say("The Fellowship is broken. Only Frodo and Sam remain to continue the quest into the lands of Mordor.")
				}},
			},
		},
	}
}

// rerouteToMoria is the one scripted branch that rewrites path history:
// the failed pass is popped and replaced with the Moria descent. Distance
// traveled is left untouched.
func rerouteToMoria(gs *state.GameState) {
	if n := len(gs.PathTaken); n > 0 && gs.PathTaken[n-1] == "caradhras_pass" {
		gs.PathTaken = gs.PathTaken[:n-1]
	}
	gs.MarkVisited("moria")
}
