package encounter

import (
	"math"

	"github.com/jwebster45206/ringtrail/pkg/state"
)

// TownAction is one menu entry in a town view. Disabled actions remain
// visible so the player can see what they are missing; the engine rejects
// selecting them.
type TownAction struct {
	ID    string
	Label string

	// OneTime actions disappear after use, keyed by town:id in
	// CompletedActions.
	OneTime bool

	// If hides the action entirely. Disabled shows it greyed out.
	If       Predicate
	Disabled Predicate

	// IsExit actions leave the town view when their outcome resolves.
	IsExit bool

	Effect Effect
}

// Town is a named action menu tied to a location key.
type Town struct {
	Key         string
	Name        string
	Description string
	Actions     []TownAction
}

// Action returns the town action with the given id, or nil.
func (t *Town) Action(id string) *TownAction {
	for i := range t.Actions {
		if t.Actions[i].ID == id {
			return &t.Actions[i]
		}
	}
	return nil
}

// DefaultTowns returns the built-in town catalogs keyed by location.
func DefaultTowns() map[string]*Town {
	return map[string]*Town{
		"bree":      breeTown(),
		"rivendell": rivendellTown(),
		"moria":     moriaTown(),
	}
}

func breeTown() *Town {
	return &Town{
		Key:         "bree",
		Name:        "The Prancing Pony",
		Description: "The common room of the Prancing Pony is loud and smoky, full of big, boisterous Men and a few suspicious glances. In a shadowed corner, a weather-worn traveler sits alone, watching you over the rim of his mug.",
		Actions: []TownAction{
			{
				ID:    "gossip",
				Label: "Listen to the local gossip",
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					gs.AddMorale(5)
					return Say("You nurse a half-pint and listen. Talk of strange black riders on the roads south makes the locals uneasy, but the warm fire and familiar chatter lift your spirits a little.")
				},
			},
			{
				ID:       "trade",
				Label:    "Trade for supplies (15 gold)",
				Disabled: func(gs *state.GameState) bool { return gs.Resources.Gold < 15 },
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					gs.Resources.Gold -= 15
					gs.Resources.Supplies += 25
					return Say("Barliman Butterbur, the innkeeper, sells you rope, oilskins and other travel goods at a fair price. 25 supplies added.")
				},
			},
			{
				ID:      "dinner",
				Label:   "Join the stranger for dinner",
				OneTime: true,
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(2)
					gs.Flags[state.FlagAteDinner] = true
					h.RecruitStrider()
					return Say("The stranger names himself Strider, a Ranger of the North, and he knows far too much about your errand. 'You cannot wait for Gandalf,' he says quietly. 'The Riders have already passed through Bree. I can take you to Rivendell by paths they do not watch.' Against your better judgment, you trust him. Strider joins the party.")
				},
			},
			{
				ID:     "follow_strider",
				Label:  "Slip out the back with Strider",
				If:     func(gs *state.GameState) bool { return gs.Flags[state.FlagAteDinner] },
				IsExit: true,
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(8)
					gs.AddMorale(-10)
					return Outcome{
						Title: "A Narrow Escape",
						Text:  "Strider leads you out of Bree under cover of darkness. Behind you, screams erupt from the inn: the Black Riders have come, and found your beds stuffed with bolsters. The night march is cold and sleepless, but you are alive.",
					}
				},
			},
			{
				ID:     "sleep",
				Label:  "Turn in for the night",
				IsExit: true,
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(8)
					if !gs.Flags[state.FlagAteDinner] && h.Rand().Float64() < 0.5 {
						h.GameOver("a Morgul-blade found its mark while the hobbits slept at the Prancing Pony, and the Ring was taken")
						return Done()
					}
					if frodo := gs.FindMember("Frodo"); frodo != nil {
						frodo.Damage(30)
					}
					gs.AddMorale(-25)
					h.RecruitStrider()
					return Outcome{
						Title: "Night Terrors",
						Text:  "In the deepest hour of the night, the door bursts inward with a crash. Black-robed figures fill the doorway, and a long pale blade is raised. Just then a hooded man leaps from the shadows with sword and flaming brand. 'Out the window!' he commands. You scramble into the night, escaping the attack, but not before Frodo is wounded by the wraith's touch. Your rescuer names himself Strider. He is now one of your company.",
					}
				},
			},
		},
	}
}

func rivendellTown() *Town {
	return &Town{
		Key:         "rivendell",
		Name:        "The Last Homely House",
		Description: "Rivendell lies in a deep valley filled with the sound of falling water. Here, for a while, the weight of the Ring feels lighter. Elrond's house is open to you for as long as you need.",
		Actions: []TownAction{
			{
				ID:      "gardens",
				Label:   "Walk the gardens",
				OneTime: true,
				If:      func(gs *state.GameState) bool { return gs.Counters[state.CounterRivendellPhase] == 1 },
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(4)
					gs.AddMorale(10)
					gs.Counters[state.CounterRivendellPhase] = 2
					return Say("You spend a few hours wandering the peaceful gardens of Imladris. The air is clear and the sound of waterfalls soothes your weary spirit.")
				},
			},
			{
				ID:      "hall_of_fire",
				Label:   "Listen to the songs",
				OneTime: true,
				If:      func(gs *state.GameState) bool { return gs.Counters[state.CounterRivendellPhase] == 1 },
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(4)
					gs.AddMorale(15)
					gs.Counters[state.CounterRivendellPhase] = 2
					return Say("You sit in the Hall of Fire, listening as the Elves sing tales of ancient days. The beauty of the music washes over you, lifting a great weight from your heart.")
				},
			},
			{
				ID:      "visit_bilbo",
				Label:   "Visit Bilbo",
				OneTime: true,
				If:      func(gs *state.GameState) bool { return gs.Counters[state.CounterRivendellPhase] >= 2 },
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					gs.Flags[state.FlagStingAndMithril] = true
					return Say("You find Bilbo in a small room, surrounded by maps and scattered papers. 'The Ring!' he whispers, and a strange longing passes over his face before he shakes it off. 'No, it's your burden now, my lad. But you'll need this.' He presents a small sword in a worn scabbard, Sting, and from a chest draws a shirt of woven silver rings, light as a feather but hard as dragon-scales. 'My mithril coat. Take them. You'll have need of them.'")
				},
			},
			{
				ID:       "council",
				Label:    "Attend the Council of Elrond",
				OneTime:  true,
				Disabled: func(gs *state.GameState) bool { return gs.Counters[state.CounterRivendellPhase] < 2 },
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(4)
					h.FormFellowship()
					gs.Counters[state.CounterRivendellPhase] = 3
					return Say("You are summoned to a great council, where the fate of the Ring is debated. Boromir of Gondor would wield it against the Enemy, but Elrond's counsel prevails: the Ring is wholly evil, and must be unmade in the fires where it was forged. A heavy silence falls, broken at last by Frodo. 'I will take the Ring,' he says, 'though I do not know the way.' Gandalf, Aragorn, Legolas, Gimli, and Boromir pledge themselves to the quest. The Fellowship of the Ring is formed.")
				},
			},
			{
				ID:      "prepare",
				Label:   "Prepare for departure",
				OneTime: true,
				If:      func(gs *state.GameState) bool { return gs.Counters[state.CounterRivendellPhase] >= 3 },
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(8)
					gs.AddFood(50)
					return Say("You spend the day gathering provisions. The Elves provide Lembas, a special waybread both nourishing and light. 50 food added.")
				},
			},
			{
				ID:     "leave",
				Label:  "Set out from Rivendell",
				If:     func(gs *state.GameState) bool { return gs.Counters[state.CounterRivendellPhase] >= 3 },
				IsExit: true,
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					return Outcome{
						Title: "The Ring Goes South",
						Text:  "On a cold grey evening the Fellowship leaves Rivendell, turning south towards the Misty Mountains. Elrond's last words follow you down the valley: 'The further you go, the less easy it will be to withdraw.'",
					}
				},
			},
		},
	}
}

func moriaTown() *Town {
	return &Town{
		Key:         "moria",
		Name:        "The Mines of Moria",
		Description: "Darkness presses in from every side, vaster than any night under the sky. Gandalf's staff sheds a faint glow over endless stairs and galleries. Somewhere far below, something stirs.",
		Actions: []TownAction{
			{
				ID:    "press_on",
				Label: "Press on through the darkness",
				If:    func(gs *state.GameState) bool { return gs.Counters[state.CounterMoriaPhase] == 1 },
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(4)
					return Say("You travel for hours through the oppressive, silent dark. The path is mercifully straight, but the feeling of being deep within the earth weighs heavily on your spirits.")
				},
			},
			{
				ID:      "search_tomb",
				Label:   "Search for Balin's Tomb",
				OneTime: true,
				If:      func(gs *state.GameState) bool { return gs.Counters[state.CounterMoriaPhase] == 1 },
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(2)
					gs.Counters[state.CounterMoriaPhase] = 3
					return Outcome{
						Title:    "Balin's Tomb",
						Text:     "Guided by Gandalf, you find a side-chamber. A ray of light pierces the gloom, illuminating a single oblong tomb. Upon it are carved runes: HERE LIES BALIN, SON OF FUNDIN, LORD OF MORIA. As Gimli weeps, Gandalf picks up a tattered book. Its last pages tell of Orcs, a strange presence in the deep water, and a final desperate stand. As he closes it, a sound begins in the depths of the mine. A slow, rhythmic beating. Doom, doom, doom. Great drums, and they are getting closer.",
						GoToTown: "moria",
					}
				},
			},
			{
				ID:     "flee",
				Label:  "Flee to the Bridge!",
				If:     func(gs *state.GameState) bool { return gs.Counters[state.CounterMoriaPhase] >= 3 },
				IsExit: true,
				Effect: func(gs *state.GameState, h Helpers) Outcome {
					return Outcome{GoToEncounter: "bridge_of_khazad_dum"}
				},
			},
		},
	}
}

// RivendellHealingDays is the bed-rest duration applied on arrival,
// scaled to how badly the Ringbearer is wounded.
func RivendellHealingDays(frodoHealth float64) int {
	if frodoHealth >= state.MaxHealth {
		return 1
	}
	return int(math.Ceil((state.MaxHealth - frodoHealth) / 10))
}
