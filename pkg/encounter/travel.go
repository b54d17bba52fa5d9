package encounter

import (
	"fmt"

	"github.com/jwebster45206/ringtrail/pkg/journey"
	"github.com/jwebster45206/ringtrail/pkg/state"
)

// hasLivingRanger gates options and encounters on Strider/Aragorn being
// alive, under either name.
func hasLivingRanger(gs *state.GameState) bool {
	return gs.HasLivingMember("Strider", "Aragorn")
}

func travelEncounters(j *journey.Journey) []*Encounter {
	return []*Encounter{
		{
			ID:          "fruit_trees",
			Name:        "Fruit Trees",
			Description: "You come upon a small, sun-dappled orchard of wild apple trees, their branches heavy with ripe fruit.",
			Trigger:     TriggerTravel,
			Kind:        KindFriendly,
			Weight:      8,
			Options: []Option{
				{Label: "Eat your fill", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					for _, m := range gs.Roster {
						m.Heal(5)
					}
					gs.AddMorale(5)
					return Say("You stop for a while to eat. The fresh fruit is delicious and revitalizing.")
				}},
				{Label: "Gather for the road", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(2)
					found := float64(h.Rand().Intn(15) + 10)
					gs.AddFood(found)
					return Say(fmt.Sprintf("It takes some time, but you gather the best fruit, adding %.0f food to your stores.", found))
				}},
				{Label: "Do nothing", Effect: func(gs *state.GameState, h Helpers) Outcome {
					return Say("You press on, leaving the bounty behind.")
				}},
			},
		},
		{
			ID:          "orc_patrol",
			Name:        "Orc Patrol",
			Description: "A harsh guttural speech echoes from ahead. A patrol of Orcs, their scimitars cruelly sharp, march down the path. They have not yet seen you.",
			Trigger:     TriggerTravel,
			Kind:        KindHostile,
			Weight:      7,
			Options: []Option{
				{Label: "Set an ambush", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					successChance := 0.75
					if gs.Flags[state.FlagStingAndMithril] {
						successChance = 0.9
					}
					if h.Rand().Float64() < successChance {
						found := float64(h.Rand().Intn(10))
						gs.Resources.Supplies += found
						gs.AddMorale(5)
						return Say(fmt.Sprintf("The ambush is perfect! You dispatch the Orcs swiftly, finding %.0f supplies.", found))
					}
					damageParty(gs, h, 15)
					gs.AddMorale(-10)
					return Say("They spot you too soon! A fierce skirmish ensues.")
				}},
				{Label: "Attempt to sneak past", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(2)
					if h.Rand().Float64() < 0.5 {
						return Say("It takes a couple of tense hours, but you slip by unnoticed.")
					}
					dropped := float64(h.Rand().Intn(10) + 5)
					gs.SpendSupplies(dropped)
					gs.AddMorale(-10)
					return Say(fmt.Sprintf("Spotted! You drop %.0f supplies to create a diversion and escape.", dropped))
				}},
				{Label: "Confront them head-on", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					damageParty(gs, h, 25)
					gs.AddMorale(-15)
					if casualties := h.DeathRolls("battle"); casualties != "" {
						return Say("The battle is brutal. " + casualties)
					}
					return Say("The battle is brutal, leaving everyone wounded.")
				}},
			},
		},
		{
			ID:          "lost_in_wild",
			Name:        "Lost in the Wild",
			Description: "The landscape has become a monotonous, rolling terrain. The path is gone. You are lost.",
			Trigger:     TriggerTravel,
			Kind:        KindNeutral,
			Weight:      10,
			Options: []Option{
				{Label: "Trust the Ranger", If: hasLivingRanger, Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(3)
					return Say("Aragorn's skill guides you true after a few hours of searching. You find the main path again.")
				}},
				{Label: "Climb for a view", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(2)
					if h.Rand().Float64() < 0.6 {
						return Say("After a short climb, you spot the correct path from a high vantage.")
					}
					living := gs.LivingMembers()
					if len(living) > 0 {
						climber := living[0]
						climber.Damage(10)
						return Say(fmt.Sprintf("%s slips and falls while climbing. The path remains hidden.", climber.Name))
					}
					return Say("The path remains hidden.")
				}},
				{Label: "Press on blindly", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(4)
					gs.AddMorale(-10)
					return Say("You wander for hours, your spirits sinking, before finally stumbling back onto the path.")
				}},
			},
		},
		{
			ID:          "mountain_spring",
			Name:        "Mountain Spring",
			Description: "Tucked into a mossy rock face, you find a spring of crystal-clear water bubbling forth.",
			Trigger:     TriggerTravel,
			Kind:        KindFriendly,
			Weight:      8,
			Options: []Option{
				{Label: "Drink deeply", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					for _, m := range gs.Roster {
						m.Heal(10)
					}
					gs.AddMorale(10)
					return Say("You rest for a while. The pure, cold water is incredibly refreshing.")
				}},
				{Label: "Refill waterskins", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(0.5)
					base := gs.ElapsedHours
					if expiry, ok := gs.Buffs[state.BuffSustainingWater]; ok && expiry > base {
						base = expiry
					}
					gs.Buffs[state.BuffSustainingWater] = base + 24
					return Say("You quickly fill your waterskins. The water will sustain you for the next day.")
				}},
				{Label: "Do nothing", Effect: func(gs *state.GameState, h Helpers) Outcome {
					return Say("You ignore the spring.")
				}},
			},
		},
		{
			ID:          "sudden_downpour",
			Name:        "Sudden Downpour",
			Description: "The sky opens up without warning, and a cold, driving rain begins to fall.",
			Trigger:     TriggerTravel,
			Kind:        KindNeutral,
			Weight:      10,
			Options: []Option{
				{Label: "Push on", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					for _, m := range gs.LivingMembers() {
						m.Damage(5)
					}
					gs.AddMorale(-5)
					return Say("You trudge on through the miserable rain, losing some health and morale.")
				}},
				{Label: "Find shelter", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(2)
					return Say("You find a small overhang and wait for the worst of the storm to pass. It takes a couple of hours.")
				}},
				{Label: "Use supplies to make shelter", If: func(gs *state.GameState) bool { return gs.Resources.Supplies >= 5 }, Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(0.5)
					gs.SpendSupplies(5)
					return Say("You quickly use 5 supplies to create a makeshift shelter.")
				}},
			},
		},
		{
			ID:          "wargs_wild",
			Name:        "Wargs of the Wild",
			Description: "A howl echoes through the hills. A pack of Wargs, monstrous wolves with a malevolent gleam in their eyes, has caught your scent.",
			Trigger:     TriggerTravel,
			Kind:        KindHostile,
			Weight:      6,
			Options: []Option{
				{Label: "Light fires to keep them at bay", If: func(gs *state.GameState) bool { return gs.Resources.Supplies >= 10 }, Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					gs.SpendSupplies(10)
					gs.AddMorale(-5)
					return Say("You quickly use 10 supplies to build protective fires. The Wargs snarl from the darkness for an hour but dare not approach.")
				}},
				{Label: "Stand and fight", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					for _, m := range gs.LivingMembers() {
						damage := h.Rand().Float64()*20 + 10
						if m.Name == "Frodo" && gs.Flags[state.FlagStingAndMithril] {
							damage *= 0.5
						}
						m.Damage(damage)
					}
					gs.AddMorale(-20)
					if casualties := h.DeathRolls("the Warg attack"); casualties != "" {
						return Say("The Wargs are terrifyingly fast and strong! " + casualties)
					}
					return Say("You fight off the beasts, but not without suffering grievous wounds.")
				}},
				{Label: "Climb trees or rocks", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(3)
					gs.AddMorale(-10)
					return Say("You scramble up high ground, out of reach. You are trapped for hours until the pack moves on.")
				}},
			},
		},
		{
			ID:          "athelas",
			Name:        "Athelas (Kingsfoil)",
			Description: "Aragorn kneels, his keen eyes spotting a patch of a seemingly plain weed. 'This is Athelas,' he murmurs. 'Kingsfoil.'",
			Trigger:     TriggerTravel,
			Kind:        KindFriendly,
			Weight:      3,
			If:          hasLivingRanger,
			Options: []Option{
				{Label: "Gather it", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					gs.Inventory["athelas"]++
					return Say("You spend some time carefully gathering the precious herb, adding one use of Athelas to your packs.")
				}},
				{Label: "Move on", Effect: func(gs *state.GameState, h Helpers) Outcome {
					return Say("You leave the precious herb behind.")
				}},
			},
		},
		{
			ID:          "abandoned_camp",
			Name:        "An Abandoned Camp",
			Description: "Through the trees, you see the faint grey smoke of a dying campfire. You approach cautiously to find a recently abandoned camp.",
			Trigger:     TriggerTravel,
			Kind:        KindNeutral,
			Weight:      7,
			Options: []Option{
				{Label: "Search it", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(1)
					roll := h.Rand().Float64()
					switch {
					case roll < 0.6:
						found := float64(h.Rand().Intn(10) + 5)
						gs.AddFood(found)
						return Say(fmt.Sprintf("Your search turns up %.0f leftover food rations. A lucky find!", found))
					case roll < 0.8:
						return Say("The camp is empty.")
					default:
						gs.AddMorale(-10)
						return Say("It's a trap! A small band of goblins leap out. You fight them off but the encounter leaves you shaken.")
					}
				}},
				{Label: "Ignore it", Effect: func(gs *state.GameState, h Helpers) Outcome {
					return Say("It's too risky. You leave the camp untouched and move on.")
				}},
			},
		},
		{
			ID:          "eagles_gaze",
			Name:        "The Eagles' Gaze",
			Description: "High above, you spot the unmistakable silhouette of a Great Eagle. It circles once, a silent, powerful guardian, then soars away towards the east.",
			Trigger:     TriggerTravel,
			Kind:        KindFriendly,
			Weight:      2,
			Options: []Option{
				{Label: "Take heart", Effect: func(gs *state.GameState, h Helpers) Outcome {
					gs.AddMorale(15)
					return Say("The sight is a blessing. Morale is significantly boosted.")
				}},
				{Label: "Worry it is a spy", Effect: func(gs *state.GameState, h Helpers) Outcome {
					gs.AddMorale(-5)
					return Say("Could it be a spy for Saruman? The thought is unsettling.")
				}},
			},
		},
		{
			ID:          "gollum_pursuit",
			Name:        "Gollum's Pursuit",
			Description: "In the quiet of the night, Sam hears it: a faint, wet, slapping sound from the rocks behind you, and a low, miserable whining. 'My preciousss...' Gollum is following you.",
			Trigger:     TriggerTravel,
			Kind:        KindNeutral,
			Weight:      10,
			If: func(gs *state.GameState) bool {
				return !gs.Flags[state.FlagGollumFollowing]
			},
			Options: []Option{
				{Label: "Try to lose him", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(4)
					gs.AddMorale(-5)
					return Say("You take a difficult, treacherous path for several hours to shake the creature.")
				}},
				{Label: "Confront him", Effect: func(gs *state.GameState, h Helpers) Outcome {
					h.AdvanceTime(0.5)
					gs.Flags[state.FlagGollumFollowing] = true
					return Say("You try to capture the creature, but he is too quick. You know he is still out there.")
				}},
				{Label: "Ignore him", Effect: func(gs *state.GameState, h Helpers) Outcome {
					gs.Flags[state.FlagGollumFollowing] = true
					return Say("You do nothing. The unsettling presence continues to follow you.")
				}},
			},
		},
		{
			ID:          "nazgul_sighting",
			Name:        "A Black Rider",
			Description: "A chilling shriek pierces the air. A Black Rider is near!",
			Trigger:     TriggerTravel,
			Kind:        KindHostile,
			Weight:      5,
			OptionsFunc: func(gs *state.GameState) []Option {
				loc := j.Location(gs.Location)
				if loc != nil && loc.Kind == journey.KindTown {
					return []Option{
						{Label: "Barricade yourselves in the Inn", Effect: func(gs *state.GameState, h Helpers) Outcome {
							h.AdvanceTime(3)
							gs.AddMorale(-15)
							return Say("You spend a terrifying few hours barricaded inside as the Nazgûl searches the town. Eventually, it moves on.")
						}},
						{Label: "Flee the town immediately", Effect: func(gs *state.GameState, h Helpers) Outcome {
							h.AdvanceTime(1)
							gs.AddMorale(-10)
							return Say("You gather your things in a panic and flee into the wilderness, not stopping until the sun rises.")
						}},
						{Label: "Hide in the stables", Effect: func(gs *state.GameState, h Helpers) Outcome {
							h.AdvanceTime(2)
							if h.Rand().Float64() < 0.3 {
								gs.SpendSupplies(20)
								return Say("The Rider finds you! You create a diversion by releasing the horses and lose some supplies in the chaos.")
							}
							return Say("You hide amongst the hay and animals. The Rider passes by, its presence chilling you to the bone.")
						}},
					}
				}
				return []Option{
					{Label: "Run for a river crossing", Effect: func(gs *state.GameState, h Helpers) Outcome {
						h.AdvanceTime(2)
						gs.DistanceTraveled += 5
						return Say("You race for a nearby river, hoping the water will deter the wraith. The desperate flight takes its toll.")
					}},
					{Label: "Hide in the grass", Effect: func(gs *state.GameState, h Helpers) Outcome {
						h.AdvanceTime(3)
						if h.Rand().Float64() < 0.5 {
							gs.AddMorale(-20)
							return Say("The Rider passes so close you can hear its fell whispers. The terror is immense, but you remain unseen.")
						}
						return Say("You lie still for what feels like an eternity. The Rider eventually moves on.")
					}},
					{Label: "Ward with fire", If: hasLivingRanger, Effect: func(gs *state.GameState, h Helpers) Outcome {
						h.AdvanceTime(1)
						gs.AddMorale(-5)
						return Say("Aragorn brandishes a torch, and the Rider recoils from the flame, giving you time to escape.")
					}},
				}
			},
		},
		{
			ID:          "mordor_despair",
			Name:        "Oppressive Despair",
			Description: "The air of Mordor is a poison. A deep despair settles on the party, a palpable weight of hopelessness that saps your will to continue.",
			Trigger:     TriggerTravel,
			Kind:        KindHostile,
			Weight:      20,
			If: func(gs *state.GameState) bool {
				return gs.DiscoveredStops["blackgate"]
			},
			Options: []Option{
				{Label: "Endure it", Effect: func(gs *state.GameState, h Helpers) Outcome {
					gs.AddMorale(-15)
					return Say("You press on, but the shadow weighs heavily on your hearts.")
				}},
			},
		},
	}
}

// damageParty spreads randomized damage over the living roster, halved for
// Frodo once he carries Sting and the mithril coat.
func damageParty(gs *state.GameState, h Helpers, maxDamage float64) {
	for _, m := range gs.LivingMembers() {
		damage := h.Rand().Float64() * maxDamage
		if m.Name == "Frodo" && gs.Flags[state.FlagStingAndMithril] {
			damage *= 0.5
		}
		m.Damage(damage)
	}
}
