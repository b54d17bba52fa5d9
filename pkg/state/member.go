package state

// Species determines a member's odds in a death roll. The set is fixed;
// content tables never introduce new species at runtime.
type Species string

const (
	SpeciesHobbit Species = "hobbit"
	SpeciesMan    Species = "man"
	SpeciesDwarf  Species = "dwarf"
	SpeciesElf    Species = "elf"
	SpeciesWizard Species = "wizard"
)

// MaxHealth is the ceiling for any member's health. Inflows clamp here;
// outflows are allowed to run negative until a death or game-over check
// reads them.
const MaxHealth = 100.0

// Member is one character in the roster. A member at health <= 0 is dead
// but stays in the roster unless a story trigger removes them.
type Member struct {
	Name    string  `json:"name"`
	Species Species `json:"species"`
	Health  float64 `json:"health"`
}

// Alive reports whether the member still counts toward food consumption,
// damage spreads, and the living-member game-over condition.
func (m *Member) Alive() bool {
	return m.Health > 0
}

// Heal raises health, clamped to MaxHealth. Dead members are not revived.
func (m *Member) Heal(amount float64) {
	if !m.Alive() {
		return
	}
	m.Health += amount
	if m.Health > MaxHealth {
		m.Health = MaxHealth
	}
}

// Damage lowers health without flooring at zero. Some encounter text
// branches on the exact pre-floor value, so the floor is applied only by
// the death and game-over checks that consume it.
func (m *Member) Damage(amount float64) {
	m.Health -= amount
}
