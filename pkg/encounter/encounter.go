// Package encounter models the choice-scenarios presented during a run:
// plot-fixed landmark encounters, randomly sampled travel encounters, and
// town action menus. Definitions are data plus effect funcs; all mutation
// happens through the explicit state argument and the Helpers capability
// surface, never through ambient globals.
package encounter

import (
	"math/rand"
	"sort"

	"github.com/jwebster45206/ringtrail/pkg/state"
)

// Trigger distinguishes plot-fixed encounters from randomly sampled ones.
type Trigger string

const (
	TriggerLandmark Trigger = "landmark_arrival"
	TriggerTravel   Trigger = "travel"
)

// Kind is display-oriented flavor; the engine branches only on Trigger.
type Kind string

const (
	KindStory    Kind = "story"
	KindFriendly Kind = "friendly"
	KindHostile  Kind = "hostile"
	KindNeutral  Kind = "neutral"
)

// Predicate is a pure eligibility check against current state.
type Predicate func(gs *state.GameState) bool

// Helpers is the capability surface handed to effects: time advance, the
// seeded roll source, death rolls, navigation intents, and the story
// triggers. The engine implements it; tests supply fakes.
type Helpers interface {
	// Rand is the run's seeded roll source. All effect randomness must
	// come from here.
	Rand() *rand.Rand

	// AdvanceTime advances the clock/resource simulator.
	AdvanceTime(hours float64)

	// DeathRolls runs the species-keyed death check over every living
	// member and returns a casualty narrative, or "" if nobody fell.
	DeathRolls(cause string) string

	// GameOver ends the run immediately with an explicit reason.
	GameOver(reason string)

	// Story triggers. Each is idempotent on repeat.
	RecruitStrider()
	RenameStriderToAragorn()
	FormFellowship()
	GandalfFalls()
	FellowshipBroken()
}

// Outcome is what an effect hands back to the resolver. The zero value
// means "handled": the effect performed its own transition (or ended the
// game) and the resolver must take no further action.
type Outcome struct {
	// Title overrides the continue-screen title; defaults to the
	// encounter or action name.
	Title string `json:"title,omitempty"`

	// Text is narrative shown on a continue screen (or, for town
	// actions, in the town dialogue panel).
	Text string `json:"text,omitempty"`

	// Retry re-presents the same encounter with Text merged in as
	// escalating flavor, instead of showing a continue screen.
	Retry bool `json:"retry,omitempty"`

	// GoToTown / GoToEncounter redirect the continue screen's
	// continuation. Default continuation is the paused travel view.
	GoToTown      string `json:"go_to_town,omitempty"`
	GoToEncounter string `json:"go_to_encounter,omitempty"`

	// GoToTravel requests the paused travel view with no continue
	// screen at all.
	GoToTravel bool `json:"go_to_travel,omitempty"`
}

// Say builds a plain narrative outcome.
func Say(text string) Outcome {
	return Outcome{Text: text}
}

// Done signals the effect already handled the transition.
func Done() Outcome {
	return Outcome{}
}

// Handled reports whether the resolver should take no further action.
func (o Outcome) Handled() bool {
	return o.Text == "" && !o.Retry && o.GoToTown == "" && o.GoToEncounter == "" && !o.GoToTravel
}

// Effect executes a chosen option against game state.
type Effect func(gs *state.GameState, h Helpers) Outcome

// Option is one selectable choice within an encounter.
type Option struct {
	Label string
	// If gates the option on current state.
	If Predicate
	// Chance gates the option on a presentation-time roll (0 = always
	// shown). Resolution ignores it: a label the UI echoes back was by
	// definition presented.
	Chance float64
	Effect Effect
}

// PuzzleChoice is one answer in a binary-puzzle encounter.
type PuzzleChoice struct {
	Label   string
	Correct bool
}

// Puzzle is the right/wrong choice shape: a fixed answer set with
// dedicated success and failure handlers instead of per-option effects.
type Puzzle struct {
	Choices   []PuzzleChoice
	OnSuccess Effect
	OnFailure Effect
}

// Encounter is a presented choice-scenario. Options are a tagged variant:
// exactly one of Options, OptionsFunc, or Puzzle is set.
type Encounter struct {
	ID          string
	Name        string
	Description string
	Trigger     Trigger
	Kind        Kind

	// Weight is the sampling weight for travel encounters. Non-positive
	// weight makes the encounter ineligible.
	Weight int
	// If gates travel eligibility on current state.
	If Predicate

	Options     []Option
	OptionsFunc func(gs *state.GameState) []Option
	Puzzle      *Puzzle
}

// CandidateOptions returns the full option list for resolution matching,
// resolving the factory variant but applying no eligibility filtering.
func (e *Encounter) CandidateOptions(gs *state.GameState) []Option {
	if e.OptionsFunc != nil {
		return e.OptionsFunc(gs)
	}
	return e.Options
}

// PresentOptions resolves the option list once for presentation, applying
// state predicates and presentation-time chance gates.
func (e *Encounter) PresentOptions(gs *state.GameState, r *rand.Rand) []Option {
	candidates := e.CandidateOptions(gs)
	opts := make([]Option, 0, len(candidates))
	for _, opt := range candidates {
		if opt.If != nil && !opt.If(gs) {
			continue
		}
		if opt.Chance > 0 && r.Float64() >= opt.Chance {
			continue
		}
		opts = append(opts, opt)
	}
	return opts
}

// Catalog is the full encounter table keyed by ID.
type Catalog map[string]*Encounter

// Get returns the encounter for id, or nil.
func (c Catalog) Get(id string) *Encounter {
	return c[id]
}

// Has reports whether id exists in the catalog.
func (c Catalog) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// TravelEligible returns the travel-triggered encounters whose weight is
// positive and whose predicate (if any) holds, sorted by ID so weighted
// sampling is deterministic for a given roll sequence.
func (c Catalog) TravelEligible(gs *state.GameState) []*Encounter {
	eligible := make([]*Encounter, 0, len(c))
	for _, e := range c {
		if e.Trigger != TriggerTravel || e.Weight <= 0 {
			continue
		}
		if e.If != nil && !e.If(gs) {
			continue
		}
		eligible = append(eligible, e)
	}
	sort.Slice(eligible, func(i, k int) bool { return eligible[i].ID < eligible[k].ID })
	return eligible
}

// PickWeighted samples one encounter with probability proportional to its
// weight. Returns nil for an empty list.
func PickWeighted(r *rand.Rand, list []*Encounter) *Encounter {
	total := 0
	for _, e := range list {
		total += e.Weight
	}
	if total <= 0 {
		return nil
	}
	roll := r.Float64() * float64(total)
	for _, e := range list {
		roll -= float64(e.Weight)
		if roll <= 0 {
			return e
		}
	}
	return list[len(list)-1]
}
