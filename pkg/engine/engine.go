// Package engine orchestrates a run: the clock/resource simulator, the
// travel scheduler, the encounter resolver, the story triggers, and the
// game-over check. The engine itself is stateless and safe to share; all
// run state lives in the GameState passed to each operation. Callers must
// serialize operations per run.
package engine

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jwebster45206/ringtrail/pkg/encounter"
	"github.com/jwebster45206/ringtrail/pkg/journey"
	"github.com/jwebster45206/ringtrail/pkg/state"
)

var (
	// ErrStaleOption means the chosen option no longer matches the
	// authoritative option list. The operation is a no-op.
	ErrStaleOption = errors.New("chosen option does not match the presented options")

	// ErrPendingChoice rejects travel/camp/town operations while an
	// encounter is awaiting a choice.
	ErrPendingChoice = errors.New("an encounter is awaiting a choice")

	// ErrNoPendingChoice rejects a choice when nothing was presented.
	ErrNoPendingChoice = errors.New("no encounter is awaiting a choice")

	// ErrWrongMode rejects an operation not available in the current mode.
	ErrWrongMode = errors.New("operation not available in the current mode")

	// ErrUnknownAction rejects an action id not in the current catalog.
	ErrUnknownAction = errors.New("unknown action")

	// ErrActionUnavailable rejects an action whose eligibility check fails
	// or that was already consumed.
	ErrActionUnavailable = errors.New("action is not currently available")
)

// EventKind mirrors the view transitions the UI renders.
type EventKind string

const (
	EventTravel    EventKind = "travel"
	EventCamp      EventKind = "camp"
	EventTown      EventKind = "town"
	EventLandmark  EventKind = "landmark"
	EventEncounter EventKind = "encounter"
	EventGameOver  EventKind = "game_over"
	EventVictory   EventKind = "victory"
)

// Event is one view transition or encounter presentation produced by an
// operation, in occurrence order.
type Event struct {
	Kind     EventKind     `json:"kind"`
	Location string        `json:"location,omitempty"`
	Title    string        `json:"title,omitempty"`
	Text     string        `json:"text,omitempty"`
	Prompt   *state.Prompt `json:"prompt,omitempty"`
}

// Result carries the events an operation produced. The mutated GameState
// is the rest of the operation's output.
type Result struct {
	Events []Event `json:"events,omitempty"`
}

// Engine binds the static content tables. Run state is passed per call.
type Engine struct {
	journey *journey.Journey
	catalog encounter.Catalog
	towns   map[string]*encounter.Town
	logger  *slog.Logger
}

// New builds an engine over validated content.
func New(j *journey.Journey, catalog encounter.Catalog, towns map[string]*encounter.Town, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		journey: j,
		catalog: catalog,
		towns:   towns,
		logger:  logger,
	}
}

// opCtx is the per-operation context: the run state, the derived roll
// source, and the event accumulator. It implements encounter.Helpers so
// effects receive their capability surface from here.
type opCtx struct {
	e   *Engine
	gs  *state.GameState
	rng *rand.Rand
	res *Result
}

// begin opens an operation. Each operation consumes one OpCount step, so
// the roll source is a pure function of (Seed, OpCount) and a restored
// snapshot replays identically.
func (e *Engine) begin(gs *state.GameState) *opCtx {
	gs.OpCount++
	seed := gs.Seed + int64(gs.OpCount)*0x9e3779b9
	return &opCtx{
		e:   e,
		gs:  gs,
		rng: rand.New(rand.NewSource(seed)),
		res: &Result{},
	}
}

func (op *opCtx) finish() *Result {
	op.gs.UpdatedAt = time.Now()
	return op.res
}

func (op *opCtx) emit(ev Event) {
	op.res.Events = append(op.res.Events, ev)
}

// Rand is the seeded roll source handed to encounter effects.
func (op *opCtx) Rand() *rand.Rand {
	return op.rng
}

// present shows an encounter: the prompt is stored on the state so a
// later choice can be checked against the authoritative option list.
// flavor, when set, replaces the base description (escalating retries).
func (op *opCtx) present(enc *encounter.Encounter, flavor string) {
	var labels []string
	if enc.Puzzle != nil {
		labels = make([]string, 0, len(enc.Puzzle.Choices))
		for _, c := range enc.Puzzle.Choices {
			labels = append(labels, c.Label)
		}
	} else {
		opts := enc.PresentOptions(op.gs, op.rng)
		labels = make([]string, 0, len(opts))
		for _, o := range opts {
			labels = append(labels, o.Label)
		}
	}
	desc := enc.Description
	if flavor != "" {
		desc = flavor
	}
	op.gs.Pending = &state.Prompt{
		EncounterID: enc.ID,
		Title:       enc.Name,
		Description: desc,
		Options:     labels,
	}
	op.gs.Mode = state.ModeEvent
	op.emit(Event{Kind: EventEncounter, Prompt: op.gs.Pending})
}

// continueScreen shows a single-dismiss narrative screen. followup selects
// the view after dismissal; nil resumes the paused travel view.
func (op *opCtx) continueScreen(title, text string, followup *state.Followup) {
	op.gs.Pending = &state.Prompt{
		Title:       title,
		Description: text,
		Options:     []string{"Continue"},
		Continue:    true,
		Followup:    followup,
	}
	op.gs.Mode = state.ModeEvent
	op.emit(Event{Kind: EventEncounter, Prompt: op.gs.Pending})
}

// enterTown switches to the town view for key.
func (op *opCtx) enterTown(key string) {
	t := op.e.towns[key]
	if t == nil {
		op.e.logger.Error("no town catalog for location", "location", key)
		op.gs.Mode = state.ModePaused
		op.emit(Event{Kind: EventTravel, Location: op.gs.Location})
		return
	}
	op.gs.Mode = state.ModeTown
	op.emit(Event{Kind: EventTown, Location: key, Title: t.Name, Text: t.Description})
}
