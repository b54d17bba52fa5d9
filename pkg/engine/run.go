package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/jwebster45206/ringtrail/pkg/state"
)

var (
	// ErrUnknownProfession rejects a run request with a profession not in
	// the content tables.
	ErrUnknownProfession = errors.New("unknown profession")

	// ErrUnknownStart rejects a start location off the canonical route.
	ErrUnknownStart = errors.New("start location is not on the route")
)

// DebugFlags are the optional run-creation toggles.
type DebugFlags struct {
	QuickTravel bool `json:"quick_travel,omitempty"`
	StoryOnly   bool `json:"story_only,omitempty"`
	AutoCamp    bool `json:"auto_camp,omitempty"`
}

// NewRun creates a fresh run from a profession preset. A non-default
// start location fast-forwards the run there: the story-beat flag side
// effects (not the narrative) of every location before it are replayed
// so the state is consistent with having played that far. The returned
// seed comes from the wall clock; tests overwrite it before ticking.
func (e *Engine) NewRun(profession, startKey string, debug DebugFlags) (*state.GameState, *Result, error) {
	prof, ok := e.journey.Professions[profession]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownProfession, profession)
	}
	if startKey == "" {
		startKey = e.journey.Start
	}
	start := e.journey.Location(startKey)
	if start == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStart, startKey)
	}
	canonical := e.journey.CanonicalPath()
	startIndex := -1
	for i, key := range canonical {
		if key == startKey {
			startIndex = i
			break
		}
	}
	if startIndex < 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStart, startKey)
	}

	gs := state.New()
	gs.Seed = time.Now().UnixNano()
	gs.ElapsedHours = 11
	gs.TargetDistance = e.journey.TargetDistance
	gs.Resources = state.Resources{Food: prof.Food, Supplies: prof.Supplies, Gold: prof.Gold}
	gs.Roster = []*state.Member{
		{Name: "Frodo", Species: state.SpeciesHobbit, Health: state.MaxHealth},
		{Name: "Sam", Species: state.SpeciesHobbit, Health: state.MaxHealth},
		{Name: "Merry", Species: state.SpeciesHobbit, Health: state.MaxHealth},
		{Name: "Pippin", Species: state.SpeciesHobbit, Health: state.MaxHealth},
	}
	gs.QuickTravel = debug.QuickTravel
	gs.StoryOnly = debug.StoryOnly
	gs.AutoCamp = debug.AutoCamp

	op := e.begin(gs)
	for _, key := range canonical[:startIndex] {
		op.replayStory(key)
		gs.MarkVisited(key)
	}
	gs.DistanceTraveled = start.Distance
	gs.MarkVisited(startKey)

	if startKey == e.journey.Start {
		if intro := e.catalog.Get("the_journey_begins"); intro != nil {
			op.present(intro, "")
		}
	} else {
		op.emit(Event{Kind: EventTravel, Location: startKey})
	}

	e.logger.Info("run created",
		"run_id", gs.ID,
		"profession", profession,
		"start", startKey,
		"quick_travel", debug.QuickTravel,
		"story_only", debug.StoryOnly)
	return gs, op.finish(), nil
}
