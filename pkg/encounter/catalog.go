package encounter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwebster45206/ringtrail/pkg/journey"
)

// DefaultCatalog assembles the built-in encounter table. The journey is
// needed because a few encounters branch on the current location's kind.
func DefaultCatalog(j *journey.Journey) Catalog {
	c := make(Catalog)
	for _, e := range storyEncounters() {
		c[e.ID] = e
	}
	for _, e := range travelEncounters(j) {
		c[e.ID] = e
	}
	return c
}

// Validate checks the encounter table for programmer errors, mirroring the
// journey validation style: accumulate everything, fail once.
func (c Catalog) Validate() error {
	var errs []string

	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		e := c[id]
		if e.ID != id {
			errs = append(errs, fmt.Sprintf("encounter %q: ID field %q does not match map key", id, e.ID))
		}
		if e.Name == "" {
			errs = append(errs, fmt.Sprintf("encounter %q: name is required", id))
		}
		if e.Weight < 0 {
			errs = append(errs, fmt.Sprintf("encounter %q: weight must be non-negative", id))
		}
		if e.Trigger == TriggerTravel && e.Weight == 0 {
			errs = append(errs, fmt.Sprintf("encounter %q: travel encounter needs a positive weight", id))
		}

		variants := 0
		if len(e.Options) > 0 {
			variants++
		}
		if e.OptionsFunc != nil {
			variants++
		}
		if e.Puzzle != nil {
			variants++
		}
		if variants != 1 {
			errs = append(errs, fmt.Sprintf("encounter %q: exactly one of options, options func, or puzzle must be set", id))
		}

		for i, opt := range e.Options {
			if opt.Label == "" {
				errs = append(errs, fmt.Sprintf("encounter %q: option %d has no label", id, i))
			}
			if opt.Effect == nil {
				errs = append(errs, fmt.Sprintf("encounter %q: option %d has no effect", id, i))
			}
		}

		if e.Puzzle != nil {
			correct := 0
			for _, choice := range e.Puzzle.Choices {
				if choice.Correct {
					correct++
				}
			}
			if correct != 1 {
				errs = append(errs, fmt.Sprintf("encounter %q: puzzle must have exactly one correct choice, found %d", id, correct))
			}
			if e.Puzzle.OnSuccess == nil || e.Puzzle.OnFailure == nil {
				errs = append(errs, fmt.Sprintf("encounter %q: puzzle needs both success and failure handlers", id))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("encounter catalog invalid:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ValidateTowns checks the town catalogs against the location graph.
func ValidateTowns(towns map[string]*Town, j *journey.Journey) error {
	var errs []string

	keys := make([]string, 0, len(towns))
	for key := range towns {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		t := towns[key]
		if t.Key != key {
			errs = append(errs, fmt.Sprintf("town %q: key field %q does not match map key", key, t.Key))
		}
		loc := j.Location(key)
		if loc == nil {
			errs = append(errs, fmt.Sprintf("town %q: location is not in the graph", key))
		} else if loc.Kind != journey.KindTown {
			errs = append(errs, fmt.Sprintf("town %q: location kind is %q, want town", key, loc.Kind))
		}
		if len(t.Actions) == 0 {
			errs = append(errs, fmt.Sprintf("town %q: needs at least one action", key))
		}
		exits := 0
		seen := make(map[string]bool, len(t.Actions))
		for _, a := range t.Actions {
			if a.ID == "" || a.Label == "" {
				errs = append(errs, fmt.Sprintf("town %q: actions need both id and label", key))
			}
			if seen[a.ID] {
				errs = append(errs, fmt.Sprintf("town %q: duplicate action id %q", key, a.ID))
			}
			seen[a.ID] = true
			if a.Effect == nil {
				errs = append(errs, fmt.Sprintf("town %q: action %q has no effect", key, a.ID))
			}
			if a.IsExit {
				exits++
			}
		}
		if exits == 0 {
			errs = append(errs, fmt.Sprintf("town %q: needs at least one exit action", key))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("town catalog invalid:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
