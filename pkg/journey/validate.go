package journey

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks the content tables for programmer errors so they fail at
// load time instead of mid-tick. knownEncounter reports whether an
// encounter ID exists in the catalog; pass nil to skip that check (the
// storage layer validates graph shape before the catalog is available).
func (j *Journey) Validate(knownEncounter func(id string) bool) error {
	var errs []string

	if j.Start == "" {
		errs = append(errs, "start location is required")
	} else if j.Locations[j.Start] == nil {
		errs = append(errs, fmt.Sprintf("start location %q is not in the graph", j.Start))
	}
	if j.TargetDistance <= 0 {
		errs = append(errs, "target_distance must be positive")
	}

	endCount := 0
	keys := make([]string, 0, len(j.Locations))
	for key := range j.Locations {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		loc := j.Locations[key]
		if loc.Key != "" && loc.Key != key {
			errs = append(errs, fmt.Sprintf("location %q: key field %q does not match map key", key, loc.Key))
		}
		if loc.Name == "" {
			errs = append(errs, fmt.Sprintf("location %q: name is required", key))
		}
		switch loc.Kind {
		case KindTown, KindWild:
		case KindEnd:
			endCount++
			if loc.Next != "" {
				errs = append(errs, fmt.Sprintf("location %q: end node must not have a next", key))
			}
		default:
			errs = append(errs, fmt.Sprintf("location %q: unknown kind %q", key, loc.Kind))
		}
		if loc.Next != "" {
			next := j.Locations[loc.Next]
			if next == nil {
				errs = append(errs, fmt.Sprintf("location %q: next %q is not in the graph", key, loc.Next))
			} else if next.Distance <= loc.Distance {
				errs = append(errs, fmt.Sprintf("location %q: next %q does not increase distance (%.0f -> %.0f)", key, loc.Next, loc.Distance, next.Distance))
			}
		}
		if loc.ArrivalEncounter != "" && knownEncounter != nil && !knownEncounter(loc.ArrivalEncounter) {
			errs = append(errs, fmt.Sprintf("location %q: arrival encounter %q is not in the catalog", key, loc.ArrivalEncounter))
		}
	}

	if endCount != 1 {
		errs = append(errs, fmt.Sprintf("graph must have exactly one end node, found %d", endCount))
	}

	if len(j.Professions) == 0 {
		errs = append(errs, "at least one profession preset is required")
	}
	profNames := make([]string, 0, len(j.Professions))
	for name := range j.Professions {
		profNames = append(profNames, name)
	}
	sort.Strings(profNames)
	for _, name := range profNames {
		p := j.Professions[name]
		if p.Food <= 0 || p.Supplies <= 0 || p.Gold <= 0 {
			errs = append(errs, fmt.Sprintf("profession %q: presets must be positive", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("journey content invalid:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
