// Package journey holds the static content describing the route: the
// location graph and the profession resource presets. Content is loaded
// from a JSON file by the storage layer and validated once at startup;
// the engine treats a loaded Journey as immutable.
package journey

// LocationKind selects the arrival handling for a node.
type LocationKind string

const (
	KindTown LocationKind = "town"
	KindWild LocationKind = "wild"
	KindEnd  LocationKind = "end"
)

// Location is one node in the route graph. Next is empty for terminal
// nodes and for nodes reachable only through scripted reroutes.
type Location struct {
	Key              string       `json:"key"`
	Name             string       `json:"name"`
	Distance         float64      `json:"distance"`
	LegName          string       `json:"leg_name,omitempty"`
	Next             string       `json:"next,omitempty"`
	Kind             LocationKind `json:"kind"`
	ArrivalEncounter string       `json:"arrival_encounter,omitempty"`
	Description      string       `json:"description,omitempty"`
}

// Profession is a starting resource preset.
type Profession struct {
	Food     float64 `json:"food"`
	Supplies float64 `json:"supplies"`
	Gold     float64 `json:"gold"`
}

// Journey is the full route content consumed by the engine.
type Journey struct {
	Start          string                `json:"start"`
	TargetDistance float64               `json:"target_distance"`
	Locations      map[string]*Location  `json:"locations"`
	Professions    map[string]Profession `json:"professions"`
}

// Location returns the node for key, or nil when the key is unknown.
// Callers on validated content may assume a non-nil result for any key
// stored in GameState.Location.
func (j *Journey) Location(key string) *Location {
	return j.Locations[key]
}

// NextOf returns the node following key on the main chain, or nil at the
// end of the route.
func (j *Journey) NextOf(key string) *Location {
	loc := j.Locations[key]
	if loc == nil || loc.Next == "" {
		return nil
	}
	return j.Locations[loc.Next]
}

// CanonicalPath walks the Next chain from the start node. Reroute-only
// nodes (reachable through scripted branches) are not included.
func (j *Journey) CanonicalPath() []string {
	path := make([]string, 0, len(j.Locations))
	seen := make(map[string]bool, len(j.Locations))
	for key := j.Start; key != "" && !seen[key]; {
		seen[key] = true
		path = append(path, key)
		loc := j.Locations[key]
		if loc == nil {
			break
		}
		key = loc.Next
	}
	return path
}

// End returns the key of the terminal (win) node, or "" if the content is
// invalid.
func (j *Journey) End() string {
	for key, loc := range j.Locations {
		if loc.Kind == KindEnd {
			return key
		}
	}
	return ""
}
