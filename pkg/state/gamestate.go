package state

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Mode drives which scheduler and UI path is active for a run.
type Mode string

const (
	ModePaused    Mode = "paused"
	ModeTraveling Mode = "traveling"
	ModeEvent     Mode = "event"
	ModeCamp      Mode = "camp"
	ModeTown      Mode = "town"
)

// Boolean flag keys used by story triggers and encounter predicates.
const (
	FlagMetStrider      = "met_strider"
	FlagCouncilComplete = "council_complete"
	FlagAteDinner       = "ate_dinner"
	FlagStingAndMithril = "sting_and_mithril"
	FlagGollumFollowing = "gollum_following"
)

// Counter keys for multi-stage towns and bounded retries.
const (
	CounterRivendellPhase    = "rivendell_phase"
	CounterMoriaPhase        = "moria_phase"
	CounterCaradhrasAttempts = "caradhras_attempts"
)

// BuffSustainingWater suspends hourly food consumption while active.
const BuffSustainingWater = "sustaining_water"

// ErrGameOver is returned by operations invoked after the run has ended.
var ErrGameOver = errors.New("run is over: state is frozen")

// Resources are the shared party pools. Gold never auto-decays; food decays
// hourly during time advances; supplies are spent only by explicit choices.
type Resources struct {
	Food     float64 `json:"food"`
	Supplies float64 `json:"supplies"`
	Gold     float64 `json:"gold"`
}

// Followup is the navigation taken when a continue screen is dismissed.
// The zero value resumes the paused travel view.
type Followup struct {
	Town        string `json:"town,omitempty"`
	EncounterID string `json:"encounter_id,omitempty"`
}

// Prompt is a presented encounter awaiting a player choice. It is stored on
// the state so a stateless server can re-derive the authoritative option
// list and detect stale selections. Continue marks a single-dismiss
// narrative screen whose choice index is ignored; Followup then selects
// the next view.
type Prompt struct {
	EncounterID string    `json:"encounter_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Options     []string  `json:"options"`
	Continue    bool      `json:"continue,omitempty"`
	Followup    *Followup `json:"followup,omitempty"`
}

// Ending summarizes a finished run, win or loss.
type Ending struct {
	Victory bool   `json:"victory"`
	Title   string `json:"title"`
	Text    string `json:"text"`
}

// GameState is the single mutable record of an in-progress run. It is owned
// by the engine; every other component reads snapshots of it.
type GameState struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Seed and OpCount drive the derived random source, so a restored
	// snapshot reproduces subsequent tick behavior.
	Seed    int64  `json:"seed"`
	OpCount uint64 `json:"op_count"`

	ElapsedHours     float64 `json:"elapsed_hours"`
	DistanceTraveled float64 `json:"distance_traveled"`
	TargetDistance   float64 `json:"target_distance"`

	Resources Resources `json:"resources"`
	Morale    float64   `json:"morale"`

	Roster []*Member `json:"roster"`

	Location         string             `json:"location"`
	PathTaken        []string           `json:"path_taken"`
	DiscoveredStops  map[string]bool    `json:"discovered_stops"`
	CompletedActions map[string]bool    `json:"completed_actions,omitempty"`
	Flags            map[string]bool    `json:"flags,omitempty"`
	Counters         map[string]int     `json:"counters,omitempty"`
	Buffs            map[string]float64 `json:"buffs,omitempty"`
	Inventory        map[string]int     `json:"inventory,omitempty"`

	Mode        Mode    `json:"mode"`
	AutoCamp    bool    `json:"auto_camp,omitempty"`
	QuickTravel bool    `json:"quick_travel,omitempty"`
	StoryOnly   bool    `json:"story_only,omitempty"`
	Pending     *Prompt `json:"pending,omitempty"`

	IsOver bool    `json:"is_over"`
	Ending *Ending `json:"ending,omitempty"`
}

// New creates a bare run with empty collections. Resource presets, the
// starting roster and any fast-forward replay are applied by the engine.
func New() *GameState {
	now := time.Now()
	return &GameState{
		ID:               uuid.New(),
		CreatedAt:        now,
		UpdatedAt:        now,
		Morale:           100,
		Mode:             ModePaused,
		PathTaken:        make([]string, 0, 8),
		DiscoveredStops:  make(map[string]bool),
		CompletedActions: make(map[string]bool),
		Flags:            make(map[string]bool),
		Counters:         make(map[string]int),
		Buffs:            make(map[string]float64),
		Inventory:        make(map[string]int),
	}
}

// LivingMembers returns roster members with health above zero, in roster
// order.
func (gs *GameState) LivingMembers() []*Member {
	living := make([]*Member, 0, len(gs.Roster))
	for _, m := range gs.Roster {
		if m.Alive() {
			living = append(living, m)
		}
	}
	return living
}

// LivingCount is len(LivingMembers) without the allocation.
func (gs *GameState) LivingCount() int {
	n := 0
	for _, m := range gs.Roster {
		if m.Alive() {
			n++
		}
	}
	return n
}

// FindMember returns the roster member with the given name, or nil.
func (gs *GameState) FindMember(name string) *Member {
	for _, m := range gs.Roster {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// HasLivingMember reports whether any of the named members is alive.
// Used by encounter predicates such as "a ranger can guide you".
func (gs *GameState) HasLivingMember(names ...string) bool {
	for _, name := range names {
		if m := gs.FindMember(name); m != nil && m.Alive() {
			return true
		}
	}
	return false
}

// AddMorale applies a morale change. Inflows clamp at 100; outflows may go
// negative and are treated as <= 0 by the game-over check.
func (gs *GameState) AddMorale(delta float64) {
	gs.Morale += delta
	if gs.Morale > 100 {
		gs.Morale = 100
	}
}

// AddFood raises the food pool. Decay runs through the time simulator,
// which floors at zero.
func (gs *GameState) AddFood(amount float64) {
	gs.Resources.Food += amount
}

// SpendSupplies reduces supplies, flooring at zero.
func (gs *GameState) SpendSupplies(amount float64) {
	gs.Resources.Supplies -= amount
	if gs.Resources.Supplies < 0 {
		gs.Resources.Supplies = 0
	}
}

// MarkVisited commits an arrival: current location, append-only path
// history, and the monotonically growing discovered set.
func (gs *GameState) MarkVisited(key string) {
	gs.Location = key
	if len(gs.PathTaken) == 0 || gs.PathTaken[len(gs.PathTaken)-1] != key {
		gs.PathTaken = append(gs.PathTaken, key)
	}
	gs.DiscoveredStops[key] = true
}

// BuffActive reports whether the named buff covers the current elapsed time.
func (gs *GameState) BuffActive(name string) bool {
	expiry, ok := gs.Buffs[name]
	return ok && expiry > gs.ElapsedHours
}

// TimeOfDay is the hour-of-day component of elapsed time.
func (gs *GameState) TimeOfDay() float64 {
	tod := gs.ElapsedHours
	for tod >= 24 {
		tod -= 24
	}
	return tod
}
