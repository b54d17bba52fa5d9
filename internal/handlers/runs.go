package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/ringtrail/internal/storage"
	"github.com/jwebster45206/ringtrail/pkg/engine"
	"github.com/jwebster45206/ringtrail/pkg/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// RunResponse is the payload for every run operation: the post-operation
// snapshot plus the view transitions the operation produced.
type RunResponse struct {
	State  *state.GameState `json:"state"`
	Events []engine.Event   `json:"events,omitempty"`
}

// CreateRunRequest starts a new run.
type CreateRunRequest struct {
	Profession    string `json:"profession"`
	StartLocation string `json:"start_location,omitempty"`
	QuickTravel   bool   `json:"quick_travel,omitempty"`
	StoryOnly     bool   `json:"story_only,omitempty"`
	AutoCamp      bool   `json:"auto_camp,omitempty"`
}

type TravelRequest struct {
	Op string `json:"op"` // "start", "stop" or "camp"
}

type ChoiceRequest struct {
	OptionIndex int `json:"option_index"`
}

type CampRequest struct {
	Kind string `json:"kind"`
}

type TownRequest struct {
	ActionID string `json:"action_id"`
}

// RunsHandler serves the run lifecycle and gameplay operations.
// Routes:
//
//	POST   /v1/runs              - create a run
//	GET    /v1/runs/{id}         - read a run snapshot
//	DELETE /v1/runs/{id}         - discard a run
//	POST   /v1/runs/{id}/travel  - start/stop traveling, or make camp
//	POST   /v1/runs/{id}/tick    - advance one travel tick
//	POST   /v1/runs/{id}/choice  - resolve a pending encounter choice
//	POST   /v1/runs/{id}/camp    - perform a camp action
//	POST   /v1/runs/{id}/town    - perform a town action
//
// Gameplay operations are serialized per run so a tick and a choice can
// never interleave on the same state.
type RunsHandler struct {
	engine  *engine.Engine
	storage storage.Storage
	logger  *slog.Logger
	locks   sync.Map // uuid.UUID -> *sync.Mutex
}

func NewRunsHandler(eng *engine.Engine, storage storage.Storage, logger *slog.Logger) *RunsHandler {
	return &RunsHandler{
		engine:  eng,
		storage: storage,
		logger:  logger,
	}
}

func (h *RunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/runs"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	runID, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid run ID", "id", parts[0], "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, runID)
		case http.MethodDelete:
			h.handleDelete(w, r, runID)
		default:
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
		return
	}

	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	switch parts[1] {
	case "travel":
		h.handleOp(w, r, runID, h.opTravel)
	case "tick":
		h.handleOp(w, r, runID, func(r *http.Request, gs *state.GameState) (*engine.Result, error) {
			return h.engine.Tick(gs)
		})
	case "choice":
		h.handleOp(w, r, runID, h.opChoice)
	case "camp":
		h.handleOp(w, r, runID, h.opCamp)
	case "town":
		h.handleOp(w, r, runID, h.opTown)
	default:
		h.writeError(w, http.StatusNotFound, "Unknown run operation")
	}
}

func (h *RunsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Profession == "" {
		h.writeError(w, http.StatusBadRequest, "profession is required")
		return
	}

	gs, res, err := h.engine.NewRun(req.Profession, req.StartLocation, engine.DebugFlags{
		QuickTravel: req.QuickTravel,
		StoryOnly:   req.StoryOnly,
		AutoCamp:    req.AutoCamp,
	})
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if err := h.storage.SaveRun(r.Context(), gs); err != nil {
		h.logger.Error("Failed to save new run", "run_id", gs.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to save run")
		return
	}

	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, RunResponse{State: gs, Events: res.Events})
}

func (h *RunsHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	gs, err := h.storage.LoadRun(r.Context(), id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load run")
		return
	}
	if gs == nil {
		h.writeError(w, http.StatusNotFound, "Run not found")
		return
	}
	h.writeJSON(w, RunResponse{State: gs})
}

func (h *RunsHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteRun(r.Context(), id); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to delete run")
		return
	}
	// Drop the serialization guard with the run. An operation racing the
	// delete keeps its own mutex reference and then fails the load.
	h.locks.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// opFunc runs one engine operation against a loaded run.
type opFunc func(r *http.Request, gs *state.GameState) (*engine.Result, error)

// handleOp is the shared load -> engine op -> save path. The per-run
// mutex keeps operations atomic with respect to the shared state.
func (h *RunsHandler) handleOp(w http.ResponseWriter, r *http.Request, id uuid.UUID, op opFunc) {
	mu := h.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	gs, err := h.storage.LoadRun(r.Context(), id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load run")
		return
	}
	if gs == nil {
		h.writeError(w, http.StatusNotFound, "Run not found")
		return
	}

	res, err := op(r, gs)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if err := h.storage.SaveRun(r.Context(), gs); err != nil {
		h.logger.Error("Failed to save run", "run_id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to save run")
		return
	}

	h.writeJSON(w, RunResponse{State: gs, Events: res.Events})
}

func (h *RunsHandler) opTravel(r *http.Request, gs *state.GameState) (*engine.Result, error) {
	var req TravelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errBadRequest
	}
	switch req.Op {
	case "start":
		return h.engine.StartTravel(gs)
	case "stop":
		return h.engine.StopTravel(gs)
	case "camp":
		return h.engine.MakeCamp(gs)
	default:
		return nil, errBadRequest
	}
}

func (h *RunsHandler) opChoice(r *http.Request, gs *state.GameState) (*engine.Result, error) {
	var req ChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errBadRequest
	}
	return h.engine.ResolveChoice(gs, req.OptionIndex)
}

func (h *RunsHandler) opCamp(r *http.Request, gs *state.GameState) (*engine.Result, error) {
	var req CampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errBadRequest
	}
	return h.engine.PerformCampAction(gs, req.Kind)
}

func (h *RunsHandler) opTown(r *http.Request, gs *state.GameState) (*engine.Result, error) {
	var req TownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errBadRequest
	}
	return h.engine.PerformTownAction(gs, req.ActionID)
}

func (h *RunsHandler) lockFor(id uuid.UUID) *sync.Mutex {
	mu, _ := h.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

var errBadRequest = errors.New("invalid request body")

func (h *RunsHandler) writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, engine.ErrUnknownProfession),
		errors.Is(err, engine.ErrUnknownStart),
		errors.Is(err, engine.ErrUnknownAction):
		status = http.StatusBadRequest
	case errors.Is(err, state.ErrGameOver),
		errors.Is(err, engine.ErrPendingChoice),
		errors.Is(err, engine.ErrNoPendingChoice),
		errors.Is(err, engine.ErrWrongMode),
		errors.Is(err, engine.ErrStaleOption),
		errors.Is(err, engine.ErrActionUnavailable):
		status = http.StatusConflict
	default:
		h.logger.Error("Run operation failed", "error", err)
	}
	h.writeError(w, status, err.Error())
}

func (h *RunsHandler) writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}

func (h *RunsHandler) writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
