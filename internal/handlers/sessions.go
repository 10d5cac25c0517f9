package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/session"
	"github.com/jwebster45206/chronicle/pkg/storage"
)

const sessionsPrefix = "/v1/sessions"

// CreateSessionRequest defines the request body for creating a session.
// An empty body starts at the first era.
type CreateSessionRequest struct {
	EraID string `json:"era_id,omitempty"`
}

// sessionLockStripes bounds the mutexes that serialise updates to one session.
const sessionLockStripes = 64

type SessionHandler struct {
	storage   storage.Storage
	describer era.Describer
	logger    *slog.Logger

	// PATCH loads, applies and saves; these keep concurrent updates to
	// one session from overwriting each other within this process.
	locks [sessionLockStripes]sync.Mutex
}

func NewSessionHandler(storage storage.Storage, describer era.Describer, logger *slog.Logger) *SessionHandler {
	if describer == nil {
		describer = era.DefaultDescriber
	}
	return &SessionHandler{
		storage:   storage,
		describer: describer,
		logger:    logger,
	}
}

// ServeHTTP handles HTTP requests for explorer sessions
// Routes:
// POST /v1/sessions          - Create a session
// GET /v1/sessions/{id}      - Read a session
// PATCH /v1/sessions/{id}    - Apply an action to a session
// DELETE /v1/sessions/{id}   - Delete a session
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path, sessionsPrefix)

	var id uuid.UUID
	switch len(segments) {
	case 0:
	case 1:
		var err error
		id, err = uuid.Parse(segments[0])
		if err != nil {
			h.logger.Warn("Invalid session ID", "id", segments[0], "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
			return
		}
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodPost:
		if id != uuid.Nil {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Sessions are created with POST /v1/sessions")
			return
		}
		h.handleCreate(w, r)
	case http.MethodGet, http.MethodPatch, http.MethodDelete:
		if id == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Session ID is required for "+r.Method+" requests")
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, id)
		case http.MethodPatch:
			h.handlePatch(w, r, id)
		default:
			h.handleDelete(w, r, id)
		}
	default:
		h.logger.Warn("Method not allowed for sessions endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST, GET, PATCH, DELETE")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	eraID := req.EraID
	if eraID == "" {
		eras, err := h.storage.ListEras(r.Context())
		if err != nil {
			h.logger.Error("Failed to list eras", "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to list eras")
			return
		}
		if len(eras) == 0 {
			writeError(w, h.logger, http.StatusServiceUnavailable, "No eras available")
			return
		}
		eraID = eras[0].ID
	} else {
		e, err := h.storage.GetEra(r.Context(), eraID)
		if err != nil {
			h.logger.Error("Failed to load era", "era_id", eraID, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to load era")
			return
		}
		if e == nil {
			writeError(w, h.logger, http.StatusBadRequest, "Unknown era: "+eraID)
			return
		}
	}

	s := session.New(eraID)
	if err := h.storage.SaveSession(r.Context(), s); err != nil {
		h.logger.Error("Failed to save new session", "error", err, "id", s.ID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.logger.Info("Session created", "id", s.ID.String(), "era_id", eraID)
	writeJSON(w, h.logger, http.StatusCreated, s)
}

// load fetches a session, writing the error response when it cannot.
func (h *SessionHandler) load(w http.ResponseWriter, r *http.Request, id uuid.UUID) *session.Session {
	s, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return nil
	}
	if s == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return nil
	}
	return s
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if s := h.load(w, r, id); s != nil {
		writeJSON(w, h.logger, http.StatusOK, s)
	}
}

func (h *SessionHandler) lock(id uuid.UUID) func() {
	mu := &h.locks[int(id[len(id)-1])%sessionLockStripes]
	mu.Lock()
	return mu.Unlock
}

// handlePatch applies one action. Updates are serialised per session in
// this process only; API replicas sharing a store can still interleave.
func (h *SessionHandler) handlePatch(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var action session.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	unlock := h.lock(id)
	defer unlock()

	s := h.load(w, r, id)
	if s == nil {
		return
	}

	if msg, ok := h.checkTarget(w, r, s, action); !ok {
		if msg != "" {
			writeError(w, h.logger, http.StatusBadRequest, msg)
		}
		return
	}

	if err := s.Apply(action); err != nil {
		if errors.Is(err, session.ErrUnknownAction) || errors.Is(err, session.ErrInvalidAction) {
			writeError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to apply action", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to apply action")
		return
	}

	if err := h.storage.SaveSession(r.Context(), s); err != nil {
		h.logger.Error("Failed to save session", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.logger.Debug("Session updated", "id", id.String(), "action", action.Type)
	writeJSON(w, h.logger, http.StatusOK, s)
}

// checkTarget verifies that the era or region an action names exists.
// Region actions refer to regions of the selected era. A false result
// with an empty message means the response was already written.
func (h *SessionHandler) checkTarget(w http.ResponseWriter, r *http.Request, s *session.Session, a session.Action) (string, bool) {
	eraID := s.SelectedEraID
	switch a.Type {
	case session.ActionSelectEra:
		if a.EraID == "" {
			return "", true
		}
		eraID = a.EraID
	case session.ActionToggleRegion, session.ActionToggleAnalysis, session.ActionToggleNarration:
		if a.RegionID == "" {
			return "", true
		}
	default:
		return "", true
	}

	e, err := h.storage.GetEra(r.Context(), eraID)
	if err != nil {
		h.logger.Error("Failed to load era", "era_id", eraID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load era")
		return "", false
	}
	if e == nil {
		return "Unknown era: " + eraID, false
	}
	if a.Type == session.ActionSelectEra {
		return "", true
	}

	if _, err := era.NewCatalog([]era.Era{*e}, h.describer).Region(eraID, a.RegionID); err != nil {
		return "Unknown region in " + eraID + ": " + a.RegionID, false
	}
	return "", true
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if s := h.load(w, r, id); s == nil {
		return
	}
	if err := h.storage.DeleteSession(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	h.logger.Info("Session deleted", "id", id.String())
	w.WriteHeader(http.StatusNoContent)
}
