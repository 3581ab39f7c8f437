package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/coincollector-go/internal/model"
	"github.com/mcoot/coincollector-go/internal/storage"
)

// matchResponse is the wire shape of one completed match
type matchResponse struct {
	ID       string                 `json:"id"`
	Winner   model.PlayerID         `json:"winner,omitempty"`
	Draw     bool                   `json:"draw"`
	Scores   map[model.PlayerID]int `json:"scores"`
	Reason   model.EndReason        `json:"reason"`
	Duration float64                `json:"durationSeconds"`
	EndedAt  time.Time              `json:"endedAt"`
}

func matchFromModel(m *model.MatchSummary) matchResponse {
	return matchResponse{
		ID:       string(m.ID),
		Winner:   m.Result.Winner,
		Draw:     m.Result.Draw,
		Scores:   m.Result.Scores,
		Reason:   m.Result.Reason,
		Duration: m.Duration.Seconds(),
		EndedAt:  m.EndedAt,
	}
}

// MatchHandler serves the read-only match history
type MatchHandler struct {
	store storage.Storage
}

// NewMatchHandler creates a match history handler
func NewMatchHandler(store storage.Storage) *MatchHandler {
	return &MatchHandler{store: store}
}

// List handles GET /matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.store.ListMatches(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list matches")
		return
	}
	out := make([]matchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchFromModel(m))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	match, err := h.store.GetMatch(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrMatchNotFound) {
			writeError(w, http.StatusNotFound, "match not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load match")
		return
	}
	writeJSON(w, http.StatusOK, matchFromModel(match))
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
