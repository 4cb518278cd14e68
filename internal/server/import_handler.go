package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"acmcompass/internal/model"
	"acmcompass/internal/store"
)

// importPayload is what the bookmarklet sends, either bare or as the first
// element of a {"data": [...]} envelope.
type importPayload struct {
	Name          string                 `json:"name"`
	TotalProblems int                    `json:"total_problems"`
	Problems      []model.ContestProblem `json:"problems"`
	UserRank      string                 `json:"user_rank"`
}

// importResponse is the per-request result, echoed back inside the same
// {"data": [...]} envelope the caller expects.
type importResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Name          string `json:"name,omitempty"`
	TotalProblems int    `json:"total_problems,omitempty"`
	UserRank      string `json:"user_rank,omitempty"`
}

type envelope struct {
	Data []json.RawMessage `json:"data"`
}

// ImportHandler receives bookmarklet submissions and parks them in the
// single-slot pending cache for the operator to claim in the UI.
type ImportHandler struct {
	pending *store.PendingImport
	log     *zap.Logger
}

// NewImportHandler creates the handler.
func NewImportHandler(pending *store.PendingImport, log *zap.Logger) *ImportHandler {
	return &ImportHandler{pending: pending, log: log}
}

// RegisterRoutes mounts the import routes on r.
func (h *ImportHandler) RegisterRoutes(r chi.Router) {
	r.Post("/import", h.importContest)
	r.Get("/import/status", h.importStatus)
}

// importContest accepts a standings payload and caches it as the pending
// import. Success is reported as soon as the payload is cached; saving the
// record is a separate, operator-driven step.
func (h *ImportHandler) importContest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respond(w, http.StatusBadRequest, importResponse{Message: "reading request body failed"})
		return
	}

	// The bookmarklet wraps the payload in a one-element data array; accept
	// a bare payload too.
	payloadBytes := body
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		payloadBytes = env.Data[0]
	}

	var p importPayload
	if err := json.Unmarshal(payloadBytes, &p); err != nil {
		respond(w, http.StatusBadRequest, importResponse{Message: "invalid JSON payload: " + err.Error()})
		return
	}

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		respond(w, http.StatusOK, importResponse{Message: "missing contest name"})
		return
	}
	if len(p.Problems) == 0 {
		respond(w, http.StatusOK, importResponse{Message: "no problem data in payload"})
		return
	}

	total := p.TotalProblems
	if total <= 0 {
		total = len(p.Problems)
	}

	h.pending.Put(store.ContestImport{
		Name:          p.Name,
		TotalProblems: total,
		Problems:      p.Problems,
		UserRank:      strings.TrimSpace(p.UserRank),
		ReceivedAt:    time.Now().UTC(),
	})
	h.log.Info("cached contest import",
		zap.String("name", p.Name),
		zap.Int("problems", len(p.Problems)))

	respond(w, http.StatusOK, importResponse{
		Success:       true,
		Message:       "contest data received; review and save it in ACM Compass",
		Name:          p.Name,
		TotalProblems: total,
		UserRank:      strings.TrimSpace(p.UserRank),
	})
}

// importStatus reports whether an unclaimed import is waiting.
func (h *ImportHandler) importStatus(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"pending": h.pending.Waiting()})
}

// respond wraps the result in the {"data": [...]} envelope.
func respond(w http.ResponseWriter, code int, resp importResponse) {
	respondJSON(w, code, map[string]any{"data": []importResponse{resp}})
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "failed to marshal response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}
