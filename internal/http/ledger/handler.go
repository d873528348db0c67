package ledger

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendy/internal/tracker"
	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

// Handler serves the ledger-wide views: filters, summary, categories and the
// destructive clear.
type Handler struct {
	tracker *tracker.Tracker
}

func NewHandler(t *tracker.Tracker) *Handler {
	return &Handler{tracker: t}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/filters", h.getFilters)
	r.Put("/filters", h.updateFilters)
	r.Get("/summary", h.summary)
	r.Get("/categories", h.categories)
	r.Delete("/data", h.clear)
}

type filterDTO struct {
	Type      string           `json:"type"`
	Category  string           `json:"category"`
	MinAmount *decimal.Decimal `json:"min_amount"`
	MaxAmount *decimal.Decimal `json:"max_amount"`
}

func toFilterDTO(f transaction.Filter) filterDTO {
	typ := f.Type
	if typ == "" {
		typ = transaction.TypeAll
	}

	return filterDTO{
		Type:      string(typ),
		Category:  f.Category,
		MinAmount: f.MinAmount,
		MaxAmount: f.MaxAmount,
	}
}

func (h *Handler) getFilters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, toFilterDTO(h.tracker.Filters()))
}

func (h *Handler) updateFilters(w http.ResponseWriter, r *http.Request) {
	var req filterDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f := transaction.Filter{
		Type:      transaction.Type(req.Type),
		Category:  req.Category,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
	}

	if err := h.tracker.UpdateFilters(f); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, toFilterDTO(h.tracker.Filters()))
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.tracker.BalanceSummary())
}

func (h *Handler) categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.tracker.Categories())
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	h.tracker.ClearAllData(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
