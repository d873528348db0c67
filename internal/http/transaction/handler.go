package transaction

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendy/internal/tracker"
	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

type Handler struct {
	tracker *tracker.Tracker
}

func NewHandler(t *tracker.Tracker) *Handler {
	return &Handler{tracker: t}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/all", h.listAll)
	r.Delete("/{id}", h.delete)
}

// Amount is a pointer so a missing field is told apart from zero.
type createTransactionRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	Category string           `json:"category"`
	Type     transaction.Type `json:"type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Amount == nil {
		http.Error(w, "amount is required", http.StatusBadRequest)
		return
	}

	tx, err := h.tracker.AddTransaction(r.Context(), transaction.NewParams{
		Amount:   *req.Amount,
		Category: req.Category,
		Type:     req.Type,
	})
	if err != nil {
		if transaction.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(ToResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	writeList(w, h.tracker.Transactions())
}

func (h *Handler) listAll(w http.ResponseWriter, _ *http.Request) {
	writeList(w, h.tracker.AllTransactions())
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	h.tracker.DeleteTransaction(r.Context(), id)

	w.WriteHeader(http.StatusNoContent)
}

func writeList(w http.ResponseWriter, txs []transaction.Transaction) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ToResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
