package theme

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendy/internal/theme"
)

type Handler struct {
	svc *theme.Service
}

func NewHandler(svc *theme.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Post("/toggle", h.toggle)
}

type themeResponse struct {
	Mode theme.Mode `json:"mode"`
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	writeMode(w, h.svc.Mode())
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	writeMode(w, h.svc.Toggle(r.Context()))
}

func writeMode(w http.ResponseWriter, mode theme.Mode) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(themeResponse{Mode: mode}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
