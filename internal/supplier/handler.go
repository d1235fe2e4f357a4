// internal/supplier/handler.go
package supplier

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"
)

type Handler struct {
	directory *Directory
	logger    logr.Logger
}

func NewHandler(directory *Directory, logger logr.Logger) *Handler {
	return &Handler{directory: directory, logger: logger}
}

// Routes mounts GET /suppliers on r and POST /suppliers on w.
func (h *Handler) Routes(r, w chi.Router) {
	r.Get("/suppliers", h.handleNames)
	w.Post("/suppliers", h.handleAdd)
}

func (h *Handler) handleNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.directory.Names(r.Context())
	if err != nil {
		h.logger.Error(err, "listing suppliers failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(names)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s, err := h.directory.Add(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error(err, "adding supplier failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}
