// internal/tea/handler.go
package tea

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

const (
	defaultEventPage = 100
	maxEventPage     = 1000
)

// Handler exposes the Service over HTTP.
type Handler struct {
	service Service
	logger  logr.Logger
}

func NewHandler(service Service, logger logr.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes mounts the read endpoints on r and the mutating ones on w, so the
// caller can wrap writes in extra middleware.
func (h *Handler) Routes(r, w chi.Router) {
	r.Get("/teas", h.handleList)
	r.Get("/teas/{id}", h.handleGet)
	r.Get("/teas/{id}/history", h.handleHistory)
	r.Get("/stats", h.handleStats)
	r.Get("/types", h.handleTypes)
	r.Get("/events", h.handleEvents)

	w.Post("/teas", h.handleCreate)
	w.Put("/teas/{id}", h.handleUpdate)
	w.Delete("/teas/{id}", h.handleRemove)
	w.Post("/teas/{id}/stock", h.handleToggleStock)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	teas := slices.Collect(h.service.List(r.Context(), q))
	if teas == nil {
		teas = []Tea{}
	}
	writeJSON(w, http.StatusOK, teas)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := teaID(w, r)
	if !ok {
		return
	}
	t, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := teaID(w, r)
	if !ok {
		return
	}
	events, err := h.service.History(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Aggregate(r.Context()))
}

func (h *Handler) handleTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Types(r.Context()))
}

// handleEvents pages through the journal: from is the last event id already
// seen, limit defaults to 100 and is capped at 1000.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	var (
		from  int64
		limit = defaultEventPage
		err   error
	)
	if s := r.URL.Query().Get("from"); s != "" {
		if from, err = strconv.ParseInt(s, 10, 64); err != nil || from < 0 {
			http.Error(w, "invalid from", http.StatusBadRequest)
			return
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil || limit <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(limit, maxEventPage)
	}

	events, err := h.service.Events(r.Context(), from, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var form FormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.service.Create(r.Context(), form)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := teaID(w, r)
	if !ok {
		return
	}
	var form FormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.service.Update(r.Context(), id, form)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := teaID(w, r)
	if !ok {
		return
	}
	if err := h.service.Remove(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleToggleStock(w http.ResponseWriter, r *http.Request) {
	id, ok := teaID(w, r)
	if !ok {
		return
	}
	t, err := h.service.ToggleStock(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if fields, ok := IsValidation(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fields})
		return
	}
	if errors.Is(err, ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	h.logger.Error(err, "tea request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func teaID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid tea ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ParseQuery reads list filters and ordering from URL parameters:
// q, type (repeatable), supplier (repeatable), in_stock, rating_min,
// rating_max, year_min, year_max, sort and dir.
func ParseQuery(v url.Values) (Query, error) {
	var q Query
	q.Filters.Search = v.Get("q")
	for _, t := range v["type"] {
		if !Type(t).Valid() {
			return Query{}, fmt.Errorf("unknown tea type %q", t)
		}
		q.Filters.Types = append(q.Filters.Types, Type(t))
	}
	q.Filters.Suppliers = v["supplier"]

	if s := v.Get("in_stock"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Query{}, fmt.Errorf("invalid in_stock %q", s)
		}
		q.Filters.InStock = &b
	}

	var err error
	if q.Filters.Rating, err = parseRange(v, "rating_min", "rating_max", MinRating, MaxRating); err != nil {
		return Query{}, err
	}
	if q.Filters.HarvestYear, err = parseRange(v, "year_min", "year_max", MinHarvestYear, 9999); err != nil {
		return Query{}, err
	}

	if field := v.Get("sort"); field != "" {
		if q.Sort, err = ParseSort(field, v.Get("dir")); err != nil {
			return Query{}, err
		}
	}
	return q, nil
}

// parseRange returns nil when neither bound is given; a missing bound
// falls back to lo or hi.
func parseRange(v url.Values, minKey, maxKey string, lo, hi int) (*IntRange, error) {
	minStr, maxStr := v.Get(minKey), v.Get(maxKey)
	if minStr == "" && maxStr == "" {
		return nil, nil
	}
	r := &IntRange{Min: lo, Max: hi}
	if minStr != "" {
		n, err := strconv.Atoi(minStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", minKey, minStr)
		}
		r.Min = n
	}
	if maxStr != "" {
		n, err := strconv.Atoi(maxStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", maxKey, maxStr)
		}
		r.Max = n
	}
	return r, nil
}
