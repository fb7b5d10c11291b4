package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/flashback-events/rsvp-api/internal/kafka"
	"github.com/flashback-events/rsvp-api/internal/redisx"
	"github.com/flashback-events/rsvp-api/internal/rsvp"
)

// Store is the RSVP lifecycle surface the handler needs; *rsvp.Repo
// implements it.
type Store interface {
	Create(ctx context.Context, in rsvp.CreateInput) (*rsvp.RSVP, error)
	Get(ctx context.Context, id string) (*rsvp.RSVP, error)
	List(ctx context.Context) ([]rsvp.RSVP, error)
	Update(ctx context.Context, id string, in rsvp.UpdateInput) (*rsvp.RSVP, error)
	Delete(ctx context.Context, id string) (*rsvp.RSVP, error)
	SetStatus(ctx context.Context, id string, to rsvp.Status) (*rsvp.RSVP, error)
	Stats(ctx context.Context) (*rsvp.Stats, error)
}

// Board is the dish availability surface; *rsvp.Ledger implements it.
type Board interface {
	Seed(ctx context.Context, dishes []string) error
	List(ctx context.Context) ([]rsvp.DishCounter, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type RSVPHandler struct {
	Store    Store
	Board    Board
	Producer Publisher
	Redis    *redis.Client
	Catalog  []string
	Service  string
}

func (h *RSVPHandler) Register(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/rsvps", h.listRSVPs)
		r.Post("/rsvps", h.createRSVP)
		r.Get("/rsvps/{id}", h.getRSVP)
		r.Put("/rsvps/{id}", h.updateRSVP)
		r.Delete("/rsvps/{id}", h.deleteRSVP)
		r.Post("/rsvps/{id}/accept", h.acceptRSVP)
		r.Post("/rsvps/{id}/reject", h.rejectRSVP)
		r.Get("/dishes", h.listDishes)
		r.Post("/init", h.initDishes)
		r.Get("/stats", h.stats)
	})
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Total   *int   `json:"total,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, code int, data any, msg string) {
	writeJSON(w, code, envelope{Success: true, Data: data, Message: msg})
}

func writeErr(w http.ResponseWriter, err error) {
	var verr *rsvp.ValidationError
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, rsvp.ErrDishFull),
		errors.Is(err, rsvp.ErrInvalidTransition):
		code = http.StatusBadRequest
	case errors.Is(err, rsvp.ErrNotFound):
		code = http.StatusNotFound
	}
	writeJSON(w, code, envelope{Success: false, Error: err.Error()})
}

func (h *RSVPHandler) publish(r *http.Request, eventType string, rec *rsvp.RSVP) {
	if h.Producer == nil {
		return
	}
	ev := rsvp.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: rec.ID,
		Payload:       kafkax.MustMarshal(rsvp.PayloadFor(rec)),
	}
	h.Producer.Publish(rsvp.PartitionKey(rec.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

// counter values changed; drop the cached dish board
func (h *RSVPHandler) invalidateBoard(ctx context.Context) {
	if h.Redis != nil {
		_ = h.Redis.Del(ctx, redisx.KeyDishBoard).Err()
	}
}

func (h *RSVPHandler) listRSVPs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Store.List(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	if out == nil {
		out = []rsvp.RSVP{}
	}
	total := len(out)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: out, Total: &total})
}

func (h *RSVPHandler) getRSVP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	rec, err := h.Store.Get(ctx, id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, rec, "")
}

func (h *RSVPHandler) createRSVP(w http.ResponseWriter, r *http.Request) {
	var in rsvp.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Store.Create(ctx, in)
	if err != nil {
		writeErr(w, err)
		return
	}

	h.invalidateBoard(ctx)
	h.publish(r, rsvp.EventRSVPCreated, rec)
	writeOK(w, http.StatusCreated, rec, "RSVP created successfully")
}

func (h *RSVPHandler) updateRSVP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in rsvp.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Store.Update(ctx, id, in)
	if err != nil {
		writeErr(w, err)
		return
	}

	h.invalidateBoard(ctx)
	h.publish(r, rsvp.EventRSVPUpdated, rec)
	writeOK(w, http.StatusOK, rec, "RSVP updated successfully")
}

func (h *RSVPHandler) deleteRSVP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Store.Delete(ctx, id)
	if err != nil {
		writeErr(w, err)
		return
	}

	h.invalidateBoard(ctx)
	h.publish(r, rsvp.EventRSVPDeleted, rec)
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "RSVP removed successfully"})
}

func (h *RSVPHandler) acceptRSVP(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, rsvp.StatusConfirmed, rsvp.EventRSVPConfirmed, "RSVP accepted")
}

func (h *RSVPHandler) rejectRSVP(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, rsvp.StatusRejected, rsvp.EventRSVPRejected, "RSVP rejected")
}

// decide applies an admin payment decision. Status only; the dish slot stays
// reserved either way.
func (h *RSVPHandler) decide(w http.ResponseWriter, r *http.Request, to rsvp.Status, eventType, msg string) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Store.SetStatus(ctx, id, to)
	if err != nil {
		writeErr(w, err)
		return
	}

	h.publish(r, eventType, rec)
	writeOK(w, http.StatusOK, rec, msg)
}

func (h *RSVPHandler) listDishes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// cache fast path: the board is read on every page load of the form
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, redisx.KeyDishBoard).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, envelope{Success: true, Data: json.RawMessage(s)})
			return
		}
	}

	if err := h.Board.Seed(ctx, h.Catalog); err != nil {
		writeErr(w, err)
		return
	}
	out, err := h.Board.List(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}

	b, err := json.Marshal(out)
	if err != nil {
		writeErr(w, err)
		return
	}
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, redisx.KeyDishBoard, b, redisx.TTLDishBoard).Err()
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: json.RawMessage(b)})
}

func (h *RSVPHandler) initDishes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Board.Seed(ctx, h.Catalog); err != nil {
		writeErr(w, err)
		return
	}
	h.invalidateBoard(ctx)
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: fmt.Sprintf("%d dish counters initialized", len(h.Catalog)),
	})
}

func (h *RSVPHandler) stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	s, err := h.Store.Stats(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, s, "")
}
