package delivery

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/georgemunganga/corazonehives/internal/notify"
	"github.com/georgemunganga/corazonehives/internal/session"
	"github.com/georgemunganga/corazonehives/internal/storage"
)

// View is the delivery record as returned to clients.
type View struct {
	Info     Info `json:"info"`
	Complete bool `json:"complete"`
}

// Handler exposes the session's delivery details over HTTP.
type Handler struct {
	local storage.Local
	areas []string
	log   *logrus.Logger
}

func NewHandler(local storage.Local, areas []string, logger *logrus.Logger) *Handler {
	return &Handler{local: local, areas: areas, log: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/delivery", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/", h.set)
		r.Patch("/", h.update)
		r.Delete("/", h.clear)
		r.Get("/areas", h.listAreas)
	})
}

// Open loads the delivery details of the session carried by ctx.
func Open(ctx context.Context, local storage.Local, logger *logrus.Logger) *Store {
	id := session.ID(ctx)
	return NewStore(ctx, storage.Namespace(local, id), logger.WithField("session", id))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	h.reply(w, Open(r.Context(), h.local, h.log), nil)
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var info Info
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		respond(w, http.StatusBadRequest, notify.Envelope{Error: err.Error(), Notifications: []notify.Notification{}})
		return
	}
	store := Open(r.Context(), h.local, h.log)
	h.reply(w, store, store.Set(r.Context(), info))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, notify.Envelope{Error: err.Error(), Notifications: []notify.Notification{}})
		return
	}
	field, err := ParseField(req.Field)
	if err != nil {
		respond(w, http.StatusBadRequest, notify.Envelope{Error: err.Error(), Notifications: []notify.Notification{}})
		return
	}
	store := Open(r.Context(), h.local, h.log)
	h.reply(w, store, store.Update(r.Context(), field, req.Value))
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	store := Open(r.Context(), h.local, h.log)
	h.reply(w, store, store.Clear(r.Context()))
}

func (h *Handler) listAreas(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, notify.Envelope{Data: h.areas, Notifications: []notify.Notification{}})
}

func (h *Handler) reply(w http.ResponseWriter, store *Store, saveErr error) {
	env := notify.Envelope{
		Data:          View{Info: store.Info(), Complete: store.Complete()},
		Notifications: []notify.Notification{},
	}
	code := http.StatusOK
	if saveErr != nil {
		code = http.StatusServiceUnavailable
		if errors.Is(saveErr, ErrUnknownField) {
			code = http.StatusBadRequest
		}
		env.Error = saveErr.Error()
		env.Notifications = append(env.Notifications, notify.Error("Error", "Your delivery details could not be saved"))
	}
	respond(w, code, env)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
