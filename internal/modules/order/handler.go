package order

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/georgemunganga/corazonehives/internal/modules/cart"
	"github.com/georgemunganga/corazonehives/internal/modules/delivery"
	"github.com/georgemunganga/corazonehives/internal/notify"
	"github.com/georgemunganga/corazonehives/internal/storage"
)

// Handler exposes checkout over HTTP. The client opens the returned channel_uri; with
// ?redirect=true the handler answers with a 303 to it instead.
type Handler struct {
	service *Service
	local   storage.Local
	log     *logrus.Logger
}

func NewHandler(service *Service, local storage.Local, logger *logrus.Logger) *Handler {
	return &Handler{service: service, local: local, log: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/v1/checkout", h.checkout)
	r.Get("/api/v1/checkout/preview", h.preview)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notes := notify.NewCollector()
	c := cart.Open(ctx, h.local, notes, h.log)
	d := delivery.Open(ctx, h.local, h.log)

	var opened string
	ch := ChannelFunc(func(_ context.Context, uri string) error {
		opened = uri
		return nil
	})

	o, err := h.service.Checkout(ctx, c, d, ch, notes)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrIncompleteDelivery) {
			code = http.StatusUnprocessableEntity
		}
		respond(w, code, notify.Envelope{Error: err.Error(), Notifications: notes.Drain()})
		return
	}

	if r.URL.Query().Get("redirect") == "true" {
		http.Redirect(w, r, opened, http.StatusSeeOther)
		return
	}
	respond(w, http.StatusOK, notify.Envelope{Data: o, Notifications: notes.Drain()})
}

// preview composes the order without clearing anything, for the order summary panel.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c := cart.Open(ctx, h.local, notify.Discard, h.log)
	d := delivery.Open(ctx, h.local, h.log)

	o := Compose(c.Items(), d.Info(), h.service.Policy())
	respond(w, http.StatusOK, notify.Envelope{
		Data: map[string]interface{}{
			"order":    o,
			"ready":    c.Count() > 0 && d.Complete(),
			"complete": d.Complete(),
		},
		Notifications: []notify.Notification{},
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
