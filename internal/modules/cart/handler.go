package cart

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/georgemunganga/corazonehives/internal/modules/catalog"
	"github.com/georgemunganga/corazonehives/internal/notify"
	"github.com/georgemunganga/corazonehives/internal/session"
	"github.com/georgemunganga/corazonehives/internal/storage"
)

// ProductLookup resolves the product snapshot put in the cart.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

// View is the cart as returned to clients.
type View struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func ViewOf(s *Store) View {
	return View{Items: s.Items(), Total: s.Total(), Count: s.Count()}
}

// Handler exposes the session cart over HTTP.
type Handler struct {
	products ProductLookup
	local    storage.Local
	log      *logrus.Logger
}

func NewHandler(products ProductLookup, local storage.Local, logger *logrus.Logger) *Handler {
	return &Handler{products: products, local: local, log: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Delete("/", h.clearCart)
		r.Post("/items", h.addItem)
		r.Put("/items/{id}", h.updateItem)
		r.Delete("/items/{id}", h.removeItem)
	})
}

// Open loads the cart of the session carried by ctx.
func Open(ctx context.Context, local storage.Local, notifier notify.Notifier, logger *logrus.Logger) *Store {
	id := session.ID(ctx)
	return NewStore(ctx, storage.Namespace(local, id), notifier, logger.WithField("session", id))
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	notes := notify.NewCollector()
	store := Open(r.Context(), h.local, notes, h.log)
	h.reply(w, store, notes, nil)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		respond(w, http.StatusBadRequest, notify.Envelope{Error: "product_id is required", Notifications: []notify.Notification{}})
		return
	}

	p, err := h.products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, catalog.ErrNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, notify.Envelope{
			Error:         err.Error(),
			Notifications: []notify.Notification{notify.Error("Error", "Could not add this product to your cart")},
		})
		return
	}

	notes := notify.NewCollector()
	store := Open(r.Context(), h.local, notes, h.log)
	h.reply(w, store, notes, store.Add(r.Context(), *p))
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, notify.Envelope{Error: err.Error(), Notifications: []notify.Notification{}})
		return
	}
	notes := notify.NewCollector()
	store := Open(r.Context(), h.local, notes, h.log)
	h.reply(w, store, notes, store.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	notes := notify.NewCollector()
	store := Open(r.Context(), h.local, notes, h.log)
	h.reply(w, store, notes, store.Remove(r.Context(), chi.URLParam(r, "id")))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	notes := notify.NewCollector()
	store := Open(r.Context(), h.local, notes, h.log)
	h.reply(w, store, notes, store.Clear(r.Context()))
}

func (h *Handler) reply(w http.ResponseWriter, store *Store, notes *notify.Collector, saveErr error) {
	env := notify.Envelope{Data: ViewOf(store)}
	code := http.StatusOK
	if saveErr != nil {
		code = http.StatusServiceUnavailable
		env.Error = saveErr.Error()
		notes.Notify(notify.Error("Error", "Your cart could not be saved"))
	}
	env.Notifications = notes.Drain()
	respond(w, code, env)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
