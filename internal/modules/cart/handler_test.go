package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/corazonehives/internal/modules/catalog"
	"github.com/georgemunganga/corazonehives/internal/notify"
	"github.com/georgemunganga/corazonehives/internal/session"
	"github.com/georgemunganga/corazonehives/internal/storage"
)

type lookup map[string]catalog.Product

func (l lookup) GetProduct(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := l[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}

type cartBody struct {
	Data          View                  `json:"data"`
	Error         string                `json:"error"`
	Notifications []notify.Notification `json:"notifications"`
}

func newTestRouter(local storage.Local) *chi.Mux {
	products := lookup{
		"a": product("a", "Vanilla Cone", 150),
		"b": onSale(product("b", "Truffle", 50), 40),
	}
	r := chi.NewRouter()
	r.Use(session.Middleware(0))
	NewHandler(products, local, quietLogger()).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, sid, method, path, body string) (int, cartBody) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(session.HeaderName, sid)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out cartBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestHandler_CartFlow(t *testing.T) {
	r := newTestRouter(storage.NewMemory())
	sid := uuid.NewString()

	code, body := do(t, r, sid, http.MethodPost, "/api/v1/cart/items", `{"product_id":"a"}`)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "Added to cart", body.Notifications[0].Title)

	_, body = do(t, r, sid, http.MethodPost, "/api/v1/cart/items", `{"product_id":"a"}`)
	assert.Equal(t, "Updated cart", body.Notifications[0].Title)

	_, body = do(t, r, sid, http.MethodPost, "/api/v1/cart/items", `{"product_id":"b"}`)
	assert.Equal(t, 3, body.Data.Count)
	assert.Equal(t, "340", body.Data.Total.String())

	_, body = do(t, r, sid, http.MethodPut, "/api/v1/cart/items/a", `{"quantity":0}`)
	assert.Equal(t, 1, body.Data.Count)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "b", body.Data.Items[0].ID)

	_, body = do(t, r, sid, http.MethodGet, "/api/v1/cart", "")
	assert.Equal(t, 1, body.Data.Count)
	assert.Empty(t, body.Notifications)

	_, body = do(t, r, sid, http.MethodDelete, "/api/v1/cart/items/b", "")
	assert.Equal(t, 0, body.Data.Count)

	_, body = do(t, r, sid, http.MethodPost, "/api/v1/cart/items", `{"product_id":"a"}`)
	assert.Equal(t, 1, body.Data.Count)
	_, body = do(t, r, sid, http.MethodDelete, "/api/v1/cart", "")
	assert.Equal(t, 0, body.Data.Count)
	assert.True(t, body.Data.Total.IsZero())
}

func TestHandler_SessionsAreIsolated(t *testing.T) {
	r := newTestRouter(storage.NewMemory())
	alice, bob := uuid.NewString(), uuid.NewString()

	do(t, r, alice, http.MethodPost, "/api/v1/cart/items", `{"product_id":"a"}`)

	_, body := do(t, r, bob, http.MethodGet, "/api/v1/cart", "")
	assert.Equal(t, 0, body.Data.Count)
	_, body = do(t, r, alice, http.MethodGet, "/api/v1/cart", "")
	assert.Equal(t, 1, body.Data.Count)
}

func TestHandler_AddUnknownProduct(t *testing.T) {
	r := newTestRouter(storage.NewMemory())

	code, body := do(t, r, uuid.NewString(), http.MethodPost, "/api/v1/cart/items", `{"product_id":"zzz"}`)
	assert.Equal(t, http.StatusNotFound, code)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, notify.KindError, body.Notifications[0].Kind)

	code, _ = do(t, r, uuid.NewString(), http.MethodPost, "/api/v1/cart/items", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_SaveFailure(t *testing.T) {
	r := newTestRouter(&brokenLocal{setErr: assert.AnError})

	code, body := do(t, r, uuid.NewString(), http.MethodPost, "/api/v1/cart/items", `{"product_id":"a"}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.NotEmpty(t, body.Error)
	assert.Equal(t, 1, body.Data.Count)
}
