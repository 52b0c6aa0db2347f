package httpx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/abcretail/storefront/internal/cart"
	"github.com/abcretail/storefront/internal/checkout"
	"github.com/abcretail/storefront/internal/domain"
	"github.com/abcretail/storefront/internal/httpx"
	"github.com/abcretail/storefront/internal/metrics"
	"github.com/abcretail/storefront/internal/storage/memory"
)

type env struct {
	srv       *httptest.Server
	products  *memory.ProductStore
	customers *memory.CustomerStore
	orders    *memory.OrderStore
	queue     *memory.IntentQueue
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := log.New()
	logger.SetOutput(io.Discard)

	e := &env{
		products:  memory.NewProductStore(),
		customers: memory.NewCustomerStore(),
		orders:    memory.NewOrderStore(),
		queue:     memory.NewIntentQueue(),
	}
	cartStore := memory.NewCartStore()
	cartSvc := &cart.Service{Cart: cartStore, Products: e.products, Log: logger}
	checkoutSvc := &checkout.Service{
		Cart:      cartStore,
		Products:  e.products,
		Customers: e.customers,
		Queue:     e.queue,
		Metrics:   metrics.NewCheckout(prometheus.NewRegistry()),
		Log:       logger,
	}

	router := httpx.NewRouter(prometheus.NewRegistry())
	(&httpx.ProductsHandler{Products: e.products}).Register(router)
	(&httpx.CustomersHandler{Customers: e.customers, Orders: e.orders}).Register(router)
	(&httpx.OrdersHandler{Orders: e.orders, Queue: e.queue}).Register(router)
	(&httpx.CartHandler{Cart: cartSvc, Checkout: checkoutSvc}).Register(router)

	e.srv = httptest.NewServer(router)
	t.Cleanup(e.srv.Close)
	return e
}

func (e *env) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestProductsCRUD(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, http.MethodPost, "/CreateProduct", domain.Product{Name: "P1", PriceCents: 1000, Stock: 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[domain.Product](t, resp)
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.Version)

	resp = e.do(t, http.MethodGet, "/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.do(t, http.MethodGet, "/products/unknown", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// update with the echoed token succeeds
	created.Stock = 4
	resp = e.do(t, http.MethodPut, "/UpdateProduct", created)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// replaying the now-stale token is rejected
	resp = e.do(t, http.MethodPut, "/UpdateProduct", created)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = e.do(t, http.MethodDelete, "/products/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// deleting again is idempotent
	resp = e.do(t, http.MethodDelete, "/products/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCreateOrderEnqueues(t *testing.T) {
	e := newEnv(t)

	intent := domain.OrderIntent{
		CustomerID: "c1", Username: "alice", ProductID: "p1",
		ProductName: "P1", Quantity: 2, UnitPriceCents: 1000,
	}
	resp := e.do(t, http.MethodPost, "/CreateOrder", intent)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	require.NotEmpty(t, body["event_id"])

	require.Len(t, e.queue.Intents(), 1)
	queued := e.queue.Intents()[0]
	require.Equal(t, domain.StatusSubmitted, queued.Status)
	require.Equal(t, int64(2000), queued.TotalCents)

	// the order store is untouched until the worker drains the queue
	orders, err := e.orders.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreateOrderRejectsMalformed(t *testing.T) {
	e := newEnv(t)

	req, err := http.NewRequest(http.MethodPost, e.srv.URL+"/CreateOrder", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/CreateOrder", domain.OrderIntent{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateOrderStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	order := &domain.Order{OrderIntent: domain.OrderIntent{
		Username: "alice", ProductID: "p1", Quantity: 1, Status: domain.StatusSubmitted,
	}}
	require.NoError(t, e.orders.Create(ctx, order))

	// missing id
	resp := e.do(t, http.MethodPut, "/UpdateOrderStatus", domain.Order{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	order.Status = domain.StatusCompleted
	resp = e.do(t, http.MethodPut, "/UpdateOrderStatus", order)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stored, err := e.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, stored.Status)

	// stale token
	order.Version = "stale"
	resp = e.do(t, http.MethodPut, "/UpdateOrderStatus", order)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCustomerDeleteGuard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c := &domain.Customer{Name: "Alice", Username: "alice"}
	require.NoError(t, e.customers.Create(ctx, c))
	require.NoError(t, e.orders.Create(ctx, &domain.Order{OrderIntent: domain.OrderIntent{
		CustomerID: c.ID, Username: "alice", ProductID: "p1", Quantity: 1,
	}}))

	resp := e.do(t, http.MethodDelete, "/customers/"+c.ID, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCartAndCheckoutFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.customers.Create(ctx, &domain.Customer{Name: "Alice", Username: "alice"}))
	p := &domain.Product{Name: "P1", PriceCents: 1000, Stock: 5}
	require.NoError(t, e.products.Create(ctx, p))

	resp := e.do(t, http.MethodPost, "/cart/alice/items", map[string]any{"product_id": p.ID, "quantity": 2})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = e.do(t, http.MethodGet, "/cart/alice/count", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, decode[map[string]int](t, resp)["count"])

	// over-stock add is refused
	resp = e.do(t, http.MethodPost, "/cart/alice/items", map[string]any{"product_id": p.ID, "quantity": 4})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/checkout/alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[checkout.Result](t, resp)
	require.Equal(t, 1, res.Accepted)
	require.Len(t, e.queue.Intents(), 1)

	// second checkout finds an empty cart
	resp = e.do(t, http.MethodPost, "/checkout/alice", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(b))
}
