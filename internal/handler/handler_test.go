package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/shoppingcart/internal/config"
	"github.com/deppfellow/shoppingcart/internal/middleware"
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/deppfellow/shoppingcart/internal/server"
	"github.com/deppfellow/shoppingcart/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryProducts struct {
	products map[int64]model.Product
	nextID   int64
}

func (m *memoryProducts) Create(_ context.Context, name string, price int32, imageURL string) (int64, error) {
	m.nextID++
	m.products[m.nextID] = model.Product{ID: m.nextID, Name: name, Price: price, ImageURL: imageURL}
	return m.nextID, nil
}

func (m *memoryProducts) FindAll(context.Context) ([]model.Product, error) {
	out := []model.Product{}
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryProducts) FindByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, errors.Wrap(pgx.ErrNoRows, "find product")
	}
	return &p, nil
}

func (m *memoryProducts) Delete(_ context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return errors.Wrap(pgx.ErrNoRows, "delete product")
	}
	delete(m.products, id)
	return nil
}

type noCache struct{}

func (noCache) Get(context.Context, int64) *model.Product { return nil }
func (noCache) Set(context.Context, *model.Product)       {}
func (noCache) Invalidate(context.Context, int64)         {}

func newTestServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &log,
	}
}

// newTestEcho serves the product and order routes. Order routes act as
// member 1 and never reach the order service.
func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	s := newTestServer()

	products := NewProductHandler(s, service.NewProductService(&memoryProducts{products: map[int64]model.Product{}}, noCache{}))
	orders := NewOrderHandler(s, nil)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler

	e.POST("/api/products", Handle(products.AddProduct, http.StatusCreated))
	e.GET("/api/products", Handle(products.GetProducts, http.StatusOK))
	e.GET("/api/products/:productId", Handle(products.GetProduct, http.StatusOK))
	e.DELETE("/api/products/:productId", HandleNoContent(products.DeleteProduct, http.StatusNoContent))

	asMember := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.UserIDKey, "1")
			return next(c)
		}
	}
	e.POST("/api/members/me/orders", Handle(orders.AddOrder, http.StatusCreated), asMember)

	return e
}

type response struct {
	status int
	body   map[string]any
	raw    string
}

func do(t *testing.T, e *echo.Echo, method, path, body string) response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	res := response{status: rec.Code, raw: rec.Body.String()}
	if strings.HasPrefix(strings.TrimSpace(res.raw), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res.body))
	}
	return res
}

func TestAddProduct(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{
			name:   "created",
			body:   `{"name":"banana","price":1000,"imageUrl":"banana.png"}`,
			status: http.StatusCreated,
		},
		{
			name:    "malformed json",
			body:    `{"name":`,
			status:  http.StatusBadRequest,
			message: "malformed request body",
		},
		{
			name:    "price beyond int",
			body:    `{"name":"banana","price":2147483648,"imageUrl":"banana.png"}`,
			status:  http.StatusBadRequest,
			message: "price is out of range of int",
		},
		{
			name:    "price of wrong type",
			body:    `{"name":"banana","price":"cheap","imageUrl":"banana.png"}`,
			status:  http.StatusBadRequest,
			message: "price has an invalid type",
		},
		{
			name:    "every failing field is reported",
			body:    `{"name":"  ","price":0,"imageUrl":""}`,
			status:  http.StatusBadRequest,
			message: "name must not be blank price must be a positive integer image url must not be blank",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := do(t, newTestEcho(t), http.MethodPost, "/api/products", tc.body)

			assert.Equal(t, tc.status, res.status)
			if tc.message == "" {
				assert.EqualValues(t, 1, res.body["id"])
				return
			}
			assert.Equal(t, tc.message, res.body["message"])
		})
	}
}

func TestHandle_AllocatesRequestPerCall(t *testing.T) {
	e := newTestEcho(t)

	first := do(t, e, http.MethodPost, "/api/products", `{"name":"banana","price":1000,"imageUrl":"banana.png"}`)
	require.Equal(t, http.StatusCreated, first.status)

	second := do(t, e, http.MethodPost, "/api/products", `{"price":1000,"imageUrl":"banana.png"}`)
	assert.Equal(t, http.StatusBadRequest, second.status)
	assert.Equal(t, "name must not be blank", second.body["message"])
}

func TestProductLifecycle(t *testing.T) {
	e := newTestEcho(t)
	do(t, e, http.MethodPost, "/api/products", `{"name":"banana","price":1000,"imageUrl":"banana.png"}`)

	found := do(t, e, http.MethodGet, "/api/products/1", "")
	require.Equal(t, http.StatusOK, found.status)
	assert.Equal(t, "banana", found.body["name"])
	assert.EqualValues(t, 1000, found.body["price"])

	list := do(t, e, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, list.status)
	assert.Contains(t, list.raw, `"imageUrl":"banana.png"`)

	deleted := do(t, e, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, http.StatusNoContent, deleted.status)

	missing := do(t, e, http.MethodGet, "/api/products/1", "")
	assert.Equal(t, http.StatusBadRequest, missing.status)
	assert.Equal(t, "product does not exist", missing.body["message"])
}

func TestPathParamErrors(t *testing.T) {
	e := newTestEcho(t)

	res := do(t, e, http.MethodGet, "/api/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, `"abc" is not a valid number`, res.body["message"])

	res = do(t, e, http.MethodGet, "/api/products/0", "")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "product id must be a positive integer", res.body["message"])
}

func TestAddOrderValidation(t *testing.T) {
	e := newTestEcho(t)

	empty := do(t, e, http.MethodPost, "/api/members/me/orders", `[]`)
	assert.Equal(t, http.StatusBadRequest, empty.status)
	assert.Equal(t, "order must contain at least one item", empty.body["message"])

	invalid := do(t, e, http.MethodPost, "/api/members/me/orders", `[{"quantity":0}]`)
	assert.Equal(t, http.StatusBadRequest, invalid.status)
	assert.Equal(t, "cart id must not be empty quantity must be at least 1", invalid.body["message"])

	fieldErrors, ok := invalid.body["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, fieldErrors, 2)

	object := do(t, e, http.MethodPost, "/api/members/me/orders", `{"cartId":1,"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, object.status)
	assert.Equal(t, "request body has an invalid type", object.body["message"])
}

func TestUnknownRoute(t *testing.T) {
	res := do(t, newTestEcho(t), http.MethodGet, "/api/nowhere", "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, middleware.RouteNotFoundMessage, res.body["message"])
}

func TestCheckHealth_NoChecks(t *testing.T) {
	s := newTestServer()
	s.Config.Observability.HealthChecks.Enabled = false
	h := NewHealthHandler(s)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	require.NoError(t, h.CheckHealth(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestCheckHealth_FailingChecks(t *testing.T) {
	h := NewHealthHandler(newTestServer())
	h.checks = []dependencyCheck{
		{name: "redis", ping: func(context.Context) error { return errors.New("connection refused") }},
	}

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)

	h.checks = append(h.checks, dependencyCheck{
		name:     "database",
		required: true,
		ping:     func(context.Context) error { return errors.New("timeout") },
	})

	rec = httptest.NewRecorder()
	c = echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
}
