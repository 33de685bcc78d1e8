package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/shoppingcart/internal/config"
	"github.com/deppfellow/shoppingcart/internal/handler"
	"github.com/deppfellow/shoppingcart/internal/lib/event"
	"github.com/deppfellow/shoppingcart/internal/lib/job"
	"github.com/deppfellow/shoppingcart/internal/lib/password"
	"github.com/deppfellow/shoppingcart/internal/lib/token"
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
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testPassword = "Wooteco1!"
)

type memoryMembers struct {
	nextID int64
	byID   map[int64]*model.Member
}

func (m *memoryMembers) Create(_ context.Context, email, name, hash string) (int64, error) {
	m.nextID++
	m.byID[m.nextID] = &model.Member{ID: m.nextID, Email: email, Name: name, Password: hash}
	return m.nextID, nil
}

func (m *memoryMembers) FindByID(_ context.Context, id int64) (*model.Member, error) {
	member, ok := m.byID[id]
	if !ok {
		return nil, errors.Wrap(pgx.ErrNoRows, "find member")
	}
	cp := *member
	return &cp, nil
}

func (m *memoryMembers) FindByEmail(_ context.Context, email string) (*model.Member, error) {
	for _, member := range m.byID {
		if member.Email == email {
			cp := *member
			return &cp, nil
		}
	}
	return nil, errors.Wrap(pgx.ErrNoRows, "find member")
}

func (m *memoryMembers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

func (m *memoryMembers) UpdateName(_ context.Context, id int64, name string) error {
	m.byID[id].Name = name
	return nil
}

func (m *memoryMembers) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.byID[id].Password = hash
	return nil
}

func (m *memoryMembers) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

type memoryProducts struct {
	byID map[int64]model.Product
}

func (m *memoryProducts) Create(_ context.Context, name string, price int32, imageURL string) (int64, error) {
	id := int64(len(m.byID) + 1)
	m.byID[id] = model.Product{ID: id, Name: name, Price: price, ImageURL: imageURL}
	return id, nil
}

func (m *memoryProducts) FindAll(context.Context) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryProducts) FindByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, errors.Wrap(pgx.ErrNoRows, "find product")
	}
	return &p, nil
}

func (m *memoryProducts) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

type noCache struct{}

func (noCache) Get(context.Context, int64) *model.Product { return nil }
func (noCache) Set(context.Context, *model.Product)       {}
func (noCache) Invalidate(context.Context, int64)         {}

type memoryCarts struct {
	nextID int64
	byID   map[int64]*model.CartItem
}

func (m *memoryCarts) FindByMemberID(_ context.Context, memberID int64) ([]model.CartItem, error) {
	out := []model.CartItem{}
	for id := int64(1); id <= m.nextID; id++ {
		if item, ok := m.byID[id]; ok && item.MemberID == memberID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *memoryCarts) FindByID(_ context.Context, id int64) (*model.CartItem, error) {
	item, ok := m.byID[id]
	if !ok {
		return nil, errors.Wrap(pgx.ErrNoRows, "find cart item")
	}
	cp := *item
	return &cp, nil
}

func (m *memoryCarts) Add(_ context.Context, memberID, productID int64, quantity int) (int64, error) {
	m.nextID++
	m.byID[m.nextID] = &model.CartItem{ID: m.nextID, MemberID: memberID, ProductID: productID, Quantity: quantity}
	return m.nextID, nil
}

func (m *memoryCarts) UpdateQuantity(_ context.Context, id int64, quantity int) error {
	m.byID[id].Quantity = quantity
	return nil
}

func (m *memoryCarts) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

type memoryOrders struct {
	carts  *memoryCarts
	orders []model.Order
}

func (m *memoryOrders) Create(_ context.Context, memberID int64, lines []model.OrderLine) (int64, error) {
	order := model.Order{ID: int64(len(m.orders) + 1), MemberID: memberID}
	for _, line := range lines {
		order.Details = append(order.Details, model.OrderDetail{
			ProductID: m.carts.byID[line.CartItemID].ProductID,
			Quantity:  line.Quantity,
		})
		delete(m.carts.byID, line.CartItemID)
	}
	m.orders = append(m.orders, order)
	return order.ID, nil
}

func (m *memoryOrders) FindByID(_ context.Context, memberID, orderID int64) (*model.Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == orderID && m.orders[i].MemberID == memberID {
			return &m.orders[i], nil
		}
	}
	return nil, errors.Wrap(pgx.ErrNoRows, "find order")
}

func (m *memoryOrders) FindByMemberID(_ context.Context, memberID int64) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range m.orders {
		if o.MemberID == memberID {
			out = append(out, o)
		}
	}
	return out, nil
}

type nopMailer struct{}

func (nopMailer) EnqueueWelcomeEmail(context.Context, string, string) error { return nil }
func (nopMailer) EnqueueOrderConfirmation(context.Context, job.OrderConfirmationPayload) error {
	return nil
}

type nopPublisher struct{}

func (nopPublisher) PublishOrderPlaced(context.Context, event.OrderPlaced) error { return nil }

type testAPI struct {
	echo    *echo.Echo
	members *memoryMembers
}

// newTestAPI builds the production router over in-memory stores. One
// product, "banana", is in the catalog.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Auth:    config.AuthConfig{SecretKey: testSecret, TokenTTL: time.Hour},

			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &log,
	}

	members := &memoryMembers{byID: map[int64]*model.Member{}}
	products := &memoryProducts{byID: map[int64]model.Product{
		1: {ID: 1, Name: "banana", Price: 1000, ImageURL: "banana.png"},
	}}
	carts := &memoryCarts{byID: map[int64]*model.CartItem{}}
	orders := &memoryOrders{carts: carts}

	memberService := service.NewMemberService(members, password.NewHasher(bcrypt.MinCost), nopMailer{}, &log)
	cartService := service.NewCartService(carts, products)
	services := &service.Services{
		Auth:    service.NewAuthService(memberService, token.NewProvider(testSecret, time.Hour)),
		Member:  memberService,
		Product: service.NewProductService(products, noCache{}),
		Cart:    cartService,
		Order:   service.NewOrderService(orders, cartService, members, nopPublisher{}, nopMailer{}, &log),
	}

	e := NewRouter(handler.NewHandlers(s, services), middleware.NewMiddlewares(s, services.Auth))
	return &testAPI{echo: e, members: members}
}

type apiResponse struct {
	status int
	header http.Header
	body   map[string]any
	list   []any
	raw    string
}

func (a *testAPI) do(t *testing.T, method, path, accessToken, body string) apiResponse {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if accessToken != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	res := apiResponse{status: rec.Code, header: rec.Header(), raw: rec.Body.String()}
	switch trimmed := strings.TrimSpace(res.raw); {
	case strings.HasPrefix(trimmed, "{"):
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res.body))
	case strings.HasPrefix(trimmed, "["):
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res.list))
	}
	return res
}

// signUpAndLogin registers ari and returns an access token.
func (a *testAPI) signUpAndLogin(t *testing.T) string {
	t.Helper()

	res := a.do(t, http.MethodPost, "/api/members", "", `{"email":"ari@wooteco.com","name":"ari","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusCreated, res.status, res.raw)

	res = a.do(t, http.MethodPost, "/api/login", "", `{"email":"ari@wooteco.com","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, res.status, res.raw)

	accessToken, ok := res.body["accessToken"].(string)
	require.True(t, ok)
	return accessToken
}

func TestSignUp(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodPost, "/api/members", "", `{"email":"ari@wooteco.com","name":" ari ","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusCreated, res.status, res.raw)
	assert.Equal(t, float64(1), res.body["id"])
	assert.Equal(t, "/api/members/1", res.header.Get(echo.HeaderLocation))
	assert.Equal(t, "ari", api.members.byID[1].Name)

	dup := api.do(t, http.MethodPost, "/api/members", "", `{"email":"ari@wooteco.com","name":"ari","password":"`+testPassword+`"}`)
	assert.Equal(t, http.StatusBadRequest, dup.status)
	assert.Equal(t, "duplicate email exists", dup.body["message"])
}

func TestCheckDuplicateEmail(t *testing.T) {
	api := newTestAPI(t)

	free := api.do(t, http.MethodPost, "/api/members/duplicate-email", "", `{"email":"ari@wooteco.com"}`)
	assert.Equal(t, http.StatusOK, free.status)
	assert.Empty(t, free.raw)

	api.signUpAndLogin(t)

	taken := api.do(t, http.MethodPost, "/api/members/duplicate-email", "", `{"email":"ari@wooteco.com"}`)
	assert.Equal(t, http.StatusBadRequest, taken.status)
	assert.Equal(t, "email must not be duplicated", taken.body["message"])
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)
	accessToken := api.signUpAndLogin(t)
	assert.NotEmpty(t, accessToken)

	wrong := api.do(t, http.MethodPost, "/api/login", "", `{"email":"ari@wooteco.com","password":"Wrong123!"}`)
	assert.Equal(t, http.StatusBadRequest, wrong.status)
	assert.Equal(t, "wrong password", wrong.body["message"])
}

func TestMe(t *testing.T) {
	api := newTestAPI(t)
	accessToken := api.signUpAndLogin(t)

	me := api.do(t, http.MethodGet, "/api/members/me", accessToken, "")
	require.Equal(t, http.StatusOK, me.status, me.raw)
	assert.Equal(t, "ari@wooteco.com", me.body["email"])
	assert.Equal(t, "ari", me.body["name"])

	res := api.do(t, http.MethodPatch, "/api/members/me/name", accessToken, `{"name":"boxster"}`)
	assert.Equal(t, http.StatusNoContent, res.status, res.raw)
	assert.Equal(t, "boxster", api.members.byID[1].Name)

	res = api.do(t, http.MethodPatch, "/api/members/me/name", accessToken, `{"name":" boxster "}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "cannot change to the same name as the current one", res.body["message"])

	res = api.do(t, http.MethodPatch, "/api/members/me/password", accessToken, `{"oldPassword":"`+testPassword+`","newPassword":"Changed1!"}`)
	assert.Equal(t, http.StatusNoContent, res.status, res.raw)

	res = api.do(t, http.MethodPatch, "/api/members/me/password", accessToken, `{"oldPassword":"`+testPassword+`","newPassword":"Changed2!"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "does not match the current password", res.body["message"])

	res = api.do(t, http.MethodDelete, "/api/members/me", accessToken, `{"password":"Changed1!"}`)
	assert.Equal(t, http.StatusNoContent, res.status, res.raw)
	assert.Empty(t, api.members.byID)
}

func TestCartRoutes(t *testing.T) {
	api := newTestAPI(t)
	accessToken := api.signUpAndLogin(t)

	added := api.do(t, http.MethodPost, "/api/members/me/carts", accessToken, `{"productId":1,"quantity":2}`)
	require.Equal(t, http.StatusCreated, added.status, added.raw)
	assert.Equal(t, float64(1), added.body["id"])

	unknown := api.do(t, http.MethodPost, "/api/members/me/carts", accessToken, `{"productId":99,"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, unknown.status)
	assert.Equal(t, "product does not exist", unknown.body["message"])

	res := api.do(t, http.MethodPatch, "/api/members/me/carts/1", accessToken, `{"quantity":5}`)
	assert.Equal(t, http.StatusNoContent, res.status, res.raw)

	list := api.do(t, http.MethodGet, "/api/members/me/carts", accessToken, "")
	require.Equal(t, http.StatusOK, list.status)
	require.Len(t, list.list, 1)
	assert.Equal(t, float64(5), list.list[0].(map[string]any)["quantity"])

	res = api.do(t, http.MethodPatch, "/api/members/me/carts/1", accessToken, `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "quantity must be at least 1", res.body["message"])

	res = api.do(t, http.MethodDelete, "/api/members/me/carts/1", accessToken, "")
	assert.Equal(t, http.StatusNoContent, res.status, res.raw)

	res = api.do(t, http.MethodDelete, "/api/members/me/carts/1", accessToken, "")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "cart item does not belong to the member", res.body["message"])
}

func TestOrderRoutes(t *testing.T) {
	api := newTestAPI(t)
	accessToken := api.signUpAndLogin(t)

	api.do(t, http.MethodPost, "/api/members/me/carts", accessToken, `{"productId":1,"quantity":2}`)

	repeated := api.do(t, http.MethodPost, "/api/members/me/orders", accessToken, `[{"cartId":1,"quantity":1},{"cartId":1,"quantity":1}]`)
	assert.Equal(t, http.StatusBadRequest, repeated.status)
	assert.Equal(t, "cart item must not be ordered more than once", repeated.body["message"])

	placed := api.do(t, http.MethodPost, "/api/members/me/orders", accessToken, `[{"cartId":1,"quantity":2}]`)
	require.Equal(t, http.StatusCreated, placed.status, placed.raw)
	assert.Equal(t, float64(1), placed.body["id"])

	order := api.do(t, http.MethodGet, "/api/members/me/orders/1", accessToken, "")
	require.Equal(t, http.StatusOK, order.status, order.raw)
	assert.Len(t, order.body["orderDetails"], 1)

	list := api.do(t, http.MethodGet, "/api/members/me/orders", accessToken, "")
	require.Equal(t, http.StatusOK, list.status)
	assert.Len(t, list.list, 1)

	missing := api.do(t, http.MethodGet, "/api/members/me/orders/2", accessToken, "")
	assert.Equal(t, http.StatusBadRequest, missing.status)
	assert.Equal(t, "order does not exist", missing.body["message"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/members/me"},
		{http.MethodPatch, "/api/members/me/name"},
		{http.MethodPatch, "/api/members/me/password"},
		{http.MethodDelete, "/api/members/me"},
		{http.MethodGet, "/api/members/me/carts"},
		{http.MethodPost, "/api/members/me/carts"},
		{http.MethodPatch, "/api/members/me/carts/1"},
		{http.MethodDelete, "/api/members/me/carts/1"},
		{http.MethodGet, "/api/members/me/orders"},
		{http.MethodPost, "/api/members/me/orders"},
		{http.MethodGet, "/api/members/me/orders/1"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			res := api.do(t, r.method, r.path, "", "")
			require.Equal(t, http.StatusUnauthorized, res.status, res.raw)
			assert.Equal(t, "missing token", res.body["message"])
			assert.Equal(t, "MISSING_TOKEN", res.body["code"])
			assert.Equal(t, float64(http.StatusUnauthorized), res.body["status"])

			action, ok := res.body["action"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "redirect", action["type"])
		})
	}

	res := api.do(t, http.MethodGet, "/api/members/me", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "invalid token", res.body["message"])
}

func TestUnknownRoute(t *testing.T) {
	res := newTestAPI(t).do(t, http.MethodGet, "/api/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, middleware.RouteNotFoundMessage, res.body["message"])
}
