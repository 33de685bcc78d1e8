package service

import (
	"context"
	"strings"
	"sync"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/deppfellow/shoppingcart/internal/lib/event"
	"github.com/deppfellow/shoppingcart/internal/lib/job"
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

type fakeMembers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.Member
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{byID: map[int64]*model.Member{}}
}

func (f *fakeMembers) Create(_ context.Context, email, name, hash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.byID {
		if m.Email == email {
			return 0, errs.ErrDuplicateMemberEmail
		}
	}
	f.nextID++
	f.byID[f.nextID] = &model.Member{ID: f.nextID, Email: email, Name: name, Password: hash}
	return f.nextID, nil
}

func (f *fakeMembers) FindByID(_ context.Context, id int64) (*model.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok {
		return nil, errors.Wrap(pgx.ErrNoRows, "find member")
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMembers) FindByEmail(_ context.Context, email string) (*model.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.byID {
		if m.Email == email {
			cp := *m
			return &cp, nil
		}
	}
	return nil, errors.Wrap(pgx.ErrNoRows, "find member")
}

func (f *fakeMembers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeMembers) UpdateName(_ context.Context, id int64, name string) error {
	return f.update(id, func(m *model.Member) { m.Name = name })
}

func (f *fakeMembers) UpdatePassword(_ context.Context, id int64, hash string) error {
	return f.update(id, func(m *model.Member) { m.Password = hash })
}

func (f *fakeMembers) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return errors.Wrap(pgx.ErrNoRows, "delete member")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeMembers) update(id int64, fn func(*model.Member)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok {
		return errors.Wrap(pgx.ErrNoRows, "update member")
	}
	fn(m)
	return nil
}

// plainHasher stores passwords with a visible prefix.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Matches(hash, plain string) bool {
	return strings.TrimPrefix(hash, "hashed:") == plain
}

type fakeMailer struct {
	welcomes      []string
	confirmations []job.OrderConfirmationPayload
	err           error
}

func (f *fakeMailer) EnqueueWelcomeEmail(_ context.Context, to, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.welcomes = append(f.welcomes, to)
	return nil
}

func (f *fakeMailer) EnqueueOrderConfirmation(_ context.Context, p job.OrderConfirmationPayload) error {
	if f.err != nil {
		return f.err
	}
	f.confirmations = append(f.confirmations, p)
	return nil
}

type fakePublisher struct {
	events []event.OrderPlaced
	err    error
}

func (f *fakePublisher) PublishOrderPlaced(_ context.Context, e event.OrderPlaced) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

type fakeProducts struct {
	nextID int64
	byID   map[int64]*model.Product
	reads  int
}

func newFakeProducts(products ...model.Product) *fakeProducts {
	f := &fakeProducts{byID: map[int64]*model.Product{}}
	for i := range products {
		p := products[i]
		f.byID[p.ID] = &p
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
	}
	return f
}

func (f *fakeProducts) Create(_ context.Context, name string, price int32, imageURL string) (int64, error) {
	f.nextID++
	f.byID[f.nextID] = &model.Product{ID: f.nextID, Name: name, Price: price, ImageURL: imageURL}
	return f.nextID, nil
}

func (f *fakeProducts) FindAll(context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(f.byID))
	for id := int64(1); id <= f.nextID; id++ {
		if p, ok := f.byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProducts) FindByID(_ context.Context, id int64) (*model.Product, error) {
	f.reads++
	p, ok := f.byID[id]
	if !ok {
		return nil, errors.Wrap(pgx.ErrNoRows, "find product")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return errors.Wrap(pgx.ErrNoRows, "delete product")
	}
	delete(f.byID, id)
	return nil
}

type mapCache struct {
	entries map[int64]model.Product
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[int64]model.Product{}}
}

func (c *mapCache) Get(_ context.Context, id int64) *model.Product {
	p, ok := c.entries[id]
	if !ok {
		return nil
	}
	return &p
}

func (c *mapCache) Set(_ context.Context, p *model.Product) { c.entries[p.ID] = *p }

func (c *mapCache) Invalidate(_ context.Context, id int64) { delete(c.entries, id) }

type fakeCarts struct {
	nextID   int64
	byID     map[int64]*model.CartItem
	products *fakeProducts
}

func newFakeCarts(products *fakeProducts) *fakeCarts {
	return &fakeCarts{byID: map[int64]*model.CartItem{}, products: products}
}

func (f *fakeCarts) FindByMemberID(_ context.Context, memberID int64) ([]model.CartItem, error) {
	out := []model.CartItem{}
	for id := int64(1); id <= f.nextID; id++ {
		if item, ok := f.byID[id]; ok && item.MemberID == memberID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeCarts) FindByID(_ context.Context, id int64) (*model.CartItem, error) {
	item, ok := f.byID[id]
	if !ok {
		return nil, errors.Wrap(pgx.ErrNoRows, "find cart item")
	}
	cp := *item
	return &cp, nil
}

func (f *fakeCarts) Add(_ context.Context, memberID, productID int64, quantity int) (int64, error) {
	for _, item := range f.byID {
		if item.MemberID == memberID && item.ProductID == productID {
			item.Quantity += quantity
			return item.ID, nil
		}
	}
	p := f.products.byID[productID]
	f.nextID++
	f.byID[f.nextID] = &model.CartItem{
		ID:        f.nextID,
		MemberID:  memberID,
		ProductID: productID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  quantity,
	}
	return f.nextID, nil
}

func (f *fakeCarts) UpdateQuantity(_ context.Context, id int64, quantity int) error {
	item, ok := f.byID[id]
	if !ok {
		return errors.Wrap(pgx.ErrNoRows, "update cart item")
	}
	item.Quantity = quantity
	return nil
}

func (f *fakeCarts) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return errors.Wrap(pgx.ErrNoRows, "delete cart item")
	}
	delete(f.byID, id)
	return nil
}

type fakeOrders struct {
	nextID int64
	orders []model.Order
	carts  *fakeCarts
	err    error
}

func (f *fakeOrders) Create(_ context.Context, memberID int64, lines []model.OrderLine) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	order := model.Order{ID: f.nextID, MemberID: memberID}
	for _, line := range lines {
		item := f.carts.byID[line.CartItemID]
		order.Details = append(order.Details, model.OrderDetail{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  line.Quantity,
		})
	}
	for _, line := range lines {
		delete(f.carts.byID, line.CartItemID)
	}
	f.orders = append(f.orders, order)
	return order.ID, nil
}

func (f *fakeOrders) FindByID(_ context.Context, memberID, orderID int64) (*model.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == orderID && f.orders[i].MemberID == memberID {
			return &f.orders[i], nil
		}
	}
	return nil, errors.Wrap(pgx.ErrNoRows, "find order")
}

func (f *fakeOrders) FindByMemberID(_ context.Context, memberID int64) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range f.orders {
		if o.MemberID == memberID {
			out = append(out, o)
		}
	}
	return out, nil
}
