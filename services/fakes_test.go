package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ta9iBarkat/ecommerce-platform/models"
)

// In-memory store fakes. They mirror the atomicity contracts of the Mongo
// implementations: conditional stock adjust, cart delete keyed by cart id,
// compare-and-set status updates.

type fakeCarts struct {
	mu     sync.Mutex
	byUser map[primitive.ObjectID]models.Cart
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{byUser: make(map[primitive.ObjectID]models.Cart)}
}

func (f *fakeCarts) Get(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.byUser[userID]
	if !ok {
		return nil, models.ErrCartNotFound
	}
	cp := cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	return &cp, nil
}

func (f *fakeCarts) Save(_ context.Context, cart *models.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	f.byUser[cart.UserID] = cp
	return nil
}

func (f *fakeCarts) RemoveItem(_ context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.byUser[userID]
	if !ok {
		return nil, models.ErrCartNotFound
	}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	f.byUser[userID] = cart
	cp := cart
	return &cp, nil
}

func (f *fakeCarts) Delete(_ context.Context, cartID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for userID, cart := range f.byUser {
		if cart.ID == cartID {
			delete(f.byUser, userID)
			return true, nil
		}
	}
	return false, nil
}

type fakeCatalog struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: make(map[primitive.ObjectID]models.Product)}
}

func (f *fakeCatalog) add(name string, price float64, stock int) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	f.products[id] = models.Product{
		ID:    id,
		Name:  name,
		Price: price,
		Stock: stock,
		Images: []models.ProductImage{
			{URL: "https://img.example/" + name + ".jpg", PublicID: name},
		},
	}
	return id
}

func (f *fakeCatalog) remove(id primitive.ObjectID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
}

func (f *fakeCatalog) stockOf(id primitive.ObjectID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].Stock
}

func (f *fakeCatalog) Get(_ context.Context, productID primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[productID]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	cp := product
	return &cp, nil
}

func (f *fakeCatalog) Adjust(_ context.Context, productID primitive.ObjectID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[productID]
	if !ok {
		return models.ErrProductNotFound
	}
	if delta < 0 && product.Stock < -delta {
		return models.ErrInsufficientStock
	}
	product.Stock += delta
	f.products[productID] = product
	return nil
}

type fakeOrders struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[primitive.ObjectID]models.Order)}
}

func (f *fakeOrders) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func (f *fakeOrders) Insert(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrders) Remove(_ context.Context, orderID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.orders, orderID)
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	cp := order
	return &cp, nil
}

func (f *fakeOrders) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *fakeOrders) FindAll(_ context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Order, 0, len(f.orders))
	for _, order := range f.orders {
		out = append(out, order)
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, orderID primitive.ObjectID, from, to models.OrderStatus, deliveredAt *time.Time) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	if order.Status != from {
		return nil, models.ErrStatusConflict
	}
	order.Status = to
	if deliveredAt != nil {
		order.DeliveredAt = deliveredAt
	}
	f.orders[orderID] = order
	cp := order
	return &cp, nil
}

func sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[primitive.ObjectID]models.User
	emails map[string]primitive.ObjectID
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byID:   make(map[primitive.ObjectID]models.User),
		emails: make(map[string]primitive.ObjectID),
	}
}

func (f *fakeUsers) Insert(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.emails[user.Email]; ok {
		return models.ErrEmailTaken
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.byID[user.ID] = *user
	f.emails[user.Email] = user.ID
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.emails[email]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	user := f.byID[id]
	return &user, nil
}

func (f *fakeUsers) FindByID(_ context.Context, userID primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &user, nil
}
