package test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, name, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, Name: name, PasswordHash: passwordHash, Role: role, Active: true}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored users ignoring the condition.
func (s *UserRepositoryStub) List(ctx context.Context, cond query.Condition, page query.Page) ([]model.User, int64, error) {
	if s.Err != nil {
		return nil, 0, s.Err
	}
	users := make([]model.User, 0, len(s.ByID))
	for _, u := range s.ByID {
		users = append(users, *u)
	}
	return users, int64(len(users)), nil
}

// OrderRepositoryStub stores orders in-memory and lets tests override calls.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[int64]*model.Order
	Next   int64

	CreateFn func(context.Context, *model.Order) (*model.Order, error)
	StatsFn  func(context.Context) (*model.OrderStats, error)
}

// NewOrderRepositoryStub constructs stub repository with initialized storage.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Create assigns an identifier and stores the order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.Orders {
		if existing.Number == order.Number {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	stored := *order
	stored.ID = s.Next
	s.Next++
	s.Orders[stored.ID] = &stored
	result := stored
	return &result, nil
}

// GetByID fetches order by identifier or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	result := *order
	return &result, nil
}

// GetByNumber fetches order by its public number.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.Orders {
		if order.Number == number {
			result := *order
			return &result, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Mutate applies fn to a copy and persists it only on success.
func (s *OrderRepositoryStub) Mutate(ctx context.Context, id int64, fn func(*model.Order) error) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	scratch := *order
	if err := fn(&scratch); err != nil {
		return nil, err
	}
	s.Orders[id] = &scratch
	result := scratch
	return &result, nil
}

// List returns all stored orders ignoring the condition.
func (s *OrderRepositoryStub) List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		orders = append(orders, *o)
	}
	return orders, int64(len(orders)), nil
}

// SoftDelete removes the order from the stub storage.
func (s *OrderRepositoryStub) SoftDelete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, id)
	return nil
}

// Stats counts stored orders per status.
func (s *OrderRepositoryStub) Stats(ctx context.Context) (*model.OrderStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &model.OrderStats{ByStatus: make(map[model.OrderStatus]int64)}
	for _, o := range s.Orders {
		stats.TotalOrders++
		stats.ByStatus[o.Status]++
	}
	return stats, nil
}

// ProductRepositoryStub serves a fixed catalog and records stock operations.
type ProductRepositoryStub struct {
	mu       sync.Mutex
	Products map[int64]*model.Product
	Reserved []int64
	Deducted []int64
	Released []int64
}

// NewProductRepositoryStub constructs stub repository with initialized storage.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[int64]*model.Product)}
}

// GetByID fetches product by identifier or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.Products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	result := *product
	return &result, nil
}

// List returns all stored products ignoring the condition.
func (s *ProductRepositoryStub) List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Product, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		products = append(products, *p)
	}
	return products, int64(len(products)), nil
}

// Reserve records the call and fails when available stock is short.
func (s *ProductRepositoryStub) Reserve(ctx context.Context, productID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.Products[productID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if product.Available() < qty {
		return &domainErrors.InsufficientStockError{ProductID: productID, Requested: qty, Available: product.Available()}
	}
	product.Reserved += qty
	s.Reserved = append(s.Reserved, productID)
	return nil
}

// Deduct records the call and lowers stock together with the reservation.
func (s *ProductRepositoryStub) Deduct(ctx context.Context, productID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.Products[productID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	product.Stock -= qty
	if product.Reserved >= qty {
		product.Reserved -= qty
	} else {
		product.Reserved = 0
	}
	s.Deducted = append(s.Deducted, productID)
	return nil
}

// Release records the call and returns reserved units, floored at zero.
func (s *ProductRepositoryStub) Release(ctx context.Context, productID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.Products[productID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if product.Reserved >= qty {
		product.Reserved -= qty
	} else {
		product.Reserved = 0
	}
	s.Released = append(s.Released, productID)
	return nil
}

// CartRepositoryStub serves one cart per identifier and tracks clears.
type CartRepositoryStub struct {
	Carts   map[uuid.UUID]*model.Cart
	Cleared []uuid.UUID
}

// NewCartRepositoryStub constructs stub repository with initialized storage.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Carts: make(map[uuid.UUID]*model.Cart)}
}

// GetByID fetches cart by identifier or returns not found.
func (s *CartRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Cart, error) {
	cart, ok := s.Carts[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cart, nil
}

// Clear records the call and empties the cart.
func (s *CartRepositoryStub) Clear(ctx context.Context, id uuid.UUID) error {
	s.Cleared = append(s.Cleared, id)
	if cart, ok := s.Carts[id]; ok {
		cart.Items = nil
	}
	return nil
}

// CategoryRepositoryStub serves a fixed category list.
type CategoryRepositoryStub struct {
	Categories []model.Category
}

// List returns the configured categories ignoring the condition.
func (s *CategoryRepositoryStub) List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Category, int64, error) {
	return s.Categories, int64(len(s.Categories)), nil
}

// ReviewRepositoryStub serves a fixed review list.
type ReviewRepositoryStub struct {
	Reviews []model.Review
}

// List returns the configured reviews ignoring the condition.
func (s *ReviewRepositoryStub) List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Review, int64, error) {
	return s.Reviews, int64(len(s.Reviews)), nil
}
