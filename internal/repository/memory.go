package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/online-catalog/backend/internal/models"
)

// In-memory repositories back tests and no-database development. They hold
// the same semantics as the Mongo implementations: GetAll sorting, sentinel
// errors, and missing-settings-reads-as-empty.

// InMemoryProductRepository implements ProductRepository with map storage.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

// NewInMemoryProductRepository creates an in-memory product repository
// preloaded with the given products.
func NewInMemoryProductRepository(seed ...models.Product) *InMemoryProductRepository {
	products := make(map[string]models.Product, len(seed))
	for _, p := range seed {
		products[p.ID] = p
	}
	return &InMemoryProductRepository{products: products}
}

// GetAll returns all products sorted by name.
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
	return products, nil
}

// GetByID returns a product by its ID.
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

// Create inserts a new product with a generated ID.
func (r *InMemoryProductRepository) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := models.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Brand:       in.Brand,
		Model:       in.Model,
		Category:    in.Category,
		Price:       in.Price,
		Image:       in.Image,
		Description: in.Description,
		OptionIDs:   in.OptionIDs,
	}
	r.products[p.ID] = p
	return &p, nil
}

// Update overwrites a product's fields.
func (r *InMemoryProductRepository) Update(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return nil, ErrProductNotFound
	}
	p := models.Product{
		ID:          id,
		Name:        in.Name,
		Brand:       in.Brand,
		Model:       in.Model,
		Category:    in.Category,
		Price:       in.Price,
		Image:       in.Image,
		Description: in.Description,
		OptionIDs:   in.OptionIDs,
	}
	r.products[id] = p
	return &p, nil
}

// Delete removes a product.
func (r *InMemoryProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// InMemoryOptionRepository implements OptionRepository with map storage.
type InMemoryOptionRepository struct {
	mu      sync.RWMutex
	options map[string]models.Option
}

// NewInMemoryOptionRepository creates an in-memory option repository
// preloaded with the given option groups.
func NewInMemoryOptionRepository(seed ...models.Option) *InMemoryOptionRepository {
	options := make(map[string]models.Option, len(seed))
	for _, o := range seed {
		options[o.ID] = o
	}
	return &InMemoryOptionRepository{options: options}
}

// GetAll returns all option groups sorted by name for deterministic output.
func (r *InMemoryOptionRepository) GetAll(ctx context.Context) ([]models.Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts := make([]models.Option, 0, len(r.options))
	for _, o := range r.options {
		opts = append(opts, o)
	}
	sort.Slice(opts, func(i, j int) bool {
		return strings.ToLower(opts[i].Name) < strings.ToLower(opts[j].Name)
	})
	return opts, nil
}

// GetByID returns an option group by its ID.
func (r *InMemoryOptionRepository) GetByID(ctx context.Context, id string) (*models.Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.options[id]
	if !exists {
		return nil, ErrOptionNotFound
	}
	return &o, nil
}

// Create inserts a new option group with a generated ID.
func (r *InMemoryOptionRepository) Create(ctx context.Context, in models.OptionInput) (*models.Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o := models.Option{ID: uuid.NewString(), Name: in.Name, Values: in.Values}
	r.options[o.ID] = o
	return &o, nil
}

// Update overwrites an option group's fields.
func (r *InMemoryOptionRepository) Update(ctx context.Context, id string, in models.OptionInput) (*models.Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.options[id]; !exists {
		return nil, ErrOptionNotFound
	}
	o := models.Option{ID: id, Name: in.Name, Values: in.Values}
	r.options[id] = o
	return &o, nil
}

// Delete removes an option group.
func (r *InMemoryOptionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.options[id]; !exists {
		return ErrOptionNotFound
	}
	delete(r.options, id)
	return nil
}

// InMemoryOrderRepository implements OrderRepository with map storage.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewInMemoryOrderRepository creates an empty in-memory order repository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{orders: make(map[string]models.Order)}
}

// GetAll returns all orders, newest first.
func (r *InMemoryOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Create inserts a new order with a generated ID.
func (r *InMemoryOrderRepository) Create(ctx context.Context, order models.Order) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = uuid.NewString()
	r.orders[order.ID] = order
	return &order, nil
}

// UpdateStatus sets an order's status.
func (r *InMemoryOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, exists := r.orders[id]
	if !exists {
		return ErrOrderNotFound
	}
	o.Status = status
	r.orders[id] = o
	return nil
}

// Delete removes an order.
func (r *InMemoryOrderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[id]; !exists {
		return ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

// InMemorySettingsRepository implements SettingsRepository with a single
// in-memory value.
type InMemorySettingsRepository struct {
	mu       sync.RWMutex
	settings *models.Settings
}

// NewInMemorySettingsRepository creates an in-memory settings repository.
// Until the first Save, Get reads as empty settings.
func NewInMemorySettingsRepository() *InMemorySettingsRepository {
	return &InMemorySettingsRepository{}
}

// Get reads the settings; missing settings read as empty.
func (r *InMemorySettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.settings == nil {
		return &models.Settings{}, nil
	}
	s := *r.settings
	return &s, nil
}

// Save writes the settings.
func (r *InMemorySettingsRepository) Save(ctx context.Context, s models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = &s
	return nil
}
