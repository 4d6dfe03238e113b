package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status Status) (*Order, error)
}

// MemoryRepository stores orders in process memory for the mock backend.
type MemoryRepository struct {
	mu         sync.RWMutex
	orders     map[int64]Order
	nextID     int64
	nextItemID int64
	now        func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[int64]Order),
		now:    time.Now,
	}
}

// Create assigns ids, the order date and the total, then stores a copy.
// A zero status becomes PENDING.
func (r *MemoryRepository) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	o.ID = r.nextID
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = r.now().UTC()
	}

	total := decimal.Zero
	for i := range o.Items {
		r.nextItemID++
		o.Items[i].ID = r.nextItemID
		total = total.Add(o.Items[i].Price)
	}
	o.TotalAmount = total

	r.orders[o.ID] = clone(*o)
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	out := clone(o)
	return &out, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, clone(o))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, clone(o))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, orderID int64, status Status) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	o.Status = status
	r.orders[orderID] = o

	out := clone(o)
	return &out, nil
}

func clone(o Order) Order {
	o.Items = append([]Item(nil), o.Items...)
	return o
}

func sortNewestFirst(orders []Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
}
