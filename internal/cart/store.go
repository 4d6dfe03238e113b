package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

// Store owns the shopping cart. Every mutation is applied in memory first
// and then saved; a returned error only reports that the save failed.
type Store struct {
	storage storage.Storage
	logger  logrus.FieldLogger

	mu    sync.Mutex
	items []Item
}

func NewStore(s storage.Storage, logger logrus.FieldLogger) *Store {
	return &Store{
		storage: s,
		logger:  logger.WithField("store", "cart"),
	}
}

// Hydrate replaces the in-memory cart with the persisted one. A missing
// record leaves the cart as it is; a malformed one is logged and ignored.
// Lines repeating a product are merged into the first one.
func (s *Store) Hydrate(ctx context.Context) error {
	st, err := storage.Load[state](ctx, s.storage, StorageKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case errors.Is(err, storage.ErrMalformed):
		s.logger.WithError(err).Warn("ignoring malformed cart record")
		return nil
	case err != nil:
		return err
	}

	items := make([]Item, 0, len(st.Items))
	index := make(map[int64]int, len(st.Items))
	for _, it := range st.Items {
		if it.Quantity < 1 {
			s.logger.WithField("productId", it.ProductID).Warn("dropping persisted cart line with quantity below 1")
			continue
		}
		if i, ok := index[it.ProductID]; ok {
			s.logger.WithField("productId", it.ProductID).Warn("merging duplicate persisted cart line")
			items[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(items)
		items = append(items, it)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.WithField("items", len(items)).Debug("cart hydrated")
	return nil
}

// AddItem merges quantity into the line for product or appends a new line
// with a snapshot of product. Stock is not checked.
func (s *Store) AddItem(ctx context.Context, product catalog.Product, quantity int) error {
	if quantity < 1 {
		s.logger.WithFields(logrus.Fields{"productId": product.ID, "quantity": quantity}).
			Warn("ignoring add with quantity below 1")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		snapshot := product
		s.items = append(s.items, Item{ProductID: product.ID, Quantity: quantity, Product: &snapshot})
	}

	s.logger.WithFields(logrus.Fields{"productId": product.ID, "quantity": quantity, "merged": merged}).Debug("item added")
	return s.saveLocked(ctx)
}

// RemoveItem drops the line for productID. Absent ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	s.items = kept

	s.logger.WithFields(logrus.Fields{"productId": productID, "remaining": len(kept)}).Debug("item removed")
	return s.saveLocked(ctx)
}

// UpdateQuantity sets the quantity of the line for productID. Quantities
// below 1 are rejected without touching the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		s.logger.WithFields(logrus.Fields{"productId": productID, "quantity": quantity}).
			Warn("ignoring quantity update below 1")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
		}
	}

	s.logger.WithFields(logrus.Fields{"productId": productID, "quantity": quantity}).Debug("quantity updated")
	return s.saveLocked(ctx)
}

func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.logger.Debug("cart cleared")
	return s.saveLocked(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.items)
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalItems(s.items)
}

func (s *Store) TotalAmount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalAmount(s.items)
}

func (s *Store) saveLocked(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []Item{}
	}
	if err := storage.Save(ctx, s.storage, StorageKey, state{Items: items}); err != nil {
		s.logger.WithError(err).Error("persist cart")
		return err
	}
	return nil
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if it.Product != nil {
			p := *it.Product
			it.Product = &p
		}
		out[i] = it
	}
	return out
}
