package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

func product(id int64, price string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "product",
		Price:    decimal.RequireFromString(price),
		Stock:    5,
		Category: "Electronics",
	}
}

func setup(t *testing.T) (*Store, *storage.MemoryStore, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	mem := storage.NewMemoryStore()
	return NewStore(mem, logger), mem, hook
}

type failingStorage struct{ err error }

func (f failingStorage) Get(ctx context.Context, key string) ([]byte, error) { return nil, f.err }
func (f failingStorage) Set(ctx context.Context, key string, value []byte) error {
	return f.err
}

func TestAddItem_NewItem(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product(1, "10.00"), 2))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, s.TotalItems())
	assert.True(t, s.TotalAmount().Equal(decimal.NewFromInt(20)), "total %s", s.TotalAmount())
}

func TestAddItem_DistinctProducts(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()

	quantities := []int{1, 3, 2, 7}
	want := 0
	for i, q := range quantities {
		require.NoError(t, s.AddItem(ctx, product(int64(i+1), "1.50"), q))
		want += q
	}

	assert.Len(t, s.Items(), len(quantities))
	assert.Equal(t, want, s.TotalItems())
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product(1, "5"), 2))
	require.NoError(t, s.AddItem(ctx, product(2, "1"), 1))
	require.NoError(t, s.AddItem(ctx, product(1, "5"), 3))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, int64(2), items[1].ProductID)
}

func TestAddItem_DoesNotClampToStock(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()

	p := product(1, "1")
	p.Stock = 1
	require.NoError(t, s.AddItem(ctx, p, 4))
	assert.Equal(t, 4, s.TotalItems())
}

func TestAddItem_KeepsFirstSnapshot(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product(1, "10"), 1))
	require.NoError(t, s.AddItem(ctx, product(1, "99"), 1))

	items := s.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Product.Price.Equal(decimal.NewFromInt(10)))
	assert.True(t, s.TotalAmount().Equal(decimal.NewFromInt(20)))
}

func TestAddItem_IgnoresQuantityBelowOne(t *testing.T) {
	s, _, hook := setup(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product(1, "10"), 0))
	require.NoError(t, s.AddItem(ctx, product(1, "10"), -2))

	assert.Empty(t, s.Items())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestUpdateQuantity(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.AddItem(ctx, product(1, "10"), 2))

	require.NoError(t, s.UpdateQuantity(ctx, 1, 0))
	require.NoError(t, s.UpdateQuantity(ctx, 1, -1))
	assert.Equal(t, 2, s.Items()[0].Quantity)

	require.NoError(t, s.UpdateQuantity(ctx, 1, 6))
	assert.Equal(t, 6, s.Items()[0].Quantity)

	require.NoError(t, s.UpdateQuantity(ctx, 42, 3))
	require.Len(t, s.Items(), 1)
	assert.Equal(t, 6, s.TotalItems())
}

func TestRemoveItem(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, s.AddItem(ctx, product(i, "1"), 1))
	}
	before := s.Items()

	require.NoError(t, s.RemoveItem(ctx, 99))
	assert.Equal(t, before, s.Items())

	require.NoError(t, s.RemoveItem(ctx, 2))
	after := s.Items()
	require.Len(t, after, 2)
	assert.Equal(t, int64(1), after[0].ProductID)
	assert.Equal(t, int64(3), after[1].ProductID)
}

func TestTotalAmount_MatchesRecomputation(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product(1, "199.99"), 1))
	require.NoError(t, s.AddItem(ctx, product(2, "0.10"), 3))
	require.NoError(t, s.AddItem(ctx, product(3, "29.99"), 2))
	require.NoError(t, s.UpdateQuantity(ctx, 2, 7))
	require.NoError(t, s.RemoveItem(ctx, 3))
	require.NoError(t, s.AddItem(ctx, product(1, "199.99"), 1))

	want := decimal.Zero
	for _, it := range s.Items() {
		want = want.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	assert.True(t, s.TotalAmount().Equal(want), "got %s want %s", s.TotalAmount(), want)
	assert.True(t, s.TotalAmount().Equal(decimal.RequireFromString("400.68")))
}

func TestTotalAmount_MissingProductCountsAsZero(t *testing.T) {
	items := []Item{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1, Product: &catalog.Product{ID: 2, Price: decimal.RequireFromString("3.25")}},
	}
	assert.True(t, TotalAmount(items).Equal(decimal.RequireFromString("3.25")))
	assert.Equal(t, 3, TotalItems(items))
}

func TestClearCart(t *testing.T) {
	s, mem, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.AddItem(ctx, product(1, "10"), 2))

	require.NoError(t, s.ClearCart(ctx))
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalItems())
	assert.True(t, s.TotalAmount().IsZero())

	raw, err := mem.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"items":[]},"version":0}`, string(raw))
}

func TestItems_ReturnsCopy(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.AddItem(ctx, product(1, "10"), 1))

	items := s.Items()
	items[0].Quantity = 50
	items[0].Product.Price = decimal.NewFromInt(1000)

	assert.Equal(t, 1, s.TotalItems())
	assert.True(t, s.TotalAmount().Equal(decimal.NewFromInt(10)))
}

func TestPersistence_RoundTrip(t *testing.T) {
	s, mem, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.AddItem(ctx, product(1, "10"), 2))
	require.NoError(t, s.AddItem(ctx, product(2, "2.5"), 1))

	logger, _ := logtest.NewNullLogger()
	fresh := NewStore(mem, logger)
	require.NoError(t, fresh.Hydrate(ctx))

	assert.Equal(t, s.Items(), fresh.Items())
	assert.True(t, fresh.TotalAmount().Equal(decimal.RequireFromString("22.50")))
}

func TestHydrate_MissingRecordKeepsEmptyCart(t *testing.T) {
	s, _, _ := setup(t)
	require.NoError(t, s.Hydrate(context.Background()))
	assert.Empty(t, s.Items())
}

func TestHydrate_MalformedRecordIsIgnored(t *testing.T) {
	s, mem, hook := setup(t)
	ctx := context.Background()
	require.NoError(t, s.AddItem(ctx, product(1, "10"), 1))
	require.NoError(t, mem.Set(ctx, StorageKey, []byte(`{"state":`)))

	require.NoError(t, s.Hydrate(ctx))
	assert.Len(t, s.Items(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestHydrate_DropsNonPositiveLines(t *testing.T) {
	s, mem, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, StorageKey, []byte(
		`{"state":{"items":[{"productId":1,"quantity":0},{"productId":2,"quantity":3,"product":{"id":2,"price":"1.5"}}]},"version":0}`,
	)))

	require.NoError(t, s.Hydrate(ctx))
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)
	assert.True(t, s.TotalAmount().Equal(decimal.RequireFromString("4.5")))
}

func TestHydrate_MergesDuplicateLines(t *testing.T) {
	s, mem, hook := setup(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, StorageKey, []byte(
		`{"state":{"items":[`+
			`{"productId":1,"quantity":2,"product":{"id":1,"price":"10"}},`+
			`{"productId":2,"quantity":1,"product":{"id":2,"price":"3"}},`+
			`{"productId":1,"quantity":3,"product":{"id":1,"price":"99"}}`+
			`]},"version":0}`,
	)))

	require.NoError(t, s.Hydrate(ctx))
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.True(t, items[0].Product.Price.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, map[string]int{"1": 5, "2": 1}, Quantities(items))
	assert.True(t, s.TotalAmount().Equal(decimal.NewFromInt(53)))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestHydrate_StorageErrorIsReturned(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	boom := errors.New("disk gone")
	s := NewStore(failingStorage{err: boom}, logger)

	assert.ErrorIs(t, s.Hydrate(context.Background()), boom)
}

func TestMutation_SaveErrorKeepsMemoryState(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	boom := errors.New("disk full")
	s := NewStore(failingStorage{err: boom}, logger)

	err := s.AddItem(context.Background(), product(1, "10"), 1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, s.TotalItems())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestQuantities(t *testing.T) {
	items := []Item{{ProductID: 3, Quantity: 2}, {ProductID: 11, Quantity: 1}}
	assert.Equal(t, map[string]int{"3": 2, "11": 1}, Quantities(items))
}
