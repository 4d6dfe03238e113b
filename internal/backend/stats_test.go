package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

func TestComputeStats(t *testing.T) {
	products := []catalog.Product{
		{ID: 1, Name: "Headphones", Price: dec("199.99"), Stock: 50, Category: "Electronics"},
		{ID: 2, Name: "Watch", Price: dec("149.99"), Stock: 19, Category: "Electronics"},
		{ID: 3, Name: "T-Shirt", Price: dec("29.99"), Stock: 20, Category: "Clothing"},
	}

	var orders []order.Order
	for i := int64(7); i >= 1; i-- {
		orders = append(orders, order.Order{
			ID:          i,
			Status:      order.StatusPending,
			TotalAmount: dec("10"),
			Items:       []order.Item{{ProductID: 3, Quantity: 1, Price: dec("10")}},
		})
	}
	orders[0].Status = order.StatusShipped
	orders[1].Items = append(orders[1].Items, order.Item{ProductID: 42, Quantity: 1, Price: dec("0")})

	s := ComputeStats(products, orders)

	assert.Equal(t, 7, s.TotalOrders)
	assert.Equal(t, 3, s.TotalProducts)
	assert.Equal(t, 1, s.LowStockProducts)
	assert.True(t, s.TotalRevenue.Equal(dec("70")))
	assert.Equal(t, map[order.Status]int{order.StatusPending: 6, order.StatusShipped: 1}, s.OrdersByStatus)
	assert.True(t, s.RevenueByCategory["Clothing"].Equal(dec("70")))
	_, hasElectronics := s.RevenueByCategory["Electronics"]
	assert.False(t, hasElectronics)

	require.Len(t, s.RecentOrders, recentOrdersLimit)
	assert.Equal(t, int64(7), s.RecentOrders[0].ID)
	assert.Equal(t, "T-Shirt", s.RecentOrders[0].Items[0].Name)
	assert.Equal(t, "Unknown Product", s.RecentOrders[1].Items[1].Name)
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil, nil)
	assert.True(t, s.TotalRevenue.IsZero())
	assert.Empty(t, s.RecentOrders)
	assert.NotNil(t, s.OrdersByStatus)
}
