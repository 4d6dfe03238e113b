package backend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

const recentOrdersLimit = 5

type Stats struct {
	TotalRevenue      decimal.Decimal            `json:"totalRevenue"`
	TotalOrders       int                        `json:"totalOrders"`
	TotalProducts     int                        `json:"totalProducts"`
	LowStockProducts  int                        `json:"lowStockProducts"`
	OrdersByStatus    map[order.Status]int       `json:"ordersByStatus"`
	RevenueByCategory map[string]decimal.Decimal `json:"revenueByCategory"`
	RecentOrders      []RecentOrder              `json:"recentOrders"`
}

type RecentOrder struct {
	ID     int64             `json:"id"`
	Date   time.Time         `json:"date"`
	Status order.Status      `json:"status"`
	Total  decimal.Decimal   `json:"total"`
	Items  []RecentOrderItem `json:"items"`
}

type RecentOrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// ComputeStats summarises the catalog and order book. orders must be
// sorted newest first. Lines whose product no longer exists count towards
// revenue but not towards any category.
func ComputeStats(products []catalog.Product, orders []order.Order) Stats {
	byID := make(map[int64]catalog.Product, len(products))
	s := Stats{
		TotalRevenue:      decimal.Zero,
		TotalOrders:       len(orders),
		TotalProducts:     len(products),
		OrdersByStatus:    map[order.Status]int{},
		RevenueByCategory: map[string]decimal.Decimal{},
		RecentOrders:      []RecentOrder{},
	}

	for _, p := range products {
		byID[p.ID] = p
		if p.Stock < catalog.LowStockThreshold {
			s.LowStockProducts++
		}
	}

	for i, o := range orders {
		s.TotalRevenue = s.TotalRevenue.Add(o.TotalAmount)
		s.OrdersByStatus[o.Status]++

		recent := i < recentOrdersLimit
		var ro RecentOrder
		if recent {
			ro = RecentOrder{ID: o.ID, Date: o.OrderDate, Status: o.Status, Total: o.TotalAmount}
		}

		for _, it := range o.Items {
			p, known := byID[it.ProductID]
			if known {
				s.RevenueByCategory[p.Category] = s.RevenueByCategory[p.Category].Add(it.Price)
			}
			if recent {
				name := it.Name
				if name == "" {
					name = "Unknown Product"
					if known {
						name = p.Name
					}
				}
				ro.Items = append(ro.Items, RecentOrderItem{Name: name, Quantity: it.Quantity, Price: it.Price})
			}
		}

		if recent {
			s.RecentOrders = append(s.RecentOrders, ro)
		}
	}
	return s
}
