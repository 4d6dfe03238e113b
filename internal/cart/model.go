package cart

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
)

// StorageKey is where the cart record lives in the storage port.
const StorageKey = "cart-storage"

// DefaultQuantity is what callers pass when the user gives no quantity.
const DefaultQuantity = 1

// Item is one cart line. Product is a snapshot taken when the line was
// first added; it is never refreshed from the catalog.
type Item struct {
	ProductID int64            `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *catalog.Product `json:"product"`
}

func (it Item) UnitPrice() decimal.Decimal {
	if it.Product == nil {
		return decimal.Zero
	}
	return it.Product.Price
}

func (it Item) LineTotal() decimal.Decimal {
	return it.UnitPrice().Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// state is the persisted part of the store.
type state struct {
	Items []Item `json:"items"`
}

func TotalItems(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// TotalAmount sums price x quantity. Items without a product snapshot count
// as zero.
func TotalAmount(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Quantities maps each product id, as a decimal string, to its quantity.
func Quantities(items []Item) map[string]int {
	out := make(map[string]int, len(items))
	for _, it := range items {
		out[strconv.FormatInt(it.ProductID, 10)] = it.Quantity
	}
	return out
}
