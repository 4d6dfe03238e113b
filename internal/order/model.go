package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one order line. Price is the line total (unit price x quantity).
type Item struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Items       []Item          `json:"items"`
	Status      Status          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderDate   time.Time       `json:"orderDate"`
}

// Quantities maps a product id, as a decimal string, to the ordered
// quantity. It is the body of an order placement request.
type Quantities map[string]int
