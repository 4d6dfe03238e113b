package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusSuccessful is the only status that counts as a captured payment.
const (
	StatusSuccessful = "Payment Successful"
	StatusDeclined   = "Payment Declined"
)

const DefaultCurrency = "USD"

type Request struct {
	Amount     decimal.Decimal `json:"amount"`
	CardNumber string          `json:"cardNumber"`
	Currency   string          `json:"currency,omitempty"`
}

type Response struct {
	Status    string          `json:"status"`
	Reference string          `json:"reference"`
	Timestamp time.Time       `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

func (r Response) Successful() bool { return r.Status == StatusSuccessful }
