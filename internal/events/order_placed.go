package events

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

const (
	OrderPlacedEventName    = "OrderPlaced"
	OrderPlacedEventVersion = 1
	orderPlacedSchema       = "contracts/events/order/OrderPlaced.v1.payload.schema.json"
	producerName            = "mock-backend"
)

type OrderPlacedItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderPlacedPayload struct {
	OrderID     int64             `json:"orderId"`
	UserID      int64             `json:"userId"`
	Items       []OrderPlacedItem `json:"items"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	OrderDate   time.Time         `json:"orderDate"`
}

type OrderPlacedEnvelope = EventEnvelope[OrderPlacedPayload]

// BuildOrderPlacedEnvelope wraps o in an envelope partitioned by user, so
// a consumer sees one user's orders in sequence.
func BuildOrderPlacedEnvelope(o *order.Order, seq int64, meta EnvelopeMetadata) OrderPlacedEnvelope {
	if meta.CorrelationID == "" {
		meta.CorrelationID = uuid.NewString()
	}

	items := make([]OrderPlacedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderPlacedItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	return OrderPlacedEnvelope{
		EventName:     OrderPlacedEventName,
		EventVersion:  OrderPlacedEventVersion,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producerName,
		PartitionKey:  strconv.FormatInt(o.UserID, 10),
		Sequence:      &seq,
		OccurredAt:    time.Now().UTC(),
		Schema:        orderPlacedSchema,
		Payload: OrderPlacedPayload{
			OrderID:     o.ID,
			UserID:      o.UserID,
			Items:       items,
			TotalAmount: o.TotalAmount,
			OrderDate:   o.OrderDate,
		},
	}
}

// ValidateOrderPlaced rejects envelopes that consumers could not act on:
// a wrong header, no order id, no owner or no lines.
func ValidateOrderPlaced(env OrderPlacedEnvelope) error {
	if err := env.Validate(OrderPlacedEventName, OrderPlacedEventVersion); err != nil {
		return err
	}
	p := env.Payload
	switch {
	case p.OrderID <= 0:
		return fmt.Errorf("%w: missing orderId", ErrInvalidEnvelope)
	case p.UserID <= 0:
		return fmt.Errorf("%w: missing userId", ErrInvalidEnvelope)
	case len(p.Items) == 0:
		return fmt.Errorf("%w: order %d has no items", ErrInvalidEnvelope, p.OrderID)
	}
	return nil
}

// nextOrderPlaced builds and validates the envelope for o, taking a sequence
// number only once the event is known to be publishable.
func nextOrderPlaced(seq *Sequencer, o *order.Order, meta EnvelopeMetadata) (OrderPlacedEnvelope, error) {
	env := BuildOrderPlacedEnvelope(o, 0, meta)
	if err := ValidateOrderPlaced(env); err != nil {
		return OrderPlacedEnvelope{}, err
	}
	n := seq.Next(env.PartitionKey)
	env.Sequence = &n
	return env, nil
}
