package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

// Publisher emits domain events about orders.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, o *order.Order, meta EnvelopeMetadata) error
}

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitPublisher struct {
	ch  Channel
	seq *Sequencer
}

func NewRabbitPublisher(conn *amqp.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return NewRabbitPublisherWithChannel(ch)
}

// NewRabbitPublisherWithChannel declares the events exchange on ch so a
// publish never fails due to missing infra.
func NewRabbitPublisherWithChannel(ch Channel) (*RabbitPublisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", EventsExchange, err)
	}
	return &RabbitPublisher{ch: ch, seq: NewSequencer()}, nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, o *order.Order, meta EnvelopeMetadata) error {
	env, err := nextOrderPlaced(p.seq, o, meta)
	if err != nil {
		return err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced envelope: %w", err)
	}
	return p.publishJSON(ctx, OrderPlacedRoutingKey, body)
}

func (p *RabbitPublisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// LogPublisher writes events to the log instead of a broker. The backend
// uses it when no broker URL is configured.
type LogPublisher struct {
	logger logrus.FieldLogger
	seq    *Sequencer
}

func NewLogPublisher(logger logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{logger: logger, seq: NewSequencer()}
}

func (p *LogPublisher) PublishOrderPlaced(ctx context.Context, o *order.Order, meta EnvelopeMetadata) error {
	env, err := nextOrderPlaced(p.seq, o, meta)
	if err != nil {
		return err
	}
	p.logger.WithFields(logrus.Fields{
		"eventName":     env.EventName,
		"eventId":       env.EventID,
		"correlationId": env.CorrelationID,
		"partitionKey":  env.PartitionKey,
		"sequence":      *env.Sequence,
		"orderId":       o.ID,
		"totalAmount":   o.TotalAmount.String(),
	}).Info("event published")
	return nil
}
