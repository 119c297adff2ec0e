package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"example.com/shop-admin/app/internal/usecase/inventory"
)

const (
	EventsExchange          = "ecommerce.events"
	StockDepletedRoutingKey = "stock.depleted.v1"
	EventTypeStockDepleted  = "StockDepleted"

	defaultProducer = "shop-admin"
	publishTimeout  = 3 * time.Second
)

// StockDepletedEvent is the message body published when a variant runs out.
type StockDepletedEvent struct {
	EventID      string    `json:"eventId"`
	EventName    string    `json:"eventName"`
	EventVersion int       `json:"eventVersion"`
	Producer     string    `json:"producer"`
	PartitionKey string    `json:"partitionKey"`
	OccurredAt   time.Time `json:"occurredAt"`
	EntryID      string    `json:"entryId"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	Variant      string    `json:"variant"`
}

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	producer string
}

// Dial connects to the broker and declares the events exchange.
func Dial(url, producer string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	p, err := NewPublisher(conn, producer)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func NewPublisher(conn *amqp.Connection, producer string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	if producer == "" {
		producer = defaultProducer
	}
	return &Publisher{ch: ch, producer: producer}, nil
}

// Close releases the channel and, when the publisher dialed it, the connection.
func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (p *Publisher) PublishStockDepleted(ctx context.Context, ev inventory.StockDepleted) error {
	body, err := json.Marshal(newStockDepletedEvent(p.producer, ev))
	if err != nil {
		return fmt.Errorf("marshal StockDepleted: %w", err)
	}
	return p.publishJSON(ctx, StockDepletedRoutingKey, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
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

func newStockDepletedEvent(producer string, ev inventory.StockDepleted) StockDepletedEvent {
	occurred := ev.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	return StockDepletedEvent{
		EventID:      uuid.NewString(),
		EventName:    EventTypeStockDepleted,
		EventVersion: 1,
		Producer:     producer,
		PartitionKey: ev.ProductID,
		OccurredAt:   occurred.UTC(),
		EntryID:      ev.EntryID,
		ProductID:    ev.ProductID,
		ProductName:  ev.ProductName,
		Variant:      ev.Variant,
	}
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
