package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"techplug_back_end/internal/models"
	"techplug_back_end/internal/storefront"
)

const EventOrderCreated = "order.created"

type OrderItemEvent struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderCreatedEvent struct {
	EventID       string           `json:"event_id"`
	Type          string           `json:"type"`
	OrderID       string           `json:"order_id"`
	CustomerName  string           `json:"customer_name"`
	Email         string           `json:"email"`
	Total         decimal.Decimal  `json:"total"`
	Items         []OrderItemEvent `json:"items"`
	Status        string           `json:"status"`
	PaymentMethod string           `json:"payment_method"`
	Timestamp     time.Time        `json:"timestamp"`
}

func NewOrderCreatedEvent(o models.Order) OrderCreatedEvent {
	items := make([]OrderItemEvent, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemEvent{ProductID: item.ID, Name: item.Name, Quantity: item.Quantity, Price: item.Price}
	}
	return OrderCreatedEvent{
		EventID:       uuid.NewString(),
		Type:          EventOrderCreated,
		OrderID:       o.ID,
		CustomerName:  o.CustomerName,
		Email:         o.Email,
		Total:         o.Total,
		Items:         items,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		Timestamp:     o.Date,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventProducer publishes placed orders to Kafka.
type OrderEventProducer struct {
	writer messageWriter
	logger *zap.Logger
}

// NewOrderEventProducer returns nil when no brokers are configured.
func NewOrderEventProducer(brokers []string, topic string, logger *zap.Logger) *OrderEventProducer {
	if len(brokers) == 0 {
		return nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	return &OrderEventProducer{writer: writer, logger: logger}
}

// Observe is a storefront.Observer.
func (p *OrderEventProducer) Observe(e storefront.Event) {
	if e.Topic != storefront.TopicOrders || e.Action != storefront.ActionCreated || e.Order == nil {
		return
	}
	order := e.Order.Clone()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = p.PublishOrderCreated(ctx, order)
	}()
}

// PublishOrderCreated writes one message keyed by order id.
func (p *OrderEventProducer) PublishOrderCreated(ctx context.Context, o models.Order) error {
	event := NewOrderCreatedEvent(o)
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal order event", zap.Error(err))
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(o.ID), Value: data})
	if err != nil {
		p.logger.Error("publish order event failed",
			zap.String("event_id", event.EventID),
			zap.String("order_id", o.ID),
			zap.Error(err))
		return err
	}
	p.logger.Info("order event published",
		zap.String("event_id", event.EventID),
		zap.String("order_id", o.ID))
	return nil
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
