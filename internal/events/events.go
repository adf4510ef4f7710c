package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	OrderCreated       = "OrderCreated"
	OrderStatusChanged = "OrderStatusChanged"
	OrderDeleted       = "OrderDeleted"
	StockAdjusted      = "StockAdjusted"
)

type Event struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload"`
	Timestamp   time.Time       `json:"timestamp"`
}

// New builds an event keyed by the aggregate id.
func New(eventType string, aggregateID int64, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		EventID:     uuid.New().String(),
		EventType:   eventType,
		AggregateID: strconv.FormatInt(aggregateID, 10),
		Payload:     data,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// Publisher emits domain events after the owning transaction committed.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, Event) error { return nil }

func (noopPublisher) Close() error { return nil }
