package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/mq"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/store"
	"github.com/tuanvumaihuynh/shipment-dashboard/pkg/msgheader"
)

const (
	TopicProductAdded   = "product.added"
	TopicProductUpdated = "product.updated"
	TopicProductDeleted = "product.deleted"
)

const defaultProduceTimeout = 5 * time.Second

// ProductChangedEvent is the payload published for every store mutation.
type ProductChangedEvent struct {
	Op         store.Op      `json:"op"`
	ProductID  string        `json:"product_id"`
	Product    model.Product `json:"product"`
	OccurredAt time.Time     `json:"occurred_at"`
}

var _ store.Observer = (*Publisher)(nil)

// Publisher forwards store mutations to the message queue. Publishing never fails the
// mutation; errors are only logged.
type Publisher struct {
	logger      *slog.Logger
	producer    mq.Producer
	topicPrefix string
	timeout     time.Duration
	now         func() time.Time
}

func NewPublisher(logger *slog.Logger, producer mq.Producer, topicPrefix string) *Publisher {
	return &Publisher{
		logger:      logger.With(slog.String("component", "event_publisher")),
		producer:    producer,
		topicPrefix: topicPrefix,
		timeout:     defaultProduceTimeout,
		now:         time.Now,
	}
}

func (p *Publisher) OnChange(ctx context.Context, change store.Change) {
	if err := p.publish(ctx, change); err != nil {
		p.logger.ErrorContext(ctx, "error publishing product event",
			slog.String("op", string(change.Op)),
			slog.String("product_id", change.ProductID),
			slog.Any("error", err),
		)
	}
}

func (p *Publisher) publish(ctx context.Context, change store.Change) error {
	topic, err := topicFor(change.Op)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(ProductChangedEvent{
		Op:         change.Op,
		ProductID:  change.ProductID,
		Product:    change.Product,
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	key := change.ProductID
	if err := p.producer.Produce(ctx, mq.ProduceMsg{
		Topic:        p.topicPrefix + topic,
		Headers:      msgheader.Build(ctx),
		Payload:      payload,
		PartitionKey: &key,
	}); err != nil {
		return fmt.Errorf("produce message: %w", err)
	}

	return nil
}

func topicFor(op store.Op) (string, error) {
	switch op {
	case store.OpAdd:
		return TopicProductAdded, nil
	case store.OpUpdate:
		return TopicProductUpdated, nil
	case store.OpDelete:
		return TopicProductDeleted, nil
	default:
		return "", fmt.Errorf("unknown store op: %q", op)
	}
}
