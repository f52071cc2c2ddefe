package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/config"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/mq"
)

// ErrQueueFull is returned by Produce when the relay cannot accept more messages.
var ErrQueueFull = errors.New("relay queue is full")

const produceTimeout = 5 * time.Second

var _ mq.Producer = (*Service)(nil)

// Service buffers messages in memory and relays them to the underlying producer in
// batches, off the caller's goroutine. Messages sharing a partition key are relayed
// in the order they were queued.
type Service struct {
	cfg      config.Relay
	logger   *slog.Logger
	producer mq.Producer
	queue    chan mq.ProduceMsg

	stopChan chan struct{}
}

func NewService(cfg config.Relay, logger *slog.Logger, producer mq.Producer) *Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 1024
	}

	return &Service{
		cfg:      cfg,
		logger:   logger.With(slog.String("service", "relay")),
		producer: producer,
		queue:    make(chan mq.ProduceMsg, cfg.BufferSize),
		stopChan: make(chan struct{}),
	}
}

// Produce queues msg without blocking.
func (s *Service) Produce(_ context.Context, msg mq.ProduceMsg) error {
	select {
	case s.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

type CleanupFunc func()

// Run starts relaying. The returned func stops the relay after flushing what is
// still queued, giving up after five seconds.
func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			for batch := s.nextBatch(); len(batch) > 0 && ctx.Err() == nil; batch = s.nextBatch() {
				s.relay(ctx, batch)
			}
			return
		case <-ticker.C:
			for batch := s.nextBatch(); len(batch) > 0; batch = s.nextBatch() {
				s.relay(ctx, batch)
				if uint32(len(batch)) < s.cfg.BatchSize {
					break
				}
			}
		}
	}
}

// nextBatch takes up to BatchSize queued messages.
func (s *Service) nextBatch() []mq.ProduceMsg {
	var batch []mq.ProduceMsg
	for uint32(len(batch)) < s.cfg.BatchSize {
		select {
		case msg := <-s.queue:
			batch = append(batch, msg)
		default:
			return batch
		}
	}
	return batch
}

func (s *Service) relay(ctx context.Context, batch []mq.ProduceMsg) {
	s.logger.DebugContext(ctx, "relaying messages", slog.Int("count", len(batch)))

	var (
		wg     sync.WaitGroup
		failed int
		mu     sync.Mutex
	)

	for _, msgs := range groupByKey(batch) {
		wg.Go(func() {
			for _, msg := range msgs {
				if err := s.produce(ctx, msg); err != nil {
					s.logger.ErrorContext(ctx, "error producing message",
						slog.String("topic", msg.Topic),
						slog.Any("error", err),
					)
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}
		})
	}

	wg.Wait()

	if failed > 0 {
		s.logger.WarnContext(ctx, "some messages were not relayed",
			slog.Int("failed", failed), slog.Int("count", len(batch)))
	}
}

func (s *Service) produce(ctx context.Context, msg mq.ProduceMsg) error {
	// continue the trace of the request that queued the message
	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Headers))

	ctx, cancel := context.WithTimeout(ctx, produceTimeout)
	defer cancel()

	if err := s.producer.Produce(ctx, msg); err != nil {
		return fmt.Errorf("produce message: %w", err)
	}
	return nil
}

// groupByKey splits batch into per-partition-key sequences, keeping queue order
// inside each. Unkeyed messages each form their own group.
func groupByKey(batch []mq.ProduceMsg) [][]mq.ProduceMsg {
	var groups [][]mq.ProduceMsg
	index := make(map[string]int)

	for _, msg := range batch {
		if msg.PartitionKey == nil {
			groups = append(groups, []mq.ProduceMsg{msg})
			continue
		}
		i, ok := index[*msg.PartitionKey]
		if !ok {
			i = len(groups)
			index[*msg.PartitionKey] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], msg)
	}
	return groups
}
