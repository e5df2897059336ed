package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// ReceiptWriter stores receipts.  repository.ReceiptRepo implements it.
type ReceiptWriter interface {
	Insert(ctx context.Context, r model.Receipt) error
}

// ErrBadEvent is returned for deliveries that can never be processed.
var ErrBadEvent = errors.New("malformed order event")

// StartReceiptConsumer connects to RabbitMQ, declares the order.placed
// queue and writes one receipt per delivery.  It reconnects with
// exponential backoff and returns only when ctx is cancelled.
func StartReceiptConsumer(ctx context.Context, url string, repo ReceiptWriter, log *zap.Logger) error {
	log = log.Named("receipt-consumer")
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("dial broker failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, repo, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, repo ReceiptWriter, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		log.Warn("set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(OrderPlacedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			err := HandleDelivery(ctx, d.Body, repo)
			switch {
			case err == nil:
				_ = d.Ack(false)
			case errors.Is(err, ErrBadEvent):
				log.Error("dropping malformed event", zap.Error(err))
				_ = d.Nack(false, false)
			default:
				// storage trouble; let the broker redeliver after a pause
				log.Warn("storing receipt failed", zap.Error(err))
				sleep(ctx, time.Second)
				_ = d.Nack(false, true)
			}
		}
	}
}

// HandleDelivery decodes one message body and stores its receipt.
func HandleDelivery(ctx context.Context, body []byte, repo ReceiptWriter) error {
	var ev OrderPlacedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	if ev.OrderID == "" || ev.UserID == "" {
		return fmt.Errorf("%w: order_id and user_id are required", ErrBadEvent)
	}
	if ev.PlacedAt.IsZero() {
		ev.PlacedAt = time.Now().UTC()
	}
	return repo.Insert(ctx, ev.Receipt())
}
