// Package service publishes domain events to RabbitMQ.  Publishing is best
// effort: failures are logged and returned, and callers never fail a
// request because of them.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-storefront/internal/queue"
)

// dialTimeout bounds the TCP connect and AMQP handshake when ctx carries no
// earlier deadline.
const dialTimeout = 3 * time.Second

// OrderPublisher sends OrderPlacedEvent messages.  A connection is dialled
// per publish.
type OrderPublisher struct {
	url string
	log *zap.Logger
}

func NewOrderPublisher(url string, log *zap.Logger) *OrderPublisher {
	return &OrderPublisher{url: url, log: log.Named("order-publisher")}
}

// PublishOrderPlaced publishes ev to the order.placed queue as a
// persistent JSON message.
func (p *OrderPublisher) PublishOrderPlaced(ctx context.Context, ev queue.OrderPlacedEvent) error {
	log := p.log.With(zap.String("order_id", ev.OrderID))
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(handshakeTimeout(ctx)),
	})
	if err != nil {
		log.Warn("dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.OrderPlacedQueue, true, false, false, false, nil); err != nil {
		log.Warn("queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    ev.OrderID,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.OrderPlacedQueue, false, false, pub); err != nil {
		log.Warn("publish failed", zap.Error(err))
		return err
	}
	log.Debug("order event published")
	return nil
}

func handshakeTimeout(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < dialTimeout {
			return max(left, time.Millisecond)
		}
	}
	return dialTimeout
}
