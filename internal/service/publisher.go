// Package service holds integrations the HTTP handlers call out to.
package service

import (
    "context"
    "encoding/json"
    "fmt"
    "log/slog"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/dacha-booking/internal/model"
    "github.com/iliyamo/dacha-booking/internal/queue"
)

// Publisher sends booking events to a durable queue on the default exchange.
// The connection is opened lazily and reopened after a failure.
type Publisher struct {
    url   string
    queue string
    log   *slog.Logger

    mu   sync.Mutex
    conn *amqp.Connection
}

func NewPublisher(url, queueName string, log *slog.Logger) *Publisher {
    return &Publisher{url: url, queue: queueName, log: log}
}

// BookingCreated publishes a booking.created event for b.  Errors are logged
// and returned; callers treat them as non-fatal.
func (p *Publisher) BookingCreated(ctx context.Context, b model.Booking) error {
    ev := queue.NewBookingCreated(b)
    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }
    err = p.publish(ctx, amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    ev.EventID,
        Timestamp:    time.Now().UTC(),
        Type:         "booking.created",
        Body:         body,
    })
    if err != nil {
        p.log.Error("rabbitmq: publish failed", "booking_id", b.ID, "error", err)
        return err
    }
    p.log.Debug("rabbitmq: booking event published", "booking_id", b.ID, "event_id", ev.EventID)
    return nil
}

func (p *Publisher) publish(ctx context.Context, msg amqp.Publishing) error {
    p.mu.Lock()
    defer p.mu.Unlock()

    if p.conn == nil || p.conn.IsClosed() {
        conn, err := amqp.Dial(p.url)
        if err != nil {
            return fmt.Errorf("dial: %w", err)
        }
        p.conn = conn
    }
    ch, err := p.conn.Channel()
    if err != nil {
        _ = p.conn.Close()
        p.conn = nil
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    return ch.PublishWithContext(ctx, "", p.queue, false, false, msg)
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
    p.mu.Lock()
    defer p.mu.Unlock()
    if p.conn == nil {
        return nil
    }
    err := p.conn.Close()
    p.conn = nil
    return err
}
