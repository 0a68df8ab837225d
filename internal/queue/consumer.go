package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "log/slog"
    "os"
    "path/filepath"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

const (
    prefetch   = 50
    maxBackoff = 30 * time.Second
)

// Consumer reads booking.created events and appends one line per booking to
// Out.  Run reconnects with exponential backoff until ctx is cancelled.
type Consumer struct {
    URL   string
    Queue string
    Out   io.Writer
    Log   *slog.Logger

    mu sync.Mutex // serializes writes to Out
}

// OpenBookingLog opens (creating directories as needed) the append-only
// booking log file.
func OpenBookingLog(path string) (*os.File, error) {
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
    }
    return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// Run blocks until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            c.Log.Warn("booking consumer: dial failed", "error", err, "retry_in", backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < maxBackoff {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consume(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        c.Log.Warn("booking consumer: loop ended, reconnecting", "error", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(prefetch, 0, false); err != nil {
        c.Log.Warn("booking consumer: set QoS failed", "error", err)
    }
    if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }
    c.Log.Info("booking consumer: listening", "queue", c.Queue)

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.Handle(d.Body); err != nil {
                c.Log.Error("booking consumer: handle message failed", "error", err)
                _ = d.Nack(false, false) // no requeue
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// Handle decodes one event body and writes its log line.
func (c *Consumer) Handle(body []byte) error {
    var ev BookingCreatedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.BookingID == 0 {
        return errors.New("event has no booking_id")
    }
    c.mu.Lock()
    defer c.mu.Unlock()
    if _, err := io.WriteString(c.Out, FormatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatLine renders ev as a single human-readable log line.
func FormatLine(ev BookingCreatedEvent) string {
    return fmt.Sprintf("[%s] Booking created | booking_id=%d | listing_id=%d | check_in=%s | check_out=%s | guests=%d | customer=%q | phone=%q | total=%d UZS | event_id=%s\n",
        ev.CreatedAt, ev.BookingID, ev.ListingID, ev.CheckIn, ev.CheckOut, ev.Guests,
        ev.CustomerName, ev.CustomerPhone, ev.TotalPrice, ev.EventID)
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
