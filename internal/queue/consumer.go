package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LogFileName is the file under the report log directory the consumer
// appends to.
const LogFileName = "reconciliation.log"

// ReportConsumer appends one line per completed reconciliation to
// <LogDir>/reconciliation.log.
type ReportConsumer struct {
	URL    string
	LogDir string
	Logger *slog.Logger
}

// Run dials the broker and consumes until ctx is cancelled, reconnecting
// with exponential backoff.  Bad messages are logged and rejected without
// requeue.
func (rc *ReportConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(rc.URL)
		if err != nil {
			rc.Logger.Warn("report consumer: dial failed", "error", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = min(backoff*2, 30*time.Second)
			continue
		}
		backoff = time.Second

		err = rc.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rc.Logger.Warn("report consumer: consume loop ended, reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (rc *ReportConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		rc.Logger.Warn("report consumer: set QoS failed", "error", err)
	}
	if _, err := ch.QueueDeclare(CompletedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, CompletedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := rc.Handle(d.Body); err != nil {
			rc.Logger.Warn("report consumer: handle message failed", "error", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// Handle decodes one event and appends its log line.
func (rc *ReportConsumer) Handle(body []byte) error {
	var ev ReconciliationCompletedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.RunID == "" {
		return errors.New("event without run_id")
	}
	if err := os.MkdirAll(rc.LogDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", rc.LogDir, err)
	}
	f, err := os.OpenFile(filepath.Join(rc.LogDir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev) + "\n"); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders an event as one log line.
func FormatLine(ev ReconciliationCompletedEvent) string {
	line := fmt.Sprintf("[%s] Reconciliation completed | run_id=%s | event=%q | context=%q | operator=%q | tickets=%d | stock=%d | pending=%d | delivered=%d | sold=%d",
		ev.CompletedAt, ev.RunID, ev.EventName, ev.VenueContext, ev.Operator,
		ev.GrandTotal, ev.NetStock, ev.Pending, ev.Delivered, ev.TotalSold)
	if len(ev.Warnings) > 0 {
		line += fmt.Sprintf(" | warnings=%d", len(ev.Warnings))
	}
	if len(ev.Shortfalls) > 0 {
		line += " | shortfalls=[" + strings.Join(ev.Shortfalls, "; ") + "]"
	}
	return line
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
