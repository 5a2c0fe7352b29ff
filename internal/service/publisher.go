// Package service orchestrates reconciliations: it runs the report
// builder, stores the run and announces it on the message broker.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/ticket-stock-reconciler/internal/queue"
)

// EventPublisher announces completed reconciliations.
type EventPublisher interface {
	PublishCompleted(ctx context.Context, ev queue.ReconciliationCompletedEvent) error
}

// AMQPPublisher publishes events to RabbitMQ, one connection per message.
type AMQPPublisher struct {
	URL string
}

// PublishCompleted sends ev to the reconciliation.completed queue as a
// persistent JSON message.
func (p *AMQPPublisher) PublishCompleted(ctx context.Context, ev queue.ReconciliationCompletedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.CompletedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.RunID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.CompletedQueue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}
