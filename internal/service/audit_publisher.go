// Package audit_publisher provides functions to publish audit trail entries
// to RabbitMQ.  Errors are logged and returned so callers can ignore
// failures without interrupting the main request flow: an audit entry that
// cannot be published never fails the mutation it describes.
package audit_publisher

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	q "github.com/iliyamo/conference-companion/internal/queue"
)

// PublishAuditEvent publishes an AuditEvent to the audit.log queue.  The
// function never panics; any error is logged and returned.  Messages are
// marked persistent so entries survive broker restarts.
func PublishAuditEvent(ctx context.Context, url string, event q.AuditEvent) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so entries survive broker restarts.
	if _, err := ch.QueueDeclare(q.AuditQueueName, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", q.AuditQueueName, false, false, pub); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
