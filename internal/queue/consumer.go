// The background consumer drains the audit.log queue into the audit_logs
// table.  It runs a reconnect loop for the life of the process; processing
// errors are logged and the offending message rejected so the server keeps
// operating.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/repository"
)

// StartAuditConsumer connects to RabbitMQ, declares the audit.log queue
// (durable), and consumes entries into the audit repository.  It blocks,
// reconnecting with exponential backoff, and is meant to run as a goroutine
// from main.
func StartAuditConsumer(url string, audits *repository.AuditRepo) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("audit-consumer: dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeAudit(conn, audits); err != nil {
			log.Warn().Err(err).Msg("audit-consumer: consume loop ended, reconnecting")
			time.Sleep(2 * time.Second)
		}
		_ = conn.Close()
	}
}

func consumeAudit(conn *amqp.Connection, audits *repository.AuditRepo) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(AuditQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(AuditQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for d := range msgs {
		if err := persistAudit(d.Body, audits); err != nil {
			log.Error().Err(err).Msg("audit-consumer: entry dropped")
			_ = d.Reject(false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

func persistAudit(body []byte, audits *repository.AuditRepo) error {
	var ev AuditEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	at, err := time.Parse(time.RFC3339, ev.OccurredAt)
	if err != nil {
		at = time.Now().UTC()
	}
	entry := model.AuditLog{
		UserID:       ev.UserID,
		Action:       ev.Action,
		ResourceType: ev.ResourceType,
		ResourceID:   ev.ResourceID,
		Changes:      ev.Changes,
		IPAddress:    ev.IPAddress,
		UserAgent:    ev.UserAgent,
		CreatedAt:    at,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return audits.Insert(ctx, &entry)
}
