// Package service provides functions to publish catalog events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/queue"
)

// EventPublisher publishes CatalogEvents to a durable queue.  Each call
// opens its own connection; catalog writes are rare enough that a pooled
// channel is not worth the reconnect handling.
type EventPublisher struct {
	url   string
	queue string
}

// NewEventPublisher builds a publisher from cfg.
func NewEventPublisher(cfg config.EventsConfig) *EventPublisher {
	return &EventPublisher{url: cfg.URL, queue: cfg.Queue}
}

// Publish sends ev to the configured queue.  Messages are marked as persistent.
func (p *EventPublisher) Publish(ctx context.Context, ev queue.CatalogEvent) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Dial:      amqp.DefaultDial(2 * time.Second),
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    ev.ID,
		Type:         ev.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}

// NoopPublisher discards events.  Used when EVENTS_ENABLED is off.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, queue.CatalogEvent) error { return nil }
