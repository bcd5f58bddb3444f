package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/bookmark-keeper/internal/model"
)

// Publisher sends bookmark events to RabbitMQ. Publishing is strictly
// best-effort: every error is logged and swallowed so the API request
// that triggered the event never depends on the broker. A Publisher
// constructed with an empty URL is a no-op, which is how deployments
// without a broker run.
type Publisher struct {
	url string
}

func NewPublisher(url string) *Publisher { return &Publisher{url: url} }

// BookmarkCreated publishes the event for a newly created bookmark.
func (p *Publisher) BookmarkCreated(ctx context.Context, b model.Bookmark) {
	p.publish(ctx, BookmarkCreatedQueue, eventFrom(b))
}

// BookmarkDeleted publishes the event for a deleted bookmark.
func (p *Publisher) BookmarkDeleted(ctx context.Context, b model.Bookmark) {
	p.publish(ctx, BookmarkDeletedQueue, eventFrom(b))
}

func eventFrom(b model.Bookmark) BookmarkEvent {
	return BookmarkEvent{
		BookmarkID: b.ID,
		UserID:     b.UserID,
		Title:      b.Title,
		Link:       b.Link,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func (p *Publisher) publish(ctx context.Context, queueName string, event BookmarkEvent) {
	if p == nil || p.url == "" {
		return // publishing disabled
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
}
