package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Producer publishes notification tasks. It satisfies chathub.Notifier.
type Producer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewProducer dials the broker and declares the notification queue.
func NewProducer(url string) (*Producer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s queue: %w", QueueName, err)
	}

	log.Printf("notification producer connected, queue %s declared", QueueName)
	return &Producer{conn: conn, channel: ch}, nil
}

// Enqueue publishes one push task. Callers treat this as fire-and-forget:
// an error means the task was never queued, and the caller logs and moves on.
func (p *Producer) Enqueue(recipientID int64, text string) error {
	task := NewTask(recipientID, text)
	body, err := task.Encode()
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		"",        // default exchange
		QueueName, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    task.ID,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish task %s: %w", task.ID, err)
	}
	return nil
}

// Close shuts down the channel and connection.
func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
