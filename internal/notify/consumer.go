package notify

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DeliverFunc sends one notification to its recipient. The worker injects
// the Telegram sender here.
type DeliverFunc func(recipientID int64, text string) error

// Consumer drains the notification queue and hands each task to a
// DeliverFunc. Delivery is best-effort: a failed send is logged and the
// task is still acknowledged, matching the fire-and-forget contract.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	deliver DeliverFunc
}

// NewConsumer dials the broker, declares the queue and registers deliver.
func NewConsumer(url string, deliver DeliverFunc) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s queue: %w", QueueName, err)
	}

	return &Consumer{conn: conn, channel: ch, deliver: deliver}, nil
}

// Run consumes tasks until the context is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.channel.Consume(
		QueueName,
		"",    // consumer tag
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf("notification worker consuming from %s", QueueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handle(d)
		}
	}
}

func (c *Consumer) handle(d amqp.Delivery) {
	task, err := DecodeTask(d.Body)
	if err != nil {
		log.Printf("discarding malformed task: %v", err)
		d.Nack(false, false)
		return
	}

	if err := c.deliver(task.RecipientID, task.Text); err != nil {
		log.Printf("failed to deliver task %s to %d: %v", task.ID, task.RecipientID, err)
	}
	d.Ack(false)
}

// Close shuts down the channel and connection.
func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
