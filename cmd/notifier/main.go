// The notifier worker drains the notification queue and delivers push
// messages through the Telegram Bot API. It runs as a separate process so
// delivery latency never touches the chat path.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/Amirkhan012/Messaging-service/internal/config"
	"github.com/Amirkhan012/Messaging-service/internal/notify"
	"github.com/Amirkhan012/Messaging-service/internal/telegram"
)

func main() {
	log.Println("Starting notification worker...")

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if settings.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN must be set for the notification worker")
	}

	sender, err := telegram.NewSender(settings.TelegramToken)
	if err != nil {
		log.Fatalf("Failed to authorize Telegram bot: %v", err)
	}

	consumer, err := notify.NewConsumer(settings.AMQPURL, sender.Send)
	if err != nil {
		log.Fatalf("Failed to connect notification queue: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Consumer stopped: %v", err)
	}
	log.Println("Notification worker stopped.")
}
