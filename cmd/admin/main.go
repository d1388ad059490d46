// Admin is a maintenance CLI for operators: linking Telegram accounts by
// hand and purging chats together with their ephemeral state.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Amirkhan012/Messaging-service/internal/config"
	"github.com/Amirkhan012/Messaging-service/internal/storage"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(settings.DatabaseDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     settings.RedisAddr(),
		Password: settings.RedisPassword,
		DB:       settings.RedisDB,
	})

	store := storage.NewService(db, rdb)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: link-telegram <email> <telegram_id> | purge-chat <chat_id> | show-cache <chat_id>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "link-telegram":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin link-telegram <email> <telegram_id>")
			os.Exit(1)
		}
		email := os.Args[2]
		tgID, err := strconv.ParseInt(os.Args[3], 10, 64)
		if err != nil {
			fmt.Println("Invalid telegram id. Please provide an integer.")
			os.Exit(1)
		}
		user, err := store.LinkTelegramID(email, tgID)
		if err != nil {
			log.Fatalf("Error linking telegram account: %v", err)
		}
		fmt.Printf("Linked telegram id %d to user %d (%s).\n", tgID, user.ID, user.Username)

	case "purge-chat":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin purge-chat <chat_id>")
			os.Exit(1)
		}
		id, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			fmt.Println("Invalid chat id. Please provide an integer.")
			os.Exit(1)
		}
		chatID := uint(id)

		if err := store.DeleteChat(chatID); err != nil {
			log.Fatalf("Error deleting chat: %v", err)
		}
		ctx := context.Background()
		if err := store.DeleteRecentMessages(ctx, chatID); err != nil {
			log.Printf("warning: failed to drop message cache: %v", err)
		}
		if err := store.DeleteChatPresence(ctx, chatID); err != nil {
			log.Printf("warning: failed to drop presence key: %v", err)
		}
		fmt.Printf("Chat %d purged.\n", chatID)

	case "show-cache":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin show-cache <chat_id>")
			os.Exit(1)
		}
		id, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			fmt.Println("Invalid chat id. Please provide an integer.")
			os.Exit(1)
		}

		payloads, err := store.GetRecentMessages(context.Background(), uint(id))
		if err != nil {
			log.Fatalf("Error reading message cache: %v", err)
		}
		if len(payloads) == 0 {
			fmt.Println("Message cache is empty.")
			return
		}
		for _, p := range payloads {
			fmt.Println(p)
		}

	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}
