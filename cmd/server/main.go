package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Amirkhan012/Messaging-service/internal/api/handler"
	"github.com/Amirkhan012/Messaging-service/internal/chathub"
	"github.com/Amirkhan012/Messaging-service/internal/config"
	"github.com/Amirkhan012/Messaging-service/internal/models"
	"github.com/Amirkhan012/Messaging-service/internal/notify"
	"github.com/Amirkhan012/Messaging-service/internal/storage"
	"github.com/Amirkhan012/Messaging-service/internal/telegram"
)

func setupDependencies(settings *config.Settings) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(settings.DatabaseDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.Message{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     settings.RedisAddr(),
		Password: settings.RedisPassword,
		DB:       settings.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting messaging service...")

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, rdb := setupDependencies(settings)
	store := storage.NewService(db, rdb)

	producer, err := notify.NewProducer(settings.AMQPURL)
	if err != nil {
		log.Fatalf("Failed to connect notification queue: %v", err)
	}
	defer producer.Close()

	registry := chathub.NewRegistry()

	janitor := chathub.NewJanitor(store, settings.JanitorPeriod())
	go janitor.Run(ctx)

	if settings.TelegramToken != "" {
		bot, err := telegram.NewBotService(settings.TelegramToken, store)
		if err != nil {
			log.Fatalf("Failed to start Telegram bot: %v", err)
		}
		go bot.Run(ctx)
	} else {
		log.Println("TELEGRAM_TOKEN not set, account-link bot disabled")
	}

	r := gin.Default()
	h := handler.NewHandler(store, registry, producer, settings)

	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := r.Group("/", h.AuthRequired())
	authed.GET("/users", h.ListUsers)
	authed.GET("/chats/:chat_id/messages", h.GetChatMessages)
	authed.GET("/chats/get_or_create/:user_id", h.GetOrCreateChat)
	authed.DELETE("/chats/:chat_id", h.DeleteChat)

	r.GET("/ws/:chat_id", h.ServeWebSocket)

	server := &http.Server{
		Addr:           ":" + settings.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on :%s", settings.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP server failed: %v", err)
	}
	log.Println("Server stopped.")
}
