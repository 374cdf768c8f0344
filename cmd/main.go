package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"chatrelay/backend/internal/api/handler"
	"chatrelay/backend/internal/auth"
	"chatrelay/backend/internal/chathub"
	"chatrelay/backend/internal/config"
	"chatrelay/backend/internal/models"
	"chatrelay/backend/internal/storage"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	if err := db.AutoMigrate(&models.Chat{}, &models.Message{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting ChatRelay Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	registry := chathub.NewRegistry()
	router := chathub.NewRouter(registry, s)
	broadcaster := chathub.NewBroadcaster(registry)
	resolver := auth.NewJWTResolver(cfg.JWTSecret)

	r := gin.Default()
	h := handler.NewHandler(registry, router, broadcaster, s, resolver)

	r.GET("/auth/token", h.GetToken)
	r.GET("/ws/:receiver_id", h.ServeWebSocket)

	authed := r.Group("/", h.RequireAuth())
	authed.GET("/chat/:receiver_id/messages", h.GetChatMessages)
	authed.POST("/chat/:receiver_id/send", h.SendMessage)
	authed.GET("/chats", h.GetUserChats)
	authed.GET("/online-users", h.GetOnlineUsers)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
