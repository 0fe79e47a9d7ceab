package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relaychat/backend/internal/api/handler"
	"relaychat/backend/internal/chathub"
	"relaychat/backend/internal/config"
	"relaychat/backend/internal/models"
	"relaychat/backend/internal/storage"
	"relaychat/backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client, *storage.MinioStore) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	files, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket)
	if err != nil {
		log.Fatalf("Failed to connect MinIO: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	slog.Info("database, redis and minio connections established, migrations complete")
	return db, rdb, files
}

func main() {
	slog.Info("starting relaychat backend")

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, rdb, files := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)
	tokens := token.NewService(cfg.JWTSecret, cfg.JWTExpire, s)

	hub := chathub.NewHub(s, files, chathub.LivenessConfig{
		ProbeInterval: cfg.ProbeInterval,
		AckWindow:     cfg.AckWindow,
	})

	r := gin.Default()
	r.Use(handler.CORS(cfg.ClientURL))
	h := handler.NewHandler(hub, s, files, tokens)

	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/profile", h.Profile)
	r.GET("/people", h.People)
	r.GET("/messages/:userId", h.Messages)
	r.GET("/uploads/:name", h.ServeAttachment)
	r.GET("/ws", h.ServeWebSocket)

	// No Read/WriteTimeout here: those deadlines survive the hijack done by
	// the WebSocket upgrade and would cut every connection after they elapse.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("server stopped")
}
