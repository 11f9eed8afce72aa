package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Ponloe/postboard/internal/auth"
	"github.com/Ponloe/postboard/internal/config"
	"github.com/Ponloe/postboard/internal/database"
	"github.com/Ponloe/postboard/internal/oauth"
	"github.com/Ponloe/postboard/internal/policy"
	"github.com/Ponloe/postboard/internal/posts"
	"github.com/Ponloe/postboard/internal/server"
	"github.com/Ponloe/postboard/internal/session"
	"github.com/Ponloe/postboard/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// run migrations to create tables
	if err := database.Migrate(db, &users.User{}, &posts.Post{}); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	rdb, err := database.ConnectRedis(context.Background(), cfg.Redis)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	client := oauth.NewClient(oauth.NewGoogleProvider(cfg.Google))
	if len(client.Providers()) == 0 {
		log.Println("no oauth provider configured, login is disabled")
	}

	userStore := users.NewGormStore(db)
	authHandler := auth.NewHandler(
		auth.NewSessionManager(userStore, auth.NewAttributeMapper()),
		sessions,
		auth.NewSigner(cfg.JWTSecret),
		client,
		auth.HandlerConfig{SessionTTL: cfg.SessionTTL, SecureCookie: cfg.SecureCookie},
	)

	r := server.NewRouter(gin.Default(), server.Deps{
		Profile: cfg.Profile,
		Auth:    authHandler,
		Posts:   posts.NewHandler(posts.NewService(posts.NewGormStore(db))),
		Users:   users.NewHandler(userStore),
		Policy:  policy.Default(),
	})

	log.Printf("listening on :%s (profile %s)", cfg.Port, cfg.Profile)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
