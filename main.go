package main

import (
	"context"
	"fmt"
	"log"
	"os"

	apirest "github.com/John-Hatton/Inventory/api/rest"
	"github.com/John-Hatton/Inventory/api/sse"
	"github.com/John-Hatton/Inventory/cache"
	"github.com/John-Hatton/Inventory/config"
	dbadapter "github.com/John-Hatton/Inventory/db"
	"github.com/John-Hatton/Inventory/history"
	"github.com/John-Hatton/Inventory/media"
	mw "github.com/John-Hatton/Inventory/middleware"
	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/remote"
	"github.com/John-Hatton/Inventory/repository"
	"github.com/John-Hatton/Inventory/session"
	"github.com/John-Hatton/Inventory/settings"
	"github.com/John-Hatton/Inventory/viewmodel"
	"github.com/John-Hatton/Inventory/worker"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	// ---- Database ----
	db, err := dbadapter.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	logger.Info("DB initialized")

	// ---- Cache / PubSub ----
	c, err := cache.NewCache(cfg.Cache)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	pubsub, err := cache.NewPubSub(cfg.Cache)
	if err != nil {
		log.Fatalf("pubsub: %v", err)
	}
	logger.Info("Cache initialized")

	// ---- Stores ----
	sessionStore := session.NewStore(c, logger)
	settingsStore := settings.NewStore(c, cfg.Remote.ServerURL)
	mediaStore, err := media.NewStore(cfg.Media.Dir)
	if err != nil {
		log.Fatalf("media: %v", err)
	}

	// ---- Background writes / history ----
	queue := worker.New(64, logger)
	defer queue.Stop()
	hist := history.New(db, logger)
	defer hist.Stop(context.Background())

	// ---- Repositories / ViewModels ----
	itemRepo := repository.NewItemRepository(db, pubsub, queue, logger)
	catRepo := repository.NewCategoryRepository(db, pubsub, queue, logger)
	itemVM := viewmodel.NewItemViewModel(itemRepo)
	defer itemVM.Close()
	catVM := viewmodel.NewCategoryViewModel(catRepo)
	defer catVM.Close()

	// ---- Remote client ----
	client, err := remote.NewClient(settingsStore, sessionStore,
		cfg.Remote.CACert, cfg.Remote.Timeout, logger)
	if err != nil {
		logger.Warn("remote client disabled", zap.Error(err))
	}

	// ---- Gin HTTP Server ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(cfg.Security.RateLimitRPS), cfg.Security.RateLimitBurst))

	// Health check
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	itemH := apirest.NewItemHandler(itemVM, mediaStore, hist, logger)
	catH := apirest.NewCategoryHandler(catVM, hist, logger)
	settingsH := apirest.NewSettingsHandler(settingsStore)
	histH := apirest.NewHistoryHandler(hist)

	api := r.Group("/api")
	{
		itemsG := api.Group("/items")
		itemsG.GET("", itemH.List)
		itemsG.POST("", itemH.Create)
		itemsG.PUT("/:id", itemH.Update)
		itemsG.DELETE("/:id", itemH.Delete)
		itemsG.GET("/:id/image", itemH.Image)

		catsG := api.Group("/categories")
		catsG.GET("", catH.List)
		catsG.POST("", catH.Create)
		catsG.DELETE("/:id", catH.Delete)

		api.GET("/settings/server-url", settingsH.GetServerURL)
		api.PUT("/settings/server-url", settingsH.SetServerURL)
		api.GET("/history", histH.Recent)

		if client != nil {
			authH := apirest.NewAuthHandler(client, sessionStore, logger)
			authG := api.Group("/auth")
			authG.POST("/login", authH.Login)
			authG.POST("/register", authH.Register)
			authG.POST("/logout", authH.Logout)
			authG.GET("/session", authH.Session)

			userH := apirest.NewUserHandler(client, logger)
			usersG := api.Group("/users")
			usersG.Use(mw.RequireAdmin(sessionStore))
			usersG.GET("", userH.List)
			usersG.PUT("/:id/role", userH.UpdateRole)
			usersG.DELETE("/:id", userH.Delete)
		}
	}

	// ---- SSE ----
	sseH := sse.NewHandler(itemVM, logger)
	r.GET("/events", sseH.ServeSSE)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
