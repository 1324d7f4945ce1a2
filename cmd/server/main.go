package main

import (
	"context"
	"net/http"
	"os"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/api/handler"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/api/middleware"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/auth"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/chathub"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/config"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/logger"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config, log *zap.SugaredLogger) (*storage.Service, error) {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	store := storage.NewService(db, rdb, log)
	if err := store.AutoMigrate(); err != nil {
		return nil, err
	}

	log.Info("database and redis connections established, migrations complete")
	return store, nil
}

func main() {
	// A missing .env is fine in containerized deployments.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.Server.Development)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer log.Sync()

	store, err := setupDependencies(cfg, log)
	if err != nil {
		log.Fatalw("failed to set up dependencies", "error", err)
	}

	tokens := auth.NewManager(cfg.JWT.Secret, cfg.TokenTTL)
	hub := chathub.NewHub(store, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	if !cfg.Server.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	h := handler.NewHandler(store, hub, tokens, log)

	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.RateLimit(config.AuthRateLimit, config.AuthRateBurst))
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/signin", h.Signin)
	}

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(tokens, store, log))
	{
		api.GET("/me", h.Me)

		doctor := api.Group("/patients")
		doctor.Use(middleware.RequireRole(models.RoleDoctor, store, log))
		{
			doctor.GET("", h.ListPatients)
			doctor.GET("/:id", h.GetPatient)
		}

		api.GET("/rooms", h.ListRooms)
		api.POST("/rooms/:id/read", h.MarkRoomRead)
		api.GET("/rooms/:id/messages", h.GetMessages)
		api.POST("/rooms/:id/messages", h.SendMessage)
		api.DELETE("/rooms/:id/messages/:msgID", h.DeleteMessage)
	}

	r.GET("/ws", middleware.RequireAuth(tokens, store, log), h.ServeWebSocket)

	server := &http.Server{
		Addr:           cfg.Server.Addr,
		Handler:        r,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	log.Infow("starting medicall api", "addr", cfg.Server.Addr)
	log.Fatal(server.ListenAndServe())
}
