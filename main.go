package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feedbackwall/feedback-service/handlers"
	"github.com/feedbackwall/feedback-service/internal/config"
	"github.com/feedbackwall/feedback-service/internal/database"
	"github.com/feedbackwall/feedback-service/internal/feedback/handler"
	"github.com/feedbackwall/feedback-service/internal/feedback/repository"
	"github.com/feedbackwall/feedback-service/internal/feedback/service"
	"github.com/feedbackwall/feedback-service/pkg/logger"
	"github.com/feedbackwall/feedback-service/pkg/metrics"
	"github.com/feedbackwall/feedback-service/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL applies before config so load failures honour it
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Configure(cfg.Server.Environment)
	logger.Init(cfg.Log.Level)
	defer func() { _ = logger.Sync() }()
	logger.Infof("config loaded: mongo_db=%s redis=%v rate_limit=%v", cfg.MongoDB.Database, cfg.Redis.Host != "", cfg.RateLimit.Enabled)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The Mongo client is opened on first use and shared process-wide.
	provider := database.NewProvider(cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Collection, cfg.MongoDB.Timeout)
	mongoRepo := repository.NewMongoRepo(provider)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout+5*time.Second)
		defer cancel()
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			logger.Warnf("feedback index setup skipped: %v", err)
		}
	}()

	var redisClient *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v; continuing without cache", addr, err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			logger.Infof("connected to Redis: %s", addr)
		}
	}

	var repo repository.Repository = mongoRepo
	if redisClient != nil && cfg.Cache.TTL > 0 {
		repo = repository.NewRedisCachedRepo(mongoRepo, redisClient, "", cfg.Cache.TTL)
	}
	svc := service.New(repo)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := newRouter(cfg, svc, redisClient)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("starting feedback service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := provider.Close(ctx); err != nil {
		logger.Errorf("mongo disconnect: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

// newRouter wires middleware and routes. redisClient may be nil.
func newRouter(cfg *config.Config, svc service.Service, redisClient *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORS.AllowedOrigins)))

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	checks := map[string]handlers.Check{"mongo": svc.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	handlers.RegisterHealth(r, startTime, checks)
	handlers.RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterFeedbackRoutes(r, svc)
	handler.RegisterFeedbackRoutes(r.Group("/api"), svc)
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
