package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/xpres/xpres-server/internal/config"
	"github.com/xpres/xpres-server/internal/database"
	"github.com/xpres/xpres-server/internal/external"
	"github.com/xpres/xpres-server/internal/localdata"
	"github.com/xpres/xpres-server/internal/received/service"
	"github.com/xpres/xpres-server/internal/server"
	"github.com/xpres/xpres-server/internal/storage"
	"github.com/xpres/xpres-server/pkg/logger"
	"github.com/xpres/xpres-server/pkg/metrics"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL is honoured before config so config errors are logged at the right level
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	if logger.LevelString() != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Debugf("config: data=%s public=%s receive=%s ratelimit=%v", cfg.Data.Dir, cfg.Data.PublicDir, cfg.Receive.Backend, cfg.RateLimit.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Single asynchronous connection attempt. Database routes answer 503
	// until (and unless) it succeeds.
	mongo := &database.Handle{}
	go func() {
		if err := mongo.Connect(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout); err != nil {
			logger.Errorf("could not connect to MongoDB: %v", err)
			logger.Errorf("make sure MongoDB is running on localhost:27017 or set MONGO_URI")
			return
		}
		logger.Infof("connected to MongoDB (database %q)", cfg.MongoDB.Database)
	}()

	var sink localdata.Sink
	switch cfg.Receive.Backend {
	case config.BackendMinIO:
		s, err := storage.NewMinIOSink(ctx, cfg.MinIO)
		if err != nil {
			logger.Fatalf("failed to initialize MinIO sink: %v", err)
		}
		logger.Infof("received payloads go to MinIO bucket %q at %s", cfg.MinIO.Bucket, cfg.MinIO.Endpoint)
		sink = s
	default:
		s, err := localdata.NewDiskSink(cfg.Data.Dir)
		if err != nil {
			logger.Fatalf("failed to prepare data directory: %v", err)
		}
		sink = s
	}

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis && cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis ping failed (%s:%s), using in-memory rate limiter: %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = redisClient.Close()
			redisClient = nil
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := server.New(cfg, server.Deps{
		Seed:      localdata.NewSeed(filepath.Join(cfg.Data.Dir, localdata.SeedFile)),
		Receiver:  localdata.NewReceiver(sink),
		Fetcher:   external.NewFetcher(cfg.External.Timeout),
		Received:  service.NewMongoService(mongo),
		Mongo:     mongo,
		Redis:     redisClient,
		Gatherer:  prometheus.DefaultGatherer,
		PublicDir: cfg.Data.PublicDir,
		Started:   startTime,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("server listening on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	if err := mongo.Close(shutdownCtx); err != nil {
		logger.Warnf("mongo disconnect: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
