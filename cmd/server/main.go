package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davancensm/Case36-TercerEntrega/internal/auth"
	"github.com/davancensm/Case36-TercerEntrega/internal/cache"
	"github.com/davancensm/Case36-TercerEntrega/internal/cart"
	"github.com/davancensm/Case36-TercerEntrega/internal/catalog"
	"github.com/davancensm/Case36-TercerEntrega/internal/config"
	"github.com/davancensm/Case36-TercerEntrega/internal/httpapi"
	"github.com/davancensm/Case36-TercerEntrega/internal/logging"
	"github.com/davancensm/Case36-TercerEntrega/internal/notify"
	"github.com/davancensm/Case36-TercerEntrega/internal/realtime"
	"github.com/davancensm/Case36-TercerEntrega/internal/repository"
	"github.com/davancensm/Case36-TercerEntrega/internal/session"
	"github.com/davancensm/Case36-TercerEntrega/internal/upload"
)

func main() {
	log := logging.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if cfg.Mode == "cluster" {
		// The original process forked one worker per CPU; the Go
		// scheduler already spreads connections over every core in
		// one process.
		log.Infof("cluster mode requested, serving from one process across %d CPUs", runtime.NumCPU())
	}

	ctx := context.Background()

	// MongoDB: users and carts
	mongoDB, err := repository.ConnectMongoDB(ctx, repository.MongoConfig{
		URI:              cfg.MongoURI,
		Database:         cfg.MongoDBName,
		ConnectTimeout:   cfg.MongoConnectTimeout,
		SelectionTimeout: cfg.MongoSelectionTimeout,
		MaxPoolSize:      cfg.MongoMaxPoolSize,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	log.Infof("Connected to MongoDB at %s", cfg.MongoURI)

	userRepo := repository.NewMongoUserRepository(mongoDB)
	if err := userRepo.CreateIndexes(ctx); err != nil {
		log.Warnf("user index creation failed: %v", err)
	}
	cartRepo := repository.NewMongoCartRepository(mongoDB)

	// Redis: sessions and cart cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Info("Redis ping succeeded")

	// SQLite: product catalog
	catalogRepo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Catalog migrations failed: %v", err)
	}

	catalogSvc := catalog.NewService(catalogRepo)
	cartSvc := cart.NewService(cartRepo, cache.NewRedisCache(redisClient))

	gateway := notify.NewSMTPTwilioGateway(notify.TransportConfig{
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		MailAccount:  cfg.MailAccount,
		MailPassword: cfg.MailPassword,
		TwilioSID:    cfg.TwilioSID,
		TwilioToken:  cfg.TwilioToken,
		SMSFrom:      cfg.SMSFrom,
		WhatsAppFrom: cfg.WhatsAppFrom,
	})
	notifier := notify.NewNotifier(gateway, cfg.OperatorEmail, log)

	authSvc := auth.NewService(userRepo, notifier, log)
	sessions := session.NewRedisStore(redisClient, cfg.SessionTTL)
	codec := session.NewCookieCodec(cfg.SessionSecret, cfg.SessionTTL)
	uploads := upload.NewSaver(cfg.UploadDir, cfg.PublicBaseURL)

	hub := realtime.NewHub(log)
	coordinator := realtime.NewCoordinator(hub, cartSvc, catalogSvc, notifier, log)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		AuthHandler:    httpapi.NewAuthHandler(authSvc, sessions, codec, uploads, log),
		ProductHandler: httpapi.NewProductHandler(catalogSvc, cfg.RequestTimeout),
		CartHandler:    httpapi.NewCartHandler(cartSvc, cfg.RequestTimeout),
		Sessions:       sessions,
		Codec:          codec,
		WebsocketPath:  "/ws",
		Websocket:      hub.ServeWS(coordinator),
		UploadDir:      cfg.UploadDir,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:        ":" + cfg.HTTPPort,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Infof("Listening on %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Info("server exited")
}
