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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techplug_back_end/internal/cache"
	"techplug_back_end/internal/config"
	"techplug_back_end/internal/database"
	"techplug_back_end/internal/handlers"
	"techplug_back_end/internal/logger"
	"techplug_back_end/internal/routes"
	"techplug_back_end/internal/seed"
	"techplug_back_end/internal/services"
	"techplug_back_end/internal/storefront"
	"techplug_back_end/internal/utils"
)

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	clients, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer clients.Close()

	opts := storefront.Options{StrictNotFound: cfg.StrictNotFound, Logger: log}
	if cfg.SeedData {
		opts.Products = seed.Products()
		opts.Services = seed.ServiceCategories()
		opts.Tickets = seed.Tickets(time.Now())
	}
	store, err := storefront.New(opts)
	if err != nil {
		return fmt.Errorf("seed storefront: %w", err)
	}

	deps := handlers.Deps{
		Store:         store,
		Logger:        log,
		Hub:           handlers.NewHub(log),
		Analyzer:      services.NewTicketAnalyzer(ctx, cfg.Gemini, log),
		Auditor:       utils.NewAuditLogger(clients.Scylla, log),
		CheckoutDelay: cfg.CheckoutDelay,
		Checks:        map[string]func(context.Context) error{},
		Admin: handlers.AdminCredentials{
			Username:     cfg.Admin.Username,
			Password:     cfg.Admin.Password,
			PasswordHash: cfg.Admin.PasswordHash,
			JWTSecret:    cfg.Admin.JWTSecret,
			JWTTTL:       cfg.Admin.JWTTTL,
		},
	}
	store.Subscribe(deps.Hub.Observe)

	routeOpts := routes.Options{
		CORSOrigins: cfg.CORSOrigins,
		JWTSecret:   cfg.Admin.JWTSecret,
		APILimit:    cfg.RateLimit.API,
		CartLimit:   cfg.RateLimit.Cart,
		Auditor:     deps.Auditor,
		Logger:      log,
	}

	if clients.Redis != nil {
		store.Subscribe(cache.NewPublisher(clients.Redis, log).Observe)
		routeOpts.Limiter = cache.NewLimiter(clients.Redis)
		deps.Checks["redis"] = func(ctx context.Context) error { return clients.Redis.Ping(ctx).Err() }
	}
	if clients.Elastic != nil {
		index := services.NewSearchIndex(clients.Elastic, cfg.Elastic.Index, log)
		defer index.Close()
		if err := index.Sync(ctx, store.ListProducts()); err != nil {
			log.Warn("initial search index sync incomplete", zap.Error(err))
		}
		store.Subscribe(index.Observe)
		deps.Search = index
	}
	if clients.MinIO != nil {
		deps.Images = services.NewImageStore(clients.MinIO, cfg.MinIO.Bucket, cfg.MinIO.PublicURL)
	}
	if clients.Scylla != nil {
		deps.Checks["scylla"] = func(context.Context) error {
			return clients.Scylla.Query("SELECT now() FROM system.local").Exec()
		}
	}
	if producer := services.NewOrderEventProducer(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic, log); producer != nil {
		store.Subscribe(producer.Observe)
		defer producer.Close()
	}
	mailer, err := utils.NewMailer(cfg.SMTP, log)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	if mailer != nil {
		store.Subscribe(mailer.Observe)
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	routes.RegisterRoutes(router, handlers.New(deps), routeOpts)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("TechPlug API listening",
			zap.String("port", cfg.Port),
			zap.Int("products", len(store.ListProducts())),
			zap.Bool("strict_not_found", cfg.StrictNotFound))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-quit:
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("Server exited")
	return nil
}
