package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ironline-site/internal/cache"
	"ironline-site/internal/config"
	"ironline-site/internal/content"
	"ironline-site/internal/gate"
	"ironline-site/internal/handler"
	"ironline-site/internal/middleware"
	"ironline-site/internal/realtime"
	"ironline-site/internal/repository"
	"ironline-site/internal/router"
	"ironline-site/internal/service"
	"ironline-site/internal/toast"

	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Ironline site server...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize Redis client (optional)
	var redisClient *redis.Client
	if cfg.Store.Type == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Store.RedisAddress(),
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Warning: Redis connection failed, using in-memory store: %v", err)
			redisClient.Close()
			redisClient = nil
		} else {
			log.Println("Redis client initialized")
		}
		cancel()
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Key-value store backing content, gates and sessions
	var kv cache.Store
	var guard cache.SequenceGuard
	if redisClient != nil {
		kv = cache.NewRedisStore(redisClient, cfg.Store.RedisPrefix)
		guard = cache.NewRedisSequenceGuard(redisClient, cfg.Store.RedisPrefix)
	} else {
		memStore := cache.NewMemoryStore()
		defer memStore.Close()
		kv = memStore
		guard = cache.NewMemorySequenceGuard()
	}
	if !cfg.Bridge.SequenceGuard {
		guard = nil
	}

	// Initialize bridge repository based on config
	blobRepo, err := openBlobRepository(cfg.Bridge)
	if err != nil {
		log.Fatalf("Failed to initialize %s bridge backend: %v", cfg.Bridge.Backend, err)
	}
	defer blobRepo.Close()
	log.Printf("Persistence bridge backend: %s", cfg.Bridge.Backend)

	bridge := service.NewBridgeService(blobRepo, guard)

	// Initialize Redis write-behind buffer
	var blobBuffer *cache.RedisBlobBuffer
	if cfg.Bridge.WriteBehind && redisClient != nil {
		blobBuffer, err = cache.NewRedisBlobBuffer(redisClient, cache.RedisBufferConfig{
			FlushInterval: cfg.Bridge.FlushInterval,
			KeyPrefix:     cfg.Store.RedisPrefix,
		}, service.CreateFlushFunc(blobRepo))
		if err != nil {
			log.Printf("Warning: Redis buffer initialization failed: %v", err)
		} else {
			bridge.SetBuffer(blobBuffer)
			log.Println("Redis write-behind buffer initialized")
		}
	}

	// Content store
	store := content.NewStore(kv, content.Options{SessionTTL: cfg.Store.ContentTTL})
	store.Load(context.Background())
	if cfg.Bridge.PullOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if n, err := store.Pull(ctx, bridge); err != nil {
			log.Printf("Warning: some published content could not be loaded: %v", err)
		} else if n > 0 {
			log.Printf("Loaded %d published collections", n)
		}
		cancel()
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	hub := realtime.NewHub()
	go hub.Run(appCtx)
	store.OnChange(hub.ContentChanged)

	var publisher *service.PublishScheduler
	if cfg.Bridge.AutoPublishInterval > 0 {
		publisher = service.NewPublishScheduler(func(ctx context.Context) (int, error) {
			return store.Publish(ctx, bridge)
		}, service.PublishConfig{Interval: cfg.Bridge.AutoPublishInterval})
		store.OnChange(publisher.MarkDirty)
		publisher.Start()
	}

	// Gate
	verifier, err := gate.NewVerifier(cfg.Admin.Password, cfg.Admin.PasswordHash)
	if err != nil {
		log.Fatalf("Invalid admin credentials: %v", err)
	}
	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		log.Println("Warning: no ADMIN_PASSWORD or ADMIN_PASSWORD_HASH set, admin login is disabled")
	}
	gates := gate.NewManager(verifier, kv, cfg.Admin.HotkeySequence)
	gates.SetIdleTimeout(cfg.Admin.GateIdle)

	// Initialize services
	sessions := service.NewSessionService(kv, cfg.Admin.SessionTTL)
	launchSettings := service.NewLaunchService(bridge, kv, cfg.Launch.SettingsType, cfg.Launch.SettingsCacheTTL)
	toasts := toast.NewQueue(toast.DefaultDuration)
	defer toasts.Close()

	// Initialize handlers
	checks := []handler.ReadyCheck{{
		Name: "bridge",
		Probe: func(ctx context.Context) error {
			_, err := bridge.List(ctx)
			return err
		},
	}}
	if redisClient != nil {
		checks = append(checks, handler.ReadyCheck{
			Name:  "redis",
			Probe: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	healthHandler := handler.New(cfg.App.Name, cfg.App.Version, checks...)
	dataHandler := handler.NewDataHandler(bridge)
	dataHandler.Reserve(sessions, append(content.Names(), launchSettings.Type())...)
	dataHandler.OnWrite(launchSettings.BlobWritten)
	contentHandler := handler.NewContentHandler(store, bridge, toasts, handler.NewValidator())
	launchHandler := handler.NewLaunchHandler(
		func() string { return store.Launch().ReleaseDate },
		cfg.Launch.ReleaseDate,
		launchSettings,
		toasts,
		cfg.Launch.TickInterval,
	)
	adminHandler := handler.NewAdminHandler(handler.AdminConfig{
		Gates:    gates,
		Verifier: verifier,
		Sessions: sessions,
		Bridge:   bridge,
		Toasts:   toasts,
		Clients:  hub,
		Backend:  cfg.Bridge.Backend,
	})

	loginLimiter := middleware.NewIPRateLimiter(cfg.Admin.LoginRate, cfg.Admin.LoginBurst, 0)

	// Create router
	r := router.New(router.Config{
		Handler:        healthHandler,
		DataHandler:    dataHandler,
		ContentHandler: contentHandler,
		AdminHandler:   adminHandler,
		LaunchHandler:  launchHandler,
		Realtime:       hub,
		AdminAuth:      middleware.RequireAdmin(sessions),
		LoginLimit:     loginLimiter.Middleware,
		Redirect: middleware.LaunchRedirect(middleware.RedirectConfig{
			Settings:    launchSettings,
			LaunchRoute: cfg.Launch.Route,
			AdminRoute:  cfg.Launch.AdminRoute,
		}),
		StaticDir: cfg.App.StaticDir,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	stopApp()

	// Publish pending content before the buffer drains into the repository
	if publisher != nil {
		publisher.Stop()
	}
	if blobBuffer != nil {
		log.Println("Closing Redis buffer...")
		blobBuffer.Close()
	}

	log.Println("Server stopped")
	fmt.Println("Goodbye!")
}

// openBlobRepository opens the configured persistence bridge backend.
func openBlobRepository(cfg config.BridgeConfig) (repository.BlobRepository, error) {
	switch cfg.Backend {
	case "sqlite":
		return repository.NewSQLiteBlobRepository(cfg.SQLitePath)
	case "postgres", "postgresql":
		return repository.NewPostgresBlobRepository(cfg.PostgresDSN())
	case "mysql":
		return repository.NewMySQLBlobRepository(cfg.MySQLDSN())
	case "mongodb", "mongo":
		return repository.NewMongoDBBlobRepository(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	case "gcs":
		return repository.NewGCSBlobRepository(context.Background(), cfg.GCSBucket, cfg.GCSPrefix, cfg.GCSCredentials)
	case "file", "":
		return repository.NewFileBlobRepository(cfg.DataDir), nil
	default:
		return nil, fmt.Errorf("unknown bridge backend %q", cfg.Backend)
	}
}
