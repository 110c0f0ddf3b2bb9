package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"rivalioo/internal/adapter/api"
	"rivalioo/internal/adapter/api/handler"
	apimiddleware "rivalioo/internal/adapter/api/middleware"
	"rivalioo/internal/adapter/api/router"
	"rivalioo/internal/adapter/repository"
	"rivalioo/internal/domain/cart"
	domainrepo "rivalioo/internal/domain/repository"
	"rivalioo/internal/domain/service"
	"rivalioo/internal/infrastructure/cache"
	"rivalioo/internal/infrastructure/database"
	"rivalioo/internal/infrastructure/events"
	"rivalioo/internal/infrastructure/firebase"
	"rivalioo/internal/infrastructure/ratelimit"
	"rivalioo/internal/infrastructure/websocket"
	"rivalioo/internal/usecase"
	"rivalioo/pkg/config"
	"rivalioo/pkg/logger"
)

type backend struct {
	driver   string
	catalog  domainrepo.CatalogRepository
	orders   domainrepo.RedemptionOrderRepository
	profiles domainrepo.ProfileRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}
	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		logger.Warn("Failed to configure logger, keeping defaults: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authClient := openFirebaseAuth(ctx, cfg)

	be := openBackend(ctx, cfg)
	defer be.close()

	var statsCache usecase.StatsCache
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, stream stats stay in memory: %v", err)
		} else {
			defer client.Close()
			statsCache = cache.NewRedisStatsCache(client, cfg.Redis.TTL)
		}
	}

	var publisher usecase.RedemptionEventPublisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.RedemptionTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("Publishing redemption events to %s", cfg.Kafka.RedemptionTopic)
	}

	catalogUseCase := usecase.NewCatalogUseCase(be.catalog)
	profileUseCase := usecase.NewProfileUseCase(be.profiles)
	orderUseCase := usecase.NewOrderUseCase(be.orders)

	registry := cart.NewRegistry()
	registry.StartPruneRoutine(time.Hour, cfg.CartIdleTTL, ctx.Done())
	cartUseCase := usecase.NewCartUseCase(registry, be.catalog)

	checkoutUseCase := usecase.NewCheckoutUseCase(be.orders, be.profiles, publisher, usecase.CheckoutOptions{
		AllowAnonymous: cfg.Checkout.AllowAnonymous,
		MaxParallel:    cfg.Checkout.MaxParallel,
	})
	if cfg.Checkout.AllowAnonymous {
		logger.Warn("Anonymous checkout enabled, orders will be recorded under %s", usecase.AnonymousUserID)
	}

	wsManager := websocket.NewManager()
	wsManager.OnPresence(profileUseCase.HandlePresence)
	wsManager.Start(ctx)
	checkoutUseCase.SetNotifier(wsManager)

	var source usecase.StatsSource
	if cfg.YouTube.APIKey != "" {
		yt, err := service.NewYouTubeStatsService(ctx, cfg.YouTube.APIKey, cfg.YouTube.RatePerSecond)
		if err != nil {
			logger.Error("Failed to create YouTube client, stream stats disabled: %v", err)
		} else {
			source = yt
		}
	} else {
		logger.Warn("YOUTUBE_API_KEY not set, stream stats disabled")
	}

	streamOpts := usecase.DefaultStreamStatsOptions()
	streamOpts.SelectedVideoInterval = cfg.YouTube.SelectedVideoInterval
	streamOpts.StreamersInterval = cfg.YouTube.StreamersInterval
	streamOpts.LiveDiscoveryInterval = cfg.YouTube.LiveDiscoveryInterval
	streamOpts.PopularVideosInterval = cfg.YouTube.PopularVideosInterval
	streamOpts.PopularVideosMax = cfg.YouTube.PopularVideosMax

	streamUseCase := usecase.NewStreamStatsUseCase(source, be.catalog, statsCache, wsManager, streamOpts)
	if source != nil {
		streamUseCase.Start(ctx)
		defer streamUseCase.Stop()
	}

	handler.Setup(catalogUseCase, cartUseCase, checkoutUseCase, orderUseCase, profileUseCase, streamUseCase)
	handler.SetupHealthHandler(authClient, be.driver)
	if authClient != nil && !cfg.IsProduction() {
		handler.SetupDevTokenHandler(authClient, be.profiles)
	}

	var verifier apimiddleware.TokenVerifier
	if authClient != nil {
		verifier = authClient
	}
	authMiddleware := apimiddleware.NewAuthMiddleware(verifier)

	fallback, policies := ratelimit.DefaultPolicies(cfg.RateLimitPerMinute)
	limiter := ratelimit.NewRateLimiter(fallback, policies)
	limiter.StartCleanupRoutine(ctx.Done())

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.RequestLogger())

	e.Validator = api.NewValidator()

	router.Setup(e, authMiddleware, limiter, handler.NewWebSocketHandler(wsManager, streamUseCase), cfg.Environment)

	go func() {
		logger.Info("Starting server on port %s (backend %s)", cfg.ServerPort, be.driver)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

func openFirebaseAuth(ctx context.Context, cfg *config.Config) *firebase.FirebaseAuthClient {
	if !cfg.Firebase.Enabled() {
		logger.Warn("Firebase credentials not set, all requests are anonymous")
		return nil
	}

	opt := option.WithCredentialsJSON([]byte(cfg.Firebase.ServiceAccountJSON))
	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.Firebase.ProjectID}, opt)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase Auth: %v", err)
	}

	return firebase.NewFirebaseAuthClient(authClient)
}

// openBackend falls back to seeded in-memory data when the selected driver
// has no credentials.
func openBackend(ctx context.Context, cfg *config.Config) backend {
	driver := cfg.Backend.Driver
	if driver != config.BackendMemory && !cfg.HasBackendCredentials() {
		logger.Warn("Backend %s credentials missing, running in demo mode with in-memory data", driver)
		driver = config.BackendMemory
	}

	switch driver {
	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.Backend.URL, option.WithCredentialsJSON([]byte(cfg.Backend.APIKey)))
		if err != nil {
			logger.Fatal("Failed to create Firestore client: %v", err)
		}
		return backend{
			driver:   driver,
			catalog:  repository.NewFirestoreCatalogRepository(client),
			orders:   repository.NewFirestoreRedemptionOrderRepository(client),
			profiles: repository.NewFirestoreProfileRepository(client),
			close:    func() { client.Close() },
		}

	case config.BackendPostgres:
		db, err := database.ConnectPostgres(cfg.Backend.URL, cfg.Backend.APIKey)
		if err != nil {
			logger.Fatal("Failed to connect to Postgres: %v", err)
		}
		if err := database.RunMigrations(db, cfg.Backend.MigrationsDir); err != nil {
			logger.Fatal("Failed to run migrations: %v", err)
		}
		return postgresBackend(db)

	default:
		catalog := repository.DefaultDemoCatalog()
		return backend{
			driver:   config.BackendMemory,
			catalog:  repository.NewMemoryCatalogRepository(catalog),
			orders:   repository.NewMemoryRedemptionOrderRepository(),
			profiles: repository.NewMemoryProfileRepository(repository.DefaultDemoProfiles()),
			close:    func() {},
		}
	}
}

func postgresBackend(db *sql.DB) backend {
	return backend{
		driver:   config.BackendPostgres,
		catalog:  repository.NewPostgresCatalogRepository(db),
		orders:   repository.NewPostgresRedemptionOrderRepository(db),
		profiles: repository.NewPostgresProfileRepository(db),
		close:    func() { db.Close() },
	}
}
