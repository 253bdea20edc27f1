package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	identityapp "github.com/marketplace/backend/internal/application/identity"
	searchapp "github.com/marketplace/backend/internal/application/search"
	settingsapp "github.com/marketplace/backend/internal/application/settings"
	supportapp "github.com/marketplace/backend/internal/application/support"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/cache"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/email"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/notify"
	"github.com/marketplace/backend/internal/infrastructure/payment"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/infrastructure/search"
	"github.com/marketplace/backend/internal/infrastructure/storage"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
	"github.com/marketplace/backend/internal/infrastructure/webhook"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"github.com/marketplace/backend/internal/interfaces/http/router"
)

const sessionPurgeInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting marketplace backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing (optional)
	if cfg.Telemetry.Enabled {
		tp, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
		if err != nil {
			log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	// Redis
	redisClient, err := cache.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	noteRepo := persistence.NewGormNoteRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	segmentRepo := persistence.NewGormSegmentRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)
	adminRepo := persistence.NewGormAdminUserRepository(db.DB)
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	languageRepo := persistence.NewGormLanguageRepository(db.DB)
	shippingRepo := persistence.NewGormShippingRepository(db.DB)
	paymentMethodRepo := persistence.NewGormPaymentMethodRepository(db.DB)
	policyRepo := persistence.NewGormSecurityPolicyRepository(db.DB)
	webhookRepo := persistence.NewGormWebhookRepository(db.DB)

	// Redis-backed adapters
	sessionCache := cache.NewRedisSessionCache(redisClient)
	attemptStore := cache.NewRedisAttemptStore(redisClient)
	resultCache := cache.NewRedisResultCache(redisClient)
	tagCache := cache.NewRedisTagCache(redisClient)
	favorites := cache.NewRedisFavorites(redisClient)
	notifier := notify.NewRedisNotifier(redisClient)
	subscriber := notify.NewSubscriber(redisClient)

	// External adapters
	jwtService := auth.NewJWTService(cfg.JWT)
	searchEngine := search.NewHTTPEngine(cfg.Search)
	emailSender := email.NewHTTPSender(cfg.Email, log)
	mediaStore, err := storage.NewS3MediaStore(cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize media storage", zap.Error(err))
	}
	deliverer := webhook.NewHTTPDeliverer(10 * time.Second)
	callbackVerifier := payment.NewCallbackVerifier(cfg.Payment)
	paymentGateway := payment.NewGateway(cfg.Payment)

	// Identity services
	sessionService := identityapp.NewSessionService(sessionRepo, sessionCache, jwtService, jwtService, 0, log)
	authService := identityapp.NewAuthService(adminRepo, policyRepo, sessionService, attemptStore, log)
	adminAuthService := identityapp.NewAdminAuthService(sessionService, adminRepo, log)
	adminUserService := identityapp.NewAdminUserService(adminRepo, sessionService, log)

	// Support services
	tagService := supportapp.NewTagService(tagRepo, tagCache, log)
	segmentService := supportapp.NewSegmentService(segmentRepo, customerRepo, log)
	noteService := supportapp.NewNoteService(noteRepo, customerRepo, log)
	loyaltyService := supportapp.NewLoyaltyService(customerRepo, ledgerRepo, log)
	customerService := supportapp.NewCustomerService(customerRepo, auditRepo, ticketRepo, log)
	customer360Service := supportapp.NewCustomer360Service(customerRepo, noteRepo, ledgerRepo, auditRepo, tagService, segmentService, log)
	quickActionService := supportapp.NewQuickActionService(customerRepo, ticketRepo, auditRepo, loyaltyService, noteService, emailSender, notifier, log)

	// Settings services
	currencyService := settingsapp.NewCurrencyService(currencyRepo, log)
	languageService := settingsapp.NewLanguageService(languageRepo, log)
	shippingService := settingsapp.NewShippingService(shippingRepo, log)
	paymentConfigService := settingsapp.NewPaymentConfigService(paymentMethodRepo, log)
	securityService := settingsapp.NewSecurityPolicyService(policyRepo, log)
	webhookService := settingsapp.NewWebhookService(webhookRepo, deliverer, log)

	// Storefront services
	searchService := searchapp.NewService(searchEngine, resultCache, favorites, mediaStore, log)
	orderService := supportapp.NewOrderService(customerRepo, favorites, webhookService, log)

	authMiddleware := middleware.NewAuth(sessionService, adminAuthService, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(rateLimiter.Middleware())
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	router.NewRouter(engine).
		Register(handler.NewSystemHandler(db, redisClient)).
		Register(handler.NewAuthHandler(authService, sessionService, authMiddleware, cfg.Cookie)).
		Register(handler.NewCustomerHandler(customerService, customer360Service, authMiddleware)).
		Register(handler.NewNoteHandler(noteService, authMiddleware)).
		Register(handler.NewTagHandler(tagService, authMiddleware)).
		Register(handler.NewSegmentHandler(segmentService, authMiddleware)).
		Register(handler.NewLoyaltyHandler(loyaltyService, authMiddleware)).
		Register(handler.NewQuickActionHandler(quickActionService, authMiddleware)).
		Register(handler.NewAdminUserHandler(adminUserService, sessionService, authMiddleware)).
		Register(handler.NewCurrencyHandler(currencyService, authMiddleware)).
		Register(handler.NewLanguageHandler(languageService, authMiddleware)).
		Register(handler.NewShippingHandler(shippingService, authMiddleware)).
		Register(handler.NewPaymentMethodHandler(paymentConfigService, authMiddleware)).
		Register(handler.NewSecurityHandler(securityService, authMiddleware)).
		Register(handler.NewWebhookHandler(webhookService, authMiddleware)).
		Register(handler.NewSearchHandler(searchService, authMiddleware)).
		Register(handler.NewPaymentHandler(callbackVerifier, paymentGateway, paymentConfigService, orderService, log)).
		Register(handler.NewNotificationHandler(subscriber, authMiddleware)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Expired sessions are swept in the background so the sessions
	// table does not grow unbounded.
	purgeCtx, stopPurge := context.WithCancel(context.Background())
	go purgeSessions(purgeCtx, sessionService, log)

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")
	stopPurge()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func purgeSessions(ctx context.Context, sessions *identityapp.SessionService, log *zap.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := sessions.PurgeExpired(ctx)
			if err != nil {
				log.Warn("Session purge failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				log.Info("Purged expired sessions", zap.Int64("count", purged))
			}
		}
	}
}
