package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/citytickets/backend/internal/application/catalog"
	engagementapp "github.com/citytickets/backend/internal/application/engagement"
	identityapp "github.com/citytickets/backend/internal/application/identity"
	reportapp "github.com/citytickets/backend/internal/application/report"
	ticketingapp "github.com/citytickets/backend/internal/application/ticketing"
	"github.com/citytickets/backend/internal/infrastructure/auth"
	"github.com/citytickets/backend/internal/infrastructure/cache"
	"github.com/citytickets/backend/internal/infrastructure/config"
	"github.com/citytickets/backend/internal/infrastructure/logger"
	"github.com/citytickets/backend/internal/infrastructure/notification"
	"github.com/citytickets/backend/internal/infrastructure/pdf"
	"github.com/citytickets/backend/internal/infrastructure/persistence"
	"github.com/citytickets/backend/internal/infrastructure/qr"
	"github.com/citytickets/backend/internal/infrastructure/scheduler"
	"github.com/citytickets/backend/internal/infrastructure/telemetry"
	"github.com/citytickets/backend/internal/interfaces/http/handler"
	"github.com/citytickets/backend/internal/interfaces/http/middleware"
	"github.com/citytickets/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// editGrantTTL is how long a confirmed profile-edit authorization stays open
const editGrantTTL = 15 * time.Minute

// mailerAdapter bridges the SMTP mailer onto the ticket lifecycle's
// notification contract
type mailerAdapter struct {
	mailer *notification.SMTPMailer
}

func (a mailerAdapter) SendTicket(mail ticketingapp.TicketEmail) error {
	return a.mailer.SendTicket(notification.TicketMail{
		To:           mail.To,
		TicketNumber: mail.TicketNumber,
		EventTitle:   mail.EventTitle,
		EventStarts:  mail.EventStarts,
		VenueLine:    mail.VenueLine,
		Price:        mail.Price,
		PDF:          mail.PDF,
		QRPNG:        mail.QRPNG,
	})
}

func (a mailerAdapter) SendRefundNotice(to, eventTitle, ticketNumber string, amount decimal.Decimal) error {
	return a.mailer.SendRefundNotice(to, eventTitle, ticketNumber, amount)
}

// rendererAdapter bridges the PDF renderer onto the lifecycle contract
type rendererAdapter struct {
	renderer *pdf.Renderer
}

func (a rendererAdapter) Render(artifact ticketingapp.TicketArtifact) ([]byte, error) {
	return a.renderer.Render(pdf.TicketDocument{
		TicketNumber: artifact.TicketNumber,
		BuyerLabel:   artifact.BuyerLabel,
		EventTitle:   artifact.EventTitle,
		EventStarts:  artifact.EventStarts,
		VenueLine:    artifact.VenueLine,
		Price:        artifact.Price,
		QRPNG:        artifact.QRPNG,
	})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting CityTickets backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		_ = redisClient.Close()
	}()
	log.Info("Redis connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db)
	codeRepo := persistence.NewGormVerificationCodeRepository(db)
	eventRepo := persistence.NewGormEventRepository(db)
	venueRepo := persistence.NewGormVenueRepository(db)
	ticketRepo := persistence.NewGormTicketRepository(db)
	favoriteRepo := persistence.NewGormFavoriteRepository(db)
	cartRepo := persistence.NewGormCartRepository(db)
	analyticsRepo := persistence.NewGormAnalyticsRepository(db)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	tokenCodec := auth.NewTicketTokenCodec(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.Ticketing.TokenMaxAge)
	cooldown := cache.NewPurchaseCooldown(redisClient, cfg.Ticketing.PurchaseCooldown)
	editGrants := cache.NewEditGrantStore(redisClient, editGrantTTL)
	mailer := notification.NewSMTPMailer(cfg.SMTP)
	metrics := telemetry.NewMetrics()

	// Application services
	authService := identityapp.NewAuthService(userRepo, codeRepo, jwtService, mailer, editGrants, log)
	lifecycleService := ticketingapp.NewLifecycleService(
		ticketRepo, eventRepo, venueRepo, userRepo,
		tokenCodec, qr.NewGenerator(),
		rendererAdapter{renderer: pdf.NewRenderer()},
		mailerAdapter{mailer: mailer},
		cooldown, metrics,
		ticketingapp.LifecycleConfig{
			RefundLock:    cfg.Ticketing.RefundLock(),
			VerifyBaseURL: cfg.Ticketing.VerifyBaseURL,
		},
		log,
	)
	eventService := catalogapp.NewEventService(eventRepo, venueRepo, lifecycleService, log)
	engagementService := engagementapp.NewService(favoriteRepo, cartRepo, eventRepo)
	analyticsService := reportapp.NewAnalyticsService(analyticsRepo)

	// Past-event cleanup loop
	var cleanup *scheduler.PastEventCleanup
	if cfg.Cleanup.Enabled {
		cleanup = scheduler.NewPastEventCleanup(eventService, cfg.Cleanup.Interval, log)
		cleanup.Start()
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(middleware.DefaultCORSConfig(cfg.HTTP.CORSAllowOrigins)),
		metrics.Middleware(),
	)

	engine.GET("/metrics", metrics.Handler())

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	ticketHandler := handler.NewTicketHandler(lifecycleService)
	engagementHandler := handler.NewEngagementHandler(engagementService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	systemHandler := handler.NewSystemHandler(db)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(authHandler)
	r.Setup()

	api := r.Group()
	systemHandler.RegisterRoutes(api)
	eventHandler.RegisterPublicRoutes(api)
	ticketHandler.RegisterPublicRoutes(api)

	authed := r.Group()
	authed.Use(middleware.JWTAuth(jwtService))
	authHandler.RegisterAuthedRoutes(authed)
	profileHandler.RegisterRoutes(authed)
	ticketHandler.RegisterRoutes(authed)
	engagementHandler.RegisterRoutes(authed)

	staff := r.Group()
	staff.Use(middleware.JWTAuth(jwtService), middleware.RequireCheckInCapability())
	ticketHandler.RegisterStaffRoutes(staff)
	eventHandler.RegisterAdminRoutes(staff)
	analyticsHandler.RegisterRoutes(staff)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	if cleanup != nil {
		cleanup.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
