package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/javamaster/internal/app/controllers"
	appMigrations "github.com/yigit/javamaster/internal/app/migrations"
	appRepos "github.com/yigit/javamaster/internal/app/repositories"
	appRoutes "github.com/yigit/javamaster/internal/app/routes"
	appServices "github.com/yigit/javamaster/internal/app/services"
	"github.com/yigit/javamaster/internal/app/session"
	"github.com/yigit/javamaster/internal/config"
	"github.com/yigit/javamaster/internal/db"
	appMiddleware "github.com/yigit/javamaster/internal/middleware"
	pkgAuth "github.com/yigit/javamaster/internal/pkg/auth"
	"github.com/yigit/javamaster/internal/pkg/email"
	"github.com/yigit/javamaster/internal/pkg/filestorage"
	"github.com/yigit/javamaster/internal/pkg/gateway"
	"github.com/yigit/javamaster/internal/pkg/helpers"
	"github.com/yigit/javamaster/internal/pkg/logger"
	"github.com/yigit/javamaster/internal/pkg/metrics"
	"github.com/yigit/javamaster/internal/pkg/validation"
	"github.com/yigit/javamaster/internal/pkg/websocket"
	"github.com/yigit/javamaster/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService      *appServices.AuthService
	CourseService    *appServices.CourseService
	CheckoutService  *appServices.CheckoutService
	OrderService     *appServices.OrderService
	DashboardService *appServices.DashboardService
	PageService      *appServices.PageService
	PaymentService   *appServices.PaymentService
	Controllers      appRoutes.Controllers
	AuthMiddleware   *appMiddleware.AuthMiddleware
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
	Hub              *websocket.Hub
	Logger           zerolog.Logger
	FileStorage      *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logCfg := logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	}
	hostname, _ := os.Hostname()
	if hook := logger.NewRollbarHook(logger.RollbarConfig{
		Token:       cfg.Rollbar.Token,
		Environment: cfg.Rollbar.Environment,
		CodeVersion: cfg.Rollbar.CodeVersion,
		ServerHost:  hostname,
	}); hook != nil {
		logCfg.Hooks = append(logCfg.Hooks, hook)
	}
	logger.Configure(logCfg)

	lgr := log.Logger
	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Bool("rollbar", len(logCfg.Hooks) > 0).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.Migrate(ctx, os.DirFS(migrationsDir)); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	admin := seed.AdminAccount{Email: cfg.Admin.DefaultEmail, Password: cfg.Admin.DefaultPassword}
	if err := seed.CreateDefaultData(ctx, appRepos.NewRepositories(dbPool), admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Receipts are served from the static /uploads route
	var err error
	fileStorageBaseURL := strings.TrimRight(cfg.Server.BaseURL, "/") + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		SessionExp:      helpers.ParseDuration(cfg.JWT.SessionExpiration, 168*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	mailer := email.NewEmailService(email.Config{
		APIKey:    cfg.Email.SendgridAPIKey,
		FromName:  cfg.Email.FromName,
		FromEmail: cfg.Email.FromEmail,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr.With().Str("component", "email").Logger())

	paymentGateway := gateway.NewRazorpay(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		helpers.ParseDuration(cfg.Razorpay.Timeout, 15*time.Second),
	)

	deps.Hub = websocket.NewHub(lgr.With().Str("component", "live-feed").Logger())
	publisher := websocket.NewOrderPublisher(deps.Hub, lgr)

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.StudentRepository,
		deps.Repos.AdminRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		mailer,
		appServices.ProfileWait{
			Interval: helpers.ParseDuration(cfg.Checkout.ProfileWait, time.Second),
			Attempts: cfg.Checkout.ProfileWaitAttempts,
		},
		lgr,
	)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, lgr)
	deps.CheckoutService = appServices.NewCheckoutService(
		deps.Repos.CourseRepository,
		deps.Repos.OrderRepository,
		deps.Repos.CheckoutAttemptRepository,
		paymentGateway,
		mailer,
		deps.FileStorage,
		publisher,
		appServices.CheckoutConfig{
			Currency:     cfg.Razorpay.Currency,
			MerchantName: cfg.Email.FromName,
		},
		lgr.With().Str("component", "checkout").Logger(),
	)
	deps.OrderService = appServices.NewOrderService(deps.Repos.OrderRepository, deps.FileStorage, lgr)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.OrderRepository,
		deps.Repos.CheckoutAttemptRepository,
		lgr,
	)
	deps.PaymentService = appServices.NewPaymentService(paymentGateway, cfg.Razorpay.Currency, lgr)

	deps.PageService, err = appServices.NewPageService()
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to load static pages")
		return nil, fmt.Errorf("failed to load static pages: %w", err)
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		deps.JWTService,
		deps.AuthService,
		session.CookieOptions{Secure: cfg.Server.CookieSecure, Domain: cfg.Server.CookieDomain},
		lgr,
	)

	deps.Controllers = appRoutes.Controllers{
		Auth:     appControllers.NewAuthController(deps.AuthService, lgr),
		Pages:    appControllers.NewPageController(deps.DashboardService, deps.PageService, lgr),
		Courses:  appControllers.NewCourseController(deps.CourseService),
		Checkout: appControllers.NewCheckoutController(deps.CheckoutService, lgr),
		Orders:   appControllers.NewOrderController(deps.OrderService),
		Payments: appControllers.NewPaymentController(deps.PaymentService),
		LiveFeed: websocket.NewHandler(deps.Hub, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	// Bind and validate requests with the shared validator and its custom tags
	binding.Validator = validation.GinValidator{}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
