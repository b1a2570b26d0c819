package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/projecthub/internal/app/controllers"
	appMigrations "github.com/yigit/projecthub/internal/app/migrations"
	appRepos "github.com/yigit/projecthub/internal/app/repositories"
	appRoutes "github.com/yigit/projecthub/internal/app/routes"
	appServices "github.com/yigit/projecthub/internal/app/services"
	"github.com/yigit/projecthub/internal/config"
	"github.com/yigit/projecthub/internal/db"
	appMiddleware "github.com/yigit/projecthub/internal/middleware"
	pkgAuth "github.com/yigit/projecthub/internal/pkg/auth"
	"github.com/yigit/projecthub/internal/pkg/email"
	"github.com/yigit/projecthub/internal/pkg/filestorage"
	"github.com/yigit/projecthub/internal/pkg/helpers"
	"github.com/yigit/projecthub/internal/pkg/logger"
	"github.com/yigit/projecthub/internal/pkg/metrics"
	"github.com/yigit/projecthub/internal/pkg/websocket"
	"github.com/yigit/projecthub/internal/seed"
)

// DefaultConfigPath is where the YAML configuration is read from
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos    *appRepos.Repositories
	Services *appServices.Services
	Handlers appRoutes.Handlers
	JWT      *pkgAuth.JWTService
	Storage  *filestorage.LocalStorage
	Metrics  *metrics.Metrics
	Hub      *websocket.Hub
	Bus      *websocket.NATSBus // nil when realtime.nats_url is empty
	Logger   zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, the YAML configuration and environment overrides,
// then configures the global logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Warn().Err(err).Msg("Ignoring unreadable .env file")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the connection pool
func ConnectDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database.Pool, nil
}

// RunMigrations applies the SQL files in the configured migrations directory
func RunMigrations(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(pool, lgr).MigrateFromDirectory(ctx, migrationsDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// SeedDefaults inserts the default project types and the configured admin account
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies) error {
	lgr := deps.Logger
	if err := seed.CreateDefaultData(ctx, deps.Repos.ProjectTypeRepository, lgr); err != nil {
		return fmt.Errorf("failed to create default data: %w", err)
	}
	if _, err := seed.EnsureAdmin(ctx, deps.Services.User, seed.AdminAccount{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	}, lgr); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}
	return nil
}

// BuildDependencies initializes repositories, realtime delivery, services and controllers
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.Storage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, "/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWT = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Metrics = metrics.NewMetrics()
	deps.Hub = websocket.NewHub(lgr, deps.Metrics)

	var emitter websocket.Emitter = deps.Hub
	if cfg.Realtime.NatsURL != "" {
		deps.Bus, err = websocket.NewNATSBus(cfg.Realtime.NatsURL, cfg.Realtime.Subject, deps.Hub, lgr)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect realtime bus")
			return nil, err
		}
		emitter = deps.Bus
	}

	mailer := email.NewMailer(email.Config{
		SendGridAPIKey: cfg.Mail.SendGridAPIKey,
		FromAddress:    cfg.Mail.FromAddress,
		FromName:       cfg.Mail.FromName,
	}, lgr)

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repos:   deps.Repos,
		JWT:     deps.JWT,
		Emitter: emitter,
		Counter: deps.Metrics,
		Storage: deps.Storage,
		Mailer:  mailer,
		PasswordReset: appServices.PasswordResetConfig{
			TokenTTL:    helpers.ParseDuration(cfg.PasswordReset.TokenTTL, 24*time.Hour),
			LinkBaseURL: cfg.PasswordReset.LinkBaseURL,
		},
		Logger: lgr,
	})

	s := deps.Services
	deps.Handlers = appRoutes.Handlers{
		Auth:          appControllers.NewAuthController(s.Auth, s.PasswordReset),
		Admin:         appControllers.NewAdminController(s.User, s.Group, s.Meeting, s.Dashboard, s.PasswordReset),
		Department:    appControllers.NewDepartmentController(s.Department),
		ReferenceData: appControllers.NewReferenceDataController(s.AcademicYear, s.ProjectType),
		User:          appControllers.NewUserController(s.User),
		Group:         appControllers.NewGroupController(s.Group),
		Invitation:    appControllers.NewInvitationController(s.Invitation),
		Report:        appControllers.NewReportController(s.Report),
		Meeting:       appControllers.NewMeetingController(s.Meeting),
		Document:      appControllers.NewDocumentController(s.Document),
		Notification:  appControllers.NewNotificationController(s.Notification),
		Discussion:    appControllers.NewDiscussionController(s.Discussion),
		Dashboard:     appControllers.NewDashboardController(s.Dashboard),
		Realtime:      websocket.NewHandler(deps.Hub, s.Authorization, cfg.AllowedOrigins(), lgr),

		AuthMiddleware: appMiddleware.NewAuthMiddleware(deps.JWT),
		AuthLimiter:    appMiddleware.NewIPRateLimiter(cfg.RateLimit.AuthPerSecond, cfg.RateLimit.AuthBurst),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr), deps.Metrics.Middleware())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Handlers)

	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	router.Static("/uploads", cfg.Server.StoragePath)

	return router
}

// Close releases the realtime bus
func (d *Dependencies) Close() {
	if d.Bus != nil {
		if err := d.Bus.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Realtime bus close error")
		}
	}
}
