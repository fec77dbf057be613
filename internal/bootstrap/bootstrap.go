// Package bootstrap assembles the application: configuration, logging,
// storage backend selection and dependency injection.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/gradesphere/internal/app/controllers"
	appRepos "github.com/yigit/gradesphere/internal/app/repositories"
	appRoutes "github.com/yigit/gradesphere/internal/app/routes"
	appServices "github.com/yigit/gradesphere/internal/app/services"
	"github.com/yigit/gradesphere/internal/config"
	"github.com/yigit/gradesphere/internal/db"
	appMiddleware "github.com/yigit/gradesphere/internal/middleware"
	pkgAuth "github.com/yigit/gradesphere/internal/pkg/auth"
	"github.com/yigit/gradesphere/internal/pkg/helpers"
	"github.com/yigit/gradesphere/internal/pkg/kvstore"
	"github.com/yigit/gradesphere/internal/pkg/logger"
	"github.com/yigit/gradesphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AccountService   *appServices.AccountService
	RecordService    *appServices.RecordService
	AuthController   *appControllers.AuthController
	RecordController *appControllers.RecordController
	AuthMiddleware   *appMiddleware.AuthMiddleware
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
	Logger           zerolog.Logger
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

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore selects and connects the key-value backend named by
// storage.driver. The rest of the application only sees kvstore.Store.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (kvstore.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		pool, err := db.NewPostgresPool(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		store, err := kvstore.NewPostgresStore(ctx, pool)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to prepare key-value schema")
			pool.Close()
			return nil, err
		}
		lgr.Info().Msg("Postgres key-value store ready.")
		return store, nil

	case config.DriverRedis:
		lgr.Info().Msg("Establishing Redis connection...")
		store, err := kvstore.NewRedisStore(kvstore.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to Redis")
			return nil, err
		}
		lgr.Info().Msg("Redis key-value store ready.")
		return store, nil

	case config.DriverMemory:
		lgr.Warn().Msg("Using in-memory store; data will not survive restarts")
		return kvstore.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, store kvstore.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(store)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AccountService = appServices.NewAccountService(
		deps.Repos.UserRepository,
		deps.Repos.SessionRepository,
		lgr,
	)
	deps.RecordService = appServices.NewRecordService(deps.Repos.RecordRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AccountService, deps.JWTService, lgr)
	deps.RecordController = appControllers.NewRecordController(deps.RecordService, lgr)

	// The in-memory store starts blank every run; seed it so development
	// environments have an account to poke at.
	if cfg.Storage.Driver == config.DriverMemory {
		if err := seed.CreateDemoData(context.Background(), deps.Repos, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to seed demo data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.RecordController,
		deps.AuthMiddleware,
	)

	return router
}
