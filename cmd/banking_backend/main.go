package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/corebank/banking-backend/cmd/docs"
	"github.com/corebank/banking-backend/internal/core/services"
	"github.com/corebank/banking-backend/internal/handlers"
	"github.com/corebank/banking-backend/internal/middleware"
	"github.com/corebank/banking-backend/internal/platform/config"
	portsrepo "github.com/corebank/banking-backend/internal/core/ports/repositories"
	"github.com/corebank/banking-backend/internal/repositories/database/pgsql"
	"github.com/corebank/banking-backend/internal/repositories/memory"
	"github.com/corebank/banking-backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Banking Backend API
// @version 1.0
// @description Account, transfer, and authentication API for the banking backend.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ledger, users, cleanup, err := buildStores(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	middleware.InitMetrics()
	r.Use(middleware.Metrics())
	r.GET("/metrics", middleware.MetricsHandler())

	container := services.NewServicesContainer(cfg, ledger, users)
	handlers.RegisterHandlers(r, container)

	setupSwaggerRoutes(r, cfg)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildStores connects to PostgreSQL when PGSQL_URL is configured, applying
// pending migrations first. Without a database URL it falls back to the
// in-memory stores, which lose all state on restart.
func buildStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.LedgerRepository, portsrepo.UserRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("PGSQL_URL not set, using in-memory stores")
		return memory.NewLedgerRepository(), memory.NewUserRepository(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("Database connection pool established")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		dbPool.Close()
		return nil, nil, nil, err
	}

	return pgsql.NewLedgerRepository(dbPool), pgsql.NewUserRepository(dbPool), dbPool.Close, nil
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	// Migrations use a short-lived database/sql connection via the pgx stdlib
	// driver, separate from the application pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied successfully")
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	return dbErr
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
