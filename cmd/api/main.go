package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/arcofed/federation-api/internal/config"
	authHandler "github.com/arcofed/federation-api/internal/handler/auth"
	"github.com/arcofed/federation-api/internal/handler/health"
	permissionHandler "github.com/arcofed/federation-api/internal/handler/permission"
	rolemoduleHandler "github.com/arcofed/federation-api/internal/handler/rolemodule"
	simulationHandler "github.com/arcofed/federation-api/internal/handler/simulation"
	systemmoduleHandler "github.com/arcofed/federation-api/internal/handler/systemmodule"
	uibuilderHandler "github.com/arcofed/federation-api/internal/handler/uibuilder"
	"github.com/arcofed/federation-api/internal/middleware"
	"github.com/arcofed/federation-api/internal/repository/postgres"
	"github.com/arcofed/federation-api/internal/resolver"
	"github.com/arcofed/federation-api/internal/router"
	authService "github.com/arcofed/federation-api/internal/service/auth"
	modulesService "github.com/arcofed/federation-api/internal/service/modules"
	permissionsService "github.com/arcofed/federation-api/internal/service/permissions"
	sidebarService "github.com/arcofed/federation-api/internal/service/sidebar"
	simulationService "github.com/arcofed/federation-api/internal/service/simulation"
	"github.com/arcofed/federation-api/internal/uibuilder"
	jwtauth "github.com/arcofed/federation-api/pkg/auth"
	"github.com/arcofed/federation-api/pkg/metrics"
	"github.com/arcofed/federation-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg.Logging)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	permRepo := postgres.NewRolePermissionsRepository(db)
	settingsRepo := postgres.NewUISettingsRepository(db)
	sidebarRepo := postgres.NewSidebarLayoutRepository(db)
	uiBuilderRepo := postgres.NewUIBuilderRepository(db)
	roleCfgRepo := postgres.NewRoleModuleConfigRepository(db)
	orgCfgRepo := postgres.NewOrgModuleConfigRepository(db)
	userRepo := postgres.NewUserRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	m := metrics.NewMetrics("federation", "api")

	// Services
	res := resolver.New(permRepo, settingsRepo, sidebarRepo, orgCfgRepo, logger, m)
	modulesSvc := modulesService.NewService(roleCfgRepo, orgCfgRepo, outboxRepo, res, logger, m)
	sidebarSvc := sidebarService.NewService(sidebarRepo, outboxRepo, res, logger, m)
	permissionsSvc := permissionsService.NewService(permRepo, settingsRepo, outboxRepo, res, logger, m)
	simulationSvc := simulationService.NewService(userRepo, logger)
	uiBuilderStore := uibuilder.NewStore(uiBuilderRepo, outboxRepo, logger, m)

	jwtSvc := jwtauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour, cfg.JWT.Issuer)
	hasher := security.NewBcryptHasher(12)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher, logger)

	// Middleware and handlers
	authMW := middleware.NewAuthMiddleware(authSvc, simulationSvc, res)

	r := router.NewRouter(
		authMW,
		authHandler.NewHandler(authSvc),
		health.NewHandler(db),
		[]router.Handler{
			rolemoduleHandler.NewHandler(modulesSvc, authMW),
			systemmoduleHandler.NewHandler(modulesSvc, authMW),
			permissionHandler.NewHandler(permissionsSvc, sidebarSvc, res, authMW),
			uibuilderHandler.NewHandler(uiBuilderStore, authMW),
			simulationHandler.NewHandler(simulationSvc, authMW),
		},
		router.RouterConfig{
			RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:     cfg.RateLimit.Burst,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "federation_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited properly")
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
