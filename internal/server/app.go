// Package server initializes and runs the main application server: database,
// crypto singletons, services, and the HTTP endpoint with its request gate.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/parksujin/lifeshare/internal/logging"
	"github.com/parksujin/lifeshare/internal/server/auth"
	"github.com/parksujin/lifeshare/internal/server/config"
	"github.com/parksujin/lifeshare/internal/server/httpx"
	"github.com/parksujin/lifeshare/internal/server/repositories/repomanager"
	"github.com/parksujin/lifeshare/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpx.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	// Process-wide crypto singletons: constructed once, read-only afterwards.
	keys, err := buildKeyProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("rsa init error: %w", err)
	}
	cipher, err := auth.NewAES128(cfg.AESPassphrase)
	if err != nil {
		return nil, fmt.Errorf("aes init error: %w", err)
	}
	codec := auth.NewCodec([]byte(cfg.SecretKey))

	repo := rm.Users(db)
	userSvc := services.NewUserService(repo, cipher, logger)
	authSvc := services.NewAuthService(repo, userSvc, codec, keys, cfg, logger)

	sessions := httpx.NewCookieStore(int(cfg.RefreshTokenValidityDuration.Seconds()))
	gate := httpx.NewGate(codec, authSvc, sessions, logger)
	handler := httpx.NewHandler(authSvc, userSvc, keys, codec, sessions, logger)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		httpx.RequestID(),
		httpx.RequestLogger(logger),
		httpx.CookieAttributeFilter(),
		gate.Handler(),
	)
	handler.RegisterRoutes(engine)
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	server := httpx.NewServer(cfg.EndpointAddrHTTP, engine, logger)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func buildKeyProvider(cfg *config.Config) (*auth.KeyProvider, error) {
	if cfg.RSAPublicKey != "" && cfg.RSAPrivateKey != "" {
		return auth.NewKeyProviderFromConfig(cfg.RSAPublicKey, cfg.RSAPrivateKey)
	}
	return auth.NewKeyProvider()
}

// Run serves until an interrupt or termination signal arrives, then shuts
// down gracefully and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddrHTTP)

	err := app.server.Run(ctx)

	if closeErr := app.db.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
