package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/cache"
	"github.com/kamaltrader/luxecraft/internal/config"
	"github.com/kamaltrader/luxecraft/internal/db"
	apphttp "github.com/kamaltrader/luxecraft/internal/http"
	"github.com/kamaltrader/luxecraft/internal/http/api"
	"github.com/kamaltrader/luxecraft/internal/http/api/admin"
	"github.com/kamaltrader/luxecraft/internal/http/api/front"
	"github.com/kamaltrader/luxecraft/internal/media"
	"github.com/kamaltrader/luxecraft/internal/models"
	"github.com/kamaltrader/luxecraft/internal/notify"
	"github.com/kamaltrader/luxecraft/internal/security"
	"github.com/kamaltrader/luxecraft/internal/settings"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// Migrate opens the database, runs migrations and seeds the default rows.
func Migrate(ctx context.Context, cfg config.AppConfig) error {
	conn, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer func() {
		if errClose := db.Close(conn); errClose != nil {
			log.WithError(errClose).Warn("close database failed")
		}
	}()
	return prepareDatabase(ctx, conn, cfg)
}

// RunServer boots the storefront API and blocks until ctx is cancelled.
func RunServer(ctx context.Context, cfg config.AppConfig) error {
	conn, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer func() {
		if errClose := db.Close(conn); errClose != nil {
			log.WithError(errClose).Warn("close database failed")
		}
	}()
	if errPrepare := prepareDatabase(ctx, conn, cfg); errPrepare != nil {
		return errPrepare
	}

	productCache, closeCache := buildProductCache(ctx, cfg.Redis)
	defer closeCache()

	svc, err := BuildServices(ctx, conn, cfg, productCache)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           NewEngine(cfg, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("storefront API listening on %s (cors origin %s)", server.Addr, cfg.CORSOrigin)
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errCh <- errServe
		}
		close(errCh)
	}()

	select {
	case errServe := <-errCh:
		return errServe
	case <-ctx.Done():
	}

	log.Info("shutting down storefront API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
		return fmt.Errorf("shutdown: %w", errShutdown)
	}
	return <-errCh
}

// BuildServices wires stores, media, mail and auth over conn.
func BuildServices(ctx context.Context, conn *gorm.DB, cfg config.AppConfig, productCache cache.ProductCache) (api.Services, error) {
	fallback := smtpFallback(cfg)
	if errRefresh := settings.RefreshSMTPSnapshot(ctx, conn, fallback); errRefresh != nil {
		log.WithError(errRefresh).Warn("load email settings failed, using environment values")
		settings.StoreSMTP(settings.Merge(models.EmailConfig{}, fallback))
	}

	mediaStore, err := media.NewStore(cfg.UploadsDir, cfg.PublicPathPrefix)
	if err != nil {
		return api.Services{}, err
	}

	if errHash := security.ValidatePasswordHash(cfg.Admin.PasswordHash); errHash != nil {
		return api.Services{}, errHash
	}
	issuer := security.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiry)
	auth := security.NewAuthenticator(security.AdminCredentials{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}, issuer)
	notifier := notify.NewNotifier(notify.NewSMTPSender())

	return api.NewServices(conn, auth, mediaStore, notifier, productCache, fallback), nil
}

// NewEngine builds the gin engine with every storefront route.
func NewEngine(cfg config.AppConfig, svc api.Services) *gin.Engine {
	engine := gin.New()
	engine.Use(apphttp.Middlewares(cfg.CORSOrigin)...)

	admin.RegisterHealthRoutes(engine, svc)
	admin.RegisterAdminRoutes(engine, svc)
	front.RegisterFrontRoutes(engine, svc)
	if svc.Media != nil {
		engine.Static(cfg.PublicPathPrefix, svc.Media.Dir())
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return engine
}

func prepareDatabase(ctx context.Context, conn *gorm.DB, cfg config.AppConfig) error {
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	return db.Seed(ctx, conn, db.SeedOptions{
		EmailUser:      cfg.SMTP.User,
		EmailHost:      cfg.SMTP.Host,
		EmailPort:      cfg.SMTP.Port,
		RecipientEmail: cfg.SMTP.Recipient,
	})
}

// buildProductCache connects to Redis when configured. Any failure falls back to no caching.
func buildProductCache(ctx context.Context, cfg config.RedisConfig) (cache.ProductCache, func()) {
	if cfg.Addr == "" {
		return cache.Noop{}, func() {}
	}
	redisCache, err := cache.NewRedis(ctx, cache.RedisOptions{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		TTL:      cfg.TTL,
	})
	if err != nil {
		log.WithError(err).Warn("product cache disabled")
		return cache.Noop{}, func() {}
	}
	log.Infof("product cache enabled at %s", cfg.Addr)
	return redisCache, func() {
		if errClose := redisCache.Close(); errClose != nil {
			log.WithError(errClose).Warn("close redis failed")
		}
	}
}

func smtpFallback(cfg config.AppConfig) settings.Fallback {
	return settings.Fallback{
		User:      cfg.SMTP.User,
		Password:  cfg.SMTP.Password,
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Recipient: cfg.SMTP.Recipient,
	}
}
