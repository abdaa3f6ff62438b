// Package mediabackend собирает все зависимости сервиса аутентификации
// и медиапрофилей: базу данных, кэш, объектное хранилище, публикацию событий
// и HTTP-сервер с graceful shutdown.
package mediabackend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/media-backend/internal/cache"
	"github.com/magabrotheeeer/media-backend/internal/config"
	jwtlib "github.com/magabrotheeeer/media-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/media-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/media-backend/internal/migrations"
	authservice "github.com/magabrotheeeer/media-backend/internal/services/auth"
	"github.com/magabrotheeeer/media-backend/internal/storage/media"
	"github.com/magabrotheeeer/media-backend/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и подключения к внешним системам.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	cache    *cache.Cache
	amqpDone func()
}

// New инициализирует все зависимости и готовый к запуску App.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	mediaStorage, err := media.New(ctx, cfg.S3Connection)
	if err != nil {
		return nil, err
	}

	var events authservice.EventPublisher
	amqpDone := func() {}
	if cfg.RabbitMQ.URL != "" {
		conn, ch, err := rabbitmq.Connect(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		if err = rabbitmq.Setup(ch, cfg.RabbitMQ.Exchange); err != nil {
			return nil, err
		}
		events = rabbitmq.NewPublisher(ch, cfg.RabbitMQ.Exchange)
		amqpDone = func() {
			_ = ch.Close()
			_ = conn.Close()
		}
	}

	jwtMaker := jwtlib.NewMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.AccessTokenTTL, cfg.JWTToken.RefreshTokenTTL)

	authService := authservice.NewService(logger, db, mediaStorage, cacheRedis, events, jwtMaker, cfg.RedisConnection.CacheTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		cache:    cacheRedis,
		amqpDone: amqpDone,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.amqpDone()
		_ = a.cache.Db.Close()
		_ = a.db.DB.Close()
		return err
	}
}
