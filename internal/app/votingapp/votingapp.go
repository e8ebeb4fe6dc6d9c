// Package votingapp собирает приложение: хранилище, миграции,
// сервисы, маршруты и HTTP-сервер с корректным завершением.
package votingapp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/aditya-1123/Voting-App/internal/config"
	"github.com/aditya-1123/Voting-App/internal/lib/jwt"
	"github.com/aditya-1123/Voting-App/internal/lib/password"
	"github.com/aditya-1123/Voting-App/internal/migrations"
	"github.com/aditya-1123/Voting-App/internal/models"
	candidateservice "github.com/aditya-1123/Voting-App/internal/services/candidate"
	userservice "github.com/aditya-1123/Voting-App/internal/services/user"
	"github.com/aditya-1123/Voting-App/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и подключение к хранилищу.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New создает приложение: подключается к базе, прогоняет миграции,
// при необходимости заводит служебного администратора и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	if err = seedAdmin(ctx, db, cfg.SeedAdmin); err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	userService := userservice.New(db, jwtMaker)
	candidateService := candidateservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db, userService, candidateService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// seedAdmin создает администратора из конфига, если он еще не существует.
// Обычная регистрация всегда выдает роль voter, так что это единственный
// способ появления администратора в системе.
func seedAdmin(ctx context.Context, db *repository.Storage, cfg config.SeedAdmin) error {
	if cfg.Username == "" {
		return nil
	}
	hashed, err := password.GetHash(cfg.Password)
	if err != nil {
		return err
	}
	return db.SeedAdmin(ctx, models.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	})
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
		_ = a.db.DB.Close()
		return err
	}
}
