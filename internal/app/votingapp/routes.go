// Package votingapp предоставляет маршруты для основного приложения.
package votingapp

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/aditya-1123/Voting-App/internal/http/handlers/auth/login"
	"github.com/aditya-1123/Voting-App/internal/http/handlers/health"
	"github.com/aditya-1123/Voting-App/internal/http/handlers/auth/register"
	candidatecreate "github.com/aditya-1123/Voting-App/internal/http/handlers/candidate/create"
	candidatelist "github.com/aditya-1123/Voting-App/internal/http/handlers/candidate/list"
	candidateremove "github.com/aditya-1123/Voting-App/internal/http/handlers/candidate/remove"
	candidatetally "github.com/aditya-1123/Voting-App/internal/http/handlers/candidate/tally"
	candidateupdate "github.com/aditya-1123/Voting-App/internal/http/handlers/candidate/update"
	candidatevote "github.com/aditya-1123/Voting-App/internal/http/handlers/candidate/vote"
	userpassword "github.com/aditya-1123/Voting-App/internal/http/handlers/user/password"
	userprofile "github.com/aditya-1123/Voting-App/internal/http/handlers/user/profile"
	"github.com/aditya-1123/Voting-App/internal/http/middlewarectx"
	"github.com/aditya-1123/Voting-App/internal/lib/jwt"
	candidateservice "github.com/aditya-1123/Voting-App/internal/services/candidate"
	userservice "github.com/aditya-1123/Voting-App/internal/services/user"
	"github.com/aditya-1123/Voting-App/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, db *repository.Storage,
	userService *userservice.Service, candidateService *candidateservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger, db).ServeHTTP)
		r.Post("/user", register.New(logger, userService).ServeHTTP)
		r.Post("/user/login", login.New(logger, userService).ServeHTTP)
		r.Get("/candidate", candidatelist.New(logger, candidateService).ServeHTTP)
		r.Get("/candidate/vote/count", candidatetally.New(logger, candidateService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Get("/user/profile", userprofile.New(logger, userService).ServeHTTP)
			r.Put("/user/profile/password", userpassword.New(logger, userService).ServeHTTP)
			r.Post("/candidate", candidatecreate.New(logger, candidateService).ServeHTTP)
			r.Put("/candidate/{id}", candidateupdate.New(logger, candidateService).ServeHTTP)
			r.Delete("/candidate/{id}", candidateremove.New(logger, candidateService).ServeHTTP)
			r.Post("/candidate/vote/{id}", candidatevote.New(logger, candidateService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
