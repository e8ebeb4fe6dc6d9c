// Package create реализует HTTP-обработчик добавления нового кандидата.
//
// Операция доступна только пользователям с ролью admin; проверку роли
// выполняет бизнес-логика по данным хранилища, а не по токену.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/aditya-1123/Voting-App/internal/http/middlewarectx"
	"github.com/aditya-1123/Voting-App/internal/http/response"
	"github.com/aditya-1123/Voting-App/internal/lib/sl"
	"github.com/aditya-1123/Voting-App/internal/models"
	candidateservice "github.com/aditya-1123/Voting-App/internal/services/candidate"
)

// Service описывает интерфейс бизнес-логики создания кандидата.
type Service interface {
	Create(ctx context.Context, actingUserUID string, req models.DummyCandidate) (*models.Candidate, error)
}

// Handler управляет HTTP-запросами на создание кандидатов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать кандидата
// @Description Добавляет нового кандидата с нулевым счетчиком голосов. Только для администратора.
// @Tags Candidates
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyCandidate true "Данные нового кандидата"
// @Success 200 {object} map[string]any "Созданный кандидат"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет роли admin"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /candidate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.candidate.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.DummyCandidate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	candidate, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, candidateservice.ErrNotAdmin) {
			log.Error("user does not have admin role", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("user does not have admin role"))
			return
		}
		log.Error("failed to create candidate", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create candidate"))
		return
	}

	log.Info("candidate created", slog.Int("id", candidate.ID))
	render.JSON(w, r, response.OKWithData(candidate))
}
