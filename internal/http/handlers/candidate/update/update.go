// Package update реализует HTTP-обработчик обновления данных кандидата.
// Операция доступна только администратору.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/aditya-1123/Voting-App/internal/http/middlewarectx"
	"github.com/aditya-1123/Voting-App/internal/http/response"
	"github.com/aditya-1123/Voting-App/internal/lib/sl"
	"github.com/aditya-1123/Voting-App/internal/models"
	candidateservice "github.com/aditya-1123/Voting-App/internal/services/candidate"
)

// Service описывает интерфейс бизнес-логики обновления кандидата.
type Service interface {
	Update(ctx context.Context, actingUserUID string, candidateID int, req models.DummyCandidate) (*models.Candidate, error)
}

// Handler управляет HTTP-запросами на обновление кандидатов.
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
// @Summary Обновить кандидата
// @Description Обновляет имя и партию кандидата. Только для администратора.
// @Tags Candidates
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID кандидата"
// @Param request body models.DummyCandidate true "Новые данные кандидата"
// @Success 200 {object} map[string]any "Обновленный кандидат"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет роли admin"
// @Failure 404 {object} response.ErrorResponse "Кандидат не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /candidate/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.candidate.update"

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

	candidateID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid candidate id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid candidate id"))
		return
	}

	var req models.DummyCandidate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	candidate, err := h.service.Update(r.Context(), userUID, candidateID, req)
	if err != nil {
		switch {
		case errors.Is(err, candidateservice.ErrNotAdmin):
			log.Error("user does not have admin role", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("user does not have admin role"))
		case errors.Is(err, candidateservice.ErrCandidateNotFound):
			log.Error("candidate not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("candidate not found"))
		default:
			log.Error("failed to update candidate", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update candidate"))
		}
		return
	}

	log.Info("candidate updated", slog.Int("id", candidateID))
	render.JSON(w, r, response.OKWithData(candidate))
}
