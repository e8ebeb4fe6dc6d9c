// Package remove реализует HTTP-обработчик удаления кандидата.
//
// Операция доступна только администратору. Удаление не сбрасывает
// флаг has_voted у проголосовавших за этого кандидата.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aditya-1123/Voting-App/internal/http/middlewarectx"
	"github.com/aditya-1123/Voting-App/internal/http/response"
	"github.com/aditya-1123/Voting-App/internal/lib/sl"
	candidateservice "github.com/aditya-1123/Voting-App/internal/services/candidate"
)

// Service описывает интерфейс бизнес-логики удаления кандидата.
type Service interface {
	Remove(ctx context.Context, actingUserUID string, candidateID int) error
}

// Handler управляет HTTP-запросами на удаление кандидатов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить кандидата
// @Description Удаляет кандидата вместе с записями о голосах. Только для администратора.
// @Tags Candidates
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID кандидата"
// @Success 200 {object} response.Response "Кандидат удален"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет роли admin"
// @Failure 404 {object} response.ErrorResponse "Кандидат не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /candidate/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.candidate.remove"

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

	if err := h.service.Remove(r.Context(), userUID, candidateID); err != nil {
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
			log.Error("failed to remove candidate", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to remove candidate"))
		}
		return
	}

	log.Info("candidate removed", slog.Int("id", candidateID))
	render.JSON(w, r, response.OK())
}
