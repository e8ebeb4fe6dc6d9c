// Package vote реализует HTTP-обработчик голосования за кандидата.
//
// Голосовать может только аутентифицированный пользователь с ролью voter
// и только один раз. Запись голоса выполняется хранилищем атомарно.
package vote

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

// Service описывает интерфейс бизнес-логики голосования.
type Service interface {
	CastVote(ctx context.Context, candidateID int, voterUID string) error
}

// Handler управляет HTTP-запросами голосования.
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
// @Summary Проголосовать за кандидата
// @Description Записывает единственный голос текущего пользователя за кандидата.
// @Tags Votes
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID кандидата"
// @Success 200 {object} response.Response "Голос записан"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или повторный голос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Администраторам голосовать запрещено"
// @Failure 404 {object} response.ErrorResponse "Кандидат или пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /candidate/vote/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.candidate.vote"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	voterUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || voterUID == "" {
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

	if err := h.service.CastVote(r.Context(), candidateID, voterUID); err != nil {
		switch {
		case errors.Is(err, candidateservice.ErrCandidateNotFound):
			log.Error("candidate not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("candidate not found"))
		case errors.Is(err, candidateservice.ErrVoterNotFound):
			log.Error("voter not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, candidateservice.ErrAdminCannotVote):
			log.Error("admin attempted to vote", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("admin is not allowed"))
		case errors.Is(err, candidateservice.ErrAlreadyVoted):
			log.Error("duplicate vote attempt", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("you have already voted"))
		default:
			log.Error("failed to record vote", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to record vote"))
		}
		return
	}

	log.Info("vote recorded",
		slog.Int("candidate_id", candidateID), slog.String("voter_uid", voterUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "vote recorded successfully",
	}))
}
