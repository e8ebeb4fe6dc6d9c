// Package tally реализует публичный HTTP-обработчик итогов голосования.
package tally

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aditya-1123/Voting-App/internal/http/response"
	"github.com/aditya-1123/Voting-App/internal/lib/sl"
	"github.com/aditya-1123/Voting-App/internal/models"
)

// Service описывает интерфейс бизнес-логики подсчета итогов.
type Service interface {
	Tally(ctx context.Context) ([]models.TallyEntry, error)
}

// Handler управляет HTTP-запросами итогов голосования.
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
// @Summary Итоги голосования
// @Description Возвращает пары {party, count} по убыванию числа голосов.
// Порядок партий с равным числом голосов не определен.
// @Tags Votes
// @Produce  json
// @Success 200 {object} map[string]any "Итоги голосования"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /candidate/vote/count [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.candidate.tally"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	entries, err := h.service.Tally(r.Context())
	if err != nil {
		log.Error("failed to count votes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to count votes"))
		return
	}

	render.JSON(w, r, response.OKWithData(entries))
}
