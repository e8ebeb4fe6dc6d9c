// Package list реализует публичный HTTP-обработчик списка кандидатов.
package list

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

// Service описывает интерфейс бизнес-логики списка кандидатов.
type Service interface {
	List(ctx context.Context) ([]models.CandidateListItem, error)
}

// Handler управляет HTTP-запросами списка кандидатов.
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
// @Summary Список кандидатов
// @Description Возвращает всех кандидатов в проекции {name, party}, без пагинации.
// @Tags Candidates
// @Produce  json
// @Success 200 {object} map[string]any "Список кандидатов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /candidate [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.candidate.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	candidates, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list candidates", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list candidates"))
		return
	}

	render.JSON(w, r, response.OKWithData(candidates))
}
