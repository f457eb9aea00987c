// Package get реализует HTTP-обработчик получения одного события по ID.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-hub/internal/http/response"
	"github.com/magabrotheeeer/event-hub/internal/lib/sl"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// Response — тело успешного ответа.
type Response struct {
	response.Response
	Event models.NormalizedEvent `json:"event"`
}

// Service описывает интерфейс бизнес-логики получения события.
type Service interface {
	GetByID(ctx context.Context, eventID string) (*models.NormalizedEvent, error)
}

// Handler обрабатывает HTTP-запросы получения события.
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
// @Summary Получить событие
// @Description Возвращает одно нормализованное событие по его идентификатору во внешнем API.
// @Tags Events
// @Produce  json
// @Param id path string true "Идентификатор события"
// @Success 200 {object} Response "Событие"
// @Failure 404 {object} response.Response "Событие не найдено либо внешний API недоступен"
// @Router /events/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.events.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	eventID := chi.URLParam(r, "id")
	event, err := h.service.GetByID(r.Context(), eventID)
	if err != nil {
		log.Error("failed to get event", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Failed to get event"))
		return
	}

	log.Info("event fetched", slog.String("event_id", event.ID))
	render.JSON(w, r, Response{
		Response: response.OK(),
		Event:    *event,
	})
}
