// Package remove реализует HTTP-обработчик удаления события из избранного пользователя.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-hub/internal/http/response"
	"github.com/magabrotheeeer/event-hub/internal/lib/sl"
	userservice "github.com/magabrotheeeer/event-hub/internal/services/user"
)

// Service описывает интерфейс бизнес-логики избранного.
type Service interface {
	RemoveFavorite(ctx context.Context, userID, eventID string) error
}

// Handler обрабатывает HTTP-запросы удаления из избранного.
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
// @Summary Удалить событие из избранного
// @Description Удаляет из избранного пользователя все снимки с данным идентификатором события.
// @Tags Favorites
// @Produce  json
// @Param id path string true "Идентификатор пользователя"
// @Param eventId path string true "Идентификатор события"
// @Success 200 {object} response.Response "Событие удалено"
// @Failure 400 {object} response.Response "Неверный идентификатор, совпадений нет либо пользователь не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /users/{id}/favorites/{eventId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")
	eventID := chi.URLParam(r, "eventId")

	if err := h.service.RemoveFavorite(r.Context(), userID, eventID); err != nil {
		if errors.Is(err, userservice.ErrInvalidUserID) || errors.Is(err, userservice.ErrFavoriteNotFound) {
			log.Info("remove favorite rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to remove favorite", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to remove favorite"))
		return
	}

	log.Info("favorite removed", slog.String("user_id", userID), slog.String("event_id", eventID))
	render.JSON(w, r, response.OKWithMessage("Removed from favorites"))
}
