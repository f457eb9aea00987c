// Package list реализует HTTP-обработчик получения избранных событий пользователя.
package list

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
	"github.com/magabrotheeeer/event-hub/internal/models"
	userservice "github.com/magabrotheeeer/event-hub/internal/services/user"
)

// Response — тело успешного ответа.
type Response struct {
	response.Response
	Favorites []models.Favorite `json:"favorites"`
}

// Service описывает интерфейс бизнес-логики избранного.
type Service interface {
	GetFavorites(ctx context.Context, userID string) ([]models.Favorite, error)
}

// Handler обрабатывает HTTP-запросы получения избранного.
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
// @Summary Избранные события пользователя
// @Description Возвращает сохранённые снимки событий пользователя.
// @Tags Favorites
// @Produce  json
// @Param id path string true "Идентификатор пользователя"
// @Success 200 {object} Response "Список избранного"
// @Failure 404 {object} response.Response "Неверный идентификатор либо пользователь не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /users/{id}/favorites [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")
	favorites, err := h.service.GetFavorites(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userservice.ErrInvalidUserID) || errors.Is(err, userservice.ErrUserNotFound) {
			log.Info("favorites lookup rejected", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to get favorites", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to get favorites"))
		return
	}

	log.Info("favorites listed", slog.String("user_id", userID), slog.Int("count", len(favorites)))
	render.JSON(w, r, Response{
		Response:  response.OK(),
		Favorites: favorites,
	})
}
