// Package add реализует HTTP-обработчик добавления события в избранное пользователя.
//
// Handler принимает JSON с данными события, строит из них снимок и делегирует
// добавление бизнес-логике. Повторное добавление структурно идентичного
// снимка не изменяет документ и считается ошибкой клиента.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/event-hub/internal/http/response"
	"github.com/magabrotheeeer/event-hub/internal/lib/sl"
	"github.com/magabrotheeeer/event-hub/internal/models"
	userservice "github.com/magabrotheeeer/event-hub/internal/services/user"
)

// Request — тело запроса с данными события.
type Request struct {
	Event models.EventPayload `json:"event" validate:"required"`
}

// Service описывает интерфейс бизнес-логики избранного.
type Service interface {
	AddFavorite(ctx context.Context, userID string, event models.EventPayload) error
}

// Handler обрабатывает HTTP-запросы добавления в избранное.
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
// @Summary Добавить событие в избранное
// @Description Сохраняет снимок события в избранном пользователя.
// @Tags Favorites
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор пользователя"
// @Param request body Request true "Данные события"
// @Success 200 {object} response.Response "Событие добавлено"
// @Failure 400 {object} response.Response "Некорректные данные, дубликат либо пользователь не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /users/{id}/favorites [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.add"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Event data is required"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Event data is required"))
		return
	}

	if err := h.service.AddFavorite(r.Context(), userID, req.Event); err != nil {
		if errors.Is(err, userservice.ErrInvalidUserID) || errors.Is(err, userservice.ErrAlreadyInFavorites) {
			log.Info("add favorite rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to add favorite", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to add favorite"))
		return
	}

	log.Info("favorite added", slog.String("user_id", userID), slog.String("event_id", req.Event.ID))
	render.JSON(w, r, response.OKWithMessage("Added to favorites"))
}
