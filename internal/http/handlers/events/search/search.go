// Package search реализует HTTP-обработчик поиска событий во внешнем API.
//
// Handler разбирает параметры запроса в явный фильтр, делегирует поиск
// бизнес-логике и возвращает нормализованные события с пагинацией.
package search

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-hub/internal/http/response"
	"github.com/magabrotheeeer/event-hub/internal/lib/sl"
	"github.com/magabrotheeeer/event-hub/internal/models"
	eventservice "github.com/magabrotheeeer/event-hub/internal/services/event"
	"github.com/magabrotheeeer/event-hub/internal/ticketmaster"
)

// Response — тело успешного ответа поиска.
type Response struct {
	response.Response
	Events     []models.NormalizedEvent `json:"events"`
	Pagination models.Pagination        `json:"pagination"`
}

// Service описывает интерфейс бизнес-логики поиска событий.
type Service interface {
	Search(ctx context.Context, filter models.SearchFilter) (*eventservice.SearchResult, error)
}

// Handler обрабатывает HTTP-запросы поиска событий.
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
// @Summary Поиск событий
// @Description Ищет события во внешнем API по ключевому слову, городу, датам и категории.
// @Tags Events
// @Produce  json
// @Param keyword   query string false "Ключевое слово"
// @Param city      query string false "Город"
// @Param stateCode query string false "Код штата"
// @Param startDate query string false "Начальная дата (ISO-8601)"
// @Param endDate   query string false "Конечная дата (ISO-8601)"
// @Param segment   query string false "Категория события"
// @Param size      query int    false "Размер страницы (1-200, по умолчанию 20)"
// @Param page      query int    false "Номер страницы"
// @Success 200 {object} Response "События и пагинация"
// @Failure 400 {object} response.Response "Некорректный фильтр либо сбой внешнего API"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /events/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.events.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := parseFilter(r)
	if err != nil {
		log.Error("failed to parse filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	result, err := h.service.Search(r.Context(), filter)
	if err != nil {
		var apiErr *ticketmaster.APIError
		switch {
		case errors.Is(err, eventservice.ErrInvalidDate):
			log.Error("invalid date filter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		case errors.Is(err, ticketmaster.ErrTimeout):
			log.Error("upstream timeout", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Request timeout - Ticketmaster API is not responding"))
		case errors.As(err, &apiErr):
			log.Error("upstream request failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("API request failed: "+apiErr.Message))
		default:
			log.Error("search failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Search failed"))
		}
		return
	}

	log.Info("search completed", slog.Int("count", len(result.Events)))
	render.JSON(w, r, Response{
		Response:   response.OK(),
		Events:     result.Events,
		Pagination: result.Pagination,
	})
}

// parseFilter собирает явный фильтр поиска из параметров запроса.
func parseFilter(r *http.Request) (models.SearchFilter, error) {
	q := r.URL.Query()
	filter := models.SearchFilter{
		Keyword:   q.Get("keyword"),
		City:      q.Get("city"),
		StateCode: q.Get("stateCode"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Segment:   q.Get("segment"),
	}

	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("Invalid size parameter")
		}
		filter.Size = size
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("Invalid page parameter")
		}
		filter.Page = page
	}
	return filter, nil
}
