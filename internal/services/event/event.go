// Package services содержит бизнес-логику поиска событий: трансляцию фильтров
// в параметры внешнего API и приведение его ответов к внутренней схеме.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/magabrotheeeer/event-hub/internal/models"
	"github.com/magabrotheeeer/event-hub/internal/ticketmaster"
)

// ErrInvalidDate — фильтр даты не разбирается как ISO-8601.
var ErrInvalidDate = errors.New("Invalid date format")

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// EventsClient описывает контракт клиента внешнего API событий.
type EventsClient interface {
	// SearchEvents выполняет поиск событий с переданными параметрами.
	SearchEvents(ctx context.Context, params url.Values) (*ticketmaster.SearchResponse, error)
	// GetEvent возвращает сырое тело одного события.
	GetEvent(ctx context.Context, eventID string) (json.RawMessage, error)
}

// SearchResult — результат поиска: нормализованные события и пагинация.
type SearchResult struct {
	Events     []models.NormalizedEvent
	Pagination models.Pagination
}

// EventService транслирует фильтры поиска во внешние параметры запроса
// и нормализует ответы внешнего API.
type EventService struct {
	client EventsClient
	log    *slog.Logger
}

// NewEventService создает новый экземпляр EventService.
func NewEventService(client EventsClient, log *slog.Logger) *EventService {
	return &EventService{
		client: client,
		log:    log,
	}
}

// Search выполняет поиск событий по фильтру. Результат всегда отсортирован
// по дате по возрастанию. Повреждённые события страницы вырождаются в
// усечённую форму, не прерывая обработку остальных.
func (s *EventService) Search(ctx context.Context, filter models.SearchFilter) (*SearchResult, error) {
	params, err := buildQuery(filter)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.SearchEvents(ctx, params)
	if err != nil {
		return nil, err
	}

	events := []models.NormalizedEvent{}
	if resp.Embedded != nil {
		for _, raw := range resp.Embedded.Events {
			events = append(events, normalizeEvent(raw))
		}
	}

	// Размер по умолчанию подставляется и тогда, когда объект page пришёл
	// без поля size.
	pagination := models.Pagination{Size: defaultPageSize}
	if resp.Page != nil {
		pagination = models.Pagination{
			Size:          resp.Page.Size,
			TotalElements: resp.Page.TotalElements,
			TotalPages:    resp.Page.TotalPages,
			Number:        resp.Page.Number,
		}
		if pagination.Size == 0 {
			pagination.Size = defaultPageSize
		}
	}

	s.log.Info("events search completed", slog.Int("count", len(events)))
	return &SearchResult{
		Events:     events,
		Pagination: pagination,
	}, nil
}

// GetByID возвращает одно нормализованное событие по его идентификатору.
func (s *EventService) GetByID(ctx context.Context, eventID string) (*models.NormalizedEvent, error) {
	raw, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	event := normalizeEvent(raw)
	return &event, nil
}

// buildQuery транслирует фильтр в параметры Discovery API.
func buildQuery(filter models.SearchFilter) (url.Values, error) {
	params := url.Values{}

	if filter.Keyword != "" {
		params.Set("keyword", filter.Keyword)
	}
	if filter.City != "" {
		params.Set("city", filter.City)
	}
	if filter.StateCode != "" {
		params.Set("stateCode", filter.StateCode)
	}
	if filter.StartDate != "" {
		formatted, err := reformatDate(filter.StartDate)
		if err != nil {
			return nil, err
		}
		params.Set("startDateTime", formatted)
	}
	if filter.EndDate != "" {
		formatted, err := reformatDate(filter.EndDate)
		if err != nil {
			return nil, err
		}
		params.Set("endDateTime", formatted)
	}
	if filter.Segment != "" {
		params.Set("segmentName", filter.Segment)
	}
	params.Set("size", strconv.Itoa(clampSize(filter.Size)))
	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}
	params.Set("sort", "date,asc")
	return params, nil
}

// clampSize ограничивает размер страницы диапазоном [1, 200];
// нулевое значение означает размер по умолчанию.
func clampSize(size int) int {
	switch {
	case size == 0:
		return defaultPageSize
	case size < 1:
		return 1
	case size > maxPageSize:
		return maxPageSize
	}
	return size
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// reformatDate разбирает дату фильтра как ISO-8601 (с завершающим Z или без)
// и переводит её в формат запроса Discovery API. Смещение зоны не
// конвертируется: поля даты переносятся как есть.
func reformatDate(value string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02T15:04:05") + "Z", nil
		}
	}
	return "", ErrInvalidDate
}

// normalizeEvent приводит сырое событие к внутренней схеме. Любая ошибка
// разбора вырождает событие в усечённую форму с пометкой об ошибке вместо
// отказа всей страницы.
func normalizeEvent(raw json.RawMessage) models.NormalizedEvent {
	var ev ticketmaster.Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return partialEvent(raw)
	}

	out := models.NormalizedEvent{
		ID:          ev.ID,
		Name:        ev.Name,
		Description: ev.Info,
		URL:         ev.URL,
		Status:      "onsale",
	}
	if out.Description == "" {
		out.Description = ev.PleaseNote
	}

	if ev.Embedded != nil && len(ev.Embedded.Venues) > 0 {
		v := ev.Embedded.Venues[0]
		venue := &models.Venue{Name: v.Name}
		if venue.Name == "" {
			venue.Name = "Unknown Venue"
		}
		if v.City != nil {
			venue.City = v.City.Name
		}
		if v.State != nil {
			venue.State = v.State.Name
		}
		if v.Country != nil {
			venue.Country = v.Country.Name
		}
		if v.Address != nil {
			venue.Address = v.Address.Line1
		}
		out.Venue = venue
	}

	for _, p := range ev.PriceRanges {
		pr := models.PriceRange{
			Type:     p.Type,
			Min:      p.Min,
			Max:      p.Max,
			Currency: p.Currency,
		}
		if pr.Type == "" {
			pr.Type = "standard"
		}
		if pr.Currency == "" {
			pr.Currency = "USD"
		}
		out.PriceRanges = append(out.PriceRanges, pr)
	}

	// Репрезентативное изображение — с наибольшей заявленной шириной,
	// при равенстве побеждает первое.
	best := -1
	for i, img := range ev.Images {
		if best == -1 || img.Width > ev.Images[best].Width {
			best = i
		}
	}
	if best >= 0 {
		out.Image = ev.Images[best].URL
	}
	for i, img := range ev.Images {
		if i == 3 {
			break
		}
		out.Images = append(out.Images, models.EventImage{
			URL:         img.URL,
			Ratio:       img.Ratio,
			Width:       img.Width,
			Height:      img.Height,
			Fallback:    img.Fallback,
			Attribution: img.Attribution,
		})
	}

	if ev.Dates != nil {
		out.Date = ev.Dates.Start.DateTime
		out.LocalDate = ev.Dates.Start.LocalDate
		out.LocalTime = ev.Dates.Start.LocalTime
		if ev.Dates.Status.Code != "" {
			out.Status = ev.Dates.Status.Code
		}
	}

	if len(ev.Classifications) > 0 {
		c := ev.Classifications[0]
		if c.Segment != nil {
			out.Segment = c.Segment.Name
		}
		if c.Genre != nil {
			out.Genre = c.Genre.Name
		}
		if c.SubGenre != nil {
			out.SubGenre = c.SubGenre.Name
		}
	}

	if ev.Seatmap != nil {
		out.Seatmap = ev.Seatmap.StaticURL
	}
	return out
}

// partialEvent собирает усечённую форму события, спасая id и name,
// если они читаются из повреждённого JSON. Усечённая форма типизирует
// id и name строками: нестроковые значения не переносятся, остаются
// значения по умолчанию.
func partialEvent(raw json.RawMessage) models.NormalizedEvent {
	stub := models.NormalizedEvent{
		ID:    "unknown",
		Name:  "Unknown Event",
		Error: "Partial data available",
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return stub
	}
	var id, name string
	if err := json.Unmarshal(fields["id"], &id); err == nil && id != "" {
		stub.ID = id
	}
	if err := json.Unmarshal(fields["name"], &name); err == nil && name != "" {
		stub.Name = name
	}
	return stub
}
