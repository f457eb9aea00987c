// Package models содержит доменные структуры событий, полученных из внешнего
// API и приведённых к внутренней стабильной схеме. Эти структуры не хранятся
// в базе и пересобираются при каждом обращении к внешнему API.
package models

// SearchFilter перечисляет все распознаваемые параметры поиска событий.
// Нулевые значения означают отсутствие фильтра.
type SearchFilter struct {
	Keyword   string
	City      string
	StateCode string
	StartDate string
	EndDate   string
	Segment   string
	Size      int
	Page      int
}

// NormalizedEvent — событие, приведённое к внутренней схеме.
// Если нормализация отдельного события не удалась, возвращается усечённая
// форма, в которой заполнены только ID, Name и Error.
type NormalizedEvent struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Image       string       `json:"image,omitempty"`
	Images      []EventImage `json:"images,omitempty"`
	Date        string       `json:"date,omitempty"`
	LocalDate   string       `json:"localDate,omitempty"`
	LocalTime   string       `json:"localTime,omitempty"`
	Venue       *Venue       `json:"venue,omitempty"`
	PriceRanges []PriceRange `json:"priceRanges,omitempty"`
	Segment     string       `json:"segment,omitempty"`
	Genre       string       `json:"genre,omitempty"`
	SubGenre    string       `json:"subGenre,omitempty"`
	Status      string       `json:"status,omitempty"`
	Seatmap     string       `json:"seatmap,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// Venue — место проведения события. Отсутствует, если внешний API его не прислал.
type Venue struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Address string `json:"address"`
}

// PriceRange — ценовой диапазон события, переносится из внешнего API как есть.
type PriceRange struct {
	Type     string  `json:"type"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// EventImage — изображение события из внешнего API.
type EventImage struct {
	URL         string `json:"url"`
	Ratio       string `json:"ratio,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Fallback    *bool  `json:"fallback,omitempty"`
	Attribution string `json:"attribution,omitempty"`
}

// Pagination — метаданные страницы результата поиска.
type Pagination struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}
