package ticketmaster

import "encoding/json"

// SearchResponse — сырой ответ Discovery API на поиск событий.
// События хранятся как json.RawMessage: каждое разбирается отдельно,
// чтобы одно повреждённое событие не ломало всю страницу.
type SearchResponse struct {
	Embedded *EmbeddedEvents `json:"_embedded"`
	Page     *Page           `json:"page"`
}

// EmbeddedEvents — контейнер _embedded с событиями страницы.
type EmbeddedEvents struct {
	Events []json.RawMessage `json:"events"`
}

// Page — метаданные пагинации Discovery API.
type Page struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// Event — сырое событие Discovery API.
type Event struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Info            string           `json:"info"`
	PleaseNote      string           `json:"pleaseNote"`
	URL             string           `json:"url"`
	Images          []Image          `json:"images"`
	Dates           *Dates           `json:"dates"`
	Classifications []Classification `json:"classifications"`
	PriceRanges     []PriceRange     `json:"priceRanges"`
	Seatmap         *Seatmap         `json:"seatmap"`
	Embedded        *struct {
		Venues []Venue `json:"venues"`
	} `json:"_embedded"`
}

// Image — изображение события.
type Image struct {
	URL         string `json:"url"`
	Ratio       string `json:"ratio"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Fallback    *bool  `json:"fallback"`
	Attribution string `json:"attribution"`
}

// Dates — даты и статус продаж события.
type Dates struct {
	Start struct {
		DateTime  string `json:"dateTime"`
		LocalDate string `json:"localDate"`
		LocalTime string `json:"localTime"`
	} `json:"start"`
	Status struct {
		Code string `json:"code"`
	} `json:"status"`
}

// Classification — классификация события (сегмент, жанр, поджанр).
type Classification struct {
	Segment  *Named `json:"segment"`
	Genre    *Named `json:"genre"`
	SubGenre *Named `json:"subGenre"`
}

// Named — именованный справочный объект Discovery API.
type Named struct {
	Name string `json:"name"`
}

// PriceRange — ценовой диапазон события.
type PriceRange struct {
	Type     string  `json:"type"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Seatmap — ссылка на схему зала.
type Seatmap struct {
	StaticURL string `json:"staticUrl"`
}

// Venue — место проведения события.
type Venue struct {
	Name    string `json:"name"`
	City    *Named `json:"city"`
	State   *Named `json:"state"`
	Country *Named `json:"country"`
	Address *struct {
		Line1 string `json:"line1"`
	} `json:"address"`
}
