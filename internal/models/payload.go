package models

// EventPayload — данные события из тела запроса на добавление в избранное.
// Поля переносятся в снимок Favorite как есть.
type EventPayload struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Date  string `json:"date"`
	Venue string `json:"venue"`
	Image string `json:"image"`
}
