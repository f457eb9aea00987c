// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и избранные события.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID           string     // Уникальный идентификатор пользователя
	Username      string     // Имя пользователя в исходном регистре
	UsernameLower string     // Имя пользователя в нижнем регистре (уникальное)
	Email         string     // Электронная почта, хранится в нижнем регистре (уникальная)
	PasswordHash  string     // Хэш пароля пользователя
	Favorites     []Favorite // Сохранённые избранные события
	CreatedAt     time.Time  // Дата создания учётной записи
	UpdatedAt     time.Time  // Дата последнего изменения
	LastLogin     *time.Time // Дата последнего входа, nil если пользователь ещё не входил
}

// UserPublic — публичная проекция пользователя для ответов API.
// Хэш пароля сюда никогда не попадает.
type UserPublic struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Favorites []Favorite `json:"favorites"`
}

// Public возвращает публичную проекцию пользователя.
func (u *User) Public() UserPublic {
	favorites := u.Favorites
	if favorites == nil {
		favorites = []Favorite{}
	}
	return UserPublic{
		ID:        u.UID,
		Username:  u.Username,
		Email:     u.Email,
		Favorites: favorites,
	}
}

// Favorite — снимок отображаемых полей события, сохранённый пользователем.
// Хранится внутри документа пользователя.
type Favorite struct {
	EventID string    `json:"event_id"`
	Name    string    `json:"name"`
	Date    string    `json:"date"`
	Venue   string    `json:"venue"`
	Image   string    `json:"image"`
	AddedAt time.Time `json:"added_at"`
}
