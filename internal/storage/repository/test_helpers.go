package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/event-hub/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его uid
func (f *TestDataFactory) CreateUser(t *testing.T, username, email, passwordHash string, favorites []models.Favorite) string {
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	raw, err := json.Marshal(favorites)
	require.NoError(t, err)

	uid := uuid.New().String()
	_, err = f.storage.DB.Exec(`INSERT INTO users
		(uid, username, username_lower, email, password_hash, favorites, created_at, updated_at)
		VALUES ($1, $2, lower($2), $3, $4, $5, now(), now())`,
		uid, username, email, passwordHash, raw)
	require.NoError(t, err)
	return uid
}

// TestUserData содержит стандартные тестовые данные пользователя
type TestUserData struct {
	Username     string
	Email        string
	PasswordHash string
	Favorite     models.Favorite
}

// GetTestUserData возвращает стандартные тестовые данные пользователя
func GetTestUserData() TestUserData {
	return TestUserData{
		Username:     "testuser",
		Email:        "testuser@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Favorite: models.Favorite{
			EventID: "ev123",
			Name:    "Rock Night",
			Date:    "2026-02-01T20:00:00Z",
			Venue:   "Big Arena",
			Image:   "https://img.example.com/ev123.jpg",
			AddedAt: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		},
	}
}
