package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/event-hub/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	favorites, err := json.Marshal(user.Favorites)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newID string
	query := `INSERT INTO users (username, username_lower, email, password_hash, favorites,
			      created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, now(), now())
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.UsernameLower, user.Email, user.PasswordHash,
		favorites).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// FindUserByEmail возвращает пользователя по email (хранится в нижнем регистре).
// Если пользователь не найден, ошибка оборачивает sql.ErrNoRows.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, username_lower, email, password_hash, favorites,
			      created_at, updated_at, last_login
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)

	var favorites []byte
	var lastLogin sql.NullTime
	if err := row.Scan(&u.UID, &u.Username, &u.UsernameLower, &u.Email, &u.PasswordHash,
		&favorites, &u.CreatedAt, &u.UpdatedAt, &lastLogin); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(favorites, &u.Favorites); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

// ExistsEmail проверяет наличие пользователя с данным email.
func (s *Storage) ExistsEmail(ctx context.Context, email string) (bool, error) {
	const op = "storage.ExistsEmail"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ExistsUsername проверяет наличие пользователя с данным именем (без учёта регистра).
func (s *Storage) ExistsUsername(ctx context.Context, usernameLower string) (bool, error) {
	const op = "storage.ExistsUsername"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username_lower = $1)`
	if err := s.DB.QueryRowContext(ctx, query, usernameLower).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UpdateLastLogin обновляет дату последнего входа пользователя.
func (s *Storage) UpdateLastLogin(ctx context.Context, userUID string) error {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET last_login = now()
			  WHERE uid = $1`
	_, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AddFavorite добавляет снимок события в избранное пользователя одним атомарным
// запросом. Снимок не добавляется, если структурно идентичный уже есть
// (поле added_at при сравнении игнорируется). Возвращает количество изменённых
// строк: 0 означает дубликат либо отсутствие пользователя — хранилище эти
// случаи не различает.
func (s *Storage) AddFavorite(ctx context.Context, userUID string, favorite models.Favorite) (int64, error) {
	const op = "storage.AddFavorite"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	snapshot, err := json.Marshal(favorite)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE users
			  SET favorites = favorites || jsonb_build_array($2::jsonb),
			      updated_at = now()
			  WHERE uid = $1
			    AND NOT EXISTS (
			        SELECT 1
			        FROM jsonb_array_elements(favorites) AS f(value)
			        WHERE f.value - 'added_at' = $2::jsonb - 'added_at'
			    )`
	res, err := s.DB.ExecContext(ctx, query, userUID, snapshot)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// RemoveFavorite удаляет из избранного пользователя все снимки с данным event_id
// одним атомарным запросом. Возвращает количество изменённых строк: 0 означает,
// что ничего не совпало либо пользователя нет.
func (s *Storage) RemoveFavorite(ctx context.Context, userUID, eventID string) (int64, error) {
	const op = "storage.RemoveFavorite"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET favorites = COALESCE(
			          (SELECT jsonb_agg(f.value)
			           FROM jsonb_array_elements(favorites) AS f(value)
			           WHERE f.value ->> 'event_id' IS DISTINCT FROM $2),
			          '[]'::jsonb),
			      updated_at = now()
			  WHERE uid = $1
			    AND EXISTS (
			        SELECT 1
			        FROM jsonb_array_elements(favorites) AS f(value)
			        WHERE f.value ->> 'event_id' = $2
			    )`
	res, err := s.DB.ExecContext(ctx, query, userUID, eventID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// GetFavorites возвращает избранные события пользователя.
// Если пользователь не найден, ошибка оборачивает sql.ErrNoRows.
func (s *Storage) GetFavorites(ctx context.Context, userUID string) ([]models.Favorite, error) {
	const op = "storage.GetFavorites"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT favorites FROM users WHERE uid = $1`
	var raw []byte
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	favorites := []models.Favorite{}
	if err := json.Unmarshal(raw, &favorites); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return favorites, nil
}
