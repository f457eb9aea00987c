// Package services содержит логику бизнес-уровня для работы с пользователями:
// регистрацию, вход и управление избранными событиями.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/event-hub/internal/lib/password"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// Ошибки бизнес-уровня. Тексты попадают в ответы API без изменений,
// поэтому формулировки фиксированы.
var (
	// ErrAllFieldsRequired — не заполнено одно из обязательных полей регистрации.
	ErrAllFieldsRequired = errors.New("All fields are required")
	// ErrInvalidEmail — email не соответствует требуемому формату.
	ErrInvalidEmail = errors.New("Invalid email format")
	// ErrPasswordTooShort — пароль короче 8 символов.
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters long")
	// ErrPasswordNoLetter — в пароле нет ни одной буквы.
	ErrPasswordNoLetter = errors.New("Password must contain at least one letter")
	// ErrPasswordNoDigit — в пароле нет ни одной цифры.
	ErrPasswordNoDigit = errors.New("Password must contain at least one number")
	// ErrEmailTaken — email уже зарегистрирован (без учёта регистра).
	ErrEmailTaken = errors.New("Email already registered")
	// ErrUsernameTaken — имя пользователя уже занято (без учёта регистра).
	ErrUsernameTaken = errors.New("Username already taken")
	// ErrInvalidCredentials — неверный email либо пароль. Ответ одинаков для
	// обоих случаев, чтобы нельзя было перебирать учётные записи.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrInvalidUserID — идентификатор пользователя имеет неверный формат.
	ErrInvalidUserID = errors.New("Invalid user ID")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("User not found")
	// ErrAlreadyInFavorites — добавление не изменило документ: дубликат либо
	// пользователя нет. Хранилище эти случаи не различает.
	ErrAlreadyInFavorites = errors.New("Already in favorites or user not found")
	// ErrFavoriteNotFound — удаление не изменило документ: совпадений нет либо
	// пользователя нет.
	ErrFavoriteNotFound = errors.New("Favorite not found or user not found")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// FindUserByEmail возвращает пользователя по email; при отсутствии
	// ошибка оборачивает sql.ErrNoRows.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ExistsEmail проверяет наличие пользователя с данным email.
	ExistsEmail(ctx context.Context, email string) (bool, error)

	// ExistsUsername проверяет наличие пользователя с данным именем в нижнем регистре.
	ExistsUsername(ctx context.Context, usernameLower string) (bool, error)

	// UpdateLastLogin обновляет дату последнего входа.
	UpdateLastLogin(ctx context.Context, userUID string) error

	// AddFavorite добавляет снимок события, возвращает количество изменённых строк.
	AddFavorite(ctx context.Context, userUID string, favorite models.Favorite) (int64, error)

	// RemoveFavorite удаляет снимки с данным event_id, возвращает количество изменённых строк.
	RemoveFavorite(ctx context.Context, userUID, eventID string) (int64, error)

	// GetFavorites возвращает избранное пользователя; при отсутствии
	// пользователя ошибка оборачивает sql.ErrNoRows.
	GetFavorites(ctx context.Context, userUID string) ([]models.Favorite, error)
}

// UserService отвечает за регистрацию, вход и избранные события пользователей.
type UserService struct {
	users UserRepository
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		users: users,
		log:   log,
	}
}

// Register создает нового пользователя и возвращает его публичную проекцию.
//
// Email и имя пользователя уникальны без учёта регистра; при конфликте обоих
// полей сообщается о конфликте email — проверка email выполняется первой.
func (s *UserService) Register(ctx context.Context, username, email, rawPassword string) (*models.UserPublic, error) {
	const op = "services.user.Register"

	if username == "" || email == "" || rawPassword == "" {
		return nil, ErrAllFieldsRequired
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(rawPassword); err != nil {
		return nil, err
	}

	emailLower := strings.ToLower(email)
	usernameLower := strings.ToLower(username)

	taken, err := s.users.ExistsEmail(ctx, emailLower)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return nil, ErrEmailTaken
	}
	taken, err = s.users.ExistsUsername(ctx, usernameLower)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Username:      username,
		UsernameLower: usernameLower,
		Email:         emailLower,
		PasswordHash:  hashed,
		Favorites:     []models.Favorite{},
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registered new user", slog.String("uid", uid))
	return &models.UserPublic{
		ID:        uid,
		Username:  username,
		Email:     emailLower,
		Favorites: []models.Favorite{},
	}, nil
}

// Login проверяет учётные данные и возвращает публичную проекцию пользователя.
//
// Отсутствие пользователя и неверный пароль дают один и тот же результат:
// при отсутствии выполняется сравнение с фиктивным хэшем, чтобы время ответа
// не отличалось.
func (s *UserService) Login(ctx context.Context, email, rawPassword string) (*models.UserPublic, error) {
	const op = "services.user.Login"

	user, err := s.users.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = password.Compare(password.DummyHash, rawPassword)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.UID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user logged in", slog.String("uid", user.UID))
	pub := user.Public()
	return &pub, nil
}

// AddFavorite добавляет снимок события в избранное пользователя.
//
// Возвращает ErrAlreadyInFavorites, если документ не изменился: структурно
// идентичный снимок уже есть либо пользователя нет — различить эти случаи
// нельзя.
func (s *UserService) AddFavorite(ctx context.Context, userID string, event models.EventPayload) error {
	const op = "services.user.AddFavorite"

	if _, err := uuid.Parse(userID); err != nil {
		return ErrInvalidUserID
	}

	favorite := models.Favorite{
		EventID: event.ID,
		Name:    event.Name,
		Date:    event.Date,
		Venue:   event.Venue,
		Image:   event.Image,
		AddedAt: time.Now().UTC(),
	}
	count, err := s.users.AddFavorite(ctx, userID, favorite)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return ErrAlreadyInFavorites
	}
	return nil
}

// RemoveFavorite удаляет из избранного пользователя все снимки с данным event_id.
//
// Возвращает ErrFavoriteNotFound, если документ не изменился.
func (s *UserService) RemoveFavorite(ctx context.Context, userID, eventID string) error {
	const op = "services.user.RemoveFavorite"

	if _, err := uuid.Parse(userID); err != nil {
		return ErrInvalidUserID
	}

	count, err := s.users.RemoveFavorite(ctx, userID, eventID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// GetFavorites возвращает избранные события пользователя.
func (s *UserService) GetFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	const op = "services.user.GetFavorites"

	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrInvalidUserID
	}

	favorites, err := s.users.GetFavorites(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return favorites, nil
}

// validatePassword проверяет требования к паролю: не короче 8 символов,
// хотя бы одна буква и хотя бы одна цифра.
func validatePassword(rawPassword string) error {
	if len(rawPassword) < 8 {
		return ErrPasswordTooShort
	}
	var hasLetter, hasDigit bool
	for _, r := range rawPassword {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return ErrPasswordNoLetter
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}
	return nil
}
