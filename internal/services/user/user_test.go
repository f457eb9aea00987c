package services_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/event-hub/internal/lib/password"
	"github.com/magabrotheeeer/event-hub/internal/models"
	services "github.com/magabrotheeeer/event-hub/internal/services/user"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ExistsEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) ExistsUsername(ctx context.Context, usernameLower string) (bool, error) {
	args := m.Called(ctx, usernameLower)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) UpdateLastLogin(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func (m *UserRepoMock) AddFavorite(ctx context.Context, userUID string, favorite models.Favorite) (int64, error) {
	args := m.Called(ctx, userUID, favorite)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) RemoveFavorite(ctx context.Context, userUID, eventID string) (int64, error) {
	args := m.Called(ctx, userUID, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) GetFavorites(ctx context.Context, userUID string) ([]models.Favorite, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Favorite), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		password   string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:     "successful registration",
			username: "TestUser",
			email:    "Test@Example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("ExistsEmail", mock.Anything, "test@example.com").Return(false, nil).Once()
				r.On("ExistsUsername", mock.Anything, "testuser").Return(false, nil).Once()
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Username == "TestUser" &&
						user.UsernameLower == "testuser" &&
						user.Email == "test@example.com" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "password123"
				})).Return("some-uuid-string", nil).Once()
			},
			wantErr: nil,
		},
		{
			name:       "empty username",
			username:   "",
			email:      "test@example.com",
			password:   "password123",
			setupMocks: func(r *UserRepoMock) {},
			wantErr:    services.ErrAllFieldsRequired,
		},
		{
			name:       "empty password",
			username:   "testuser",
			email:      "test@example.com",
			password:   "",
			setupMocks: func(r *UserRepoMock) {},
			wantErr:    services.ErrAllFieldsRequired,
		},
		{
			name:       "invalid email format",
			username:   "testuser",
			email:      "not-an-email",
			password:   "password123",
			setupMocks: func(r *UserRepoMock) {},
			wantErr:    services.ErrInvalidEmail,
		},
		{
			name:       "email without dot in domain",
			username:   "testuser",
			email:      "user@localhost",
			password:   "password123",
			setupMocks: func(r *UserRepoMock) {},
			wantErr:    services.ErrInvalidEmail,
		},
		{
			name:       "password too short",
			username:   "testuser",
			email:      "test@example.com",
			password:   "abc1234",
			setupMocks: func(r *UserRepoMock) {},
			wantErr:    services.ErrPasswordTooShort,
		},
		{
			name:       "password without letters",
			username:   "testuser",
			email:      "test@example.com",
			password:   "12345678",
			setupMocks: func(r *UserRepoMock) {},
			wantErr:    services.ErrPasswordNoLetter,
		},
		{
			name:       "password without digits",
			username:   "testuser",
			email:      "test@example.com",
			password:   "abcdefgh",
			setupMocks: func(r *UserRepoMock) {},
			wantErr:    services.ErrPasswordNoDigit,
		},
		{
			name:     "email already registered",
			username: "testuser",
			email:    "test@example.com",
			password: "abcdefg1",
			setupMocks: func(r *UserRepoMock) {
				r.On("ExistsEmail", mock.Anything, "test@example.com").Return(true, nil).Once()
			},
			wantErr: services.ErrEmailTaken,
		},
		{
			name:     "email conflict reported before username conflict",
			username: "takenuser",
			email:    "taken@example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock) {
				// ExistsUsername не вызывается вовсе
				r.On("ExistsEmail", mock.Anything, "taken@example.com").Return(true, nil).Once()
			},
			wantErr: services.ErrEmailTaken,
		},
		{
			name:     "username already taken",
			username: "TakenUser",
			email:    "new@example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("ExistsEmail", mock.Anything, "new@example.com").Return(false, nil).Once()
				r.On("ExistsUsername", mock.Anything, "takenuser").Return(true, nil).Once()
			},
			wantErr: services.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := services.NewUserService(repo, newNoopLogger())

			got, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "some-uuid-string", got.ID)
				assert.Equal(t, "TestUser", got.Username)
				assert.Equal(t, "test@example.com", got.Email)
				assert.Equal(t, []models.Favorite{}, got.Favorites)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_Register_RepositoryError(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("ExistsEmail", mock.Anything, mock.Anything).Return(false, errors.New("db error")).Once()
	svc := services.NewUserService(repo, newNoopLogger())

	got, err := svc.Register(context.Background(), "testuser", "test@example.com", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
	assert.Nil(t, got)
	repo.AssertExpectations(t)
}

func TestUserService_Login(t *testing.T) {
	rawPassword := "correctpass1"
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	testUser := &models.User{
		UID:          "11111111-1111-1111-1111-111111111111",
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: hashed,
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock) {
				r.On("FindUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				r.On("UpdateLastLogin", mock.Anything, testUser.UID).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name:     "email matched case-insensitively",
			email:    "TEST@Example.COM",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock) {
				r.On("FindUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				r.On("UpdateLastLogin", mock.Anything, testUser.UID).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name:     "unknown email",
			email:    "missing@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock) {
				r.On("FindUserByEmail", mock.Anything, "missing@example.com").
					Return(nil, fmt.Errorf("storage.repository.FindUserByEmail: %w", sql.ErrNoRows)).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrongpass1",
			setupMocks: func(r *UserRepoMock) {
				r.On("FindUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := services.NewUserService(repo, newNoopLogger())

			got, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testUser.UID, got.ID)
				assert.Equal(t, testUser.Username, got.Username)
			}

			repo.AssertExpectations(t)
		})
	}
}

// Неизвестный email и неверный пароль дают одно и то же значение ошибки.
func TestUserService_Login_ErrorsIndistinguishable(t *testing.T) {
	hashed, err := password.Hash("correctpass1")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	testUser := &models.User{UID: "uid", Email: "test@example.com", PasswordHash: hashed}

	repo := new(UserRepoMock)
	repo.On("FindUserByEmail", mock.Anything, "missing@example.com").
		Return(nil, fmt.Errorf("storage.repository.FindUserByEmail: %w", sql.ErrNoRows)).Once()
	repo.On("FindUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
	svc := services.NewUserService(repo, newNoopLogger())

	_, errNoUser := svc.Login(context.Background(), "missing@example.com", "whatever12")
	_, errBadPass := svc.Login(context.Background(), "test@example.com", "wrongpass1")

	assert.Equal(t, errNoUser, errBadPass)
	repo.AssertExpectations(t)
}

func TestUserService_AddFavorite(t *testing.T) {
	userID := "22222222-2222-2222-2222-222222222222"
	payload := models.EventPayload{
		ID:    "ev123",
		Name:  "Some Concert",
		Date:  "2026-01-01T20:00:00Z",
		Venue: "Some Arena",
		Image: "https://img.example.com/1.jpg",
	}

	tests := []struct {
		name       string
		userID     string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:   "successful add",
			userID: userID,
			setupMocks: func(r *UserRepoMock) {
				r.On("AddFavorite", mock.Anything, userID, mock.MatchedBy(func(f models.Favorite) bool {
					return f.EventID == "ev123" &&
						f.Name == "Some Concert" &&
						f.Venue == "Some Arena" &&
						!f.AddedAt.IsZero()
				})).Return(int64(1), nil).Once()
			},
			wantErr: nil,
		},
		{
			name:       "invalid user id",
			userID:     "not-a-uuid",
			setupMocks: func(r *UserRepoMock) {},
			wantErr:    services.ErrInvalidUserID,
		},
		{
			name:   "duplicate or missing user",
			userID: userID,
			setupMocks: func(r *UserRepoMock) {
				r.On("AddFavorite", mock.Anything, userID, mock.Anything).Return(int64(0), nil).Once()
			},
			wantErr: services.ErrAlreadyInFavorites,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := services.NewUserService(repo, newNoopLogger())

			err := svc.AddFavorite(context.Background(), tt.userID, payload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_RemoveFavorite(t *testing.T) {
	userID := "22222222-2222-2222-2222-222222222222"

	tests := []struct {
		name       string
		userID     string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:   "successful remove",
			userID: userID,
			setupMocks: func(r *UserRepoMock) {
				r.On("RemoveFavorite", mock.Anything, userID, "ev123").Return(int64(1), nil).Once()
			},
			wantErr: nil,
		},
		{
			name:       "invalid user id",
			userID:     "42",
			setupMocks: func(r *UserRepoMock) {},
			wantErr:    services.ErrInvalidUserID,
		},
		{
			name:   "favorite not found",
			userID: userID,
			setupMocks: func(r *UserRepoMock) {
				r.On("RemoveFavorite", mock.Anything, userID, "ev123").Return(int64(0), nil).Once()
			},
			wantErr: services.ErrFavoriteNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := services.NewUserService(repo, newNoopLogger())

			err := svc.RemoveFavorite(context.Background(), tt.userID, "ev123")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetFavorites(t *testing.T) {
	userID := "33333333-3333-3333-3333-333333333333"
	favorites := []models.Favorite{
		{EventID: "ev1", Name: "First"},
		{EventID: "ev2", Name: "Second"},
	}

	tests := []struct {
		name       string
		userID     string
		setupMocks func(r *UserRepoMock)
		want       []models.Favorite
		wantErr    error
	}{
		{
			name:   "successful get",
			userID: userID,
			setupMocks: func(r *UserRepoMock) {
				r.On("GetFavorites", mock.Anything, userID).Return(favorites, nil).Once()
			},
			want:    favorites,
			wantErr: nil,
		},
		{
			name:       "invalid user id",
			userID:     "not-a-uuid",
			setupMocks: func(r *UserRepoMock) {},
			wantErr:    services.ErrInvalidUserID,
		},
		{
			name:   "user not found",
			userID: userID,
			setupMocks: func(r *UserRepoMock) {
				r.On("GetFavorites", mock.Anything, userID).
					Return(nil, fmt.Errorf("storage.repository.GetFavorites: %w", sql.ErrNoRows)).Once()
			},
			wantErr: services.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := services.NewUserService(repo, newNoopLogger())

			got, err := svc.GetFavorites(context.Background(), tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			repo.AssertExpectations(t)
		})
	}
}
