package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/event-hub/internal/models"
	userservice "github.com/magabrotheeeer/event-hub/internal/services/user"
)

// Мок сервиса с методом Register
type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) Register(ctx context.Context, username, email, password string) (*models.UserPublic, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPublic), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	registeredUser := &models.UserPublic{
		ID:        "some-uuid-string",
		Username:  "user1",
		Email:     "user1@example.com",
		Favorites: []models.Favorite{},
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(s *UserServiceMock)
		wantStatusCode int
		wantSuccess    bool
		wantMessage    string
		wantError      string
	}{
		{
			name: "valid registration",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			setupMocks: func(s *UserServiceMock) {
				s.On("Register", mock.Anything, "user1", "user1@example.com", "password123").
					Return(registeredUser, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
			wantSuccess:    true,
			wantMessage:    "User registered successfully",
		},
		{
			name: "username and email trimmed before registration",
			requestBody: Request{
				Username: "  user1  ",
				Email:    " user1@example.com ",
				Password: "password123",
			},
			setupMocks: func(s *UserServiceMock) {
				s.On("Register", mock.Anything, "user1", "user1@example.com", "password123").
					Return(registeredUser, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
			wantSuccess:    true,
			wantMessage:    "User registered successfully",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			setupMocks:     func(s *UserServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name: "validation error - missing password",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
			},
			setupMocks:     func(s *UserServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Password is a required field",
		},
		{
			name: "duplicate email",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			setupMocks: func(s *UserServiceMock) {
				s.On("Register", mock.Anything, "user1", "user1@example.com", "password123").
					Return(nil, userservice.ErrEmailTaken).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Email already registered",
		},
		{
			name: "weak password",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
				Password: "short1",
			},
			setupMocks: func(s *UserServiceMock) {
				s.On("Register", mock.Anything, "user1", "user1@example.com", "short1").
					Return(nil, userservice.ErrPasswordTooShort).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Password must be at least 8 characters long",
		},
		{
			name: "internal error",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			setupMocks: func(s *UserServiceMock) {
				s.On("Register", mock.Anything, "user1", "user1@example.com", "password123").
					Return(nil, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "Registration failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(UserServiceMock)
			tt.setupMocks(svcMock)
			handler := New(newNoopLogger(), svcMock)

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantSuccess, got["success"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, tt.wantMessage, got["message"])
				user, ok := got["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "some-uuid-string", user["id"])
				assert.Equal(t, "user1", user["username"])
			}

			svcMock.AssertExpectations(t)
		})
	}
}
