package remove

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	userservice "github.com/magabrotheeeer/event-hub/internal/services/user"
)

// Мок сервиса с методом RemoveFavorite
type FavoritesServiceMock struct {
	mock.Mock
}

func (m *FavoritesServiceMock) RemoveFavorite(ctx context.Context, userID, eventID string) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRemoveHandler_ServeHTTP(t *testing.T) {
	userID := "22222222-2222-2222-2222-222222222222"

	tests := []struct {
		name           string
		userID         string
		eventID        string
		setupMocks     func(s *FavoritesServiceMock)
		wantStatusCode int
		wantSuccess    bool
		wantMessage    string
		wantError      string
	}{
		{
			name:    "successful remove",
			userID:  userID,
			eventID: "ev123",
			setupMocks: func(s *FavoritesServiceMock) {
				s.On("RemoveFavorite", mock.Anything, userID, "ev123").Return(nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantSuccess:    true,
			wantMessage:    "Removed from favorites",
		},
		{
			name:    "invalid user id",
			userID:  "not-a-uuid",
			eventID: "ev123",
			setupMocks: func(s *FavoritesServiceMock) {
				s.On("RemoveFavorite", mock.Anything, "not-a-uuid", "ev123").
					Return(userservice.ErrInvalidUserID).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Invalid user ID",
		},
		{
			name:    "favorite not found",
			userID:  userID,
			eventID: "missing",
			setupMocks: func(s *FavoritesServiceMock) {
				s.On("RemoveFavorite", mock.Anything, userID, "missing").
					Return(userservice.ErrFavoriteNotFound).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Favorite not found or user not found",
		},
		{
			name:    "internal error",
			userID:  userID,
			eventID: "ev123",
			setupMocks: func(s *FavoritesServiceMock) {
				s.On("RemoveFavorite", mock.Anything, userID, "ev123").
					Return(errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "Failed to remove favorite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(FavoritesServiceMock)
			tt.setupMocks(svcMock)
			handler := New(newNoopLogger(), svcMock)

			req := httptest.NewRequest(http.MethodDelete, "/api/users/"+tt.userID+"/favorites/"+tt.eventID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.userID)
			rctx.URLParams.Add("eventId", tt.eventID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantSuccess, got["success"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, tt.wantMessage, got["message"])
			}

			svcMock.AssertExpectations(t)
		})
	}
}
