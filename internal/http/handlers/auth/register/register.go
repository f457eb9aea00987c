// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Handler принимает JSON с именем пользователя, email и паролем, валидирует их,
// делегирует регистрацию бизнес-логике и возвращает публичную проекцию
// созданного пользователя.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/event-hub/internal/http/response"
	"github.com/magabrotheeeer/event-hub/internal/lib/sl"
	"github.com/magabrotheeeer/event-hub/internal/models"
	userservice "github.com/magabrotheeeer/event-hub/internal/services/user"
)

// Request — входные данные для регистрации
type Request struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response — тело успешного ответа регистрации.
type Response struct {
	response.Response
	User models.UserPublic `json:"user"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*models.UserPublic, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт нового пользователя. Возвращает публичную проекцию без хэша пароля.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} Response "Пользователь создан"
// @Failure 400 {object} response.Response "Некорректные данные либо конфликт email/имени"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if isClientError(err) {
			log.Info("registration rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Registration failed"))
		return
	}

	log.Info("user registered", slog.String("uid", user.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, Response{
		Response: response.OKWithMessage("User registered successfully"),
		User:     *user,
	})
}

// isClientError отличает ошибки, вызванные данными запроса, от внутренних.
func isClientError(err error) bool {
	for _, target := range []error{
		userservice.ErrAllFieldsRequired,
		userservice.ErrInvalidEmail,
		userservice.ErrPasswordTooShort,
		userservice.ErrPasswordNoLetter,
		userservice.ErrPasswordNoDigit,
		userservice.ErrEmailTaken,
		userservice.ErrUsernameTaken,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
