// Package eventhub предоставляет сборку и маршруты основного приложения.
package eventhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/event-hub/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/event-hub/internal/http/handlers/auth/register"
	eventget "github.com/magabrotheeeer/event-hub/internal/http/handlers/events/get"
	eventsearch "github.com/magabrotheeeer/event-hub/internal/http/handlers/events/search"
	favoritesadd "github.com/magabrotheeeer/event-hub/internal/http/handlers/favorites/add"
	favoriteslist "github.com/magabrotheeeer/event-hub/internal/http/handlers/favorites/list"
	favoritesremove "github.com/magabrotheeeer/event-hub/internal/http/handlers/favorites/remove"
	"github.com/magabrotheeeer/event-hub/internal/http/handlers/health"
	"github.com/magabrotheeeer/event-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/event-hub/internal/lib/jwt"
	eventservice "github.com/magabrotheeeer/event-hub/internal/services/event"
	userservice "github.com/magabrotheeeer/event-hub/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, users *userservice.UserService, events *eventservice.EventService, jwtMaker jwt.Maker, allowedOrigins []string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}),
	)

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Post("/auth/register", register.New(logger, users).ServeHTTP)
		r.Post("/auth/login", login.New(logger, users, jwtMaker).ServeHTTP)

		r.Get("/events/search", eventsearch.New(logger, events).ServeHTTP)
		r.Get("/events/{id}", eventget.New(logger, events).ServeHTTP)

		r.Get("/users/{id}/favorites", favoriteslist.New(logger, users).ServeHTTP)
		r.Post("/users/{id}/favorites", favoritesadd.New(logger, users).ServeHTTP)
		r.Delete("/users/{id}/favorites/{eventId}", favoritesremove.New(logger, users).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
