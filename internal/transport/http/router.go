package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Markus2025/nottinghamdemo/internal/transport/http/handler"
	customMiddleware "github.com/Markus2025/nottinghamdemo/internal/transport/http/middleware"
)

// RouterConfig содержит конфигурацию для роутера
type RouterConfig struct {
	AuthHandler       *handler.AuthHandler
	ListingHandler    *handler.ListingHandler
	TeamHandler       *handler.TeamHandler
	MessageHandler    *handler.MessageHandler
	FavoriteHandler   *handler.FavoriteHandler
	HealthHandler     *handler.HealthHandler
	StatisticsHandler *handler.StatisticsHandler
	JWTSecret         string
	Logger            *zap.Logger
}

// NewRouter создает и настраивает роутер
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	auth := customMiddleware.Auth(cfg.JWTSecret)

	// Health check
	r.Get("/health", cfg.HealthHandler.Check)

	// Statistics
	r.Get("/statistics", cfg.StatisticsHandler.GetStatistics)

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/auth/login", cfg.AuthHandler.Login)
		r.With(auth).Post("/auth/refresh", cfg.AuthHandler.RefreshToken)
		r.With(auth).Put("/user/profile", cfg.AuthHandler.UpdateProfile)

		// Properties (публичный каталог)
		r.Get("/properties", cfg.ListingHandler.ListListings)
		r.Get("/properties/{propertyID}", cfg.ListingHandler.GetListing)

		// Favorites
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/favorites", cfg.FavoriteHandler.GetFavorites)
			r.Post("/favorites", cfg.FavoriteHandler.AddFavorite)
			r.Delete("/favorites/{propertyID}", cfg.FavoriteHandler.RemoveFavorite)
		})

		// Teams
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/teams", cfg.TeamHandler.CreateTeam)
			r.Get("/teams", cfg.TeamHandler.ListTeams)
			// /my должен матчиться раньше параметра {teamID}
			r.Get("/teams/my", cfg.TeamHandler.GetMyTeam)
			r.Get("/teams/{teamID}", cfg.TeamHandler.GetTeamDetail)
			r.Post("/teams/{teamID}/join", cfg.TeamHandler.JoinTeam)
			r.Delete("/teams/{teamID}/leave", cfg.TeamHandler.LeaveTeam)
			r.Put("/teams/{teamID}/members/{userID}/note", cfg.TeamHandler.UpdateMemberNote)
			r.Get("/teams/{teamID}/messages", cfg.MessageHandler.ListMessages)
			r.Post("/teams/{teamID}/messages", cfg.MessageHandler.SendMessage)
		})
	})

	return r
}
