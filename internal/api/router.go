package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lromero/authgate-be/internal/api/handlers"
	"github.com/lromero/authgate-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(authService services.AuthServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the SPA frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(authService)

	r.Route("/api", func(r chi.Router) {
		// Authentication and verification endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/user", authHandler.Authenticate)
			r.Get("/verify-token", authHandler.VerifyToken)
			r.Get("/verify-role", authHandler.VerifyRole)
		})

		// User administration endpoints. Access is gated by the frontend;
		// the API itself keeps the original contract of boolean outcomes.
		r.Route("/admin/user", func(r chi.Router) {
			r.Post("/create", adminHandler.CreateUser)
			r.Post("/delete", adminHandler.DeleteUser)
			r.Get("/list", adminHandler.ListUsers)
			r.Post("/update-password", adminHandler.UpdatePassword)
		})
	})

	return r
}
