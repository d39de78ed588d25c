package handlers

import (
	"net/http"

	"github.com/brightpine/camp-registry-api/internal/auth"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, registrationHandler *RegistrationHandler, analyticsHandler *AnalyticsHandler, apiKeyHandler *APIKeyHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes (the identity provider does the actual sign-in)
	r.Get("/auth/login", authHandler.HandleLogin)
	r.Get("/auth/callback", authHandler.HandleCallback)

	// Protected API
	r.Route("/api", func(pr chi.Router) {
		pr.Use(authHandler.AuthMiddleware)

		config := huma.DefaultConfig("Camp Registry API", "1.0.0")
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
			"bearerAuth": {
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
			},
			"cookieAuth": {
				Type: "apiKey",
				In:   "cookie",
				Name: "auth_token",
			},
		}
		api := humachi.New(pr, config)

		huma.Get(api, "/me", authHandler.HandleMe)

		huma.Get(api, "/registrations", registrationHandler.HandleList)
		huma.Get(api, "/registrations/paged", registrationHandler.HandlePaged)
		huma.Get(api, "/registrations/by-camp-date", registrationHandler.HandleByCampDate)
		huma.Get(api, "/registrations/search/by-child/{childName}", registrationHandler.HandleSearchByChild)
		huma.Post(api, "/registrations", registrationHandler.HandleCreate)
		huma.Get(api, "/registrations/{registrationId}", registrationHandler.HandleGet)
		huma.Put(api, "/registrations/{registrationId}", registrationHandler.HandleUpdate)
		huma.Delete(api, "/registrations/{registrationId}", registrationHandler.HandleCancel)

		huma.Get(api, "/analytics/revenue", analyticsHandler.HandleRevenue)
		huma.Get(api, "/analytics/daily-capacity", analyticsHandler.HandleDailyCapacity)
		huma.Get(api, "/analytics/cancellations", analyticsHandler.HandleCancellations)
		huma.Get(api, "/analytics/dashboard-summary", analyticsHandler.HandleDashboardSummary)

		huma.Post(api, "/api-keys", apiKeyHandler.HandleCreate)
		huma.Get(api, "/api-keys", apiKeyHandler.HandleList)
		huma.Delete(api, "/api-keys/{id}", apiKeyHandler.HandleDelete)
	})
}
