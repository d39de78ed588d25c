package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/brightpine/camp-registry-api/internal/auth"
	"github.com/brightpine/camp-registry-api/internal/config"
	"github.com/brightpine/camp-registry-api/internal/database"
	"github.com/brightpine/camp-registry-api/internal/handlers"
	"github.com/brightpine/camp-registry-api/internal/notifier"
	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env before viper reads the environment
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.LoadConfig()

	db := database.Connect(cfg)

	var staffNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord notifier not initialized: %v", err)
		} else {
			staffNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
		}
	}

	authHandler := auth.NewAuthHandler(cfg, db)
	registrationHandler := handlers.NewRegistrationHandler(db, staffNotifier)
	analyticsHandler := handlers.NewAnalyticsHandler(db)
	apiKeyHandler := handlers.NewAPIKeyHandler(db)

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, authHandler, registrationHandler, analyticsHandler, apiKeyHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	log.Printf("Starting server on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
