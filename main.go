package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/edibridge/onboard/internal/webserver"
)

var (
	development bool

	port          string
	publicURL     string
	apiBaseURL    string
	adminPassword string
	dbPath        string
)

func main() {
	// If we are in development environment or not
	flag.BoolVar(&development, "dev", false, "Development mode")

	// The port and public URL for the onboarding form server
	flag.StringVar(&port, "port", "8080", "Port for the onboarding server")
	flag.StringVar(&publicURL, "public-url", "", "Public URL of the onboarding server")

	// The base URL of the primary onboarding API
	flag.StringVar(&apiBaseURL, "api-url", "", "Base URL of the onboarding API")

	// The password for the submission attempt log screens
	flag.StringVar(&adminPassword, "admin-password", "", "Admin password for the server")

	// Location of the submission attempt log
	flag.StringVar(&dbPath, "db", "./onboard.db", "Path to the attempt log database")

	flag.Parse()

	// Load the .env file, if present. Real deployments set the environment
	// directly, so a missing file is not an error.
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	// Check if we are in development or production.
	// The environment variable takes precedence over the flag
	if strings.ToLower(os.Getenv("ONBOARD_DEVELOPMENT")) == "true" {
		development = true
	}

	// Initialize logging
	level := slog.LevelInfo
	if development {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Say if we are in development or not
	if development {
		slog.Info("Running in development mode")
	} else {
		slog.Info("Running in production mode")
	}

	if os.Getenv("ONBOARD_PORT") != "" {
		port = os.Getenv("ONBOARD_PORT")
	}

	if publicURL == "" {
		publicURL = os.Getenv("ONBOARD_URL")
		if publicURL == "" {
			publicURL = "http://localhost:" + port
		}
	}

	if apiBaseURL == "" {
		apiBaseURL = os.Getenv("API_BASE_URL")
		if apiBaseURL == "" {
			apiBaseURL = "https://api.yourdomain.com/v1"
		}
	}

	// Get admin password from command line (priority) or environment variable
	if adminPassword == "" {
		adminPassword = os.Getenv("ONBOARD_ADMIN_PASSWORD")
		if adminPassword == "" {
			if development {
				adminPassword = "pepe"
			} else {
				slog.Error("Admin password required. Set ONBOARD_ADMIN_PASSWORD environment variable")
				os.Exit(1)
			}
		}
	}

	// Create the configuration. The static credentials for the two outbound
	// integrations come from the environment only; an absent ClickUp token
	// simply disables that integration.
	cfg := webserver.Config{
		Development:   development,
		Port:          port,
		PublicURL:     publicURL,
		APIBaseURL:    apiBaseURL,
		APIKey:        os.Getenv("API_KEY"),
		ClickUpToken:  os.Getenv("CLICKUP_API_TOKEN"),
		ClickUpListID: os.Getenv("CLICKUP_LIST_ID"),
		AdminPassword: adminPassword,
		DatabasePath:  dbPath,
	}

	// Create the web server. This will wire the API clients and the database.
	srv, err := webserver.New(cfg)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received")
		cancel()
	}()

	// Start server
	if err := srv.Start(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
