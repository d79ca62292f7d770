package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"couple-schedule-manager/config"
	_ "couple-schedule-manager/docs" // Swagger docs
	assistantHTTP "couple-schedule-manager/internal/assistant/delivery/http"
	assistantUC "couple-schedule-manager/internal/assistant/usecase"
	"couple-schedule-manager/internal/httpserver"
	"couple-schedule-manager/internal/middleware"
	taskRepo "couple-schedule-manager/internal/task/repository/postgre"
	"couple-schedule-manager/pkg/datemath"
	"couple-schedule-manager/pkg/gcalendar"
	"couple-schedule-manager/pkg/gemini"
	"couple-schedule-manager/pkg/log"
)

// @title       Couple Schedule Manager API
// @description AI assistant for a couple's shared task list, backed by Gemini and Supabase.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Couple Schedule Manager...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Postgres (Supabase)
	db, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		logger.Error(ctx, "Failed to open postgres connection: ", err)
		return
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Error(ctx, "Failed to ping postgres: ", err)
		return
	}

	// 4. Gemini LLM client
	geminiClient := gemini.NewClient(cfg.Gemini.APIKey)
	if cfg.Gemini.Model != "" {
		geminiClient.SetModel(cfg.Gemini.Model)
	}

	// 5. Temporal normalizer
	timezone := cfg.Assistant.Timezone
	normalizer, dtErr := datemath.NewNormalizer(timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, dtErr)
		normalizer, _ = datemath.NewNormalizer("UTC")
		timezone = "UTC"
	}

	// 6. Google Calendar client (optional)
	var calendarClient assistantUC.CalendarClient
	if cfg.GoogleCalendar.CredentialsPath != "" {
		gcal, gcalErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if gcalErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", gcalErr)
			logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
		} else {
			if cfg.GoogleCalendar.CalendarID != "" {
				gcal.SetCalendarID(cfg.GoogleCalendar.CalendarID)
			}
			calendarClient = gcal
			logger.Info(ctx, "✅ Google Calendar initialized")
		}
	}

	// 7. Assistant domain
	repo := taskRepo.New(db, logger)
	uc := assistantUC.New(logger, geminiClient, calendarClient, repo, normalizer, timezone)
	handler := assistantHTTP.New(logger, uc)

	mw := middleware.New(logger, cfg.Assistant.RateLimitPerMin)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:           logger,
		Port:             cfg.HTTPServer.Port,
		Mode:             cfg.HTTPServer.Mode,
		Environment:      cfg.Environment.Name,
		Middleware:       mw,
		AssistantHandler: handler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run until SIGINT/SIGTERM
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
