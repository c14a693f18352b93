package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/pedrohqs/atrio/internal/api"
	"github.com/pedrohqs/atrio/internal/cli"
	"github.com/pedrohqs/atrio/internal/db"
	"github.com/pedrohqs/atrio/internal/feed"
	"github.com/pedrohqs/atrio/internal/i18n"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	dbPath := getEnv("DB_PATH", filepath.Join("data", "atrio.db"))

	if len(os.Args) > 1 && os.Args[1] == "resetadmin" {
		if len(os.Args) < 3 {
			log.Fatal().Msg("usage: atrio resetadmin <email>")
		}
		if err := cli.RunResetAdminCommand(dbPath, os.Args[2]); err != nil {
			log.Fatal().Err(err).Msg("resetadmin failed")
		}
		return
	}

	location := mustLoadLocation(getEnv("TZ", "America/Sao_Paulo"), log)
	time.Local = location

	secretKey := getEnv("SECRET_KEY", "")
	if secretKey == "" {
		log.Fatal().Msg("SECRET_KEY is required")
	}
	port := getEnv("PORT", "8080")
	defaultLanguage := getEnv("DEFAULT_LANGUAGE", "pt")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}
	repos := db.NewRepositories(database)

	i18nManager, err := i18n.NewManager(defaultLanguage, filepath.Join("internal", "i18n", "locales"))
	if err != nil {
		log.Fatal().Err(err).Msg("i18n init failed")
	}

	hub := feed.NewHub(log)
	handler := api.NewHandler(repos, secretKey, location, i18nManager, hub, log)

	app := fiber.New(fiber.Config{
		AppName:               "Atrio",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", port).Str("db", dbPath).Str("tz", location.String()).Msg("Atrio listening")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func mustLoadLocation(name string, log zerolog.Logger) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Str("tz", name).Msg("invalid TZ, falling back to UTC")
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
