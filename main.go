package main

import (
	"net/http"

	"github.com/FlightLedger/FL-Backend/internal/auth"
	"github.com/FlightLedger/FL-Backend/internal/config"
	"github.com/FlightLedger/FL-Backend/internal/db"
	"github.com/FlightLedger/FL-Backend/internal/flights"
	"github.com/FlightLedger/FL-Backend/internal/logger"
	"github.com/FlightLedger/FL-Backend/internal/middleware"
	"github.com/FlightLedger/FL-Backend/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	cfg := config.Load()
	logger.Init(cfg.LogPretty)

	if err := cfg.Validate(); err != nil {
		logger.L.Fatal().Err(err).Msg("invalid configuration")
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.L.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := auth.Init(gdb); err != nil {
		logger.L.Fatal().Err(err).Msg("failed to migrate auth tables")
	}
	if err := flights.Init(gdb); err != nil {
		logger.L.Fatal().Err(err).Msg("failed to migrate flights table")
	}

	pages, err := web.NewRenderer(cfg.TemplateDir)
	if err != nil {
		logger.L.Fatal().Err(err).Msg("failed to parse templates")
	}

	sessions := auth.NewSessionManager(gdb, cfg.SessionTTL)
	authHandler := &auth.Handler{DB: gdb, Sessions: sessions, Pages: pages}
	flightHandler := &flights.Handler{Store: flights.NewStore(gdb), Pages: pages}
	throttle := middleware.NewLoginThrottle(1, 5)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
	}
	r.Use(middleware.MethodOverride)

	authHandler.Routes(r, throttle.Middleware)
	flightHandler.WebRoutes(r, middleware.RequireLogin(sessions))
	flightHandler.APIRoutes(r, middleware.RequireLoginAPI(sessions))
	r.NotFound(flightHandler.NotFoundPage)

	logger.L.Info().Str("port", cfg.Port).Msg("server listening")
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		logger.L.Fatal().Err(err).Msg("server exited")
	}
}
