package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calvinwijaya/blackjack-table/internal/api"
	"github.com/calvinwijaya/blackjack-table/internal/config"
	"github.com/calvinwijaya/blackjack-table/internal/feed"
	"github.com/calvinwijaya/blackjack-table/internal/store"
	"github.com/calvinwijaya/blackjack-table/internal/table"
	"github.com/gorilla/mux"
	"github.com/pterm/pterm"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		pterm.Fatal.Println(err)
	}

	// Parse command line flags
	var (
		port        = flag.String("port", cfg.Port, "Server port")
		frontendURL = flag.String("frontend", cfg.FrontendURL, "Frontend URL for CORS")
		redisURL    = flag.String("redis", cfg.RedisURL, "Redis URL for the table event feed (optional)")
		logLevel    = flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	)
	flag.Parse()
	cfg.LogLevel = *logLevel

	pterm.DefaultLogger.Level = ptermLevel(cfg.Level())
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the store
	tableStore := store.NewMemoryStore()
	logger.Info("in-memory table store initialized")

	// Initialize WebSocket hub
	hub := api.NewHub(logger)
	go hub.Run()
	logger.Info("websocket hub started")

	var tableOpts []table.Option
	if *redisURL != "" {
		pub, err := feed.NewPublisher(*redisURL, logger)
		if err != nil {
			logger.Error("event feed disabled", "error", err)
		} else if err := pub.Ping(ctx); err != nil {
			logger.Warn("event feed disabled, redis unreachable", "error", err)
			pub.Close()
		} else {
			logger.Info("publishing table events to redis")
			defer pub.Close()
			tableOpts = append(tableOpts, table.WithSink(pub.ForTable))
		}
	}

	// Initialize API handlers
	handlers := api.NewHandlers(ctx, tableStore, hub, logger, tableOpts...)

	// Set up router
	r := mux.NewRouter()
	handlers.RegisterRoutes(r)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "uri", r.RequestURI, "took", time.Since(start))
		})
	})

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{*frontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", *port, "frontend", *frontendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}

	// stop sessions still waiting on players
	tables, _ := tableStore.GetAllTables()
	for _, t := range tables {
		t.Close()
	}
}

func ptermLevel(l slog.Level) pterm.LogLevel {
	switch {
	case l <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case l <= slog.LevelInfo:
		return pterm.LogLevelInfo
	case l <= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
