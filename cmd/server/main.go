package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aanerud/Reddit-MCP/internal/aggregate"
	"github.com/Aanerud/Reddit-MCP/internal/api"
	"github.com/Aanerud/Reddit-MCP/internal/collector"
	"github.com/Aanerud/Reddit-MCP/internal/config"
	"github.com/Aanerud/Reddit-MCP/internal/dashboard"
	"github.com/Aanerud/Reddit-MCP/internal/filter"
	"github.com/Aanerud/Reddit-MCP/internal/mcp"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

// Over-fetch multiplier for the topic fan-out: each subreddit's quota
// of raw candidates before filtering.
const overfetch = 3

func main() {
	// 1. Setup
	godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	// 2. Reddit client (fails fast when credentials are wholly absent)
	client, err := collector.New(collector.Config{
		Mode:      cfg.CollectorMode,
		ID:        cfg.RedditClientID,
		Secret:    cfg.RedditClientSecret,
		Username:  cfg.RedditUsername,
		Password:  cfg.RedditPassword,
		UserAgent: cfg.RedditUserAgent,
	})
	if err != nil {
		logger.Error("Failed to initialize reddit client", "error", err)
		os.Exit(1)
	}
	logger.Info("Reddit client initialized", "mode", cfg.CollectorMode)

	agg := aggregate.New(client, filter.ByName(cfg.FilterPolicy), cfg.TopicFile, overfetch)

	// 3. HTTP surfaces
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())

	handler := api.NewHandler(client, agg, cfg.MCPAPIKey != "")

	var mcpHandler gin.HandlerFunc
	if cfg.MCPAPIKey != "" {
		mcpHandler = mcp.NewServer(client, agg).HandleHTTP
		logger.Info("MCP endpoint mounted at /mcp (API key authentication enabled)")
	} else {
		logger.Warn("MCP_API_KEY not set - MCP endpoint is DISABLED")
	}

	api.SetupRoutes(router, handler, mcpHandler, cfg.MCPAPIKey, func(r *gin.Engine) {
		r.GET("/dashboard", dashboard.Handler(agg))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "err", err)
			os.Exit(1)
		}
	}()

	// 4. Graceful Shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "err", err)
	}
}
