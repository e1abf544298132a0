package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"portfolio-web/internal/backend"
	"portfolio-web/internal/config"
	webhttp "portfolio-web/internal/http"
	"portfolio-web/internal/render"
	"portfolio-web/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadWebConfig()
	if err != nil {
		panic(err)
	}
	gin.SetMode(cfg.GinMode)

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	renderer, err := render.New(render.Options{BaseURL: cfg.BackendURL, AdminURL: cfg.AdminURL})
	if err != nil {
		logger.Fatal("templates", zap.Error(err))
	}

	client := backend.NewHTTPClient(cfg.BackendURL, cfg.BackendTimeout, logger)
	portfolioView := view.New(client, logger)
	portfolioView.Mount(ctx)
	defer portfolioView.Close()

	viewHandler := webhttp.NewViewHandler(logger, portfolioView, renderer)
	router := webhttp.NewWebRouter(logger, viewHandler, renderer)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("backend_url", cfg.BackendURL),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
