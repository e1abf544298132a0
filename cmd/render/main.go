package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"portfolio-web/internal/backend"
	"portfolio-web/internal/config"
	"portfolio-web/internal/render"
	"portfolio-web/internal/view"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	out := flag.String("out", "", "archivo de salida (stdout si vacio)")
	backendURL := flag.String("backend", "", "URL base del backend (por defecto BACKEND_URL)")
	verbose := flag.Bool("v", false, "logs de desarrollo en stderr")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadWebConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *backendURL != "" {
		cfg.BackendURL = *backendURL
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}

	code := run(cfg, *out, logger)
	_ = logger.Sync()
	os.Exit(code)
}

func run(cfg *config.WebConfig, out string, logger *zap.Logger) int {
	renderer, err := render.New(render.Options{BaseURL: cfg.BackendURL, AdminURL: cfg.AdminURL})
	if err != nil {
		fmt.Fprintf(os.Stderr, "templates: %v\n", err)
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BackendTimeout+5*time.Second)
	defer cancel()

	v := view.New(backend.NewHTTPClient(cfg.BackendURL, cfg.BackendTimeout, logger), logger)
	first := v.Mount(ctx)
	defer v.Close()

	var st view.State
	select {
	case st = <-first:
	case <-ctx.Done():
		fmt.Fprintf(os.Stderr, "timeout waiting for %s\n", cfg.BackendURL)
		return 1
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", out, err)
			return 2
		}
		defer f.Close()
		w = f
	}

	if err := renderer.Render(w, st); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		return 2
	}

	if st.Status() == view.StatusErrored {
		fmt.Fprintf(os.Stderr, "portfolio load failed: %s\n", st.Err)
		return 1
	}
	return 0
}
