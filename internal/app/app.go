package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/vidfriends/mediafinders/internal/config"
	"github.com/vidfriends/mediafinders/internal/db"
	"github.com/vidfriends/mediafinders/internal/embeds"
	"github.com/vidfriends/mediafinders/internal/handlers"
	"github.com/vidfriends/mediafinders/internal/httpserver"
	"github.com/vidfriends/mediafinders/internal/logging"
	"github.com/vidfriends/mediafinders/internal/middleware"
)

// Run bootstraps the media finder application.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected command: serve, migrate, seed, or iframe")
	}

	switch args[0] {
	case "serve":
		return serve(ctx)
	case "migrate":
		return runMigrations(ctx, os.Stdout, args[1:])
	case "seed":
		return runSeed(ctx, os.Stdout, args[1:])
	case "iframe":
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return runIFrame(os.Stdout, buildRegistry(cfg, newHTTPClient(cfg)), args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	deps, err := buildDependencies(ctx, pool, cfg)
	if err != nil {
		return err
	}
	deps.Database = pool

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps)

	handler := middleware.RequestLogger(logger)(mux)

	// Creating a document chains a feed fetch, a thumbnail download and an upload.
	srv := httpserver.New(cfg.AppPort, handler, 3*cfg.HTTPTimeout+5*time.Second)

	logger.Info("starting http server", "port", cfg.AppPort, "platforms", deps.Embeds.Platforms())

	return httpserver.Run(ctx, srv, logger)
}

// runIFrame prints the player markup for `iframe <platform> <id> [key=value...]`.
func runIFrame(w io.Writer, registry handlers.EmbedRegistry, args []string) error {
	if len(args) < 2 {
		return errors.New("expected platform and embed id")
	}

	raw := make(map[string]string, len(args)-2)
	for _, arg := range args[2:] {
		key, value, _ := strings.Cut(arg, "=")
		raw[key] = value
	}

	opts, err := embeds.ResolveIFrameOptions(raw)
	if err != nil {
		return err
	}

	finder, err := registry.Finder(args[0], args[1])
	if err != nil {
		return err
	}

	markup, err := finder.IFrame(opts)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, markup)
	return err
}
