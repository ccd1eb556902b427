package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmcdole/videoclub/internal/config"
	"github.com/mmcdole/videoclub/internal/log"
	"github.com/mmcdole/videoclub/internal/server"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		configPath  string
		listen      string
		mediaRoot   string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&listen, "listen", "", "listen address (overrides backend.listen)")
	flag.StringVar(&mediaRoot, "root", "", "media directory (overrides backend.media_root)")
	flag.Parse()

	if showVersion {
		fmt.Printf("videoclub-server %s\n", Version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if listen != "" {
		cfg.Backend.Listen = listen
	}
	if mediaRoot != "" {
		cfg.Backend.MediaRoot = mediaRoot
	}

	logger := log.ConsoleLogger(os.Stderr, cfg.Logging.Level)

	if fi, err := os.Stat(cfg.Backend.MediaRoot); err != nil || !fi.IsDir() {
		logger.Error("invalid media root", "path", cfg.Backend.MediaRoot)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr: cfg.Backend.Listen,
		Handler: server.NewRouter(server.Options{
			CatalogFile: cfg.Backend.Catalog,
			MediaRoot:   cfg.Backend.MediaRoot,
			RateLimit:   cfg.Backend.RateLimit,
			Logger:      logger,
		}),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// Streams can run for the length of a film
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", "addr", cfg.Backend.Listen, "catalog", cfg.Backend.Catalog, "media_root", cfg.Backend.MediaRoot)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", "error", err)
		_ = srv.Close()
	}
	logger.Info("server stopped", "version", Version)
}
