// server is the to-do backend binary: REST API over an in-memory store with
// analytics, time tracking and a WebSocket event feed.
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

	"github.com/fatih/color"

	"zerim-todo/internal/api"
	"zerim-todo/internal/config"
	"zerim-todo/internal/events"
	"zerim-todo/internal/logging"
	"zerim-todo/internal/store"
	"zerim-todo/internal/tasks"
	"zerim-todo/internal/templates"
	"zerim-todo/internal/timetracking"
)

func main() {
	var (
		addr  = flag.String("addr", "", "listen address (overrides ZERIM_HOST/ZERIM_PORT)")
		quiet = flag.Bool("quiet", false, "suppress the startup banner")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(
		logging.ParseLogLevel(cfg.Logging.Level),
		cfg.Logging.Format == "json",
	)
	logging.SetDefaultLogger(logger)

	listenAddr := cfg.Address()
	if *addr != "" {
		listenAddr = *addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger, listenAddr, !*quiet); err != nil {
		logger.Fatal("server exited", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger, addr string, banner bool) error {
	var memStore *store.MemoryStore
	if cfg.Store.SeedDefaults {
		memStore = store.NewSeededStore()
	} else {
		memStore = store.NewMemoryStore()
	}

	taskService := tasks.NewService(memStore)
	templateService := templates.NewService(memStore, taskService)
	timeService := timetracking.NewService(memStore)

	hub := events.NewHub(logger)
	go hub.Run(ctx)

	router := api.NewRouter(api.Deps{
		Config:       cfg,
		Logger:       logger,
		Store:        memStore,
		Tasks:        taskService,
		Templates:    templateService,
		TimeTracking: timeService,
		Hub:          hub,
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if banner {
		printBanner(addr)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// printBanner writes the human-facing startup summary to stdout. Structured
// logs carry the same information for machines.
func printBanner(addr string) {
	title := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgGreen)

	_, _ = title.Println("zerim-todo server")
	_, _ = label.Printf("  API:       http://%s/api\n", addr)
	_, _ = label.Printf("  Events:    ws://%s/ws\n", addr)
	_, _ = label.Printf("  Health:    http://%s/api/health\n", addr)
	_, _ = label.Printf("  Heartbeat: http://%s/ping\n", addr)
}
