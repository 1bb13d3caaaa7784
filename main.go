package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/pageant/cliparse"
	"github.com/danielhkuo/pageant/db"
	"github.com/danielhkuo/pageant/metrics"
	"github.com/danielhkuo/pageant/middleware"
	"github.com/danielhkuo/pageant/report"
	"github.com/danielhkuo/pageant/router"
	"github.com/danielhkuo/pageant/scoring"
	"github.com/danielhkuo/pageant/seed"
	"github.com/danielhkuo/pageant/store"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	reportMode := len(args) > 0 && args[0] == "report"
	if reportMode {
		args = args[1:]
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	// Open the store
	var st store.Store
	if cfg.DatabaseType == cliparse.DatabaseMemory {
		st = store.NewMemory()
		slog.Warn("using in-memory store; data is lost on exit")
	} else {
		conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database setup failed", "error", err)
			os.Exit(1)
		}
		defer conn.Close()
		st = store.NewSQL(conn, cfg.DatabaseType)
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	svc := scoring.NewService(st, metrics.New(registry))

	ctx := context.Background()
	if cfg.SeedFile != "" {
		f, err := seed.Load(cfg.SeedFile)
		if err != nil {
			slog.Error("seed load failed", "error", err)
			os.Exit(1)
		}
		if _, err := seed.Apply(ctx, svc, f); err != nil {
			slog.Error("seed failed", "error", err)
			os.Exit(1)
		}
	}

	if reportMode {
		res, err := report.Collect(ctx, svc)
		if err != nil {
			slog.Error("report failed", "error", err)
			os.Exit(1)
		}
		report.Render(os.Stdout, res, time.Now())
		return
	}

	mux := router.NewRouter(svc, registry)

	server := http.Server{
		Handler:           middleware.WithRecovery(middleware.CORS(cfg.CORSOrigins)(mux)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}
