package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"

	"quiz-service/internal/config"
	"quiz-service/internal/httpapi"
	"quiz-service/internal/quiz"
	"quiz-service/internal/storage"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides ADDR)")
	driver := flag.String("db-driver", "", "store backend, sqlite or postgres (overrides DB_DRIVER)")
	dbPath := flag.String("db-path", "", "SQLite database file (overrides DB_PATH)")
	seedDemo := flag.Bool("seed-demo", false, "create the demo quizzes when the store is empty (overrides SEED_DEMO)")
	accessLog := flag.Bool("access-log", true, "write a combined access log to stderr")
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load()
	if err != nil {
		glog.Exitf("load config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "db-driver":
			cfg.DBDriver = *driver
		case "db-path":
			cfg.DBPath = *dbPath
		case "seed-demo":
			cfg.SeedDemo = *seedDemo
		}
	})
	if err := cfg.Validate(); err != nil {
		glog.Exitf("invalid config: %v", err)
	}

	store, err := storage.Open(cfg)
	if err != nil {
		glog.Exitf("open store: %v", err)
	}
	defer store.Close()

	service := quiz.NewService(store)
	if cfg.SeedDemo {
		if err := service.SeedDemo(context.Background()); err != nil {
			glog.Exitf("seed demo quizzes: %v", err)
		}
	}

	server := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.NewRouter(httpapi.NewAPI(service, cfg.DefaultUserID), httpapi.Options{
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: cfg.RequestTimeout,
			AccessLog:      *accessLog,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		glog.Infof("quiz-service listening on %s", cfg.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			glog.Errorf("server failed: %v", err)
		}
	case <-ctx.Done():
		glog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			glog.Errorf("graceful shutdown failed: %v", err)
		}
	}
}
