// Command sink is the local JobFlow API that captures are posted to.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"jobflow-engine/internal/config"
	"jobflow-engine/internal/events"
	"jobflow-engine/internal/httpapi"
	"jobflow-engine/internal/logging"
	"jobflow-engine/internal/scheduler"
	"jobflow-engine/internal/store"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default <data dir>/config.yml, created on first run)")
	defaultCfgPath := flag.String("default-config", filepath.Join("config", "config.yml"), "template copied into the data dir on first run")
	flag.Parse()

	config.LoadDotEnv()

	cfg, userCfgPath, err := loadConfig(*cfgPath, *defaultCfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)

	log := logging.New(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	for _, w := range vr.Warnings {
		log.Warn("config warning", "warning", w)
	}
	if !vr.OK() {
		log.Error("invalid config", "path", userCfgPath, "errors", vr.Errors)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("sink stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logging.Logger) error {
	dataDir := cfg.Server.DataDir
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}

	lock := flock.New(filepath.Join(dataDir, "sink.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	if !locked {
		return fmt.Errorf("another sink is already using %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	dbPath := cfg.Server.DBFile
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(dataDir, dbPath)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)

	hub := events.NewHub()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if days := cfg.Server.RetentionDays; days > 0 {
		age := time.Duration(days) * 24 * time.Hour
		go scheduler.Every(ctx, log, 6*time.Hour, "retention", func(ctx context.Context) error {
			n, err := store.CleanupOldApplications(ctx, db.Pool, age)
			if err != nil {
				return err
			}
			if n > 0 {
				log.Info("retention: removed old applications", "count", n, "older_than_days", days)
			}
			return nil
		})
	}

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		Log:         log,
		CfgVal:      &cfgVal,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	token, err := randomToken(16)
	if err != nil {
		return err
	}
	tokenPath := filepath.Join(dataDir, "sink.token")
	if err := os.WriteFile(tokenPath, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write shutdown token: %w", err)
	}
	defer os.Remove(tokenPath)

	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.Handle("/shutdown", shutdownHandler(token, srv))
	srv.Handler = httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover(log),
		httpapi.AccessLog(log),
		httpapi.Cors(cfg.Server.CORSOrigins),
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Info("sink listening", "addr", "http://"+addr, "db", dbPath)

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("sink shut down")
	return nil
}
