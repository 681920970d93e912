package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"jobflow-engine/internal/config"
)

// loadConfig reads explicit when given. Otherwise the config lives in the
// bootstrap data dir (JOBFLOW_DATA_DIR or the default) and is created from
// template on first run. Either way server.data_dir in the loaded file, or
// JOBFLOW_DATA_DIR over it, decides where the sink keeps its data.
func loadConfig(explicit, template string) (config.Config, string, error) {
	path := explicit
	if path == "" {
		dir := config.Default().Server.DataDir
		if v := os.Getenv("JOBFLOW_DATA_DIR"); v != "" {
			dir = v
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return config.Config{}, "", fmt.Errorf("data dir: %w", err)
		}
		p, err := config.EnsureUserConfig(dir, template)
		if err != nil {
			return config.Config{}, "", fmt.Errorf("config bootstrap failed: %w", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, fmt.Errorf("config load failed (%s): %w", filepath.Clean(path), err)
	}
	return cfg, path, nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// shutdownHandler stops srv for loopback callers that present the token
// written to <data dir>/sink.token.
func shutdownHandler(token string, srv *http.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}
}
