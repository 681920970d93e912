package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from files into the process env.
// Existing env vars win; missing files are skipped.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Load(f)
	}
}

func ApplyEnv(cfg *Config) {
	if v := env("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := env("JOBFLOW_DB"); v != "" {
		cfg.Server.DBFile = v
	}
	if v := env("JOBFLOW_DATA_DIR"); v != "" {
		cfg.Server.DataDir = v
	}
	if v := env("JOBFLOW_SINK_URL"); v != "" {
		cfg.Sink.BaseURL = v
	}
	if v := env("JOBFLOW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := env("JOBFLOW_MISSING_TITLE"); v != "" {
		cfg.Capture.MissingTitle = strings.ToLower(v)
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
