package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	MissingTitleBlock = "block"
	MissingTitleWarn  = "warn"
)

type Config struct {
	Log struct {
		Level string `yaml:"level" json:"level"`
	} `yaml:"log" json:"log"`

	Capture struct {
		MissingTitle       string `yaml:"missing_title" json:"missing_title"` // block | warn
		Stage              string `yaml:"stage" json:"stage"`
		DescriptionLimit   int    `yaml:"description_limit" json:"description_limit"`
		HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds" json:"http_timeout_seconds"`
		UserAgent          string `yaml:"user_agent" json:"user_agent"`

		Browser struct {
			Headless          bool `yaml:"headless" json:"headless"`
			NavTimeoutSeconds int  `yaml:"nav_timeout_seconds" json:"nav_timeout_seconds"`
		} `yaml:"browser" json:"browser"`

		Batch struct {
			Concurrency int     `yaml:"concurrency" json:"concurrency"`
			ReqPerSec   float64 `yaml:"req_per_sec" json:"req_per_sec"`
			Burst       int     `yaml:"burst" json:"burst"`
		} `yaml:"batch" json:"batch"`
	} `yaml:"capture" json:"capture"`

	Sink struct {
		BaseURL        string `yaml:"base_url" json:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	} `yaml:"sink" json:"sink"`

	Server struct {
		Port          int      `yaml:"port" json:"port"`
		DataDir       string   `yaml:"data_dir" json:"data_dir"`
		DBFile        string   `yaml:"db_file" json:"db_file"`
		RetentionDays int      `yaml:"retention_days" json:"retention_days"`
		CORSOrigins   []string `yaml:"cors_origins" json:"cors_origins"`
	} `yaml:"server" json:"server"`
}

func Default() Config {
	var cfg Config
	cfg.Log.Level = "info"

	cfg.Capture.MissingTitle = MissingTitleBlock
	cfg.Capture.Stage = "Applied"
	cfg.Capture.DescriptionLimit = 2000
	cfg.Capture.HTTPTimeoutSeconds = 20
	cfg.Capture.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
	cfg.Capture.Browser.Headless = true
	cfg.Capture.Browser.NavTimeoutSeconds = 30
	cfg.Capture.Batch.Concurrency = 4
	cfg.Capture.Batch.ReqPerSec = 1.0
	cfg.Capture.Batch.Burst = 2

	cfg.Sink.BaseURL = "http://localhost:8081"
	cfg.Sink.TimeoutSeconds = 15

	cfg.Server.Port = 8081
	cfg.Server.DataDir = "."
	cfg.Server.DBFile = "jobflow.sqlite"
	return cfg
}

// Load reads path over Default() and then applies env overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, err
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, err
		}
	}
	ApplyEnv(&cfg)
	return cfg, nil
}
