package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy and the problems found in it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimRight(strings.TrimSpace(x), "/")
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Server.CORSOrigins = trimList(out.Server.CORSOrigins)
	out.Capture.MissingTitle = strings.ToLower(strings.TrimSpace(out.Capture.MissingTitle))
	out.Capture.Stage = strings.TrimSpace(out.Capture.Stage)
	out.Sink.BaseURL = strings.TrimRight(strings.TrimSpace(out.Sink.BaseURL), "/")
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))

	// ---- capture ----

	switch out.Capture.MissingTitle {
	case MissingTitleBlock, MissingTitleWarn:
	case "":
		out.Capture.MissingTitle = MissingTitleBlock
	default:
		res.addErr("capture.missing_title must be %q or %q, got %q", MissingTitleBlock, MissingTitleWarn, out.Capture.MissingTitle)
	}
	if out.Capture.Stage == "" {
		res.addWarn("capture.stage is empty; records will use the default stage.")
	}
	if out.Capture.DescriptionLimit < 1500 || out.Capture.DescriptionLimit > 3000 {
		res.addErr("capture.description_limit must be 1500..3000")
	}
	if out.Capture.HTTPTimeoutSeconds <= 0 {
		res.addErr("capture.http_timeout_seconds must be > 0")
	}
	if out.Capture.Browser.NavTimeoutSeconds <= 0 {
		res.addErr("capture.browser.nav_timeout_seconds must be > 0")
	}
	if out.Capture.Batch.Concurrency <= 0 {
		res.addErr("capture.batch.concurrency must be > 0")
	} else if out.Capture.Batch.Concurrency > 16 {
		res.addWarn("capture.batch.concurrency is high (%d); job boards may throttle you.", out.Capture.Batch.Concurrency)
	}
	if out.Capture.Batch.ReqPerSec <= 0 {
		res.addErr("capture.batch.req_per_sec must be > 0")
	}
	if out.Capture.Batch.Burst <= 0 {
		res.addErr("capture.batch.burst must be > 0")
	}

	// ---- sink ----

	if u, err := url.Parse(out.Sink.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("sink.base_url must be an absolute URL, got %q", out.Sink.BaseURL)
	} else if h := u.Hostname(); h != "localhost" && h != "127.0.0.1" && h != "::1" {
		res.addWarn("sink.base_url points at %s; records will leave this machine.", h)
	}
	if out.Sink.TimeoutSeconds <= 0 {
		res.addErr("sink.timeout_seconds must be > 0")
	}

	// ---- server ----

	if out.Server.Port <= 0 || out.Server.Port > 65535 {
		res.addErr("server.port must be 1..65535")
	}
	if strings.TrimSpace(out.Server.DBFile) == "" {
		res.addErr("server.db_file is required")
	}
	if out.Server.RetentionDays < 0 {
		res.addErr("server.retention_days must be >= 0")
	}

	switch out.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		res.addWarn("log.level %q is unknown; falling back to info.", out.Log.Level)
	}

	return out, res
}

// Validate is NormalizeAndValidate reduced to an error.
func Validate(cfg Config) error {
	_, res := NormalizeAndValidate(cfg)
	if res.OK() {
		return nil
	}
	return fmt.Errorf("config validation failed:\n- %s", strings.Join(res.Errors, "\n- "))
}
