// Command capture extracts a job posting from a page and posts it to the
// JobFlow sink.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"jobflow-engine/internal/assemble"
	"jobflow-engine/internal/batch"
	"jobflow-engine/internal/config"
	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/events"
	"jobflow-engine/internal/host"
	"jobflow-engine/internal/httpapi"
	"jobflow-engine/internal/logging"
	"jobflow-engine/internal/page"
	"jobflow-engine/internal/submit"
)

type options struct {
	configPath string
	url        string
	file       string
	pageURL    string
	browser    bool
	batchFile  string
	stage      string
	notes      string
	dryRun     bool
	explain    bool
	statusAddr string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "config.yml", "config file (missing is fine)")
	fs.StringVar(&o.url, "url", "", "posting URL to fetch")
	fs.StringVar(&o.file, "file", "", "saved HTML of a posting")
	fs.StringVar(&o.pageURL, "page-url", "", "URL the -file was saved from")
	fs.BoolVar(&o.browser, "browser", false, "load pages in headless Chromium instead of plain HTTP")
	fs.StringVar(&o.batchFile, "batch", "", "file with one posting URL per line")
	fs.StringVar(&o.stage, "stage", "", "stage label (default from config)")
	fs.StringVar(&o.notes, "notes", "", "free-text notes")
	fs.BoolVar(&o.dryRun, "dry-run", false, "print the record as JSON instead of sending it")
	fs.BoolVar(&o.explain, "explain", false, "print where each field came from")
	fs.StringVar(&o.statusAddr, "status-addr", "", "serve status updates as SSE on this address, e.g. 127.0.0.1:8090")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	sources := 0
	for _, set := range []bool{o.url != "", o.file != "", o.batchFile != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return o, errors.New("use only one of -url, -file, -batch")
	}
	if o.browser && o.file != "" {
		return o, errors.New("-browser reads live pages; it can't be combined with -file")
	}
	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	config.LoadDotEnv()
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed (%s): %v\n", opts.configPath, err)
		os.Exit(1)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)

	log := logging.NewDevelopment(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	for _, w := range vr.Warnings {
		log.Warn("config warning", "warning", w)
	}
	if !vr.OK() {
		log.Error("invalid config", "errors", vr.Errors)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ok, err := run(ctx, cfg, opts, log, os.Stdout, os.Stderr)
	if err != nil {
		log.Error("capture failed", "err", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

// run performs the capture(s) and reports whether every one was sent.
func run(ctx context.Context, cfg config.Config, opts options, log *logging.Logger, stdout, stderr io.Writer) (bool, error) {
	asm := assemble.New(assemble.Options{DescriptionLimit: cfg.Capture.DescriptionLimit})
	ann := domain.Annotations{Stage: opts.stage, Notes: opts.notes}
	if ann.Stage == "" {
		ann.Stage = cfg.Capture.Stage
	}

	var sender submit.Sender = submit.NewClient(submit.ClientConfig{
		BaseURL: cfg.Sink.BaseURL,
		Timeout: time.Duration(cfg.Sink.TimeoutSeconds) * time.Second,
	})
	if opts.dryRun {
		sender = &dryRunSender{w: stdout}
	}
	pipeline := submit.NewPipeline(sender, submit.MissingTitlePolicy(cfg.Capture.MissingTitle), log)

	hub := events.NewHub()
	if opts.statusAddr != "" {
		stopStatus, err := serveStatus(opts.statusAddr, hub, log)
		if err != nil {
			return false, err
		}
		defer stopStatus()
	}

	// Batch runs are paced by the runner; single fetches by the fetcher.
	limiter := page.NewHostLimiter(cfg.Capture.Batch.ReqPerSec, cfg.Capture.Batch.Burst)
	fetchLimiter := limiter
	if opts.batchFile != "" {
		fetchLimiter = nil
	}
	fetcher := page.NewFetcher(page.FetcherOptions{
		Limiter:   fetchLimiter,
		UserAgent: cfg.Capture.UserAgent,
		Timeout:   time.Duration(cfg.Capture.HTTPTimeoutSeconds) * time.Second,
	})

	var browser *host.Browser
	if opts.browser {
		b, err := host.OpenBrowser(host.BrowserOptions{
			Headless:   cfg.Capture.Browser.Headless,
			NavTimeout: time.Duration(cfg.Capture.Browser.NavTimeoutSeconds) * time.Second,
			UserAgent:  cfg.Capture.UserAgent,
		})
		if err != nil {
			return false, err
		}
		defer b.Close()
		browser = b
	}

	hostFor := func(u string) host.Host {
		if browser != nil {
			return browser.Host(u, asm)
		}
		return host.HTTPHost{URL: u, Fetcher: fetcher, Asm: asm}
	}

	reporterFor := func(u string) submit.Reporter {
		return submit.Reporters{
			linePrinter{w: stderr, prefix: u},
			events.StatusReporter{Hub: hub, RunID: uuid.NewString()},
		}
	}

	if opts.batchFile != "" {
		f, err := os.Open(opts.batchFile)
		if err != nil {
			return false, err
		}
		urls, err := batch.ReadURLs(f)
		_ = f.Close()
		if err != nil {
			return false, fmt.Errorf("read %s: %w", opts.batchFile, err)
		}

		runner := batch.Runner{
			Pipeline:    pipeline,
			HostFor:     hostFor,
			Limiter:     limiter,
			Concurrency: cfg.Capture.Batch.Concurrency,
			Log:         log,
			Reporter:    reporterFor,
		}
		results := runner.Run(ctx, urls, ann)

		allSent := true
		for _, r := range results {
			if opts.explain && r.Outcome.Result != nil {
				writeExplain(stdout, r.URL, *r.Outcome.Result)
			}
			if r.Outcome.Err != nil {
				allSent = false
			}
		}
		sum := batch.Summary(results)
		log.Info("batch done",
			"urls", len(urls),
			"sent", sum[submit.PhaseSent],
			"failed", sum[submit.PhaseFailed],
			"warning", sum[submit.PhaseWarning],
		)
		return allSent, nil
	}

	var h host.Host
	label := opts.url
	switch {
	case opts.file != "":
		label = opts.file
		h = host.FileHost{Path: opts.file, URL: opts.pageURL, Asm: asm}
	case opts.url != "":
		h = hostFor(opts.url)
	default:
		// No page given: the pipeline reports "No active tab found."
		h = host.FileHost{Asm: asm}
	}

	out := pipeline.Run(ctx, h, ann, reporterFor(label))
	if opts.explain && out.Result != nil {
		writeExplain(stdout, label, *out.Result)
	}
	return out.Err == nil, nil
}

// serveStatus exposes hub as /events on addr until the returned func is called.
func serveStatus(addr string, hub *events.Hub, log *logging.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("status listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/events", httpapi.EventsHandler{Hub: hub}.ServeSSE)
	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.RequestID, httpapi.Cors(nil)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("status server stopped", "err", err)
		}
	}()
	log.Info("status stream", "url", "http://"+ln.Addr().String()+"/events")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
