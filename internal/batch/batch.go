// Package batch captures many postings concurrently, one pipeline run per URL.
package batch

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/host"
	"jobflow-engine/internal/logging"
	"jobflow-engine/internal/page"
	"jobflow-engine/internal/submit"
)

// Result pairs a URL with what its run produced.
type Result struct {
	URL     string
	Outcome submit.Outcome
}

type Runner struct {
	Pipeline *submit.Pipeline
	// HostFor builds the host that reads one URL.
	HostFor func(url string) host.Host
	// Limiter paces runs per target host; nil disables pacing.
	Limiter     *page.HostLimiter
	Concurrency int
	// Timeout bounds a single run; zero means 2 minutes.
	Timeout time.Duration
	Log     *logging.Logger
	// Reporter, when set, gets every status of every run tagged with its URL.
	Reporter func(url string) submit.Reporter
}

// Run captures every URL and returns results in input order. A failing URL
// never stops the others; only ctx cancellation ends the batch early.
func (r Runner) Run(ctx context.Context, urls []string, ann domain.Annotations) []Result {
	log := r.Log
	if log == nil {
		log = logging.Nop()
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	limit := r.Concurrency
	if limit <= 0 {
		limit = 1
	}

	results := make([]Result, len(urls))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, u := range urls {
		results[i].URL = u
		if ctx.Err() != nil {
			results[i].Outcome = cancelled(ctx.Err())
			continue
		}

		g.Go(func() error {
			if err := r.Limiter.WaitURL(ctx, u); err != nil {
				results[i].Outcome = cancelled(err)
				return nil
			}

			rctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			var rep submit.Reporter
			if r.Reporter != nil {
				rep = r.Reporter(u)
			}

			log.Debug("batch: capturing", "url", u)
			out := r.Pipeline.Run(rctx, r.HostFor(u), ann, rep)
			if out.Err != nil {
				log.Warn("batch: capture failed", "url", u, "status", out.Status.Message)
			}
			results[i].Outcome = out
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func cancelled(err error) submit.Outcome {
	return submit.Outcome{
		Status: submit.Status{Phase: submit.PhaseFailed, Message: "Error: " + err.Error(), Terminal: true},
		Err:    err,
	}
}

// Summary counts results by terminal phase.
func Summary(results []Result) map[submit.Phase]int {
	out := map[submit.Phase]int{}
	for _, r := range results {
		out[r.Outcome.Status.Phase]++
	}
	return out
}

// ReadURLs reads one URL per line, skipping blanks and # comments.
// Duplicates after canonicalization are dropped; first one wins.
func ReadURLs(rd io.Reader) ([]string, error) {
	seen := map[string]bool{}
	var urls []string

	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key := page.CanonicalURL(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		urls = append(urls, line)
	}
	return urls, sc.Err()
}
