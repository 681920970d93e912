package batch

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobflow-engine/internal/assemble"
	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/host"
	"jobflow-engine/internal/logging"
	"jobflow-engine/internal/page"
	"jobflow-engine/internal/submit"
)

type urlHost struct {
	url      string
	inflight *atomic.Int32
	peak     *atomic.Int32
}

func (h urlHost) Capture(context.Context, domain.Annotations) (*assemble.Result, error) {
	n := h.inflight.Add(1)
	defer h.inflight.Add(-1)
	for {
		p := h.peak.Load()
		if n <= p || h.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if strings.Contains(h.url, "empty") {
		return nil, nil
	}
	return &assemble.Result{Record: domain.JobRecord{Position: "Engineer", URL: h.url, ExternalID: h.url}}, nil
}

type countingSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *countingSender) Send(_ context.Context, rec domain.JobRecord) (domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, rec.URL)
	return domain.Receipt{OK: true, JobID: int64(len(s.sent))}, nil
}

func TestRunnerCapturesEveryURL(t *testing.T) {
	var inflight, peak atomic.Int32
	sender := &countingSender{}

	r := Runner{
		Pipeline: submit.NewPipeline(sender, submit.BlockMissingTitle, logging.NewTest(t)),
		HostFor: func(u string) host.Host {
			return urlHost{url: u, inflight: &inflight, peak: &peak}
		},
		Limiter:     page.NewHostLimiter(1000, 1000),
		Concurrency: 2,
		Log:         logging.NewTest(t),
	}

	urls := []string{"https://a.example/1", "https://b.example/empty", "https://a.example/2", "https://c.example/3"}
	results := r.Run(context.Background(), urls, domain.Annotations{})

	require.Len(t, results, len(urls))
	for i, res := range results {
		assert.Equal(t, urls[i], res.URL)
		assert.True(t, res.Outcome.Status.Terminal)
	}
	assert.Equal(t, submit.PhaseFailed, results[1].Outcome.Status.Phase)
	assert.Equal(t, submit.MsgUnreadable, results[1].Outcome.Status.Message)

	assert.Len(t, sender.sent, 3)
	assert.LessOrEqual(t, peak.Load(), int32(2))

	sum := Summary(results)
	assert.Equal(t, 3, sum[submit.PhaseSent])
	assert.Equal(t, 1, sum[submit.PhaseFailed])
}

func TestRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := &countingSender{}
	r := Runner{
		Pipeline: submit.NewPipeline(sender, submit.BlockMissingTitle, nil),
		HostFor:  func(string) host.Host { t.Fatal("no host should be built"); return nil },
	}
	results := r.Run(ctx, []string{"https://a.example/1"}, domain.Annotations{})

	require.Len(t, results, 1)
	assert.Error(t, results[0].Outcome.Err)
	assert.Empty(t, sender.sent)
}

func TestReadURLs(t *testing.T) {
	in := `
# saved searches
https://www.linkedin.com/jobs/view/1/
https://www.linkedin.com/jobs/view/1/#top

https://boards.example.com/acme/jobs/9
`
	urls, err := ReadURLs(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.linkedin.com/jobs/view/1/",
		"https://boards.example.com/acme/jobs/9",
	}, urls)
}
