package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"jobflow-engine/internal/assemble"
	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/submit"
)

// outMu serializes writes from concurrent batch runs.
var outMu sync.Mutex

// linePrinter is the terminal's status line: one line per update.
type linePrinter struct {
	w      io.Writer
	prefix string
}

func (p linePrinter) Report(s submit.Status) {
	outMu.Lock()
	defer outMu.Unlock()
	if p.prefix != "" {
		fmt.Fprintf(p.w, "[%s] %s\n", p.prefix, s.Message)
		return
	}
	fmt.Fprintln(p.w, s.Message)
}

// dryRunSender prints the record instead of posting it.
type dryRunSender struct {
	w io.Writer
}

func (d *dryRunSender) Send(_ context.Context, rec domain.JobRecord) (domain.Receipt, error) {
	outMu.Lock()
	defer outMu.Unlock()
	enc := json.NewEncoder(d.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return domain.Receipt{}, err
	}
	return domain.Receipt{OK: true}, nil
}

func writeExplain(w io.Writer, label string, res assemble.Result) {
	outMu.Lock()
	defer outMu.Unlock()

	fields := make([]string, 0, len(res.Sources))
	for f := range res.Sources {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	fmt.Fprintf(w, "# %s\n", label)
	for _, f := range fields {
		fmt.Fprintf(w, "%-12s %s\n", f, res.Sources[f])
	}
}
