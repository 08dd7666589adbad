// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/matbench/internal/cpuinfo"
)

// Reporter publishes benchmark results.
type Reporter interface {
	Report(Result) error
}

// CSVHeader lists the columns CSVReporter writes, in order.
var CSVHeader = []string{
	"n", "m", "k", "num_threads", "time_taken", "speedup", "efficiency", "throughput", "latency_per_task",
}

// CSVReporter writes one machine-readable line per result. time_taken is the
// parallel time in seconds; efficiency is a fraction, not a percentage.
type CSVReporter struct {
	w           *csv.Writer
	header      bool
	wroteHeader bool
}

// NewCSVReporter returns a CSVReporter writing to w. When header is true the
// column names are written before the first result.
func NewCSVReporter(w io.Writer, header bool) *CSVReporter {
	return &CSVReporter{w: csv.NewWriter(w), header: header}
}

// Report implements Reporter.
func (r *CSVReporter) Report(res Result) error {
	if r.header && !r.wroteHeader {
		if err := r.w.Write(CSVHeader); err != nil {
			return err
		}
		r.wroteHeader = true
	}

	m := res.Metrics
	ints := lo.Map([]int{res.Config.N, res.Config.M, res.Config.K, res.Threads}, func(v int, _ int) string {
		return strconv.Itoa(v)
	})
	floats := lo.Map([]float64{
		m.ParallelTime.Seconds(), m.Speedup, m.Efficiency, m.Throughput, m.LatencyPerTask,
	}, func(v float64, _ int) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	})
	if err := r.w.Write(append(ints, floats...)); err != nil {
		return err
	}
	r.w.Flush()
	return r.w.Error()
}

// TextReporter writes a human-readable multi-line report.
type TextReporter struct {
	w    io.Writer
	p    *message.Printer
	host *cpuinfo.Info
}

// NewTextReporter returns a TextReporter writing to w with English number
// formatting. host, if not nil, is printed as a header line.
func NewTextReporter(w io.Writer, host *cpuinfo.Info) *TextReporter {
	return &TextReporter{w: w, p: message.NewPrinter(language.English), host: host}
}

// Report implements Reporter.
func (r *TextReporter) Report(res Result) error {
	ew := &errWriter{w: r.w, p: r.p}
	cfg := res.Config
	m := res.Metrics

	if r.host != nil {
		ew.printf("Host: %s\n", r.host)
	}
	// Seeds are printed without digit grouping so they can be pasted back into -s.
	ew.printf("Seed: %s\n", strconv.FormatUint(res.Seed, 10))
	ew.printf("Dimensions: A %dx%d, B %dx%d, strategy %s", cfg.M, cfg.N, cfg.N, cfg.K, cfg.Strategy)
	if cfg.TransposeB {
		ew.printf(" (transposed B)")
	}
	ew.printf("\n")

	if res.A != nil {
		ew.printf("\nFirst Matrix:\n%s", res.A)
		ew.printf("\nSecond Matrix:\n%s", res.B)
		ew.printf("\nProduct Matrix:\n%s", res.Product)
	}

	ew.printf("\nSequential time: %.6f sec\n", m.SequentialTime.Seconds())
	ew.printf("Time taken: %.6f sec\n", m.ParallelTime.Seconds())
	ew.printf("Speedup: %.4f\n", m.Speedup)
	ew.printf("Number of threads: %d\n", res.Threads)
	ew.printf("Efficiency: %.2f%%\n", m.Efficiency*100)
	ew.printf("Throughput: %.0f tasks/sec\n", m.Throughput)
	ew.printf("Latency per task: %g sec\n", m.LatencyPerTask)
	ew.printf("Overhead: %.6f sec\n", m.Overhead)
	if res.Verified {
		ew.printf("Verified: products match\n")
	}
	return ew.err
}

// errWriter keeps the first write error so a report reads as a flat list of
// printf calls.
type errWriter struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = e.p.Fprintf(e.w, format, args...)
}
