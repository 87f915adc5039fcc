// (C) Copyright 2017 Hewlett Packard Enterprise Development LP
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scrape implements the GET /metrics endpoint (§4.8): admission
// control, concurrent subprocess fan-out, buffered-then-streamed response
// composition.
package scrape

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/lustrefs-io/lustrefs_exporter/collector"
	"github.com/lustrefs-io/lustrefs_exporter/execcmd"
	"github.com/lustrefs-io/lustrefs_exporter/jobstats"
	"github.com/lustrefs-io/lustrefs_exporter/metrics"
)

const (
	maxInFlight    = 10
	admissionWait  = 10 * time.Second
	lctlBin        = "lctl"
	lnetctlBin     = "lnetctl"
	jobstatsOSTArg = "obdfilter.*OST*.job_stats"
	jobstatsMDTArg = "mdt.*.job_stats"
)

// scrapeDurations is the exporter's own self-metric (§6: "Exporter
// self-metrics"), adapted from the teacher's scrapeDurations SummaryVec to
// label by the four scrape sub-pipelines instead of by procfs/sysfs source.
var scrapeDurations = prometheus.NewSummaryVec(
	prometheus.SummaryOpts{
		Namespace: "lustre",
		Subsystem: "exporter",
		Name:      "scrape_duration_seconds",
		Help:      "lustrefs_exporter: duration of one scrape sub-pipeline.",
	},
	[]string{"source", "result"},
)

func init() {
	prometheus.MustRegister(scrapeDurations)
}

// observe runs fn, recording its duration and success/failure against
// scrapeDurations under the given sub-pipeline name.
func observe(source string, fn func() error) error {
	start := time.Now()
	err := fn()
	result := "success"
	if err != nil {
		result = "error"
	}
	scrapeDurations.WithLabelValues(source, result).Observe(time.Since(start).Seconds())
	return err
}

// Handler serves GET /metrics. It owns the admission semaphore and the
// Runner used to spawn lctl/lnetctl; both are shared across requests,
// unlike the per-scrape Registry each request builds for itself.
type Handler struct {
	Runner execcmd.Runner
	Logger log.Logger

	lctlPath        string
	lnetctlPath     string
	timeout         time.Duration
	concurrency     int64
	defaultJobstats bool

	sem *semaphore.Weighted
}

// Option configures a Handler built by NewHandler, overriding one of the
// §2 flag-driven defaults (--lctl.path, --lnetctl.path, --scrape.concurrency,
// --scrape.timeout, --collector.jobstats).
type Option func(*Handler)

// WithLctlPath overrides the "lctl" binary name/path (--lctl.path).
func WithLctlPath(path string) Option { return func(h *Handler) { h.lctlPath = path } }

// WithLnetctlPath overrides the "lnetctl" binary name/path (--lnetctl.path).
func WithLnetctlPath(path string) Option { return func(h *Handler) { h.lnetctlPath = path } }

// WithConcurrency overrides the admission semaphore's in-flight cap
// (--scrape.concurrency).
func WithConcurrency(n int) Option { return func(h *Handler) { h.concurrency = int64(n) } }

// WithTimeout overrides the per-scrape admission timeout (--scrape.timeout).
func WithTimeout(d time.Duration) Option { return func(h *Handler) { h.timeout = d } }

// WithDefaultJobstats overrides the default used when a request omits the
// "jobstats" query parameter (--collector.jobstats).
func WithDefaultJobstats(b bool) Option { return func(h *Handler) { h.defaultJobstats = b } }

// NewHandler builds a Handler with the admission concurrency cap of §4.8,
// applying any Options over the flag defaults.
func NewHandler(runner execcmd.Runner, logger log.Logger, opts ...Option) *Handler {
	h := &Handler{
		Runner:      runner,
		Logger:      logger,
		lctlPath:    lctlBin,
		lnetctlPath: lnetctlBin,
		timeout:     admissionWait,
		concurrency: maxInFlight,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.sem = semaphore.NewWeighted(h.concurrency)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	jobstatsEnabled := h.defaultJobstats
	if raw := req.URL.Query().Get("jobstats"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			jobstatsEnabled = v
		}
	}

	// §4.8: at most h.concurrency scrapes run at once. An immediately-full
	// semaphore is an overload (503); once admitted, the scrape itself is
	// bounded by h.timeout and reported as a timeout (408) if exceeded.
	if !h.sem.TryAcquire(1) {
		http.Error(w, "service is overloaded, try again later", http.StatusServiceUnavailable)
		return
	}
	defer h.sem.Release(1)

	ctx, cancel := context.WithTimeout(req.Context(), h.timeout)
	defer cancel()

	// The buffered phase is bounded by h.timeout; the streaming
	// jobstats phase (if any) is bounded only by the client's own request
	// lifetime, since job_stats output can be large and slow to drain.
	body, jobstatsStdout, err := h.scrape(ctx, req.Context(), jobstatsEnabled)
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		http.Error(w, "scrape timed out", http.StatusRequestTimeout)
		return
	}
	if err != nil {
		_ = level.Error(h.Logger).Log("msg", "scrape failed", "err", err)
		http.Error(w, "scrape failed: "+err.Error()+"\nreproduce with: lctl get_param "+diagnosticParams(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", metrics.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)

	if jobstatsStdout != nil {
		defer jobstatsStdout.Close()
		for frag := range jobstats.Stream(req.Context(), jobstatsStdout, h.Logger) {
			if _, err := w.Write([]byte(frag)); err != nil {
				return
			}
		}
	}
}

// diagnosticParams is the full argument list of the buffered lctl get_param
// run; a failure of the optional jobstats stream never reaches the 500 path.
func diagnosticParams() string {
	return strings.Join(collector.Params(), " ")
}

// scrape runs all four subprocesses concurrently (§4.8: "spawns four
// concurrent subprocesses") and, once the buffered three have been parsed
// and encoded, returns the fourth's stdout for the caller to drain after
// the buffered body (§4.8 ordering guarantee: buffered section fully
// written before the streamed section begins — the ordering is in how the
// response is written, not in when the subprocesses start).
func (h *Handler) scrape(ctx, streamCtx context.Context, jobstatsEnabled bool) ([]byte, io.ReadCloser, error) {
	eg, egCtx := errgroup.WithContext(ctx)

	var lctlOut, lnetNetOut, lnetStatsOut []byte
	var jobstatsStream io.ReadCloser
	var jobstatsStartErr error

	eg.Go(func() error {
		return observe("lctl", func() error {
			out, err := h.Runner.Run(egCtx, h.lctlPath, append([]string{"get_param"}, collector.Params()...)...)
			if err != nil {
				return err
			}
			lctlOut = out
			return nil
		})
	})
	eg.Go(func() error {
		return observe("lnetctl_net", func() error {
			out, err := h.Runner.Run(egCtx, h.lnetctlPath, "net", "show", "-v", "4")
			if err != nil {
				return err
			}
			lnetNetOut = out
			return nil
		})
	})
	eg.Go(func() error {
		return observe("lnetctl_stats", func() error {
			out, err := h.Runner.Run(egCtx, h.lnetctlPath, "stats", "show")
			if err != nil {
				return err
			}
			lnetStatsOut = out
			return nil
		})
	})
	if jobstatsEnabled {
		eg.Go(func() error {
			jobstatsStartErr = observe("jobstats", func() error {
				s, err := h.Runner.Stream(streamCtx, h.lctlPath, "get_param", jobstatsOSTArg, jobstatsMDTArg)
				if err != nil {
					return err
				}
				jobstatsStream = s
				return nil
			})
			// Jobstats is an optional, additive section (§4.11): a failure to
			// start it must not cancel the other three subprocesses or fail the
			// buffered body, so it is never returned into the errgroup.
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	reg := metrics.New()

	records, err := collector.ParseRecords(string(lctlOut))
	if err != nil {
		return nil, nil, err
	}
	reg.AddAll(records)

	netRecords, err := collector.ParseLNetNetShow(string(lnetNetOut))
	if err != nil {
		return nil, nil, err
	}
	reg.AddAll(netRecords)

	statsRecords, err := collector.ParseLNetStatsShow(string(lnetStatsOut))
	if err != nil {
		return nil, nil, err
	}
	reg.AddAll(statsRecords)

	h.addHostStats(reg)

	body, err := reg.Render()
	if err != nil {
		return nil, nil, err
	}

	if !jobstatsEnabled {
		return body, nil, nil
	}
	if jobstatsStartErr != nil {
		// Jobstats is an optional, additive section; a failure to start it
		// does not invalidate the buffered body already produced (§4.11).
		_ = level.Error(h.Logger).Log("msg", "jobstats subprocess failed to start", "err", jobstatsStartErr)
		return body, nil, nil
	}
	return body, jobstatsStream, nil
}
