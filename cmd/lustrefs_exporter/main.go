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

package main

import (
	stdlog "log"
	"net/http"
	"os"

	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/promlog"
	"github.com/prometheus/common/version"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/lustrefs-io/lustrefs_exporter/execcmd"
	"github.com/lustrefs-io/lustrefs_exporter/scrape"
)

var logger = promlog.New(&promlog.Config{})

func init() {
	prometheus.MustRegister(version.NewCollector("lustrefs_exporter"))
}

func main() {
	kingpin.Version(version.Print("lustrefs_exporter"))
	kingpin.HelpFlag.Short('h')

	var (
		listenAddress     = kingpin.Flag("web.listen-address", "Address to use to expose Lustre metrics.").Default(":9169").String()
		metricsPath       = kingpin.Flag("web.telemetry-path", "Path to use to expose Lustre metrics.").Default("/metrics").String()
		selfMetricsPath   = kingpin.Flag("web.internal-telemetry-path", "Path to expose the exporter's own self-metrics on.").Default("/internal/metrics").String()
		collectorJobstats = kingpin.Flag("collector.jobstats", "Collect job_stats by default when a scrape omits the jobstats query parameter.").Default("false").Bool()
		lctlPath          = kingpin.Flag("lctl.path", "Path to the lctl binary.").Default("lctl").String()
		lnetctlPath       = kingpin.Flag("lnetctl.path", "Path to the lnetctl binary.").Default("lnetctl").String()
		scrapeConcurrency = kingpin.Flag("scrape.concurrency", "Maximum number of in-flight scrapes before returning 503.").Default("10").Int()
		scrapeTimeout     = kingpin.Flag("scrape.timeout", "Per-scrape admission timeout before returning 408.").Default("10s").Duration()
		logLevel          = kingpin.Flag("log.level", "Set log level. Valid levels: [debug, info, warn, error]").Default("info").Enum("debug", "info", "warn", "error")
		logFormat         = kingpin.Flag("log.format", "Set log format. Valid formats: [logfmt, json]").Default("logfmt").String()
	)

	kingpin.Parse()

	var allow = promlog.AllowedLevel{}
	_ = allow.Set(*logLevel)
	var format = promlog.AllowedFormat{}
	_ = format.Set(*logFormat)
	config := promlog.Config{Level: &allow, Format: &format}
	logger = promlog.New(&config)

	_ = level.Info(logger).Log("msg", "Starting lustrefs_exporter", "version", version.Info())
	_ = level.Info(logger).Log("msg", "Build context", "context", version.BuildContext())

	handler := scrape.NewHandler(execcmd.RealRunner{}, logger,
		scrape.WithLctlPath(*lctlPath),
		scrape.WithLnetctlPath(*lnetctlPath),
		scrape.WithConcurrency(*scrapeConcurrency),
		scrape.WithTimeout(*scrapeTimeout),
		scrape.WithDefaultJobstats(*collectorJobstats),
	)

	http.Handle(*metricsPath, handler)

	// Self-metrics (§6): the exporter's own scrape-duration summary and Go
	// runtime/process metrics, served separately from the per-scrape Lustre
	// registry on *metricsPath, mirroring the teacher's
	// promhttp.InstrumentMetricHandler wiring.
	http.Handle(*selfMetricsPath, promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
			ErrorLog: stdlog.New(os.Stderr, "", stdlog.LstdFlags),
		}),
	))
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`<html>
			<head><title>Lustre Filesystem Exporter</title></head>
			<body>
			<h1>Lustre Filesystem Exporter</h1>
			<p><a href="` + *metricsPath + `">Metrics</a></p>
			</body>
			</html>`))
		if err != nil {
			_ = level.Error(logger).Log("msg", "failed to write index page", "err", err)
		}
	})

	_ = level.Info(logger).Log("msg", "Listening", "address", *listenAddress)
	srv := &http.Server{Addr: *listenAddress}
	if err := srv.ListenAndServe(); err != nil {
		_ = level.Error(logger).Log("msg", "error on listen", "err", err)
		os.Exit(1)
	}
}
