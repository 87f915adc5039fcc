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

// Package metrics turns collector.Records into a process-local, per-scrape
// Prometheus registry (§4.7). A fresh Registry is built for every scrape; it
// is never shared or mutated across requests.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lustrefs-io/lustrefs_exporter/collector"
)

// namespace is the common metric name prefix (§4.7: "all metrics prefixed
// lustre_"), mirroring the teacher's sources.Namespace constant.
const namespace = "lustre"

// brwKey identifies one (kind, target, histogram, size, operation) sample so
// duplicate brw_stats entries across multiple scrape fragments are
// deduplicated with first-occurrence-wins semantics (§4.7).
type brwKey struct {
	kind   collector.TargetVariant
	target string
	histo  string
	size   uint64
	op     string
}

// Registry wraps a scrape-local *prometheus.Registry plus the metric-family
// cache and brw-stats dedup set that make repeated Add calls within one
// scrape cheap and correct.
type Registry struct {
	reg      *prometheus.Registry
	gauges   map[string]*prometheus.GaugeVec
	counters map[string]*prometheus.CounterVec
	brwSeen  map[brwKey]struct{}
}

// New builds an empty, scrape-local Registry.
func New() *Registry {
	return &Registry{
		reg:      prometheus.NewRegistry(),
		gauges:   make(map[string]*prometheus.GaugeVec),
		counters: make(map[string]*prometheus.CounterVec),
		brwSeen:  make(map[brwKey]struct{}),
	}
}

// Gatherer exposes the underlying *prometheus.Registry for rendering.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// labelPair is a label name/value pair. Families are cached by name, so the
// label-name set passed here must be the same on every call for a given
// name (§4.7's invariant: "label key set is constant across all samples").
type labelPair struct{ name, value string }

func names(pairs []labelPair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.name
	}
	return out
}

func values(pairs []labelPair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.value
	}
	return out
}

func (r *Registry) gaugeVec(name, help string, pairs []labelPair) *prometheus.GaugeVec {
	if g, ok := r.gauges[name]; ok {
		return g
	}
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, names(pairs))
	r.reg.MustRegister(g)
	r.gauges[name] = g
	return g
}

func (r *Registry) counterVec(name, help string, pairs []labelPair) *prometheus.CounterVec {
	if c, ok := r.counters[name]; ok {
		return c
	}
	c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, names(pairs))
	r.reg.MustRegister(c)
	r.counters[name] = c
	return c
}

// setGauge records one gauge sample.
func (r *Registry) setGauge(name, help string, value float64, pairs ...labelPair) {
	r.gaugeVec(name, help, pairs).WithLabelValues(values(pairs)...).Set(value)
}

// addCounter records one counter sample; value is the cumulative count
// emitted by Lustre, not a delta, so it is Set via Add against a
// freshly-created (zero-valued) per-scrape family member.
func (r *Registry) addCounter(name, help string, value float64, pairs ...labelPair) {
	r.counterVec(name, help, pairs).WithLabelValues(values(pairs)...).Add(value)
}

func metricName(parts ...string) string {
	name := namespace
	for _, p := range parts {
		if p == "" {
			continue
		}
		name += "_" + p
	}
	return name
}
