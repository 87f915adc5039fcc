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

package metrics

import (
	"strings"

	"github.com/lustrefs-io/lustrefs_exporter/collector"
)

// Add feeds one Record into the registry, dispatching on its Kind (§4.7).
func (r *Registry) Add(rec collector.Record) {
	switch rec.Kind {
	case collector.RecordHost:
		r.addHost(rec)
	case collector.RecordTarget:
		r.addTarget(rec)
	case collector.RecordLNet:
		r.addLNet(rec)
	case collector.RecordService:
		r.addService(rec)
	}
}

// AddAll feeds every Record in recs into the registry.
func (r *Registry) AddAll(recs []collector.Record) {
	for _, rec := range recs {
		r.Add(rec)
	}
}

func (r *Registry) addHost(rec collector.Record) {
	switch v := rec.HostValue.(type) {
	case uint64:
		switch rec.HostParam {
		case "memused":
			r.setGauge(metricName("memused_bytes"), "Number of bytes allocated by the Lustre memory allocator.", float64(v))
		case "memused_max":
			r.setGauge(metricName("memused_max_bytes"), "Maximum number of bytes allocated by the Lustre memory allocator.", float64(v))
		case "lnet_memused":
			r.setGauge(metricName("lnet_memused_bytes"), "Number of bytes allocated by LNet.", float64(v))
		case "cpu_total", "cpu_user", "cpu_iowait", "cpu_system":
			mode := strings.TrimPrefix(rec.HostParam, "cpu_")
			r.addCounter(metricName("node_cpu_jiffies_total"), "CPU time in jiffies, by mode.", float64(v),
				labelPair{"mode", mode})
		case "mem_total", "mem_free", "swap_total", "swap_free":
			r.setGauge(metricName("node_memory_kilobytes"), "Host memory, by kind (mem/swap, total/free).", float64(v),
				labelPair{"kind", rec.HostParam})
		}
	case collector.HealthCheckStat:
		r.addHealth(v)
	}
}

// addHealth emits the global health_check sample plus one zero-valued
// sample per unhealthy target (§4.4). Every sample carries the same
// "target" label (empty for the global one) so the family has one constant
// label-name set, per §4.7's invariant.
func (r *Registry) addHealth(h collector.HealthCheckStat) {
	name := metricName("health_healthy")
	help := "Whether the filesystem health_check reports healthy (1) or not (0)."
	value := 0.0
	if h.Healthy {
		value = 1.0
	}
	r.setGauge(name, help, value, labelPair{"target", ""})
	for _, target := range h.Targets {
		r.setGauge(name, help, 0, labelPair{"target", target})
	}
}

// targetScalarMetrics maps a TargetParam carrying a bare uint64 to the
// metric it becomes; counter is true for the monotone ones (§4.7 naming
// rules).
var targetScalarMetrics = map[string]struct {
	name    string
	help    string
	counter bool
}{
	"filesfree":          {"inodes_free", "Number of inodes free on this target's backing device.", false},
	"filestotal":         {"inodes_maximum", "Maximum number of inodes on this target's backing device.", false},
	"kbytesavail":        {"kilobytes_available", "Number of kilobytes available on this target's backing device.", false},
	"kbytesfree":         {"kilobytes_free", "Number of kilobytes free on this target's backing device.", false},
	"kbytestotal":        {"kilobytes_capacity", "Number of kilobytes this target's backing device can hold.", false},
	"num_exports":        {"exports_total", "Total number of exports this target has handed out.", true},
	"connected_clients":  {"connected_clients", "Number of clients currently connected to this target.", false},
	"tot_dirty":          {"tot_dirty_bytes", "Total number of bytes dirty pending write-back.", false},
	"tot_granted":        {"tot_granted_bytes", "Total number of bytes of grant space given to clients.", false},
	"tot_pending":        {"tot_pending_bytes", "Total number of bytes of grant space pending write-back.", false},
}

func (r *Registry) addTarget(rec collector.Record) {
	kind := rec.TargetKind.PromLabel()

	switch v := rec.TargetValue.(type) {
	case uint64:
		r.addTargetScalar(kind, rec.TargetName, rec.TargetParam, v)
	case string:
		// fstype is informational text, not a sample; no numeric metric
		// family fits it (§4.7 has no string-valued family).
	case []collector.Stat:
		r.addStatsBlock(kind, rec.TargetName, rec.TargetParam, v)
	case []collector.BrwStats:
		r.addBrwStats(rec.TargetKind, rec.TargetName, v)
	case collector.ExportStats:
		r.addExportStats(kind, rec.TargetName, v)
	case []string:
		r.addFsnames(rec.TargetName, v)
	case collector.ChangelogStat:
		r.addChangelog(kind, rec.TargetName, v)
	case collector.RecoveryStat:
		r.addRecovery(kind, rec.TargetName, v)
	case collector.QuotaStats:
		r.addQuotaStats(kind, rec.TargetName, v)
	case collector.QuotaStatsOsd:
		r.addQuotaStatsOsd(kind, rec.TargetName, v)
	}
}

func (r *Registry) addTargetScalar(kind, target, param string, value uint64) {
	if info, ok := targetScalarMetrics[param]; ok {
		pairs := []labelPair{{"component", kind}, {"target", target}}
		if info.counter {
			r.addCounter(metricName(info.name), info.help, float64(value), pairs...)
		} else {
			r.setGauge(metricName(info.name), info.help, float64(value), pairs...)
		}
		return
	}

	// Everything else reaching this point is a single-valued "<name>=<N>"
	// field not covered above: LDLM namespace counters (lock_count,
	// lru_size, ...), MGS/MDT thread-pool sizes (threads_min/max/started).
	// These are sampled gauges, except the handful that are explicitly
	// monotone counters (§4.7).
	r.addGenericTargetStat(kind, target, param, value)
}

// genericCounterStats are the single-valued target params that are
// monotone counters; everything else reaching addGenericTargetStat is a
// gauge (lock/thread counts, ages, limits — §4.7's gauge group).
var genericCounterStats = map[string]bool{
	"lock_timeouts": true,
}

func (r *Registry) addGenericTargetStat(kind, target, param string, value uint64) {
	name := metricName(param)
	help := "Single-valued target parameter " + param + "."
	pairs := []labelPair{{"component", kind}, {"target", target}}
	if genericCounterStats[param] {
		r.addCounter(name+"_total", help, float64(value), pairs...)
		return
	}
	r.setGauge(name, help, float64(value), pairs...)
}

// addStatsBlock renders a generic stats block ("§4.2" rows: samples plus
// optional min/max/sum) as one counter sample per row, keyed by operation.
// This is the shared renderer for target-scoped stats blocks (MGS and OST
// stats, MDT md_stats, llite stats, nodemap md_stats/dt_stats); service
// stats go through addService and export stats through addExportStats.
func (r *Registry) addStatsBlock(kind, target, param string, stats []collector.Stat) {
	name := metricName(param, "total")
	help := "Number of " + param + " operations recorded, by operation."
	for _, stat := range stats {
		r.addCounter(name, help, float64(stat.Samples),
			labelPair{"component", kind}, labelPair{"target", target}, labelPair{"operation", stat.Name})
	}
}

func (r *Registry) addExportStats(kind, target string, es collector.ExportStats) {
	name := metricName("exports_stats_total")
	help := "Number of operations recorded per client export, by operation."
	for _, stat := range es.Stats {
		r.addCounter(name, help, float64(stat.Samples),
			labelPair{"component", kind}, labelPair{"target", target},
			labelPair{"nid", es.NID}, labelPair{"operation", stat.Name})
	}
}

func (r *Registry) addFsnames(target string, fsnames []string) {
	name := metricName("mgs_fsname_info")
	help := "Filesystem names registered with this MGS target (always 1)."
	for _, fsname := range fsnames {
		r.setGauge(name, help, 1, labelPair{"target", target}, labelPair{"fsname", fsname})
	}
}

func (r *Registry) addChangelog(kind, target string, cs collector.ChangelogStat) {
	r.setGauge(metricName("changelog_current_index"), "Current changelog record index.",
		float64(cs.CurrentIndex), labelPair{"component", kind}, labelPair{"target", target})

	idxName := metricName("changelog_user_index")
	idleName := metricName("changelog_user_idle_seconds")
	for _, u := range cs.Users {
		pairs := []labelPair{{"component", kind}, {"target", target}, {"id", u.ID}}
		r.setGauge(idxName, "Changelog index last consumed by this user.", float64(u.Index), pairs...)
		r.setGauge(idleName, "Seconds since this changelog user last consumed a record.", float64(u.IdleSecs), pairs...)
	}
}

func (r *Registry) addRecovery(kind, target string, rs collector.RecoveryStat) {
	pairs := []labelPair{{"component", kind}, {"target", target}}
	r.setGauge(metricName("recovery_status"), "Recovery status, by enum value (0=COMPLETE).", float64(rs.Status), pairs...)
	r.setGauge(metricName("recovery_duration_seconds"), "Duration of the last recovery in seconds.", float64(rs.RecoveryDuration), pairs...)
	r.setGauge(metricName("recovery_time_remaining_seconds"), "Estimated time remaining for an in-progress recovery.", float64(rs.TimeRemaining), pairs...)
	r.setGauge(metricName("recovery_completed_clients"), "Number of clients that have completed recovery.", float64(rs.CompletedClients), pairs...)
	r.setGauge(metricName("recovery_connected_clients"), "Number of clients connected during recovery.", float64(rs.ConnectedClients), pairs...)
	r.setGauge(metricName("recovery_evicted_clients"), "Number of clients evicted during recovery.", float64(rs.EvictedClients), pairs...)
}

// quotaPool applies the label-value rule that the literal pool name "0x0"
// is emitted as an empty string (spec.md:254).
func quotaPool(pool string) string {
	if pool == "0x0" {
		return ""
	}
	return pool
}

func (r *Registry) addQuotaStats(kind, target string, qs collector.QuotaStats) {
	accounting := qs.Kind.String()
	for _, stat := range qs.Stats {
		pairs := []labelPair{
			{"component", kind}, {"target", target},
			{"manager", qs.Manager}, {"pool", quotaPool(qs.Pool)},
			{"accounting", accounting}, {"id", uitoa(stat.ID)},
		}
		r.setGauge(metricName("quota_hard_limit"), "Hard quota limit.", float64(stat.Limits.Hard), pairs...)
		r.setGauge(metricName("quota_soft_limit"), "Soft quota limit.", float64(stat.Limits.Soft), pairs...)
		r.setGauge(metricName("quota_granted"), "Quota space currently granted.", float64(stat.Limits.Granted), pairs...)
		r.setGauge(metricName("quota_grace_time_seconds"), "Quota grace period in seconds.", float64(stat.Limits.Time), pairs...)
	}
}

func (r *Registry) addQuotaStatsOsd(kind, target string, qs collector.QuotaStatsOsd) {
	accounting := qs.Kind.String()
	for _, stat := range qs.Stats {
		pairs := []labelPair{
			{"component", kind}, {"target", target},
			{"accounting", accounting}, {"id", uitoa(stat.ID)},
		}
		r.setGauge(metricName("quota_usage_inodes"), "Inodes currently used against quota.", float64(stat.Usage.Inodes), pairs...)
		r.setGauge(metricName("quota_usage_kilobytes"), "Kilobytes currently used against quota.", float64(stat.Usage.Kbytes), pairs...)
	}
}

// addBrwStats renders every histogram bucket of every brw_stats section,
// skipping any (kind, target, histogram, size, operation) tuple already
// seen this scrape (§4.7: "Duplicate bucket-size entries ... deduplicated
// via a per-scrape set; first occurrence wins").
func (r *Registry) addBrwStats(kind collector.TargetVariant, target string, sections []collector.BrwStats) {
	for _, section := range sections {
		name := metricName("brw", section.Name, "total")
		help := "brw_stats histogram " + section.Name + " (" + section.Unit + "), by bucket size."
		for _, bucket := range section.Buckets {
			r.addBrwSample(kind, target, section.Name, bucket.Name, "read", bucket.Read, name, help)
			r.addBrwSample(kind, target, section.Name, bucket.Name, "write", bucket.Write, name, help)
		}
	}
}

func (r *Registry) addBrwSample(kind collector.TargetVariant, target, histo string, size uint64, op string, value uint64, name, help string) {
	key := brwKey{kind: kind, target: target, histo: histo, size: size, op: op}
	if _, seen := r.brwSeen[key]; seen {
		return
	}
	r.brwSeen[key] = struct{}{}
	r.addCounter(name, help, float64(value),
		labelPair{"component", kind.PromLabel()}, labelPair{"target", target},
		labelPair{"size", uitoa(size)}, labelPair{"operation", op})
}

func (r *Registry) addLNet(rec collector.Record) {
	name := metricName("lnet", rec.LNetParam, "total")
	help := "LNet counter " + rec.LNetParam + "."
	if rec.LNetNID == "" {
		r.addCounter(name, help, float64(rec.LNetValue))
		return
	}
	r.addCounter(name, help, float64(rec.LNetValue), labelPair{"nid", rec.LNetNID})
}

func (r *Registry) addService(rec collector.Record) {
	stats, ok := rec.ServiceValue.([]collector.Stat)
	if !ok {
		return
	}
	name := metricName("service_stats_total")
	help := "Number of operations recorded per service thread pool, by operation."
	for _, stat := range stats {
		r.addCounter(name, help, float64(stat.Samples),
			labelPair{"component", rec.ServiceName}, labelPair{"operation", stat.Name})
	}
}

func uitoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
