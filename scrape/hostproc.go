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

package scrape

import (
	"os"

	"github.com/go-kit/log/level"

	"github.com/lustrefs-io/lustrefs_exporter/collector"
	"github.com/lustrefs-io/lustrefs_exporter/metrics"
)

// ProcLocation is the directory host cpu/mem files are read from. Tests
// point it at a fixture directory instead of the real "/proc".
var ProcLocation = "/proc"

// addHostStats reads /proc/stat and /proc/meminfo and feeds their parsed
// records into reg (§4.4: "Node cpu/mem"). Unlike the lctl/lnetctl
// subprocesses, these are local file reads with no subprocess to run, so
// they are not modeled through execcmd.Runner; a missing or unreadable file
// is skipped, and a file that fails to parse is logged and skipped, rather
// than failing the whole scrape, since host
// stats are supplementary to the Lustre-specific metrics a scrape exists to
// produce.
func (h *Handler) addHostStats(reg *metrics.Registry) {
	if out, err := os.ReadFile(ProcLocation + "/stat"); err == nil {
		if recs, err := collector.ParseCPUStats(string(out)); err == nil {
			reg.AddAll(recs)
		} else {
			h.logHostStatsErr("cpu", err)
		}
	}

	if out, err := os.ReadFile(ProcLocation + "/meminfo"); err == nil {
		if recs, err := collector.ParseMemInfo(string(out)); err == nil {
			reg.AddAll(recs)
		} else {
			h.logHostStatsErr("mem", err)
		}
	}
}

func (h *Handler) logHostStatsErr(kind string, err error) {
	_ = level.Warn(h.Logger).Log("msg", "failed to parse host stats", "kind", kind, "err", err)
}
