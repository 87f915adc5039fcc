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
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lustrefs-io/lustrefs_exporter/metrics"
)

func TestAddHostStatsParsesProcStatAndMeminfo(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte("cpu  100 0 200 300 50 0 0 0 0 0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meminfo"), []byte("MemTotal:       16384 kB\nMemFree:         2048 kB\n"), 0o644))

	orig := ProcLocation
	ProcLocation = dir
	defer func() { ProcLocation = orig }()

	h := &Handler{Logger: log.NewNopLogger()}
	reg := metrics.New()
	h.addHostStats(reg)

	body, err := reg.Render()
	require.NoError(t, err)
	out := string(body)
	assert.Contains(t, out, `lustre_node_cpu_jiffies_total{mode="user"} 100`)
	assert.Contains(t, out, `lustre_node_memory_kilobytes{kind="mem_total"} 16384`)
}

func TestAddHostStatsSkipsMissingFiles(t *testing.T) {
	orig := ProcLocation
	ProcLocation = t.TempDir()
	defer func() { ProcLocation = orig }()

	h := &Handler{Logger: log.NewNopLogger()}
	reg := metrics.New()
	h.addHostStats(reg)

	body, err := reg.Render()
	require.NoError(t, err)
	assert.Empty(t, body)
}
