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
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lustrefs-io/lustrefs_exporter/collector"
	"github.com/lustrefs-io/lustrefs_exporter/execcmd"
)

// withEmptyProcDir points ProcLocation at a directory with no stat/meminfo
// files, so addHostStats is a deterministic no-op during these tests.
func withEmptyProcDir(t *testing.T) {
	t.Helper()
	orig := ProcLocation
	ProcLocation = t.TempDir()
	t.Cleanup(func() { ProcLocation = orig })
}

func newTestRunner() *execcmd.MockRunner {
	m := execcmd.NewMockRunner()
	m.SetOutput("lctl", append([]string{"get_param"}, collector.Params()...), "memused=1024\n")
	m.SetOutput("lnetctl", []string{"net", "show", "-v", "4"}, "")
	m.SetOutput("lnetctl", []string{"stats", "show"}, "")
	return m
}

func TestHandlerServesBufferedMetrics(t *testing.T) {
	withEmptyProcDir(t)
	h := NewHandler(newTestRunner(), log.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lustre_memused_bytes 1024")
}

func TestHandlerStreamsJobstatsAfterBufferedBody(t *testing.T) {
	withEmptyProcDir(t)
	runner := newTestRunner()
	runner.SetOutput("lctl", []string{"get_param", jobstatsOSTArg, jobstatsMDTArg},
		"obdfilter.lustre-OST0000.job_stats=\njob_stats:\n- job_id: \"1\"\n  getattr: { samples: 2, unit: reqs }\n")
	h := NewHandler(runner, log.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/metrics?jobstats=true", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	bufferedIdx := strings.Index(body, "lustre_memused_bytes")
	jobstatsIdx := strings.Index(body, "lustre_job_stats_total")
	require.NotEqual(t, -1, bufferedIdx)
	require.NotEqual(t, -1, jobstatsIdx)
	assert.Less(t, bufferedIdx, jobstatsIdx, "buffered body must be written before the jobstats stream")
}

func TestHandlerReturns500WithDiagnosticOnSubprocessFailure(t *testing.T) {
	withEmptyProcDir(t)
	runner := execcmd.NewMockRunner()
	runner.SetError("lctl", append([]string{"get_param"}, collector.Params()...), os.ErrInvalid)
	runner.SetOutput("lnetctl", []string{"net", "show", "-v", "4"}, "")
	runner.SetOutput("lnetctl", []string{"stats", "show"}, "")
	h := NewHandler(runner, log.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "reproduce with: lctl get_param")
}

func TestHandlerReturns503WhenSemaphoreIsFull(t *testing.T) {
	withEmptyProcDir(t)
	h := NewHandler(newTestRunner(), log.NewNopLogger())

	for i := 0; i < maxInFlight; i++ {
		require.True(t, h.sem.TryAcquire(1))
	}
	defer h.sem.Release(maxInFlight)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "service is overloaded, try again later")
}

func TestWithConcurrencyOverridesSemaphoreCap(t *testing.T) {
	withEmptyProcDir(t)
	h := NewHandler(newTestRunner(), log.NewNopLogger(), WithConcurrency(1))

	require.True(t, h.sem.TryAcquire(1))
	defer h.sem.Release(1)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "service is overloaded, try again later")
}

func TestWithDefaultJobstatsAppliesWhenQueryParamOmitted(t *testing.T) {
	withEmptyProcDir(t)
	runner := newTestRunner()
	runner.SetOutput("lctl", []string{"get_param", jobstatsOSTArg, jobstatsMDTArg},
		"obdfilter.lustre-OST0000.job_stats=\njob_stats:\n- job_id: \"1\"\n  getattr: { samples: 2, unit: reqs }\n")
	h := NewHandler(runner, log.NewNopLogger(), WithDefaultJobstats(true))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lustre_job_stats_total")
}
