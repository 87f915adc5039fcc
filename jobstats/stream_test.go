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

package jobstats

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/log"
)

func drain(t *testing.T, r io.Reader) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var frags []string
	for frag := range Stream(ctx, r, log.NewNopLogger()) {
		frags = append(frags, frag)
	}
	return frags
}

func TestStreamOstJobStats(t *testing.T) {
	input := `obdfilter.lustre-OST0000.job_stats=
job_stats:
- job_id:          "42"
  snapshot_time:   1700000000
  read_bytes:      { samples: 10, unit: bytes, min: 4096, max: 1048576, sum: 5242880 }
  write_bytes:     { samples: 5, unit: bytes, min: 4096, max: 4096, sum: 20480 }
  getattr:         { samples: 3, unit: reqs }
`
	frags := drain(t, strings.NewReader(input))

	joined := strings.Join(frags, "")
	for _, want := range []string{
		`lustre_job_read_samples_total{operation="read_bytes",component="ost",target="lustre-OST0000",jobid="42"} 10`,
		`lustre_job_read_minimum_size_bytes{operation="read_bytes",component="ost",target="lustre-OST0000",jobid="42"} 4096`,
		`lustre_job_write_bytes_total{operation="write_bytes",component="ost",target="lustre-OST0000",jobid="42"} 20480`,
		`lustre_job_stats_total{component="ost",target="lustre-OST0000",jobid="42",operation="getattr"} 3`,
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, joined)
		}
	}
}

func TestStreamMdtJobStats(t *testing.T) {
	input := `mdt.lustre-MDT0000.job_stats=
job_stats:
- job_id:          "7"
  open:            { samples: 9, unit: reqs }
  close:           { samples: 9, unit: reqs }
`
	frags := drain(t, strings.NewReader(input))
	joined := strings.Join(frags, "")
	if !strings.Contains(joined, `lustre_job_stats_total{component="mdt",target="lustre-MDT0000",jobid="7",operation="open"} 9`) {
		t.Fatalf("expected an open operation sample, got:\n%s", joined)
	}
}

func TestStreamIgnoresLinesBeforeAnyTarget(t *testing.T) {
	input := "getattr: { samples: 1, unit: reqs }\n"
	frags := drain(t, strings.NewReader(input))
	if len(frags) != 0 {
		t.Fatalf("expected no fragments before a target line, got %+v", frags)
	}
}

func TestStreamStopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := strings.NewReader("obdfilter.lustre-OST0000.job_stats=\njob_stats:\n")
	out := Stream(ctx, r, log.NewNopLogger())

	for range out {
		// Drain whatever made it through before cancellation was observed.
	}
}
