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

package collector

import "testing"

func TestParseQuotaQMTGlobalUsr(t *testing.T) {
	input := "qmt.lustre.md-0x0.glb-usr=\n" +
		"global_pool0_ID0\n" +
		"- id:      0\n" +
		"  limits: { hard: 100, soft: 50, granted: 10, time: 0 }\n"

	recs, err := ParseRecords(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}

	rec := recs[0]
	if rec.TargetName != "lustre" || rec.TargetParam != "glb-usr" {
		t.Fatalf("unexpected target name/param: %+v", rec)
	}

	stats, ok := rec.TargetValue.(QuotaStats)
	if !ok {
		t.Fatalf("expected QuotaStats, got %T", rec.TargetValue)
	}
	if stats.Kind != QuotaUsr {
		t.Fatalf("expected QuotaUsr, got %v", stats.Kind)
	}
	if stats.Manager != "md" || stats.Pool != "0x0" {
		t.Fatalf("expected manager=md pool=0x0, got manager=%q pool=%q", stats.Manager, stats.Pool)
	}
	if len(stats.Stats) != 1 {
		t.Fatalf("expected 1 row, got %d: %+v", len(stats.Stats), stats.Stats)
	}
	row := stats.Stats[0]
	if row.ID != 0 || row.Limits.Hard != 100 || row.Limits.Soft != 50 || row.Limits.Granted != 10 {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestParseQuotaStatsOsdUsageRow(t *testing.T) {
	s := NewScanner("header discarded\n- id: 500\n  usage: { inodes: 12, kbytes: 4096 }\n")
	rows, ok, err := parseQuotaStatsOsdUsage(s)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	if len(rows) != 1 || rows[0].ID != 500 || rows[0].Usage.Inodes != 12 || rows[0].Usage.Kbytes != 4096 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
