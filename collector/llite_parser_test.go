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

func TestParseLliteStats(t *testing.T) {
	recs, err := ParseRecords("llite.lustre-ffff0000.stats=\nread_bytes 3 samples [bytes]\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.TargetName != "lustre-ffff0000" || rec.TargetParam != "stats" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	// no OST/MDT marker in the mount id, so it falls back to Mdt.
	if rec.TargetKind != Mdt {
		t.Fatalf("expected Mdt fallback, got %v", rec.TargetKind)
	}
	stats, ok := rec.TargetValue.([]Stat)
	if !ok || len(stats) != 1 || stats[0].Name != "read_bytes" {
		t.Fatalf("unexpected stats: %+v", rec.TargetValue)
	}
}
