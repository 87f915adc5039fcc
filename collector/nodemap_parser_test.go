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

func TestParseNodemapMdStats(t *testing.T) {
	recs, err := ParseRecords("nodemap.default.md_stats=\nopen 1 samples [reqs]\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.TargetKind != Mdt || rec.TargetName != "default" || rec.TargetParam != "md_stats" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestParseNodemapDtStats(t *testing.T) {
	recs, err := ParseRecords("nodemap.default.dt_stats=\nread 1 samples [reqs]\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.TargetKind != Ost || rec.TargetName != "default" || rec.TargetParam != "dt_stats" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}
