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

func TestParseLdlmNamespaceStat(t *testing.T) {
	recs, err := ParseRecords("ldlm.namespaces.filter-lustre-OST0000_UUID.lock_count=42\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.TargetKind != Ost || rec.TargetName != "lustre-OST0000" || rec.TargetParam != "lock_count" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if v, ok := rec.TargetValue.(uint64); !ok || v != 42 {
		t.Fatalf("expected 42, got %v", rec.TargetValue)
	}
}

func TestParseLdlmServiceStats(t *testing.T) {
	recs, err := ParseRecords("ldlm.services.ldlm_canceld.stats=\nreq_waittime 2 samples [usec]\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.Kind != RecordService || rec.ServiceName != "ldlm_canceld" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}
