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

import (
	"reflect"
	"testing"
)

func TestMgsFsnamesExcludesReservedPseudoFilesystems(t *testing.T) {
	input := "mgs.MGS.live.lustre\nmgs.MGS.live.params\n"

	recs, err := ParseRecords(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.TargetKind != Mgt || rec.TargetName != "MGS" || rec.TargetParam != "fsnames" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !reflect.DeepEqual(rec.TargetValue, []string{"lustre"}) {
		t.Fatalf("expected [lustre], got %v", rec.TargetValue)
	}
}

func TestParseMgsNumExports(t *testing.T) {
	recs, err := ParseRecords("mgs.MGS.num_exports=3\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.TargetParam != "num_exports" {
		t.Fatalf("unexpected param: %+v", rec)
	}
	if v, ok := rec.TargetValue.(uint64); !ok || v != 3 {
		t.Fatalf("expected 3, got %v", rec.TargetValue)
	}
}
