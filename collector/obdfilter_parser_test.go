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

func TestParseObdfilterTotDirty(t *testing.T) {
	recs, err := ParseRecords("obdfilter.lustre-OST0000.tot_dirty=12345\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.TargetKind != Ost || rec.TargetName != "lustre-OST0000" || rec.TargetParam != "tot_dirty" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if v, ok := rec.TargetValue.(uint64); !ok || v != 12345 {
		t.Fatalf("expected 12345, got %v", rec.TargetValue)
	}
}

func TestObdfilterClientCount(t *testing.T) {
	input := "obdfilter.lustre-OST0000.exports.10.0.0.1@tcp.uuid=lustre-MDT0000_UUID\n" +
		"obdfilter.lustre-OST0000.exports.10.0.0.2@tcp.uuid=abcd1234\n"

	recs, err := ParseRecords(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.TargetKind != Ost || rec.TargetParam != "connected_clients" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if v, ok := rec.TargetValue.(uint64); !ok || v != 1 {
		t.Fatalf("expected connected_clients=1, got %v", rec.TargetValue)
	}
}
