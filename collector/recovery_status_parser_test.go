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

func TestParseRecoveryStatusComplete(t *testing.T) {
	input := "obdfilter.lustre-OST0000.recovery_status=\n" +
		"status: COMPLETE\n" +
		"recovery_duration: 5\n" +
		"completed_clients: 3/3\n"

	recs, err := ParseRecords(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.TargetKind != Ost || rec.TargetName != "lustre-OST0000" || rec.TargetParam != "recovery_status" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	stat, ok := rec.TargetValue.(RecoveryStat)
	if !ok {
		t.Fatalf("expected RecoveryStat, got %T", rec.TargetValue)
	}
	if stat.Status != RecoveryComplete || stat.RecoveryDuration != 5 || stat.CompletedClients != 3 {
		t.Fatalf("unexpected stat: %+v", stat)
	}
}
