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

func TestParseTopLevelMemused(t *testing.T) {
	recs, err := ParseRecords("memused=12345\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].HostParam != "memused" || recs[0].HostValue.(uint64) != 12345 {
		t.Fatalf("unexpected record: %+v", recs[0])
	}
}

func TestParseTopLevelLnetMemusedNegativeClampsToZero(t *testing.T) {
	recs, err := ParseRecords("lnet_memused=-48\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].HostValue.(uint64) != 0 {
		t.Fatalf("expected negative lnet_memused to clamp to 0, got %v", recs[0].HostValue)
	}
}

func TestParseTopLevelHealthCheckHealthy(t *testing.T) {
	recs, err := ParseRecords("health_check=healthy\n")
	if err != nil {
		t.Fatal(err)
	}
	h := recs[0].HostValue.(HealthCheckStat)
	if !h.Healthy {
		t.Fatalf("expected healthy, got %+v", h)
	}
}

func TestParseTopLevelHealthCheckUnhealthyTargets(t *testing.T) {
	input := "health_check=device lustre-OST0000 reported unhealthy\nNOT HEALTHY\n"
	recs, err := ParseRecords(input)
	if err != nil {
		t.Fatal(err)
	}
	h := recs[0].HostValue.(HealthCheckStat)
	if h.Healthy {
		t.Fatal("expected unhealthy")
	}
	if len(h.Targets) != 1 || h.Targets[0] != "lustre-OST0000" {
		t.Fatalf("unexpected targets: %+v", h.Targets)
	}
}

func TestParseRecordsRejectsUnrecognisedInput(t *testing.T) {
	_, err := ParseRecords("not.a.real.param=garbage\n")
	if err == nil {
		t.Fatal("expected an error for unrecognised input")
	}
}
