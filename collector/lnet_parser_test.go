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

func TestParseLNetNetShow(t *testing.T) {
	input := `
net:
    - net type: tcp
      local NI(s):
        - nid: 10.0.0.1@tcp
          statistics:
              send_count: 42
              recv_count: 43
              drop_count: 1
`
	recs, err := ParseLNetNetShow(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for _, r := range recs {
		if r.Kind != RecordLNet || r.LNetNID != "10.0.0.1@tcp" {
			t.Fatalf("unexpected record: %+v", r)
		}
	}
	if recs[0].LNetParam != "send_count" || recs[0].LNetValue != uint64(42) {
		t.Fatalf("unexpected send_count record: %+v", recs[0])
	}
}

func TestParseLNetNetShowEmptyInput(t *testing.T) {
	recs, err := ParseLNetNetShow("   \n")
	if err != nil {
		t.Fatal(err)
	}
	if recs != nil {
		t.Fatalf("expected nil records for empty input, got %+v", recs)
	}
}

func TestParseLNetStatsShow(t *testing.T) {
	input := `
statistics:
    send_length: 100
    recv_length: 200
    drop_length: 3
`
	recs, err := ParseLNetStatsShow(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[1].LNetParam != "recv_length" || recs[1].LNetValue != uint64(200) {
		t.Fatalf("unexpected recv_length record: %+v", recs[1])
	}
}

func TestParseLNetStatsShowMalformedYAML(t *testing.T) {
	if _, err := ParseLNetStatsShow("statistics: [this is not a map"); err == nil {
		t.Fatal("expected a YAML decode error")
	}
}
