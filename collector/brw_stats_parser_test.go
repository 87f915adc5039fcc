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

func TestParseOsdBrwStats(t *testing.T) {
	input := "osd-lustre-OST0000.lustre-OST0000.brw_stats=\n" +
		"snapshot_time: 1700000000.000000000 secs.nsecs\n" +
		"read | write\n" +
		"pages per bulk r/w    rpcs\n" +
		"1:     10   50   50   |    5   50   50\n" +
		"4:     10   50  100   |    5   50  100\n"

	recs, err := ParseRecords(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(recs), recs)
	}

	sections, ok := recs[0].TargetValue.([]BrwStats)
	if !ok {
		t.Fatalf("expected []BrwStats, got %T", recs[0].TargetValue)
	}
	if len(sections) != 1 || sections[0].Name != "pages" || sections[0].Unit != "rpcs" {
		t.Fatalf("unexpected sections: %+v", sections)
	}
	if len(sections[0].Buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d: %+v", len(sections[0].Buckets), sections[0].Buckets)
	}
	if sections[0].Buckets[0].Name != 1 || sections[0].Buckets[0].Read != 10 || sections[0].Buckets[0].Write != 5 {
		t.Fatalf("unexpected first bucket: %+v", sections[0].Buckets[0])
	}
	if sections[0].Buckets[1].Name != 4 || sections[0].Buckets[1].Read != 10 || sections[0].Buckets[1].Write != 5 {
		t.Fatalf("unexpected second bucket: %+v", sections[0].Buckets[1])
	}
}

func TestHumanSizeToBytes(t *testing.T) {
	cases := []struct {
		value  uint64
		suffix byte
		want   uint64
	}{
		{4, 'K', 4096},
		{1, 'M', 1 << 20},
		{1, 'G', 1 << 30},
		{512, 0, 512},
	}
	for _, c := range cases {
		if got := humanSizeToBytes(c.value, c.suffix); got != c.want {
			t.Fatalf("humanSizeToBytes(%d, %q) = %d, want %d", c.value, c.suffix, got, c.want)
		}
	}
}
