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

import "strings"

// ParseCPUStats decodes one "/proc/stat"-style "cpu ..." line into the four
// host-level CPU counters the registry exports (§4.4: "Node cpu/mem").
func ParseCPUStats(output string) ([]Record, error) {
	s := NewScanner(output)
	if !s.literal("cpu") {
		return nil, newParseErr(s, "cpu stats", "cpu")
	}
	s.spaces()

	var fields []uint64
	for {
		v, _, ok := s.digits()
		if !ok {
			break
		}
		fields = append(fields, v)
		s.spaces()
	}

	get := func(i int) uint64 {
		if i < len(fields) {
			return fields[i]
		}
		return 0
	}
	var total uint64
	for i := 0; i < len(fields) && i < 6; i++ {
		total += fields[i]
	}

	return []Record{
		{Kind: RecordHost, HostParam: "cpu_total", HostValue: total},
		{Kind: RecordHost, HostParam: "cpu_user", HostValue: get(0)},
		{Kind: RecordHost, HostParam: "cpu_iowait", HostValue: get(4)},
		{Kind: RecordHost, HostParam: "cpu_system", HostValue: get(2) + get(5)},
	}, nil
}

// meminfoFields maps a "/proc/meminfo" key to its exported host param name
// (§4.4: "Node cpu/mem").
var meminfoFields = map[string]string{
	"MemTotal":  "mem_total",
	"MemFree":   "mem_free",
	"SwapTotal": "swap_total",
	"SwapFree":  "swap_free",
}

// ParseMemInfo decodes a "/proc/meminfo"-style block, keeping only the four
// fields meminfoFields names and ignoring the rest (§4.4: "Node cpu/mem").
func ParseMemInfo(output string) ([]Record, error) {
	var records []Record
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		param, wanted := meminfoFields[key]
		if !wanted {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		s := NewScanner(fields[0])
		v, _, ok := s.digits()
		if !ok {
			continue
		}
		records = append(records, Record{Kind: RecordHost, HostParam: param, HostValue: v})
	}
	return records, nil
}
