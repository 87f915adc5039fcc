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

// exportStat recognises one "<nid>.stats=<stats-block>" fragment under a
// target's exports.* namespace (§4.4: "Exports stats").
func exportStat(s *Scanner) (ExportStats, bool, error) {
	mark := s.mark()
	nid, ok := s.nid()
	if !ok || !s.period() {
		s.reset(mark)
		return ExportStats{}, false, nil
	}
	if _, ok := s.param("stats"); !ok {
		s.reset(mark)
		return ExportStats{}, false, nil
	}
	stats, err := parseStats(s)
	if err != nil {
		return ExportStats{}, true, err
	}
	return ExportStats{NID: nid, Stats: stats}, true, nil
}

// exportStats parses zero or more consecutive export stat blocks.
func exportStats(s *Scanner) ([]ExportStats, error) {
	var out []ExportStats
	for {
		stat, ok, err := exportStat(s)
		if err != nil {
			return out, err
		}
		if !ok {
			break
		}
		out = append(out, stat)
	}
	return out, nil
}
