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

const paramMdStats = "md_stats"

// mdtClientCountParams/mdtParams return the lctl get_param query fragments
// for the MDT subsystem (§4.4: "MDT").
func mdtClientCountParams() []string { return []string{"mdt.*.exports.*.uuid"} }

func mdtParams() []string {
	return []string{
		"mdt.*.job_stats",
		"mdt.*." + paramMdStats,
		"mdt.*." + paramNumExports,
		"mdt.*.exports.*.stats",
	}
}

// mdtClientCount recognises the run of mdt.*.exports.*.uuid lines (§4.4:
// "Client-count").
func mdtClientCount(s *Scanner) ([]Record, bool, error) {
	recs, err := clientCounts(s, "mdt", Mdt)
	if err != nil {
		return nil, true, err
	}
	return recs, len(recs) > 0, nil
}

// mdtTargetName recognises "mdt.<target>." and returns <target>.
func mdtTargetName(s *Scanner) (string, bool) {
	mark := s.mark()
	if !s.literal("mdt") || !s.period() {
		s.reset(mark)
		return "", false
	}
	name, ok := s.target()
	if !ok || !s.period() {
		s.reset(mark)
		return "", false
	}
	return name, true
}

// mdtExportsStats recognises "mdt.<target>.exports.<nid>.stats=<block>"
// (§4.4: "Exports stats").
func mdtExportsStats(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	name, ok := mdtTargetName(s)
	if !ok {
		s.reset(mark)
		return Record{}, false, nil
	}
	if !s.literal("exports") || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}
	nid, ok := s.nid()
	if !ok || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}
	if _, ok := s.param("stats"); !ok {
		s.reset(mark)
		return Record{}, false, nil
	}
	stats, err := parseStats(s)
	if err != nil {
		return Record{}, true, err
	}
	return Record{
		Kind: RecordTarget, TargetKind: Mdt, TargetName: name,
		TargetParam: "exports_stats", TargetValue: ExportStats{NID: nid, Stats: stats},
	}, true, nil
}

// parseMdt recognises one mdt.<target>.{job_stats,md_stats,num_exports}
// record (§4.4: "MDT"). job_stats is a raw text blob handed to the
// jobstats streaming parser rather than consumed here.
func parseMdt(s *Scanner) (Record, bool, error) {
	if rec, ok, err := mdtExportsStats(s); ok || err != nil {
		return rec, ok, err
	}

	mark := s.mark()
	name, ok := mdtTargetName(s)
	if !ok {
		s.reset(mark)
		return Record{}, false, nil
	}

	rec := func(param string, value interface{}) Record {
		return Record{Kind: RecordTarget, TargetKind: Mdt, TargetName: name, TargetParam: param, TargetValue: value}
	}

	if _, ok := s.param(paramNumExports); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramNumExports, v), true, nil
	}
	if _, ok := s.param(paramMdStats); ok {
		stats, err := parseStats(s)
		if err != nil {
			return Record{}, true, err
		}
		return rec(paramMdStats, stats), true, nil
	}

	s.reset(mark)
	return Record{}, false, nil
}
