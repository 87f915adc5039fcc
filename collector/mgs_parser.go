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

const (
	paramMgsThreadsMin     = "threads_min"
	paramMgsThreadsMax     = "threads_max"
	paramMgsThreadsStarted = "threads_started"
	paramNumExports        = "num_exports"
	paramStats             = "stats"
)

// mgsClientCountParams/mgsParams/mgsFsnameParams return the lctl get_param
// query fragments for the MGS subsystem (§4.4: "MGS").
func mgsClientCountParams() []string { return []string{"mgs.*.exports.*.uuid"} }

func mgsParams() []string {
	return []string{
		"mgs.*.mgs." + paramStats,
		"mgs.*.mgs." + paramMgsThreadsMax,
		"mgs.*.mgs." + paramMgsThreadsMin,
		"mgs.*.mgs." + paramMgsThreadsStarted,
		"mgs.*." + paramNumExports,
	}
}

func mgsFsnameParams() []string { return []string{"mgs.*.live.*"} }

// mgsClientCount recognises the run of mgs.*.exports.*.uuid lines (§4.4:
// "Client-count").
func mgsClientCount(s *Scanner) ([]Record, bool, error) {
	recs, err := clientCounts(s, "mgs", Mgt)
	if err != nil {
		return nil, true, err
	}
	return recs, len(recs) > 0, nil
}

// mgsTargetName recognises "mgs.<target>." and returns <target>.
func mgsTargetName(s *Scanner) (string, bool) {
	mark := s.mark()
	if !s.literal("mgs") || !s.period() {
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

// mgsFsnames recognises one run of "mgs.<target>.live.<fsname>\n" lines,
// grouping by target and excluding the reserved "params"/"nodemap" pseudo-fs
// entries (§4.4: "MGS fsnames").
func mgsFsnames(s *Scanner) ([]Record, bool, error) {
	mark := s.mark()

	byTarget := make(map[string][]string)
	var order []string

	for {
		lineMark := s.mark()
		name, ok := mgsTargetName(s)
		if !ok {
			s.reset(lineMark)
			break
		}
		if !s.literal("live") || !s.period() {
			s.reset(lineMark)
			break
		}
		fsname, ok := s.word()
		if !ok || !s.newline() {
			s.reset(lineMark)
			break
		}
		if fsname == "params" || fsname == "nodemap" {
			continue
		}
		if _, seen := byTarget[name]; !seen {
			order = append(order, name)
		}
		byTarget[name] = append(byTarget[name], fsname)
	}

	if len(order) == 0 {
		s.reset(mark)
		return nil, false, nil
	}

	records := make([]Record, 0, len(order))
	for _, target := range order {
		records = append(records, Record{
			Kind: RecordTarget, TargetKind: Mgt, TargetName: target,
			TargetParam: "fsnames", TargetValue: byTarget[target],
		})
	}
	return records, true, nil
}

// parseMgs recognises one mgs.<target>.{mgs.stats,mgs.threads_*,num_exports}
// record (§4.4: "MGS").
func parseMgs(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	name, ok := mgsTargetName(s)
	if !ok {
		s.reset(mark)
		return Record{}, false, nil
	}

	rec := func(param string, value interface{}) Record {
		return Record{Kind: RecordTarget, TargetKind: Mgt, TargetName: name, TargetParam: param, TargetValue: value}
	}

	if _, ok := s.param(paramNumExports); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramNumExports, v), true, nil
	}

	if !s.literal("mgs") || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}

	if _, ok := s.param(paramStats); ok {
		stats, err := parseStats(s)
		if err != nil {
			return Record{}, true, err
		}
		return rec(paramStats, stats), true, nil
	}
	if _, ok := s.param(paramMgsThreadsMin); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramMgsThreadsMin, v), true, nil
	}
	if _, ok := s.param(paramMgsThreadsMax); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramMgsThreadsMax, v), true, nil
	}
	if _, ok := s.param(paramMgsThreadsStarted); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramMgsThreadsStarted, v), true, nil
	}

	s.reset(mark)
	return Record{}, false, nil
}
