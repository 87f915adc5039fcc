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
	paramTotDirty   = "tot_dirty"
	paramTotGranted = "tot_granted"
	paramTotPending = "tot_pending"
)

// obdfilterParams returns the lctl get_param query fragments for the OST
// subsystem (§4.4: "OBD filter"). job_stats is queried separately by the
// jobstats streaming reader, not by this line-oriented dispatcher.
func obdfilterParams() []string {
	return []string{
		"obdfilter.*OST*." + paramStats,
		"obdfilter.*OST*." + paramNumExports,
		"obdfilter.*OST*." + paramTotDirty,
		"obdfilter.*OST*." + paramTotGranted,
		"obdfilter.*OST*." + paramTotPending,
		"obdfilter.*OST*.exports.*.stats",
	}
}

// obdfilterClientCountParams returns the lctl get_param query fragment for
// the OST client-count namespace (§4.4: "Client-count").
func obdfilterClientCountParams() []string { return []string{"obdfilter.*.exports.*.uuid"} }

// obdfilterClientCount recognises the run of obdfilter.*.exports.*.uuid
// lines (§4.4: "Client-count").
func obdfilterClientCount(s *Scanner) ([]Record, bool, error) {
	recs, err := clientCounts(s, "obdfilter", Ost)
	if err != nil {
		return nil, true, err
	}
	return recs, len(recs) > 0, nil
}

// obdfilterTargetName recognises "obdfilter.<target>." and returns <target>.
func obdfilterTargetName(s *Scanner) (string, bool) {
	mark := s.mark()
	if !s.literal("obdfilter") || !s.period() {
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

// obdfilterExportsStats recognises
// "obdfilter.<target>.exports.<nid>.stats=<block>" (§4.4: "Exports stats").
func obdfilterExportsStats(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	name, ok := obdfilterTargetName(s)
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
		Kind: RecordTarget, TargetKind: Ost, TargetName: name,
		TargetParam: "exports_stats", TargetValue: ExportStats{NID: nid, Stats: stats},
	}, true, nil
}

// parseObdfilter recognises one
// obdfilter.<target>.{stats,num_exports,tot_dirty,tot_granted,tot_pending}
// record (§4.4: "OBD filter").
func parseObdfilter(s *Scanner) (Record, bool, error) {
	if rec, ok, err := obdfilterExportsStats(s); ok || err != nil {
		return rec, ok, err
	}

	mark := s.mark()
	name, ok := obdfilterTargetName(s)
	if !ok {
		s.reset(mark)
		return Record{}, false, nil
	}

	rec := func(param string, value interface{}) Record {
		return Record{Kind: RecordTarget, TargetKind: Ost, TargetName: name, TargetParam: param, TargetValue: value}
	}

	if _, ok := s.param(paramStats); ok {
		stats, err := parseStats(s)
		if err != nil {
			return Record{}, true, err
		}
		return rec(paramStats, stats), true, nil
	}
	if _, ok := s.param(paramNumExports); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramNumExports, v), true, nil
	}
	if _, ok := s.param(paramTotDirty); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramTotDirty, v), true, nil
	}
	if _, ok := s.param(paramTotGranted); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramTotGranted, v), true, nil
	}
	if _, ok := s.param(paramTotPending); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramTotPending, v), true, nil
	}

	s.reset(mark)
	return Record{}, false, nil
}
