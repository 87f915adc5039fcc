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

import "strconv"

// reservedStatsPrefixes lists the subsystem words that a stats-row name must
// never match, so a generic "stats" block never greedily swallows the start
// of the next subsystem's record (§4.2).
var reservedStatsPrefixes = []string{
	"obdfilter", "mgs", "mdt",
	"ldlm", "ost", "llite", "mds", "mdd", "nodemap", "qmt", "osd",
}

// timeTriple parses "snapshot_time: <t>\n" optionally followed by
// "start_time: <t>\nelapsed_time: <t>\n", returning the snapshot_time value.
// Callers are responsible for any newline that precedes the block (§4.2:
// stats blocks allow an optional leading newline; brw_stats blocks require
// one).
func timeTriple(s *Scanner) (string, bool) {
	mark := s.mark()

	t, ok := parseTimeField(s, "snapshot_time")
	if !ok {
		s.reset(mark)
		return "", false
	}
	if !s.newline() {
		s.reset(mark)
		return "", false
	}

	// optional (start_time, elapsed_time) pair
	innerMark := s.mark()
	if _, ok := parseTimeField(s, "start_time"); ok && s.newline() {
		if _, ok := parseTimeField(s, "elapsed_time"); ok && s.newline() {
			return t, true
		}
	}
	s.reset(innerMark)
	return t, true
}

// parseTimeField parses "<name>[:]  <secs>.<nsecs> ...\n" up to (not
// including) the trailing newline, returning "<secs>.<nsecs>".
func parseTimeField(s *Scanner, name string) (string, bool) {
	mark := s.mark()
	if !s.literal(name) {
		s.reset(mark)
		return "", false
	}
	s.literal(":")
	s.spaces()
	secs, _, ok := s.digits()
	if !ok || !s.period() {
		s.reset(mark)
		return "", false
	}
	nsecs, _, ok := s.digits()
	if !ok {
		s.reset(mark)
		return "", false
	}
	s.tillNewline()
	return formatTimePair(secs, nsecs), true
}

func formatTimePair(secs, nsecs uint64) string {
	return strconv.FormatUint(secs, 10) + "." + strconv.FormatUint(nsecs, 10)
}

// parseStatRow parses one row of a stats block:
//
//	<name> <samples> samples [<unit>] [<min> <max> <sum> [<sumsq>]]
func parseStatRow(s *Scanner) (Stat, bool) {
	mark := s.mark()

	name, ok := s.notWords(reservedStatsPrefixes)
	if !ok {
		s.reset(mark)
		return Stat{}, false
	}
	s.spaces()
	samples, neg, ok := s.digits()
	if !ok || neg {
		s.reset(mark)
		return Stat{}, false
	}
	s.spaces()
	if !s.literal("samples") {
		s.reset(mark)
		return Stat{}, false
	}
	s.spaces()
	if !s.literal("[") {
		s.reset(mark)
		return Stat{}, false
	}
	unit, ok := s.word()
	if !ok || !s.literal("]") {
		s.reset(mark)
		return Stat{}, false
	}

	stat := Stat{Name: name, Units: unit, Samples: samples}

	if s.newline() {
		return stat, true
	}

	s.spaces()
	minV, _, ok := s.digits()
	if !ok {
		s.reset(mark)
		return Stat{}, false
	}
	s.spaces()
	maxV, _, ok := s.digits()
	if !ok {
		s.reset(mark)
		return Stat{}, false
	}
	s.spaces()
	sumV, _, ok := s.digits()
	if !ok {
		s.reset(mark)
		return Stat{}, false
	}
	stat.Min, stat.Max, stat.Sum = &minV, &maxV, &sumV

	if s.newline() {
		return stat, true
	}

	s.spaces()
	sumsqV, _, ok := s.digits()
	if !ok {
		s.reset(mark)
		return Stat{}, false
	}
	stat.SumSquare = &sumsqV
	s.newline()
	return stat, true
}

// parseStats parses a full stats block: an optional time triple followed by
// zero or more stat rows (§4.2).
func parseStats(s *Scanner) ([]Stat, error) {
	s.newline() // optional leading newline, per §4.2
	timeTriple(s)

	var stats []Stat
	for {
		row, ok := parseStatRow(s)
		if !ok {
			break
		}
		stats = append(stats, row)
	}
	return stats, nil
}
