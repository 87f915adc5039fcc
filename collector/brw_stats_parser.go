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

// brwHeaderKeys maps the human phrase that introduces a brw_stats histogram
// to its short key (§4.3).
var brwHeaderKeys = []struct{ phrase, key string }{
	{"pages per bulk r/w", "pages"},
	{"discontiguous pages", "discont_pages"},
	{"discontiguous blocks", "discont_blocks"},
	{"disk fragmented I/Os", "dio_frags"},
	{"disk I/Os in flight", "rpc_hist"},
	{"I/O time (1/1000s)", "io_time"},
	{"disk I/O size", "disk_iosize"},
	{"block maps msec", "block_maps_msec"},
}

// humanSizeToBytes expands a decimal magnitude with an optional K/M/G/k/m/g
// suffix into bytes (§4.3, §6, Scenario A).
func humanSizeToBytes(value uint64, suffix byte) uint64 {
	switch suffix {
	case 'K', 'k':
		return value * (1 << 10)
	case 'M', 'm':
		return value * (1 << 20)
	case 'G', 'g':
		return value * (1 << 30)
	default:
		return value
	}
}

func rwColumns(s *Scanner) bool {
	mark := s.mark()
	if !s.literal("read") {
		s.reset(mark)
		return false
	}
	s.spaces()
	if !s.literal("|") {
		s.reset(mark)
		return false
	}
	s.spaces()
	if !s.literal("write") {
		s.reset(mark)
		return false
	}
	s.tillNewline()
	return true
}

func brwHeader(s *Scanner) (BrwStats, bool) {
	mark := s.mark()
	for _, k := range brwHeaderKeys {
		if name, ok := s.stringTo(k.phrase, k.key); ok {
			s.spaces()
			unit, ok := s.word()
			if !ok {
				s.reset(mark)
				return BrwStats{}, false
			}
			s.tillNewline()
			return BrwStats{Name: name, Unit: unit}, true
		}
	}
	return BrwStats{}, false
}

func brwBucket(s *Scanner) (BrwStatsBucket, bool) {
	mark := s.mark()

	size, neg, ok := s.digits()
	if !ok || neg {
		s.reset(mark)
		return BrwStatsBucket{}, false
	}
	var suffix byte
	if s.pos < len(s.input) {
		c := s.input[s.pos]
		if c == 'K' || c == 'k' || c == 'M' || c == 'm' || c == 'G' || c == 'g' {
			suffix = c
			s.pos++
		}
	}
	if !s.literal(":") {
		s.reset(mark)
		return BrwStatsBucket{}, false
	}
	s.spaces()
	read, _, ok := s.digits()
	if !ok {
		s.reset(mark)
		return BrwStatsBucket{}, false
	}
	s.spaces()
	if _, _, ok := s.digits(); !ok { // relative %
		s.reset(mark)
		return BrwStatsBucket{}, false
	}
	s.spaces()
	if _, _, ok := s.digits(); !ok { // cumulative %
		s.reset(mark)
		return BrwStatsBucket{}, false
	}
	s.spaces()
	if !s.literal("|") {
		s.reset(mark)
		return BrwStatsBucket{}, false
	}
	s.spaces()
	write, _, ok := s.digits()
	if !ok {
		s.reset(mark)
		return BrwStatsBucket{}, false
	}
	s.spaces()
	if _, _, ok := s.digits(); !ok { // relative %
		s.reset(mark)
		return BrwStatsBucket{}, false
	}
	s.spaces()
	if _, _, ok := s.digits(); !ok { // cumulative %
		s.reset(mark)
		return BrwStatsBucket{}, false
	}
	s.tillNewline()

	return BrwStatsBucket{Name: humanSizeToBytes(size, suffix), Read: read, Write: write}, true
}

func brwSection(s *Scanner) (BrwStats, bool) {
	mark := s.mark()
	if !rwColumns(s) || !s.newline() {
		s.reset(mark)
		return BrwStats{}, false
	}
	stats, ok := brwHeader(s)
	if !ok || !s.newline() {
		s.reset(mark)
		return BrwStats{}, false
	}
	for {
		bucket, ok := brwBucket(s)
		if !ok {
			break
		}
		stats.Buckets = append(stats.Buckets, bucket)
		if !s.newline() {
			break
		}
	}
	s.spaces()
	return stats, true
}

// parseBrwStats parses a full brw_stats file: a leading time triple followed
// by one or more sections (read|write header, histogram name, bucket rows).
func parseBrwStats(s *Scanner) ([]BrwStats, error) {
	if !s.newline() {
		return nil, newParseErr(s, "brw_stats leading newline", "\\n")
	}
	timeTriple(s)
	s.spaces()

	var sections []BrwStats
	for {
		section, ok := brwSection(s)
		if !ok {
			break
		}
		sections = append(sections, section)
	}
	if len(sections) == 0 {
		return nil, newParseErr(s, "brw_stats section", "read | write")
	}
	return sections, nil
}
