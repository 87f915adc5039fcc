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

import (
	"strconv"
	"strings"
)

// Scanner is a small cursor over the input text used by the recursive-descent
// parsers in this package. Every recogniser either advances pos and returns
// ok=true, or leaves pos untouched and returns ok=false so callers can try
// the next alternative (the ordered-choice dispatch of §4.9).
type Scanner struct {
	input string
	pos   int
}

// NewScanner wraps a string for recursive-descent parsing.
func NewScanner(input string) *Scanner { return &Scanner{input: input} }

// Pos returns the current byte offset, used in ParseError.
func (s *Scanner) Pos() int { return s.pos }

// Rest returns the unconsumed remainder of input.
func (s *Scanner) Rest() string { return s.input[s.pos:] }

// Eof reports whether the scanner is exhausted.
func (s *Scanner) Eof() bool { return s.pos >= len(s.input) }

// mark/reset let a parser backtrack after a failed multi-token sequence.
func (s *Scanner) mark() int       { return s.pos }
func (s *Scanner) reset(mark int)  { s.pos = mark }

func isAlphaNum(r byte) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// period consumes a literal '.'.
func (s *Scanner) period() bool { return s.literal(".") }

// equals consumes a literal '='.
func (s *Scanner) equals() bool { return s.literal("=") }

func (s *Scanner) literal(lit string) bool {
	if strings.HasPrefix(s.Rest(), lit) {
		s.pos += len(lit)
		return true
	}
	return false
}

// word consumes one or more alphanumerics or underscores.
func (s *Scanner) word() (string, bool) {
	start := s.pos
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if isAlphaNum(c) || c == '_' {
			s.pos++
			continue
		}
		break
	}
	if s.pos == start {
		return "", false
	}
	return s.input[start:s.pos], true
}

// target consumes one or more alphanumerics, '_', or '-'.
func (s *Scanner) target() (string, bool) {
	start := s.pos
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if isAlphaNum(c) || c == '_' || c == '-' {
			s.pos++
			continue
		}
		break
	}
	if s.pos == start {
		return "", false
	}
	return s.input[start:s.pos], true
}

// digits consumes an optional leading '-' then one or more decimal digits,
// returning the unsigned value. A leading '-' is folded into the returned
// sign flag rather than failing the parse; callers such as lnet_memused use
// it to clamp a reported-negative counter to zero (§9).
func (s *Scanner) digits() (value uint64, negative bool, ok bool) {
	start := s.pos
	neg := false
	if s.pos < len(s.input) && s.input[s.pos] == '-' {
		neg = true
		s.pos++
	}
	digitStart := s.pos
	for s.pos < len(s.input) && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == digitStart {
		s.pos = start
		return 0, false, false
	}
	v, err := strconv.ParseUint(s.input[digitStart:s.pos], 10, 64)
	if err != nil {
		s.pos = start
		return 0, false, false
	}
	return v, neg, true
}

// digitsPositive behaves like digits but returns ok=false for a negative
// input instead of folding the sign, per the `digits_positive` contract.
func (s *Scanner) digitsPositive() (uint64, bool) {
	mark := s.mark()
	v, neg, ok := s.digits()
	if !ok {
		return 0, false
	}
	if neg {
		s.reset(mark)
		return 0, false
	}
	return v, true
}

// tillNewline takes everything up to (not including) the next '\n'.
func (s *Scanner) tillNewline() string {
	idx := strings.IndexByte(s.Rest(), '\n')
	if idx < 0 {
		rest := s.Rest()
		s.pos += len(rest)
		return rest
	}
	out := s.input[s.pos : s.pos+idx]
	s.pos += idx
	return out
}

// tillPeriod takes everything up to (not including) the next '.'.
func (s *Scanner) tillPeriod() string {
	idx := strings.IndexByte(s.Rest(), '.')
	if idx < 0 {
		rest := s.Rest()
		s.pos += len(rest)
		return rest
	}
	out := s.input[s.pos : s.pos+idx]
	s.pos += idx
	return out
}

// newline consumes a single '\n'.
func (s *Scanner) newline() bool { return s.literal("\n") }

// spaces consumes zero or more ' ' characters.
func (s *Scanner) spaces() {
	for s.pos < len(s.input) && s.input[s.pos] == ' ' {
		s.pos++
	}
}

// param recognises the literal x followed by '=', yielding x as the param name.
func (s *Scanner) param(x string) (string, bool) {
	mark := s.mark()
	if !s.literal(x) {
		return "", false
	}
	if !s.equals() {
		s.reset(mark)
		return "", false
	}
	return x, true
}

// paramPeriod recognises the literal x followed by '.', yielding x.
func (s *Scanner) paramPeriod(x string) (string, bool) {
	mark := s.mark()
	if !s.literal(x) {
		return "", false
	}
	if !s.period() {
		s.reset(mark)
		return "", false
	}
	return x, true
}

// notWords recognises a word that is not a member of the reserved set xs,
// used to keep subsystem-prefixed stats blocks from being greedily consumed
// by the generic stats-row parser.
func (s *Scanner) notWords(xs []string) (string, bool) {
	mark := s.mark()
	w, ok := s.word()
	if !ok {
		return "", false
	}
	for _, x := range xs {
		if x == w {
			s.reset(mark)
			return "", false
		}
	}
	return w, true
}

// nid recognises "<ip-or-host>@<lnet>".
func (s *Scanner) nid() (string, bool) {
	mark := s.mark()
	start := s.pos
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if isAlphaNum(c) || c == '.' {
			s.pos++
			continue
		}
		break
	}
	if s.pos == start {
		s.reset(mark)
		return "", false
	}
	if !s.literal("@") {
		s.reset(mark)
		return "", false
	}
	lnetStart := s.pos
	for s.pos < len(s.input) && isAlphaNum(s.input[s.pos]) {
		s.pos++
	}
	if s.pos == lnetStart {
		s.reset(mark)
		return "", false
	}
	return s.input[start:s.pos], true
}

// stringTo recognises literal x and maps it to y, used by the brw-stats
// header to translate human phrases into short histogram keys (§4.3).
func (s *Scanner) stringTo(x, y string) (string, bool) {
	if s.literal(x) {
		return y, true
	}
	return "", false
}
