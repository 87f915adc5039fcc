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

const paramRecoveryStatus = "recovery_status"

func recoveryStatusParams() []string {
	return []string{
		"obdfilter.*OST*." + paramRecoveryStatus,
		"mdt.*MDT*." + paramRecoveryStatus,
	}
}

// recoveryTargetInfo recognises "{obdfilter,mdt}.<target>.recovery_status="
// (§4.4: "Recovery status").
func recoveryTargetInfo(s *Scanner) (TargetVariant, string, bool) {
	mark := s.mark()

	var kind TargetVariant
	switch {
	case s.literal("obdfilter"):
		kind = Ost
	case s.literal("mdt"):
		kind = Mdt
	default:
		return 0, "", false
	}
	if !s.period() {
		s.reset(mark)
		return 0, "", false
	}
	name, ok := s.target()
	if !ok || !s.period() {
		s.reset(mark)
		return 0, "", false
	}
	if _, ok := s.param(paramRecoveryStatus); !ok {
		s.reset(mark)
		return 0, "", false
	}
	return kind, name, true
}

// clientsLine recognises "<name>[:] <count>[/<total>]" optionally followed
// by a newline, returning the count and an optional total (§4.4: "Recovery
// status").
func clientsLine(s *Scanner, name string) (count uint64, total uint64, hasTotal bool, ok bool) {
	mark := s.mark()
	if !s.literal(name) {
		return 0, 0, false, false
	}
	s.literal(":")
	s.spaces()
	count, _, ok = s.digits()
	if !ok {
		s.reset(mark)
		return 0, 0, false, false
	}
	if s.literal("/") {
		total, _, ok = s.digits()
		if !ok {
			s.reset(mark)
			return 0, 0, false, false
		}
		hasTotal = true
	}
	s.newline()
	return count, total, hasTotal, true
}

// recoveryStatusLine recognises one line of a recovery_status block,
// updating stat in place. It reports ok=false, with the scanner unmoved,
// once a line no longer matches any recognised or ignorable pattern, which
// ends the block (§4.4: "Recovery status").
func recoveryStatusLine(s *Scanner, stat *RecoveryStat) bool {
	mark := s.mark()

	if s.literal("status") {
		s.literal(":")
		s.spaces()
		text := s.tillNewline()
		s.newline()
		stat.Status = ParseRecoveryStatus(text)
		return true
	}

	if count, _, _, ok := clientsLine(s, "recovery_duration"); ok {
		stat.RecoveryDuration = count
		return true
	}
	if count, _, _, ok := clientsLine(s, "completed_clients"); ok {
		stat.CompletedClients = count
		return true
	}
	if count, _, _, ok := clientsLine(s, "time_remaining"); ok {
		stat.TimeRemaining = count
		return true
	}
	if count, _, _, ok := clientsLine(s, "evicted_clients"); ok {
		stat.EvictedClients = count
		return true
	}
	if count, total, hasTotal, ok := clientsLine(s, "connected_clients"); ok {
		stat.ConnectedClients = count
		if hasTotal {
			t := total
			stat.ConnectedClientsN = &t
		}
		return true
	}

	name, ok := s.target()
	if !ok || !s.literal(":") {
		s.reset(mark)
		return false
	}
	s.tillNewline()
	if !s.newline() {
		s.reset(mark)
		return false
	}
	_ = name
	return true
}

// parseRecoveryStatus recognises one full
// "{obdfilter,mdt}.<target>.recovery_status=<block>" record (§4.4:
// "Recovery status").
func parseRecoveryStatus(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	kind, name, ok := recoveryTargetInfo(s)
	if !ok {
		s.reset(mark)
		return Record{}, false, nil
	}
	s.newline()

	var stat RecoveryStat
	for recoveryStatusLine(s, &stat) {
	}

	return Record{
		Kind: RecordTarget, TargetKind: kind, TargetName: name,
		TargetParam: paramRecoveryStatus, TargetValue: stat,
	}, true, nil
}
