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

// isClient reports whether one exports.*.uuid value names a real client (a
// bare UUID) as opposed to another Lustre service connection, which always
// carries a "_UUID" suffix (§4.4: "Client-count").
func isClient(uuid string) bool {
	return !strings.HasSuffix(uuid, "_UUID")
}

// exportsInterfaceTarget recognises "<prefix>.<target>.exports.<nid>.uuid="
// where prefix is "mgs", "mdt" or "obdfilter", yielding the target name.
func exportsInterfaceTarget(s *Scanner, prefix string) (string, bool) {
	mark := s.mark()
	if !s.literal(prefix) || !s.period() {
		s.reset(mark)
		return "", false
	}
	name, ok := s.target()
	if !ok || !s.period() {
		s.reset(mark)
		return "", false
	}
	if !s.literal("exports") || !s.period() {
		s.reset(mark)
		return "", false
	}
	if _, ok := s.nid(); !ok {
		s.reset(mark)
		return "", false
	}
	if !s.period() {
		s.reset(mark)
		return "", false
	}
	if _, ok := s.param("uuid"); !ok {
		s.reset(mark)
		return "", false
	}
	return name, true
}

// interfaceClients parses one "<prefix>.<target>.exports.<nid>.uuid=<...>"
// record and counts the clients it reports: either a single UUID on the same
// line, or (after a bare trailing newline) a list of UUID lines terminated
// by the next non-UUID line.
func interfaceClients(s *Scanner, prefix string) (target string, count uint64, ok bool, err error) {
	mark := s.mark()
	target, ok = exportsInterfaceTarget(s, prefix)
	if !ok {
		return "", 0, false, nil
	}

	if s.newline() {
		for {
			lineMark := s.mark()
			line := s.tillNewline()
			if !s.newline() {
				s.reset(lineMark)
				break
			}
			if isClient(line) {
				count++
			}
		}
		return target, count, true, nil
	}

	line := s.tillNewline()
	if !s.newline() {
		s.reset(mark)
		return "", 0, false, nil
	}
	if isClient(line) {
		count = 1
	}
	return target, count, true, nil
}

// clientCounts sums interfaceClients across every export line for one
// subsystem prefix ("mgs", "mdt" or "obdfilter"), then emits one connected_clients
// TargetStat per target (§4.4, §4.7).
func clientCounts(s *Scanner, prefix string, kind TargetVariant) ([]Record, error) {
	totals := make(map[string]uint64)
	var order []string

	for {
		target, count, ok, err := interfaceClients(s, prefix)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if _, seen := totals[target]; !seen {
			order = append(order, target)
		}
		totals[target] += count
	}

	if len(order) == 0 {
		return nil, nil
	}
	records := make([]Record, 0, len(order))
	for _, target := range order {
		records = append(records, Record{
			Kind: RecordTarget, TargetKind: kind, TargetName: target,
			TargetParam: "connected_clients", TargetValue: totals[target],
		})
	}
	return records, nil
}
