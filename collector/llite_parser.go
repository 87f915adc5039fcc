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

// llite client mount points report their own stats under "llite.*.stats"
// (§4.4: "LLite").
func lliteParams() []string { return []string{"llite.*.stats"} }

// parseLlite recognises one "llite.<target>.stats=<block>" record (§4.4:
// "LLite").
func parseLlite(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	if !s.literal("llite") || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}
	name, ok := s.target()
	if !ok || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}
	if _, ok := s.param(paramStats); !ok {
		s.reset(mark)
		return Record{}, false, nil
	}
	stats, err := parseStats(s)
	if err != nil {
		return Record{}, true, err
	}

	kind, err := DeriveTargetVariant(name)
	if err != nil {
		kind = Mdt
	}
	return Record{
		Kind: RecordTarget, TargetKind: kind, TargetName: name,
		TargetParam: paramStats, TargetValue: stats,
	}, true, nil
}
