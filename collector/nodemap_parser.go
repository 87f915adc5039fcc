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

const paramDtStats = "dt_stats"

func nodemapParams() []string {
	return []string{"nodemap.*." + paramDtStats, "nodemap.*." + paramMdStats}
}

// parseNodemap recognises one "nodemap.<name>.{md_stats,dt_stats}=<block>"
// record. md_stats is reported against the Mdt target kind and dt_stats
// against Ost, per the nodemap fabric's MD/DT split (§4.4: "Nodemap").
func parseNodemap(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	if !s.literal("nodemap") || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}
	name, ok := s.target()
	if !ok || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}

	var kind TargetVariant
	var param string
	if _, ok := s.param(paramMdStats); ok {
		kind, param = Mdt, paramMdStats
	} else if _, ok := s.param(paramDtStats); ok {
		kind, param = Ost, paramDtStats
	} else {
		s.reset(mark)
		return Record{}, false, nil
	}

	stats, err := parseStats(s)
	if err != nil {
		return Record{}, true, err
	}
	return Record{
		Kind: RecordTarget, TargetKind: kind, TargetName: name,
		TargetParam: param, TargetValue: stats,
	}, true, nil
}
