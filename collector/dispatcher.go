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

// subsystem bundles one candidate record parser with the multi-record
// client-count parsers that only fire at a line boundary.
type subsystem struct {
	name string
	one  func(*Scanner) (Record, bool, error)
	many func(*Scanner) ([]Record, bool, error)
}

// subsystems lists every candidate parser in the exact ordered-choice
// dispatch sequence of §4.9: Top-level, Client-count (MGS/MDT/OST), OSD,
// MGS, OSS, MDS, LDLM, LLite, MDD, Quota. The first subsystem whose parser
// recognises the current input wins; a miss leaves the scanner untouched so
// the next subsystem can try.
var subsystems = []subsystem{
	{name: "top-level", one: parseTopLevel},
	{name: "client-count:mgs", many: mgsClientCount},
	{name: "client-count:mdt", many: mdtClientCount},
	{name: "client-count:ost", many: obdfilterClientCount},
	{name: "osd", one: parseOsd},
	{name: "mgs-fsnames", many: mgsFsnames},
	{name: "mgs", one: parseMgs},
	{name: "oss", one: parseOss},
	{name: "obdfilter", one: parseObdfilter},
	{name: "recovery-status", one: parseRecoveryStatus},
	{name: "mds", one: parseMds},
	{name: "mdt", one: parseMdt},
	{name: "ldlm", one: parseLdlm},
	{name: "llite", one: parseLlite},
	{name: "mdd", one: parseMdd},
	{name: "nodemap", one: parseNodemap},
	{name: "quota", one: parseQuota},
}

// ParseRecords runs the full ordered-choice dispatcher over one `lctl
// get_param` text buffer, returning every record it recognises. A line that
// no subsystem recognises is a hard parse error: the buffer format is
// considered authoritative and unrecognised content signals a version skew
// between this exporter and the deployed Lustre release (§4.9, §7).
func ParseRecords(input string) ([]Record, error) {
	s := NewScanner(input)
	var records []Record

	for !s.Eof() {
		progressed := false

		for _, sub := range subsystems {
			if sub.one != nil {
				rec, ok, err := sub.one(s)
				if err != nil {
					return records, err
				}
				if ok {
					records = append(records, rec)
					progressed = true
					break
				}
				continue
			}
			recs, ok, err := sub.many(s)
			if err != nil {
				return records, err
			}
			if ok {
				records = append(records, recs...)
				progressed = true
				break
			}
		}

		if !progressed {
			return records, newParseErr(s, "dispatcher", "a recognised lctl get_param record")
		}
	}

	return records, nil
}

// Params returns the full lctl get_param query list, in the same order the
// dispatcher above recognises the resulting output (§4.8: "Scrape
// endpoint").
func Params() []string {
	var params []string
	params = append(params, topLevelParams()...)
	params = append(params, mgsClientCountParams()...)
	params = append(params, mdtClientCountParams()...)
	params = append(params, obdfilterClientCountParams()...)
	params = append(params, osdParams()...)
	params = append(params, mgsFsnameParams()...)
	params = append(params, mgsParams()...)
	params = append(params, ossParams()...)
	params = append(params, obdfilterParams()...)
	params = append(params, recoveryStatusParams()...)
	params = append(params, mdsParams()...)
	params = append(params, mdtParams()...)
	params = append(params, ldlmNamespaceParams()...)
	params = append(params, ldlmServiceParams()...)
	params = append(params, lliteParams()...)
	params = append(params, mddParams()...)
	params = append(params, nodemapParams()...)
	params = append(params, qmtParams()...)
	return params
}
