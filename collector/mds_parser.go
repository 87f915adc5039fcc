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

// mdsServiceNames lists the fixed MDS thread-pool service names exposed
// under "mds.MDS.<name>.stats" (§4.4: "MDS").
// Order matters: parseMds tries these in sequence, so "mdt" (a prefix of
// every other entry) must be tried last.
var mdsServiceNames = []string{
	"mdt_fld",
	"mdt_io",
	"mdt_out",
	"mdt_readpage",
	"mdt_seqm",
	"mdt_seqs",
	"mdt_setattr",
	"mdt",
}

func mdsParams() []string {
	params := make([]string, 0, len(mdsServiceNames))
	for _, name := range mdsServiceNames {
		params = append(params, "mds.MDS."+name+".stats")
	}
	return params
}

// parseMds recognises one "mds.MDS.<service>.stats=<block>" record, where
// <service> is one of mdsServiceNames (§4.4: "MDS").
func parseMds(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	if !s.literal("mds") || !s.period() || !s.literal("MDS") || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}

	var service string
	for _, name := range mdsServiceNames {
		nameMark := s.mark()
		if s.literal(name) {
			service = name
			break
		}
		s.reset(nameMark)
	}
	if service == "" {
		s.reset(mark)
		return Record{}, false, nil
	}

	if !s.period() {
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
	return Record{Kind: RecordService, ServiceName: "mds_" + service, ServiceValue: stats}, true, nil
}
