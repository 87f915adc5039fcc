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

// ossServiceNames lists the fixed OSS thread-pool service names exposed
// under "ost.OSS.<name>.stats" (§4.4: "OSS"). "ost_io" must be tried before
// "ost" since the latter is a prefix of the former.
var ossServiceNames = []string{
	"ost_io",
	"ost_create",
	"ost_out",
	"ost_seq",
	"ost",
}

func ossParams() []string {
	params := make([]string, 0, len(ossServiceNames))
	for _, name := range ossServiceNames {
		params = append(params, "ost.OSS."+name+".stats")
	}
	return params
}

// parseOss recognises one "ost.OSS.<service>.stats=<block>" record, where
// <service> is one of ossServiceNames (§4.4: "OSS").
func parseOss(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	if !s.literal("ost") || !s.period() || !s.literal("OSS") || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}

	var service string
	for _, name := range ossServiceNames {
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
	return Record{Kind: RecordService, ServiceName: "oss_" + service, ServiceValue: stats}, true, nil
}
