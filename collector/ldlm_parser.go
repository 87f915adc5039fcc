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

// ldlmNamespaceStats lists the twelve numeric counters exposed per lock
// namespace (§4.4: "LDLM namespaces").
var ldlmNamespaceStats = []string{
	"contended_locks",
	"contention_seconds",
	"ctime_age_limit",
	"early_lock_cancel",
	"lock_count",
	"lock_timeouts",
	"lock_unused_count",
	"lru_max_age",
	"lru_size",
	"max_nolock_bytes",
	"max_parallel_ast",
	"resource_count",
}

// ldlmServiceNames lists the two fixed LDLM service thread pools (§4.4:
// "LDLM services").
var ldlmServiceNames = []string{"ldlm_canceld", "ldlm_cbd"}

func ldlmNamespaceParams() []string {
	params := make([]string, 0, len(ldlmNamespaceStats))
	for _, stat := range ldlmNamespaceStats {
		params = append(params, "ldlm.namespaces.{mdt-,filter-}*."+stat)
	}
	return params
}

func ldlmServiceParams() []string {
	params := make([]string, 0, len(ldlmServiceNames))
	for _, name := range ldlmServiceNames {
		params = append(params, "ldlm.services."+name+".stats")
	}
	return params
}

// ldlmTarget recognises "ldlm.namespaces.{mdt-,filter-}<target>_UUID." and
// returns the target kind and the bare target name with the "_UUID" suffix
// stripped (§4.4: "LDLM namespaces").
func ldlmTarget(s *Scanner) (TargetVariant, string, bool) {
	mark := s.mark()
	if !s.literal("namespaces") || !s.period() {
		s.reset(mark)
		return 0, "", false
	}

	var kind TargetVariant
	switch {
	case s.literal("mdt-"):
		kind = Mdt
	case s.literal("filter-"):
		kind = Ost
	default:
		s.reset(mark)
		return 0, "", false
	}

	raw, ok := s.target()
	if !ok || !s.period() {
		s.reset(mark)
		return 0, "", false
	}
	name, found := cutSuffix(raw, "_UUID")
	if !found {
		s.reset(mark)
		return 0, "", false
	}
	return kind, name, true
}

// cutSuffix reports whether raw ends with suffix, returning the prefix.
func cutSuffix(raw, suffix string) (string, bool) {
	if !strings.HasSuffix(raw, suffix) {
		return "", false
	}
	return strings.TrimSuffix(raw, suffix), true
}

// parseLdlmNamespace recognises one
// ldlm.namespaces.{mdt-,filter-}<target>_UUID.<stat>=<value> record (§4.4:
// "LDLM namespaces").
func parseLdlmNamespace(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	kind, name, ok := ldlmTarget(s)
	if !ok {
		s.reset(mark)
		return Record{}, false, nil
	}

	for _, stat := range ldlmNamespaceStats {
		if _, ok := s.param(stat); ok {
			v, _, ok := s.digits()
			if !ok || !s.newline() {
				s.reset(mark)
				return Record{}, false, nil
			}
			return Record{
				Kind: RecordTarget, TargetKind: kind, TargetName: name,
				TargetParam: stat, TargetValue: v,
			}, true, nil
		}
	}

	s.reset(mark)
	return Record{}, false, nil
}

// parseLdlmService recognises one
// ldlm.services.{ldlm_canceld,ldlm_cbd}.stats=<block> record (§4.4: "LDLM
// services").
func parseLdlmService(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	if !s.literal("services") || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}

	var service string
	for _, name := range ldlmServiceNames {
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
	return Record{Kind: RecordService, ServiceName: service, ServiceValue: stats}, true, nil
}

// parseLdlm recognises the shared "ldlm." prefix and dispatches to the
// namespace or service parser (§4.4: "LDLM").
func parseLdlm(s *Scanner) (Record, bool, error) {
	mark := s.mark()
	if !s.literal("ldlm") || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}

	if rec, ok, err := parseLdlmNamespace(s); ok || err != nil {
		return rec, ok, err
	}
	if rec, ok, err := parseLdlmService(s); ok || err != nil {
		return rec, ok, err
	}

	s.reset(mark)
	return Record{}, false, nil
}
