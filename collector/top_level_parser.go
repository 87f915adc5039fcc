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

const (
	paramMemused     = "memused"
	paramMemusedMax  = "memused_max"
	paramLnetMemused = "lnet_memused"
	paramHealthCheck = "health_check"
)

// topLevelParams returns the lctl get_param query fragments this parser
// requires (§4.4).
func topLevelParams() []string {
	return []string{paramMemused, paramMemusedMax, paramLnetMemused, paramHealthCheck}
}

func targetHealth(s *Scanner) (string, bool) {
	mark := s.mark()
	if !s.literal("device") {
		s.reset(mark)
		return "", false
	}
	s.spaces()
	t, ok := s.target()
	if !ok {
		s.reset(mark)
		return "", false
	}
	s.spaces()
	if !s.literal("reported unhealthy") {
		s.reset(mark)
		return "", false
	}
	return t, true
}

func healthCheckBody(s *Scanner) (HealthCheckStat, bool) {
	mark := s.mark()

	if s.literal("healthy") {
		return HealthCheckStat{Healthy: true}, true
	}
	if s.literal("LBUG") {
		return HealthCheckStat{Healthy: false}, true
	}
	if s.literal("NOT HEALTHY") {
		return HealthCheckStat{Healthy: false}, true
	}

	var targets []string
	for {
		t, ok := targetHealth(s)
		if !ok {
			break
		}
		if !s.newline() {
			s.reset(mark)
			return HealthCheckStat{}, false
		}
		targets = append(targets, t)
	}
	if len(targets) == 0 || !s.literal("NOT HEALTHY") {
		s.reset(mark)
		return HealthCheckStat{}, false
	}
	return HealthCheckStat{Healthy: false, Targets: targets}, true
}

// parseTopLevel recognises one memused/memused_max/lnet_memused/health_check
// record at the scanner's current position (§4.4).
func parseTopLevel(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	if _, ok := s.param(paramMemused); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return Record{Kind: RecordHost, HostParam: paramMemused, HostValue: v}, true, nil
	}

	if _, ok := s.param(paramMemusedMax); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return Record{Kind: RecordHost, HostParam: paramMemusedMax, HostValue: v}, true, nil
	}

	if _, ok := s.param(paramLnetMemused); ok {
		v, neg, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		if neg {
			// Counter can overflow and go negative; cast to 0 when this
			// happens (§3, §9 — intentional, not a bug to remove).
			v = 0
		}
		return Record{Kind: RecordHost, HostParam: paramLnetMemused, HostValue: v}, true, nil
	}

	if _, ok := s.param(paramHealthCheck); ok {
		health, ok := healthCheckBody(s)
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return Record{Kind: RecordHost, HostParam: paramHealthCheck, HostValue: health}, true, nil
	}

	return Record{}, false, nil
}
