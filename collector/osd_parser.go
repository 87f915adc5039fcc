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
	paramFilesFree    = "filesfree"
	paramFilesTotal   = "filestotal"
	paramKBytesAvail  = "kbytesavail"
	paramKBytesFree   = "kbytesfree"
	paramKBytesTotal  = "kbytestotal"
	paramFsType       = "fstype"
	paramBrwStats     = "brw_stats"
	paramQuotaAcctGrp = "quota_slave.acct_group"
	paramQuotaAcctUsr = "quota_slave.acct_user"
	paramQuotaAcctPrj = "quota_slave.acct_project"
)

// osdParams returns the lctl get_param query fragments for osd-* devices
// (§4.4, spec.md:121).
func osdParams() []string {
	return []string{
		"osd-*.*." + paramFilesFree,
		"osd-*.*." + paramFilesTotal,
		"osd-*.*." + paramFsType,
		"osd-*.*." + paramKBytesAvail,
		"osd-*.*." + paramKBytesFree,
		"osd-*.*." + paramKBytesTotal,
		"osd-*.*." + paramBrwStats,
		"osd-*.*." + paramQuotaAcctGrp,
		"osd-*.*." + paramQuotaAcctUsr,
		"osd-*.*." + paramQuotaAcctPrj,
	}
}

// osdTargetAndKind recognises "osd-<...>.<target>." and derives the target's
// TargetVariant, mirroring the teacher's device-name parsing.
func osdTargetAndKind(s *Scanner) (name string, kind TargetVariant, ok bool) {
	mark := s.mark()
	if !s.literal("osd-") {
		s.reset(mark)
		return "", 0, false
	}
	s.tillPeriod()
	if !s.period() {
		s.reset(mark)
		return "", 0, false
	}
	name, ok = s.target()
	if !ok || !s.period() {
		s.reset(mark)
		return "", 0, false
	}
	kind, err := DeriveTargetVariant(name)
	if err != nil {
		s.reset(mark)
		return "", 0, false
	}
	return name, kind, true
}

// parseOsd recognises one osd-<device>.<target>.<param> record (§4.4).
func parseOsd(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	name, kind, ok := osdTargetAndKind(s)
	if !ok {
		s.reset(mark)
		return Record{}, false, nil
	}

	rec := func(param string, value interface{}) Record {
		return Record{Kind: RecordTarget, TargetKind: kind, TargetName: name, TargetParam: param, TargetValue: value}
	}

	if _, ok := s.param(paramBrwStats); ok {
		sections, err := parseBrwStats(s)
		if err != nil {
			return Record{}, true, err
		}
		return rec(paramBrwStats, sections), true, nil
	}

	if _, ok := s.param(paramFilesFree); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramFilesFree, v), true, nil
	}

	if _, ok := s.param(paramFilesTotal); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramFilesTotal, v), true, nil
	}

	if _, ok := s.param(paramFsType); ok {
		v := s.tillNewline()
		if !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramFsType, v), true, nil
	}

	if _, ok := s.param(paramKBytesAvail); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramKBytesAvail, v), true, nil
	}

	if _, ok := s.param(paramKBytesFree); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramKBytesFree, v), true, nil
	}

	if _, ok := s.param(paramKBytesTotal); ok {
		v, _, ok := s.digits()
		if !ok || !s.newline() {
			s.reset(mark)
			return Record{}, false, nil
		}
		return rec(paramKBytesTotal, v), true, nil
	}

	quotaAccts := []struct {
		literal string
		kind    QuotaKind
	}{
		{paramQuotaAcctGrp, QuotaGrp},
		{paramQuotaAcctPrj, QuotaPrj},
		{paramQuotaAcctUsr, QuotaUsr},
	}
	for _, qa := range quotaAccts {
		if _, ok := s.param(qa.literal); ok {
			stats, ok, err := parseQuotaStatsOsdUsage(s)
			if err != nil {
				return Record{}, true, err
			}
			if !ok {
				s.reset(mark)
				return Record{}, false, nil
			}
			return rec(qa.literal, QuotaStatsOsd{Kind: qa.kind, Stats: stats}), true, nil
		}
	}

	s.reset(mark)
	return Record{}, false, nil
}
