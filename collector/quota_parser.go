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

import "gopkg.in/yaml.v2"

const (
	paramUsrQuotas = "usr"
	paramPrjQuotas = "prj"
	paramGrpQuotas = "grp"
)

// quotaStatYAML and quotaStatOsdYAML give gopkg.in/yaml.v2 field names for
// the flow-mapping blobs the QMT and OSD emit after "glb-<kind>=" /
// "quota_slave.acct_<kind>=" (§4.4, §3).
type quotaStatYAML struct {
	ID     uint64 `yaml:"id"`
	Limits struct {
		Hard    uint64 `yaml:"hard"`
		Soft    uint64 `yaml:"soft"`
		Granted uint64 `yaml:"granted"`
		Time    uint64 `yaml:"time"`
	} `yaml:"limits"`
}

type quotaStatOsdYAML struct {
	ID    uint64 `yaml:"id"`
	Usage struct {
		Inodes uint64 `yaml:"inodes"`
		Kbytes uint64 `yaml:"kbytes"`
	} `yaml:"usage"`
}

// takeYAMLBlock consumes lines up to (not including) the next line whose
// first byte is alphanumeric -- the start of the next top-level get_param
// field -- or EOF, whichever comes first.
func (s *Scanner) takeYAMLBlock() string {
	start := s.pos
	for s.pos < len(s.input) {
		lineStart := s.pos
		if isAlphaNum(s.input[lineStart]) {
			break
		}
		idx := indexByteFrom(s.input, lineStart, '\n')
		if idx < 0 {
			s.pos = len(s.input)
			break
		}
		s.pos = idx + 1
	}
	return s.input[start:s.pos]
}

func indexByteFrom(s string, from int, b byte) int {
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// quotaYAMLBlob parses the shared shape: an optional leading newline, a
// (possibly unindented) header line that is discarded, a newline, then the
// YAML list itself up to the next unindented field or EOF (§4.4, mirroring
// `quota_stats`/`quota_stats_osd` in the original combinator grammar).
func quotaYAMLBlob(s *Scanner) (string, bool) {
	mark := s.mark()
	s.newline()
	s.tillNewline()
	if !s.newline() {
		s.reset(mark)
		return "", false
	}
	blob := s.takeYAMLBlock()
	s.newline()
	return blob, true
}

func parseQuotaStats(s *Scanner) ([]QuotaStat, bool, error) {
	blob, ok := quotaYAMLBlob(s)
	if !ok {
		return nil, false, nil
	}
	var rows []quotaStatYAML
	if err := yaml.Unmarshal([]byte(blob), &rows); err != nil {
		return nil, true, newYAMLErr("quota stats", err)
	}
	stats := make([]QuotaStat, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, QuotaStat{
			ID: r.ID,
			Limits: QuotaStatLimits{
				Hard:    r.Limits.Hard,
				Soft:    r.Limits.Soft,
				Granted: r.Limits.Granted,
				Time:    r.Limits.Time,
			},
		})
	}
	return stats, true, nil
}

func parseQuotaStatsOsdUsage(s *Scanner) ([]QuotaStatOsd, bool, error) {
	blob, ok := quotaYAMLBlob(s)
	if !ok {
		return nil, false, nil
	}
	var rows []quotaStatOsdYAML
	if err := yaml.Unmarshal([]byte(blob), &rows); err != nil {
		return nil, true, newYAMLErr("quota stats (osd)", err)
	}
	stats := make([]QuotaStatOsd, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, QuotaStatOsd{
			ID: r.ID,
			Usage: QuotaStatOsdUsage{
				Inodes: r.Usage.Inodes,
				Kbytes: r.Usage.Kbytes,
			},
		})
	}
	return stats, true, nil
}

// qmtPool parses the "{md,dt}-<pool>" fragment of a QMT target path.
func qmtPool(s *Scanner) (manager, pool string, ok bool) {
	mark := s.mark()
	if s.literal("md-") {
		manager = "md"
	} else if s.literal("dt-") {
		manager = "dt"
	} else {
		s.reset(mark)
		return "", "", false
	}
	pool, ok = s.target()
	if !ok {
		s.reset(mark)
		return "", "", false
	}
	return manager, pool, true
}

// qmtParams returns the lctl get_param query fragments for QMT quotas.
func qmtParams() []string {
	return []string{"qmt.*.*.glb-usr", "qmt.*.*.glb-prj", "qmt.*.*.glb-grp"}
}

// parseQuota recognises one "qmt.<target>.{md,dt}-<pool>.glb-{usr,prj,grp}="
// record (§4.4, spec.md:125).
func parseQuota(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	if !s.literal("qmt.") {
		s.reset(mark)
		return Record{}, false, nil
	}
	target, ok := s.target()
	if !ok || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}
	manager, pool, ok := qmtPool(s)
	if !ok || !s.period() {
		s.reset(mark)
		return Record{}, false, nil
	}
	if !s.literal("glb-") {
		s.reset(mark)
		return Record{}, false, nil
	}

	kind, err := DeriveTargetVariant(target)
	if err != nil {
		kind = Mgt
	}

	quotaKinds := []struct {
		literal string
		param   string
		kind    QuotaKind
	}{
		{paramUsrQuotas, "glb-usr", QuotaUsr},
		{paramPrjQuotas, "glb-prj", QuotaPrj},
		{paramGrpQuotas, "glb-grp", QuotaGrp},
	}
	for _, qk := range quotaKinds {
		if _, ok := s.param(qk.literal); !ok {
			continue
		}
		stats, ok, err := parseQuotaStats(s)
		if err != nil {
			return Record{}, true, err
		}
		if !ok {
			s.reset(mark)
			return Record{}, false, nil
		}
		return Record{
			Kind: RecordTarget, TargetKind: kind, TargetName: target, TargetParam: qk.param,
			TargetValue: QuotaStats{Kind: qk.kind, Manager: manager, Pool: pool, Stats: stats},
		}, true, nil
	}

	s.reset(mark)
	return Record{}, false, nil
}
