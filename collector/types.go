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

import (
	"strconv"
	"strings"
	"time"
)

// TargetVariant is the role a Lustre target plays: object, management, or
// metadata storage.
type TargetVariant int

const (
	// Ost is an Object Storage Target.
	Ost TargetVariant = iota
	// Mgt is a Management Target.
	Mgt
	// Mdt is a Metadata Target.
	Mdt
)

func (k TargetVariant) String() string {
	switch k {
	case Ost:
		return "ost"
	case Mgt:
		return "mgt"
	case Mdt:
		return "mdt"
	default:
		return "unknown"
	}
}

// PromLabel is the lowercased label value used on TargetStat metrics
// (§6 of spec.md: "component is lowercased: ost|mgt|mdt").
func (k TargetVariant) PromLabel() string { return k.String() }

// Target identifies a Lustre target by name, e.g. "fs-OST0000".
type Target struct {
	Name string
	Kind TargetVariant
}

// DeriveTargetVariant derives a TargetVariant from a raw target name
// following the rule in spec.md §3: suffix "mgs" -> Mgt; substring "-OST"
// after the last dash -> Ost; substring "-MDT" -> Mdt. Matching ignores case,
// and a name whose part after the last dash has neither still maps to Ost or
// Mdt if "OST" or "MDT" appears anywhere in it; anything else fails.
func DeriveTargetVariant(name string) (TargetVariant, error) {
	upper := strings.ToUpper(name)
	if strings.EqualFold(name, "mgs") || strings.HasSuffix(upper, "MGS") {
		return Mgt, nil
	}
	if idx := strings.LastIndex(upper, "-"); idx >= 0 {
		suffix := upper[idx+1:]
		if strings.Contains(suffix, "OST") {
			return Ost, nil
		}
		if strings.Contains(suffix, "MDT") {
			return Mdt, nil
		}
	}
	if strings.Contains(upper, "OST") {
		return Ost, nil
	}
	if strings.Contains(upper, "MDT") {
		return Mdt, nil
	}
	return 0, newConversionErr("cannot derive target kind for %q", name)
}

// NewTarget builds a Target, deriving its Kind from name.
func NewTarget(name string) (Target, error) {
	kind, err := DeriveTargetVariant(name)
	if err != nil {
		return Target{}, err
	}
	return Target{Name: name, Kind: kind}, nil
}

// Stat is one row of a stats block (§3, §4.2).
type Stat struct {
	Name      string
	Units     string
	Samples   uint64
	Min       *uint64
	Max       *uint64
	Sum       *uint64
	SumSquare *uint64
}

// BrwStatsBucket is one histogram bucket row: size in bytes after the
// K/M/G suffix expansion, plus read/write sample counts.
type BrwStatsBucket struct {
	Name  uint64 // bucket size in bytes
	Read  uint64
	Write uint64
}

// BrwStats is one bucketed histogram block (§4.3), e.g. "pages per bulk r/w".
type BrwStats struct {
	Name    string
	Unit    string
	Buckets []BrwStatsBucket
}

// TargetStat is {kind, target, param, value} parameterised over T (§3). Over
// 40 concrete params exist across the subsystem parsers; Param distinguishes
// the metric family within a shared shape.
type TargetStat[T any] struct {
	Kind   TargetVariant
	Target string
	Param  string
	Value  T
}

// HostStat is a process-wide {param, value} measurement (§3).
type HostStat[T any] struct {
	Param string
	Value T
}

// HealthCheckStat is the decoded health_check payload: overall health plus
// the ordered list of targets reported unhealthy (§3, Scenario C).
type HealthCheckStat struct {
	Healthy bool
	Targets []string
}

// LNetStat is a per-NID LNet counter (§3, §4.5).
type LNetStat struct {
	NID   string
	Param string
	Value uint64
}

// LNetStatGlobal is a global (non-NID-scoped) LNet counter (§3, §4.5).
type LNetStatGlobal struct {
	Param string
	Value uint64
}

// QuotaKind distinguishes the three Lustre quota accounting domains.
type QuotaKind int

const (
	QuotaUsr QuotaKind = iota
	QuotaGrp
	QuotaPrj
)

func (k QuotaKind) String() string {
	switch k {
	case QuotaUsr:
		return "user"
	case QuotaGrp:
		return "group"
	case QuotaPrj:
		return "project"
	default:
		return "unknown"
	}
}

// QuotaStatLimits is the glb-{usr,prj,grp} per-id limits payload from the QMT.
type QuotaStatLimits struct {
	Hard    uint64
	Soft    uint64
	Granted uint64
	Time    uint64
}

// QuotaStat is one {id, limits} row from a QMT glb-* YAML list.
type QuotaStat struct {
	ID     uint64
	Limits QuotaStatLimits
}

// QuotaStatOsdUsage is the {inodes, kbytes} usage payload from an OSD
// quota_slave accounting list.
type QuotaStatOsdUsage struct {
	Inodes uint64
	Kbytes uint64
}

// QuotaStatOsd is one {id, usage} row from an osd-*/quota_slave/acct_* list.
type QuotaStatOsd struct {
	ID    uint64
	Usage QuotaStatOsdUsage
}

// QuotaStats bundles a QuotaKind with its rows, plus the manager ("md" or
// "dt") and pool fragments of the QMT target path, the value type of the QMT
// TargetStat. Manager/Pool are carried as independent fields rather than
// folded into TargetName so the registry can emit them as separate labels
// (§4.7's closed label vocabulary; §4.8's "0x0" -> "" pool substitution).
type QuotaStats struct {
	Kind    QuotaKind
	Manager string
	Pool    string
	Stats   []QuotaStat
}

// QuotaStatsOsd bundles a QuotaKind with OSD accounting rows, the value type
// of the osd-*.quota_slave.acct_* TargetStat.
type QuotaStatsOsd struct {
	Kind  QuotaKind
	Stats []QuotaStatOsd
}

// RecoveryStatus is the decoded "status:" field of a recovery_status block.
type RecoveryStatus int

const (
	RecoveryComplete RecoveryStatus = iota
	RecoveryInactive
	RecoveryWaiting
	RecoveryWaitingForClients
	RecoveryRecovering
	RecoveryUnknown
)

func ParseRecoveryStatus(s string) RecoveryStatus {
	switch s {
	case "COMPLETE":
		return RecoveryComplete
	case "INACTIVE":
		return RecoveryInactive
	case "WAITING":
		return RecoveryWaiting
	case "WAITING_FOR_CLIENTS":
		return RecoveryWaitingForClients
	case "RECOVERING":
		return RecoveryRecovering
	default:
		return RecoveryUnknown
	}
}

// RecoveryStat is the decoded body of a recovery_status block.
type RecoveryStat struct {
	Status            RecoveryStatus
	CompletedClients  uint64
	CompletedClientsN *uint64
	ConnectedClients  uint64
	ConnectedClientsN *uint64
	EvictedClients    uint64
	RecoveryDuration  uint64
	TimeRemaining     uint64
}

// ChangelogUser is one registered MDD changelog consumer.
type ChangelogUser struct {
	ID        string
	Index     uint64
	IdleSecs  uint64
}

// ChangelogStat is the decoded body of a mdd.<target>.changelog_users block.
type ChangelogStat struct {
	CurrentIndex uint64
	Users        []ChangelogUser
}

// BytesStat is a read_bytes/write_bytes jobstats counter (§3).
type BytesStat struct {
	Samples uint64
	Unit    string
	Min     uint64
	Max     uint64
	Sum     uint64
}

// ReqsStat is a requests-only jobstats counter (§3).
type ReqsStat struct {
	Samples uint64
	Unit    string
}

// JobStatOst is the per-job operation-counter set for an OST (§3).
type JobStatOst struct {
	JobID      string
	ReadBytes  BytesStat
	WriteBytes BytesStat
	Getattr    ReqsStat
	Setattr    ReqsStat
	Punch      ReqsStat
	Sync       ReqsStat
	Destroy    ReqsStat
	Create     ReqsStat
	Statfs     ReqsStat
	GetInfo    ReqsStat
	SetInfo    ReqsStat
	Quotactl   ReqsStat
}

// JobStatMdt is the per-job operation-counter set for an MDT (§3).
type JobStatMdt struct {
	JobID               string
	Open                ReqsStat
	Close               ReqsStat
	Mknod               ReqsStat
	Link                ReqsStat
	Unlink              ReqsStat
	Mkdir               ReqsStat
	Rmdir               ReqsStat
	Rename              ReqsStat
	Getattr             ReqsStat
	Setattr             ReqsStat
	Getxattr            ReqsStat
	Setxattr            ReqsStat
	Statfs              ReqsStat
	Sync                ReqsStat
	SamedirRename       ReqsStat
	CrossdirRename      ReqsStat
	ParallelRenameFile  *ReqsStat
	ParallelRenameDir   *ReqsStat
	ReadBytes           *BytesStat
	WriteBytes          *BytesStat
	Punch               *ReqsStat
	Migrate             *ReqsStat
}

// ExportStats pairs a client NID with the stats block its export reported.
type ExportStats struct {
	NID   string
	Stats []Stat
}

// UnsignedLustreTimestamp canonicalises to milliseconds since the Unix
// epoch. Input is either a bare integer of milliseconds, or a
// "<secs>.<fraction> secs.<usecs|nsecs>" string (§3).
type UnsignedLustreTimestamp uint64

// ParseUnsignedLustreTimestamp implements the conversion rule in spec.md §3
// and the round-trip properties in §8.
func ParseUnsignedLustreTimestamp(s string) (UnsignedLustreTimestamp, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return UnsignedLustreTimestamp(v), nil
	}

	time1, format, ok := cutOnce(s, ' ')
	if !ok {
		return 0, newTimeErr("cannot convert timestamp %q to milliseconds", s)
	}
	_, fractionalUnit, ok := cutOnce(format, '.')
	if !ok {
		return 0, newTimeErr("cannot convert timestamp %q to milliseconds", s)
	}
	secsStr, fracStr, ok := cutOnce(time1, '.')
	if !ok {
		return 0, newTimeErr("cannot convert timestamp %q to milliseconds", s)
	}

	secs, err := strconv.ParseUint(secsStr, 10, 64)
	if err != nil {
		return 0, newTimeErr("cannot convert timestamp %q to milliseconds", s)
	}
	frac, err := strconv.ParseUint(fracStr, 10, 32)
	if err != nil {
		return 0, newTimeErr("cannot convert timestamp %q to milliseconds", s)
	}

	var ns uint64
	switch fractionalUnit {
	case "usecs":
		ns = frac * 1_000
	case "nsecs":
		ns = frac
	default:
		return 0, newTimeErr("cannot convert timestamp %q to milliseconds", s)
	}

	d := time.Duration(secs)*time.Second + time.Duration(ns)*time.Nanosecond
	millis := uint64(d / time.Millisecond)
	return UnsignedLustreTimestamp(millis), nil
}

func cutOnce(s string, sep byte) (before, after string, found bool) {
	idx := strings.IndexByte(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}

// RecordKind tags the variant held by a Record.
type RecordKind int

const (
	RecordHost RecordKind = iota
	RecordTarget
	RecordLNet
	RecordService
)

// Record is the tagged union over {Host, Target, LNet, LustreService}
// produced by one successful parse of a fragment of lctl/lnetctl output (§3).
// Exactly one of the Host*/Target*/LNet*/Service fields is populated,
// matching Kind.
type Record struct {
	Kind RecordKind

	HostParam string
	HostValue interface{} // uint64 or HealthCheckStat

	TargetKind  TargetVariant
	TargetName  string
	TargetParam string
	TargetValue interface{}

	LNetNID   string // empty for global counters
	LNetParam string
	LNetValue uint64

	ServiceName  string
	ServiceValue interface{}
}
