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

// Package jobstats streams the per-job counter blocks Lustre emits under
// "obdfilter.*.job_stats" and "mdt.*.job_stats". The input can run to
// hundreds of megabytes, so it is read line by line and rendered directly
// into OpenMetrics text fragments rather than materialised into records.
package jobstats

import (
	"bufio"
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const readBufferSize = 128 * 1024

const channelCapacity = 200

var (
	targetLineRe = regexp.MustCompile(`^(obdfilter|mdt)\.([A-Za-z0-9_-]+)\.job_stats=\s*$`)
	jobIDLineRe  = regexp.MustCompile(`^-\s*job_id:\s*(.+?)\s*$`)
	statFieldRe  = regexp.MustCompile(`^\s*([a-z_]+):\s+\{\s*samples:\s*(\d+)\s*,\s*unit:\s*([A-Za-z]+)\s*(?:,\s*min:\s*(\d+)\s*,\s*max:\s*(\d+)\s*,\s*sum:\s*(\d+))?`)
)

// ostReqsStats are the OST job_stats fields rendered as a single
// lustre_job_stats_total sample (§4.6).
var ostReqsStats = map[string]bool{
	"getattr": true, "setattr": true, "punch": true, "sync": true,
	"destroy": true, "create": true, "statfs": true,
	"get_info": true, "set_info": true, "quotactl": true,
}

// mdtStats are every MDT job_stats field rendered as a single
// lustre_job_stats_total sample (§4.6).
var mdtStats = map[string]bool{
	"open": true, "close": true, "mknod": true, "link": true, "unlink": true,
	"mkdir": true, "rmdir": true, "rename": true, "getattr": true, "setattr": true,
	"getxattr": true, "setxattr": true, "statfs": true, "sync": true,
	"samedir_rename": true, "parallel_rename_file": true, "parallel_rename_dir": true,
	"crossdir_rename": true, "read": true, "write": true, "read_bytes": true,
	"write_bytes": true, "punch": true, "migrate": true,
}

// state is the line machine of §4.6 with three states: field lines inside a
// job are rendered as they arrive, so no separate state accumulates them.
type state int

const (
	stateEmpty state = iota
	stateTarget
	stateTargetJob
)

type machine struct {
	state  state
	kind   string // "ost" or "mdt"
	target string
	jobID  string
}

// feed processes one line, returning the rendered metric-line fragments it
// produces (zero or more).
func (m *machine) feed(line string) []string {
	if match := targetLineRe.FindStringSubmatch(line); match != nil {
		m.state = stateTarget
		m.kind = targetKind(match[1])
		m.target = match[2]
		m.jobID = ""
		return nil
	}

	if m.state == stateEmpty {
		return nil
	}

	if match := jobIDLineRe.FindStringSubmatch(line); match != nil {
		m.state = stateTargetJob
		m.jobID = strings.Trim(match[1], `"`)
		return nil
	}

	if m.state != stateTargetJob {
		// Scaffolding lines ("job_stats:", "snapshot_time:", ...) between the
		// target line and the first job header. Nothing to render yet.
		return nil
	}

	match := statFieldRe.FindStringSubmatch(line)
	if match == nil {
		return nil
	}
	return m.renderField(match[1], match[2], match[4], match[5], match[6])
}

func targetKind(prefix string) string {
	if prefix == "obdfilter" {
		return "ost"
	}
	return "mdt"
}

func (m *machine) renderField(name, samples, min, max, sum string) []string {
	switch m.kind {
	case "ost":
		switch name {
		case "read_bytes":
			return m.renderBytesLines("read", name, samples, min, max, sum)
		case "write_bytes":
			return m.renderBytesLines("write", name, samples, min, max, sum)
		default:
			if !ostReqsStats[name] {
				return nil
			}
			return []string{m.renderCounterLine(name, samples)}
		}
	case "mdt":
		if !mdtStats[name] {
			return nil
		}
		return []string{m.renderCounterLine(name, samples)}
	default:
		return nil
	}
}

func (m *machine) renderBytesLines(direction, operation, samples, min, max, sum string) []string {
	labels := `operation="` + operation + `",component="ost",target="` + m.target + `",jobid="` + m.jobID + `"`
	return []string{
		"lustre_job_" + direction + "_samples_total{" + labels + "} " + samples + "\n",
		"lustre_job_" + direction + "_minimum_size_bytes{" + labels + "} " + min + "\n",
		"lustre_job_" + direction + "_maximum_size_bytes{" + labels + "} " + max + "\n",
		"lustre_job_" + direction + "_bytes_total{" + labels + "} " + sum + "\n",
	}
}

func (m *machine) renderCounterLine(operation, samples string) string {
	return `lustre_job_stats_total{component="` + m.kind + `",target="` + m.target +
		`",jobid="` + m.jobID + `",operation="` + operation + `"} ` + samples + "\n"
}

// Stream reads job_stats blocks from r and renders them to a bounded
// channel of OpenMetrics text fragments. It runs until r is exhausted,
// ctx is cancelled, or a read error occurs; the channel is always closed
// on return. A malformed line is skipped and does not end the stream
// (§4.6, §4.11); a read error ends the stream early after a debug log,
// preserving whatever was already sent.
func Stream(ctx context.Context, r io.Reader, logger log.Logger) <-chan string {
	out := make(chan string, channelCapacity)

	go func() {
		defer close(out)

		reader := bufio.NewReaderSize(r, readBufferSize)
		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, readBufferSize), readBufferSize)

		var m machine
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			default:
			}

			for _, frag := range m.feed(scanner.Text()) {
				select {
				case out <- frag:
				case <-ctx.Done():
					return
				}
			}
		}
		if err := scanner.Err(); err != nil {
			_ = level.Debug(logger).Log("msg", "jobstats stream ended early", "err", err)
		}
	}()

	return out
}
