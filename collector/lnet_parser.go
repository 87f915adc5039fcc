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
	"strings"

	"gopkg.in/yaml.v2"
)

type lnetInterfaceStatistics struct {
	SendCount uint64 `yaml:"send_count"`
	RecvCount uint64 `yaml:"recv_count"`
	DropCount uint64 `yaml:"drop_count"`
}

type lnetLocalInterface struct {
	NID        string                  `yaml:"nid"`
	Statistics lnetInterfaceStatistics `yaml:"statistics"`
}

type lnetNet struct {
	LocalNIs []lnetLocalInterface `yaml:"local NI(s)"`
}

type lnetNetShow struct {
	Net []lnetNet `yaml:"net"`
}

// ParseLNetNetShow decodes "lnetctl net show -v 4" output into one
// send_count/recv_count/drop_count LNetStat triple per local network
// interface (§4.5: "LNet parser").
func ParseLNetNetShow(output string) ([]Record, error) {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil, nil
	}

	var parsed lnetNetShow
	if err := yaml.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, newYAMLErr("lnetctl net show", err)
	}

	var records []Record
	for _, net := range parsed.Net {
		for _, ni := range net.LocalNIs {
			records = append(records,
				Record{Kind: RecordLNet, LNetNID: ni.NID, LNetParam: "send_count", LNetValue: ni.Statistics.SendCount},
				Record{Kind: RecordLNet, LNetNID: ni.NID, LNetParam: "recv_count", LNetValue: ni.Statistics.RecvCount},
				Record{Kind: RecordLNet, LNetNID: ni.NID, LNetParam: "drop_count", LNetValue: ni.Statistics.DropCount},
			)
		}
	}
	return records, nil
}

type lnetGlobalStatistics struct {
	SendLength uint64 `yaml:"send_length"`
	RecvLength uint64 `yaml:"recv_length"`
	DropLength uint64 `yaml:"drop_length"`
}

type lnetStatsShow struct {
	Statistics *lnetGlobalStatistics `yaml:"statistics"`
}

// ParseLNetStatsShow decodes "lnetctl stats show" output into the three
// global send_length/recv_length/drop_length counters (§4.5: "LNet
// parser").
func ParseLNetStatsShow(output string) ([]Record, error) {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil, nil
	}

	var parsed lnetStatsShow
	if err := yaml.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, newYAMLErr("lnetctl stats show", err)
	}
	if parsed.Statistics == nil {
		return nil, nil
	}

	stats := parsed.Statistics
	return []Record{
		{Kind: RecordLNet, LNetParam: "send_length", LNetValue: stats.SendLength},
		{Kind: RecordLNet, LNetParam: "recv_length", LNetValue: stats.RecvLength},
		{Kind: RecordLNet, LNetParam: "drop_length", LNetValue: stats.DropLength},
	}, nil
}
