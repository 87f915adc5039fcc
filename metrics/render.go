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

package metrics

import (
	"bytes"

	"github.com/prometheus/common/expfmt"
)

// ContentType is the response Content-Type for a rendered scrape body:
// "text/plain; version=0.0.4; charset=utf-8" (§4.8).
const ContentType = string(expfmt.FmtText)

// Render gathers every family in r and encodes it as Prometheus text
// exposition format. The jobstats section (§4.6) is appended separately by
// the scrape handler; it is not part of this registry.
func (r *Registry) Render() ([]byte, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
