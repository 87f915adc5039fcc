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

package execcmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MockRunner is a fixture-backed Runner for tests, generalizing the
// teacher's lctl.go non-LctlCommandMode branch (reading a fixture file
// instead of invoking the real binary) into something reusable across
// every command this exporter shells out to.
type MockRunner struct {
	mu        sync.Mutex
	fixtures  map[string]string
	errors    map[string]error
	callCount map[string]int
}

// NewMockRunner builds an empty MockRunner; register responses with
// SetOutput/SetError before use.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		fixtures:  make(map[string]string),
		errors:    make(map[string]error),
		callCount: make(map[string]int),
	}
}

func key(name string, args []string) string {
	return name + " " + strings.Join(args, " ")
}

// SetOutput registers the stdout MockRunner returns for name+args.
func (m *MockRunner) SetOutput(name string, args []string, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixtures[key(name, args)] = output
}

// SetError registers the error MockRunner returns for name+args.
func (m *MockRunner) SetError(name string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[key(name, args)] = err
}

// CallCount reports how many times name+args was invoked.
func (m *MockRunner) CallCount(name string, args []string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount[key(name, args)]
}

func (m *MockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	k := key(name, args)
	m.mu.Lock()
	m.callCount[k]++
	err, hasErr := m.errors[k]
	out, hasOut := m.fixtures[k]
	m.mu.Unlock()

	if hasErr {
		return nil, err
	}
	if !hasOut {
		return nil, fmt.Errorf("mock runner: no fixture registered for %q", k)
	}
	return []byte(out), nil
}

func (m *MockRunner) Stream(ctx context.Context, name string, args ...string) (io.ReadCloser, error) {
	out, err := m.Run(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(string(out))), nil
}

var _ Runner = (*MockRunner)(nil)
