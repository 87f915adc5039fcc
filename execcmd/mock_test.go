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
	"errors"
	"io"
	"testing"
)

func TestMockRunnerRunReturnsRegisteredOutput(t *testing.T) {
	m := NewMockRunner()
	m.SetOutput("lctl", []string{"get_param", "memused"}, "memused=1024\n")

	out, err := m.Run(context.Background(), "lctl", "get_param", "memused")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "memused=1024\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if got := m.CallCount("lctl", []string{"get_param", "memused"}); got != 1 {
		t.Fatalf("expected call count 1, got %d", got)
	}
}

func TestMockRunnerRunReturnsRegisteredError(t *testing.T) {
	m := NewMockRunner()
	wantErr := errors.New("boom")
	m.SetError("lnetctl", []string{"net", "show"}, wantErr)

	_, err := m.Run(context.Background(), "lnetctl", "net", "show")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

func TestMockRunnerRunWithNoFixtureIsAnError(t *testing.T) {
	m := NewMockRunner()
	if _, err := m.Run(context.Background(), "lctl", "get_param", "unregistered"); err == nil {
		t.Fatal("expected an error for an unregistered fixture")
	}
}

func TestMockRunnerStreamYieldsRegisteredOutput(t *testing.T) {
	m := NewMockRunner()
	m.SetOutput("lctl", []string{"get_param", "obdfilter.*.job_stats"}, "obdfilter.lustre-OST0000.job_stats=\n")

	stream, err := m.Stream(context.Background(), "lctl", "get_param", "obdfilter.*.job_stats")
	if err != nil {
		t.Fatal(err)
	}
	defer stream.Close()

	got, err := io.ReadAll(stream)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "obdfilter.lustre-OST0000.job_stats=\n" {
		t.Fatalf("unexpected stream contents: %q", got)
	}
}

var _ Runner = (*MockRunner)(nil)
