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

// Package collector parses the textual output of the Lustre `lctl` and
// `lnetctl` administrative utilities into a tagged stream of Records.
package collector

import "fmt"

// ErrorKind closes the taxonomy of errors the collector can return.
type ErrorKind int

const (
	// KindIO covers subprocess spawn/read failures surfaced by callers of
	// this package; the parsers themselves never perform I/O.
	KindIO ErrorKind = iota
	// KindEncoding signals non-UTF-8 input handed to a parser.
	KindEncoding
	// KindParse signals a structural mismatch against the expected grammar.
	KindParse
	// KindYAML signals malformed YAML in LNet, QMT, or jobstats-header payloads.
	KindYAML
	// KindConversion signals a target-to-kind or similar domain conversion failure.
	KindConversion
	// KindTime signals a timestamp string that cannot be canonicalised.
	KindTime
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "IoError"
	case KindEncoding:
		return "EncodingError"
	case KindParse:
		return "ParseError"
	case KindYAML:
		return "YamlError"
	case KindConversion:
		return "ConversionError"
	case KindTime:
		return "TimeError"
	default:
		return "UnknownError"
	}
}

// ParseError carries the byte offset at which parsing failed along with the
// set of tokens that would have been accepted there, mirroring the
// position-and-expected-set shape the original combinator parser produced.
type ParseError struct {
	Kind     ErrorKind
	Pos      int
	Expected []string
	Context  string
	Cause    error
}

func (e *ParseError) Error() string {
	if len(e.Expected) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("%s at byte %d (%s): %v", e.Kind, e.Pos, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s at byte %d (%s)", e.Kind, e.Pos, e.Context)
	}
	return fmt.Sprintf("%s at byte %d (%s): expected one of %v", e.Kind, e.Pos, e.Context, e.Expected)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func newParseErr(s *Scanner, context string, expected ...string) *ParseError {
	return &ParseError{Kind: KindParse, Pos: s.pos, Expected: expected, Context: context}
}

// ConversionError signals a failed domain conversion, such as deriving a
// Target's Kind from its name, or parsing an UnsignedLustreTimestamp.
type ConversionError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ConversionError) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

func newConversionErr(format string, args ...interface{}) *ConversionError {
	return &ConversionError{Kind: KindConversion, Msg: fmt.Sprintf(format, args...)}
}

func newTimeErr(format string, args ...interface{}) *ConversionError {
	return &ConversionError{Kind: KindTime, Msg: fmt.Sprintf(format, args...)}
}

// YAMLError wraps a malformed-YAML failure from LNet, QMT, or jobstats header
// payloads, preserving the underlying decode error.
type YAMLError struct {
	Context string
	Cause   error
}

func (e *YAMLError) Error() string { return fmt.Sprintf("YamlError (%s): %v", e.Context, e.Cause) }
func (e *YAMLError) Unwrap() error { return e.Cause }

func newYAMLErr(context string, cause error) *YAMLError {
	return &YAMLError{Context: context, Cause: cause}
}
