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

const paramChangelogUsers = "changelog_users"

func mddParams() []string { return []string{"mdd.*." + paramChangelogUsers} }

// mddTargetAndVariant recognises "mdd.<target>." and derives the target's
// kind from its name (§4.4: "MDD").
func mddTargetAndVariant(s *Scanner) (string, TargetVariant, bool) {
	mark := s.mark()
	if !s.literal("mdd") || !s.period() {
		s.reset(mark)
		return "", 0, false
	}
	name, ok := s.target()
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

// changelogUserRow recognises one "<user> <index> (<idle_secs>)<rest>\n"
// table row.
func changelogUserRow(s *Scanner) (ChangelogUser, bool) {
	mark := s.mark()

	id, ok := s.target()
	if !ok {
		s.reset(mark)
		return ChangelogUser{}, false
	}
	s.spaces()
	index, _, ok := s.digits()
	if !ok {
		s.reset(mark)
		return ChangelogUser{}, false
	}
	s.spaces()
	if !s.literal("(") {
		s.reset(mark)
		return ChangelogUser{}, false
	}
	idle, _, ok := s.digits()
	if !ok {
		s.reset(mark)
		return ChangelogUser{}, false
	}
	if !s.literal(")") {
		s.reset(mark)
		return ChangelogUser{}, false
	}
	s.tillNewline()
	if !s.newline() {
		s.reset(mark)
		return ChangelogUser{}, false
	}
	return ChangelogUser{ID: id, Index: index, IdleSecs: idle}, true
}

// parseMdd recognises one "mdd.<target>.changelog_users=<block>" record,
// where <block> is "current_index: N\nID<header rest>\n" followed by zero
// or more changelog-user rows (§4.4: "MDD").
func parseMdd(s *Scanner) (Record, bool, error) {
	mark := s.mark()

	name, kind, ok := mddTargetAndVariant(s)
	if !ok {
		s.reset(mark)
		return Record{}, false, nil
	}
	if _, ok := s.param(paramChangelogUsers); !ok {
		s.reset(mark)
		return Record{}, false, nil
	}
	if !s.newline() {
		return Record{}, true, newParseErr(s, "mdd.changelog_users", "newline")
	}
	if !s.literal("current_index: ") {
		return Record{}, true, newParseErr(s, "mdd.changelog_users", "current_index: ")
	}
	currentIndex, _, ok := s.digits()
	if !ok {
		return Record{}, true, newParseErr(s, "mdd.changelog_users", "digits")
	}
	if !s.newline() {
		return Record{}, true, newParseErr(s, "mdd.changelog_users", "newline")
	}
	if !s.literal("ID") {
		return Record{}, true, newParseErr(s, "mdd.changelog_users", "ID")
	}
	s.tillNewline()
	if !s.newline() {
		return Record{}, true, newParseErr(s, "mdd.changelog_users", "newline")
	}

	var users []ChangelogUser
	for {
		user, ok := changelogUserRow(s)
		if !ok {
			break
		}
		users = append(users, user)
	}

	return Record{
		Kind: RecordTarget, TargetKind: kind, TargetName: name,
		TargetParam: paramChangelogUsers,
		TargetValue: ChangelogStat{CurrentIndex: currentIndex, Users: users},
	}, true, nil
}
