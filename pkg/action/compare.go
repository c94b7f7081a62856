/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/


package action

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionComparator compares two versions, returning a negative number when
// a < b, zero when a == b and a positive number when a > b.
type VersionComparator func(a, b string) int

// Lexical compares versions as plain strings.
func Lexical(a, b string) int {
	return strings.Compare(a, b)
}

// Semver compares versions as semantic versions, so that 1.10 is newer than
// 1.9. When either version doesn't parse, it falls back to Lexical.
func Semver(a, b string) int {
	va, err := semver.NewVersion(a)
	if err != nil {
		return Lexical(a, b)
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return Lexical(a, b)
	}
	return va.Compare(vb)
}
