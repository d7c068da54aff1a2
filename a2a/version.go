// Copyright 2026 The A2A Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package a2a

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ProtocolVersion is a string constant which represents a version of the protocol.
type ProtocolVersion string

// Version is the protocol version which this module implements.
const Version ProtocolVersion = "1.0"

// Compatible reports whether two protocol versions can interoperate.
// Versions are considered compatible when they share the same major version,
// matching the fallback rule other A2A SDKs apply when no exact match exists.
func (v ProtocolVersion) Compatible(other ProtocolVersion) bool {
	return semver.Major(v.canonical()) == semver.Major(other.canonical())
}

// Compare orders two protocol versions the way semver does.
func (v ProtocolVersion) Compare(other ProtocolVersion) int {
	return semver.Compare(v.canonical(), other.canonical())
}

// CheckSupported returns [ErrVersionNotSupported] when the provided version cannot
// interoperate with the version this module implements.
func CheckSupported(v ProtocolVersion) error {
	if !Version.Compatible(v) {
		return fmt.Errorf("protocol version %q: %w", v, ErrVersionNotSupported)
	}
	return nil
}

// canonical converts the protocol version to the "vMAJOR.MINOR" form x/mod/semver expects.
func (v ProtocolVersion) canonical() string {
	return "v" + strings.TrimPrefix(string(v), "v")
}
