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
	"errors"
	"testing"
)

func TestProtocolVersionCompatible(t *testing.T) {
	testCases := []struct {
		a, b ProtocolVersion
		want bool
	}{
		{"1.0", "1.0", true},
		{"1.0", "1.1", true},
		{"v1.0", "1.2", true},
		{"1.0", "2.0", false},
		{"0.3", "1.0", false},
	}

	for _, tc := range testCases {
		if got := tc.a.Compatible(tc.b); got != tc.want {
			t.Errorf("ProtocolVersion(%q).Compatible(%q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCheckSupported(t *testing.T) {
	if err := CheckSupported("1.0"); err != nil {
		t.Errorf("CheckSupported(1.0) error = %v, want nil", err)
	}
	if err := CheckSupported("2.0"); !errors.Is(err, ErrVersionNotSupported) {
		t.Errorf("CheckSupported(2.0) error = %v, want ErrVersionNotSupported", err)
	}
}
