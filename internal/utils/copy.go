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

// Package utils provides internal helpers shared by server-side packages.
package utils

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// DeepCopy returns a deep copy of the provided value created through a gob
// encode/decode round trip. Interface-typed fields must have their concrete
// types registered with gob.
func DeepCopy[T any](src *T) (*T, error) {
	if src == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(src); err != nil {
		return nil, fmt.Errorf("deep copy encode failed: %w", err)
	}

	dst := new(T)
	if err := gob.NewDecoder(&buf).Decode(dst); err != nil {
		return nil, fmt.Errorf("deep copy decode failed: %w", err)
	}
	return dst, nil
}
