// Copyright 2026 The chainmap Authors
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

package chainmap

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// DirectHash hashes a pointer by its address. Use together with
// DirectEqual for keys that have no content-based notion of equality,
// such as opaque handles. Note that the address of an object is not
// stable across process runs, so direct hashes must never leave the
// process.
func DirectHash(p unsafe.Pointer) uint32 {
	v := uintptr(p)
	// The low bits of an allocated address are zero due to alignment;
	// shift them off so small tables spread across their buckets, and
	// fold the high half in rather than discarding it.
	return uint32(v>>3) ^ uint32(v>>35)
}

// DirectEqual reports whether two pointers are the same address.
func DirectEqual(a, b unsafe.Pointer) bool {
	return a == b
}

// StringHash hashes a string by its byte content.
func StringHash(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

// StringEqual reports whether two strings have the same byte content.
func StringEqual(a, b string) bool {
	return a == b
}
