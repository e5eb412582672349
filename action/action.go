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

// Package action provides a reference counted holder for a single action
// identifier. It is the shape of object an authorization library stores
// in a chainmap table: each holder of a reference calls Ref, and the last
// Unref clears the identifier. An Action carries no other state.
//
// An Action is NOT goroutine-safe.
package action

// Action records one action identifier.
type Action struct {
	refs int
	id   string
	set  bool
}

// New returns an Action holding a single reference and no identifier.
func New() *Action {
	return &Action{refs: 1}
}

// Ref adds a reference to the action and returns the same handle.
func (a *Action) Ref() *Action {
	a.refs++
	return a
}

// Unref drops a reference to the action. When the last reference is
// dropped the identifier is cleared.
func (a *Action) Unref() {
	if a.refs <= 0 {
		panic("action: Unref of a released Action")
	}
	a.refs--
	if a.refs > 0 {
		return
	}
	a.id = ""
	a.set = false
}

// SetID sets the action identifier, replacing any previous one.
func (a *Action) SetID(id string) {
	a.id = id
	a.set = true
}

// ID returns the action identifier, or ok=false if none has been set.
// The returned string remains owned by the action.
func (a *Action) ID() (id string, ok bool) {
	if !a.set {
		return "", false
	}
	return a.id, true
}
