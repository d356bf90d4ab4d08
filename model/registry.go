/*
 * registry.go, part of cmview.
 *
 * Copyright 2026 The cmview authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package model

import (
	"fmt"
	"sync"
)

// Registry hands out unique IDs to loaded graphs, so two structures with the
// same name can be told apart (1abcA, 1abcA_2...).
type Registry struct {
	mu  sync.Mutex
	ids map[string]*PdbFileModel
}

// DefaultRegistry is used by models created without WithRegistry.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]*PdbFileModel)}
}

// Assign registers M under name, or under name_n with the smallest n>1
// that is free, and returns the ID used.
func (R *Registry) Assign(name string, M *PdbFileModel) string {
	R.mu.Lock()
	defer R.mu.Unlock()
	id := name
	for n := 2; ; n++ {
		if _, taken := R.ids[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s_%d", name, n)
	}
	R.ids[id] = M
	return id
}

// Get returns the model registered under id.
func (R *Registry) Get(id string) (*PdbFileModel, bool) {
	R.mu.Lock()
	defer R.mu.Unlock()
	M, ok := R.ids[id]
	return M, ok
}

// Release frees id.
func (R *Registry) Release(id string) {
	R.mu.Lock()
	defer R.mu.Unlock()
	delete(R.ids, id)
}

// Len returns the number of registered graphs.
func (R *Registry) Len() int {
	R.mu.Lock()
	defer R.mu.Unlock()
	return len(R.ids)
}
