/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package callback

import (
	"sync"

	"github.com/greencultureai/indy-sdk/platform/indy/driver"
)

// Registry keeps one value per in-flight command, keyed by command handle.
// Handles start at 1 and are never reused within a Registry.
type Registry[T any] struct {
	mu      sync.Mutex
	last    driver.CommandHandle
	entries map[driver.CommandHandle]T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[driver.CommandHandle]T)}
}

// Register stores v under a fresh command handle.
func (r *Registry[T]) Register(v T) driver.CommandHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last++
	r.entries[r.last] = v
	return r.last
}

// Take removes and returns the value stored under h.
// It succeeds at most once per handle.
func (r *Registry[T]) Take(h driver.CommandHandle) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.entries[h]
	if ok {
		delete(r.entries, h)
	}
	return v, ok
}

// Len returns the number of in-flight commands.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
