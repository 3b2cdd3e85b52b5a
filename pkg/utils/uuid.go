/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

func init() {
	// pooled random bytes are kept on the heap, see uuid.EnableRandPool
	uuid.EnableRandPool()
}

// GenerateUUID creates a new random UUID and returns it as a string
func GenerateUUID() string {
	return uuid.NewString()
}

// GeneratePoolName returns a unique pool name carrying the given prefix
func GeneratePoolName(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}

var lastRequestID atomic.Uint64

// NextRequestID returns a ledger request id derived from the wall clock in nanoseconds.
// Ids are strictly increasing within the process, even when the clock does not advance.
func NextRequestID() uint64 {
	for {
		last := lastRequestID.Load()
		next := uint64(time.Now().UnixNano())
		if next <= last {
			next = last + 1
		}
		if lastRequestID.CompareAndSwap(last, next) {
			return next
		}
	}
}
