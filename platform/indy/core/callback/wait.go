/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package callback

import (
	"context"
	"time"

	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
)

// ErrTimeout is returned when a completion does not arrive in time.
var ErrTimeout = errors.New("timeout waiting for command completion")

// Wait blocks until a value is delivered on ch, the timeout elapses or ctx is done.
// A non-positive timeout waits on ctx only.
func Wait[T any](ctx context.Context, ch <-chan T, timeout time.Duration) (T, error) {
	var zero T
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case v := <-ch:
		return v, nil
	case <-expired:
		return zero, errors.Wrapf(ErrTimeout, "no completion after [%s]", timeout)
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, errors.Wrapf(ErrTimeout, "context deadline exceeded")
		}
		return zero, ctx.Err()
	}
}
