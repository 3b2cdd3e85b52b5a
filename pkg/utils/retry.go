/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"context"
	"time"

	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
	"github.com/greencultureai/indy-sdk/platform/common/services/logging"
)

var ErrMaxRetriesExceeded = errors.New("maximum number of retries exceeded")

const Infinitely = -1

// Retrier calls a function until it reports completion, the attempts run out
// or the context is done.
type Retrier struct {
	attempts   int
	delay      time.Duration
	expBackoff bool
	logger     logging.Logger
}

func NewRetrier(attempts int, delay time.Duration, expBackoff bool) *Retrier {
	return &Retrier{
		attempts:   attempts,
		delay:      delay,
		expBackoff: expBackoff,
		logger:     logging.MustGetLogger("indy.retry"),
	}
}

func (r *Retrier) Run(ctx context.Context, fn func() error) error {
	return r.RunWithErrors(ctx, func() (bool, error) {
		err := fn()
		return err == nil, err
	})
}

// RunWithErrors calls fn until it returns true, then returns its error.
// When the attempts run out, the last error fn returned is wrapped, or
// ErrMaxRetriesExceeded is returned if there was none.
func (r *Retrier) RunWithErrors(ctx context.Context, fn func() (bool, error)) error {
	var last error
	delay := r.delay
	for i := 0; r.attempts < 0 || i < r.attempts; i++ {
		done, err := fn()
		if done {
			return err
		}
		if err != nil {
			last = err
		}
		if r.attempts >= 0 && i+1 == r.attempts {
			break
		}
		r.logger.Debugf("attempt [%d] failed, retrying in [%s]: %v", i+1, delay, err)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		if r.expBackoff {
			delay *= 2
		}
	}
	if last == nil {
		return ErrMaxRetriesExceeded
	}
	return errors.Wrapf(last, "giving up after [%d] attempts", r.attempts)
}
