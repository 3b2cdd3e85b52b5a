/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pool

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/greencultureai/indy-sdk/platform/indy/config"
	"github.com/greencultureai/indy-sdk/platform/indy/driver"
	"github.com/greencultureai/indy-sdk/platform/indy/driver/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interruptingDriver cancels the run as soon as the pool is opened.
type interruptingDriver struct {
	*sim.Driver
	cancel context.CancelFunc
}

func (d *interruptingDriver) OpenPoolLedger(driver.CommandHandle, string, string, driver.OpenCallback) driver.ErrorCode {
	d.cancel()
	return driver.PoolLedgerTerminated
}

func TestSmokeInterruptedDeletesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("INDY_HOME", home)
	t.Setenv("INDY_FIXTURES_DIR", t.TempDir())
	t.Setenv("INDY_DRIVER", "interrupting")

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	factories["interrupting"] = func(cp *config.Provider) (driver.Driver, func() error, error) {
		d := sim.New(cp.Home())
		return &interruptingDriver{Driver: d, cancel: cancel}, d.Close, nil
	}
	t.Cleanup(func() { delete(factories, "interrupting") })

	err := Smoke(ctx, config.NewDefaultProvider(), Options{Prefix: "interrupted"}, &bytes.Buffer{})
	code, ok := driver.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, driver.PoolLedgerTerminated, code)
	require.Error(t, ctx.Err())

	entries, err := os.ReadDir(filepath.Join(home, "pool"))
	require.NoError(t, err)
	assert.Empty(t, entries, "the pool config is deleted after the interruption")
}
