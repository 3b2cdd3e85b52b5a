/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pool_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	cmdpool "github.com/greencultureai/indy-sdk/integration/nwo/cmd/pool"
	"github.com/greencultureai/indy-sdk/platform/indy/config"
	"github.com/greencultureai/indy-sdk/platform/indy/driver"
	"github.com/greencultureai/indy-sdk/platform/indy/driver/sim"
	"github.com/greencultureai/indy-sdk/platform/indy/genesis"
	"github.com/greencultureai/indy-sdk/platform/indy/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func provider(t *testing.T) (*config.Provider, string) {
	home := t.TempDir()
	t.Setenv("INDY_HOME", home)
	t.Setenv("INDY_FIXTURES_DIR", t.TempDir())
	t.Setenv("INDY_DRIVER", "")
	return config.NewDefaultProvider(), home
}

func TestSmoke(t *testing.T) {
	cp, home := provider(t)

	cmd := cmdpool.NewCmd(func() (*config.Provider, error) { return cp, nil })
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--prefix", "unit"})
	require.NoError(t, cmd.Execute())

	reply := &sim.Reply{}
	require.NoError(t, json.Unmarshal(out.Bytes(), reply))
	assert.Equal(t, "REPLY", reply.Op)
	assert.Equal(t, cmdpool.Identifier, reply.Result.Identifier)
	assert.Equal(t, "105", reply.Result.Type)
	assert.Nil(t, reply.Result.SeqNo)

	// the pool configuration is deleted at the end of the run
	entries, err := os.ReadDir(filepath.Join(home, "pool"))
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestSmokeUnknownDriver(t *testing.T) {
	_, _ = provider(t)
	t.Setenv("INDY_DRIVER", "nope")
	cp := config.NewDefaultProvider()

	err := cmdpool.Smoke(t.Context(), cp, cmdpool.Options{Prefix: "unit"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "driver [nope] not available")
}

func TestOpenRetries(t *testing.T) {
	d := sim.New(t.TempDir())
	t.Cleanup(func() { require.NoError(t, d.Close()) })
	w := &genesis.Writer{Dir: t.TempDir(), IP: "127.0.0.1"}
	s := pool.NewService(d, pool.WithFixtures(w, genesis.MaxTestNodes))

	path, err := w.WriteWrongAlias("wrong", "")
	require.NoError(t, err)
	cfg, err := genesis.PoolConfigJSON(path)
	require.NoError(t, err)
	require.NoError(t, s.CreateLedgerConfig(t.Context(), "wrong", cfg))

	_, err = cmdpool.Open(t.Context(), s, "wrong", cmdpool.Options{Attempts: 3, RetryDelay: time.Millisecond})
	assert.ErrorContains(t, err, "giving up after [3] attempts")
	code, ok := driver.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, driver.PoolLedgerTerminated, code)

	// not retried
	_, err = cmdpool.Open(t.Context(), s, "missing", cmdpool.Options{Attempts: 3, RetryDelay: time.Hour})
	code, ok = driver.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, driver.PoolLedgerNotCreatedError, code)

	// the pool reaches consensus once the genesis file is fixed
	stored := filepath.Join(d.Home(), "pool", "wrong", "wrong.txn")
	_, err = w.WriteTestPool("wrong", genesis.MaxTestNodes, stored)
	require.NoError(t, err)
	h, err := cmdpool.Open(t.Context(), s, "wrong", cmdpool.Options{})
	require.NoError(t, err)
	require.NoError(t, s.Close(t.Context(), h))
}

func TestDrivers(t *testing.T) {
	assert.Contains(t, cmdpool.Drivers(), "sim")
}

func TestNymRequest(t *testing.T) {
	raw, err := cmdpool.NymRequest("Th7MpTaRZVRYnPiabds81Y")
	require.NoError(t, err)

	req := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	assert.Equal(t, cmdpool.Identifier, req["identifier"])
	assert.NotZero(t, req["reqId"])
	assert.Equal(t, map[string]any{"type": "105", "dest": "Th7MpTaRZVRYnPiabds81Y"}, req["operation"])
}
