/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sim

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"github.com/otiai10/copy"
	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
	"github.com/greencultureai/indy-sdk/platform/indy/driver"
	"github.com/greencultureai/indy-sdk/platform/indy/genesis"
)

// OpenConfig is the runtime configuration accepted when opening a pool.
type OpenConfig struct {
	RefreshOnOpen   *bool `json:"refresh_on_open,omitempty"`
	AutoRefreshTime *int  `json:"auto_refresh_time,omitempty"`
	NetworkTimeout  *int  `json:"network_timeout,omitempty"`
}

type openPool struct {
	name   string
	config OpenConfig
	nodes  []genesis.NodeTxn
	seqNo  uint64
}

func (d *Driver) poolDir(name string) string {
	return filepath.Join(d.home, "pool", name)
}

func (d *Driver) genesisPath(name string) string {
	return filepath.Join(d.poolDir(name), name+".txn")
}

func (d *Driver) createConfig(name string, config string) driver.ErrorCode {
	source := name + ".txn"
	if len(config) != 0 {
		var cfg genesis.PoolConfig
		if err := json.Unmarshal([]byte(config), &cfg); err != nil {
			logger.Debugf("invalid config of pool [%s]: %s", name, err)
			return driver.CommonInvalidStructure
		}
		if len(cfg.GenesisTxn) != 0 {
			source = cfg.GenesisTxn
		}
	}

	if _, err := os.Stat(d.poolDir(name)); err == nil {
		return driver.PoolLedgerConfigAlreadyExistsError
	}

	if fi, err := os.Stat(source); err != nil || !fi.Mode().IsRegular() {
		logger.Debugf("cannot read genesis file [%s] of pool [%s]: %v", source, name, err)
		return driver.CommonIOError
	}
	poolConfig, err := genesis.PoolConfigJSON(d.genesisPath(name))
	if err != nil {
		return driver.CommonInvalidState
	}
	if err := copy.Copy(source, d.genesisPath(name), copy.Options{Sync: true}); err != nil {
		logger.Errorf("failed storing genesis file of pool [%s]: %s", name, err)
		_ = os.RemoveAll(d.poolDir(name))
		return driver.CommonIOError
	}
	if err := genesis.WriteFile(filepath.Join(d.poolDir(name), "config.json"), []byte(poolConfig)); err != nil {
		logger.Errorf("failed storing config of pool [%s]: %s", name, err)
		_ = os.RemoveAll(d.poolDir(name))
		return driver.CommonIOError
	}
	logger.Debugf("pool config [%s] created from [%s]", name, source)
	return driver.Success
}

func (d *Driver) open(name string, config string) (driver.PoolHandle, driver.ErrorCode) {
	var cfg OpenConfig
	if len(config) != 0 {
		if err := json.Unmarshal([]byte(config), &cfg); err != nil {
			return 0, driver.CommonInvalidStructure
		}
	}
	if _, err := os.Stat(d.poolDir(name)); err != nil {
		return 0, driver.PoolLedgerNotCreatedError
	}
	for _, p := range d.pools {
		if p.name == name {
			return 0, driver.PoolLedgerInvalidPoolHandle
		}
	}

	nodes, code := d.connect(name)
	if code != driver.Success {
		return 0, code
	}

	d.lastPool++
	d.pools[d.lastPool] = &openPool{name: name, config: cfg, nodes: nodes}
	logger.Debugf("pool [%s] opened as [%d] with [%d] nodes", name, d.lastPool, len(nodes))
	return d.lastPool, driver.Success
}

// connect loads the stored genesis file of name and checks that enough of
// its nodes are part of the network.
func (d *Driver) connect(name string) ([]genesis.NodeTxn, driver.ErrorCode) {
	nodes, err := genesis.ReadFile(d.genesisPath(name))
	if err != nil {
		if errors.HasCause(err, fs.ErrNotExist) {
			return nil, driver.CommonIOError
		}
		logger.Debugf("invalid genesis file of pool [%s]: %s", name, err)
		return nil, driver.CommonInvalidStructure
	}
	if err := genesis.Validate(nodes); err != nil {
		logger.Debugf("invalid genesis file of pool [%s]: %s", name, err)
		return nil, driver.CommonInvalidStructure
	}

	reachable := 0
	for _, n := range nodes {
		alias, ok := d.network[n.Dest]
		if !ok {
			continue
		}
		if alias != n.Data.Alias {
			logger.Debugf("node [%s] answered as [%s] instead of [%s]", n.Dest, alias, n.Data.Alias)
			return nil, driver.PoolLedgerTerminated
		}
		reachable++
	}
	if reachable < quorum(len(nodes)) {
		logger.Debugf("pool [%s] reached [%d] of [%d] nodes", name, reachable, len(nodes))
		return nil, driver.PoolLedgerTerminated
	}
	return nodes, driver.Success
}

// quorum is the number of nodes needed when up to f=(n-1)/3 nodes are faulty.
func quorum(n int) int {
	return n - (n-1)/3
}

func (d *Driver) refresh(pool driver.PoolHandle) driver.ErrorCode {
	p, ok := d.pools[pool]
	if !ok {
		return driver.PoolLedgerInvalidPoolHandle
	}
	nodes, code := d.connect(p.name)
	if code != driver.Success {
		return code
	}
	if diff := cmp.Diff(p.nodes, nodes); len(diff) != 0 {
		logger.Infof("nodes of pool [%s] changed on refresh: %s", p.name, diff)
	}
	p.nodes = nodes
	return driver.Success
}

func (d *Driver) close(pool driver.PoolHandle) driver.ErrorCode {
	p, ok := d.pools[pool]
	if !ok {
		return driver.PoolLedgerInvalidPoolHandle
	}
	delete(d.pools, pool)
	logger.Debugf("pool [%s] with handle [%d] closed", p.name, pool)
	return driver.Success
}

func (d *Driver) deleteConfig(name string) driver.ErrorCode {
	for _, p := range d.pools {
		if p.name == name {
			return driver.CommonInvalidState
		}
	}
	if _, err := os.Stat(d.poolDir(name)); err != nil {
		return driver.CommonIOError
	}
	if err := os.RemoveAll(d.poolDir(name)); err != nil {
		logger.Errorf("failed deleting pool config [%s]: %s", name, err)
		return driver.CommonIOError
	}
	return driver.Success
}
