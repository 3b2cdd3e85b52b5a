/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sim

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/greencultureai/indy-sdk/platform/common/services/logging"
	"github.com/greencultureai/indy-sdk/platform/indy/driver"
	"github.com/greencultureai/indy-sdk/platform/indy/genesis"
)

var logger = logging.MustGetLogger("indy.driver.sim")

const queueSize = 128

// Driver simulates the ledger client library in process.
//
// Commands are executed one at a time, in submission order, by a single
// worker goroutine, which is also the goroutine invoking the callbacks.
// A command issued while the queue is full is rejected with CommonInvalidState.
// Pool configurations live under the home directory with the layout
// <home>/pool/<name>/<name>.txn. The nodes of the simulated network are
// known by their dest and alias; genesis files pointing at other nodes
// cannot reach consensus.
type Driver struct {
	home    string
	latency time.Duration
	network map[string]string

	mu      sync.RWMutex
	closed  bool
	queue   chan func()
	stopped chan struct{}

	// owned by the worker goroutine
	pools    map[driver.PoolHandle]*openPool
	lastPool driver.PoolHandle
}

type Option func(*Driver)

// WithLatency delays every completion by d.
func WithLatency(d time.Duration) Option {
	return func(s *Driver) {
		s.latency = d
	}
}

// WithNetwork sets the nodes running in the simulated network.
func WithNetwork(nodes []genesis.NodeTxn) Option {
	return func(s *Driver) {
		s.network = make(map[string]string, len(nodes))
		for _, n := range nodes {
			s.network[n.Dest] = n.Data.Alias
		}
	}
}

// New starts a simulated library keeping its pool configurations under home.
// The default network runs the validators of the local test pool.
func New(home string, opts ...Option) *Driver {
	d := &Driver{
		home:    home,
		queue:   make(chan func(), queueSize),
		stopped: make(chan struct{}),
		pools:   make(map[driver.PoolHandle]*openPool),
	}
	testPool, _ := genesis.TestPool("", genesis.MaxTestNodes)
	WithNetwork(testPool)(d)
	for _, opt := range opts {
		opt(d)
	}
	go d.run()
	return d
}

// Home returns the directory holding the pool configurations.
func (d *Driver) Home() string {
	return d.home
}

// Close stops accepting commands, completes the queued ones and waits for the worker to exit.
func (d *Driver) Close() error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.stopped
	return nil
}

func (d *Driver) run() {
	defer close(d.stopped)
	for cmd := range d.queue {
		if d.latency > 0 {
			time.Sleep(d.latency)
		}
		cmd()
	}
	logger.Debugf("worker of [%s] stopped", d.home)
}

func (d *Driver) enqueue(cmd func()) driver.ErrorCode {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return driver.CommonInvalidState
	}
	select {
	case d.queue <- cmd:
		return driver.Success
	default:
		logger.Warnf("command queue of [%s] full, rejecting command", d.home)
		return driver.CommonInvalidState
	}
}

// validName accepts pool names usable as a single directory under <home>/pool.
func validName(name string) bool {
	return len(name) != 0 && name != "." && name != ".." && filepath.Base(name) == name
}

func (d *Driver) CreatePoolLedgerConfig(h driver.CommandHandle, name string, config string, cb driver.StatusCallback) driver.ErrorCode {
	if !validName(name) {
		return driver.InvalidParam(2)
	}
	if cb == nil {
		return driver.InvalidParam(4)
	}
	return d.enqueue(func() {
		cb(h, d.createConfig(name, config))
	})
}

func (d *Driver) OpenPoolLedger(h driver.CommandHandle, name string, config string, cb driver.OpenCallback) driver.ErrorCode {
	if !validName(name) {
		return driver.InvalidParam(2)
	}
	if cb == nil {
		return driver.InvalidParam(4)
	}
	return d.enqueue(func() {
		pool, code := d.open(name, config)
		cb(h, code, pool)
	})
}

func (d *Driver) RefreshPoolLedger(h driver.CommandHandle, pool driver.PoolHandle, cb driver.StatusCallback) driver.ErrorCode {
	if cb == nil {
		return driver.InvalidParam(3)
	}
	return d.enqueue(func() {
		cb(h, d.refresh(pool))
	})
}

func (d *Driver) ClosePoolLedger(h driver.CommandHandle, pool driver.PoolHandle, cb driver.StatusCallback) driver.ErrorCode {
	if cb == nil {
		return driver.InvalidParam(3)
	}
	return d.enqueue(func() {
		cb(h, d.close(pool))
	})
}

func (d *Driver) DeletePoolLedgerConfig(h driver.CommandHandle, name string, cb driver.StatusCallback) driver.ErrorCode {
	if !validName(name) {
		return driver.InvalidParam(2)
	}
	if cb == nil {
		return driver.InvalidParam(3)
	}
	return d.enqueue(func() {
		cb(h, d.deleteConfig(name))
	})
}

func (d *Driver) SubmitRequest(h driver.CommandHandle, pool driver.PoolHandle, request string, cb driver.SubmitCallback) driver.ErrorCode {
	if len(request) == 0 {
		return driver.InvalidParam(3)
	}
	if cb == nil {
		return driver.InvalidParam(4)
	}
	return d.enqueue(func() {
		reply, code := d.submit(pool, request)
		cb(h, code, reply)
	})
}
