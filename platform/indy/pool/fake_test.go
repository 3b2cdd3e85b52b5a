/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pool

import (
	"sync"

	"github.com/greencultureai/indy-sdk/platform/indy/driver"
)

// fakeDriver lets each test script the immediate result and the completion of every call.
type fakeDriver struct {
	mu    sync.Mutex
	calls []fakeCall

	CreateStub  func(h driver.CommandHandle, name, config string, cb driver.StatusCallback) driver.ErrorCode
	OpenStub    func(h driver.CommandHandle, name, config string, cb driver.OpenCallback) driver.ErrorCode
	RefreshStub func(h driver.CommandHandle, pool driver.PoolHandle, cb driver.StatusCallback) driver.ErrorCode
	CloseStub   func(h driver.CommandHandle, pool driver.PoolHandle, cb driver.StatusCallback) driver.ErrorCode
	DeleteStub  func(h driver.CommandHandle, name string, cb driver.StatusCallback) driver.ErrorCode
	SubmitStub  func(h driver.CommandHandle, pool driver.PoolHandle, request string, cb driver.SubmitCallback) driver.ErrorCode
}

type fakeCall struct {
	op     string
	handle driver.CommandHandle
	args   []any
}

func (f *fakeDriver) record(op string, h driver.CommandHandle, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{op: op, handle: h, args: args})
}

func (f *fakeDriver) Calls() []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeCall(nil), f.calls...)
}

func (f *fakeDriver) CreatePoolLedgerConfig(h driver.CommandHandle, name string, config string, cb driver.StatusCallback) driver.ErrorCode {
	f.record(CreateConfigOp, h, name, config)
	if f.CreateStub == nil {
		go cb(h, driver.Success)
		return driver.Success
	}
	return f.CreateStub(h, name, config, cb)
}

func (f *fakeDriver) OpenPoolLedger(h driver.CommandHandle, name string, config string, cb driver.OpenCallback) driver.ErrorCode {
	f.record(OpenOp, h, name, config)
	if f.OpenStub == nil {
		go cb(h, driver.Success, 1)
		return driver.Success
	}
	return f.OpenStub(h, name, config, cb)
}

func (f *fakeDriver) RefreshPoolLedger(h driver.CommandHandle, pool driver.PoolHandle, cb driver.StatusCallback) driver.ErrorCode {
	f.record(RefreshOp, h, pool)
	if f.RefreshStub == nil {
		go cb(h, driver.Success)
		return driver.Success
	}
	return f.RefreshStub(h, pool, cb)
}

func (f *fakeDriver) ClosePoolLedger(h driver.CommandHandle, pool driver.PoolHandle, cb driver.StatusCallback) driver.ErrorCode {
	f.record(CloseOp, h, pool)
	if f.CloseStub == nil {
		go cb(h, driver.Success)
		return driver.Success
	}
	return f.CloseStub(h, pool, cb)
}

func (f *fakeDriver) DeletePoolLedgerConfig(h driver.CommandHandle, name string, cb driver.StatusCallback) driver.ErrorCode {
	f.record(DeleteConfigOp, h, name)
	if f.DeleteStub == nil {
		go cb(h, driver.Success)
		return driver.Success
	}
	return f.DeleteStub(h, name, cb)
}

func (f *fakeDriver) SubmitRequest(h driver.CommandHandle, pool driver.PoolHandle, request string, cb driver.SubmitCallback) driver.ErrorCode {
	f.record(SubmitOp, h, pool, request)
	if f.SubmitStub == nil {
		go cb(h, driver.Success, request)
		return driver.Success
	}
	return f.SubmitStub(h, pool, request, cb)
}
