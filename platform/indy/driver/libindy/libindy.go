//go:build libindy

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package libindy binds the pool and ledger entry points of the native libindy library.
package libindy

/*
#cgo LDFLAGS: -lindy
#include "indy_pool.h"

static indy_error_t create_pool_ledger_config(indy_handle_t h, const char *name, const char *config) {
	return indy_create_pool_ledger_config(h, name, config, (indy_status_cb)statusCallback);
}

static indy_error_t open_pool_ledger(indy_handle_t h, const char *name, const char *config) {
	return indy_open_pool_ledger(h, name, config, (indy_open_cb)openCallback);
}

static indy_error_t refresh_pool_ledger(indy_handle_t h, indy_handle_t pool) {
	return indy_refresh_pool_ledger(h, pool, (indy_status_cb)statusCallback);
}

static indy_error_t close_pool_ledger(indy_handle_t h, indy_handle_t pool) {
	return indy_close_pool_ledger(h, pool, (indy_status_cb)statusCallback);
}

static indy_error_t delete_pool_ledger_config(indy_handle_t h, const char *name) {
	return indy_delete_pool_ledger_config(h, name, (indy_status_cb)statusCallback);
}

static indy_error_t submit_request(indy_handle_t h, indy_handle_t pool, const char *request) {
	return indy_submit_request(h, pool, request, (indy_submit_cb)submitCallback);
}
*/
import "C"

import (
	"unsafe"

	"github.com/greencultureai/indy-sdk/platform/common/services/logging"
	"github.com/greencultureai/indy-sdk/platform/indy/driver"
)

var logger = logging.MustGetLogger("indy.driver.libindy")

// Driver calls into libindy. Strings are copied to C memory for the duration
// of the call only, the library copies what it keeps.
type Driver struct{}

func New() *Driver {
	return &Driver{}
}

func (d *Driver) CreatePoolLedgerConfig(h driver.CommandHandle, name string, config string, cb driver.StatusCallback) driver.ErrorCode {
	if cb == nil {
		return driver.InvalidParam(4)
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cConfig := optionalCString(config)
	defer C.free(unsafe.Pointer(cConfig))

	return issue(entry{handle: h, status: cb}, func(ch C.indy_handle_t) C.indy_error_t {
		return C.create_pool_ledger_config(ch, cName, cConfig)
	})
}

func (d *Driver) OpenPoolLedger(h driver.CommandHandle, name string, config string, cb driver.OpenCallback) driver.ErrorCode {
	if cb == nil {
		return driver.InvalidParam(4)
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cConfig := optionalCString(config)
	defer C.free(unsafe.Pointer(cConfig))

	return issue(entry{handle: h, open: cb}, func(ch C.indy_handle_t) C.indy_error_t {
		return C.open_pool_ledger(ch, cName, cConfig)
	})
}

func (d *Driver) RefreshPoolLedger(h driver.CommandHandle, pool driver.PoolHandle, cb driver.StatusCallback) driver.ErrorCode {
	if cb == nil {
		return driver.InvalidParam(3)
	}
	return issue(entry{handle: h, status: cb}, func(ch C.indy_handle_t) C.indy_error_t {
		return C.refresh_pool_ledger(ch, C.indy_handle_t(pool))
	})
}

func (d *Driver) ClosePoolLedger(h driver.CommandHandle, pool driver.PoolHandle, cb driver.StatusCallback) driver.ErrorCode {
	if cb == nil {
		return driver.InvalidParam(3)
	}
	return issue(entry{handle: h, status: cb}, func(ch C.indy_handle_t) C.indy_error_t {
		return C.close_pool_ledger(ch, C.indy_handle_t(pool))
	})
}

func (d *Driver) DeletePoolLedgerConfig(h driver.CommandHandle, name string, cb driver.StatusCallback) driver.ErrorCode {
	if cb == nil {
		return driver.InvalidParam(3)
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	return issue(entry{handle: h, status: cb}, func(ch C.indy_handle_t) C.indy_error_t {
		return C.delete_pool_ledger_config(ch, cName)
	})
}

func (d *Driver) SubmitRequest(h driver.CommandHandle, pool driver.PoolHandle, request string, cb driver.SubmitCallback) driver.ErrorCode {
	if cb == nil {
		return driver.InvalidParam(4)
	}
	cRequest := C.CString(request)
	defer C.free(unsafe.Pointer(cRequest))

	return issue(entry{handle: h, submit: cb}, func(ch C.indy_handle_t) C.indy_error_t {
		return C.submit_request(ch, C.indy_handle_t(pool), cRequest)
	})
}

// issue registers e under a library command handle and performs the call.
// A rejected call never completes, so its entry is dropped right away.
func issue(e entry, call func(C.indy_handle_t) C.indy_error_t) driver.ErrorCode {
	ch := commands.Register(e)
	code := driver.ErrorCode(call(C.indy_handle_t(ch)))
	if code != driver.Success {
		commands.Take(ch)
		logger.Debugf("libindy rejected command [%d]: %s", e.handle, code)
	}
	return code
}

// optionalCString maps the empty string to NULL. C.free(NULL) is a no-op.
func optionalCString(s string) *C.char {
	if len(s) == 0 {
		return nil
	}
	return C.CString(s)
}
