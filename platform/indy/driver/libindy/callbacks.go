//go:build libindy

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package libindy

/*
#include "indy_pool.h"
*/
import "C"

import (
	"github.com/greencultureai/indy-sdk/platform/indy/core/callback"
	"github.com/greencultureai/indy-sdk/platform/indy/driver"
)

// entry routes a library completion back to the caller's callback and command handle.
type entry struct {
	handle driver.CommandHandle
	status driver.StatusCallback
	open   driver.OpenCallback
	submit driver.SubmitCallback
}

// commands spans every Driver: the library calls back plain C functions
var commands = callback.NewRegistry[entry]()

func take(h C.indy_handle_t) (entry, bool) {
	e, ok := commands.Take(driver.CommandHandle(h))
	if !ok {
		logger.Warnf("completion for unknown command [%d]", int32(h))
	}
	return e, ok
}

//export statusCallback
func statusCallback(h C.indy_handle_t, code C.indy_error_t) {
	if e, ok := take(h); ok {
		e.status(e.handle, driver.ErrorCode(code))
	}
}

//export openCallback
func openCallback(h C.indy_handle_t, code C.indy_error_t, pool C.indy_handle_t) {
	if e, ok := take(h); ok {
		e.open(e.handle, driver.ErrorCode(code), driver.PoolHandle(pool))
	}
}

//export submitCallback
func submitCallback(h C.indy_handle_t, code C.indy_error_t, response *C.char) {
	if e, ok := take(h); ok {
		e.submit(e.handle, driver.ErrorCode(code), C.GoString(response))
	}
}
