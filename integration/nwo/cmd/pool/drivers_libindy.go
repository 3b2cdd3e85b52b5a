//go:build libindy

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pool

import (
	"github.com/greencultureai/indy-sdk/platform/indy/config"
	"github.com/greencultureai/indy-sdk/platform/indy/driver"
	"github.com/greencultureai/indy-sdk/platform/indy/driver/libindy"
)

func init() {
	factories["libindy"] = func(*config.Provider) (driver.Driver, func() error, error) {
		return libindy.New(), func() error { return nil }, nil
	}
}
