/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pool

import (
	"sort"

	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
	"github.com/greencultureai/indy-sdk/platform/indy/config"
	"github.com/greencultureai/indy-sdk/platform/indy/driver"
	"github.com/greencultureai/indy-sdk/platform/indy/driver/sim"
)

// Factory opens a driver and returns the function releasing it.
type Factory func(cp *config.Provider) (driver.Driver, func() error, error)

var factories = map[string]Factory{
	"sim": func(cp *config.Provider) (driver.Driver, func() error, error) {
		d := sim.New(cp.Home())
		return d, d.Close, nil
	},
}

// Drivers lists the names accepted by NewDriver.
func Drivers() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDriver opens the driver named by the driver key of cp.
func NewDriver(cp *config.Provider) (driver.Driver, func() error, error) {
	name := cp.Driver()
	f, ok := factories[name]
	if !ok {
		return nil, nil, errors.Errorf("driver [%s] not available, expected one of %v", name, Drivers())
	}
	return f(cp)
}
