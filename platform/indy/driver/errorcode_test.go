/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package driver

import (
	"testing"

	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorCodeString(t *testing.T) {
	table := []struct {
		code     ErrorCode
		expected string
	}{
		{Success, "Success"},
		{CommonInvalidParam1, "CommonInvalidParam1"},
		{CommonInvalidParam12, "CommonInvalidParam12"},
		{CommonInvalidStructure, "CommonInvalidStructure"},
		{PoolLedgerConfigAlreadyExistsError, "PoolLedgerConfigAlreadyExistsError"},
		{ErrorCode(999), "ErrorCode(999)"},
	}
	for _, tc := range table {
		assert.Equal(t, tc.expected, tc.code.String())
	}
	assert.Equal(t, "PoolLedgerTimeout (307)", PoolLedgerTimeout.Error())
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(nil)
	assert.True(t, ok)
	assert.Equal(t, Success, code)

	code, ok = CodeOf(errors.Wrapf(errors.Wrapf(PoolLedgerTerminated, "open"), "create and open"))
	assert.True(t, ok)
	assert.Equal(t, PoolLedgerTerminated, code)

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestInvalidParam(t *testing.T) {
	assert.Equal(t, CommonInvalidParam2, InvalidParam(2))
	assert.Equal(t, CommonInvalidParam12, InvalidParam(12))
	assert.Panics(t, func() { InvalidParam(0) })
	assert.Panics(t, func() { InvalidParam(13) })
}
