/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package driver

import (
	"fmt"

	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
)

// ErrorCode is the status code reported by the ledger client library.
type ErrorCode int32

const (
	Success ErrorCode = 0

	CommonInvalidParam1  ErrorCode = 100
	CommonInvalidParam2  ErrorCode = 101
	CommonInvalidParam3  ErrorCode = 102
	CommonInvalidParam4  ErrorCode = 103
	CommonInvalidParam5  ErrorCode = 104
	CommonInvalidParam6  ErrorCode = 105
	CommonInvalidParam7  ErrorCode = 106
	CommonInvalidParam8  ErrorCode = 107
	CommonInvalidParam9  ErrorCode = 108
	CommonInvalidParam10 ErrorCode = 109
	CommonInvalidParam11 ErrorCode = 110
	CommonInvalidParam12 ErrorCode = 111

	CommonInvalidState     ErrorCode = 112
	CommonInvalidStructure ErrorCode = 113
	CommonIOError          ErrorCode = 114

	WalletInvalidHandle              ErrorCode = 200
	WalletUnknownTypeError           ErrorCode = 201
	WalletTypeAlreadyRegisteredError ErrorCode = 202
	WalletAlreadyExistsError         ErrorCode = 203
	WalletNotFoundError              ErrorCode = 204
	WalletIncompatiblePoolError      ErrorCode = 205
	WalletAlreadyOpenedError         ErrorCode = 206
	WalletAccessFailed               ErrorCode = 207

	PoolLedgerNotCreatedError          ErrorCode = 300
	PoolLedgerInvalidPoolHandle        ErrorCode = 301
	PoolLedgerTerminated               ErrorCode = 302
	LedgerNoConsensusError             ErrorCode = 303
	LedgerInvalidTransaction           ErrorCode = 304
	LedgerSecurityError                ErrorCode = 305
	PoolLedgerConfigAlreadyExistsError ErrorCode = 306
	PoolLedgerTimeout                  ErrorCode = 307
)

var codeNames = map[ErrorCode]string{
	Success:                            "Success",
	CommonInvalidState:                 "CommonInvalidState",
	CommonInvalidStructure:             "CommonInvalidStructure",
	CommonIOError:                      "CommonIOError",
	WalletInvalidHandle:                "WalletInvalidHandle",
	WalletUnknownTypeError:             "WalletUnknownTypeError",
	WalletTypeAlreadyRegisteredError:   "WalletTypeAlreadyRegisteredError",
	WalletAlreadyExistsError:           "WalletAlreadyExistsError",
	WalletNotFoundError:                "WalletNotFoundError",
	WalletIncompatiblePoolError:        "WalletIncompatiblePoolError",
	WalletAlreadyOpenedError:           "WalletAlreadyOpenedError",
	WalletAccessFailed:                 "WalletAccessFailed",
	PoolLedgerNotCreatedError:          "PoolLedgerNotCreatedError",
	PoolLedgerInvalidPoolHandle:        "PoolLedgerInvalidPoolHandle",
	PoolLedgerTerminated:               "PoolLedgerTerminated",
	LedgerNoConsensusError:             "LedgerNoConsensusError",
	LedgerInvalidTransaction:           "LedgerInvalidTransaction",
	LedgerSecurityError:                "LedgerSecurityError",
	PoolLedgerConfigAlreadyExistsError: "PoolLedgerConfigAlreadyExistsError",
	PoolLedgerTimeout:                  "PoolLedgerTimeout",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	if c >= CommonInvalidParam1 && c <= CommonInvalidParam12 {
		return fmt.Sprintf("CommonInvalidParam%d", c-CommonInvalidParam1+1)
	}
	return fmt.Sprintf("ErrorCode(%d)", int32(c))
}

func (c ErrorCode) Error() string {
	return fmt.Sprintf("%s (%d)", c.String(), int32(c))
}

// CodeOf returns the ErrorCode carried by err, Success if err is nil,
// or false if err does not carry a code.
func CodeOf(err error) (ErrorCode, bool) {
	if err == nil {
		return Success, true
	}
	var code ErrorCode
	if errors.As(err, &code) {
		return code, true
	}
	return 0, false
}

// InvalidParam returns the code rejecting the n-th (1-based) parameter of a call.
func InvalidParam(n int) ErrorCode {
	if n < 1 || n > 12 {
		panic(fmt.Sprintf("invalid parameter position [%d]", n))
	}
	return CommonInvalidParam1 + ErrorCode(n-1)
}
