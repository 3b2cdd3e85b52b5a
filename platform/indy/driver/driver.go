/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package driver

// CommandHandle identifies one asynchronous call and its completion.
type CommandHandle = int32

// PoolHandle identifies an open pool connection.
type PoolHandle = int32

// StatusCallback completes calls that carry no result value.
type StatusCallback func(h CommandHandle, code ErrorCode)

// OpenCallback completes an open pool call.
type OpenCallback func(h CommandHandle, code ErrorCode, pool PoolHandle)

// SubmitCallback completes a request submission with the raw ledger reply.
type SubmitCallback func(h CommandHandle, code ErrorCode, response string)

// Driver models the callback-based API of the ledger client library.
//
// Every method returns immediately. A non-Success return value means the call
// was rejected and the callback will never fire. Otherwise the callback fires
// exactly once, possibly from another goroutine, with the command handle the
// call was issued with. An empty config string stands for an absent config.
type Driver interface {
	// CreatePoolLedgerConfig registers a named pool configuration.
	CreatePoolLedgerConfig(h CommandHandle, name string, config string, cb StatusCallback) ErrorCode
	// OpenPoolLedger connects to the named pool.
	OpenPoolLedger(h CommandHandle, name string, config string, cb OpenCallback) ErrorCode
	// RefreshPoolLedger refreshes the node list of an open pool.
	RefreshPoolLedger(h CommandHandle, pool PoolHandle, cb StatusCallback) ErrorCode
	// ClosePoolLedger closes an open pool.
	ClosePoolLedger(h CommandHandle, pool PoolHandle, cb StatusCallback) ErrorCode
	// DeletePoolLedgerConfig removes a pool configuration.
	DeletePoolLedgerConfig(h CommandHandle, name string, cb StatusCallback) ErrorCode
	// SubmitRequest sends a request to the pool and returns the reply.
	SubmitRequest(h CommandHandle, pool PoolHandle, request string, cb SubmitCallback) ErrorCode
}
