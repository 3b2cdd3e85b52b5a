/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sim

import (
	"encoding/json"
	"time"

	"github.com/greencultureai/indy-sdk/platform/indy/driver"
)

const (
	opReply   = "REPLY"
	opReqNack = "REQNACK"
)

// write transaction types, all others are reads
var writeTypes = map[string]bool{
	"0":   true, // NODE
	"1":   true, // NYM
	"100": true, // ATTRIB
	"101": true, // SCHEMA
	"102": true, // CRED_DEF
}

type request struct {
	ReqID      uint64          `json:"reqId"`
	Identifier string          `json:"identifier"`
	Signature  string          `json:"signature,omitempty"`
	Operation  json.RawMessage `json:"operation"`
}

type operation struct {
	Type string `json:"type"`
}

// Reply is the answer of the pool to an accepted request.
type Reply struct {
	Op     string      `json:"op"`
	Result ReplyResult `json:"result"`
}

type ReplyResult struct {
	Identifier string  `json:"identifier"`
	ReqID      uint64  `json:"reqId"`
	Type       string  `json:"type"`
	SeqNo      *uint64 `json:"seqNo"`
	TxnTime    *int64  `json:"txnTime"`
	Data       any     `json:"data"`
}

// Nack is the answer of the pool to a request it refuses to process.
type Nack struct {
	Op         string `json:"op"`
	ReqID      uint64 `json:"reqId"`
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
}

func (d *Driver) submit(pool driver.PoolHandle, raw string) (string, driver.ErrorCode) {
	p, ok := d.pools[pool]
	if !ok {
		return "", driver.PoolLedgerInvalidPoolHandle
	}

	var req request
	if err := json.Unmarshal([]byte(raw), &req); err != nil || req.ReqID == 0 || len(req.Operation) == 0 {
		return "", driver.CommonInvalidStructure
	}
	var op operation
	if err := json.Unmarshal(req.Operation, &op); err != nil || len(op.Type) == 0 {
		return "", driver.CommonInvalidStructure
	}

	var reply any
	switch {
	case writeTypes[op.Type] && len(req.Signature) == 0:
		reply = &Nack{
			Op:         opReqNack,
			ReqID:      req.ReqID,
			Identifier: req.Identifier,
			Reason:     "client request invalid: MissingSignature()",
		}
	case writeTypes[op.Type]:
		p.seqNo++
		seqNo, txnTime := p.seqNo, time.Now().Unix()
		reply = &Reply{Op: opReply, Result: ReplyResult{
			Identifier: req.Identifier,
			ReqID:      req.ReqID,
			Type:       op.Type,
			SeqNo:      &seqNo,
			TxnTime:    &txnTime,
			Data:       req.Operation,
		}}
	default:
		reply = &Reply{Op: opReply, Result: ReplyResult{
			Identifier: req.Identifier,
			ReqID:      req.ReqID,
			Type:       op.Type,
		}}
	}

	out, err := json.Marshal(reply)
	if err != nil {
		return "", driver.CommonInvalidState
	}
	logger.Debugf("pool [%s] answered request [%d] of type [%s]", p.name, req.ReqID, op.Type)
	return string(out), driver.Success
}
