/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package genesis

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net"

	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
)

const (
	// NodeTxnType is the ledger transaction type of a NODE transaction
	NodeTxnType = "0"
	// ValidatorService marks a node taking part in consensus
	ValidatorService = "VALIDATOR"
)

// NodeData describes a node's network identity.
// Field order is the order of the genesis file format.
type NodeData struct {
	Alias      string   `json:"alias,omitempty"`
	BLSKey     string   `json:"blskey,omitempty"`
	ClientIP   string   `json:"client_ip"`
	ClientPort int      `json:"client_port"`
	NodeIP     string   `json:"node_ip"`
	NodePort   int      `json:"node_port"`
	Services   []string `json:"services"`
}

// NodeTxn is a genesis transaction introducing a node to the pool.
type NodeTxn struct {
	Data       NodeData `json:"data"`
	Dest       string   `json:"dest"`
	Identifier string   `json:"identifier"`
	TxnID      string   `json:"txnId"`
	Type       string   `json:"type"`
}

// Encode renders txns as newline separated JSON records, without a trailing newline.
func Encode(txns []NodeTxn) ([]byte, error) {
	var buf bytes.Buffer
	for i, txn := range txns {
		raw, err := json.Marshal(txn)
		if err != nil {
			return nil, errors.Wrapf(err, "failed marshalling genesis txn [%d]", i)
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// Decode reads newline separated genesis transactions. Blank lines are skipped.
func Decode(r io.Reader) ([]NodeTxn, error) {
	var txns []NodeTxn
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var txn NodeTxn
		if err := json.Unmarshal(raw, &txn); err != nil {
			return nil, errors.Wrapf(err, "invalid genesis txn at line [%d]", line)
		}
		txns = append(txns, txn)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed reading genesis txns")
	}
	return txns, nil
}

// Validate checks that txns describe a usable set of validator nodes.
func Validate(txns []NodeTxn) error {
	if len(txns) == 0 {
		return errors.New("no genesis transactions")
	}
	for i, txn := range txns {
		if err := validateNode(txn); err != nil {
			return errors.WithMessagef(err, "genesis txn [%d]", i)
		}
	}
	return nil
}

func validateNode(txn NodeTxn) error {
	if txn.Type != NodeTxnType {
		return errors.Errorf("unexpected txn type [%s]", txn.Type)
	}
	if len(txn.Dest) == 0 {
		return errors.New("dest is required")
	}
	d := txn.Data
	if len(d.Alias) == 0 {
		return errors.Errorf("alias is required for node [%s]", txn.Dest)
	}
	if net.ParseIP(d.ClientIP) == nil || net.ParseIP(d.NodeIP) == nil {
		return errors.Errorf("invalid ip for node [%s]", d.Alias)
	}
	if !validPort(d.ClientPort) || !validPort(d.NodePort) {
		return errors.Errorf("invalid port for node [%s]", d.Alias)
	}
	for _, s := range d.Services {
		if s == ValidatorService {
			return nil
		}
	}
	return errors.Errorf("node [%s] is not a validator", d.Alias)
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}
